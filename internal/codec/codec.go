// Package codec implements the Base64 and Base32 binary-to-text encodings, including the Crockford
// and z-base-32 variants, as incremental state machines.
//
// A Codec binds a Family (block geometry and flush rules) to an Alphabet. Codecs are immutable and
// safe for concurrent use; the Encoder and Decoder they create are not and live for exactly one
// operation: feed them with Write, finish them with Close.
//
//	enc, err := codec.StdBase64.NewEncoder(os.Stdout, codec.Wrap)
//	...
//	_, err = io.Copy(enc, file)
//	...
//	err = enc.Close()
//
// Crockford Base32 additionally offers a numeric codec (see Numeric) with an optional check symbol,
// and z-base-32 can drop the trailing zero bytes of its last block (Compress).
package codec

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Codec is a family bound to a concrete alphabet.
type Codec struct {
	name     string
	family   Family
	params   Params
	alphabet *Alphabet
}

// Predefined codecs.
var (
	StdBase64 = MustCodec("base64", Base64, Base64Alphabet)
	URLBase64 = MustCodec("base64url", Base64, Base64URLAlphabet)
	StdBase32 = MustCodec("base32", Base32, Base32Alphabet)
	HexBase32 = MustCodec("base32hex", Base32, Base32HexAlphabet)
	Crockford = MustCodec("crockford", CrockfordBase32, CrockfordAlphabet)
	ZBase32   = MustCodec("zbase32", ZBase32Family, ZBase32Alphabet)
)

// NewCodec binds the family to the alphabet. The alphabet must have exactly the family's radix,
// or, for families with a check symbol, the extended check radix.
func NewCodec(name string, family Family, alphabet *Alphabet) (*Codec, error) {
	p := family.Params()
	if p.BitsPerSymbol*p.SymbolsPerBlock != 8*p.BytesPerBlock {
		return nil, newError(KindInvalidAlphabetSize, -1, family.Name()+" block geometry is inconsistent")
	}
	size := alphabet.Size()
	if size != p.Radix() && (p.CheckRadix == 0 || size != p.CheckRadix) {
		msg := family.Name() + " needs " + strconv.Itoa(p.Radix())
		if p.CheckRadix != 0 {
			msg += " or " + strconv.Itoa(p.CheckRadix)
		}
		return nil, newError(KindInvalidAlphabetSize, -1, msg+" symbols, got "+strconv.Itoa(size))
	}
	return &Codec{
		name:     name,
		family:   family,
		params:   p,
		alphabet: alphabet,
	}, nil
}

// MustCodec is like NewCodec but panics on error.
func MustCodec(name string, family Family, alphabet *Alphabet) *Codec {
	c, err := NewCodec(name, family, alphabet)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec) Name() string { return c.name }

func (c *Codec) Family() Family { return c.family }

func (c *Codec) Params() Params { return c.params }

func (c *Codec) Alphabet() *Alphabet { return c.alphabet }

func (c *Codec) String() string { return c.name }

// Resolve validates opts against the codec and injects the family defaults.
func (c *Codec) Resolve(opts Options) (Options, error) {
	if unsupported := opts &^ c.family.Supported(); unsupported != None {
		return None, newError(KindIncompatibleOptions, -1, "option "+unsupported.String()+" is not supported by "+c.name)
	}
	if opts.Has(Padding | NoPadding) {
		return None, newError(KindIncompatibleOptions, -1, "padding and no-padding are mutually exclusive")
	}
	if opts.Has(Checksum) {
		if opts.Has(Padding) {
			return None, newError(KindIncompatibleOptions, -1, "padding and checksum are mutually exclusive")
		}
		if c.alphabet.Size() != c.params.CheckRadix {
			return None, newError(KindIncompatibleOptions, -1, "checksum needs a "+strconv.Itoa(c.params.CheckRadix)+" symbol alphabet")
		}
	}
	if opts.Has(Lowercase) && c.alphabet.CaseSensitive() {
		return None, newError(KindIncompatibleOptions, -1, "lowercase output of a case sensitive alphabet")
	}
	if opts&(Padding|NoPadding) == None {
		opts |= c.family.Defaults()
		if opts.Has(Checksum) {
			opts = opts&^Padding | NoPadding
		}
	}
	if opts.Has(Indent) {
		opts |= Wrap
	}
	return opts, nil
}

// EncodedLen returns the length of the encoding of n bytes with the given (resolved) options.
// Compress is ignored: the result is an upper bound in that case.
func (c *Codec) EncodedLen(n int, opts Options) int {
	p := c.params
	syms := n / p.BytesPerBlock * p.SymbolsPerBlock
	if rem := n % p.BytesPerBlock; rem > 0 {
		if opts.Has(Padding) {
			syms += p.SymbolsPerBlock
		} else {
			syms += c.family.encodedSymbols(rem)
		}
	}
	if opts.Has(Checksum) && n > 0 {
		syms++
	}
	if opts.Has(Wrap) && syms > 0 {
		breaks := (syms - 1) / p.LineWidth
		if opts.Has(Indent) {
			breaks *= 2
		}
		syms += breaks
	}
	return syms
}

// Encode returns the encoding of src.
func (c *Codec) Encode(src []byte, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := c.NewEncoder(&buf, opts)
	if err != nil {
		return nil, err
	}
	buf.Grow(c.EncodedLen(len(src), enc.opts))
	if _, err := enc.Write(src); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeToString returns the encoding of src as a string.
func (c *Codec) EncodeToString(src []byte, opts Options) (string, error) {
	b, err := c.Encode(src, opts)
	return string(b), err
}

// MustEncodeToString is like EncodeToString but panics on error.
func (c *Codec) MustEncodeToString(src []byte, opts Options) string {
	s, err := c.EncodeToString(src, opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode returns the bytes represented by src. Nothing is returned when decoding fails.
func (c *Codec) Decode(src []byte, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	dec, err := c.NewDecoder(&buf, opts)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Write(src); err != nil {
		return nil, err
	}
	if err := dec.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeString returns the bytes represented by s.
func (c *Codec) DecodeString(s string, opts Options) ([]byte, error) {
	return c.Decode([]byte(s), opts)
}

// MustDecodeString is like DecodeString but panics on error.
func (c *Codec) MustDecodeString(s string, opts Options) []byte {
	b, err := c.DecodeString(s, opts)
	if err != nil {
		panic(err)
	}
	return b
}

// NewReader returns a reader that decodes everything read from r.
func (c *Codec) NewReader(r io.Reader, opts Options) (io.Reader, error) {
	dr := &decodingReader{
		r:  r,
		in: make([]byte, 4096),
	}
	dec, err := c.NewDecoder(&dr.buf, opts)
	if err != nil {
		return nil, err
	}
	dr.dec = dec
	return dr, nil
}

// Lookup returns the predefined codec with the given name.
func Lookup(name string) (*Codec, bool) {
	for _, c := range []*Codec{StdBase64, URLBase64, StdBase32, HexBase32, Crockford, ZBase32} {
		if strings.EqualFold(c.name, name) {
			return c, true
		}
	}
	return nil, false
}
