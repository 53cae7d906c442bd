package enc

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/bokysan/basecodec/internal/codec"
)

const (
	// cb64u is the DNS safe alphabet used by iodine.
	cb64u = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-0123456789_"
)

// Encodings backed by the codec engine.
var (
	Base64    Encoding = &engineEncoding{code: 'S', codec: codec.StdBase64}
	Base64URL Encoding = &engineEncoding{code: 'L', codec: codec.URLBase64}
	Base64u   Encoding = &engineEncoding{
		code:     'U',
		codec:    codec.MustCodec("base64u", codec.Base64, codec.MustAlphabet(cb64u, true, nil)),
		defaults: codec.NoPadding,
	}
	Base32    Encoding = &engineEncoding{code: 'T', codec: codec.StdBase32}
	Base32Hex Encoding = &engineEncoding{code: 'H', codec: codec.HexBase32}
	Crockford Encoding = &engineEncoding{code: 'C', codec: codec.Crockford}
	ZBase32   Encoding = &engineEncoding{code: 'Z', codec: codec.ZBase32}
)

// engineEncoding exposes a codec.Codec. defaults is applied when the caller asks for neither
// Padding nor NoPadding.
type engineEncoding struct {
	code     byte
	codec    *codec.Codec
	defaults codec.Options
}

func (b *engineEncoding) Name() string {
	return b.codec.Name()
}

func (b *engineEncoding) String() string {
	return fmt.Sprintf("%v(%v)", b.Name(), string(b.Code()))
}

func (b *engineEncoding) Code() byte {
	return b.code
}

// Codec returns the underlying engine codec.
func (b *engineEncoding) Codec() *codec.Codec {
	return b.codec
}

func (b *engineEncoding) options(opts codec.Options) codec.Options {
	if opts&(codec.Padding|codec.NoPadding) == codec.None {
		opts |= b.defaults
	}
	return opts
}

func (b *engineEncoding) NewEncoder(w io.Writer, opts codec.Options) (io.WriteCloser, error) {
	e, err := b.codec.NewEncoder(w, b.options(opts))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return e, nil
}

func (b *engineEncoding) NewDecoder(w io.Writer, opts codec.Options) (io.WriteCloser, error) {
	d, err := b.codec.NewDecoder(w, b.options(opts))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return d, nil
}

func (b *engineEncoding) BlocksizeRaw() int {
	return b.codec.Params().BytesPerBlock
}

func (b *engineEncoding) BlocksizeEncoded() int {
	return b.codec.Params().SymbolsPerBlock
}

func (b *engineEncoding) Streaming() bool {
	return true
}

// TestPatterns returns the value symbols of the alphabet, which form whole blocks for every
// engine family.
func (b *engineEncoding) TestPatterns() []string {
	symbols := b.codec.Alphabet().String()
	return []string{
		symbols[:b.codec.Params().Radix()],
	}
}
