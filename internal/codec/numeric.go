package codec

import (
	"math"
	"math/big"
	"strconv"
)

const (
	numericBits  = 5
	numericRadix = 1 << numericBits
	checkRadix   = 37
)

// Numeric encodes single unsigned integers as Crockford Base32 symbol strings, most significant
// symbol first, without any block structure.
type Numeric struct {
	alphabet *Alphabet
}

// Number is the numeric codec over the Crockford alphabet.
var Number = MustNumeric(CrockfordAlphabet)

// NewNumeric creates a numeric codec. The alphabet needs 32 symbols, or 37 to support Checksum.
func NewNumeric(alphabet *Alphabet) (*Numeric, error) {
	if s := alphabet.Size(); s != numericRadix && s != checkRadix {
		return nil, newError(KindInvalidAlphabetSize, -1, "numeric codec needs 32 or 37 symbols, got "+strconv.Itoa(s))
	}
	return &Numeric{alphabet: alphabet}, nil
}

// MustNumeric is like NewNumeric but panics on error.
func MustNumeric(alphabet *Alphabet) *Numeric {
	n, err := NewNumeric(alphabet)
	if err != nil {
		panic(err)
	}
	return n
}

func (n *Numeric) resolve(opts Options) (Options, error) {
	const supported = Padding | NoPadding | Relax | Pure | Checksum | Lowercase
	if unsupported := opts &^ supported; unsupported != None {
		return None, newError(KindIncompatibleOptions, -1, "option "+unsupported.String()+" is not supported by numeric values")
	}
	if opts.Has(Padding | NoPadding) {
		return None, newError(KindIncompatibleOptions, -1, "padding and no-padding are mutually exclusive")
	}
	if opts.Has(Checksum) {
		if opts.Has(Padding) {
			return None, newError(KindIncompatibleOptions, -1, "padding and checksum are mutually exclusive")
		}
		if n.alphabet.Size() != checkRadix {
			return None, newError(KindIncompatibleOptions, -1, "checksum needs a 37 symbol alphabet")
		}
	}
	if opts.Has(Lowercase) && n.alphabet.CaseSensitive() {
		return None, newError(KindIncompatibleOptions, -1, "lowercase output of a case sensitive alphabet")
	}
	return opts, nil
}

// EncodeUint32 encodes v. Padding left-pads the result with zero symbols to 7 symbols.
func (n *Numeric) EncodeUint32(v uint32, opts Options) (string, error) {
	return n.encode(strconv.FormatUint(uint64(v), numericRadix), 7, int(v%checkRadix), opts)
}

// EncodeUint64 encodes v. Padding left-pads the result with zero symbols to 13 symbols.
func (n *Numeric) EncodeUint64(v uint64, opts Options) (string, error) {
	return n.encode(strconv.FormatUint(v, numericRadix), 13, int(v%checkRadix), opts)
}

// EncodeBig encodes a non-negative big integer. Padding left-pads the result to a multiple of
// 8 symbols.
func (n *Numeric) EncodeBig(v *big.Int, opts Options) (string, error) {
	if v.Sign() < 0 {
		return "", newError(KindValueOverflow, -1, "negative values cannot be encoded")
	}
	digits := v.Text(numericRadix)
	check := new(big.Int).Mod(v, big.NewInt(checkRadix))
	width := (len(digits) + 7) / 8 * 8
	return n.encode(digits, width, int(check.Int64()), opts)
}

// MustEncodeUint64 is like EncodeUint64 but panics on error.
func (n *Numeric) MustEncodeUint64(v uint64, opts Options) string {
	s, err := n.EncodeUint64(v, opts)
	if err != nil {
		panic(err)
	}
	return s
}

// encode maps digits, as produced by strconv or math/big in base 32, onto the alphabet.
func (n *Numeric) encode(digits string, width, check int, opts Options) (string, error) {
	opts, err := n.resolve(opts)
	if err != nil {
		return "", err
	}
	out := make([]byte, 0, width+1)
	if opts.Has(Padding) {
		for i := len(digits); i < width; i++ {
			out = append(out, n.alphabet.Symbol(0))
		}
	}
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		var idx int
		if c >= '0' && c <= '9' {
			idx = int(c - '0')
		} else {
			idx = int(c-'a') + 10
		}
		out = append(out, n.alphabet.Symbol(idx))
	}
	if opts.Has(Checksum) {
		out = append(out, n.alphabet.Symbol(check))
	}
	if opts.Has(Lowercase) {
		for i, c := range out {
			out[i] = toLower(c)
		}
	}
	return string(out), nil
}

// DecodeUint32 decodes s into a 32 bit value.
func (n *Numeric) DecodeUint32(s string, opts Options) (uint32, error) {
	v, err := n.decodeUint(s, opts, math.MaxUint32)
	return uint32(v), err
}

// DecodeUint64 decodes s into a 64 bit value.
func (n *Numeric) DecodeUint64(s string, opts Options) (uint64, error) {
	return n.decodeUint(s, opts, math.MaxUint64)
}

// MustDecodeUint64 is like DecodeUint64 but panics on error.
func (n *Numeric) MustDecodeUint64(s string, opts Options) uint64 {
	v, err := n.DecodeUint64(s, opts)
	if err != nil {
		panic(err)
	}
	return v
}

func (n *Numeric) decodeUint(s string, opts Options, limit uint64) (uint64, error) {
	var v uint64
	pending, pendingOff, err := n.scan(s, opts, func(idx int, off int) error {
		if v > limit>>numericBits {
			return newError(KindValueOverflow, int64(off), "value does not fit "+strconv.Itoa(bitLen(limit))+" bits")
		}
		v = v<<numericBits | uint64(idx)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if pending >= 0 && int(v%checkRadix) != pending {
		return 0, n.mismatch(pendingOff, int(v%checkRadix))
	}
	return v, nil
}

// DecodeBig decodes s into an arbitrarily large value.
func (n *Numeric) DecodeBig(s string, opts Options) (*big.Int, error) {
	v := new(big.Int)
	pending, pendingOff, err := n.scan(s, opts, func(idx int, _ int) error {
		v.Lsh(v, numericBits)
		v.Or(v, big.NewInt(int64(idx)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if pending >= 0 {
		check := int(new(big.Int).Mod(v, big.NewInt(checkRadix)).Int64())
		if check != pending {
			return nil, n.mismatch(pendingOff, check)
		}
	}
	return v, nil
}

func (n *Numeric) mismatch(off int, expected int) error {
	return newError(KindChecksumMismatch, int64(off), "expected "+strconv.QuoteRune(rune(n.alphabet.Symbol(expected))))
}

// scan walks the value symbols of s and hands each one to fold. With Checksum, the last symbol is
// held back and returned as pending, otherwise pending is -1.
func (n *Numeric) scan(s string, opts Options, fold func(idx int, off int) error) (pending int, pendingOff int, err error) {
	opts, err = n.resolve(opts)
	if err != nil {
		return -1, -1, err
	}
	checksum := opts.Has(Checksum)
	pending, pendingOff = -1, -1
	count := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		idx, ok := n.alphabet.Index(c)
		if ok && idx >= numericRadix && !checksum {
			ok = false
		}
		if !ok {
			if !opts.Has(Pure) && (c == '-' || isSpace(c)) {
				continue
			}
			if opts.Has(Relax) {
				continue
			}
			return -1, -1, newError(KindInvalidCharacter, int64(i), "unexpected "+strconv.QuoteRune(rune(c)))
		}
		if !checksum {
			if err := fold(idx, i); err != nil {
				return -1, -1, err
			}
			count++
			continue
		}
		if pending >= 0 {
			if pending >= numericRadix {
				if !opts.Has(Relax) {
					return -1, -1, newError(KindInvalidCharacter, int64(pendingOff), "check symbol inside the value")
				}
			} else {
				if err := fold(pending, pendingOff); err != nil {
					return -1, -1, err
				}
				count++
			}
		}
		pending, pendingOff = idx, i
	}
	if count == 0 {
		return -1, -1, newError(KindEmptyInput, -1, "no value symbols")
	}
	return pending, pendingOff, nil
}

func bitLen(limit uint64) int {
	n := 0
	for ; limit != 0; limit >>= 1 {
		n++
	}
	return n
}
