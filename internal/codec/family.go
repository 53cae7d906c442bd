package codec

import (
	"strconv"
)

// Params holds the per-family block constants.
type Params struct {
	BitsPerSymbol   int
	SymbolsPerBlock int
	BytesPerBlock   int
	PadChar         byte
	LineWidth       int
	// CheckRadix is the size of the extended alphabet needed for a check symbol, 0 if the
	// family has none.
	CheckRadix int
	// Separators lists characters skipped between symbols unless Pure is set.
	Separators string
}

// Radix is the number of value symbols.
func (p Params) Radix() int {
	return 1 << uint(p.BitsPerSymbol)
}

func (p Params) mask() uint64 {
	return uint64(p.Radix() - 1)
}

func (p Params) isSeparator(c byte) bool {
	for i := 0; i < len(p.Separators); i++ {
		if p.Separators[i] == c {
			return true
		}
	}
	return false
}

// Family is one of the closed set of symbol families: Base64, Base32, CrockfordBase32 and
// ZBase32Family. The family decides how a partial block is flushed.
type Family interface {
	Name() string
	Params() Params
	// Defaults returns the padding option applied when neither Padding nor NoPadding is given.
	Defaults() Options
	// Supported returns every option the family accepts.
	Supported() Options

	// encodedSymbols returns the number of symbols needed for a partial block of modulus bytes.
	encodedSymbols(modulus int) int
	// decodedBytes returns the number of whole bytes in a partial block of modulus symbols, or
	// 0 when not even one byte can be formed.
	decodedBytes(modulus int) int
	compressor() compressor
}

const commonOptions = Padding | NoPadding | Wrap | Indent | Relax | Pure | Lowercase

type base64Family struct{}

func (base64Family) Name() string { return "base64" }

func (base64Family) Params() Params {
	return Params{
		BitsPerSymbol:   6,
		SymbolsPerBlock: 4,
		BytesPerBlock:   3,
		PadChar:         '=',
		LineWidth:       76,
	}
}

func (base64Family) Defaults() Options  { return Padding }
func (base64Family) Supported() Options { return commonOptions }

func (base64Family) encodedSymbols(modulus int) int {
	switch modulus {
	case 1:
		return 2
	case 2:
		return 3
	}
	panic("codec: base64 encoder flushed with modulus " + strconv.Itoa(modulus))
}

func (base64Family) decodedBytes(modulus int) int {
	switch modulus {
	case 1:
		return 0
	case 2:
		return 1
	case 3:
		return 2
	}
	panic("codec: base64 decoder flushed with modulus " + strconv.Itoa(modulus))
}

func (base64Family) compressor() compressor { return nil }

type base32Family struct {
	name       string
	defaults   Options
	extra      Options
	checkRadix int
	separators string
	compress   compressor
}

func (f *base32Family) Name() string { return f.name }

func (f *base32Family) Params() Params {
	return Params{
		BitsPerSymbol:   5,
		SymbolsPerBlock: 8,
		BytesPerBlock:   5,
		PadChar:         '=',
		LineWidth:       72,
		CheckRadix:      f.checkRadix,
		Separators:      f.separators,
	}
}

func (f *base32Family) Defaults() Options  { return f.defaults }
func (f *base32Family) Supported() Options { return commonOptions | f.extra }

func (f *base32Family) encodedSymbols(modulus int) int {
	switch modulus {
	case 1:
		return 2
	case 2:
		return 4
	case 3:
		return 5
	case 4:
		return 7
	}
	panic("codec: base32 encoder flushed with modulus " + strconv.Itoa(modulus))
}

func (f *base32Family) decodedBytes(modulus int) int {
	switch modulus {
	case 1:
		return 0
	case 2, 3:
		return 1
	case 4:
		return 2
	case 5, 6:
		return 3
	case 7:
		return 4
	}
	panic("codec: base32 decoder flushed with modulus " + strconv.Itoa(modulus))
}

func (f *base32Family) compressor() compressor { return f.compress }

// The families.
var (
	Base64 Family = base64Family{}
	Base32 Family = &base32Family{
		name:     "base32",
		defaults: Padding,
	}
	CrockfordBase32 Family = &base32Family{
		name:       "crockford",
		defaults:   NoPadding,
		extra:      Checksum,
		checkRadix: 37,
		separators: "-",
	}
	ZBase32Family Family = &base32Family{
		name:     "zbase32",
		defaults: NoPadding,
		extra:    Compress,
		compress: trailingZeroCompressor{},
	}
)
