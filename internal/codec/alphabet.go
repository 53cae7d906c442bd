package codec

import (
	"strconv"
)

// Alphabet is an ordered set of symbols. The reverse lookup table is built once, at construction,
// and an Alphabet is never modified afterwards so it can be shared freely between goroutines.
type Alphabet struct {
	symbols       string
	lookup        [256]int16
	caseSensitive bool
}

// Predefined alphabets.
var (
	Base64Alphabet    = MustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/", true, nil)
	Base64URLAlphabet = MustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_", true, nil)
	Base32Alphabet    = MustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", false, nil)
	Base32HexAlphabet = MustAlphabet("0123456789ABCDEFGHIJKLMNOPQRSTUV", false, nil)
	ZBase32Alphabet   = MustAlphabet("ybndrfg8ejkmcpqxot1uwisza345h769", false, nil)

	// CrockfordAlphabet holds the 32 value symbols followed by the 5 symbols that may only
	// appear as a check symbol.
	CrockfordAlphabet = MustAlphabet("0123456789ABCDEFGHJKMNPQRSTVWXYZ*~$=U", false, map[byte]byte{
		'O': '0',
		'I': '1',
		'L': '1',
	})
)

// NewAlphabet creates an alphabet from the given symbols. When caseSensitive is false, both cases
// of an ASCII letter resolve to the same index. aliases maps additional input characters onto
// existing symbols (e.g. 'O' to '0'). The character set itself is not validated: if a character
// occurs twice, the first occurrence wins.
func NewAlphabet(symbols string, caseSensitive bool, aliases map[byte]byte) (*Alphabet, error) {
	if len(symbols) == 0 || len(symbols) > 256 {
		return nil, newError(KindInvalidAlphabetSize, -1, "alphabet must have between 1 and 256 symbols, got "+strconv.Itoa(len(symbols)))
	}
	a := &Alphabet{
		symbols:       symbols,
		caseSensitive: caseSensitive,
	}
	for i := range a.lookup {
		a.lookup[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		a.set(symbols[i], int16(i))
	}
	for from, to := range aliases {
		if idx := a.lookup[to]; idx >= 0 {
			a.set(from, idx)
		}
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
func MustAlphabet(symbols string, caseSensitive bool, aliases map[byte]byte) *Alphabet {
	a, err := NewAlphabet(symbols, caseSensitive, aliases)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Alphabet) set(c byte, idx int16) {
	if a.lookup[c] < 0 {
		a.lookup[c] = idx
	}
	if !a.caseSensitive {
		if o := swapCase(c); o != c && a.lookup[o] < 0 {
			a.lookup[o] = idx
		}
	}
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Symbol returns the character for the symbol index i.
func (a *Alphabet) Symbol(i int) byte {
	return a.symbols[i]
}

// Index returns the symbol index of c.
func (a *Alphabet) Index(c byte) (int, bool) {
	idx := a.lookup[c]
	return int(idx), idx >= 0
}

// CaseSensitive reports whether lookups distinguish upper and lower case.
func (a *Alphabet) CaseSensitive() bool {
	return a.caseSensitive
}

func (a *Alphabet) String() string {
	return a.symbols
}

func swapCase(c byte) byte {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A'
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 'a'
	}
	return c
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
