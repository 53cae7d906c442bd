package codec

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_Alphabet(t *testing.T) {
	for i := 0; i < Base64Alphabet.Size(); i++ {
		idx, ok := Base64Alphabet.Index(Base64Alphabet.Symbol(i))
		require.True(t, ok)
		require.Equal(t, i, idx)
	}
	_, ok := Base64Alphabet.Index('=')
	require.False(t, ok)

	upper, _ := Base32Alphabet.Index('M')
	lower, ok := Base32Alphabet.Index('m')
	require.True(t, ok)
	require.Equal(t, upper, lower)

	a, _ := Base64Alphabet.Index('a')
	A, _ := Base64Alphabet.Index('A')
	require.NotEqual(t, a, A)
}

func Test_AlphabetAliases(t *testing.T) {
	for from, to := range map[byte]byte{'O': '0', 'o': '0', 'I': '1', 'i': '1', 'L': '1', 'l': '1'} {
		got, ok := CrockfordAlphabet.Index(from)
		require.True(t, ok, string(from))
		want, _ := CrockfordAlphabet.Index(to)
		require.Equal(t, want, got, string(from))
	}
	_, ok := CrockfordAlphabet.Index('u')
	require.True(t, ok)
	require.Equal(t, 37, CrockfordAlphabet.Size())
}

func Test_NewAlphabet(t *testing.T) {
	_, err := NewAlphabet("", true, nil)
	require.True(t, errors.Is(err, ErrInvalidAlphabetSize))
	_, err = NewAlphabet(strings.Repeat("a", 257), true, nil)
	require.True(t, errors.Is(err, ErrInvalidAlphabetSize))

	dup := MustAlphabet("aab", true, nil)
	idx, _ := dup.Index('a')
	require.Equal(t, 0, idx)
	require.Equal(t, "aab", dup.String())
}
