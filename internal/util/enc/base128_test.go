package enc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/bokysan/basecodec/internal/codec"
)

func Test_Base128Transliterate(t *testing.T) {
	str := make([]byte, 128)
	for k := range str {
		str[k] = byte(k)
	}
	trans := escape128(str)
	require.Equal(t, len(str), len(trans))
	require.NotContains(t, string(trans), "-")

	back, err := unescape128(trans)
	require.NoError(t, err)
	require.Equal(t, str, back)

	_, err = unescape128([]byte("ab-c"))
	require.True(t, errors.Is(err, codec.ErrInvalidCharacter))
}

func Test_Base128Pack(t *testing.T) {
	for n := 0; n <= 15; n++ {
		require.Len(t, pack128(make([]byte, n)), (n*8+6)/7, "%d", n)
	}
	require.Equal(t, []byte{0x7f, 0x40}, pack128([]byte{0xff}))
}
