package addr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ParseAddress(t *testing.T) {
	a, err := ParseAddress("HTTP://127.0.0.1:8080")
	require.NoError(t, err)
	require.Equal(t, ProtoAddress{Scheme: "http", Host: "127.0.0.1:8080"}, a)
	require.Equal(t, "http://127.0.0.1:8080", a.String())
	require.False(t, a.Secure())

	a, err = ParseAddress(" localhost:9000 ")
	require.NoError(t, err)
	require.Equal(t, "http", a.Scheme)

	a, err = ParseAddress("https://:8443")
	require.NoError(t, err)
	require.True(t, a.Secure())

	_, err = ParseAddress("http://")
	require.Error(t, err)
	_, err = ParseAddress("")
	require.Error(t, err)
}

func Test_ResolveHostAddress(t *testing.T) {
	a, err := ResolveHostAddress("127.0.0.1:8080")
	require.NoError(t, err)
	require.Equal(t, 8080, a.Port)

	_, err = ResolveHostAddress("127.0.0.1:notaport")
	require.Error(t, err)
}
