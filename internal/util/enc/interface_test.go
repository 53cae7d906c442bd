package enc

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/bokysan/basecodec/internal/codec"
)

var encoderTests = [][]byte{
	[]byte("\000\000\000\000\377\377\377\377\125\125\125\125\252\252\252\252" +
		"\201\143\310\322\307\174\262\027\137\117\316\311\111\055\122\041" +
		"\141\251\161\040\045\263\006\163\346\330\104\060\171\120\127\277"),
	[]byte("a"),
	[]byte("ab"),
	[]byte("abcdefg"),
	[]byte("abcdefghijklmnopqrstuvwxyz"),
	bytes.Repeat([]byte{0}, 15),
}

func Test_RoundTrip(t *testing.T) {
	for _, e := range All() {
		for _, encoderTest := range encoderTests {
			encoded, err := EncodeToString(e, encoderTest, codec.None)
			require.NoError(t, err, e.Name())
			decoded, err := DecodeString(e, encoded, codec.None)
			require.NoError(t, err, e.Name())
			require.Equal(t, encoderTest, decoded, e.Name())
		}
	}
}

func Test_TestPatterns(t *testing.T) {
	for _, e := range All() {
		for _, p := range e.TestPatterns() {
			_, err := DecodeString(e, p, codec.None)
			require.NoError(t, err, "%v: %q", e.Name(), p)
		}
	}
}

func Test_UniqueNamesAndCodes(t *testing.T) {
	names := map[string]bool{}
	codes := map[byte]bool{}
	for _, e := range All() {
		require.False(t, names[e.Name()], e.Name())
		require.False(t, codes[e.Code()], e.Name())
		names[e.Name()] = true
		codes[e.Code()] = true
		require.Greater(t, e.BlocksizeRaw(), 0)
		require.Greater(t, e.BlocksizeEncoded(), 0)
	}
}

func Test_Lookup(t *testing.T) {
	e, ok := Lookup("Base32Hex")
	require.True(t, ok)
	require.Equal(t, Base32Hex, e)

	e, ok = Lookup("X")
	require.True(t, ok)
	require.Equal(t, Base91, e)

	_, ok = Lookup("base16")
	require.False(t, ok)
	_, ok = Lookup("?")
	require.False(t, ok)
}

func Test_EngineOptions(t *testing.T) {
	encoded, err := EncodeToString(Crockford, []byte("foo"), codec.Checksum)
	require.NoError(t, err)
	require.Equal(t, "CSQPYY", encoded)

	encoded, err = EncodeToString(Base64u, []byte("Ma"), codec.None)
	require.NoError(t, err)
	require.Equal(t, "twe", encoded)

	encoded, err = EncodeToString(Base64u, []byte("Ma"), codec.Padding)
	require.NoError(t, err)
	require.Equal(t, "twe=", encoded)

	_, err = EncodeToString(Base64, []byte("Ma"), codec.Compress)
	require.True(t, errors.Is(err, codec.ErrIncompatibleOptions))
}

func Test_EngineErrorsCarryStack(t *testing.T) {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	_, err := Base64.NewEncoder(&bytes.Buffer{}, codec.Compress)
	require.Error(t, err)
	_, ok := err.(stackTracer)
	require.True(t, ok, "%T", err)
	require.True(t, errors.Is(err, codec.ErrIncompatibleOptions))
	var cerr *codec.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, codec.KindIncompatibleOptions, cerr.Kind)

	_, err = Crockford.NewDecoder(&bytes.Buffer{}, codec.Padding|codec.Checksum)
	require.Error(t, err)
	_, ok = err.(stackTracer)
	require.True(t, ok, "%T", err)
	require.True(t, errors.Is(err, codec.ErrIncompatibleOptions))
}

func Test_BufferedRejectsOptions(t *testing.T) {
	for _, e := range []Encoding{Base85, Base91, Base128, Base32768, Raw} {
		require.False(t, e.Streaming())
		_, err := e.NewEncoder(&bytes.Buffer{}, codec.Wrap)
		require.True(t, errors.Is(err, codec.ErrIncompatibleOptions), e.Name())
		_, err = e.NewDecoder(&bytes.Buffer{}, codec.Relax)
		require.True(t, errors.Is(err, codec.ErrIncompatibleOptions), e.Name())
	}
}

func Test_BufferedWriter(t *testing.T) {
	var out bytes.Buffer
	w, err := Base85.NewEncoder(&out, codec.None)
	require.NoError(t, err)
	_, err = w.Write([]byte("\000\000"))
	require.NoError(t, err)
	require.Zero(t, out.Len())
	_, err = w.Write([]byte("\000\000"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, "z", out.String())

	_, err = w.Write([]byte("x"))
	require.True(t, errors.Is(err, codec.ErrFinalized))
	require.True(t, errors.Is(w.Close(), codec.ErrFinalized))
}
