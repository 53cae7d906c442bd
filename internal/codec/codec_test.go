package codec

import (
	"bytes"
	"io"
	"io/ioutil"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var codecTest = []byte("\000\000\000\000\377\377\377\377\125\125\125\125\252\252\252\252" +
	"\201\143\310\322\307\174\262\027\137\117\316\311\111\055\122\041" +
	"\141\251\161\040\045\263\006\163\346\330\104\060\171\120\127\277")

func allCodecs() []*Codec {
	return []*Codec{StdBase64, URLBase64, StdBase32, HexBase32, Crockford, ZBase32}
}

func Test_KnownVectors(t *testing.T) {
	tests := []struct {
		c       *Codec
		opts    Options
		in      string
		encoded string
	}{
		{StdBase64, None, "Man", "TWFu"},
		{StdBase64, None, "Ma", "TWE="},
		{StdBase64, None, "M", "TQ=="},
		{StdBase64, NoPadding, "Ma", "TWE"},
		{StdBase64, None, "", ""},
		{StdBase32, None, "foo", "MZXW6==="},
		{StdBase32, None, "foobar", "MZXW6YTBOI======"},
		{StdBase32, NoPadding, "fo", "MZXQ"},
		{StdBase32, Lowercase, "foo", "mzxw6==="},
		{HexBase32, None, "foo", "CPNMU==="},
		{Crockford, None, "foo", "CSQPY"},
		{Crockford, Checksum, "foo", "CSQPYY"},
		{ZBase32, None, "\xF0\x00", "6yyy"},
		{ZBase32, Compress, "\xF0\x00", "6y"},
		{ZBase32, Compress, "\x01\x00\x00\x00\x00", "yr"},
	}
	for _, tt := range tests {
		encoded, err := tt.c.EncodeToString([]byte(tt.in), tt.opts)
		require.NoError(t, err, "%s %q", tt.c, tt.in)
		require.Equal(t, tt.encoded, encoded, "%s %q", tt.c, tt.in)
	}
}

func Test_DecodeKnownVectors(t *testing.T) {
	tests := []struct {
		c       *Codec
		opts    Options
		encoded string
		out     string
	}{
		{StdBase64, None, "TWFu", "Man"},
		{StdBase64, None, "TWE=", "Ma"},
		{StdBase64, None, "TW Fu", "Man"},
		{StdBase64, None, "TW\r\nFu\n", "Man"},
		{StdBase32, None, "mzxw6===", "foo"},
		{Crockford, None, "csqpy", "foo"},
		{Crockford, None, "CSQ-PY", "foo"},
		{Crockford, Checksum, "CSQPYY", "foo"},
		{ZBase32, Compress, "6y", "\xF0"},
		{ZBase32, Compress, "yr", "\x01"},
		{ZBase32, None, "6yyy", "\xF0\x00"},
	}
	for _, tt := range tests {
		decoded, err := tt.c.DecodeString(tt.encoded, tt.opts)
		require.NoError(t, err, "%s %q", tt.c, tt.encoded)
		require.Equal(t, []byte(tt.out), decoded, "%s %q", tt.c, tt.encoded)
	}
}

func Test_RoundTrip(t *testing.T) {
	optionSets := []Options{None, NoPadding, Wrap, Indent, Relax, Wrap | Relax, NoPadding | Indent}
	for _, c := range allCodecs() {
		for _, opts := range optionSets {
			for n := 0; n <= len(codecTest); n++ {
				src := codecTest[:n]
				encoded, err := c.Encode(src, opts)
				require.NoError(t, err)
				decoded, err := c.Decode(encoded, opts)
				require.NoError(t, err, "%s [%s] %q", c, opts, encoded)
				require.Equal(t, len(src), len(decoded))
				if n > 0 {
					require.Equal(t, src, decoded)
				}
			}
		}
	}
}

func Test_RoundTripChecksum(t *testing.T) {
	for n := 0; n <= len(codecTest); n++ {
		encoded, err := Crockford.Encode(codecTest[:n], Checksum|Wrap)
		require.NoError(t, err)
		decoded, err := Crockford.Decode(encoded, Checksum|Wrap)
		require.NoError(t, err)
		require.Equal(t, n, len(decoded))
		if n > 0 {
			require.Equal(t, codecTest[:n], decoded, "%q", encoded)
		}
	}
}

func Test_RoundTripCompress(t *testing.T) {
	for _, opts := range []Options{Compress, Compress | Wrap} {
		for n := 1; n <= len(codecTest); n++ {
			src := codecTest[:n]
			if src[n-1] == 0 {
				continue
			}
			encoded, err := ZBase32.Encode(src, opts)
			require.NoError(t, err)
			decoded, err := ZBase32.Decode(encoded, opts)
			require.NoError(t, err, "[%s] %q", opts, encoded)
			require.Equal(t, src, decoded)
		}
	}

	// the last non-zero bit of these inputs sits in a symbol shared by two bytes
	tests := []struct {
		src, encoded string
	}{
		{"\x00\x40", "ybyy"},
		{"\xff\x40", "97yy"},
		{"\x01\x02\x10", "yrbby"},
		{"\x01\x02\x10\x00\x00", "yrbby"},
		{"\xff\xff\xff\xff\x01", "999999ab"},
		{"\xff\xff\xff\xff\x01\x80", "999999aboy"},
	}
	for _, test := range tests {
		encoded := ZBase32.MustEncodeToString([]byte(test.src), Compress)
		require.Equal(t, test.encoded, encoded, "%q", test.src)
		want := strings.TrimRight(test.src, "\x00")
		for _, opts := range []Options{Compress, Compress | Relax} {
			decoded, err := ZBase32.DecodeString(encoded, opts)
			require.NoError(t, err, "%q [%s]", encoded, opts)
			require.Equal(t, []byte(want), decoded)
		}
	}
}

func Test_Determinism(t *testing.T) {
	for _, c := range allCodecs() {
		a := c.MustEncodeToString(codecTest, Wrap)
		b := c.MustEncodeToString(codecTest, Wrap)
		require.Equal(t, a, b)
	}
}

func Test_PaddingInvariant(t *testing.T) {
	for _, c := range allCodecs() {
		if c.Family().Supported()&Padding == None {
			continue
		}
		spb := c.Params().SymbolsPerBlock
		for n := 0; n <= len(codecTest); n++ {
			encoded, err := c.Encode(codecTest[:n], Padding)
			require.NoError(t, err)
			require.Equal(t, 0, len(encoded)%spb, "%s %d", c, n)
		}
	}
}

func Test_EncodedLen(t *testing.T) {
	long := bytes.Repeat(codecTest, 7)
	for _, c := range allCodecs() {
		for _, opts := range []Options{None, NoPadding, Wrap, Indent} {
			enc, err := c.NewEncoder(ioutil.Discard, opts)
			require.NoError(t, err)
			for n := 0; n < len(long); n += 13 {
				encoded, err := c.Encode(long[:n], opts)
				require.NoError(t, err)
				require.Equal(t, len(encoded), c.EncodedLen(n, enc.Options()), "%s [%s] %d", c, opts, n)
			}
		}
	}
}

func Test_Wrap(t *testing.T) {
	long := bytes.Repeat(codecTest, 5)

	encoded := StdBase64.MustEncodeToString(long, Wrap)
	lines := strings.Split(encoded, "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines[:len(lines)-1] {
		require.Len(t, line, 76)
	}

	encoded = StdBase32.MustEncodeToString(long, Indent)
	lines = strings.Split(encoded, "\n")
	require.Len(t, lines[0], 72)
	for _, line := range lines[1:] {
		require.True(t, strings.HasPrefix(line, " "))
	}

	decoded, err := StdBase32.DecodeString(encoded, Indent|Pure)
	require.NoError(t, err)
	require.Equal(t, long, decoded)

	_, err = StdBase32.DecodeString(encoded, Pure)
	require.True(t, errors.Is(err, ErrInvalidCharacter))
}

func Test_StreamingEquivalence(t *testing.T) {
	type run struct {
		c    *Codec
		opts Options
	}
	runs := []run{
		{Crockford, Checksum},
		{Crockford, Checksum | Wrap},
		{ZBase32, Compress},
		{ZBase32, Compress | Wrap},
	}
	for _, c := range allCodecs() {
		runs = append(runs, run{c, Wrap})
	}

	for _, r := range runs {
		whole := r.c.MustEncodeToString(codecTest, r.opts)

		for _, chunk := range []int{1, 2, 3, 7} {
			var buf bytes.Buffer
			enc, err := r.c.NewEncoder(&buf, r.opts)
			require.NoError(t, err)
			for i := 0; i < len(codecTest); i += chunk {
				end := i + chunk
				if end > len(codecTest) {
					end = len(codecTest)
				}
				_, err := enc.Write(codecTest[i:end])
				require.NoError(t, err)
			}
			require.NoError(t, enc.Close())
			require.Equal(t, whole, buf.String(), "%s [%s] chunk %d", r.c, r.opts, chunk)

			var out bytes.Buffer
			dec, err := r.c.NewDecoder(&out, r.opts)
			require.NoError(t, err)
			for i := 0; i < len(whole); i += chunk {
				end := i + chunk
				if end > len(whole) {
					end = len(whole)
				}
				_, err := dec.Write([]byte(whole[i:end]))
				require.NoError(t, err)
			}
			require.NoError(t, dec.Close())
			require.Equal(t, codecTest, out.Bytes(), "%s [%s] chunk %d", r.c, r.opts, chunk)
		}
	}
}

func Test_NewReader(t *testing.T) {
	encoded := StdBase64.MustEncodeToString(codecTest, Wrap)
	r, err := StdBase64.NewReader(iotest.OneByteReader(strings.NewReader(encoded)), Wrap)
	require.NoError(t, err)
	decoded, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, codecTest, decoded)

	r, err = StdBase64.NewReader(strings.NewReader("TW*u"), None)
	require.NoError(t, err)
	_, err = ioutil.ReadAll(r)
	require.True(t, errors.Is(err, ErrInvalidCharacter))
}

type nopCloser struct {
	bytes.Buffer
	closed bool
}

func (n *nopCloser) Close() error {
	n.closed = true
	return nil
}

func Test_NewWriteCloser(t *testing.T) {
	var sink nopCloser
	w, err := StdBase32.NewWriteCloser(&sink, None)
	require.NoError(t, err)
	_, err = io.WriteString(w, "foo")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.True(t, sink.closed)
	require.Equal(t, "MZXW6===", sink.String())
}

func Test_Finalized(t *testing.T) {
	enc, err := StdBase64.NewEncoder(ioutil.Discard, None)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	_, err = enc.Write([]byte("x"))
	require.True(t, errors.Is(err, ErrFinalized))
	require.True(t, errors.Is(enc.Close(), ErrFinalized))

	dec, err := StdBase64.NewDecoder(ioutil.Discard, None)
	require.NoError(t, err)
	require.NoError(t, dec.Close())
	_, err = dec.Write([]byte("TWFu"))
	require.True(t, errors.Is(err, ErrFinalized))
	require.True(t, errors.Is(dec.Close(), ErrFinalized))
}

func Test_NewCodec(t *testing.T) {
	_, err := NewCodec("broken", Base32, Base64Alphabet)
	require.True(t, errors.Is(err, ErrInvalidAlphabetSize))

	_, err = NewCodec("broken", Base64, CrockfordAlphabet)
	require.True(t, errors.Is(err, ErrInvalidAlphabetSize))

	short := MustAlphabet("0123456789ABCDEFGHJKMNPQRSTVWXYZ", false, nil)
	c, err := NewCodec("crockford32", CrockfordBase32, short)
	require.NoError(t, err)
	require.Equal(t, "CSQPY", c.MustEncodeToString([]byte("foo"), None))
	_, err = c.NewEncoder(ioutil.Discard, Checksum)
	require.True(t, errors.Is(err, ErrIncompatibleOptions))

	require.Equal(t, ZBase32Family, ZBase32.Family())
	require.Equal(t, CrockfordBase32, Crockford.Family())
}

func Test_Resolve(t *testing.T) {
	tests := []struct {
		c    *Codec
		opts Options
		ok   bool
		want Options
	}{
		{StdBase64, None, true, Padding},
		{StdBase64, Indent, true, Padding | Wrap | Indent},
		{StdBase64, Padding | NoPadding, false, None},
		{StdBase64, Lowercase, false, None},
		{StdBase64, Checksum, false, None},
		{StdBase32, Compress, false, None},
		{Crockford, None, true, NoPadding},
		{Crockford, Checksum, true, Checksum | NoPadding},
		{Crockford, Checksum | Padding, false, None},
		{Crockford, Compress, false, None},
		{ZBase32, Compress, true, Compress | NoPadding},
		{ZBase32, Checksum, false, None},
	}
	for _, tt := range tests {
		got, err := tt.c.Resolve(tt.opts)
		if !tt.ok {
			require.True(t, errors.Is(err, ErrIncompatibleOptions), "%s [%s]", tt.c, tt.opts)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "%s [%s]", tt.c, tt.opts)
	}
}

func Test_Lookup(t *testing.T) {
	c, ok := Lookup("Base32Hex")
	require.True(t, ok)
	require.Equal(t, HexBase32, c)

	_, ok = Lookup("base16")
	require.False(t, ok)
}
