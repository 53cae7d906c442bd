package enc

import (
	"bytes"
	"io"
	"strings"

	"github.com/bokysan/basecodec/internal/codec"
)

// Encoding is a named binary-to-text encoding as exposed to the commands and the HTTP service.
type Encoding interface {
	// Name is the user-friendly name of this encoding
	Name() string
	// Code represents the short (one-letter) code for the encoding
	Code() byte

	// NewEncoder returns a writer that encodes everything written to it into w. The encoded
	// output is complete only after Close.
	NewEncoder(w io.Writer, opts codec.Options) (io.WriteCloser, error)

	// NewDecoder is the reverse process of encoding
	NewDecoder(w io.Writer, opts codec.Options) (io.WriteCloser, error)

	// BlocksizeRaw returns the block size (number of bytes) this encoding takes at one time
	BlocksizeRaw() int

	// BlocksizeEncoded returns the block size (number of symbols) output by this encoding for every input block
	BlocksizeEncoded() int

	// Streaming reports whether output is produced while input is still arriving.
	Streaming() bool

	// Return a list of test patterns for the specified encoding
	TestPatterns() []string
}

var registry = []Encoding{
	Base64,
	Base64URL,
	Base64u,
	Base32,
	Base32Hex,
	Crockford,
	ZBase32,
	Base85,
	Base91,
	Base128,
	Base32768,
	Raw,
}

// All returns every registered encoding.
func All() []Encoding {
	res := make([]Encoding, len(registry))
	copy(res, registry)
	return res
}

// Lookup finds an encoding by its name (case-insensitive) or by its one-letter code.
func Lookup(name string) (Encoding, bool) {
	for _, e := range registry {
		if strings.EqualFold(e.Name(), name) {
			return e, true
		}
	}
	if len(name) == 1 {
		for _, e := range registry {
			if e.Code() == name[0] {
				return e, true
			}
		}
	}
	return nil, false
}

// EncodeToString encodes data in one go.
func EncodeToString(e Encoding, data []byte, opts codec.Options) (string, error) {
	var buf bytes.Buffer
	if err := pipe(&buf, data, opts, e.NewEncoder); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DecodeString decodes s in one go.
func DecodeString(e Encoding, s string, opts codec.Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := pipe(&buf, []byte(s), opts, e.NewDecoder); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pipe(w io.Writer, data []byte, opts codec.Options, open func(io.Writer, codec.Options) (io.WriteCloser, error)) error {
	wc, err := open(w, opts)
	if err != nil {
		return err
	}
	if _, err := wc.Write(data); err != nil {
		return err
	}
	return wc.Close()
}
