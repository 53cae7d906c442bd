package enc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/bokysan/basecodec/internal/codec"
)

// bufferedEncoding wraps a one-shot third party codec. Input is collected until Close, which
// converts it in one go and writes the result.
type bufferedEncoding struct {
	name     string
	code     byte
	raw      int
	encoded  int
	encode   func([]byte) ([]byte, error)
	decode   func([]byte) ([]byte, error)
	patterns func() []string
}

func (b *bufferedEncoding) Name() string {
	return b.name
}

func (b *bufferedEncoding) String() string {
	return fmt.Sprintf("%v(%v)", b.Name(), string(b.Code()))
}

func (b *bufferedEncoding) Code() byte {
	return b.code
}

func (b *bufferedEncoding) NewEncoder(w io.Writer, opts codec.Options) (io.WriteCloser, error) {
	if err := b.check(opts); err != nil {
		return nil, err
	}
	return &bufferedWriter{w: w, convert: b.encode}, nil
}

func (b *bufferedEncoding) NewDecoder(w io.Writer, opts codec.Options) (io.WriteCloser, error) {
	if err := b.check(opts); err != nil {
		return nil, err
	}
	return &bufferedWriter{w: w, convert: b.decode}, nil
}

func (b *bufferedEncoding) check(opts codec.Options) error {
	if opts != codec.None {
		return errors.Wrapf(codec.ErrIncompatibleOptions, "%v does not support options [%v]", b.name, opts)
	}
	return nil
}

func (b *bufferedEncoding) BlocksizeRaw() int {
	return b.raw
}

func (b *bufferedEncoding) BlocksizeEncoded() int {
	return b.encoded
}

func (b *bufferedEncoding) Streaming() bool {
	return false
}

func (b *bufferedEncoding) TestPatterns() []string {
	return b.patterns()
}

type bufferedWriter struct {
	w       io.Writer
	buf     bytes.Buffer
	convert func([]byte) ([]byte, error)
	closed  bool
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.closed {
		return 0, errors.WithStack(codec.ErrFinalized)
	}
	return b.buf.Write(p)
}

func (b *bufferedWriter) Close() error {
	if b.closed {
		return errors.WithStack(codec.ErrFinalized)
	}
	b.closed = true
	res, err := b.convert(b.buf.Bytes())
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return nil
	}
	if _, err := b.w.Write(res); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
