package codec

import (
	"bytes"
	"io"
)

// decodingReader adapts the push based Decoder to io.Reader.
type decodingReader struct {
	r   io.Reader
	dec *Decoder
	buf bytes.Buffer
	in  []byte
	err error
}

func (d *decodingReader) Read(p []byte) (int, error) {
	for d.buf.Len() == 0 && d.err == nil {
		n, err := d.r.Read(d.in)
		if n > 0 {
			if _, werr := d.dec.Write(d.in[:n]); werr != nil {
				d.err = werr
				break
			}
		}
		if err == io.EOF {
			if cerr := d.dec.Close(); cerr != nil {
				d.err = cerr
			} else {
				d.err = io.EOF
			}
		} else if err != nil {
			d.err = err
		}
	}
	if d.buf.Len() > 0 {
		return d.buf.Read(p)
	}
	return 0, d.err
}

// encodingWriter closes both the encoder and the underlying writer.
type encodingWriter struct {
	*Encoder
	c io.Closer
}

func (e *encodingWriter) Close() error {
	if err := e.Encoder.Close(); err != nil {
		_ = e.c.Close()
		return err
	}
	return e.c.Close()
}

// NewWriteCloser returns an encoder whose Close also closes w.
func (c *Codec) NewWriteCloser(w io.WriteCloser, opts Options) (io.WriteCloser, error) {
	enc, err := c.NewEncoder(w, opts)
	if err != nil {
		return nil, err
	}
	return &encodingWriter{Encoder: enc, c: w}, nil
}
