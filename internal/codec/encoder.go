package codec

import (
	"io"

	"github.com/pkg/errors"
)

// Encoder is the encoding state machine. It implements io.WriteCloser: every Write feeds a chunk
// of raw bytes, Close flushes the partial block (and the check symbol) and finishes the operation.
// Encoded characters are written to the underlying writer at the end of every call.
type Encoder struct {
	c    *Codec
	p    Params
	opts Options
	w    io.Writer
	out  []byte

	reg     uint64
	modulus int
	eof     bool
	linePos int

	check int
	total int64
	held  bool
	err   error
}

// NewEncoder creates an encoder writing to w. Options are resolved first; an invalid combination
// fails here, before any input is consumed.
func (c *Codec) NewEncoder(w io.Writer, opts Options) (*Encoder, error) {
	resolved, err := c.Resolve(opts)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		c:    c,
		p:    c.params,
		opts: resolved,
		w:    w,
	}, nil
}

// Options returns the resolved options.
func (e *Encoder) Options() Options {
	return e.opts
}

// Write feeds p into the encoder.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.eof {
		return 0, newError(KindFinalized, -1, "write to a closed encoder")
	}
	if e.err != nil {
		return 0, e.err
	}

	bpb, spb := e.p.BytesPerBlock, e.p.SymbolsPerBlock
	compress := e.opts.Has(Compress)
	checksum := e.opts.Has(Checksum)

	for _, b := range p {
		if e.held {
			e.emitSymbols(e.reg, spb, spb)
			e.reg = 0
			e.held = false
		}
		e.reg = e.reg<<8 | uint64(b)
		e.modulus++
		e.total++
		if checksum {
			e.check = (e.check*256 + int(b)) % e.p.CheckRadix
		}
		if e.modulus == bpb {
			e.modulus = 0
			if compress {
				// The block may turn out to be the last one.
				e.held = true
				continue
			}
			e.emitSymbols(e.reg, spb, spb)
			e.reg = 0
		}
	}
	return len(p), e.flush()
}

// Close flushes the last block and finishes the encoder. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e.eof {
		return newError(KindFinalized, -1, "encoder already closed")
	}
	e.eof = true
	if e.err != nil {
		return e.err
	}

	bits, spb := e.p.BitsPerSymbol, e.p.SymbolsPerBlock
	switch {
	case e.held:
		e.emitCompressed(e.reg, spb)
	case e.modulus != 0:
		n := e.c.family.encodedSymbols(e.modulus)
		reg := e.reg << uint(n*bits-e.modulus*8)
		if e.opts.Has(Compress) {
			e.emitCompressed(reg, n)
		} else {
			e.emitSymbols(reg, n, n)
			e.pad(n)
		}
	}
	e.reg, e.modulus, e.held = 0, 0, false

	if e.opts.Has(Checksum) && e.total > 0 {
		e.put(e.c.alphabet.Symbol(e.check))
	}
	return e.flush()
}

func (e *Encoder) emitCompressed(reg uint64, n int) {
	keep := e.c.family.compressor().encodedKeep(e.p, reg, n)
	e.emitSymbols(reg, n, keep)
	if keep > 0 {
		e.pad(keep)
	}
}

func (e *Encoder) pad(emitted int) {
	if !e.opts.Has(Padding) {
		return
	}
	for i := emitted; i < e.p.SymbolsPerBlock; i++ {
		e.put(e.p.PadChar)
	}
}

// emitSymbols writes the first count of the width symbols held in the low width*bits bits of reg,
// most significant first.
func (e *Encoder) emitSymbols(reg uint64, width, count int) {
	bits := e.p.BitsPerSymbol
	mask := e.p.mask()
	for i := 0; i < count; i++ {
		idx := (reg >> uint((width-1-i)*bits)) & mask
		e.put(e.c.alphabet.Symbol(int(idx)))
	}
}

func (e *Encoder) put(ch byte) {
	if e.opts.Has(Wrap) && e.linePos >= e.p.LineWidth {
		e.out = append(e.out, '\n')
		if e.opts.Has(Indent) {
			e.out = append(e.out, ' ')
		}
		e.linePos = 0
	}
	if e.opts.Has(Lowercase) {
		ch = toLower(ch)
	}
	e.out = append(e.out, ch)
	e.linePos++
}

func (e *Encoder) flush() error {
	if len(e.out) == 0 {
		return nil
	}
	_, err := e.w.Write(e.out)
	e.out = e.out[:0]
	if err != nil {
		e.err = errors.WithStack(err)
		return e.err
	}
	return nil
}
