package codec

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Decoder is the decoding state machine. It implements io.WriteCloser: every Write feeds a chunk
// of encoded characters, Close validates the tail of the input and flushes the last bytes.
//
// The first error is sticky: every later Write or Close returns it again.
type Decoder struct {
	c       *Codec
	p       Params
	opts    Options
	w       io.Writer
	out     []byte
	handler ErrorHandler

	reg     uint64
	modulus int
	eof     bool
	offset  int64
	lastNL  bool

	// padState is -1 until the first padding character, then the number of padding characters
	// still owed.
	padState int

	pending    int
	pendingOff int64
	folded     bool
	check      int

	held    bool
	heldBuf [8]byte

	err error
}

// NewDecoder creates a decoder writing the decoded bytes to w.
func (c *Codec) NewDecoder(w io.Writer, opts Options) (*Decoder, error) {
	resolved, err := c.Resolve(opts)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		c:        c,
		p:        c.params,
		opts:     resolved,
		w:        w,
		padState: -1,
		pending:  -1,
	}, nil
}

// Options returns the resolved options.
func (d *Decoder) Options() Options {
	return d.opts
}

// SetErrorHandler installs a handler that can tolerate individual errors. A nil handler fails on
// every error not covered by Relax.
func (d *Decoder) SetErrorHandler(h ErrorHandler) {
	d.handler = h
}

// Write feeds the encoded characters in p. On error, the returned count is the number of
// characters consumed before the failing one.
func (d *Decoder) Write(p []byte) (int, error) {
	if d.eof {
		return 0, newError(KindFinalized, -1, "write to a closed decoder")
	}
	if d.err != nil {
		return 0, d.err
	}
	for i, ch := range p {
		if err := d.consume(ch, d.offset+int64(i)); err != nil {
			d.offset += int64(i) + 1
			d.out = d.out[:0]
			d.err = err
			return i, err
		}
		d.lastNL = ch == '\n'
	}
	d.offset += int64(len(p))
	return len(p), d.flush()
}

// Close validates the end of the input and writes the remaining bytes. It does not close the
// underlying writer.
func (d *Decoder) Close() error {
	if d.eof {
		return newError(KindFinalized, -1, "decoder already closed")
	}
	d.eof = true
	if d.err != nil {
		return d.err
	}
	if err := d.finish(); err != nil {
		d.out = d.out[:0]
		d.err = err
		return err
	}
	return d.flush()
}

func (d *Decoder) consume(ch byte, off int64) error {
	checksum := d.opts.Has(Checksum)
	if ch == d.p.PadChar && !checksum {
		return d.padding(off)
	}

	idx, ok := d.c.alphabet.Index(ch)
	if ok && idx >= d.p.Radix() && !checksum {
		ok = false
	}
	if !ok {
		if d.skippable(ch) {
			return nil
		}
		return d.tolerate(KindInvalidCharacter, off, "unexpected "+strconv.QuoteRune(rune(ch)))
	}

	if d.padState >= 0 {
		if err := d.tolerate(KindInvalidPaddingSequence, off, "data after padding"); err != nil {
			return err
		}
		d.padState = -1
	}

	if checksum {
		if d.pending >= 0 {
			if d.pending >= d.p.Radix() {
				if err := d.tolerate(KindInvalidCharacter, d.pendingOff, "check symbol inside data"); err != nil {
					return err
				}
			} else {
				d.push(d.pending)
				d.folded = true
			}
		}
		d.pending, d.pendingOff = idx, off
		return nil
	}
	d.push(idx)
	return nil
}

// skippable reports whether a character outside the alphabet is silently ignored.
func (d *Decoder) skippable(ch byte) bool {
	if d.opts.Has(Wrap) {
		if ch == '\n' || ch == '\r' {
			return true
		}
		if ch == ' ' && d.lastNL && d.opts.Has(Indent) {
			return true
		}
	}
	if d.opts.Has(Pure) {
		return false
	}
	return isSpace(ch) || d.p.isSeparator(ch)
}

func (d *Decoder) padding(off int64) error {
	switch {
	case d.padState < 0 && d.modulus != 0:
		if d.opts.Has(NoPadding) {
			if err := d.tolerate(KindInvalidPaddingSequence, off, "padding is disabled"); err != nil {
				return err
			}
		}
		owed := d.p.SymbolsPerBlock - d.modulus
		if err := d.flushPartial(off); err != nil {
			return err
		}
		d.padState = owed - 1
		return nil
	case d.padState > 0:
		d.padState--
		return nil
	}
	return d.tolerate(KindInvalidPaddingSequence, off, "unexpected padding")
}

func (d *Decoder) push(idx int) {
	bpb, spb := d.p.BytesPerBlock, d.p.SymbolsPerBlock
	if d.held {
		d.emit(d.heldBuf[:bpb])
		d.held = false
	}
	d.reg = d.reg<<uint(d.p.BitsPerSymbol) | uint64(idx)
	d.modulus++
	if d.modulus < spb {
		return
	}
	d.modulus = 0
	var block [8]byte
	for i := 0; i < bpb; i++ {
		block[i] = byte(d.reg >> uint(8*(bpb-1-i)))
	}
	d.reg = 0
	if d.opts.Has(Compress) {
		d.heldBuf = block
		d.held = true
		return
	}
	d.emit(block[:bpb])
}

// flushPartial emits the whole bytes of a partial block.
func (d *Decoder) flushPartial(off int64) error {
	m := d.modulus
	n := d.c.family.decodedBytes(m)
	reg := d.reg
	d.reg, d.modulus = 0, 0
	if n == 0 {
		return d.tolerate(KindIncompleteTrailingByte, off, strconv.Itoa(m)+" trailing symbol(s) cannot form a byte")
	}
	extra := uint(m*d.p.BitsPerSymbol - n*8)
	if reg&(1<<extra-1) != 0 {
		if err := d.tolerate(KindNonZeroInsignificantBits, off, "last symbol has non-zero low bits"); err != nil {
			return err
		}
	}
	reg >>= extra
	var buf [8]byte
	for i := 0; i < n; i++ {
		buf[i] = byte(reg >> uint(8*(n-1-i)))
	}
	b := buf[:n]
	if d.opts.Has(Compress) {
		b = b[:d.c.family.compressor().decodedKeep(b)]
	}
	d.emit(b)
	return nil
}

func (d *Decoder) finish() error {
	off := d.offset
	if d.opts.Has(Checksum) && d.pending >= 0 && !d.folded {
		return newError(KindEmptyInput, d.pendingOff, "check symbol without data")
	}
	if d.modulus != 0 {
		if d.opts.Has(Padding) && d.padState < 0 {
			if err := d.tolerate(KindInvalidPaddingSequence, off, "missing padding"); err != nil {
				return err
			}
		}
		if err := d.flushPartial(off); err != nil {
			return err
		}
	}
	if d.padState > 0 {
		if err := d.tolerate(KindInvalidPaddingSequence, off, strconv.Itoa(d.padState)+" padding character(s) missing"); err != nil {
			return err
		}
	}
	if d.held {
		b := d.heldBuf[:d.p.BytesPerBlock]
		d.emit(b[:d.c.family.compressor().decodedKeep(b)])
		d.held = false
	}
	if d.opts.Has(Checksum) && d.pending >= 0 && d.pending != d.check {
		return newError(KindChecksumMismatch, d.pendingOff, "expected "+strconv.QuoteRune(rune(d.c.alphabet.Symbol(d.check))))
	}
	return nil
}

func (d *Decoder) emit(b []byte) {
	if d.opts.Has(Checksum) {
		for _, c := range b {
			d.check = (d.check*256 + int(c)) % d.p.CheckRadix
		}
	}
	d.out = append(d.out, b...)
}

func (d *Decoder) tolerate(kind Kind, off int64, msg string) error {
	if d.opts.Has(Relax) {
		return nil
	}
	err := newError(kind, off, msg)
	if d.handler != nil && d.handler(err) {
		return nil
	}
	return err
}

func (d *Decoder) flush() error {
	if len(d.out) == 0 {
		return nil
	}
	_, err := d.w.Write(d.out)
	d.out = d.out[:0]
	if err != nil {
		d.err = errors.WithStack(err)
		return d.err
	}
	return nil
}
