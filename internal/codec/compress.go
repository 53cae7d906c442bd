package codec

// compressor decides how much of the final block survives when Compress is requested.
type compressor interface {
	// encodedKeep returns how many of the n symbols in the left-aligned register are emitted.
	encodedKeep(p Params, reg uint64, n int) int
	// decodedKeep returns how many of the decoded bytes of the final block are emitted.
	decodedKeep(b []byte) int
}

// trailingZeroCompressor implements the z-base-32 rule: the trailing zero bytes of the final
// block are dropped and only the symbols covering the remaining bytes are written.
type trailingZeroCompressor struct{}

func (trailingZeroCompressor) encodedKeep(p Params, reg uint64, n int) int {
	bits := p.BitsPerSymbol
	width := n * bits
	k := 0
	for j := width/8 - 1; j >= 0; j-- {
		if byte(reg>>uint(width-8*(j+1))) != 0 {
			k = j + 1
			break
		}
	}
	// ceil(8k/bits) symbols hold k bytes; the rest of the last symbol is zero.
	return (8*k + bits - 1) / bits
}

func (trailingZeroCompressor) decodedKeep(b []byte) int {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return n
}
