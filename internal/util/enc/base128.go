package enc

import (
	"strconv"

	"github.com/pkg/errors"
	"go.chromium.org/luci/common/data/base128"

	"github.com/bokysan/basecodec/internal/codec"
)

const (
	/*
	 * Don't use '-' (restricted to middle of labels), prefer iso_8859-1
	 * accent chars since they might readily be entered in normal use,
	 * don't use 254-255 because of possible function overloading in DNS systems.
	 */
	cb128 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
		"\274\275\276\277" +
		"\300\301\302\303\304\305\306\307\310\311\312\313\314\315\316\317" +
		"\320\321\322\323\324\325\326\327\330\331\332\333\334\335\336\337" +
		"\340\341\342\343\344\345\346\347\350\351\352\353\354\355\356\357" +
		"\360\361\362\363\364\365\366\367\370\371\372\373\374\375"
)

var cb128Invert = func() [256]int16 {
	var res [256]int16
	for i := range res {
		res[i] = -1
	}
	for i := 0; i < len(cb128); i++ {
		res[cb128[i]] = int16(i)
	}
	return res
}()

// Base128 encodes 7 bytes to 8 characters from a mostly Latin-1 alphabet.
var Base128 Encoding = &bufferedEncoding{
	name:    "base128",
	code:    'V',
	raw:     7,
	encoded: 8,
	encode: func(data []byte) ([]byte, error) {
		return escape128(pack128(data)), nil
	},
	decode: func(data []byte) ([]byte, error) {
		src, err := unescape128(data)
		if err != nil {
			return nil, err
		}
		res, err := base128.DecodeString(string(src))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return res, nil
	},
	patterns: func() []string {
		return []string{
			cb128,
			"aAbBcCdDeEfFgGhHiIjJkKlLmMnNoOpPqQrRsStTuUvVwWxXyYzZ0123456789\274\275",
		}
	},
}

// pack128 splits src into 7 bit groups, most significant bit first. The last group is padded with
// zero bits.
func pack128(src []byte) []byte {
	dst := make([]byte, 0, (len(src)*8+6)/7)

	whichByte := uint(1)
	bufByte := byte(0)

	for _, val := range src {
		// Take the current buffer, add current value, shifted.
		// E.g. first round is first 7 bits of value
		dst = append(dst, bufByte|(val>>whichByte))

		// Prepare the remaining data for the next buffer.
		bufByte = (val & ((1 << whichByte) - 1)) << (7 - whichByte)

		if whichByte == 7 {
			dst = append(dst, bufByte)
			bufByte = 0
			whichByte = 0
		}
		whichByte++
	}
	if whichByte > 1 {
		dst = append(dst, bufByte)
	}
	return dst
}

func escape128(src []byte) []byte {
	res := make([]byte, len(src))
	for i, v := range src {
		res[i] = cb128[v]
	}
	return res
}

func unescape128(src []byte) ([]byte, error) {
	res := make([]byte, len(src))
	for i, v := range src {
		idx := cb128Invert[v]
		if idx < 0 {
			return nil, errors.Wrapf(codec.ErrInvalidCharacter, "base128: unexpected %v at input byte %d", strconv.QuoteRune(rune(v)), i)
		}
		res[i] = byte(idx)
	}
	return res, nil
}
