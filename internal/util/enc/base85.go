package enc

import (
	"encoding/ascii85"

	"github.com/pkg/errors"
)

// Base85 is the btoa/Adobe variant: 4 bytes to 5 characters, with 'z' for an all-zero group.
var Base85 Encoding = &bufferedEncoding{
	name:    "base85",
	code:    'W',
	raw:     4,
	encoded: 5,
	encode: func(data []byte) ([]byte, error) {
		dst := make([]byte, ascii85.MaxEncodedLen(len(data)))
		n := ascii85.Encode(dst, data)
		return dst[:n], nil
	},
	decode: func(data []byte) ([]byte, error) {
		dst := make([]byte, 4*len(data))
		ndst, _, err := ascii85.Decode(dst, data, true)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return dst[:ndst], nil
	},
	patterns: func() []string {
		str := make([]byte, 85)
		// 33 (!) through 117 (u)
		for k := range str {
			str[k] = byte(k + 33)
		}
		return []string{
			string(str),
		}
	},
}
