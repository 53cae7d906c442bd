package enc

import (
	"github.com/Max-Sum/base32768"
	"github.com/pkg/errors"
)

// Base32768 packs 15 bits into every UTF-16 code unit. Useful where length is counted in
// characters rather than bytes.
var Base32768 Encoding = &bufferedEncoding{
	name:    "base32768",
	code:    'K',
	raw:     15,
	encoded: 8,
	encode: func(data []byte) ([]byte, error) {
		return []byte(base32768.SafeEncoding.EncodeToString(data)), nil
	},
	decode: func(data []byte) ([]byte, error) {
		res, err := base32768.SafeEncoding.DecodeString(string(data))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return res, nil
	},
	patterns: func() []string {
		return []string{
			base32768.SafeEncoding.EncodeToString([]byte("aAbBcCdDeEfFgGhHiIjJkKlLmMnNoOpPqQrRsStTuUvVwWxXyYzZ")),
		}
	},
}
