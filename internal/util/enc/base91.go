package enc

import (
	"github.com/mtraver/base91"
	"github.com/pkg/errors"
)

const (
	cb91 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#$%&()*+,-/:;<=>?@[]^_`{|}~\""
)

var base91Encoding = base91.NewEncoding(cb91)

// Base91 converts each group of 13 bits into 2 radix-91 digits.
var Base91 Encoding = &bufferedEncoding{
	name:    "base91",
	code:    'X',
	raw:     13,
	encoded: 16,
	encode: func(data []byte) ([]byte, error) {
		return []byte(base91Encoding.EncodeToString(data)), nil
	},
	decode: func(data []byte) ([]byte, error) {
		res, err := base91Encoding.DecodeString(string(data))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return res, nil
	},
	patterns: func() []string {
		return []string{
			cb91,
		}
	},
}
