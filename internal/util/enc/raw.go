package enc

// Raw does not do any translation whatsoever.
var Raw Encoding = &bufferedEncoding{
	name:    "raw",
	code:    'R',
	raw:     1,
	encoded: 1,
	encode: func(data []byte) ([]byte, error) {
		return data, nil
	},
	decode: func(data []byte) ([]byte, error) {
		return data, nil
	},
	patterns: func() []string {
		return []string{}
	},
}
