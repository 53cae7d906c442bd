package enc

import (
	"math/big"
	"strconv"

	"github.com/pkg/errors"

	"github.com/bokysan/basecodec/internal/codec"
)

// EncodeNumber parses value (decimal, or with a 0x/0o/0b prefix) as an unsigned integer of the
// given width and encodes it with the Crockford numeric codec. Bits 0 means any size.
func EncodeNumber(value string, bits int, opts codec.Options) (string, error) {
	switch bits {
	case 32, 64:
		v, err := strconv.ParseUint(value, 0, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return "", errors.Wrapf(codec.ErrValueOverflow, "%s does not fit %d bits", value, bits)
			}
			return "", errors.Wrapf(err, "Invalid number '%s'", value)
		}
		if bits == 32 {
			return codec.Number.EncodeUint32(uint32(v), opts)
		}
		return codec.Number.EncodeUint64(v, opts)
	case 0:
		v, ok := new(big.Int).SetString(value, 0)
		if !ok {
			return "", errors.Errorf("Invalid number '%s'", value)
		}
		return codec.Number.EncodeBig(v, opts)
	}
	return "", errors.Errorf("Unsupported number width: %d", bits)
}

// DecodeNumber is the reverse of EncodeNumber. The value is returned in decimal.
func DecodeNumber(symbols string, bits int, opts codec.Options) (string, error) {
	switch bits {
	case 32:
		v, err := codec.Number.DecodeUint32(symbols, opts)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(v), 10), nil
	case 64:
		v, err := codec.Number.DecodeUint64(symbols, opts)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(v, 10), nil
	case 0:
		v, err := codec.Number.DecodeBig(symbols, opts)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	}
	return "", errors.Errorf("Unsupported number width: %d", bits)
}
