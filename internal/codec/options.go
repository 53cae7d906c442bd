package codec

import (
	"strings"
)

// Options is an immutable set of encoding/decoding flags.
type Options uint16

const (
	// Padding pads the last block to a full block with the family's padding character. When
	// decoding, the padding run is required.
	Padding Options = 1 << iota
	// NoPadding omits padding. When decoding, padding characters are rejected.
	NoPadding
	// Wrap breaks the output into lines of the family's line width.
	Wrap
	// Indent implies Wrap and starts every continuation line with a single space.
	Indent
	// Relax tolerates invalid characters, bad padding, incomplete bytes and non-zero
	// insignificant bits while decoding.
	Relax
	// Pure rejects whitespace and separators that are skipped by default.
	Pure
	// Checksum appends (or verifies) a single check symbol. Crockford only.
	Checksum
	// Compress omits trailing zero bytes of the last block. z-base-32 only.
	Compress
	// Lowercase emits lowercase symbols.
	Lowercase
)

// None is the empty option set; family defaults apply.
const None Options = 0

var optionNames = []struct {
	opt  Options
	name string
}{
	{Padding, "padding"},
	{NoPadding, "no-padding"},
	{Wrap, "wrap"},
	{Indent, "indent"},
	{Relax, "relax"},
	{Pure, "pure"},
	{Checksum, "checksum"},
	{Compress, "compress"},
	{Lowercase, "lowercase"},
}

// Has reports whether all flags in f are set.
func (o Options) Has(f Options) bool {
	return o&f == f
}

func (o Options) String() string {
	if o == None {
		return "none"
	}
	names := make([]string, 0, len(optionNames))
	for _, n := range optionNames {
		if o.Has(n.opt) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseOptions parses a comma (or pipe) separated list of option names, as printed by
// Options.String. Names are case-insensitive, underscores are accepted in place of dashes and
// "none" or an empty string yield None.
func ParseOptions(s string) (Options, error) {
	var res Options
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == ' '
	})
	for _, f := range fields {
		f = strings.ReplaceAll(strings.ToLower(f), "_", "-")
		if f == "none" {
			continue
		}
		found := false
		for _, n := range optionNames {
			if n.name == f {
				res |= n.opt
				found = true
				break
			}
		}
		if !found {
			return None, newError(KindIncompatibleOptions, -1, "unknown option '"+f+"'")
		}
	}
	return res, nil
}
