package codec

import (
	"strconv"
)

// Kind classifies an engine error.
type Kind int

const (
	// KindInvalidAlphabetSize means the alphabet does not have the radix the family needs.
	KindInvalidAlphabetSize Kind = iota + 1
	// KindInvalidCharacter means a character is neither a symbol nor an accepted separator.
	KindInvalidCharacter
	// KindIncompleteTrailingByte means the last partial block cannot form a single byte.
	KindIncompleteTrailingByte
	// KindNonZeroInsignificantBits means the discarded low bits of the last symbol are not zero.
	KindNonZeroInsignificantBits
	// KindInvalidPaddingSequence means padding appeared at the wrong place or in the wrong count.
	KindInvalidPaddingSequence
	// KindChecksumMismatch means the trailing check symbol does not match the decoded value.
	KindChecksumMismatch
	// KindValueOverflow means a numeric value does not fit the requested integer width.
	KindValueOverflow
	// KindIncompatibleOptions means the requested options cannot be combined.
	KindIncompatibleOptions
	// KindEmptyInput means a numeric decode found no value symbols.
	KindEmptyInput
	// KindFinalized means an operation was attempted on a finished encoder or decoder.
	KindFinalized
)

var kindNames = map[Kind]string{
	KindInvalidAlphabetSize:      "invalid alphabet size",
	KindInvalidCharacter:         "invalid character",
	KindIncompleteTrailingByte:   "incomplete trailing byte",
	KindNonZeroInsignificantBits: "non-zero insignificant bits",
	KindInvalidPaddingSequence:   "invalid padding sequence",
	KindChecksumMismatch:         "checksum mismatch",
	KindValueOverflow:            "value overflow",
	KindIncompatibleOptions:      "incompatible options",
	KindEmptyInput:               "empty input",
	KindFinalized:                "operation already finished",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error kind " + strconv.Itoa(int(k))
}

// Error is returned by every failing engine operation. Offset is the position in the input
// (in bytes, counted across all chunks fed so far) where the problem was detected, or -1 when
// the error is not tied to an input position.
type Error struct {
	Kind   Kind
	Offset int64
	Msg    string
}

func (e *Error) Error() string {
	s := "codec: " + e.Kind.String()
	if e.Offset >= 0 {
		s += " at input byte " + strconv.FormatInt(e.Offset, 10)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// Is reports whether target is an *Error of the same Kind, so the sentinel values below can be
// used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, offset int64, msg string) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: msg}
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidAlphabetSize      = &Error{Kind: KindInvalidAlphabetSize, Offset: -1}
	ErrInvalidCharacter         = &Error{Kind: KindInvalidCharacter, Offset: -1}
	ErrIncompleteTrailingByte   = &Error{Kind: KindIncompleteTrailingByte, Offset: -1}
	ErrNonZeroInsignificantBits = &Error{Kind: KindNonZeroInsignificantBits, Offset: -1}
	ErrInvalidPaddingSequence   = &Error{Kind: KindInvalidPaddingSequence, Offset: -1}
	ErrChecksumMismatch         = &Error{Kind: KindChecksumMismatch, Offset: -1}
	ErrValueOverflow            = &Error{Kind: KindValueOverflow, Offset: -1}
	ErrIncompatibleOptions      = &Error{Kind: KindIncompatibleOptions, Offset: -1}
	ErrEmptyInput               = &Error{Kind: KindEmptyInput, Offset: -1}
	ErrFinalized                = &Error{Kind: KindFinalized, Offset: -1}
)

// ErrorHandler is consulted by a Decoder before it fails. Returning true tolerates that single
// occurrence the same way Relax would.
type ErrorHandler func(err *Error) bool
