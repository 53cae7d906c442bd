package util

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bokysan/basecodec/internal/codec"
)

const (
	// ErrCodecBase is added to the codec.Kind of an engine error to form the exit code.
	ErrCodecBase = 64
	ErrGeneric   = 99
)

// MustErrorNilOrExit will check the provided argument. If it's `nil` it will simply return. If it's
// not `nil`, it will log the error as `log.FatalLevel` and exit immediately with an exit code.
// The code is unwrapped from a `flags.Error` object or derived from the kind of a `codec.Error`.
// Any other error exits with a generic error code - 99.
func MustErrorNilOrExit(err error) {
	if err == nil {
		return
	}

	var flagsError *flags.Error
	if errors.As(err, &flagsError) && flagsError.Type == flags.ErrHelp {
		os.Exit(0)
		return
	}

	log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
	log.Exit(ExitCode(err))
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var flagsError *flags.Error
	if errors.As(err, &flagsError) {
		if flagsError.Type == flags.ErrHelp {
			return 0
		}
		return int(flagsError.Type)
	}
	var codecError *codec.Error
	if errors.As(err, &codecError) {
		return ErrCodecBase + int(codecError.Kind)
	}
	return ErrGeneric
}
