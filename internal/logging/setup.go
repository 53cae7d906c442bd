package logging

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bokysan/basecodec/internal/args"
)

// SetupLogging configures the global logrus logger from args.General. It is called by every
// command before it starts working.
func SetupLogging() error {
	SetVerbosity(len(args.General.Verbose) + args.General.Verbosity)

	if args.General.LogReportCaller {
		log.AddHook(&ContextHook{})
	}

	if args.General.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyTime:  "timestamp",
				log.FieldKeyLevel: "@level",
				log.FieldKeyMsg:   "message",
				log.FieldKeyFunc:  "@caller",
			},
		})
	} else {
		log.SetFormatter(&log.TextFormatter{
			ForceColors:   ForceColors(),
			DisableColors: DisableColors(),
			FullTimestamp: args.General.LogFullTimestamp,
		})
	}
	log.SetReportCaller(args.General.LogReportCaller)

	if args.General.LogFile != nil && len(*args.General.LogFile) > 0 && *args.General.LogFile != "-" {
		f, err := os.OpenFile(*args.General.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return errors.Wrapf(err, "Could not open log file %v", *args.General.LogFile)
		}
		log.SetOutput(f)
	}

	log.Debugf("Verbosity level: %v", VerbosityName())
	return nil
}

// ForceColors reports whether colors were explicitly requested.
func ForceColors() bool {
	color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
	return color == "yes" || color == "true" || color == "1"
}

// DisableColors reports whether colors were explicitly turned off.
func DisableColors() bool {
	color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
	return color == "no" || color == "false" || color == "0"
}
