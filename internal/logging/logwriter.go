package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ChiLogWriter forwards the chi request log lines to logrus at debug level.
type ChiLogWriter struct {
}

func (lw *ChiLogWriter) Print(a ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprint(a...))
	if len(msg) > 1 && msg[0] == '[' && msg[len(msg)-1] == ']' {
		msg = msg[1 : len(msg)-1]
	}
	logrus.Debug(msg)
}
