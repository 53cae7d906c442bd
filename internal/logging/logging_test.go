package logging

import (
	"bytes"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/bokysan/basecodec/internal/args"
)

func Test_SetVerbosity(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	SetVerbosity(0)
	require.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	require.Equal(t, "WARN", VerbosityName())

	SetVerbosity(2)
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	SetVerbosity(10)
	require.Equal(t, logrus.TraceLevel, logrus.GetLevel())

	SetVerbosity(-1)
	require.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

func Test_Colors(t *testing.T) {
	defer func() { args.General.LogColor = "" }()

	args.General.LogColor = "Yes"
	require.True(t, ForceColors())
	require.False(t, DisableColors())

	args.General.LogColor = "0"
	require.False(t, ForceColors())
	require.True(t, DisableColors())

	args.General.LogColor = "auto"
	require.False(t, ForceColors())
	require.False(t, DisableColors())
}

func Test_JSONLogEntry(t *testing.T) {
	var out bytes.Buffer
	logrus.SetOutput(&out)
	defer logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	defer func() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	}()

	r := httptest.NewRequest("POST", "/encode/base64", nil)
	entry := (&JSONLogFormatter{}).NewLogEntry(r)
	entry.Write(200, 4, nil, 0, nil)

	require.Contains(t, out.String(), `"app":"basecodec"`)
	require.Contains(t, out.String(), `"status":200`)
	require.Contains(t, out.String(), `"request_uri":"/encode/base64"`)
}

func Test_ChiLogWriter(t *testing.T) {
	var out bytes.Buffer
	logrus.SetOutput(&out)
	defer logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(logrus.InfoLevel)

	(&ChiLogWriter{}).Print("[GET /codecs]")
	require.Contains(t, out.String(), "GET /codecs")
	require.NotContains(t, out.String(), "[GET")
}
