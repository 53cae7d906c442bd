package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bokysan/basecodec/internal/version"
)

func Test_Execute(t *testing.T) {
	version.GitBranch = "main"
	defer func() { version.GitBranch = "" }()

	var out bytes.Buffer
	cmd := &Command{out: &out}
	require.NoError(t, cmd.Execute(nil))

	require.Contains(t, out.String(), "BASECODEC")
	require.Contains(t, out.String(), "Git branch  "+White+"main")
	require.NotContains(t, out.String(), "Git state")
}
