package version

import (
	"fmt"
	"io"

	"github.com/k0kubun/go-ansi"

	"github.com/bokysan/basecodec/internal/version"
)

const (
	Bold           = "\x1b[1m"
	Reset          = "\x1b[0m"
	LightGray      = "\x1b[37m"
	DarkGray       = "\x1b[90m"
	White          = "\x1b[97m"
	BackgroundBlue = "\x1b[44m"
)

// Command prints the build details of the application.
type Command struct {
	out io.Writer
}

func (i *Command) String() string {
	return "Version details"
}

func (i *Command) writer() io.Writer {
	if i.out == nil {
		return ansi.NewAnsiStdout()
	}
	return i.out
}

//goland:noinspection GoUnhandledErrorResult
func (i *Command) Execute(args []string) error {
	w := i.writer()
	PrintVersion(w)
	fmt.Fprintf(w, DarkGray+" Author      "+White+"%+v"+Reset+"\n", "Bojan Cekrlic <github.com/bokysan>")
	for _, line := range []struct{ label, value string }{
		{" Git tag     ", version.GitTag},
		{" Git branch  ", version.GitBranch},
		{" Git state   ", version.GitState},
		{" Go version  ", version.GoVersion},
	} {
		if line.value != "" {
			fmt.Fprintf(w, DarkGray+line.label+White+"%+v"+Reset+"\n", line.value)
		}
	}
	return nil
}

// PrintVersion prints the banner line.
//goland:noinspection GoUnhandledErrorResult
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, Bold+BackgroundBlue+
		LightGray+" BASECODEC - binary to text encodings "+White+"%s"+LightGray+" "+Reset+"\n"+
		DarkGray+" Built on    "+White+"%+v\n"+
		DarkGray+" Git version "+White+"%+v"+Reset+"\n",
		version.AppVersion(), version.BuildDate, version.GitCommit)
}
