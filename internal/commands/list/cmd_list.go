package list

import (
	"fmt"
	"io"

	"github.com/k0kubun/go-ansi"

	"github.com/bokysan/basecodec/internal/util/enc"
)

const (
	Bold  = "\x1b[1m"
	Reset = "\x1b[0m"
	Cyan  = "\x1b[36m"
)

// Command lists the registered encodings.
type Command struct {
	out io.Writer
}

func NewCommand() *Command {
	return &Command{}
}

//goland:noinspection GoUnhandledErrorResult
func (c *Command) Execute(args []string) error {
	w := c.out
	if w == nil {
		w = ansi.NewAnsiStdout()
	}

	fmt.Fprintf(w, Bold+"%-4s  %-10s  %5s  %7s  %s"+Reset+"\n", "CODE", "NAME", "BYTES", "SYMBOLS", "STREAMING")
	for _, e := range enc.All() {
		fmt.Fprintf(w, Cyan+"%-4s"+Reset+"  %-10s  %5d  %7d  %v\n",
			string(e.Code()), e.Name(), e.BlocksizeRaw(), e.BlocksizeEncoded(), e.Streaming())
	}
	return nil
}
