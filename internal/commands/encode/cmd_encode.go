package encode

import (
	"io"

	"github.com/bokysan/basecodec/internal/args"
	"github.com/bokysan/basecodec/internal/commands/pipe"
	"github.com/bokysan/basecodec/internal/logging"
)

// Command encodes files or standard input.
type Command struct {
	args.Codec `group:"Codec options" yaml:",inline"`
	Output     string `yaml:"output"     short:"O" long:"output"     env:"OUTPUT"     description:"Output file. If not set, defaults to stdout." default:"-"`
	NoNewline  bool   `yaml:"no-newline" short:"n" long:"no-newline" env:"NO_NEWLINE" description:"Do not end the encoded output of every input with a newline"`

	stdin  io.Reader
	stdout io.Writer
}

func NewCommand() *Command {
	return &Command{}
}

func (c *Command) Execute(files []string) error {
	if err := logging.SetupLogging(); err != nil {
		return err
	}

	e, opts, err := pipe.Resolve(&c.Codec)
	if err != nil {
		return err
	}

	var suffix []byte
	if !c.NoNewline {
		suffix = []byte{'\n'}
	}
	return pipe.Run(files, c.Output, c.stdin, c.stdout, e.NewEncoder, opts, suffix)
}
