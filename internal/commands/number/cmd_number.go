package number

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bokysan/basecodec/internal/codec"
	"github.com/bokysan/basecodec/internal/logging"
	"github.com/bokysan/basecodec/internal/util/enc"
)

// Command encodes unsigned integers into Crockford base32 symbols and back. Values are taken from
// the arguments or, if there are none, one per line from standard input.
type Command struct {
	Decode    bool   `yaml:"decode"    short:"d" long:"decode"    env:"NUMBER_DECODE" description:"Decode symbols into numbers"`
	Bits      int    `yaml:"bits"      short:"b" long:"bits"      env:"NUMBER_BITS"   description:"Integer width, 0 for any size" choice:"0" choice:"32" choice:"64" default:"64"`
	Options   string `yaml:"options"   short:"o" long:"options"   env:"OPTIONS"       description:"Comma separated codec options, e.g. 'checksum,padding'"`
	Checksum  bool   `yaml:"checksum"  short:"k" long:"checksum"  env:"CHECKSUM"      description:"Append or verify the check symbol"`
	Padding   bool   `yaml:"padding"   short:"p" long:"padding"   env:"PADDING"       description:"Left-pad with zeros to the full width"`
	Lowercase bool   `yaml:"lowercase"           long:"lowercase" env:"LOWERCASE"     description:"Emit lowercase symbols"`

	stdin  io.Reader
	stdout io.Writer
}

func NewCommand() *Command {
	return &Command{
		Bits: 64,
	}
}

func (c *Command) options() (codec.Options, error) {
	opts, err := codec.ParseOptions(c.Options)
	if err != nil {
		return codec.None, errors.WithStack(err)
	}
	if c.Checksum {
		opts |= codec.Checksum
	}
	if c.Padding {
		opts |= codec.Padding
	}
	if c.Lowercase {
		opts |= codec.Lowercase
	}
	return opts, nil
}

func (c *Command) values(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	in := c.stdin
	if in == nil {
		in = os.Stdin
	}

	res := make([]string, 0)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			res = append(res, line)
		}
	}
	return res, errors.WithStack(scanner.Err())
}

//goland:noinspection GoUnhandledErrorResult
func (c *Command) Execute(args []string) error {
	if err := logging.SetupLogging(); err != nil {
		return err
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	values, err := c.values(args)
	if err != nil {
		return err
	}
	out := c.stdout
	if out == nil {
		out = os.Stdout
	}

	var errs error
	for _, v := range values {
		var res string
		if c.Decode {
			res, err = enc.DecodeNumber(v, c.Bits, opts)
		} else {
			res, err = enc.EncodeNumber(v, c.Bits, opts)
		}
		if err != nil {
			log.WithError(err).Errorf("%s: %v", v, err)
			errs = multierror.Append(errs, errors.Wrapf(err, "Could not convert '%s'", v))
			continue
		}
		fmt.Fprintln(out, res)
	}
	return errs
}
