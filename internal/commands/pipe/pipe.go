// Package pipe runs files or standard input through an encoder or a decoder of the registry.
package pipe

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bokysan/basecodec/internal/args"
	"github.com/bokysan/basecodec/internal/codec"
	"github.com/bokysan/basecodec/internal/util/enc"
)

// Opener creates an encoder or a decoder writing into w.
type Opener func(w io.Writer, opts codec.Options) (io.WriteCloser, error)

// Resolve looks up the encoding and merges the options selected by c.
func Resolve(c *args.Codec) (enc.Encoding, codec.Options, error) {
	e, ok := enc.Lookup(c.Encoding)
	if !ok {
		return nil, codec.None, errors.Errorf("Unknown encoding '%s', see the 'list' command", c.Encoding)
	}
	opts, err := c.CodecOptions()
	if err != nil {
		return nil, codec.None, err
	}
	return e, opts, nil
}

// Run processes every input with a fresh instance created by open and writes the result into
// output. Standard input is used when files is empty or for a file named `-`. The suffix is
// written after the output of every input. A failing input does not stop the others; all failures
// are returned together.
func Run(files []string, output string, stdin io.Reader, stdout io.Writer, open Opener, opts codec.Options, suffix []byte) (errs error) {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if len(files) == 0 {
		files = []string{"-"}
	}

	out := stdout
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrapf(err, "Could not create %s", output)
		}
		defer func() {
			if err := f.Close(); err != nil {
				errs = multierror.Append(errs, errors.Wrapf(err, "Could not close %s", output))
			}
		}()
		out = f
	}

	for _, name := range files {
		if err := process(name, stdin, out, open, opts, suffix); err != nil {
			log.WithError(err).Errorf("%s: %v", name, err)
			errs = multierror.Append(errs, err)
		}
	}
	return
}

func process(name string, stdin io.Reader, out io.Writer, open Opener, opts codec.Options, suffix []byte) error {
	in := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, "Could not open %s", name)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.WithError(err).Warnf("Could not close %s: %v", name, err)
			}
		}()
		in = f
	}

	wc, err := open(out, opts)
	if err != nil {
		return errors.WithStack(err)
	}
	n, err := io.Copy(wc, in)
	if err != nil {
		return errors.Wrapf(err, "Failed processing %s", name)
	}
	if err := wc.Close(); err != nil {
		return errors.Wrapf(err, "Failed processing %s", name)
	}
	if len(suffix) > 0 {
		if _, err := out.Write(suffix); err != nil {
			return errors.WithStack(err)
		}
	}

	log.Debugf("%s: %d bytes processed [%v]", name, n, opts)
	return nil
}
