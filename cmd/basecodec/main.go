package main

import (
	"fmt"
	"os"
	"path"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/bokysan/basecodec/internal/args"
	"github.com/bokysan/basecodec/internal/commands/decode"
	"github.com/bokysan/basecodec/internal/commands/encode"
	"github.com/bokysan/basecodec/internal/commands/list"
	"github.com/bokysan/basecodec/internal/commands/number"
	"github.com/bokysan/basecodec/internal/commands/serve"
	"github.com/bokysan/basecodec/internal/commands/version"
	bcFlags "github.com/bokysan/basecodec/internal/flags"
	"github.com/bokysan/basecodec/internal/util"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// BaseCodec is the main executable
type BaseCodec struct {
	parser *flags.Parser
}

// NewBaseCodec will create a new instance of BaseCodec and initialize the parser
func NewBaseCodec() *BaseCodec {
	executablePath := path.Base(os.Args[0])

	bc := &BaseCodec{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	bc.setupGeneral()
	bc.addCommand("version", "Print the version", "Print the application version and exit", &version.Command{})
	bc.addCommand("encode", "Encode data", "Encode files (or stdin) into text", encode.NewCommand())
	bc.addCommand("decode", "Decode data", "Decode text files (or stdin) back into bytes", decode.NewCommand())
	bc.addCommand("number", "Encode or decode numbers", "Convert unsigned integers to Crockford base32 symbols and back", number.NewCommand())
	bc.addCommand("list", "List encodings", "List the available encodings and their one-letter codes", list.NewCommand())
	bc.addCommand("serve", "Run the server", "Run the HTTP and websocket codec service", serve.NewCommand())

	return bc
}

// setupGeneral will configure general options
func (bc *BaseCodec) setupGeneral() {
	if _, err := bc.parser.AddGroup("General", "General options", &args.General); err != nil {
		err = errors.WithStack(err)
		util.MustErrorNilOrExit(err)
	}
}

func (bc *BaseCodec) addCommand(name, short, long string, cmd interface{}) {
	_, err := bc.parser.AddCommand(name, short, long, cmd)
	util.MustErrorNilOrExit(err)
}

// main starts basecodec and reads the configuration file
func main() {
	baseCodec := NewBaseCodec()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			message := fmt.Sprintf("Configuration file %s does not exist.", file)
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: message,
			})
		}

		yamlParser := bcFlags.NewYamlParser(baseCodec.parser)

		args.General.ConfigurationFilePath = file
		return yamlParser.ParseFile(file)
	}

	_, err := baseCodec.parser.Parse()
	util.MustErrorNilOrExit(err)
}
