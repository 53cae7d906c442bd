package args

import (
	"github.com/pkg/errors"

	"github.com/bokysan/basecodec/internal/codec"
)

type CallbackOption func(string) error

// General holds the options shared by every command. They may also be set in the `general:`
// section of the configuration file.
var General struct {
	Verbose               []bool         `yaml:"-"                 short:"v" long:"verbose"             env:"VERBOSITY"          description:"Show verbose debug information"`
	ConfigurationFile     CallbackOption `yaml:"-"                 short:"c" long:"config"              env:"CONFIG"             description:"Configuration file (yaml-formatted)" no-ini:"true"`
	ConfigurationFilePath string         `yaml:"-"`
	Verbosity             int            `yaml:"verbosity"         no-flag:"true"`
	LogFile               *string        `yaml:"log-file"          short:"l" long:"log-file"            env:"LOG_FILE"           description:"Log file (file will be appended). If not set, defaults to stderr." default:"-"`
	LogFormat             string         `yaml:"log-format"        short:"f" long:"log-format"          env:"LOG_FORMAT"         description:"Log file format (json or text)." choice:"text" choice:"json" default:"text"`
	LogColor              string         `yaml:"log-color"         short:"C" long:"log-color"           env:"LOG_COLOR"          description:"Should the log output be colored? true, false or auto" choice:"yes" choice:"no" choice:"true" choice:"false" choice:"auto" default:"auto"`
	LogFullTimestamp      bool           `yaml:"log-full-timestamp"          long:"log-full-timestamp"  env:"LOG_FULL_TIMESTAMP" description:"Display full timestamp in logs."`
	LogReportCaller       bool           `yaml:"log-report-caller"           long:"log-report-caller"   env:"LOG_REPORT_CALLER"  description:"If you wish to add the calling method as a field."`
}

// Codec holds the options of the commands which encode or decode data.
type Codec struct {
	Encoding  string `yaml:"encoding"   short:"e" long:"encoding"   env:"ENCODING"   description:"Encoding name or one-letter code, see the 'list' command" default:"base64"`
	Options   string `yaml:"options"    short:"o" long:"options"    env:"OPTIONS"    description:"Comma separated codec options, e.g. 'no-padding,wrap'"`
	Padding   bool   `yaml:"padding"              long:"padding"    env:"PADDING"    description:"Pad the last block"`
	NoPadding bool   `yaml:"no-padding"           long:"no-padding" env:"NO_PADDING" description:"Do not pad the last block"`
	Wrap      bool   `yaml:"wrap"       short:"w" long:"wrap"       env:"WRAP"       description:"Break the output into lines"`
	Indent    bool   `yaml:"indent"               long:"indent"     env:"INDENT"     description:"Break the output into lines and indent continuation lines"`
	Relax     bool   `yaml:"relax"                long:"relax"      env:"RELAX"      description:"Tolerate invalid characters and bad padding while decoding"`
	Pure      bool   `yaml:"pure"                 long:"pure"       env:"PURE"       description:"Reject whitespace and separators while decoding"`
	Checksum  bool   `yaml:"checksum"             long:"checksum"   env:"CHECKSUM"   description:"Append or verify the check symbol (crockford only)"`
	Compress  bool   `yaml:"compress"             long:"compress"   env:"COMPRESS"   description:"Drop trailing zero bytes of the last block (zbase32 only)"`
	Lowercase bool   `yaml:"lowercase"            long:"lowercase"  env:"LOWERCASE"  description:"Emit lowercase symbols"`
}

// CodecOptions merges the option list with the individual option switches.
func (c *Codec) CodecOptions() (codec.Options, error) {
	opts, err := codec.ParseOptions(c.Options)
	if err != nil {
		return codec.None, errors.WithStack(err)
	}
	for _, f := range []struct {
		set bool
		opt codec.Options
	}{
		{c.Padding, codec.Padding},
		{c.NoPadding, codec.NoPadding},
		{c.Wrap, codec.Wrap},
		{c.Indent, codec.Indent},
		{c.Relax, codec.Relax},
		{c.Pure, codec.Pure},
		{c.Checksum, codec.Checksum},
		{c.Compress, codec.Compress},
		{c.Lowercase, codec.Lowercase},
	} {
		if f.set {
			opts |= f.opt
		}
	}
	return opts, nil
}
