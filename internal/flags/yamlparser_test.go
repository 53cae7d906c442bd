package flags

import (
	"strings"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
)

type general struct {
	Experimental bool   `long:"experimental" description:"Enable experimental features"`
	File         string `long:"file"`
}

func Test_EmptyParse(t *testing.T) {
	file := "testdata/empty.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)
	err := yamlParser.ParseFile(file)

	require.NoErrorf(t, err, "Parsing not successful: %v", file)
}

func Test_GeneralParse(t *testing.T) {
	file := "testdata/general.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	data := &general{}
	_, err := parser.AddCommand("general", "General", "General options", data)
	require.NoErrorf(t, err, "Could not add general group")

	err = yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, true, data.Experimental, "Invalid reading of boolean value")
	require.Equal(t, "something.txt", data.File, "Invalid reading of string value")
}

func Test_InvalidGeneralParse(t *testing.T) {
	file := "testdata/invalid_general.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	_, err := parser.AddCommand("general", "General", "General options", &general{})
	require.NoErrorf(t, err, "Could not add general group")

	err = yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)
}

func Test_InvalidNoCommand(t *testing.T) {
	file := "testdata/invalid_no_command.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	_, err := parser.AddCommand("general", "General", "General options", &general{})
	require.NoErrorf(t, err, "Could not add general group")

	err = yamlParser.ParseFile(file)
	require.Errorf(t, err, "Parsing not successful, expected error but did not get one: %v", file)
}

func Test_GroupsAndMultipleDocuments(t *testing.T) {
	file := "testdata/multi.yml"

	var logging struct {
		Format string `long:"log-format" yaml:"format"`
	}
	var encode struct {
		Encoding string `long:"encoding" yaml:"encoding"`
		Options  string `long:"options" yaml:"options"`
	}

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	_, err := parser.AddGroup("Logging", "Logging options", &logging)
	require.NoError(t, err)
	_, err = parser.AddCommand("encode", "Encode", "Encode data", &encode)
	require.NoError(t, err)

	err = NewYamlParser(parser).ParseFile(file)
	require.NoError(t, err)
	require.Equal(t, "json", logging.Format)
	require.Equal(t, "crockford", encode.Encoding)
	require.Equal(t, "checksum,lowercase", encode.Options)
}

func Test_ParseBrokenYaml(t *testing.T) {
	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	_, err := parser.AddCommand("general", "General", "General options", &general{})
	require.NoError(t, err)

	err = NewYamlParser(parser).Parse(strings.NewReader("general: [unclosed"))
	require.Error(t, err)
}
