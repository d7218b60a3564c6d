package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-cli/internal/config"
	"github.com/sells-group/contact-cli/internal/dedupe"
)

// testConfig returns the defaults config.Load would produce with no file.
func testConfig() *config.Config {
	c := &config.Config{}
	c.Log.Level = "info"
	c.Log.Format = "json"
	c.Normalize.Workers = 2
	c.Merge.Policy = string(dedupe.FirstSeenWins)
	c.Load.Encoding = "utf-8"
	c.Server.Port = 8080
	c.Server.CORSOrigins = []string{"*"}
	c.Server.ShutdownTimeoutSecs = 1
	c.Server.MaxBodyBytes = 1 << 20
	return c
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"extract", "normalize", "merge", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "contact-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestOutputFlags(t *testing.T) {
	for _, c := range []string{"normalize", "merge"} {
		cmd, _, err := rootCmd.Find([]string{c})
		require.NoError(t, err)
		format := cmd.Flags().Lookup("format")
		require.NotNil(t, format, c)
		assert.Equal(t, "json", format.DefValue)
		assert.NotNil(t, cmd.Flags().ShorthandLookup("o"), c)
	}
}

func TestNewEngine_PatternsFile(t *testing.T) {
	c := testConfig()
	c.Extract.PatternsFile = writeTestFile(t, "rules.yaml", "not: [valid")

	_, err := newEngine(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load patterns")

	c.Extract.PatternsFile = "/nonexistent/rules.yaml"
	_, err = newEngine(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read patterns file")
}

func TestNewEngine_Defaults(t *testing.T) {
	eng, err := newEngine(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, eng.Extractor)
	assert.NotNil(t, eng.Normalizer)
	assert.NotNil(t, eng.Merger)
}

func TestLoadOptions(t *testing.T) {
	c := testConfig()
	c.Load.Delimiter = "tab"
	c.Load.Sheet = "교회"
	c.Load.SheetIndex = 1

	opts := loadOptions(c)
	assert.Equal(t, '\t', opts.Delimiter)
	assert.Equal(t, "utf-8", opts.Encoding)
	assert.Equal(t, "교회", opts.SheetName)
	assert.Equal(t, 1, opts.SheetIndex)
}
