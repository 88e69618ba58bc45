package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "upca", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.Same(t, rootCmd, GetRootCommand())
}

func TestRootCommandHelp(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "UPC-A payloads")
	assert.Contains(t, stdout, "Available Commands:")
	assert.Contains(t, stdout, "Usage:")
}

func TestRootCommandVersion(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "upca version dev")
	assert.Contains(t, stdout, "commit:")
}

func TestRootCommandSubcommands(t *testing.T) {
	commandNames := make([]string, 0, len(rootCmd.Commands()))
	for _, sub := range rootCmd.Commands() {
		commandNames = append(commandNames, sub.Name())
	}

	expected := []string{"encode", "decode", "checksum", "validate", "batch", "serve", "selftest", "bench", "config"}
	for _, name := range expected {
		assert.Contains(t, commandNames, name, "Expected subcommand '%s' not found", name)
	}
}

func TestRootCommandInvalidFlag(t *testing.T) {
	_, stderr, err := executeCommand(t, nil, "--invalid-flag")
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown flag")
}

func TestRootCommandNoArgs(t *testing.T) {
	stdout, _, err := executeCommand(t, nil)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
}

func TestRootCommandConfiguration(t *testing.T) {
	assert.True(t, rootCmd.HasSubCommands())
	for _, name := range []string{"config", "verbose", "log-level", "checksum-mode", "version"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
}

func TestRootCommand_InvalidChecksumMode(t *testing.T) {
	_, _, err := executeCommand(t, nil, "checksum", "03600029145", "--checksum-mode", "weird")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum_mode")
}

func TestGetConfig_FlagOverride(t *testing.T) {
	_, _, err := executeCommand(t, nil, "checksum", "03600029145", "--checksum-mode", "legacy")
	require.NoError(t, err)
	assert.Equal(t, "legacy", GetConfig().Codec.ChecksumMode)
}
