package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCommand_Grouped(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "encode", "03600029145")
	require.NoError(t, err)
	assert.Equal(t, sampleGrouped+"\n", stdout)
}

func TestEncodeCommand_TwelveDigits(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "encode", sampleDigits)
	require.NoError(t, err)
	assert.Equal(t, sampleGrouped+"\n", stdout)
}

func TestEncodeCommand_Flat(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "encode", "--flat", "03600029145")
	require.NoError(t, err)

	flat := strings.TrimSpace(stdout)
	assert.Len(t, flat, 115)
	assert.Equal(t, strings.ReplaceAll(sampleGrouped, " ", ""), flat)
}

func TestEncodeCommand_MultipleInOrder(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "encode", "--flat", "03600029145", "01234567890", "12345678901")
	require.NoError(t, err)
	lines := outputLines(stdout)
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Len(t, l, 115)
	}
}

func TestEncodeCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "encode", "--format", "json", "01234567890")
	require.NoError(t, err)

	var out struct {
		Mode  string `json:"mode"`
		Items []struct {
			Digits string `json:"digits"`
			Output string `json:"output"`
			Valid  bool   `json:"valid"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "encode", out.Mode)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "012345678905", out.Items[0].Digits)
	assert.True(t, out.Items[0].Valid)
	assert.Len(t, strings.Fields(out.Items[0].Output), 17)
}

func TestEncodeCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"letters", []string{"0360002914a"}, "numeric values only"},
		{"too short", []string{"0360002914"}, "length out of range"},
		{"wrong check digit", []string{"036000291453"}, "invalid check digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, nil, append([]string{"encode"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "1 of 1 inputs")
			assert.Contains(t, stdout, "arg:1: error:")
			assert.Contains(t, stdout, tt.message)
		})
	}
}

func TestEncodeCommand_ReportsEveryArgument(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "encode", "abc", "03600029145")
	require.Error(t, err)

	lines := outputLines(stdout)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "arg:1: error:")
	assert.Equal(t, sampleGrouped, lines[1])
}

func TestEncodeCommand_Normalize(t *testing.T) {
	_, _, err := executeCommand(t, nil, "encode", "0-36000-29145")
	require.Error(t, err)

	stdout, _, err := executeCommand(t, nil, "encode", "--normalize", "0-36000-29145")
	require.NoError(t, err)
	assert.Equal(t, sampleGrouped+"\n", stdout)
}

func TestEncodeCommand_RequiresArgs(t *testing.T) {
	_, _, err := executeCommand(t, nil, "encode")
	require.Error(t, err)
}
