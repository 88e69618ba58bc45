package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/MeKo-Tech/upca/internal/upca"
)

// Mode selects the codec operation applied to every input line.
type Mode string

const (
	ModeEncode   Mode = "encode"
	ModeDecode   Mode = "decode"
	ModeValidate Mode = "validate"
)

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeEncode, ModeDecode, ModeValidate:
		return m, nil
	case "":
		return ModeEncode, nil
	}
	return "", fmt.Errorf("unsupported batch mode %q (want encode, decode or validate)", s)
}

// Config holds all configuration for batch processing.
type Config struct {
	Mode Mode

	// Codec settings
	ChecksumMode upca.ChecksumMode
	Normalize    bool // apply input.Clean before encoding or validating
	Flat         bool // encode to, or decode from, the flat 115-module pattern

	// Output settings
	Format     string // text, json or csv
	OutputFile string

	// Parallel processing settings
	Workers         int
	ContinueOnError bool

	// Progress settings
	ShowProgress     bool
	Quiet            bool
	ShowStats        bool
	ProgressInterval time.Duration
	ProgressWriter   io.Writer
}

// DefaultConfig returns the batch defaults used by the CLI.
func DefaultConfig() *Config {
	return &Config{
		Mode:             ModeEncode,
		ChecksumMode:     upca.ChecksumStandard,
		Format:           "text",
		Workers:          runtime.NumCPU(),
		ProgressInterval: 100 * time.Millisecond,
	}
}

// Validate checks the configuration before any input is read.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("batch config is nil")
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	switch c.Format {
	case "", "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format %q", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

func (c *Config) codec() upca.Codec {
	return upca.New(upca.WithChecksumMode(c.ChecksumMode))
}

func (c *Config) progressCallback() ProgressCallback {
	if !c.ShowProgress || c.Quiet {
		return nil
	}
	w := c.ProgressWriter
	if w == nil {
		w = os.Stderr
	}
	return NewConsoleProgressCallback(w, "Processing: ").WithUpdateInterval(c.ProgressInterval)
}
