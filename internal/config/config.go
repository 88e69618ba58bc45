package config

import (
	"fmt"
	"net/netip"
	"slices"
	"strings"

	"github.com/MeKo-Tech/upca/internal/batch"
	"github.com/MeKo-Tech/upca/internal/render"
	"github.com/MeKo-Tech/upca/internal/upca"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	ro := render.DefaultOptions()
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Codec: CodecConfig{
			ChecksumMode: upca.ChecksumStandard.String(),
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:              "localhost",
			Port:              8080,
			CORSOrigin:        "*",
			MaxBodyKB:         64,
			TimeoutSec:        30,
			ShutdownTimeout:   10,
			RateLimitEnabled:  false,
			RequestsPerMinute: 600,
			RequestsPerHour:   10000,
			MaxRequestsPerDay: 100000,
		},
		Batch: BatchConfig{
			Workers:         4,
			ContinueOnError: false,
		},
		Render: RenderConfig{
			ModuleWidth: ro.ModuleWidth,
			BarHeight:   ro.BarHeight,
			Margin:      ro.Margin,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "csv"}
	if c.Output.Format != "" && !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	if _, err := upca.ParseChecksumMode(c.Codec.ChecksumMode); err != nil {
		return fmt.Errorf("invalid codec.checksum_mode: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxBodyKB <= 0 {
		return fmt.Errorf("invalid max body size: %d (must be positive)", c.Server.MaxBodyKB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Server.RateLimitEnabled && (c.Server.RequestsPerMinute <= 0 || c.Server.RequestsPerHour <= 0) {
		return fmt.Errorf("invalid rate limits: %d/min, %d/h (must be positive when rate limiting is enabled)",
			c.Server.RequestsPerMinute, c.Server.RequestsPerHour)
	}
	for _, p := range c.Server.TrustedProxies {
		if !validProxyEntry(p) {
			return fmt.Errorf("invalid server.trusted_proxies entry: %q (must be an IP or CIDR)", p)
		}
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	if err := c.ToRenderOptions().Validate(); err != nil {
		return fmt.Errorf("invalid render settings: %w", err)
	}
	return nil
}

func validProxyEntry(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		_, err := netip.ParsePrefix(s)
		return err == nil
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}

// ChecksumMode returns the parsed codec checksum mode. Invalid values fall
// back to the standard mode; Validate reports them.
func (c *Config) ChecksumMode() upca.ChecksumMode {
	m, err := upca.ParseChecksumMode(c.Codec.ChecksumMode)
	if err != nil {
		return upca.ChecksumStandard
	}
	return m
}

// NewCodec builds a codec from the configuration.
func (c *Config) NewCodec() upca.Codec {
	return upca.New(upca.WithChecksumMode(c.ChecksumMode()))
}

// ToBatchConfig converts the config to the batch processing configuration.
func (c *Config) ToBatchConfig() *batch.Config {
	bc := batch.DefaultConfig()
	bc.ChecksumMode = c.ChecksumMode()
	bc.Workers = c.Batch.Workers
	bc.ContinueOnError = c.Batch.ContinueOnError
	if c.Output.Format != "" {
		bc.Format = c.Output.Format
	}
	bc.OutputFile = c.Output.File
	return bc
}

// ToRenderOptions converts the config to render options.
func (c *Config) ToRenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.ModuleWidth = c.Render.ModuleWidth
	opts.BarHeight = c.Render.BarHeight
	opts.Margin = c.Render.Margin
	return opts
}

// ToYAML serializes the configuration in the on-disk file format.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
