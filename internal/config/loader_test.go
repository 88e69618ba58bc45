package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

const (
	infoLevel  = "info"
	debugLevel = "debug"
)

func newTestLoader() *Loader {
	return NewLoaderWithViper(viper.New())
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// TestNewLoader tests loader creation.
func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil || loader.v == nil {
		t.Fatal("NewLoader() returned a loader without viper instance")
	}
	if NewLoaderWithViper(nil).v == nil {
		t.Error("NewLoaderWithViper(nil) should create a viper instance")
	}
}

// TestLoadWithNoConfigFile tests loading with no config file present.
func TestLoadWithNoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := newTestLoader().Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != infoLevel {
		t.Errorf("Expected default log level '%s', got %s", infoLevel, cfg.LogLevel)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Codec.ChecksumMode != "standard" {
		t.Errorf("Expected default checksum mode 'standard', got %s", cfg.Codec.ChecksumMode)
	}
}

// TestLoadFromSearchPath tests that upca.yaml in the working directory is found.
func TestLoadFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "upca.yaml"), []byte("log_level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := newTestLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected log level 'warn', got %s", cfg.LogLevel)
	}
	if filepath.Base(loader.GetConfigFileUsed()) != "upca.yaml" {
		t.Errorf("Expected upca.yaml to be used, got %q", loader.GetConfigFileUsed())
	}
}

// TestLoadWithValidYAMLFile tests loading from a valid YAML file.
func TestLoadWithValidYAMLFile(t *testing.T) {
	configFile := writeConfigFile(t, "upca.yaml", `
log_level: debug
verbose: true
codec:
  checksum_mode: legacy
server:
  host: 0.0.0.0
  port: 9090
  rate_limit_enabled: true
batch:
  workers: 8
render:
  module_width: 3
`)

	cfg, err := newTestLoader().LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}
	if cfg.LogLevel != debugLevel {
		t.Errorf("Expected log level '%s', got %s", debugLevel, cfg.LogLevel)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose to be true")
	}
	if cfg.Codec.ChecksumMode != "legacy" {
		t.Errorf("Expected checksum mode 'legacy', got %s", cfg.Codec.ChecksumMode)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("Expected 0.0.0.0:9090, got %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if !cfg.Server.RateLimitEnabled {
		t.Error("Expected rate limiting to be enabled")
	}
	if cfg.Server.RequestsPerMinute != 600 {
		t.Errorf("Expected default requests per minute 600, got %d", cfg.Server.RequestsPerMinute)
	}
	if cfg.Batch.Workers != 8 {
		t.Errorf("Expected 8 workers, got %d", cfg.Batch.Workers)
	}
	if cfg.Render.ModuleWidth != 3 || cfg.Render.BarHeight != 80 {
		t.Errorf("Unexpected render config: %+v", cfg.Render)
	}
}

// TestLoadWithJSONFile tests that non-YAML formats are accepted.
func TestLoadWithJSONFile(t *testing.T) {
	configFile := writeConfigFile(t, "upca.json", `{"output": {"format": "json"}}`)

	cfg, err := newTestLoader().LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected output format 'json', got %s", cfg.Output.Format)
	}
}

// TestLoadWithInvalidYAMLFile tests loading from an invalid YAML file.
func TestLoadWithInvalidYAMLFile(t *testing.T) {
	configFile := writeConfigFile(t, "upca.yaml", `
log_level: debug
  invalid indentation
    more bad indentation
`)

	if _, err := newTestLoader().LoadWithFile(configFile); err == nil {
		t.Error("LoadWithFile() expected error for invalid YAML, got nil")
	}
}

// TestLoadWithNonExistentFile tests loading from a non-existent file.
func TestLoadWithNonExistentFile(t *testing.T) {
	if _, err := newTestLoader().LoadWithFile("/nonexistent/path/to/config.yaml"); err == nil {
		t.Error("LoadWithFile() expected error for non-existent file, got nil")
	}
}

// TestLoadWithValidationFailure tests loading with validation failure.
func TestLoadWithValidationFailure(t *testing.T) {
	configFile := writeConfigFile(t, "upca.yaml", `
log_level: invalid_level
codec:
  checksum_mode: modulo11
`)

	if _, err := newTestLoader().LoadWithFile(configFile); err == nil {
		t.Error("LoadWithFile() expected validation error, got nil")
	}

	cfg, err := newTestLoader().LoadWithFileWithoutValidation(configFile)
	if err != nil {
		t.Fatalf("LoadWithFileWithoutValidation() unexpected error: %v", err)
	}
	if cfg.LogLevel != "invalid_level" {
		t.Errorf("Expected raw log level to survive, got %s", cfg.LogLevel)
	}
}

// TestEnvironmentOverrides tests UPCA_ environment variables.
func TestEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UPCA_LOG_LEVEL", "error")
	t.Setenv("UPCA_SERVER_PORT", "7070")
	t.Setenv("UPCA_CODEC_CHECKSUM_MODE", "legacy")

	cfg, err := newTestLoader().Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("Expected log level 'error', got %s", cfg.LogLevel)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Expected port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Codec.ChecksumMode != "legacy" {
		t.Errorf("Expected checksum mode 'legacy', got %s", cfg.Codec.ChecksumMode)
	}
}

// TestGetConfigSearchPaths tests the search path order.
func TestGetConfigSearchPaths(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	paths := GetConfigSearchPaths()
	if paths[0] != "." {
		t.Errorf("Expected current directory first, got %s", paths[0])
	}
	if paths[len(paths)-1] != "/etc/upca" {
		t.Errorf("Expected /etc/upca last, got %s", paths[len(paths)-1])
	}
	found := false
	for _, p := range paths {
		if p == filepath.Join(xdg, "upca") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected XDG path in %v", paths)
	}
}

// TestGenerateDefaultConfigFile tests that the generated file loads back.
func TestGenerateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upca.yaml")
	if err := GenerateDefaultConfigFile(path); err != nil {
		t.Fatalf("GenerateDefaultConfigFile() unexpected error: %v", err)
	}

	cfg, err := newTestLoader().LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("Round-tripped config differs from defaults: %+v", cfg)
	}
}
