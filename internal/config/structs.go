//nolint:lll
package config

// Config represents the complete configuration for the upca application.
// It covers every command (encode, decode, batch, serve) and is loaded from
// configuration files, environment variables and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Codec configuration
	Codec CodecConfig `mapstructure:"codec" yaml:"codec" json:"codec"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Rendering configuration (for selftest)
	Render RenderConfig `mapstructure:"render" yaml:"render" json:"render"`
}

// CodecConfig contains symbol codec settings.
type CodecConfig struct {
	ChecksumMode string `mapstructure:"checksum_mode" yaml:"checksum_mode" json:"checksum_mode"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxBodyKB       int    `mapstructure:"max_body_kb" yaml:"max_body_kb" json:"max_body_kb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// Rate limiting
	RateLimitEnabled   bool `mapstructure:"rate_limit_enabled" yaml:"rate_limit_enabled" json:"rate_limit_enabled"`
	RequestsPerMinute  int  `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	RequestsPerHour    int  `mapstructure:"requests_per_hour" yaml:"requests_per_hour" json:"requests_per_hour"`
	MaxRequestsPerDay  int  `mapstructure:"max_requests_per_day" yaml:"max_requests_per_day" json:"max_requests_per_day"`

	// Peers allowed to set X-Forwarded-For / X-Real-IP
	TrustedProxies []string `mapstructure:"trusted_proxies" yaml:"trusted_proxies,omitempty" json:"trusted_proxies,omitempty"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// RenderConfig contains raster geometry for rendered symbols.
type RenderConfig struct {
	ModuleWidth int `mapstructure:"module_width" yaml:"module_width" json:"module_width"`
	BarHeight   int `mapstructure:"bar_height" yaml:"bar_height" json:"bar_height"`
	Margin      int `mapstructure:"margin" yaml:"margin" json:"margin"`
}
