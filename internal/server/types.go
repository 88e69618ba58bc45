package server

import (
	"net/http"
	"net/netip"

	"github.com/MeKo-Tech/upca/internal/upca"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	codec        upca.Codec
	corsOrigin   string
	maxBodyBytes int64
	rateLimiter  *RateLimiter

	trustedProxies []netip.Prefix
}

// RateLimitConfig holds per-client request limits. Zero disables a limit.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	RequestsPerHour   int
	MaxRequestsPerDay int

	// TrustedProxies lists proxy addresses or CIDR ranges whose
	// X-Forwarded-For and X-Real-IP headers identify the client. Headers
	// from any other peer are ignored.
	TrustedProxies []string
}

// Config holds server configuration.
type Config struct {
	Host         string
	Port         int
	CORSOrigin   string
	MaxBodyKB    int64
	TimeoutSec   int
	ChecksumMode upca.ChecksumMode
	RateLimit    RateLimitConfig
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// EncodeRequest is the body of POST /encode.
type EncodeRequest struct {
	Digits    string `json:"digits"`
	Flat      bool   `json:"flat,omitempty"`
	Normalize bool   `json:"normalize,omitempty"`
}

// DecodeRequest is the body of POST /decode. Tokens takes precedence over
// Pattern; a Pattern without whitespace is read as the flat form.
type DecodeRequest struct {
	Pattern string   `json:"pattern,omitempty"`
	Tokens  []string `json:"tokens,omitempty"`
}

// DigitsRequest is the body of POST /checksum and POST /validate.
type DigitsRequest struct {
	Digits    string `json:"digits"`
	Normalize bool   `json:"normalize,omitempty"`
}

// SymbolResult describes a UPC-A payload split into its fields.
type SymbolResult struct {
	Digits           string `json:"digits"`
	NumberSystem     string `json:"number_system"`
	ManufacturerCode string `json:"manufacturer_code"`
	ProductCode      string `json:"product_code"`
	CheckDigit       string `json:"check_digit"`
	Pattern          string `json:"pattern,omitempty"`
	ChecksumValid    *bool  `json:"checksum_valid,omitempty"`
}

// CodecResponse is returned by every codec endpoint.
type CodecResponse struct {
	Success   bool          `json:"success"`
	Result    *SymbolResult `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	ErrorType string        `json:"error_type,omitempty"`
}

// NewServer creates a new codec server instance.
func NewServer(config Config) (*Server, error) {
	s := &Server{
		codec:        upca.New(upca.WithChecksumMode(config.ChecksumMode)),
		corsOrigin:   config.CORSOrigin,
		maxBodyBytes: config.MaxBodyKB * 1024,
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = 64 * 1024
	}
	proxies, err := parseTrustedProxies(config.RateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}
	s.trustedProxies = proxies
	if config.RateLimit.Enabled {
		s.rateLimiter = NewRateLimiter(
			config.RateLimit.RequestsPerMinute,
			config.RateLimit.RequestsPerHour,
			config.RateLimit.MaxRequestsPerDay,
		)
	}
	return s, nil
}

// Close releases server resources.
func (s *Server) Close() error {
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/encode", s.corsMiddleware(s.rateLimitMiddleware(s.encodeHandler)))
	mux.HandleFunc("/decode", s.corsMiddleware(s.rateLimitMiddleware(s.decodeHandler)))
	mux.HandleFunc("/checksum", s.corsMiddleware(s.rateLimitMiddleware(s.checksumHandler)))
	mux.HandleFunc("/validate", s.corsMiddleware(s.rateLimitMiddleware(s.validateHandler)))
	mux.HandleFunc("/ws", s.corsMiddleware(s.rateLimitMiddleware(s.codecWebSocketHandler)))
	mux.Handle("/metrics", promhttp.Handler())
}

// Handler returns a mux with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	return mux
}
