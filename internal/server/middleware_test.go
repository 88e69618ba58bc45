package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_CORSMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		corsOrigin     string
		method         string
		expectedStatus int
		shouldCallNext bool
	}{
		{"GET request with CORS headers", "*", http.MethodGet, http.StatusOK, true},
		{"POST request with specific origin", "https://example.com", http.MethodPost, http.StatusOK, true},
		{"OPTIONS request (preflight)", "*", http.MethodOptions, http.StatusOK, false},
		{"handler status is kept", "*", http.MethodDelete, http.StatusTeapot, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &Server{corsOrigin: tt.corsOrigin}
			called := false
			next := func(w http.ResponseWriter, r *http.Request) {
				called = true
				if r.Method == http.MethodDelete {
					w.WriteHeader(http.StatusTeapot)
				}
			}

			req := httptest.NewRequest(tt.method, "/encode", nil)
			w := httptest.NewRecorder()
			server.corsMiddleware(next)(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.shouldCallNext, called)
			assert.Equal(t, tt.corsOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		})
	}
}

func TestServer_RateLimitMiddleware(t *testing.T) {
	server := &Server{rateLimiter: NewRateLimiter(2, 0, 0)}
	handler := server.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := range 2 {
		req := httptest.NewRequest(http.MethodPost, "/encode", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		handler(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	req := httptest.NewRequest(http.MethodPost, "/encode", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	handler(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "minute", w.Header().Get("X-RateLimit-Type"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body["error"])

	// a different client is unaffected
	req = httptest.NewRequest(http.MethodPost, "/encode", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	w = httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_RateLimitMiddleware_Disabled(t *testing.T) {
	server := &Server{}
	called := 0
	handler := server.rateLimitMiddleware(func(http.ResponseWriter, *http.Request) { called++ })
	for range 5 {
		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/encode", nil))
	}
	assert.Equal(t, 5, called)
}

func TestServer_HandleRateLimitError_Quota(t *testing.T) {
	server := &Server{}
	w := httptest.NewRecorder()
	server.handleRateLimitError(w, &QuotaExceededError{Type: "requests", Limit: 10, Used: 10})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "requests", w.Header().Get("X-Quota-Type"))
	assert.Equal(t, "10", w.Header().Get("X-Quota-Used"))
}

func TestServer_ClientIP(t *testing.T) {
	proxies, err := parseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	require.NoError(t, err)
	behindProxy := &Server{trustedProxies: proxies}
	direct := &Server{}

	tests := []struct {
		name       string
		server     *Server
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"untrusted peer ignores forwarded", behindProxy, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "198.51.100.9:80", "198.51.100.9"},
		{"untrusted peer ignores real ip", behindProxy, map[string]string{"X-Real-IP": "203.0.113.7"}, "198.51.100.9:80", "198.51.100.9"},
		{"no proxies configured", direct, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "10.0.0.2:80", "10.0.0.2"},
		{"trusted peer single hop", behindProxy, map[string]string{"X-Forwarded-For": " 203.0.113.6 "}, "10.0.0.2:80", "203.0.113.6"},
		{"spoofed prefix skipped", behindProxy, map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.5, 10.0.0.1"}, "10.0.0.2:80", "203.0.113.5"},
		{"all hops trusted", behindProxy, map[string]string{"X-Forwarded-For": "10.1.1.1, 10.0.0.1"}, "192.0.2.1:80", "10.1.1.1"},
		{"trusted peer real ip", behindProxy, map[string]string{"X-Real-IP": "203.0.113.7"}, "192.0.2.1:80", "203.0.113.7"},
		{"trusted peer without headers", behindProxy, nil, "10.0.0.2:80", "10.0.0.2"},
		{"remote addr without port", direct, nil, "198.51.100.2", "198.51.100.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.server.clientIP(req))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := parseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.1 ", "", "::ffff:192.0.2.2", "2001:db8::/32"})
	require.NoError(t, err)
	assert.Len(t, prefixes, 4)

	_, err = parseTrustedProxies([]string{"proxy.local"})
	require.Error(t, err)
	_, err = parseTrustedProxies([]string{"10.0.0.0/40"})
	require.Error(t, err)

	_, err = NewServer(Config{RateLimit: RateLimitConfig{TrustedProxies: []string{"nope"}}})
	require.Error(t, err)
}

func TestRateLimitMiddleware_IgnoresSpoofedForwardedFor(t *testing.T) {
	srv, err := NewServer(Config{RateLimit: RateLimitConfig{Enabled: true, RequestsPerMinute: 2, RequestsPerHour: 100, MaxRequestsPerDay: 1000}})
	require.NoError(t, err)
	h := srv.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := range 3 {
		req := httptest.NewRequest(http.MethodPost, "/encode", nil)
		req.RemoteAddr = "198.51.100.20:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		h(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
