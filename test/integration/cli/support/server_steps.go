package support

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/MeKo-Tech/upca/internal/server"
	"github.com/MeKo-Tech/upca/internal/upca"
	"github.com/cucumber/godog"
)

// HTTPTestServerWrapper wraps httptest.Server for integration tests.
type HTTPTestServerWrapper struct {
	Server     *httptest.Server
	TestServer *server.Server
}

// startTestHTTPServer serves the real API handler on an ephemeral port.
func (testCtx *TestContext) startTestHTTPServer(cfg server.Config) error {
	if testCtx.HTTPTestServer != nil {
		return errors.New("server is already running")
	}
	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	testCtx.HTTPTestServer = &HTTPTestServerWrapper{
		Server:     httptest.NewServer(srv.Handler()),
		TestServer: srv,
	}
	return nil
}

// StopServer stops the running test server, if any.
func (testCtx *TestContext) StopServer() error {
	if testCtx.HTTPTestServer == nil {
		return nil
	}
	testCtx.HTTPTestServer.Server.Close()
	err := testCtx.HTTPTestServer.TestServer.Close()
	testCtx.HTTPTestServer = nil
	return err
}

func defaultServerConfig() server.Config {
	return server.Config{
		Host:         "127.0.0.1",
		CORSOrigin:   "*",
		MaxBodyKB:    4,
		TimeoutSec:   5,
		ChecksumMode: upca.ChecksumStandard,
	}
}

func (testCtx *TestContext) theServerIsRunning() error {
	return testCtx.startTestHTTPServer(defaultServerConfig())
}

func (testCtx *TestContext) theServerIsRunningInLegacyMode() error {
	cfg := defaultServerConfig()
	cfg.ChecksumMode = upca.ChecksumLegacy
	return testCtx.startTestHTTPServer(cfg)
}

func (testCtx *TestContext) theServerIsRunningWithRateLimit(perMinute int) error {
	cfg := defaultServerConfig()
	cfg.RateLimit = server.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: perMinute,
		RequestsPerHour:   perMinute * 60,
		MaxRequestsPerDay: perMinute * 60 * 24,
	}
	return testCtx.startTestHTTPServer(cfg)
}

func (testCtx *TestContext) doRequest(method, endpoint, body string) error {
	if testCtx.HTTPTestServer == nil {
		return errors.New("server is not running")
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(testCtx.substituteVariables(body))
	}
	req, err := http.NewRequest(method, testCtx.HTTPTestServer.Server.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	testCtx.LastHTTPStatusCode = resp.StatusCode
	testCtx.LastHTTPResponse = string(data)
	testCtx.LastHTTPHeaders = make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		testCtx.LastHTTPHeaders[k] = resp.Header.Get(k)
	}
	return nil
}

func (testCtx *TestContext) iGET(endpoint string) error {
	return testCtx.doRequest(http.MethodGet, endpoint, "")
}

func (testCtx *TestContext) iPOSTTo(endpoint string, doc *godog.DocString) error {
	return testCtx.doRequest(http.MethodPost, endpoint, doc.Content)
}

func (testCtx *TestContext) iPOSTToTimes(endpoint string, times int, doc *godog.DocString) error {
	for range times {
		if err := testCtx.doRequest(http.MethodPost, endpoint, doc.Content); err != nil {
			return err
		}
	}
	return nil
}

func (testCtx *TestContext) theResponseStatusShouldBe(expected int) error {
	if testCtx.LastHTTPStatusCode != expected {
		return fmt.Errorf("expected status %d, got %d\nBody: %s",
			expected, testCtx.LastHTTPStatusCode, testCtx.LastHTTPResponse)
	}
	return nil
}

func (testCtx *TestContext) theResponseShouldContain(text string) error {
	text = testCtx.substituteVariables(text)
	if !strings.Contains(testCtx.LastHTTPResponse, text) {
		return fmt.Errorf("response does not contain '%s'\nBody: %s", text, testCtx.LastHTTPResponse)
	}
	return nil
}

// theJSONResponseFieldShouldBe compares a dotted field path of the response
// body with want, formatting non-string values with %v.
func (testCtx *TestContext) theJSONResponseFieldShouldBe(field, want string) error {
	var data map[string]any
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &data); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}

	var current any = data
	for _, part := range strings.Split(field, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot navigate into '%s'", part)
		}
		if current, ok = m[part]; !ok {
			return fmt.Errorf("field '%s' not found in %s", field, testCtx.LastHTTPResponse)
		}
	}

	want = testCtx.substituteVariables(want)
	if got := fmt.Sprintf("%v", current); got != want {
		return fmt.Errorf("field '%s': want %q, got %q", field, want, got)
	}
	return nil
}

func (testCtx *TestContext) theResponseHeaderShouldBe(name, want string) error {
	if got := testCtx.LastHTTPHeaders[http.CanonicalHeaderKey(name)]; got != want {
		return fmt.Errorf("header %s: want %q, got %q", name, want, got)
	}
	return nil
}

// RegisterServerSteps registers the HTTP API step definitions.
func (testCtx *TestContext) RegisterServerSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the UPC-A server is running$`, testCtx.theServerIsRunning)
	sc.Step(`^the UPC-A server is running in legacy checksum mode$`, testCtx.theServerIsRunningInLegacyMode)
	sc.Step(`^the UPC-A server is running with a limit of (\d+) requests per minute$`,
		testCtx.theServerIsRunningWithRateLimit)

	sc.Step(`^I GET "([^"]*)"$`, testCtx.iGET)
	sc.Step(`^I POST to "([^"]*)":$`, testCtx.iPOSTTo)
	sc.Step(`^I POST to "([^"]*)" (\d+) times:$`, testCtx.iPOSTToTimes)

	sc.Step(`^the response status should be (\d+)$`, testCtx.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, testCtx.theResponseShouldContain)
	sc.Step(`^the JSON response field "([^"]*)" should be "([^"]*)"$`, testCtx.theJSONResponseFieldShouldBe)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, testCtx.theResponseHeaderShouldBe)
}
