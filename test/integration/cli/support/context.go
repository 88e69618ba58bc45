package support

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MeKo-Tech/upca/internal/testutil"
)

// TestContext holds the state for integration tests.
type TestContext struct {
	// Command execution state
	LastCommand  string
	LastStdout   string
	LastStderr   string
	LastOutput   string
	LastError    error
	LastExitCode int
	LastDuration time.Duration
	LastFile     string

	// Test environment
	WorkingDir string
	TempDir    string
	BinaryPath string
	EnvVars    []string

	// Server state
	HTTPTestServer *HTTPTestServerWrapper

	// HTTP response state
	LastHTTPStatusCode int
	LastHTTPResponse   string
	LastHTTPHeaders    map[string]string
}

// NewTestContext creates a new test context rooted at the project directory.
func NewTestContext() (*TestContext, error) {
	workingDir, err := testutil.GetProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "upca-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	binary := os.Getenv("UPCA_BIN")
	if binary == "" {
		binary = filepath.Join(workingDir, "bin", "upca")
	}

	return &TestContext{
		WorkingDir: workingDir,
		TempDir:    tempDir,
		BinaryPath: binary,
		EnvVars:    []string{},
	}, nil
}

// Cleanup stops the test server and removes temporary files.
func (testCtx *TestContext) Cleanup() error {
	var errs []error

	if err := testCtx.StopServer(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop server: %w", err))
	}
	if err := os.RemoveAll(testCtx.TempDir); err != nil && !os.IsNotExist(err) {
		errs = append(errs, fmt.Errorf("failed to remove temp directory %s: %w", testCtx.TempDir, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// AddEnvVar adds an environment variable for command execution.
func (testCtx *TestContext) AddEnvVar(name, value string) {
	testCtx.EnvVars = append(testCtx.EnvVars, fmt.Sprintf("%s=%s", name, value))
}

// substituteVariables expands {temp_dir} and {<fixture>.<field>}
// placeholders, where field is payload, digits, grouped or flat.
func (testCtx *TestContext) substituteVariables(s string) string {
	s = strings.ReplaceAll(s, "{temp_dir}", testCtx.TempDir)
	for _, f := range testutil.KnownCodes() {
		s = strings.ReplaceAll(s, "{"+f.Name+".payload}", f.Payload)
		s = strings.ReplaceAll(s, "{"+f.Name+".digits}", f.Digits)
		s = strings.ReplaceAll(s, "{"+f.Name+".grouped}", f.Grouped)
		s = strings.ReplaceAll(s, "{"+f.Name+".flat}", f.Flat())
	}
	return s
}
