package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestServer creates a server with default limits and no rate limiting.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(Config{CORSOrigin: "*", MaxBodyKB: 4})
	require.NoError(t, err)
	return s
}

// postJSON sends body as JSON to the given handler and returns the recorder.
func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// decodeResponse unmarshals a CodecResponse from the recorder body.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) CodecResponse {
	t.Helper()
	var resp CodecResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
