package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MeKo-Tech/upca/internal/upca"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleDigits  = "03600029145"
	sampleFull    = "036000291452"
	sampleGrouped = "0000000000 101 0001101 0111101 0101111 0001101 0001101 0001101 01010 " +
		"1101100 1110100 1100110 1011100 1001110 1101100 101 0000000000"
)

func TestServer_HealthHandler(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{"GET request success", http.MethodGet, http.StatusOK},
		{"POST request not allowed", http.MethodPost, http.StatusMethodNotAllowed},
		{"PUT request not allowed", http.MethodPut, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			w := httptest.NewRecorder()

			server.healthHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response HealthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, "healthy", response.Status)
				assert.NotEmpty(t, response.Time)
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestServer_EncodeHandler(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server.encodeHandler, "/encode", EncodeRequest{Digits: sampleDigits})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Result)
	assert.Equal(t, sampleGrouped, resp.Result.Pattern)
	assert.Equal(t, sampleFull, resp.Result.Digits)
	assert.Equal(t, "0", resp.Result.NumberSystem)
	assert.Equal(t, "36000", resp.Result.ManufacturerCode)
	assert.Equal(t, "29145", resp.Result.ProductCode)
	assert.Equal(t, "2", resp.Result.CheckDigit)
}

func TestServer_EncodeHandler_FlatAndNormalize(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server.encodeHandler, "/encode", EncodeRequest{Digits: "0-36000-29145", Flat: true, Normalize: true})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Len(t, resp.Result.Pattern, upca.SymbolWidth)
	assert.Equal(t, sampleFull, resp.Result.Digits)
}

func TestServer_EncodeHandler_Errors(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name      string
		digits    string
		errorType string
	}{
		{"letters", "0360002914A", "invalid_characters"},
		{"empty", "", "invalid_characters"},
		{"too short", "0360002914", "length_out_of_range"},
		{"too long", "0360002914520", "length_out_of_range"},
		{"wrong check digit", "036000291453", "invalid_checksum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, server.encodeHandler, "/encode", EncodeRequest{Digits: tt.digits})
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.errorType, resp.ErrorType)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestServer_DecodeHandler(t *testing.T) {
	server := newTestServer(t)
	sym, err := upca.EncodeFlat(sampleDigits)
	require.NoError(t, err)

	tests := []struct {
		name string
		req  DecodeRequest
	}{
		{"grouped pattern", DecodeRequest{Pattern: sampleGrouped}},
		{"flat pattern", DecodeRequest{Pattern: sym.Pattern}},
		{"tokens", DecodeRequest{Tokens: strings.Fields(sampleGrouped)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, server.decodeHandler, "/decode", tt.req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			resp := decodeResponse(t, w)
			assert.Equal(t, sampleFull, resp.Result.Digits)
			require.NotNil(t, resp.Result.ChecksumValid)
			assert.True(t, *resp.Result.ChecksumValid)
		})
	}
}

func TestServer_DecodeHandler_Errors(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server.decodeHandler, "/decode", DecodeRequest{Pattern: "101 0001101"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "malformed_input", decodeResponse(t, w).ErrorType)

	tokens := strings.Fields(sampleGrouped)
	tokens[3] = "1111111"
	w = postJSON(t, server.decodeHandler, "/decode", DecodeRequest{Tokens: tokens})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "unrecognized_pattern", decodeResponse(t, w).ErrorType)
}

func TestServer_DecodeHandler_ReportsBadChecksum(t *testing.T) {
	server := newTestServer(t)

	// swap the check digit token for the right-side pattern of 3
	tokens := strings.Fields(sampleGrouped)
	tokens[14] = upca.PatternFor(3, upca.Right)

	w := postJSON(t, server.decodeHandler, "/decode", DecodeRequest{Tokens: tokens})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "036000291453", resp.Result.Digits)
	require.NotNil(t, resp.Result.ChecksumValid)
	assert.False(t, *resp.Result.ChecksumValid)
}

func TestServer_ChecksumHandler(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server.checksumHandler, "/checksum", DigitsRequest{Digits: "01234567890"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "5", resp.Result.CheckDigit)
	assert.Equal(t, "012345678905", resp.Result.Digits)

	w = postJSON(t, server.checksumHandler, "/checksum", DigitsRequest{Digits: sampleFull})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "length_out_of_range", decodeResponse(t, w).ErrorType)
}

func TestServer_ChecksumHandler_LegacyMode(t *testing.T) {
	server, err := NewServer(Config{ChecksumMode: upca.ChecksumLegacy})
	require.NoError(t, err)

	w := postJSON(t, server.checksumHandler, "/checksum", DigitsRequest{Digits: "00000000000"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_checksum", decodeResponse(t, w).ErrorType)
}

func TestServer_ValidateHandler(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server.validateHandler, "/validate", DigitsRequest{Digits: sampleFull})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Result.ChecksumValid)
	assert.True(t, *resp.Result.ChecksumValid)

	w = postJSON(t, server.validateHandler, "/validate", DigitsRequest{Digits: "036000291453"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_checksum", decodeResponse(t, w).ErrorType)

	w = postJSON(t, server.validateHandler, "/validate", DigitsRequest{Digits: sampleDigits})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "length_out_of_range", decodeResponse(t, w).ErrorType)
}

func TestServer_RequestErrors(t *testing.T) {
	server := newTestServer(t)

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/encode", nil)
		w := httptest.NewRecorder()
		server.encodeHandler(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/encode", strings.NewReader("{digits:"))
		w := httptest.NewRecorder()
		server.encodeHandler(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_request", decodeResponse(t, w).ErrorType)
	})

	t.Run("body too large", func(t *testing.T) {
		body := `{"digits":"` + strings.Repeat("0", 8*1024) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/encode", strings.NewReader(body))
		w := httptest.NewRecorder()
		server.encodeHandler(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestServer_Routes(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/encode", "application/json", strings.NewReader(`{"digits":"`+sampleDigits+`"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "upca_codec_operations_total")
	assert.Contains(t, body.String(), "upca_http_requests_total")
}
