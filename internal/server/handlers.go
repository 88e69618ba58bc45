package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/upca/internal/upca"
	"github.com/MeKo-Tech/upca/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// encodeHandler turns digits into the grouped or flat module pattern.
func (s *Server) encodeHandler(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if !s.readRequest(w, r, &req) {
		return
	}
	res, err := s.encode(req)
	s.writeCodecResult(w, res, err)
}

// decodeHandler recovers the digits from a grouped or flat pattern.
func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if !s.readRequest(w, r, &req) {
		return
	}
	res, err := s.decode(req)
	s.writeCodecResult(w, res, err)
}

// checksumHandler computes the check digit of 11 digits.
func (s *Server) checksumHandler(w http.ResponseWriter, r *http.Request) {
	var req DigitsRequest
	if !s.readRequest(w, r, &req) {
		return
	}
	res, err := s.checksum(req)
	s.writeCodecResult(w, res, err)
}

// validateHandler checks a complete 12-digit payload.
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	var req DigitsRequest
	if !s.readRequest(w, r, &req) {
		return
	}
	res, err := s.validate(req)
	s.writeCodecResult(w, res, err)
}

// readRequest enforces POST and the body limit and decodes the JSON body.
// It writes the error response itself and reports whether to continue.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeErrorResponse(w, "Request body too large", "request_too_large", http.StatusRequestEntityTooLarge)
			return false
		}
		s.writeErrorResponse(w, "Invalid JSON body: "+err.Error(), "invalid_request", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeCodecResult(w http.ResponseWriter, res *SymbolResult, err error) {
	if err != nil {
		status := http.StatusUnprocessableEntity
		var ce *upca.CodecError
		if !errors.As(err, &ce) {
			status = http.StatusInternalServerError
		}
		s.writeErrorResponse(w, err.Error(), upca.Kind(err), status)
		return
	}
	writeJSON(w, http.StatusOK, CodecResponse{Success: true, Result: res})
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message, errorType string, statusCode int) {
	writeJSON(w, statusCode, CodecResponse{
		Success:   false,
		Error:     message,
		ErrorType: errorType,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
