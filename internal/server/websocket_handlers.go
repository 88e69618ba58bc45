package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/upca/internal/upca"
	"github.com/gorilla/websocket"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// WebSocketRequest is one codec request sent over /ws.
type WebSocketRequest struct {
	Type      string   `json:"type"` // encode, decode, checksum or validate
	ID        string   `json:"id,omitempty"`
	Digits    string   `json:"digits,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Tokens    []string `json:"tokens,omitempty"`
	Flat      bool     `json:"flat,omitempty"`
	Normalize bool     `json:"normalize,omitempty"`
}

// WebSocketResponse answers a WebSocketRequest.
type WebSocketResponse struct {
	Type      string        `json:"type"`
	ID        string        `json:"id,omitempty"`
	Status    string        `json:"status"` // "completed" or "error"
	Result    *SymbolResult `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	ErrorType string        `json:"error_type,omitempty"`
}

// WebSocketConnWriter is an interface for writing WebSocket messages.
type WebSocketConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return s.corsOrigin == "*" || origin == "" || origin == s.corsOrigin
		},
	}
}

// codecWebSocketHandler serves codec requests over a WebSocket connection.
func (s *Server) codecWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)
	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes messages until the client goes away.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	conn.SetReadLimit(s.maxBodyBytes)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			return
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
			s.handleWebSocketMessage(conn, data)
		}
	}
}

// handleWebSocketMessage dispatches one request and writes its response.
func (s *Server) handleWebSocketMessage(conn WebSocketConnWriter, data []byte) {
	var req WebSocketRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketResponse(conn, WebSocketResponse{
			Type:      "error",
			Status:    "error",
			Error:     fmt.Sprintf("Failed to parse request: %v", err),
			ErrorType: "invalid_request",
		})
		return
	}

	var (
		res *SymbolResult
		err error
	)
	switch req.Type {
	case "encode":
		res, err = s.encode(EncodeRequest{Digits: req.Digits, Flat: req.Flat, Normalize: req.Normalize})
	case "decode":
		res, err = s.decode(DecodeRequest{Pattern: req.Pattern, Tokens: req.Tokens})
	case "checksum":
		res, err = s.checksum(DigitsRequest{Digits: req.Digits, Normalize: req.Normalize})
	case "validate":
		res, err = s.validate(DigitsRequest{Digits: req.Digits, Normalize: req.Normalize})
	default:
		s.sendWebSocketResponse(conn, WebSocketResponse{
			Type:      req.Type,
			ID:        req.ID,
			Status:    "error",
			Error:     fmt.Sprintf("unknown request type %q", req.Type),
			ErrorType: "invalid_request",
		})
		return
	}

	resp := WebSocketResponse{Type: req.Type, ID: req.ID, Status: "completed", Result: res}
	if err != nil {
		resp = WebSocketResponse{
			Type:      req.Type,
			ID:        req.ID,
			Status:    "error",
			Error:     err.Error(),
			ErrorType: upca.Kind(err),
		}
	}
	s.sendWebSocketResponse(conn, resp)
}

func (s *Server) sendWebSocketResponse(conn WebSocketConnWriter, resp WebSocketResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket response", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
