package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWebSocketConn records messages written by the handler.
type mockWebSocketConn struct {
	sentMessages []sentMessage
}

type sentMessage struct {
	messageType int
	data        []byte
}

func (m *mockWebSocketConn) WriteMessage(messageType int, data []byte) error {
	m.sentMessages = append(m.sentMessages, sentMessage{messageType: messageType, data: data})
	return nil
}

func (m *mockWebSocketConn) last(t *testing.T) WebSocketResponse {
	t.Helper()
	require.NotEmpty(t, m.sentMessages)
	msg := m.sentMessages[len(m.sentMessages)-1]
	assert.Equal(t, websocket.TextMessage, msg.messageType)
	var resp WebSocketResponse
	require.NoError(t, json.Unmarshal(msg.data, &resp))
	return resp
}

func TestServer_HandleWebSocketMessage(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name       string
		message    string
		wantStatus string
		wantDigits string
		wantError  string
	}{
		{"encode", `{"type":"encode","id":"1","digits":"03600029145"}`, "completed", sampleFull, ""},
		{"checksum", `{"type":"checksum","digits":"01234567890"}`, "completed", "012345678905", ""},
		{"validate", `{"type":"validate","digits":"036000291452"}`, "completed", sampleFull, ""},
		{"decode", `{"type":"decode","pattern":"` + sampleGrouped + `"}`, "completed", sampleFull, ""},
		{"codec error", `{"type":"encode","digits":"12"}`, "error", "", "length_out_of_range"},
		{"unknown type", `{"type":"render"}`, "error", "", "invalid_request"},
		{"invalid json", `{"type":`, "error", "", "invalid_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &mockWebSocketConn{}
			server.handleWebSocketMessage(conn, []byte(tt.message))

			resp := conn.last(t)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantError, resp.ErrorType)
			if tt.wantDigits != "" {
				require.NotNil(t, resp.Result)
				assert.Equal(t, tt.wantDigits, resp.Result.Digits)
			}
		})
	}
}

func TestServer_HandleWebSocketMessage_EchoesID(t *testing.T) {
	server := newTestServer(t)
	conn := &mockWebSocketConn{}
	server.handleWebSocketMessage(conn, []byte(`{"type":"encode","id":"req-42","digits":"03600029145","flat":true}`))

	resp := conn.last(t)
	assert.Equal(t, "req-42", resp.ID)
	assert.Equal(t, "encode", resp.Type)
	assert.Len(t, resp.Result.Pattern, 115)
}

func TestServer_WebSocketEndpoint(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	require.NoError(t, conn.WriteJSON(WebSocketRequest{Type: "encode", ID: "a", Digits: "12345678901"}))
	var got WebSocketResponse
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, "123456789012", got.Result.Digits)

	require.NoError(t, conn.WriteJSON(WebSocketRequest{Type: "decode", ID: "b", Pattern: got.Result.Pattern}))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, "123456789012", got.Result.Digits)
}

func TestServer_WebSocketOriginCheck(t *testing.T) {
	server, err := NewServer(Config{CORSOrigin: "https://shop.example"})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := map[string][]string{"Origin": {"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, 403, resp.StatusCode)
		_ = resp.Body.Close()
	}
}
