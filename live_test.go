package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type liveFrame struct {
	Type  string          `json:"type"`
	Query string          `json:"query"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialLive(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/live?q=" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) liveFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var frame liveFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestServeLive(t *testing.T) {
	if err := cleanupTestData(); err != nil {
		t.Fatalf("Failed to cleanup test data: %v", err)
	}
	server := httptest.NewServer(testRouter)
	defer server.Close()

	t.Run("should push a new balance snapshot after a transaction", func(t *testing.T) {
		conn := dialLive(t, server, "balance")

		frame := readFrame(t, conn)
		assert.Equal(t, "snapshot", frame.Type)
		assert.Equal(t, "balance", frame.Query)
		var balance Balance
		require.NoError(t, json.Unmarshal(frame.Data, &balance))
		assert.True(t, balance.Amount.IsZero())

		require.Eventually(t, func() bool { return hub.Subscribers("balance") == 1 }, time.Second, 10*time.Millisecond)

		token := loginAsAdmin(t)
		createTestTransaction(t, token, map[string]interface{}{
			"type": "income", "amount": 75, "description": "Bake sale", "received_from": "Stall",
		})

		frame = readFrame(t, conn)
		require.Equal(t, "balance", frame.Query)
		require.NoError(t, json.Unmarshal(frame.Data, &balance))
		assert.Equal(t, "75", balance.Amount.String())
		assert.Equal(t, "₹75.00", balance.Formatted)
	})

	t.Run("should report unknown queries", func(t *testing.T) {
		conn := dialLive(t, server, "ledger")

		frame := readFrame(t, conn)
		assert.Equal(t, "error", frame.Type)
		assert.Equal(t, "ledger", frame.Query)
		assert.NotEmpty(t, frame.Error)
	})

	t.Run("should refuse other origins", func(t *testing.T) {
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/live"
		header := http.Header{"Origin": []string{"https://evil.example"}}
		_, resp, err := websocket.DefaultDialer.Dial(url, header)

		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
