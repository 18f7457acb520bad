// file: websocket/connection_test.go
//go:build unit
// +build unit

package websocket

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn implements WSConn and records what the pumps write.
type fakeConn struct {
	mu      sync.Mutex
	written []int
}

func (fc *fakeConn) WriteMessage(messageType int, data []byte) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.written = append(fc.written, messageType)
	return nil
}

func (fc *fakeConn) types() []int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]int(nil), fc.written...)
}

func (fc *fakeConn) SetWriteDeadline(t time.Time) error { return nil }
func (fc *fakeConn) ReadMessage() (int, []byte, error)  { return 0, nil, net.ErrClosed }
func (fc *fakeConn) Close() error                       { return nil }
func (fc *fakeConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 12345}
}
func (fc *fakeConn) SetReadLimit(limit int64)            {}
func (fc *fakeConn) SetReadDeadline(t time.Time) error   { return nil }
func (fc *fakeConn) SetPongHandler(h func(string) error) {}

func TestWritePump_SendsTextThenClose(t *testing.T) {
	fc := &fakeConn{}
	c := &Connection{conn: fc, send: make(chan []byte, 1)}
	c.send <- []byte("hello")
	close(c.send)

	c.writePump()

	assert.Equal(t, []int{websocket.TextMessage, websocket.CloseMessage}, fc.types())
}

func TestSameOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/admin/updates", nil)
	assert.True(t, sameOrigin(req))

	req.Header.Set("Origin", "http://example.com")
	assert.True(t, sameOrigin(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, sameOrigin(req))
}

// Test: a real client connected through ServeWs receives broadcasts
func TestServeWs_ReceivesBroadcast(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWs(w, r, "admin")
	}))
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)
	hub.Broadcast([]byte(`{"action":"deleted"}`))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"deleted"}`, string(msg))
}
