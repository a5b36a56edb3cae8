package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// echoServer upgrades every request and echoes text frames back.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			mt, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if err := ws.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// TestWebSocketDialer_Echo verifies a frame round-trips through a local
// websocket server.
func TestWebSocketDialer_Echo(t *testing.T) {
	srv := echoServer(t)

	d := &WebSocketDialer{Timeout: 2 * time.Second}
	conn, err := d.Dial(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage([]byte(`42["ping"]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `42["ping"]` {
		t.Errorf("got %q, want %q", got, `42["ping"]`)
	}
	if conn.RemoteAddr() == nil {
		t.Error("RemoteAddr should not be nil")
	}
}

// TestWebSocketDialer_ContextCancel verifies that a cancelled context stops the dial.
func TestWebSocketDialer_ContextCancel(t *testing.T) {
	d := &WebSocketDialer{Timeout: 5 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := d.Dial(ctx, "ws://127.0.0.1:1/socket.io/")
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

// TestWebSocketDialer_BadHandshake verifies a non-websocket endpoint is
// reported with its HTTP status.
func TestWebSocketDialer_BadHandshake(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	d := &WebSocketDialer{Timeout: 2 * time.Second}
	_, err := d.Dial(context.Background(), wsURL(srv))
	if err == nil {
		t.Fatal("expected handshake error")
	}
	if !strings.Contains(err.Error(), "http 404") {
		t.Errorf("error %q should mention http 404", err)
	}
}

// TestWsConn_CloseTwice verifies Close is idempotent.
func TestWsConn_CloseTwice(t *testing.T) {
	srv := echoServer(t)

	d := &WebSocketDialer{Timeout: 2 * time.Second}
	conn, err := d.Dial(context.Background(), wsURL(srv))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	first := conn.Close()
	second := conn.Close()
	if first != second {
		t.Errorf("second Close returned %v, want %v", second, first)
	}
}

// TestWebSocketDialer_Close verifies Close is a no-op and returns nil.
func TestWebSocketDialer_Close(t *testing.T) {
	d := &WebSocketDialer{}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
