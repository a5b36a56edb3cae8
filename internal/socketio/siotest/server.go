// Package siotest provides an in-process Socket.IO server for tests.
//
// It speaks just enough of Engine.IO v4 over websocket to complete the
// open and namespace handshakes and then hands each session to the test.
package siotest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultTimeout bounds Recv and NextSession.
const DefaultTimeout = 2 * time.Second

// Server is a Socket.IO server listening on a loopback address.
type Server struct {
	*httptest.Server

	pingInterval int
	pingTimeout  int
	connectReply string

	sessions chan *Session

	mu   sync.Mutex
	open []*Session
}

// Option configures a Server.
type Option func(*Server)

// WithPing sets the heartbeat parameters advertised in the open packet.
func WithPing(interval, timeout time.Duration) Option {
	return func(s *Server) {
		s.pingInterval = int(interval / time.Millisecond)
		s.pingTimeout = int(timeout / time.Millisecond)
	}
}

// WithConnectError makes the server refuse the namespace connect.
func WithConnectError(message string) Option {
	return func(s *Server) {
		body, _ := json.Marshal(map[string]string{"message": message})
		s.connectReply = "44" + string(body)
	}
}

// NewServer starts a server that is closed when the test ends.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()
	s := &Server{
		pingInterval: 25000,
		pingTimeout:  20000,
		connectReply: `40{"sid":"srv-sid"}`,
		sessions:     make(chan *Session, 8),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.shutdown)
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("transport") != "websocket" {
		http.Error(w, "transport unknown", http.StatusBadRequest)
		return
	}
	upgrader := websocket.Upgrader{}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	open := fmt.Sprintf(`0{"sid":"eio-sid","upgrades":[],"pingInterval":%d,"pingTimeout":%d,"maxPayload":1000000}`,
		s.pingInterval, s.pingTimeout)
	if err := ws.WriteMessage(websocket.TextMessage, []byte(open)); err != nil {
		ws.Close()
		return
	}

	ws.SetReadDeadline(time.Now().Add(DefaultTimeout)) //nolint:errcheck
	_, frame, err := ws.ReadMessage()
	if err != nil || string(frame) != "40" {
		ws.Close()
		return
	}
	if err := ws.WriteMessage(websocket.TextMessage, []byte(s.connectReply)); err != nil {
		ws.Close()
		return
	}
	ws.SetReadDeadline(time.Time{}) //nolint:errcheck

	sess := &Session{ws: ws}
	s.mu.Lock()
	s.open = append(s.open, sess)
	s.mu.Unlock()
	s.sessions <- sess
}

func (s *Server) shutdown() {
	s.mu.Lock()
	for _, sess := range s.open {
		sess.Close()
	}
	s.mu.Unlock()
	s.Server.Close()
}

// NextSession waits for the next client to complete the handshake.
func (s *Server) NextSession(t testing.TB) *Session {
	t.Helper()
	select {
	case sess := <-s.sessions:
		return sess
	case <-time.After(DefaultTimeout):
		t.Fatal("siotest: no client connected")
		return nil
	}
}

// Session is the server side of one connected client.  Its methods
// must be called from a single goroutine.
type Session struct {
	ws        *websocket.Conn
	closeOnce sync.Once
}

// Recv returns the next raw frame sent by the client.
func (s *Session) Recv() (string, error) {
	s.ws.SetReadDeadline(time.Now().Add(DefaultTimeout)) //nolint:errcheck
	_, frame, err := s.ws.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(frame), nil
}

// Send writes a raw Engine.IO frame.
func (s *Session) Send(frame string) error {
	return s.ws.WriteMessage(websocket.TextMessage, []byte(frame))
}

// Emit sends a named event with one payload argument.
func (s *Session) Emit(name string, payload interface{}) error {
	data, err := json.Marshal([]interface{}{name, payload})
	if err != nil {
		return err
	}
	return s.Send("42" + string(data))
}

// EmitRaw sends a named event whose payload is the literal JSON raw.
func (s *Session) EmitRaw(name, raw string) error {
	n, _ := json.Marshal(name)
	return s.Send("42[" + string(n) + "," + raw + "]")
}

// Close drops the connection without a close handshake.
func (s *Session) Close() {
	s.closeOnce.Do(func() { s.ws.Close() })
}
