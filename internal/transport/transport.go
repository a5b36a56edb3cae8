// Package transport provides abstractions for connection establishment.
// Transports handle the "how" of moving frames (a websocket today)
// independent of what the frames mean, which is the socketio layer's job.
package transport

import (
	"context"
	"net"
	"time"
)

// Conn is a message-oriented, full-duplex connection.  ReadMessage may
// be called from one goroutine while WriteMessage is called from
// another, but neither method may be called concurrently with itself.
type Conn interface {
	// ReadMessage blocks until the next complete text frame arrives.
	ReadMessage() ([]byte, error)

	// WriteMessage sends data as a single text frame.
	WriteMessage(data []byte) error

	// SetReadDeadline bounds the next ReadMessage call.  A zero value
	// disables the deadline.
	SetReadDeadline(t time.Time) error

	// RemoteAddr returns the peer address.
	RemoteAddr() net.Addr

	// Close sends a close frame (best effort) and releases the socket.
	// It is safe to call more than once.
	Close() error
}

// Dialer opens outbound connections.
type Dialer interface {
	// Dial establishes a connection to the given URL.
	Dial(ctx context.Context, url string) (Conn, error)

	// Close releases any long-lived resources held by the dialer.
	// Stateless dialers return nil.
	Close() error
}
