// Package errors provides domain-specific error types for sockchat.
//
// These types carry structured context (stage, address, event name) that
// helps callers decide whether a failure ends the process or is only worth
// a diagnostic line.
package errors

import (
	"errors"
	"fmt"
	"net"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrNotConnected     = errors.New("not connected")
	ErrClosed           = errors.New("connection is closed")
	ErrConnectionLost   = errors.New("connection lost")
	ErrHandshake        = errors.New("handshake failed")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrUnexpectedPacket = errors.New("unexpected packet")
)

// ── Structured error types ───────────────────────────────────────────

// ConnectError reports a failure to establish the session transport.
// It is always fatal for the process.
type ConnectError struct {
	Stage string // "dial", "open", "namespace"
	Addr  string // server URL
	Err   error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s (%s): %v", e.Addr, e.Stage, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// PayloadError reports an inbound event whose payload could not be
// decoded into the expected shape.  It is recovered per event.
type PayloadError struct {
	Event string
	Err   error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("event %q: unexpected payload: %v", e.Event, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// SendError reports a failed outbound emission.  The interactive loop
// treats it as fatal since there is no usable send path left.
type SendError struct {
	Event string
	Err   error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("emit %q: %v", e.Event, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Connect creates a ConnectError.
func Connect(stage, addr string, err error) *ConnectError {
	return &ConnectError{Stage: stage, Addr: addr, Err: err}
}

// Payload creates a PayloadError.
func Payload(event string, err error) *PayloadError {
	return &PayloadError{Event: event, Err: err}
}

// Send creates a SendError.
func Send(event string, err error) *SendError {
	return &SendError{Event: event, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsFatal reports whether err should terminate the process: connect
// failures and send failures are, everything else is recoverable.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var ce *ConnectError
	if errors.As(err, &ce) {
		return true
	}
	var se *SendError
	return errors.As(err, &se)
}

// IsClosed reports whether err means the connection was closed on
// purpose (local close, EOF, or net.ErrClosed).
func IsClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrClosed) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use sockchat/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
