// Package core is the orchestration layer.  It composes the transport,
// the session controller and the console into a runnable mode and
// provides a builder that derives that mode from a Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  socketio  →  chat (+ session)  →  console  →  core  →  cmd (CLI)
//
// The builder in this package is the single dispatch point from
// configuration to a running session.
package core

import "context"

// Mode is a complete operational mode of sockchat.  A mode owns its
// full lifecycle from connection establishment to teardown.
type Mode interface {
	Run(ctx context.Context) error
}
