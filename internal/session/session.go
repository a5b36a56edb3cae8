// Package session holds the client-side view of one chat session: the
// operator's username, the connection state and the last-known roster.
//
// Only the event pump mutates a Session.  Readers such as the console
// take a read lock through the accessor methods.
package session

import (
	"sync"

	"github.com/samber/lo"
)

// State is the connection state of a Session.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Session is the mutable state shared between the event pump and the
// interactive loop.
type Session struct {
	username string

	mu            sync.RWMutex
	state         State
	roster        []string
	everConnected bool
	ended         bool
}

// New creates a Disconnected session for username.  The username is
// fixed for the lifetime of the session.
func New(username string) *Session {
	return &Session{username: username}
}

// Username returns the operator's display name.
func (s *Session) Username() string { return s.username }

// State returns the current connection state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Roster returns a copy of the last-known roster in arrival order.
func (s *Session) Roster() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.roster))
	copy(out, s.roster)
	return out
}

// EverConnected reports whether a welcome was ever received.
func (s *Session) EverConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.everConnected
}

// SetConnecting records that the transport is up and the handshake is
// in flight.  It only applies to a fresh session; once a session has
// been disconnected it stays that way.
func (s *Session) SetConnecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Disconnected || s.ended {
		return false
	}
	s.state = Connecting
	return true
}

// MarkConnected moves a Connecting session to Connected and replaces
// the roster.  It is ignored once the session is Disconnected.
func (s *Session) MarkConnected(roster []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Disconnected {
		return false
	}
	s.state = Connected
	s.everConnected = true
	s.roster = dedupe(roster)
	return true
}

// ReplaceRoster replaces the roster wholesale.  No merging happens, so
// the result is exactly the given list minus duplicates.
func (s *Session) ReplaceRoster(users []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = dedupe(users)
	out := make([]string, len(s.roster))
	copy(out, s.roster)
	return out
}

// MarkDisconnected moves the session to its terminal state and reports
// whether this call made the transition.
func (s *Session) MarkDisconnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
	if s.state == Disconnected {
		return false
	}
	s.state = Disconnected
	return true
}

// dedupe drops repeated names, keeping first-arrival order.
func dedupe(users []string) []string {
	if len(users) == 0 {
		return []string{}
	}
	return lo.Uniq(users)
}
