//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../../mocks/mock_chat.go -package=mocks

package chat

import "sockchat/internal/socketio"

// Notifier renders controller notifications to the operator.  Methods
// are called from the event pump, one at a time, in event order.
type Notifier interface {
	Handshaking()
	Welcome(username string, roster []string)
	Chat(clock, username, text string)
	Roster(users []string)
	Joined(username string)
	Left(username string)
	ServerError(code, message string)
	Disconnected(reason string)
	Unexpected(event string, err error)
}

// Socket is the event transport a Controller drives.  *socketio.Client
// satisfies it.
type Socket interface {
	Emit(name string, payload interface{}) error
	Events() <-chan socketio.Event
	Close() error
}
