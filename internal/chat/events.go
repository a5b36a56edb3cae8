package chat

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/samber/lo"

	ncerr "sockchat/internal/errors"
	"sockchat/internal/socketio"
)

// Wire event names.
const (
	EventWelcome     = "welcome"
	EventPublic      = "chat:public"
	EventUsersList   = "users:list"
	EventUserJoined  = "user_joined"
	EventUserLeft    = "user_left"
	EventServerError = "server:error"

	EventHello       = "hello"
	EventCommandList = "command:list"
	EventCommandQuit = "command:quit"
)

// Placeholders for absent payload fields.
const (
	UnknownUser      = "¿?"
	UnknownErrorCode = "UNKNOWN"
)

// Event is an inbound event decoded once at the boundary.  The set of
// implementations is closed; Controller.Handle switches over all of them.
type Event interface {
	eventName() string
}

// Connected is the transport-level connect notification.
type Connected struct{}

// Welcome acknowledges the hello and carries the current roster.
type Welcome struct {
	Username       string
	ConnectedUsers []string
}

// PublicMessage is a chat line broadcast by the server.
type PublicMessage struct {
	Username     string
	Text         string
	SentAtMillis int64
}

// UserList is a full roster refresh.
type UserList struct {
	Users []string
}

// UserJoined announces a new participant.
type UserJoined struct {
	Username string
}

// UserLeft announces a departed participant.
type UserLeft struct {
	Username string
}

// ServerError is an application error reported by the server.
type ServerError struct {
	Code    string
	Message string
}

// Disconnected is the transport-level disconnect notification.
type Disconnected struct {
	Reason string
}

// Malformed is a known event whose payload did not have the expected shape.
type Malformed struct {
	Name string
	Err  error
}

// Unknown is an event name this client does not handle.
type Unknown struct {
	Name string
}

func (Connected) eventName() string     { return socketio.EventConnect }
func (Welcome) eventName() string       { return EventWelcome }
func (PublicMessage) eventName() string { return EventPublic }
func (UserList) eventName() string      { return EventUsersList }
func (UserJoined) eventName() string    { return EventUserJoined }
func (UserLeft) eventName() string      { return EventUserLeft }
func (ServerError) eventName() string   { return EventServerError }
func (Disconnected) eventName() string  { return socketio.EventDisconnect }
func (m Malformed) eventName() string   { return m.Name }
func (u Unknown) eventName() string     { return u.Name }

// Decode turns a raw transport event into its typed form.
func Decode(ev socketio.Event) Event {
	switch ev.Name {
	case socketio.EventConnect:
		return Connected{}
	case socketio.EventDisconnect:
		return Disconnected{Reason: decodeReason(ev.Payload())}
	case EventWelcome:
		return decodeWelcome(ev.Payload())
	case EventPublic:
		return decodePublic(ev.Payload())
	case EventUsersList:
		return decodeUserList(ev.Payload())
	case EventUserJoined:
		obj, err := object(EventUserJoined, ev.Payload())
		if err != nil {
			return Malformed{Name: EventUserJoined, Err: err}
		}
		return UserJoined{Username: stringField(obj, "username", UnknownUser)}
	case EventUserLeft:
		obj, err := object(EventUserLeft, ev.Payload())
		if err != nil {
			return Malformed{Name: EventUserLeft, Err: err}
		}
		return UserLeft{Username: stringField(obj, "username", UnknownUser)}
	case EventServerError:
		obj, err := object(EventServerError, ev.Payload())
		if err != nil {
			return Malformed{Name: EventServerError, Err: err}
		}
		return ServerError{
			Code:    stringField(obj, "code", UnknownErrorCode),
			Message: stringField(obj, "message", ""),
		}
	default:
		return Unknown{Name: ev.Name}
	}
}

func decodeWelcome(payload json.RawMessage) Event {
	var body struct {
		Username       *string   `json:"username"`
		ConnectedUsers *[]string `json:"connectedUsers"`
	}
	if len(payload) == 0 {
		return Malformed{Name: EventWelcome, Err: ncerr.Payload(EventWelcome, errMissingPayload)}
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return Malformed{Name: EventWelcome, Err: ncerr.Payload(EventWelcome, err)}
	}
	switch {
	case body.Username == nil:
		return Malformed{Name: EventWelcome, Err: ncerr.Payload(EventWelcome, fmt.Errorf("missing field %q", "username"))}
	case body.ConnectedUsers == nil:
		return Malformed{Name: EventWelcome, Err: ncerr.Payload(EventWelcome, fmt.Errorf("missing field %q", "connectedUsers"))}
	}
	return Welcome{Username: *body.Username, ConnectedUsers: *body.ConnectedUsers}
}

func decodePublic(payload json.RawMessage) Event {
	obj, err := object(EventPublic, payload)
	if err != nil {
		return Malformed{Name: EventPublic, Err: err}
	}
	msg := PublicMessage{
		Username: stringField(obj, "username", UnknownUser),
		Text:     stringField(obj, "text", ""),
	}
	// Out-of-range values would convert to an arbitrary int64.
	if f, ok := obj["at"].(float64); ok && f == math.Trunc(f) && f > 0 && f < math.MaxInt64 {
		msg.SentAtMillis = int64(f)
	}
	return msg
}

func decodeUserList(payload json.RawMessage) Event {
	obj, err := object(EventUsersList, payload)
	if err != nil {
		return Malformed{Name: EventUsersList, Err: err}
	}
	arr, ok := obj["users"].([]interface{})
	if !ok {
		return Malformed{Name: EventUsersList, Err: ncerr.Payload(EventUsersList, fmt.Errorf("field %q is not a list", "users"))}
	}
	users := lo.FilterMap(arr, func(v interface{}, _ int) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
	return UserList{Users: users}
}

func decodeReason(payload json.RawMessage) string {
	if len(payload) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(payload, &s) == nil {
		return s
	}
	return string(payload)
}

var errMissingPayload = ncerr.New("missing payload")

// object parses payload as JSON.  A valid JSON value that is not an
// object yields an empty map, so every field falls back to its default.
func object(event string, payload json.RawMessage) (map[string]interface{}, error) {
	if len(payload) == 0 {
		return nil, ncerr.Payload(event, errMissingPayload)
	}
	var v interface{}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, ncerr.Payload(event, err)
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return obj, nil
}

func stringField(obj map[string]interface{}, key, def string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return def
}
