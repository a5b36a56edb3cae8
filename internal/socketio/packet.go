// Package socketio implements the small subset of the Socket.IO v5
// protocol (over Engine.IO v4, websocket transport only) that a chat
// client needs: namespace connect/disconnect, named events, and the
// Engine.IO heartbeat.  Binary attachments and acknowledgements are
// not supported.
package socketio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	ncerr "sockchat/internal/errors"
)

// Engine.IO packet types, the first byte of every websocket frame.
const (
	EIOOpen    byte = '0'
	EIOClose   byte = '1'
	EIOPing    byte = '2'
	EIOPong    byte = '3'
	EIOMessage byte = '4'
	EIOUpgrade byte = '5'
	EIONoop    byte = '6'
)

// Socket.IO packet types, the first byte after an Engine.IO message byte.
const (
	SIOConnect      byte = '0'
	SIODisconnect   byte = '1'
	SIOEvent        byte = '2'
	SIOAck          byte = '3'
	SIOConnectError byte = '4'
	SIOBinaryEvent  byte = '5'
	SIOBinaryAck    byte = '6'
)

// DefaultNamespace is the namespace every client joins unless told otherwise.
const DefaultNamespace = "/"

// OpenInfo is the payload of the Engine.IO open packet.
type OpenInfo struct {
	SID          string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"` // milliseconds
	PingTimeout  int      `json:"pingTimeout"`  // milliseconds
	MaxPayload   int      `json:"maxPayload"`
}

// Packet is a decoded Socket.IO packet.
type Packet struct {
	Type      byte
	Namespace string
	AckID     int // -1 when absent
	Data      json.RawMessage
}

// ── Encoding ─────────────────────────────────────────────────────────

// EncodeConnect returns the frame that joins nsp.
func EncodeConnect(nsp string) []byte {
	return encode(SIOConnect, nsp, nil)
}

// EncodeDisconnect returns the frame that leaves nsp.
func EncodeDisconnect(nsp string) []byte {
	return encode(SIODisconnect, nsp, nil)
}

// EncodeEvent returns the frame for a named event on nsp.  Each arg is
// JSON-encoded as one array element after the event name.
func EncodeEvent(nsp, name string, args ...interface{}) ([]byte, error) {
	arr := make([]interface{}, 0, len(args)+1)
	arr = append(arr, name)
	arr = append(arr, args...)

	data, err := json.Marshal(arr)
	if err != nil {
		return nil, fmt.Errorf("encode event %q: %w", name, err)
	}
	return encode(SIOEvent, nsp, data), nil
}

func encode(typ byte, nsp string, data []byte) []byte {
	var b bytes.Buffer
	b.WriteByte(EIOMessage)
	b.WriteByte(typ)
	if nsp != "" && nsp != DefaultNamespace {
		b.WriteString(nsp)
		b.WriteByte(',')
	}
	b.Write(data)
	return b.Bytes()
}

// ── Decoding ─────────────────────────────────────────────────────────

// DecodeOpen parses an Engine.IO open frame ("0{...}").
func DecodeOpen(frame []byte) (OpenInfo, error) {
	var info OpenInfo
	if len(frame) == 0 || frame[0] != EIOOpen {
		return info, fmt.Errorf("%w: want open packet, got %q", ncerr.ErrUnexpectedPacket, truncate(frame))
	}
	if err := json.Unmarshal(frame[1:], &info); err != nil {
		return info, fmt.Errorf("decode open packet: %w", err)
	}
	return info, nil
}

// DecodePacket parses the Socket.IO part of an Engine.IO message frame,
// i.e. everything after the leading '4'.
//
//	<type>[<attachments>-][<namespace>,][<ack id>][<JSON data>]
func DecodePacket(body []byte) (Packet, error) {
	p := Packet{Namespace: DefaultNamespace, AckID: -1}
	if len(body) == 0 {
		return p, fmt.Errorf("%w: empty socket.io packet", ncerr.ErrUnexpectedPacket)
	}

	p.Type = body[0]
	if p.Type < SIOConnect || p.Type > SIOBinaryAck {
		return p, fmt.Errorf("%w: unknown socket.io type %q", ncerr.ErrUnexpectedPacket, p.Type)
	}
	if p.Type == SIOBinaryEvent || p.Type == SIOBinaryAck {
		return p, fmt.Errorf("%w: binary packets are not supported", ncerr.ErrUnexpectedPacket)
	}
	i := 1

	if i < len(body) && body[i] == '/' {
		end := bytes.IndexByte(body[i:], ',')
		if end < 0 {
			p.Namespace = string(body[i:])
			return p, nil
		}
		p.Namespace = string(body[i : i+end])
		i += end + 1
	}

	start := i
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		i++
	}
	if i > start {
		id, err := strconv.Atoi(string(body[start:i]))
		if err != nil {
			return p, fmt.Errorf("decode ack id: %w", err)
		}
		p.AckID = id
	}

	if i < len(body) {
		p.Data = json.RawMessage(body[i:])
		if !json.Valid(p.Data) {
			return p, fmt.Errorf("%w: invalid JSON data %q", ncerr.ErrUnexpectedPacket, truncate(p.Data))
		}
	}
	return p, nil
}

// Event splits an EVENT packet's data into the event name and its
// arguments.
func (p Packet) Event() (string, []json.RawMessage, error) {
	if p.Type != SIOEvent {
		return "", nil, fmt.Errorf("%w: packet type %q is not an event", ncerr.ErrUnexpectedPacket, p.Type)
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(p.Data, &arr); err != nil {
		return "", nil, fmt.Errorf("decode event array: %w", err)
	}
	if len(arr) == 0 {
		return "", nil, fmt.Errorf("%w: event without name", ncerr.ErrUnexpectedPacket)
	}
	var name string
	if err := json.Unmarshal(arr[0], &name); err != nil {
		return "", nil, fmt.Errorf("decode event name: %w", err)
	}
	return name, arr[1:], nil
}

func truncate(b []byte) string {
	const max = 64
	if len(b) > max {
		return string(b[:max]) + "…"
	}
	return string(b)
}
