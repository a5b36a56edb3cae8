package util

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// engineIOVersion is the Engine.IO protocol revision spoken by Socket.IO v3+ servers.
const engineIOVersion = "4"

// FormatAddr returns "host:port".
func FormatAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// ServerURL builds the operator-facing server address, e.g.
// "http://192.168.0.10:3000".
func ServerURL(scheme, host string, port int) string {
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + FormatAddr(host, port)
}

// SocketURL converts a server address into the websocket endpoint a
// Socket.IO server listens on:
//
//	http://host:3000  →  ws://host:3000/socket.io/?EIO=4&transport=websocket
//
// https maps to wss.  An explicit path other than "/" is kept.
func SocketURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("parse server url %q: %w", server, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q in %q", u.Scheme, server)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", server)
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = "/socket.io/"
	}

	q := u.Query()
	q.Set("EIO", engineIOVersion)
	q.Set("transport", "websocket")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
