package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, prompts and environment variable loading.

const (
	// DefaultHost is offered at the host prompt.
	DefaultHost = "localhost"

	// DefaultPort is the port chat servers listen on out of the box.
	DefaultPort = 3000

	// DefaultScheme is the server URL scheme; https switches to wss.
	DefaultScheme = "http"

	// DefaultConnTimeout bounds the websocket dial and the Socket.IO
	// handshake together.
	DefaultConnTimeout = 20 * time.Second

	// DefaultEnvFile is loaded when present and no --env-file is given.
	DefaultEnvFile = ".env"

	// EnvPrefix namespaces every environment variable.
	EnvPrefix = "SOCKCHAT"
)
