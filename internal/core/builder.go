package core

import (
	"io"

	"sockchat/config"
	"sockchat/internal/metrics"
	"sockchat/internal/transport"
	"sockchat/util"
)

// maxFrameSize bounds a single inbound websocket frame.
const maxFrameSize = 1 << 20

// Streams are the operator-facing I/O endpoints of a mode.  Nil fields
// fall back to the process streams.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Color  bool
}

// Build validates cfg and constructs the chat mode it describes.
func Build(cfg *config.Config, logger *util.Logger, streams Streams) (Mode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ChatMode{
		Dialer:    buildDialer(cfg),
		ServerURL: cfg.ServerURL(),
		Username:  cfg.Username,
		Timeout:   cfg.Timeout,
		Logger:    logger,
		Metrics:   metrics.New(),
		ShowStats: cfg.Stats,
		Color:     streams.Color && !cfg.NoColor,
		Stdin:     streams.Stdin,
		Stdout:    streams.Stdout,
		Stderr:    streams.Stderr,
	}, nil
}

// buildDialer creates the websocket dialer for cfg.
func buildDialer(cfg *config.Config) transport.Dialer {
	return &transport.WebSocketDialer{
		Timeout:   cfg.Timeout,
		ReadLimit: maxFrameSize,
	}
}
