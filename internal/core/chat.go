package core

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"time"

	"sockchat/internal/chat"
	"sockchat/internal/console"
	ncerr "sockchat/internal/errors"
	"sockchat/internal/metrics"
	"sockchat/internal/session"
	"sockchat/internal/transport"
	"sockchat/util"
)

// ChatMode connects to a chat server, runs the event pump in the
// background and drives the interactive loop in the foreground.
type ChatMode struct {
	Dialer    transport.Dialer
	ServerURL string
	Username  string
	Timeout   time.Duration // connect + handshake (0 = none)
	Logger    *util.Logger
	Metrics   *metrics.Collector
	ShowStats bool
	Color     bool
	Location  *time.Location // clock rendering (default time.Local)

	// Stdin/Stdout/Stderr default to the process streams when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (m *ChatMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ChatMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *ChatMode) stderr() io.Writer {
	if m.Stderr != nil {
		return m.Stderr
	}
	return os.Stderr
}

// trackedCommander records whether the operator started leaving, which
// separates an operator exit from a lost connection.  The quit request
// counts since the server may hang up before the local disconnect.
type trackedCommander struct {
	*chat.Controller
	leaving atomic.Bool
}

func (t *trackedCommander) SendQuitRequest() error {
	t.leaving.Store(true)
	return t.Controller.SendQuitRequest()
}

func (t *trackedCommander) Disconnect() error {
	t.leaving.Store(true)
	return t.Controller.Disconnect()
}

// Run connects, chats until the operator quits or the connection ends,
// and releases the transport exactly once.
//
// It returns nil on /quit, end of input and interrupt; a
// *errors.ConnectError when the server cannot be reached; a
// *errors.SendError when an emission fails; and ErrConnectionLost when
// the server side ends the session.
func (m *ChatMode) Run(ctx context.Context) error {
	defer m.Dialer.Close()

	logger := m.Logger
	if logger == nil {
		logger = util.NewLogger(0)
	}
	ui := console.NewConsole(m.stdout(), m.stderr(), m.Color)
	sess := session.New(m.Username)
	ctrl := chat.New(sess, ui, chat.Options{
		Dialer:           m.Dialer,
		HandshakeTimeout: m.Timeout,
		Location:         m.Location,
		Logger:           logger,
		Metrics:          m.Metrics,
	})
	cmd := &trackedCommander{Controller: ctrl}

	ui.Connecting(m.ServerURL)
	if err := m.connect(ctx, ctrl); err != nil {
		return err
	}
	defer cmd.Disconnect() //nolint:errcheck
	defer m.printStats()

	ui.Instructions()

	loopCtx, cancelLoop := context.WithCancel(ctx)
	defer cancelLoop()

	var lost atomic.Bool
	pumpDone := make(chan error, 1)
	go func() {
		err := ctrl.Run(ctx)
		var se *ncerr.SendError
		switch {
		case cmd.leaving.Load():
			// A handshake still in flight when the operator quits
			// fails against the closed socket.
			if errors.As(err, &se) {
				err = nil
			}
		case err == nil:
			lost.Store(true)
		}
		cancelLoop()
		pumpDone <- err
	}()

	loopErr := console.Run(loopCtx, m.stdin(), cmd, logger)
	cmd.Disconnect() //nolint:errcheck
	pumpErr := <-pumpDone

	logger.Verbose("session over (state %s, welcomed %t)", sess.State(), sess.EverConnected())
	if m.Metrics != nil {
		logger.Debug("session metrics: %s", m.Metrics.JSON())
	}

	switch {
	case loopErr != nil:
		m.Metrics.RecordError(loopErr.Error())
		return loopErr
	case pumpErr != nil && !errors.Is(pumpErr, context.Canceled):
		return pumpErr
	case lost.Load():
		return ncerr.ErrConnectionLost
	}
	ui.Goodbye()
	return nil
}

func (m *ChatMode) connect(ctx context.Context, ctrl *chat.Controller) error {
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}
	return ctrl.Connect(ctx, m.ServerURL)
}

func (m *ChatMode) printStats() {
	if m.ShowStats {
		m.Metrics.WriteTable(m.stderr())
	}
}
