// Package chat implements the client side of the chat session protocol:
// the hello/welcome handshake, interpretation of every inbound event,
// and the outbound command set.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	ncerr "sockchat/internal/errors"
	"sockchat/internal/metrics"
	"sockchat/internal/session"
	"sockchat/internal/socketio"
	"sockchat/internal/transport"
	"sockchat/util"
)

// Options configures a Controller.
type Options struct {
	Dialer           transport.Dialer
	HandshakeTimeout time.Duration
	Location         *time.Location // clock rendering (default time.Local)
	Logger           *util.Logger
	Metrics          *metrics.Collector
}

// Controller owns the connection lifecycle of one Session.
//
// Run is the only method that mutates the Session.  The Send* methods
// only emit and may be called concurrently with Run.
type Controller struct {
	sess    *session.Session
	notify  Notifier
	opts    Options
	logger  *util.Logger
	metrics *metrics.Collector

	mu   sync.Mutex
	sock Socket

	closeOnce sync.Once
	closeErr  error
}

// New creates a Controller for sess that reports to notify.
func New(sess *session.Session, notify Notifier, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = util.NewLogger(0)
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Controller{
		sess:    sess,
		notify:  notify,
		opts:    opts,
		logger:  opts.Logger.With("session", uuid.NewString()),
		metrics: opts.Metrics,
	}
}

// Session returns the session this controller drives.
func (c *Controller) Session() *session.Session { return c.sess }

// Connect dials serverURL and completes the transport handshake.  The
// error, if any, is a *errors.ConnectError and there is no retry.
func (c *Controller) Connect(ctx context.Context, serverURL string) error {
	if c.opts.Dialer == nil {
		return ncerr.Connect("dial", serverURL, ncerr.New("no dialer configured"))
	}
	c.logger.Verbose("connecting to %s as %q", serverURL, c.sess.Username())

	client, err := socketio.Dial(ctx, c.opts.Dialer, serverURL, socketio.Options{
		HandshakeTimeout: c.opts.HandshakeTimeout,
		Logger:           c.logger,
		Metrics:          c.metrics,
	})
	if err != nil {
		c.metrics.RecordError(err.Error())
		return err
	}
	c.logger.Debug("transport open (sid %s)", client.Open().SID)
	c.Attach(client)
	return nil
}

// Attach binds an already connected socket and moves the session to
// Connecting.
func (c *Controller) Attach(sock Socket) {
	c.mu.Lock()
	c.sock = sock
	c.mu.Unlock()
	c.sess.SetConnecting()
}

func (c *Controller) socket() Socket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock
}

// ── Outbound commands ────────────────────────────────────────────────

// SendHello identifies the operator to the server.
func (c *Controller) SendHello() error {
	return c.emit(EventHello, map[string]string{"username": c.sess.Username()})
}

// SendPublicMessage broadcasts text.  Nothing is rendered locally; the
// operator sees the line once the server relays it back.
func (c *Controller) SendPublicMessage(text string) error {
	return c.emit(EventPublic, map[string]string{"text": text})
}

// SendListUsersRequest asks for a roster refresh, which arrives later
// as a users:list event.
func (c *Controller) SendListUsersRequest() error {
	return c.emit(EventCommandList, struct{}{})
}

// SendQuitRequest tells the server the operator is leaving.
func (c *Controller) SendQuitRequest() error {
	return c.emit(EventCommandQuit, struct{}{})
}

func (c *Controller) emit(event string, payload interface{}) error {
	sock := c.socket()
	if sock == nil {
		return ncerr.Send(event, ncerr.ErrNotConnected)
	}
	if err := sock.Emit(event, payload); err != nil {
		c.metrics.RecordError(err.Error())
		return ncerr.Send(event, err)
	}
	c.metrics.CommandSent()
	c.logger.Debug("sent %s", event)
	return nil
}

// Disconnect releases the transport.  Only the first call does any
// work; later calls return the first result.
func (c *Controller) Disconnect() error {
	c.closeOnce.Do(func() {
		if sock := c.socket(); sock != nil {
			c.logger.Verbose("closing connection (welcomed: %t)", c.sess.EverConnected())
			c.closeErr = sock.Close()
		}
		c.sess.MarkDisconnected()
	})
	return c.closeErr
}

// ── Event pump ───────────────────────────────────────────────────────

// Run consumes inbound events in arrival order until the transport
// stream ends or ctx is cancelled.  A failed hello is returned since
// the session cannot proceed without it.
func (c *Controller) Run(ctx context.Context) error {
	sock := c.socket()
	if sock == nil {
		return ncerr.ErrNotConnected
	}
	events := sock.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-events:
			if !ok {
				return nil
			}
			c.metrics.EventReceived()
			if err := c.Handle(Decode(raw)); err != nil {
				return err
			}
		}
	}
}

// Handle applies one decoded event to the session and notifies the
// operator.
func (c *Controller) Handle(ev Event) error {
	switch e := ev.(type) {
	case Connected:
		c.notify.Handshaking()
		return c.SendHello()

	case Welcome:
		if !c.sess.MarkConnected(e.ConnectedUsers) {
			c.logger.Debug("welcome after disconnect ignored")
			return nil
		}
		c.logger.Verbose("welcomed as %q", e.Username)
		c.notify.Welcome(e.Username, c.sess.Roster())

	case PublicMessage:
		c.notify.Chat(FormatClock(e.SentAtMillis, c.opts.Location), e.Username, e.Text)

	case UserList:
		c.notify.Roster(c.sess.ReplaceRoster(e.Users))

	case UserJoined:
		c.notify.Joined(e.Username)

	case UserLeft:
		c.notify.Left(e.Username)

	case ServerError:
		c.metrics.ServerError()
		c.logger.Verbose("server error %s: %s", e.Code, e.Message)
		c.notify.ServerError(e.Code, e.Message)

	case Disconnected:
		c.sess.MarkDisconnected()
		c.logger.Verbose("disconnected: %s", e.Reason)
		c.notify.Disconnected(e.Reason)

	case Malformed:
		c.metrics.MalformedPayload()
		c.logger.Warn("%v", e.Err)
		c.notify.Unexpected(e.Name, e.Err)

	case Unknown:
		c.logger.Debug("ignoring event %q", e.Name)

	default:
		c.logger.Debug("unhandled event type %T", ev)
	}
	return nil
}
