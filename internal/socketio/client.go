package socketio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	ncerr "sockchat/internal/errors"
	"sockchat/internal/metrics"
	"sockchat/internal/transport"
	"sockchat/util"
)

// Lifecycle events synthesised by the client and delivered on the same
// channel as server events, so consumers see one ordered stream.
const (
	EventConnect    = "connect"
	EventDisconnect = "disconnect"
)

// Disconnect reasons, matching the strings Socket.IO clients report.
const (
	ReasonClientDisconnect = "io client disconnect"
	ReasonServerDisconnect = "io server disconnect"
	ReasonTransportClose   = "transport close"
	ReasonTransportError   = "transport error"
	ReasonPingTimeout      = "ping timeout"
)

const (
	defaultHandshakeTimeout = 20 * time.Second
	defaultEventBuffer      = 64
)

// Event is one inbound named event with its raw JSON arguments.
type Event struct {
	Name string
	Args []json.RawMessage
}

// Payload returns the first argument, or nil when the event had none.
func (e Event) Payload() json.RawMessage {
	if len(e.Args) == 0 {
		return nil
	}
	return e.Args[0]
}

// Options tune a Client.
type Options struct {
	HandshakeTimeout time.Duration
	EventBuffer      int
	Logger           *util.Logger
	Metrics          *metrics.Collector
}

// Client is a connected Socket.IO session on the default namespace.
//
// Inbound frames are read by one goroutine and delivered in arrival
// order on Events().  Outbound frames are written by one goroutine fed
// through a channel, so callers may Emit from any goroutine.
type Client struct {
	conn    transport.Conn
	open    OpenInfo
	logger  *util.Logger
	metrics *metrics.Collector

	events chan Event
	send   chan outbound
	done   chan struct{}

	closing  atomic.Bool
	doneOnce sync.Once
	wg       sync.WaitGroup
}

type outbound struct {
	data []byte
	errc chan error
}

// Dial connects to a Socket.IO server at serverURL (http[s]://host:port),
// completes the Engine.IO open and namespace connect handshakes, and
// starts the read and write loops.  Every failure is a *ConnectError.
//
// On success the first value on Events() is the "connect" event.
func Dial(ctx context.Context, dialer transport.Dialer, serverURL string, opts Options) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = util.NewLogger(0)
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = defaultHandshakeTimeout
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = defaultEventBuffer
	}

	socketURL, err := util.SocketURL(serverURL)
	if err != nil {
		return nil, ncerr.Connect("dial", serverURL, err)
	}

	opts.Logger.Debug("dialing %s", socketURL)
	conn, err := dialer.Dial(ctx, socketURL)
	if err != nil {
		return nil, ncerr.Connect("dial", serverURL, err)
	}

	c := &Client{
		conn:    conn,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		events:  make(chan Event, opts.EventBuffer),
		send:    make(chan outbound),
		done:    make(chan struct{}),
	}

	if err := c.handshake(opts.HandshakeTimeout); err != nil {
		conn.Close()
		return nil, ncerr.Connect(stageOf(err), serverURL, err)
	}

	c.metrics.ConnectionOpened()
	c.events <- Event{Name: EventConnect}

	c.wg.Add(2)
	go c.readLoop()
	go c.writeLoop()
	return c, nil
}

type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func stageOf(err error) string {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage
	}
	return "open"
}

// handshake reads the Engine.IO open packet, joins the default
// namespace and waits for the server's acknowledgement.  It runs before
// the loops start, so it reads and writes the connection directly.
func (c *Client) handshake(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return &stageError{"open", err}
	}

	frame, err := c.conn.ReadMessage()
	if err != nil {
		return &stageError{"open", err}
	}
	c.metrics.BytesReceived(int64(len(frame)))

	c.open, err = DecodeOpen(frame)
	if err != nil {
		return &stageError{"open", err}
	}
	c.logger.Debug("engine.io open: sid=%s pingInterval=%dms pingTimeout=%dms",
		c.open.SID, c.open.PingInterval, c.open.PingTimeout)

	connect := EncodeConnect(DefaultNamespace)
	if err := c.conn.WriteMessage(connect); err != nil {
		return &stageError{"namespace", err}
	}
	c.metrics.BytesSent(int64(len(connect)))

	for {
		frame, err := c.conn.ReadMessage()
		if err != nil {
			return &stageError{"namespace", err}
		}
		c.metrics.BytesReceived(int64(len(frame)))

		if len(frame) == 0 {
			continue
		}
		switch frame[0] {
		case EIOPing:
			if err := c.conn.WriteMessage([]byte{EIOPong}); err != nil {
				return &stageError{"namespace", err}
			}
			continue
		case EIOMessage:
		default:
			continue
		}

		p, err := DecodePacket(frame[1:])
		if err != nil {
			return &stageError{"namespace", err}
		}
		switch p.Type {
		case SIOConnect:
			return c.conn.SetReadDeadline(time.Time{})
		case SIOConnectError:
			return &stageError{"namespace", fmt.Errorf("%w: %s", ncerr.ErrHandshake, connectErrorMessage(p.Data))}
		}
	}
}

func connectErrorMessage(data json.RawMessage) string {
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		return body.Message
	}
	if len(data) > 0 {
		return string(data)
	}
	return "namespace refused"
}

// Open returns the Engine.IO open packet sent by the server.
func (c *Client) Open() OpenInfo { return c.open }

// Events returns the ordered stream of inbound events.  The channel is
// closed after the "disconnect" event.
func (c *Client) Events() <-chan Event { return c.events }

// Emit sends a named event with one JSON payload argument and waits
// until the frame has been written.
func (c *Client) Emit(name string, payload interface{}) error {
	frame, err := EncodeEvent(DefaultNamespace, name, payload)
	if err != nil {
		return err
	}
	return c.write(frame)
}

// Close leaves the namespace, closes the transport and waits for both
// loops to exit.  It is safe to call more than once.
func (c *Client) Close() error {
	if c.closing.CompareAndSwap(false, true) {
		if err := c.write(EncodeDisconnect(DefaultNamespace)); err != nil {
			c.logger.Debug("send namespace disconnect: %v", err)
		}
	}
	c.teardown()
	c.wg.Wait()
	return nil
}

// teardown stops the writer and releases the connection exactly once.
func (c *Client) teardown() {
	c.doneOnce.Do(func() {
		close(c.done)
		c.conn.Close()
		c.metrics.ConnectionClosed()
	})
}

func (c *Client) write(frame []byte) error {
	ob := outbound{data: frame, errc: make(chan error, 1)}
	select {
	case c.send <- ob:
	case <-c.done:
		return ncerr.ErrClosed
	}
	select {
	case err := <-ob.errc:
		return err
	case <-c.done:
		return ncerr.ErrClosed
	}
}

func (c *Client) writeLoop() {
	defer c.wg.Done()
	for {
		select {
		case ob := <-c.send:
			err := c.conn.WriteMessage(ob.data)
			if err == nil {
				c.metrics.BytesSent(int64(len(ob.data)))
			}
			ob.errc <- err
		case <-c.done:
			return
		}
	}
}

func (c *Client) readLoop() {
	defer c.wg.Done()

	reason := c.read()
	c.logger.Verbose("socket.io session ended: %s", reason)

	reasonJSON, _ := json.Marshal(reason)
	c.deliver(Event{Name: EventDisconnect, Args: []json.RawMessage{reasonJSON}})
	close(c.events)
	c.teardown()
}

// read processes frames until the session ends and returns the
// disconnect reason.
func (c *Client) read() string {
	for {
		c.armDeadline()
		frame, err := c.conn.ReadMessage()
		if err != nil {
			return c.classify(err)
		}
		c.metrics.BytesReceived(int64(len(frame)))
		if len(frame) == 0 {
			continue
		}

		switch frame[0] {
		case EIOPing:
			c.metrics.RecordHeartbeat()
			if err := c.write([]byte{EIOPong}); err != nil {
				c.logger.Debug("send pong: %v", err)
			}
		case EIOClose:
			return ReasonTransportClose
		case EIOMessage:
			if done := c.handleMessage(frame[1:]); done != "" {
				return done
			}
		case EIONoop, EIOPong:
		default:
			c.logger.Debug("ignoring engine.io packet %q", frame[0])
		}
	}
}

func (c *Client) handleMessage(body []byte) string {
	p, err := DecodePacket(body)
	if err != nil {
		c.logger.Warn("drop socket.io packet: %v", err)
		return ""
	}
	if p.Namespace != DefaultNamespace {
		c.logger.Debug("ignoring packet for namespace %s", p.Namespace)
		return ""
	}

	switch p.Type {
	case SIOEvent:
		name, args, err := p.Event()
		if err != nil {
			c.logger.Warn("drop socket.io event: %v", err)
			return ""
		}
		c.deliver(Event{Name: name, Args: args})
	case SIODisconnect:
		return ReasonServerDisconnect
	case SIOConnectError:
		c.logger.Warn("namespace error: %s", connectErrorMessage(p.Data))
		return ReasonServerDisconnect
	default:
		c.logger.Debug("ignoring socket.io packet type %q", p.Type)
	}
	return ""
}

// deliver hands ev to the consumer.  Once Close has been called a
// consumer that stopped reading must not block the reader forever.
func (c *Client) deliver(ev Event) {
	select {
	case c.events <- ev:
		return
	default:
	}
	select {
	case c.events <- ev:
	case <-c.done:
		c.logger.Debug("dropped %q event after close", ev.Name)
	}
}

func (c *Client) armDeadline() {
	if c.open.PingInterval <= 0 {
		return
	}
	wait := time.Duration(c.open.PingInterval+c.open.PingTimeout) * time.Millisecond
	c.conn.SetReadDeadline(time.Now().Add(wait)) //nolint:errcheck
}

func (c *Client) classify(err error) string {
	if c.closing.Load() {
		return ReasonClientDisconnect
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ReasonPingTimeout
	}
	if transport.IsNormalClose(err) || ncerr.IsClosed(err) {
		return ReasonTransportClose
	}
	c.logger.Verbose("read: %v", err)
	return ReasonTransportError
}
