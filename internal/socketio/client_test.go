package socketio

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ncerr "sockchat/internal/errors"
	"sockchat/internal/metrics"
	"sockchat/internal/socketio/siotest"
	"sockchat/internal/transport"
)

func dial(t *testing.T, srv *siotest.Server) *Client {
	t.Helper()
	c, err := Dial(context.Background(), &transport.WebSocketDialer{Timeout: 2 * time.Second},
		srv.URL, Options{HandshakeTimeout: 2 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func next(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case ev, ok := <-c.Events():
		require.True(t, ok, "event stream closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func reason(t *testing.T, ev Event) string {
	t.Helper()
	require.Equal(t, EventDisconnect, ev.Name)
	var r string
	require.NoError(t, json.Unmarshal(ev.Payload(), &r))
	return r
}

func TestDial_ConnectEventFirst(t *testing.T) {
	srv := siotest.NewServer(t)
	c := dial(t, srv)
	srv.NextSession(t)

	ev := next(t, c)
	assert.Equal(t, EventConnect, ev.Name)
	assert.Nil(t, ev.Payload())
	assert.Equal(t, "eio-sid", c.Open().SID)
}

func TestClient_EmitAndReceive(t *testing.T) {
	srv := siotest.NewServer(t)
	c := dial(t, srv)
	sess := srv.NextSession(t)
	next(t, c) // connect

	require.NoError(t, c.Emit("hello", map[string]string{"username": "alice"}))
	frame, err := sess.Recv()
	require.NoError(t, err)
	assert.Equal(t, `42["hello",{"username":"alice"}]`, frame)

	require.NoError(t, sess.Emit("welcome", map[string]interface{}{
		"username": "alice", "connectedUsers": []string{"alice", "bob"},
	}))
	require.NoError(t, sess.Emit("users:list", map[string]interface{}{"users": []string{"alice"}}))

	ev := next(t, c)
	assert.Equal(t, "welcome", ev.Name)
	assert.JSONEq(t, `{"username":"alice","connectedUsers":["alice","bob"]}`, string(ev.Payload()))
	assert.Equal(t, "users:list", next(t, c).Name)
}

func TestClient_IgnoresOtherNamespaces(t *testing.T) {
	srv := siotest.NewServer(t)
	c := dial(t, srv)
	sess := srv.NextSession(t)
	next(t, c)

	require.NoError(t, sess.Send(`42/admin,["secret",{}]`))
	require.NoError(t, sess.Send(`42["visible",{}]`))
	assert.Equal(t, "visible", next(t, c).Name)
}

func TestClient_AnswersPing(t *testing.T) {
	m := metrics.New()
	srv := siotest.NewServer(t)
	c, err := Dial(context.Background(), &transport.WebSocketDialer{Timeout: 2 * time.Second},
		srv.URL, Options{Metrics: m})
	require.NoError(t, err)
	defer c.Close()
	sess := srv.NextSession(t)

	require.NoError(t, sess.Send("2"))
	frame, err := sess.Recv()
	require.NoError(t, err)
	assert.Equal(t, "3", frame)
	assert.NotEmpty(t, m.Snapshot().LastHeartbeat)
}

func TestClient_ServerDisconnect(t *testing.T) {
	srv := siotest.NewServer(t)
	c := dial(t, srv)
	sess := srv.NextSession(t)
	next(t, c)

	require.NoError(t, sess.Send("41"))
	assert.Equal(t, ReasonServerDisconnect, reason(t, next(t, c)))

	_, ok := <-c.Events()
	assert.False(t, ok, "stream should close after disconnect")
}

func TestClient_TransportClose(t *testing.T) {
	srv := siotest.NewServer(t)
	c := dial(t, srv)
	sess := srv.NextSession(t)
	next(t, c)

	sess.Close()
	r := reason(t, next(t, c))
	assert.Contains(t, []string{ReasonTransportClose, ReasonTransportError}, r)
}

func TestClient_PingTimeout(t *testing.T) {
	srv := siotest.NewServer(t, siotest.WithPing(50*time.Millisecond, 50*time.Millisecond))
	c := dial(t, srv)
	srv.NextSession(t)
	next(t, c)

	assert.Equal(t, ReasonPingTimeout, reason(t, next(t, c)))
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	m := metrics.New()
	srv := siotest.NewServer(t)
	c, err := Dial(context.Background(), &transport.WebSocketDialer{Timeout: 2 * time.Second},
		srv.URL, Options{Metrics: m})
	require.NoError(t, err)
	sess := srv.NextSession(t)
	next(t, c)
	assert.Equal(t, int64(1), m.ActiveConnections())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	frame, err := sess.Recv()
	require.NoError(t, err)
	assert.Equal(t, "41", frame)

	assert.Equal(t, ReasonClientDisconnect, reason(t, next(t, c)))
	assert.ErrorIs(t, c.Emit("chat:public", map[string]string{"text": "late"}), ncerr.ErrClosed)
	assert.Equal(t, int64(0), m.ActiveConnections())
}

func TestDial_NamespaceRefused(t *testing.T) {
	srv := siotest.NewServer(t, siotest.WithConnectError("not authorized"))

	_, err := Dial(context.Background(), &transport.WebSocketDialer{Timeout: 2 * time.Second},
		srv.URL, Options{HandshakeTimeout: 2 * time.Second})
	require.Error(t, err)

	var ce *ncerr.ConnectError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "namespace", ce.Stage)
	assert.ErrorIs(t, err, ncerr.ErrHandshake)
	assert.Contains(t, err.Error(), "not authorized")
}

func TestDial_Unreachable(t *testing.T) {
	_, err := Dial(context.Background(), &transport.WebSocketDialer{Timeout: time.Second},
		"http://127.0.0.1:1", Options{})

	var ce *ncerr.ConnectError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "dial", ce.Stage)
	assert.True(t, ncerr.IsFatal(err))
}

func TestDial_BadURL(t *testing.T) {
	_, err := Dial(context.Background(), &transport.WebSocketDialer{}, "ftp://host:21", Options{})

	var ce *ncerr.ConnectError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "dial", ce.Stage)
}
