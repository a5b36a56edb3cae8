package socketio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ncerr "sockchat/internal/errors"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "40", string(EncodeConnect(DefaultNamespace)))
	assert.Equal(t, "41", string(EncodeDisconnect("")))
	assert.Equal(t, "40/admin,", string(EncodeConnect("/admin")))

	frame, err := EncodeEvent(DefaultNamespace, "hello", map[string]string{"username": "alice"})
	require.NoError(t, err)
	assert.Equal(t, `42["hello",{"username":"alice"}]`, string(frame))

	frame, err = EncodeEvent(DefaultNamespace, "users:list")
	require.NoError(t, err)
	assert.Equal(t, `42["users:list"]`, string(frame))

	_, err = EncodeEvent(DefaultNamespace, "bad", make(chan int))
	assert.Error(t, err)
}

func TestDecodeOpen(t *testing.T) {
	info, err := DecodeOpen([]byte(`0{"sid":"abc","upgrades":[],"pingInterval":25000,"pingTimeout":20000,"maxPayload":1000000}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", info.SID)
	assert.Equal(t, 25000, info.PingInterval)
	assert.Equal(t, 20000, info.PingTimeout)
	assert.Equal(t, 1000000, info.MaxPayload)

	_, err = DecodeOpen([]byte(`40`))
	assert.ErrorIs(t, err, ncerr.ErrUnexpectedPacket)

	_, err = DecodeOpen([]byte(`0{not json`))
	assert.Error(t, err)
}

func TestDecodePacket(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		typ   byte
		nsp   string
		ackID int
		data  string
	}{
		{"connect ack", `0{"sid":"x"}`, SIOConnect, "/", -1, `{"sid":"x"}`},
		{"bare disconnect", `1`, SIODisconnect, "/", -1, ""},
		{"event", `2["welcome",{"username":"alice"}]`, SIOEvent, "/", -1, `["welcome",{"username":"alice"}]`},
		{"namespaced event", `2/chat,["x"]`, SIOEvent, "/chat", -1, `["x"]`},
		{"namespace only", `0/chat`, SIOConnect, "/chat", -1, ""},
		{"ack id", `212["x"]`, SIOEvent, "/", 12, `["x"]`},
		{"connect error", `4{"message":"nope"}`, SIOConnectError, "/", -1, `{"message":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodePacket([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.typ, p.Type)
			assert.Equal(t, tt.nsp, p.Namespace)
			assert.Equal(t, tt.ackID, p.AckID)
			assert.Equal(t, tt.data, string(p.Data))
		})
	}
}

func TestDecodePacket_Errors(t *testing.T) {
	for _, body := range []string{"", "9", `5-["x"]`, `2["x"`} {
		_, err := DecodePacket([]byte(body))
		assert.ErrorIs(t, err, ncerr.ErrUnexpectedPacket, "body %q", body)
	}
}

func TestPacketEvent(t *testing.T) {
	p, err := DecodePacket([]byte(`2["chat:public",{"user":"bob","text":"hi","at":1700000000000}]`))
	require.NoError(t, err)

	name, args, err := p.Event()
	require.NoError(t, err)
	assert.Equal(t, "chat:public", name)
	require.Len(t, args, 1)
	assert.JSONEq(t, `{"user":"bob","text":"hi","at":1700000000000}`, string(args[0]))

	p, err = DecodePacket([]byte(`2[]`))
	require.NoError(t, err)
	_, _, err = p.Event()
	assert.ErrorIs(t, err, ncerr.ErrUnexpectedPacket)

	p, err = DecodePacket([]byte(`2[42]`))
	require.NoError(t, err)
	_, _, err = p.Event()
	assert.Error(t, err)

	_, _, err = Packet{Type: SIOConnect, Data: json.RawMessage(`{}`)}.Event()
	assert.ErrorIs(t, err, ncerr.ErrUnexpectedPacket)
}
