package stomp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalParseRoundTrip(t *testing.T) {
	f := &Frame{
		Command: CmdMessage,
		Headers: map[string]string{
			HdrDestination:  "/topic/status-agentes",
			HdrSubscription: "sub-0",
			HdrMessageID:    "msg-1",
		},
		Body: []byte(`{"agentId":7}`),
	}

	parsed, err := Parse(Marshal(f))
	require.NoError(t, err)

	assert.Equal(t, CmdMessage, parsed.Command)
	assert.Equal(t, "/topic/status-agentes", parsed.Headers[HdrDestination])
	assert.Equal(t, "sub-0", parsed.Headers[HdrSubscription])
	assert.Equal(t, []byte(`{"agentId":7}`), parsed.Body)
}

func TestParseAcceptsCRLFSeparators(t *testing.T) {
	raw := []byte("CONNECTED\r\nversion:1.2\r\nheart-beat:4000,4000\r\n\r\n\x00")

	f, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, CmdConnected, f.Command)
	assert.Equal(t, "1.2", f.Headers[HdrVersion])
	assert.Equal(t, "4000,4000", f.Headers[HdrHeartBeat])
}

func TestParseRepeatedHeaderFirstWins(t *testing.T) {
	raw := []byte("MESSAGE\ndestination:/topic/a\ndestination:/topic/b\n\nbody\x00")

	f, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/topic/a", f.Headers[HdrDestination])
}

func TestParseRejectsMalformedFrames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "no header terminator", raw: "MESSAGE\ndestination:/topic/a"},
		{name: "header without colon", raw: "MESSAGE\nnocolon\n\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestHeaderEscaping(t *testing.T) {
	f := &Frame{
		Command: CmdMessage,
		Headers: map[string]string{"message": "broken:pipe\nretry"},
	}

	parsed, err := Parse(Marshal(f))
	require.NoError(t, err)

	assert.Equal(t, "broken:pipe\nretry", parsed.Headers["message"])
}

func TestConnectFramesAreNotEscaped(t *testing.T) {
	f := NewConnect("localhost", 4*time.Second)
	raw := string(Marshal(f))

	assert.Contains(t, raw, "accept-version:1.1,1.2")
	assert.Contains(t, raw, "heart-beat:4000,4000")
	assert.NotContains(t, raw, `\c`)
}

func TestIsHeartbeat(t *testing.T) {
	assert.True(t, IsHeartbeat([]byte("\n")))
	assert.True(t, IsHeartbeat([]byte("\r\n")))
	assert.True(t, IsHeartbeat(nil))
	assert.False(t, IsHeartbeat([]byte("MESSAGE\n\n\x00")))
}

func TestParseHeartBeat(t *testing.T) {
	tests := []struct {
		name   string
		header string
		send   time.Duration
		recv   time.Duration
	}{
		{name: "both directions", header: "4000,4000", send: 4 * time.Second, recv: 4 * time.Second},
		{name: "asymmetric", header: "0,10000", send: 0, recv: 10 * time.Second},
		{name: "missing", header: "", send: 0, recv: 0},
		{name: "garbage", header: "a,b", send: 0, recv: 0},
		{name: "negative", header: "-1,100", send: 0, recv: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send, recv := ParseHeartBeat(tt.header)
			assert.Equal(t, tt.send, send)
			assert.Equal(t, tt.recv, recv)
		})
	}
}

func TestNewSubscribe(t *testing.T) {
	f := NewSubscribe("sub-0", "/topic/status-agentes")

	assert.Equal(t, CmdSubscribe, f.Command)
	assert.Equal(t, "sub-0", f.Headers[HdrID])
	assert.Equal(t, "/topic/status-agentes", f.Headers[HdrDestination])
	assert.Equal(t, "auto", f.Headers["ack"])
}
