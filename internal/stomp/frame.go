// Package stomp implements the client side of the STOMP 1.2 wire format
// used by the backend's notification broker. Only the frames the
// notification pipeline needs are covered: CONNECT/CONNECTED handshake,
// SUBSCRIBE, broker MESSAGE/ERROR, DISCONNECT and heartbeats.
package stomp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frame commands used by the client and broker.
const (
	CmdConnect     = "CONNECT"
	CmdConnected   = "CONNECTED"
	CmdSubscribe   = "SUBSCRIBE"
	CmdUnsubscribe = "UNSUBSCRIBE"
	CmdSend        = "SEND"
	CmdMessage     = "MESSAGE"
	CmdError       = "ERROR"
	CmdDisconnect  = "DISCONNECT"
	CmdReceipt     = "RECEIPT"
)

// Well-known header names.
const (
	HdrAcceptVersion = "accept-version"
	HdrVersion       = "version"
	HdrHost          = "host"
	HdrHeartBeat     = "heart-beat"
	HdrDestination   = "destination"
	HdrID            = "id"
	HdrSubscription  = "subscription"
	HdrMessageID     = "message-id"
	HdrContentType   = "content-type"
	HdrMessage       = "message"
)

// Frame is a single STOMP frame.
type Frame struct {
	Command string
	Headers map[string]string
	Body    []byte
}

// heartbeat is the single EOL a peer sends as a liveness probe.
var heartbeat = []byte("\n")

// Heartbeat returns the bytes of a heartbeat frame.
func Heartbeat() []byte {
	return heartbeat
}

// IsHeartbeat reports whether raw is a heartbeat rather than a real frame.
func IsHeartbeat(raw []byte) bool {
	trimmed := bytes.TrimRight(raw, "\r\n")
	return len(trimmed) == 0
}

// Marshal serialises a frame: command line, header lines, blank line, body,
// NUL terminator. Header names and values are escaped per STOMP 1.2.
func Marshal(f *Frame) []byte {
	var buf bytes.Buffer
	buf.WriteString(f.Command)
	buf.WriteByte('\n')

	escape := f.Command != CmdConnect && f.Command != CmdConnected
	for name, value := range f.Headers {
		if escape {
			name = escapeHeader(name)
			value = escapeHeader(value)
		}
		buf.WriteString(name)
		buf.WriteByte(':')
		buf.WriteString(value)
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.Write(f.Body)
	buf.WriteByte(0)
	return buf.Bytes()
}

// Parse decodes a raw frame. Heartbeats must be filtered out by the caller
// first; an empty input is an error here.
func Parse(raw []byte) (*Frame, error) {
	raw = bytes.TrimSuffix(raw, []byte{0})
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	headerEnd := bytes.Index(raw, []byte("\n\n"))
	sepLen := 2
	if headerEnd < 0 {
		headerEnd = bytes.Index(raw, []byte("\r\n\r\n"))
		sepLen = 4
	}
	if headerEnd < 0 {
		return nil, fmt.Errorf("malformed frame: missing header terminator")
	}

	head := raw[:headerEnd]
	body := raw[headerEnd+sepLen:]

	lines := strings.Split(strings.ReplaceAll(string(head), "\r\n", "\n"), "\n")
	command := strings.TrimSpace(lines[0])
	if command == "" {
		return nil, fmt.Errorf("malformed frame: empty command")
	}

	escaped := command != CmdConnect && command != CmdConnected
	headers := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return nil, fmt.Errorf("malformed header line %q", line)
		}
		name := line[:idx]
		value := line[idx+1:]
		if escaped {
			var err error
			if name, err = unescapeHeader(name); err != nil {
				return nil, err
			}
			if value, err = unescapeHeader(value); err != nil {
				return nil, err
			}
		}
		// Repeated headers: the first occurrence wins.
		if _, ok := headers[name]; !ok {
			headers[name] = value
		}
	}

	return &Frame{Command: command, Headers: headers, Body: body}, nil
}

// NewConnect builds the CONNECT frame opening a session. heartbeat is the
// interval offered in both directions; zero disables heartbeating.
func NewConnect(host string, heartbeatInterval time.Duration) *Frame {
	ms := heartbeatInterval.Milliseconds()
	return &Frame{
		Command: CmdConnect,
		Headers: map[string]string{
			HdrAcceptVersion: "1.1,1.2",
			HdrHost:          host,
			HdrHeartBeat:     fmt.Sprintf("%d,%d", ms, ms),
		},
	}
}

// NewSubscribe builds the SUBSCRIBE frame for a destination.
func NewSubscribe(id, destination string) *Frame {
	return &Frame{
		Command: CmdSubscribe,
		Headers: map[string]string{
			HdrID:          id,
			HdrDestination: destination,
			"ack":          "auto",
		},
	}
}

// NewDisconnect builds the DISCONNECT frame closing a session.
func NewDisconnect() *Frame {
	return &Frame{Command: CmdDisconnect, Headers: map[string]string{}}
}

// ParseHeartBeat decodes a heart-beat header ("sx,sy") into the peer's
// send and expected-receive intervals. A missing or malformed header
// disables heartbeating in both directions.
func ParseHeartBeat(header string) (send, recv time.Duration) {
	parts := strings.SplitN(header, ",", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	sx, err1 := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	sy, err2 := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err1 != nil || err2 != nil || sx < 0 || sy < 0 {
		return 0, 0
	}
	return time.Duration(sx) * time.Millisecond, time.Duration(sy) * time.Millisecond
}

func escapeHeader(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"\r", `\r`,
		"\n", `\n`,
		":", `\c`,
	)
	return r.Replace(s)
}

func unescapeHeader(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape in header %q", s)
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 'c':
			b.WriteByte(':')
		default:
			return "", fmt.Errorf("invalid escape %q in header %q", s[i], s)
		}
	}
	return b.String(), nil
}
