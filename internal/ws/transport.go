// Package ws manages the STOMP-over-WebSocket connection that delivers
// real-time agent status notifications. The process owns a single
// Transport; connect/disconnect calls are idempotent so the owner can
// drive them from session transitions without tracking socket state.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/stomp"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	defaultReconnectDelay   = 5 * time.Second
	defaultHeartbeat        = 4 * time.Second
	writeWait               = 10 * time.Second
	maxMessageSize          = 512 * 1024 // 512 KB

	// subscriptionID labels the single topic subscription of a session.
	subscriptionID = "sub-0"
)

var errConnectAborted = errors.New("connect aborted: transport disconnected")

// Config tunes the transport. Zero durations fall back to defaults.
type Config struct {
	// URL is the websocket endpoint of the broker.
	URL string
	// Topic is the STOMP destination to subscribe to once connected.
	Topic string
	// ReconnectDelay is the fixed wait between reconnect attempts after an
	// unexpected drop.
	ReconnectDelay time.Duration
	// Heartbeat is the interval offered for heartbeats in both directions.
	Heartbeat time.Duration
	// HandshakeTimeout bounds the websocket dial plus the STOMP handshake.
	HandshakeTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = defaultReconnectDelay
	}
	if c.Heartbeat <= 0 {
		c.Heartbeat = defaultHeartbeat
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}
	return c
}

// Transport maintains the notification socket and publishes two streams:
// connection state (with replay) and inbound notifications (without).
type Transport struct {
	cfg Config
	log zerolog.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	stopCh  chan struct{}
	waiters []chan error
	wg      sync.WaitGroup

	states *stateStream
	notifs *notifStream
}

// NewTransport creates a disconnected transport.
func NewTransport(cfg Config, log zerolog.Logger) *Transport {
	return &Transport{
		cfg:    cfg.withDefaults(),
		log:    log,
		states: newStateStream(),
		notifs: newNotifStream(),
	}
}

// State returns the current connection state.
func (t *Transport) State() ConnectionState {
	return t.states.Current()
}

// IsConnected reports whether the transport is currently connected.
func (t *Transport) IsConnected() bool {
	return t.State() == StateConnected
}

// SubscribeState returns a stream of connection-state transitions; the
// current state is replayed to the new subscriber immediately.
func (t *Transport) SubscribeState() (<-chan ConnectionState, func()) {
	return t.states.Subscribe()
}

// SubscribeNotifications returns a stream of inbound notifications.
// Events received before subscribing are not replayed.
func (t *Transport) SubscribeNotifications() (<-chan model.AgentStatusNotification, func()) {
	return t.notifs.Subscribe()
}

// Connect establishes the socket and the STOMP session, then subscribes to
// the configured topic. It is idempotent: when already connected it returns
// immediately, and when a connect is in flight the call attaches to that
// attempt instead of opening a second socket.
func (t *Transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	for {
		switch t.states.Current() {
		case StateConnected:
			t.mu.Unlock()
			return nil
		case StateConnecting:
			ch := make(chan error, 1)
			t.waiters = append(t.waiters, ch)
			t.mu.Unlock()
			select {
			case err := <-ch:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		// An unexpected drop leaves a reconnect loop pending on the old stop
		// channel. It must be cancelled before this attempt opens a socket,
		// or both would dial and the orphaned pumps could never be stopped.
		if old := t.stopCh; old != nil {
			t.stopCh = nil
			close(old)
			t.mu.Unlock()
			t.wg.Wait()
			t.mu.Lock()
			continue
		}
		break
	}

	t.stopCh = make(chan struct{})
	stopCh := t.stopCh
	t.states.Publish(StateConnecting)
	t.mu.Unlock()

	conn, readTimeout, err := t.dial(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if stopped(stopCh) {
		if conn != nil {
			conn.Close()
		}
		t.states.Publish(StateDisconnected)
		t.notifyWaiters(errConnectAborted)
		return errConnectAborted
	}
	if err != nil {
		t.states.Publish(StateError)
		t.notifyWaiters(err)
		return err
	}

	t.conn = conn
	t.states.Publish(StateConnected)
	t.notifyWaiters(nil)
	t.startPumps(conn, stopCh, readTimeout)
	t.log.Info().Str("url", t.cfg.URL).Str("topic", t.cfg.Topic).Msg("socket connected")
	return nil
}

// Disconnect tears the socket down and returns the transport to the
// disconnected state. Safe to call at any time, including when already
// disconnected.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	state := t.states.Current()
	if state == StateDisconnected || state == StateDisconnecting {
		t.mu.Unlock()
		return
	}
	t.states.Publish(StateDisconnecting)
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
	conn := t.conn
	t.conn = nil
	t.notifyWaiters(errConnectAborted)
	t.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	t.wg.Wait()

	t.states.Publish(StateDisconnected)
	t.log.Info().Msg("socket disconnected")
}

// dial opens the websocket and completes the STOMP handshake and topic
// subscription. Returns the negotiated read-side heartbeat timeout
// (0 disables read deadlines).
func (t *Transport) dial(ctx context.Context) (*websocket.Conn, time.Duration, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: t.cfg.HandshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, t.cfg.URL, nil)
	if err != nil {
		if resp != nil {
			return nil, 0, fmt.Errorf("websocket dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, 0, fmt.Errorf("websocket dial failed: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	conn.SetReadLimit(maxMessageSize)

	host := t.cfg.URL
	if u, perr := url.Parse(t.cfg.URL); perr == nil && u.Host != "" {
		host = u.Host
	}

	connect := stomp.NewConnect(host, t.cfg.Heartbeat)
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, stomp.Marshal(connect)); err != nil {
		conn.Close()
		return nil, 0, fmt.Errorf("sending CONNECT: %w", err)
	}

	// Wait for CONNECTED (or ERROR) from the broker.
	conn.SetReadDeadline(time.Now().Add(t.cfg.HandshakeTimeout))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return nil, 0, fmt.Errorf("awaiting CONNECTED: %w", err)
		}
		if stomp.IsHeartbeat(raw) {
			continue
		}
		frame, err := stomp.Parse(raw)
		if err != nil {
			conn.Close()
			return nil, 0, fmt.Errorf("parsing handshake frame: %w", err)
		}

		switch frame.Command {
		case stomp.CmdConnected:
			readTimeout := t.negotiateHeartbeat(frame.Headers[stomp.HdrHeartBeat])

			sub := stomp.NewSubscribe(subscriptionID, t.cfg.Topic)
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, stomp.Marshal(sub)); err != nil {
				conn.Close()
				return nil, 0, fmt.Errorf("sending SUBSCRIBE: %w", err)
			}

			conn.SetReadDeadline(time.Time{})
			return conn, readTimeout, nil

		case stomp.CmdError:
			msg := frame.Headers[stomp.HdrMessage]
			conn.Close()
			return nil, 0, fmt.Errorf("broker refused connection: %s", msg)

		default:
			// Anything else before CONNECTED is out of spec; keep waiting
			// until the handshake deadline fires.
			t.log.Debug().Str("command", frame.Command).Msg("unexpected frame during handshake")
		}
	}
}

// negotiateHeartbeat derives the read-side liveness timeout from the
// broker's heart-beat header. The broker's send interval (first field)
// bounds how often we must hear from it; three missed beats mean dead.
func (t *Transport) negotiateHeartbeat(header string) time.Duration {
	brokerSend, _ := stomp.ParseHeartBeat(header)
	if brokerSend <= 0 {
		return 0
	}
	interval := brokerSend
	if t.cfg.Heartbeat > interval {
		interval = t.cfg.Heartbeat
	}
	return 3 * interval
}

func (t *Transport) startPumps(conn *websocket.Conn, stopCh chan struct{}, readTimeout time.Duration) {
	t.wg.Add(2)
	go t.readPump(conn, stopCh, readTimeout)
	go t.writePump(conn, stopCh)
}

// readPump consumes frames until the socket drops or Disconnect is called.
// A malformed frame is logged and dropped; it never terminates the stream.
func (t *Transport) readPump(conn *websocket.Conn, stopCh chan struct{}, readTimeout time.Duration) {
	defer t.wg.Done()

	for {
		if readTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(readTimeout))
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if stopped(stopCh) {
				return
			}
			t.log.Warn().Err(err).Msg("socket read failed, scheduling reconnect")
			t.handleDrop(conn, stopCh)
			return
		}

		if stomp.IsHeartbeat(raw) {
			continue
		}

		frame, err := stomp.Parse(raw)
		if err != nil {
			t.log.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}

		switch frame.Command {
		case stomp.CmdMessage:
			t.handleMessage(frame)
		case stomp.CmdError:
			t.log.Warn().Str("message", frame.Headers[stomp.HdrMessage]).Msg("broker error frame")
		default:
			t.log.Debug().Str("command", frame.Command).Msg("ignoring frame")
		}
	}
}

// handleMessage decodes a MESSAGE frame defensively and publishes it.
// Decode failures are logged and dropped so one bad payload cannot break
// the stream.
func (t *Transport) handleMessage(frame *stomp.Frame) {
	if sub := frame.Headers[stomp.HdrSubscription]; sub != "" && sub != subscriptionID {
		return
	}

	var notif model.AgentStatusNotification
	if err := json.Unmarshal(frame.Body, &notif); err != nil {
		t.log.Warn().Err(err).Str("body", string(frame.Body)).Msg("dropping undecodable notification")
		return
	}

	t.notifs.Publish(notif)
}

// writePump emits outbound heartbeats and, on teardown, the DISCONNECT
// frame. It is the only goroutine writing to the socket after the
// handshake, which keeps writes serialised.
func (t *Transport) writePump(conn *websocket.Conn, stopCh chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.cfg.Heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.TextMessage, stomp.Marshal(stomp.NewDisconnect()))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, stomp.Heartbeat()); err != nil {
				// The read pump observes the same failure and owns the
				// reconnect; just stop writing.
				return
			}
		}
	}
}

// handleDrop reacts to an unexpected socket loss: publish the error state
// and start the fixed-delay reconnect loop.
func (t *Transport) handleDrop(conn *websocket.Conn, stopCh chan struct{}) {
	conn.Close()

	t.mu.Lock()
	if t.conn == conn {
		t.conn = nil
	}
	t.states.Publish(StateError)
	t.mu.Unlock()

	t.wg.Add(1)
	go t.reconnectLoop(stopCh)
}

// reconnectLoop retries the connection every ReconnectDelay until it
// succeeds or Disconnect is called.
func (t *Transport) reconnectLoop(stopCh chan struct{}) {
	defer t.wg.Done()

	for {
		select {
		case <-stopCh:
			return
		case <-time.After(t.cfg.ReconnectDelay):
		}

		t.mu.Lock()
		if stopped(stopCh) {
			t.mu.Unlock()
			return
		}
		t.states.Publish(StateConnecting)
		t.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 2*t.cfg.HandshakeTimeout)
		conn, readTimeout, err := t.dial(ctx)
		cancel()

		t.mu.Lock()
		if stopped(stopCh) {
			t.mu.Unlock()
			if conn != nil {
				conn.Close()
			}
			return
		}
		if err != nil {
			t.states.Publish(StateError)
			t.mu.Unlock()
			t.log.Warn().Err(err).Dur("retry_in", t.cfg.ReconnectDelay).Msg("reconnect failed")
			continue
		}

		t.conn = conn
		t.states.Publish(StateConnected)
		t.notifyWaiters(nil)
		t.startPumps(conn, stopCh, readTimeout)
		t.mu.Unlock()
		t.log.Info().Msg("socket reconnected")
		return
	}
}

// notifyWaiters resolves every caller attached to the in-flight connect.
// Callers must hold t.mu.
func (t *Transport) notifyWaiters(err error) {
	for _, ch := range t.waiters {
		select {
		case ch <- err:
		default:
		}
	}
	t.waiters = nil
}

func stopped(stopCh chan struct{}) bool {
	select {
	case <-stopCh:
		return true
	default:
		return false
	}
}
