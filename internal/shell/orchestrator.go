// Package shell ties the session to the notification pipeline: login opens
// the socket, logout closes it, and inbound events are forwarded into the
// notification store for privileged users.
package shell

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/notify"
)

// connectTimeout bounds a single connect attempt.
const connectTimeout = 15 * time.Second

// defaultRetryDelay is the wait before the single bounded retry after a
// failed connect.
const defaultRetryDelay = 5 * time.Second

// Authenticator is the slice of the auth service the shell needs.
type Authenticator interface {
	IsAuthenticated() bool
	CurrentUser() *model.User
	Subscribe() (<-chan *model.User, func())
}

// Socket is the slice of the transport the shell drives. Both calls are
// idempotent, so the shell never tracks connection state itself.
type Socket interface {
	Connect(ctx context.Context) error
	Disconnect()
	SubscribeNotifications() (<-chan model.AgentStatusNotification, func())
}

// Orchestrator owns all connect/disconnect decisions for the process-wide
// socket, driven by current-user transitions.
type Orchestrator struct {
	auth          Authenticator
	socket        Socket
	notifications *notify.Store
	retryDelay    time.Duration
	log           zerolog.Logger

	mu      sync.Mutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

// New creates the orchestrator. retryDelay <= 0 falls back to the default.
func New(auth Authenticator, socket Socket, notifications *notify.Store, retryDelay time.Duration, log zerolog.Logger) *Orchestrator {
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	return &Orchestrator{
		auth:          auth,
		socket:        socket,
		notifications: notifications,
		retryDelay:    retryDelay,
		log:           log,
	}
}

// Start begins watching the session. The current-user stream replays its
// latest value, so an already-authenticated startup connects immediately.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started {
		return
	}
	o.started = true
	o.stopCh = make(chan struct{})

	o.wg.Add(1)
	go o.run(o.stopCh)
}

// Stop unsubscribes everything and disconnects the transport.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return
	}
	o.started = false
	close(o.stopCh)
	o.mu.Unlock()

	o.wg.Wait()
	o.socket.Disconnect()
}

func (o *Orchestrator) run(stopCh chan struct{}) {
	defer o.wg.Done()

	users, cancelUsers := o.auth.Subscribe()
	defer cancelUsers()

	events, cancelEvents := o.socket.SubscribeNotifications()
	defer cancelEvents()

	// retryCh is armed once after a failed connect; nil otherwise.
	var retryCh <-chan time.Time

	for {
		select {
		case <-stopCh:
			return

		case user, ok := <-users:
			if !ok {
				return
			}
			if user != nil {
				retryCh = o.connect()
			} else {
				retryCh = nil
				o.socket.Disconnect()
			}

		case <-retryCh:
			retryCh = nil
			// The session may have ended while the retry was pending.
			if !o.auth.IsAuthenticated() {
				o.log.Debug().Msg("skipping socket retry, no longer authenticated")
				continue
			}
			o.connectOnce()

		case event, ok := <-events:
			if !ok {
				return
			}
			// Status events only concern administrators; agents do not
			// accumulate other agents' punches.
			if o.auth.CurrentUser().IsAdministrator() {
				o.notifications.Add(event)
			}
		}
	}
}

// connect attempts the connection and, on failure, arms the single retry.
func (o *Orchestrator) connect() <-chan time.Time {
	if err := o.connectOnce(); err != nil {
		o.log.Warn().Err(err).Dur("retry_in", o.retryDelay).Msg("socket connect failed, scheduling retry")
		return time.After(o.retryDelay)
	}
	return nil
}

func (o *Orchestrator) connectOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return o.socket.Connect(ctx)
}
