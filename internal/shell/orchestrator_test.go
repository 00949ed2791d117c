package shell

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/notify"
)

// fakeAuth implements Authenticator with controllable session state.
type fakeAuth struct {
	mu     sync.Mutex
	user   *model.User
	userCh chan *model.User
	authed bool
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{userCh: make(chan *model.User, 8)}
}

func (f *fakeAuth) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed
}

func (f *fakeAuth) CurrentUser() *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeAuth) Subscribe() (<-chan *model.User, func()) {
	return f.userCh, func() {}
}

func (f *fakeAuth) publish(u *model.User) {
	f.mu.Lock()
	f.user = u
	f.authed = u != nil
	f.mu.Unlock()
	f.userCh <- u
}

// fakeSocket implements Socket and records calls.
type fakeSocket struct {
	mu          sync.Mutex
	connects    int
	disconnects int
	connectErrs []error
	events      chan model.AgentStatusNotification
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{events: make(chan model.AgentStatusNotification, 8)}
}

func (f *fakeSocket) Connect(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if len(f.connectErrs) > 0 {
		err := f.connectErrs[0]
		f.connectErrs = f.connectErrs[1:]
		return err
	}
	return nil
}

func (f *fakeSocket) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
}

func (f *fakeSocket) SubscribeNotifications() (<-chan model.AgentStatusNotification, func()) {
	return f.events, func() {}
}

func (f *fakeSocket) counts() (connects, disconnects int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connects, f.disconnects
}

func admin() *model.User {
	return &model.User{ID: 1, Name: "Ana", Profile: model.Profile{Name: model.ProfileAdministrator}}
}

func agent() *model.User {
	return &model.User{ID: 2, Name: "Bruno", Profile: model.Profile{Name: model.ProfileAgent}}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestLoginConnectsLogoutDisconnects(t *testing.T) {
	auth := newFakeAuth()
	socket := newFakeSocket()
	notifications := notify.NewStore(nil, 10, zerolog.Nop())

	o := New(auth, socket, notifications, 10*time.Millisecond, zerolog.Nop())
	o.Start()
	defer o.Stop()

	auth.publish(admin())
	waitFor(t, func() bool {
		connects, _ := socket.counts()
		return connects == 1
	})

	auth.publish(nil)
	waitFor(t, func() bool {
		_, disconnects := socket.counts()
		return disconnects >= 1
	})
}

func TestFailedConnectRetriesOnceWhileAuthenticated(t *testing.T) {
	auth := newFakeAuth()
	socket := newFakeSocket()
	socket.connectErrs = []error{errors.New("broker down")}
	notifications := notify.NewStore(nil, 10, zerolog.Nop())

	o := New(auth, socket, notifications, 10*time.Millisecond, zerolog.Nop())
	o.Start()
	defer o.Stop()

	auth.publish(admin())
	waitFor(t, func() bool {
		connects, _ := socket.counts()
		return connects == 2
	})

	// The retry is bounded: no third attempt follows.
	time.Sleep(50 * time.Millisecond)
	connects, _ := socket.counts()
	assert.Equal(t, 2, connects)
}

func TestRetryIsSkippedAfterLogout(t *testing.T) {
	auth := newFakeAuth()
	socket := newFakeSocket()
	socket.connectErrs = []error{errors.New("broker down")}
	notifications := notify.NewStore(nil, 10, zerolog.Nop())

	o := New(auth, socket, notifications, 50*time.Millisecond, zerolog.Nop())
	o.Start()
	defer o.Stop()

	auth.publish(admin())
	waitFor(t, func() bool {
		connects, _ := socket.counts()
		return connects == 1
	})

	// Session ends before the retry timer fires.
	auth.publish(nil)
	time.Sleep(120 * time.Millisecond)

	connects, _ := socket.counts()
	assert.Equal(t, 1, connects)
}

func TestEventsReachStoreForAdministratorsOnly(t *testing.T) {
	auth := newFakeAuth()
	socket := newFakeSocket()
	notifications := notify.NewStore(nil, 10, zerolog.Nop())

	o := New(auth, socket, notifications, 10*time.Millisecond, zerolog.Nop())
	o.Start()
	defer o.Stop()

	event := model.AgentStatusNotification{
		AgentID:   7,
		AgentName: "Carla",
		Status:    model.StatusOnline,
		Timestamp: "2026-08-30T12:00:00Z",
	}

	auth.publish(agent())
	waitFor(t, func() bool {
		connects, _ := socket.counts()
		return connects == 1
	})
	socket.events <- event
	time.Sleep(50 * time.Millisecond)
	require.Empty(t, notifications.List())

	auth.publish(admin())
	waitFor(t, func() bool {
		connects, _ := socket.counts()
		return connects == 2
	})
	socket.events <- event
	waitFor(t, func() bool { return len(notifications.List()) == 1 })

	assert.Equal(t, "Carla", notifications.List()[0].AgentName)
}

func TestStopDisconnects(t *testing.T) {
	auth := newFakeAuth()
	socket := newFakeSocket()
	notifications := notify.NewStore(nil, 10, zerolog.Nop())

	o := New(auth, socket, notifications, 10*time.Millisecond, zerolog.Nop())
	o.Start()
	o.Stop()

	_, disconnects := socket.counts()
	assert.Equal(t, 1, disconnects)

	// Stop is idempotent.
	o.Stop()
	_, disconnects = socket.counts()
	assert.Equal(t, 1, disconnects)
}
