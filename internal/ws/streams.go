package ws

import (
	"sync"

	"github.com/hdops/turnos-admin/internal/model"
)

// stateStream fans connection-state transitions out to subscribers, with
// latest-value replay so a late subscriber learns the current state.
type stateStream struct {
	mu      sync.Mutex
	current ConnectionState
	subs    map[int]chan ConnectionState
	nextID  int
}

func newStateStream() *stateStream {
	return &stateStream{
		current: StateDisconnected,
		subs:    make(map[int]chan ConnectionState),
	}
}

func (s *stateStream) Subscribe() (<-chan ConnectionState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan ConnectionState, 16)
	ch <- s.current
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *stateStream) Publish(state ConnectionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = state
	for _, ch := range s.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

func (s *stateStream) Current() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// notifStream fans inbound notifications out to subscribers. Unlike
// stateStream there is no replay: a subscriber only sees events received
// after it attached. Delivery order matches receive order because the
// single read pump is the only publisher.
type notifStream struct {
	mu     sync.Mutex
	subs   map[int]chan model.AgentStatusNotification
	nextID int
}

func newNotifStream() *notifStream {
	return &notifStream{subs: make(map[int]chan model.AgentStatusNotification)}
}

func (s *notifStream) Subscribe() (<-chan model.AgentStatusNotification, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan model.AgentStatusNotification, 64)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *notifStream) Publish(n model.AgentStatusNotification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
