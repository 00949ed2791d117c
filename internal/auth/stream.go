package auth

import (
	"sync"

	"github.com/hdops/turnos-admin/internal/model"
)

// userStream fans the current user out to subscribers. A new subscriber
// immediately receives the latest published value, so consumers that attach
// after login still observe the session state.
type userStream struct {
	mu      sync.Mutex
	current *model.User
	subs    map[int]chan *model.User
	nextID  int
}

func newUserStream() *userStream {
	return &userStream{subs: make(map[int]chan *model.User)}
}

// Subscribe returns a channel of user transitions and a cancel function.
// The channel is buffered; a subscriber that stops draining loses updates
// rather than blocking the publisher.
func (s *userStream) Subscribe() (<-chan *model.User, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan *model.User, 8)
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

// Publish records the new current value and delivers it to every subscriber.
func (s *userStream) Publish(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = u
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// Current returns the latest published value.
func (s *userStream) Current() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
