// Package notify keeps the bounded, persisted list of received status
// notifications with read/unread bookkeeping.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/store"
)

// DefaultMax is the notification cap used when the config supplies none.
const DefaultMax = 50

// persistTimeout bounds each best-effort write to local storage.
const persistTimeout = 5 * time.Second

// Store owns the notification list. Every mutation recomputes the unread
// count and persists the full list; persistence failures are logged and
// swallowed, never surfaced to callers.
type Store struct {
	mu     sync.Mutex
	list   []model.Notification
	unread int
	max    int

	db  store.Store
	log zerolog.Logger
	now func() time.Time

	changed chan struct{}
}

// NewStore creates a notification store capped at max entries and reloads
// any persisted list. db may be nil, in which case the store is purely
// in-memory.
func NewStore(db store.Store, max int, log zerolog.Logger) *Store {
	if max <= 0 {
		max = DefaultMax
	}
	s := &Store{
		max:     max,
		db:      db,
		log:     log,
		now:     time.Now,
		changed: make(chan struct{}, 1),
	}

	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		list, err := db.LoadNotifications(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("loading persisted notifications")
		} else {
			if len(list) > max {
				list = list[:max]
			}
			s.list = list
		}
	}
	s.unread = countUnread(s.list)

	return s
}

// Add stores an inbound status event as a fresh unread record at the head
// of the list, evicting the oldest entries beyond the cap.
func (s *Store) Add(event model.AgentStatusNotification) model.Notification {
	s.mu.Lock()
	n := model.Notification{
		ID:        uuid.NewString(),
		AgentID:   event.AgentID,
		AgentName: event.AgentName,
		Status:    event.Status,
		Timestamp: event.Timestamp,
		Message:   event.Message,
		Read:      false,
		CreatedAt: s.now(),
	}

	s.list = append([]model.Notification{n}, s.list...)
	if len(s.list) > s.max {
		s.list = s.list[:s.max]
	}
	s.unread = countUnread(s.list)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	s.notifyChanged()
	return n
}

// MarkRead flips one record to read. Re-marking an already-read record is
// a no-op and does not re-stamp its read-at time.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	dirty := false
	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		if !s.list[i].Read {
			now := s.now()
			s.list[i].Read = true
			s.list[i].ReadAt = &now
			dirty = true
		}
		break
	}
	if !dirty {
		s.mu.Unlock()
		return
	}
	s.unread = countUnread(s.list)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	s.notifyChanged()
}

// MarkAllRead flips every unread record to read.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	dirty := false
	now := s.now()
	for i := range s.list {
		if !s.list[i].Read {
			s.list[i].Read = true
			t := now
			s.list[i].ReadAt = &t
			dirty = true
		}
	}
	if !dirty {
		s.mu.Unlock()
		return
	}
	s.unread = 0
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	s.notifyChanged()
}

// ClearAll empties the list.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.list = nil
	s.unread = 0
	s.mu.Unlock()

	s.persist(nil)
	s.notifyChanged()
}

// List returns a copy of the notification list, newest first.
func (s *Store) List() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// UnreadCount returns the number of records whose read flag is false.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Changed signals after every mutation. The channel carries at most one
// pending signal; consumers refetch state rather than reading deltas.
func (s *Store) Changed() <-chan struct{} {
	return s.changed
}

func (s *Store) snapshotLocked() []model.Notification {
	out := make([]model.Notification, len(s.list))
	copy(out, s.list)
	return out
}

// persist writes the full list to local storage. Best effort: failures
// are logged and swallowed.
func (s *Store) persist(list []model.Notification) {
	if s.db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.db.ReplaceNotifications(ctx, list); err != nil {
		s.log.Warn().Err(err).Msg("persisting notifications")
	}
}

func (s *Store) notifyChanged() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func countUnread(list []model.Notification) int {
	count := 0
	for _, n := range list {
		if !n.Read {
			count++
		}
	}
	return count
}
