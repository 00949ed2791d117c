package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdops/turnos-admin/internal/model"
)

func event(id int, name string, status model.AgentStatus) model.AgentStatusNotification {
	return model.AgentStatusNotification{
		AgentID:   id,
		AgentName: name,
		Status:    status,
		Timestamp: "2026-08-30T12:00:00Z",
		Message:   fmt.Sprintf("%s está %s", name, status),
	}
}

func TestAddPrependsAndCountsUnread(t *testing.T) {
	s := NewStore(nil, 10, zerolog.Nop())

	s.Add(event(1, "Ana", model.StatusOnline))
	s.Add(event(2, "Bruno", model.StatusOffline))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Bruno", list[0].AgentName)
	assert.Equal(t, "Ana", list[1].AgentName)
	assert.Equal(t, 2, s.UnreadCount())
	assert.False(t, list[0].Read)
	assert.NotEmpty(t, list[0].ID)
}

func TestCapEvictsOldestFirst(t *testing.T) {
	s := NewStore(nil, 3, zerolog.Nop())

	for i := 1; i <= 5; i++ {
		s.Add(event(i, fmt.Sprintf("agent-%d", i), model.StatusOnline))
	}

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "agent-5", list[0].AgentName)
	assert.Equal(t, "agent-3", list[2].AgentName)
	assert.Equal(t, 3, s.UnreadCount())
}

func TestMarkReadIsIdempotent(t *testing.T) {
	s := NewStore(nil, 10, zerolog.Nop())
	n := s.Add(event(1, "Ana", model.StatusOnline))

	s.MarkRead(n.ID)
	require.Equal(t, 0, s.UnreadCount())

	first := s.List()[0].ReadAt
	require.NotNil(t, first)

	// Re-marking must not re-stamp the read time.
	s.MarkRead(n.ID)
	assert.Equal(t, first, s.List()[0].ReadAt)
}

func TestMarkReadUnknownIDIsNoOp(t *testing.T) {
	s := NewStore(nil, 10, zerolog.Nop())
	s.Add(event(1, "Ana", model.StatusOnline))

	s.MarkRead("missing")
	assert.Equal(t, 1, s.UnreadCount())
}

func TestMarkAllReadAndClearAll(t *testing.T) {
	s := NewStore(nil, 10, zerolog.Nop())
	s.Add(event(1, "Ana", model.StatusOnline))
	s.Add(event(2, "Bruno", model.StatusOffline))

	s.MarkAllRead()
	assert.Equal(t, 0, s.UnreadCount())
	for _, n := range s.List() {
		assert.True(t, n.Read)
		assert.NotNil(t, n.ReadAt)
	}

	s.ClearAll()
	assert.Empty(t, s.List())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestChangedSignalsOnMutation(t *testing.T) {
	s := NewStore(nil, 10, zerolog.Nop())

	s.Add(event(1, "Ana", model.StatusOnline))

	select {
	case <-s.Changed():
	default:
		t.Fatal("expected a pending change signal after Add")
	}
}

// failingStore always errors, proving persistence is best effort.
type failingStore struct{}

func (failingStore) ReplaceNotifications(context.Context, []model.Notification) error {
	return fmt.Errorf("disk full")
}

func (failingStore) LoadNotifications(context.Context) ([]model.Notification, error) {
	return nil, fmt.Errorf("disk full")
}

func (failingStore) UpsertPunches(context.Context, int, []model.PunchItem) error {
	return fmt.Errorf("disk full")
}

func (failingStore) GetPunches(context.Context, int, int) ([]model.PunchItem, error) {
	return nil, fmt.Errorf("disk full")
}

func (failingStore) Close() error { return nil }

func TestPersistenceFailuresAreSwallowed(t *testing.T) {
	s := NewStore(failingStore{}, 10, zerolog.Nop())

	s.Add(event(1, "Ana", model.StatusOnline))

	assert.Len(t, s.List(), 1)
	assert.Equal(t, 1, s.UnreadCount())
}
