package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/tests/testutil"
)

func TestReplaceAndLoadNotifications(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	readAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	list := []model.Notification{
		{
			ID:        "n-2",
			AgentID:   2,
			AgentName: "Bruno",
			Status:    model.StatusOffline,
			Timestamp: "2026-08-30T11:59:00Z",
			Message:   "Bruno está OFFLINE",
			CreatedAt: readAt,
		},
		{
			ID:        "n-1",
			AgentID:   1,
			AgentName: "Ana",
			Status:    model.StatusOnline,
			Timestamp: "2026-08-30T11:00:00Z",
			Message:   "Ana está ONLINE",
			Read:      true,
			ReadAt:    &readAt,
			CreatedAt: readAt.Add(-time.Hour),
		},
	}

	require.NoError(t, s.ReplaceNotifications(ctx, list))

	loaded, err := s.LoadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Stored order is preserved, newest first.
	assert.Equal(t, "n-2", loaded[0].ID)
	assert.Equal(t, model.StatusOffline, loaded[0].Status)
	assert.False(t, loaded[0].Read)
	assert.Nil(t, loaded[0].ReadAt)

	assert.Equal(t, "n-1", loaded[1].ID)
	assert.True(t, loaded[1].Read)
	require.NotNil(t, loaded[1].ReadAt)
	assert.True(t, loaded[1].ReadAt.Equal(readAt))
}

func TestReplaceNotificationsOverwritesPrevious(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first := []model.Notification{{ID: "old", AgentID: 1, Status: model.StatusOnline, CreatedAt: time.Now()}}
	require.NoError(t, s.ReplaceNotifications(ctx, first))

	second := []model.Notification{{ID: "new", AgentID: 2, Status: model.StatusOffline, CreatedAt: time.Now()}}
	require.NoError(t, s.ReplaceNotifications(ctx, second))

	loaded, err := s.LoadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "new", loaded[0].ID)
}

func TestReplaceNotificationsEmptyClearsTable(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceNotifications(ctx, []model.Notification{
		{ID: "n-1", AgentID: 1, Status: model.StatusOnline, CreatedAt: time.Now()},
	}))
	require.NoError(t, s.ReplaceNotifications(ctx, nil))

	loaded, err := s.LoadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestPunchCacheRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	items := []model.PunchItem{
		{ID: "p-1", Type: model.PunchIn, Timestamp: "2026-08-30T08:00:00Z", Source: "terminal"},
		{ID: "p-2", Type: model.PunchOut, Timestamp: "2026-08-30T17:00:00Z", Source: "terminal", Notes: "fim do plantão"},
	}
	require.NoError(t, s.UpsertPunches(ctx, 7, items))

	got, err := s.GetPunches(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, "p-2", got[0].ID)
	assert.Equal(t, model.PunchOut, got[0].Type)
	assert.Equal(t, "fim do plantão", got[0].Notes)
	assert.Equal(t, "p-1", got[1].ID)
}

func TestPunchCacheUpsertReplacesByID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPunches(ctx, 7, []model.PunchItem{
		{ID: "p-1", Type: model.PunchIn, Timestamp: "2026-08-30T08:00:00Z"},
	}))
	require.NoError(t, s.UpsertPunches(ctx, 7, []model.PunchItem{
		{ID: "p-1", Type: model.PunchIn, Timestamp: "2026-08-30T08:00:00Z", Notes: "corrigido"},
	}))

	got, err := s.GetPunches(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "corrigido", got[0].Notes)
}

func TestPunchCacheIsScopedByAgent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPunches(ctx, 1, []model.PunchItem{
		{ID: "p-1", Type: model.PunchIn, Timestamp: "2026-08-30T08:00:00Z"},
	}))

	got, err := s.GetPunches(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
