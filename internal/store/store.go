package store

import (
	"context"

	"github.com/hdops/turnos-admin/internal/model"
)

// Store defines the local persistence interface: the notification list and
// a punch-history cache for offline viewing.
type Store interface {
	// ReplaceNotifications persists the full notification list, replacing
	// whatever was stored before. List order is preserved on reload.
	ReplaceNotifications(ctx context.Context, list []model.Notification) error

	// LoadNotifications returns the persisted notification list in its
	// stored order (newest first).
	LoadNotifications(ctx context.Context) ([]model.Notification, error)

	// UpsertPunches caches punch-history entries for an agent.
	UpsertPunches(ctx context.Context, agentID int, items []model.PunchItem) error

	// GetPunches returns cached punches for an agent, newest first.
	GetPunches(ctx context.Context, agentID, limit int) ([]model.PunchItem, error)

	Close() error
}
