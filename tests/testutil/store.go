// Package testutil provides shared fixtures for tests that need the local
// sqlite store.
package testutil

import (
	"testing"

	"github.com/hdops/turnos-admin/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with the notification and
// punch-cache migrations applied, closed automatically when the test ends.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
