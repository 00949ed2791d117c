package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/hdops/turnos-admin/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceNotifications persists the full notification list in one
// transaction, replacing the previous contents. The slice index becomes
// the stored position so reload preserves order.
func (s *SQLiteStore) ReplaceNotifications(ctx context.Context, list []model.Notification) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}

	const query = `
		INSERT INTO notifications (
			id, agent_id, agent_name, status, timestamp,
			message, read, read_at, created_at, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing notification insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range list {
		var readAt interface{}
		if n.ReadAt != nil {
			readAt = n.ReadAt.UTC()
		}
		_, err = stmt.ExecContext(ctx,
			n.ID, n.AgentID, n.AgentName, string(n.Status), n.Timestamp,
			n.Message, boolToInt(n.Read), readAt, n.CreatedAt.UTC(), i,
		)
		if err != nil {
			return fmt.Errorf("inserting notification %s: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// LoadNotifications returns the persisted list in stored order.
func (s *SQLiteStore) LoadNotifications(ctx context.Context) ([]model.Notification, error) {
	const query = `
		SELECT id, agent_id, agent_name, status, timestamp,
		       message, read, read_at, created_at
		FROM notifications
		ORDER BY position ASC`

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var list []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// UpsertPunches caches a batch of punch-history entries for an agent.
func (s *SQLiteStore) UpsertPunches(ctx context.Context, agentID int, items []model.PunchItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO punch_cache (
			id, agent_id, type, timestamp, source, notes, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing punch upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range items {
		_, err = stmt.ExecContext(ctx,
			p.ID, agentID, string(p.Type), p.Timestamp, p.Source, p.Notes, now,
		)
		if err != nil {
			return fmt.Errorf("upserting punch %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetPunches returns cached punches for an agent, newest first.
func (s *SQLiteStore) GetPunches(ctx context.Context, agentID, limit int) ([]model.PunchItem, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
		SELECT id, type, timestamp, source, notes
		FROM punch_cache
		WHERE agent_id = ?
		ORDER BY timestamp DESC
		LIMIT ?`

	rows, err := s.db.QueryxContext(ctx, query, agentID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying punch cache: %w", err)
	}
	defer rows.Close()

	var items []model.PunchItem
	for rows.Next() {
		var (
			p        model.PunchItem
			typeName string
		)
		if err := rows.Scan(&p.ID, &typeName, &p.Timestamp, &p.Source, &p.Notes); err != nil {
			return nil, fmt.Errorf("scanning punch row: %w", err)
		}
		p.Type = model.PunchType(typeName)
		items = append(items, p)
	}
	return items, rows.Err()
}

// scanNotification scans a notification row from a sqlx.Rows result set.
func scanNotification(rows *sqlx.Rows) (model.Notification, error) {
	var (
		n      model.Notification
		status string
		read   int
		readAt sql.NullTime
	)
	err := rows.Scan(
		&n.ID, &n.AgentID, &n.AgentName, &status, &n.Timestamp,
		&n.Message, &read, &readAt, &n.CreatedAt,
	)
	if err != nil {
		return model.Notification{}, fmt.Errorf("scanning notification row: %w", err)
	}
	n.Status = model.AgentStatus(status)
	n.Read = read != 0
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
