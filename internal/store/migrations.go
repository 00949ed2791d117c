package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	agent_id   INTEGER NOT NULL,
	agent_name TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	timestamp  TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL DEFAULT '',
	read       INTEGER NOT NULL DEFAULT 0 CHECK(read IN (0, 1)),
	read_at    DATETIME,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	position   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
CREATE INDEX IF NOT EXISTS idx_notifications_position ON notifications(position);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS punch_cache (
	id         TEXT PRIMARY KEY,
	agent_id   INTEGER NOT NULL,
	type       TEXT NOT NULL,
	timestamp  TEXT NOT NULL,
	source     TEXT NOT NULL DEFAULT '',
	notes      TEXT NOT NULL DEFAULT '',
	fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_punch_cache_agent ON punch_cache(agent_id, timestamp);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
