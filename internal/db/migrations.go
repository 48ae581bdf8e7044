package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/marcus/workshop/internal/logging"
)

// ErrNilDB is returned when a migration helper gets no connection.
var ErrNilDB = errors.New("journal db is nil")

// Migration is one forward-only schema step.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "sessions and events",
		SQL: `
CREATE TABLE sessions (
    id          TEXT PRIMARY KEY,
    shop_name   TEXT NOT NULL,
    started_at  DATETIME NOT NULL,
    ended_at    DATETIME
);

CREATE TABLE events (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   TEXT NOT NULL REFERENCES sessions(id),
    occurred_at  DATETIME NOT NULL,
    kind         TEXT NOT NULL,
    task_id      INTEGER NOT NULL DEFAULT 0,
    mechanic_id  INTEGER NOT NULL DEFAULT 0,
    customer_id  INTEGER NOT NULL DEFAULT 0,
    detail       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX idx_events_time ON events(occurred_at DESC);
CREATE INDEX idx_events_session ON events(session_id, id);
`,
	},
	{
		Version:     2,
		Description: "task priority on events",
		SQL:         `ALTER TABLE events ADD COLUMN priority INTEGER NOT NULL DEFAULT 0;`,
	},
}

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY, applied_at DATETIME)`

// Migrate brings the schema up to the newest migration. Each step commits
// together with its schema_version row.
func Migrate(conn *sql.DB) error {
	if conn == nil {
		return ErrNilDB
	}
	if _, err := conn.Exec(createVersionTable); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	current, err := CurrentVersion(conn)
	if err != nil {
		return err
	}

	log := logging.Component("db")
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := apply(conn, m); err != nil {
			return err
		}
		log.DebugCtx("applied migration", map[string]any{
			"version":     m.Version,
			"description": m.Description,
		})
	}
	return nil
}

func apply(conn *sql.DB, m Migration) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("apply migration %d: %w", m.Version, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, CURRENT_TIMESTAMP)`, m.Version); err != nil {
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.Version, err)
	}
	return nil
}

// CurrentVersion reports the newest applied migration, 0 on a fresh database.
func CurrentVersion(conn *sql.DB) (int, error) {
	if conn == nil {
		return 0, ErrNilDB
	}
	var version int
	if err := conn.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("query schema_version: %w", err)
	}
	return version, nil
}
