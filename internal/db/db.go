// Package db opens the workshop's SQLite database and keeps its schema
// current. The database only holds the activity journal; shop state lives
// in memory for the life of a session.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private database that disappears on Close.
const MemoryPath = ":memory:"

// pragmas run on every new connection before migrations.
var pragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA busy_timeout=5000;",
	"PRAGMA foreign_keys=ON;",
}

// DB is an open journal database.
type DB struct {
	sql  *sql.DB
	path string
}

// DefaultPath is where the journal lives when the config leaves it blank.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "workshop", "workshop.db")
}

// Open opens or creates the journal database at path and migrates it to the
// latest schema.
func Open(path string) (*DB, error) {
	resolved, err := resolve(path)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}
	if resolved == MemoryPath {
		// one connection, or each one sees its own empty database
		conn.SetMaxOpenConns(1)
	}

	if err := prepare(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &DB{sql: conn, path: resolved}, nil
}

func resolve(path string) (string, error) {
	switch path {
	case "":
		path = DefaultPath()
	case MemoryPath:
		return path, nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}
	return path, nil
}

func prepare(conn *sql.DB) error {
	if err := conn.Ping(); err != nil {
		return fmt.Errorf("ping journal db: %w", err)
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			return fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}
	return Migrate(conn)
}

// Close releases the connection. Safe on a nil DB.
func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// SQL exposes the connection to the journal package.
func (d *DB) SQL() *sql.DB {
	if d == nil {
		return nil
	}
	return d.sql
}

// Path is the resolved file path, or MemoryPath.
func (d *DB) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
