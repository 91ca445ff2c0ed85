// Package db opens the SQLite schedule store and provides the unit of work
// that every import and every timeline read runs inside.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

// busyTimeoutMs covers the watcher or the HTTP server replacing the data
// while a CLI read is in flight.
const busyTimeoutMs = 5000

type pragma struct {
	stmt string
	what string
}

var pragmas = []pragma{
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMs), "setting busy timeout"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
}

// OpenDB opens the schedule store at path, creating its directory, and brings
// the schema up to date. MemoryPath is pinned to one connection so every
// caller sees the same tables.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// dsn repeats the per-connection pragmas for file stores; a plain Exec only
// reaches whichever pooled connection runs it.
func dsn(path string) string {
	if path == MemoryPath {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", path, busyTimeoutMs)
}
