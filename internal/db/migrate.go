package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillStatusNames(db); err != nil {
		return fmt.Errorf("backfilling task status names: %w", err)
	}
	if err := migrateSeedDataVersion(db); err != nil {
		return fmt.Errorf("seeding data version: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		key         TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		start_date  TEXT,
		end_date    TEXT,
		status      TEXT NOT NULL DEFAULT 'not_started'
		            CHECK(status IN ('not_started','started','completed')),
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assignees (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		project_id      TEXT REFERENCES projects(id) ON DELETE CASCADE,
		sprint_id       TEXT REFERENCES sprints(id) ON DELETE CASCADE,
		key             TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL,
		start_date      TEXT,
		end_date        TEXT,
		due_date        TEXT,
		assignee_id     TEXT REFERENCES assignees(id) ON DELETE SET NULL,
		status_category TEXT NOT NULL DEFAULT 'To Do',
		order_index     INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	// Free-form workflow column name, added after status_category.
	`ALTER TABLE tasks ADD COLUMN status_name TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS data_version (
		id         INTEGER PRIMARY KEY CHECK(id = 1),
		version    INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sprints_project ON sprints(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_sprint ON tasks(sprint_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id)`,
}

// migrateBackfillStatusNames gives rows written before status_name existed
// their category as the displayed status.
func migrateBackfillStatusNames(db *sql.DB) error {
	if _, err := db.Exec(`UPDATE tasks SET status_name = status_category WHERE status_name = ''`); err != nil {
		return fmt.Errorf("updating tasks: %w", err)
	}
	return nil
}

func migrateSeedDataVersion(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO data_version (id, version, updated_at) VALUES (1, 0, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))`)
	if err != nil {
		return fmt.Errorf("inserting data_version row: %w", err)
	}
	return nil
}
