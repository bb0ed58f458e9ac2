package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order on every open. Statements must be
// idempotent (CREATE ... IF NOT EXISTS) since the list is re-run as a whole.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS drafts (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		payload       TEXT NOT NULL,
		last_saved_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_history (
		id             TEXT PRIMARY KEY,
		session_date   TEXT NOT NULL,
		started_at     TEXT,
		ended_at       TEXT,
		duration_min   INTEGER NOT NULL,
		volume         REAL NOT NULL,
		exercise_count INTEGER NOT NULL,
		set_count      INTEGER NOT NULL,
		notes          TEXT NOT NULL DEFAULT '',
		payload        TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_history_date
		ON session_history(session_date)`,
}

// Migrate applies all schema migrations to the given database.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
