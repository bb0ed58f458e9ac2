package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felipeleveke/gym-sub000/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database scoped to the test:
// it is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening test database")
	// In-memory SQLite is per-connection; one connection keeps every query
	// in the test on the same database.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	return database
}
