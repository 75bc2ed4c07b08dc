package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully and repeatably
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations(), "migrations should be idempotent")

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", "events").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "events table not found")

	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", "idx_events_owner").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "owner index not found")
}

// TestEventsTable verifies ids are never reused after deletion
func TestEventsTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	insert := `INSERT INTO events (title, date, time, owner_email, created_at, updated_at)
		VALUES ('t', '2024-01-01', '09:00:00', 'a@x.com', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

	res, err := db.ExecContext(ctx, insert)
	require.NoError(t, err)
	first, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, first)
	require.NoError(t, err)

	res, err = db.ExecContext(ctx, insert)
	require.NoError(t, err)
	second, err := res.LastInsertId()
	require.NoError(t, err)
	require.Greater(t, second, first)

	_, err = db.ExecContext(ctx, `INSERT INTO events (title, date, time, created_at, updated_at)
		VALUES ('t', '2024-01-01', '09:00:00', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err, "owner_email is required")
}

func TestFoldFunction(t *testing.T) {
	db := NewTestDB(t)

	var folded string
	require.NoError(t, db.QueryRow(`SELECT fold('ÇÃO Reunião')`).Scan(&folded))
	require.Equal(t, "ção reunião", folded)
}
