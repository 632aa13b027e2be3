package db_test

import (
	"testing"

	"github.com/consonum/timetrack/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesPrefixedTables(t *testing.T) {
	tables := db.NewTables("tt_")
	database, err := db.OpenDB(":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	for _, name := range []string{"tt_projects", "tt_categories", "tt_active_timers", "tt_time_entries"} {
		var count int
		err := database.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", name)
	}
}

func TestMigrate_CustomPrefix(t *testing.T) {
	tables := db.NewTables("billing_")
	database, err := db.OpenDB(":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	var count int
	err = database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'billing_active_timers'`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMigrate_Idempotent(t *testing.T) {
	tables := db.NewTables("tt_")
	database, err := db.OpenDB(":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// Re-running the full migration set must be a no-op.
	require.NoError(t, db.Migrate(database, tables))
}

func TestMigrate_ActiveTimerUserUniqueness(t *testing.T) {
	tables := db.NewTables("tt_")
	database, err := db.OpenDB(":memory:", tables)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`INSERT INTO tt_projects (id, name, created_at, updated_at) VALUES ('p1', 'P', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO tt_categories (id, project_id, code, name, created_at, updated_at) VALUES ('c1', 'p1', 'DEV', 'Dev', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO tt_active_timers (id, user_id, project_id, category_id, started_at, created_at, updated_at)
		VALUES (?, 'alice', 'p1', 'c1', '2026-01-01T09:00:00Z', '2026-01-01T09:00:00Z', '2026-01-01T09:00:00Z')`
	_, err = database.Exec(insert, "t1")
	require.NoError(t, err)

	_, err = database.Exec(insert, "t2")
	require.Error(t, err, "second active timer for the same user must violate the uniqueness constraint")
	assert.Contains(t, err.Error(), "UNIQUE")
}
