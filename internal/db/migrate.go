package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations against the given table set.
func Migrate(db *sql.DB, t Tables) error {
	for i, stmt := range migrations(t) {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// migrations returns the schema statements with table names resolved against
// the configured prefix. Instants are stored as RFC3339 strings, dates as
// YYYY-MM-DD, and the user_id uniqueness on active timers is the
// authoritative one-timer-per-user guard.
func migrations(t Tables) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			code          TEXT NOT NULL DEFAULT '',
			description   TEXT NOT NULL DEFAULT '',
			color         TEXT NOT NULL DEFAULT '#3B82F6',
			department    TEXT NOT NULL DEFAULT '',
			hourly_rate   REAL NOT NULL DEFAULT 0 CHECK(hourly_rate >= 0),
			status        TEXT NOT NULL DEFAULT 'active'
			              CHECK(status IN ('active','inactive','completed')),
			start_date    TEXT,
			end_date      TEXT,
			budget_hours  REAL,
			budget_amount REAL,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		)`, t.Projects),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_status ON %s(status)`,
			t.Projects, t.Projects),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id          TEXT PRIMARY KEY,
			project_id  TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			code        TEXT NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			sort_order  INTEGER NOT NULL DEFAULT 0,
			is_billable INTEGER NOT NULL DEFAULT 1,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			UNIQUE(project_id, code)
		)`, t.Categories, t.Projects),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_sort ON %s(sort_order)`,
			t.Categories, t.Categories),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL UNIQUE,
			project_id      TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			category_id     TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			started_at      TEXT NOT NULL,
			paused_at       TEXT,
			paused_duration INTEGER NOT NULL DEFAULT 0 CHECK(paused_duration >= 0),
			status          TEXT NOT NULL DEFAULT 'running'
			                CHECK(status IN ('running','paused')),
			created_at      TEXT NOT NULL,
			updated_at      TEXT NOT NULL
		)`, t.ActiveTimers, t.Projects, t.Categories),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			project_id     TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			category_id    TEXT REFERENCES %s(id) ON DELETE SET NULL,
			date           TEXT NOT NULL,
			start_time     TEXT NOT NULL,
			end_time       TEXT,
			duration_hours REAL NOT NULL DEFAULT 0 CHECK(duration_hours >= 0),
			hourly_rate    REAL NOT NULL DEFAULT 0,
			total_amount   REAL NOT NULL DEFAULT 0,
			description    TEXT NOT NULL DEFAULT '',
			status         TEXT NOT NULL DEFAULT 'completed'
			               CHECK(status IN ('draft','completed','invoiced')),
			invoice_id     TEXT,
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		)`, t.TimeEntries, t.Projects, t.Categories),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_user_date ON %s(user_id, date)`,
			t.TimeEntries, t.TimeEntries),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_project_date ON %s(project_id, date)`,
			t.TimeEntries, t.TimeEntries),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_status ON %s(status)`,
			t.TimeEntries, t.TimeEntries),
	}
}
