package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/consonum/timetrack/internal/db"
	"github.com/consonum/timetrack/internal/domain"
)

// SQLiteTimerRepo implements TimerRepo using a SQLite database. The UNIQUE
// constraint on user_id makes the storage layer the authoritative guard for
// the one-active-timer-per-user invariant.
type SQLiteTimerRepo struct {
	db     db.DBTX
	tables db.Tables
}

// NewSQLiteTimerRepo creates a new SQLiteTimerRepo.
func NewSQLiteTimerRepo(conn db.DBTX, tables db.Tables) *SQLiteTimerRepo {
	return &SQLiteTimerRepo{db: conn, tables: tables}
}

const timerColumns = `id, user_id, project_id, category_id, started_at, paused_at, paused_duration, status, created_at, updated_at`

func (r *SQLiteTimerRepo) Create(ctx context.Context, t *domain.ActiveTimer) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.tables.ActiveTimers, timerColumns)
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.ProjectID,
		t.CategoryID,
		t.StartedAt.Format(time.RFC3339),
		nullableTimeToString(t.PausedAt, time.RFC3339),
		t.PausedDuration,
		string(t.Status),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("active timer for user %s: %w", t.UserID, ErrDuplicate)
		}
		return fmt.Errorf("inserting active timer: %w", err)
	}
	return nil
}

func (r *SQLiteTimerRepo) GetByUser(ctx context.Context, userID string) (*domain.ActiveTimer, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = ?`, timerColumns, r.tables.ActiveTimers)
	row := r.db.QueryRowContext(ctx, query, userID)

	var t domain.ActiveTimer
	var status, startedAtStr, createdAtStr, updatedAtStr string
	var pausedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.UserID, &t.ProjectID, &t.CategoryID, &startedAtStr, &pausedAt,
		&t.PausedDuration, &status, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("active timer: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning active timer: %w", err)
	}

	t.Status = domain.TimerStatus(status)
	t.PausedAt = parseNullableTime(pausedAt, time.RFC3339)

	var parseErr error
	t.StartedAt, parseErr = time.Parse(time.RFC3339, startedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}

func (r *SQLiteTimerRepo) Update(ctx context.Context, t *domain.ActiveTimer) error {
	query := fmt.Sprintf(`UPDATE %s SET paused_at = ?, paused_duration = ?, status = ?, updated_at = ?
		WHERE id = ?`, r.tables.ActiveTimers)
	res, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(t.PausedAt, time.RFC3339),
		t.PausedDuration,
		string(t.Status),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating active timer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking timer update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("active timer %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimerRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.ActiveTimers)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting active timer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking timer delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("active timer %s: %w", id, ErrNotFound)
	}
	return nil
}
