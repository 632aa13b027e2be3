package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/consonum/timetrack/internal/db"
	"github.com/consonum/timetrack/internal/domain"
)

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db     db.DBTX
	tables db.Tables
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX, tables db.Tables) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn, tables: tables}
}

const entryColumns = `id, user_id, project_id, category_id, date, start_time, end_time,
	duration_hours, hourly_rate, total_amount, description, status, invoice_id, created_at, updated_at`

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.tables.TimeEntries, entryColumns)
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.ProjectID,
		nullableStringToValue(e.CategoryID),
		e.Date.Format(dateLayout),
		e.StartTime.Format(time.RFC3339),
		nullableTimeToString(e.EndTime, time.RFC3339),
		e.DurationHours,
		e.HourlyRate,
		e.TotalAmount,
		e.Description,
		string(e.Status),
		nullableStringToValue(e.InvoiceID),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetForUser(ctx context.Context, id, userID string) (*domain.TimeEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND user_id = ?`,
		entryColumns, r.tables.TimeEntries)
	row := r.db.QueryRowContext(ctx, query, id, userID)
	return r.scanEntry(row)
}

func (r *SQLiteEntryRepo) List(ctx context.Context, userID string, f EntryFilter) ([]*domain.TimeEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = ?`, entryColumns, r.tables.TimeEntries)
	args := []any{userID}

	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, f.From.Format(dateLayout))
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, f.To.Format(dateLayout))
	}
	if f.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, f.ProjectID)
	}

	// Ordering matters for report display and CSV export determinism.
	query += ` ORDER BY date DESC, start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) Update(ctx context.Context, e *domain.TimeEntry) error {
	query := fmt.Sprintf(`UPDATE %s SET category_id = ?, date = ?, start_time = ?, end_time = ?,
		duration_hours = ?, hourly_rate = ?, total_amount = ?, description = ?, status = ?,
		invoice_id = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`, r.tables.TimeEntries)
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(e.CategoryID),
		e.Date.Format(dateLayout),
		e.StartTime.Format(time.RFC3339),
		nullableTimeToString(e.EndTime, time.RFC3339),
		e.DurationHours,
		e.HourlyRate,
		e.TotalAmount,
		e.Description,
		string(e.Status),
		nullableStringToValue(e.InvoiceID),
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
		e.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking entry update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, r.tables.TimeEntries)
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking entry delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanEntry scans a single time entry from a *sql.Row.
func (r *SQLiteEntryRepo) scanEntry(row *sql.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var status, dateStr, startTimeStr, createdAtStr, updatedAtStr string
	var categoryID, endTime, invoiceID sql.NullString

	err := row.Scan(
		&e.ID, &e.UserID, &e.ProjectID, &categoryID, &dateStr, &startTimeStr, &endTime,
		&e.DurationHours, &e.HourlyRate, &e.TotalAmount, &e.Description, &status,
		&invoiceID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}

	return r.populateEntry(&e, status, dateStr, startTimeStr, categoryID, endTime, invoiceID, createdAtStr, updatedAtStr)
}

// scanEntries scans multiple time entries from *sql.Rows.
func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		var status, dateStr, startTimeStr, createdAtStr, updatedAtStr string
		var categoryID, endTime, invoiceID sql.NullString

		err := rows.Scan(
			&e.ID, &e.UserID, &e.ProjectID, &categoryID, &dateStr, &startTimeStr, &endTime,
			&e.DurationHours, &e.HourlyRate, &e.TotalAmount, &e.Description, &status,
			&invoiceID, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}

		entry, popErr := r.populateEntry(&e, status, dateStr, startTimeStr, categoryID, endTime, invoiceID, createdAtStr, updatedAtStr)
		if popErr != nil {
			return nil, popErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// populateEntry fills in parsed fields on a TimeEntry after scanning raw values.
func (r *SQLiteEntryRepo) populateEntry(e *domain.TimeEntry, status, dateStr, startTimeStr string, categoryID, endTime, invoiceID sql.NullString, createdAtStr, updatedAtStr string) (*domain.TimeEntry, error) {
	e.Status = domain.EntryStatus(status)
	e.CategoryID = stringOrNil(categoryID)
	e.EndTime = parseNullableTime(endTime, time.RFC3339)
	e.InvoiceID = stringOrNil(invoiceID)

	var parseErr error
	e.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing date: %w", parseErr)
	}
	e.StartTime, parseErr = time.Parse(time.RFC3339, startTimeStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return e, nil
}
