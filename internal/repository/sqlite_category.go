package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/consonum/timetrack/internal/db"
	"github.com/consonum/timetrack/internal/domain"
)

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db     db.DBTX
	tables db.Tables
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(conn db.DBTX, tables db.Tables) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: conn, tables: tables}
}

const categoryColumns = `id, project_id, code, name, description, sort_order, is_billable, created_at, updated_at`

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.tables.Categories, categoryColumns)
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		c.Code,
		c.Name,
		c.Description,
		c.SortOrder,
		boolToInt(c.IsBillable),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category code %q already used in project: %w", c.Code, ErrDuplicate)
		}
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, categoryColumns, r.tables.Categories)
	row := r.db.QueryRowContext(ctx, query, id)

	var c domain.Category
	var billable int
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&c.ID, &c.ProjectID, &c.Code, &c.Name, &c.Description, &c.SortOrder,
		&billable, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	return r.populateCategory(&c, billable, createdAtStr, updatedAtStr)
}

func (r *SQLiteCategoryRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = ? ORDER BY sort_order, code`,
		categoryColumns, r.tables.Categories)
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		var billable int
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(
			&c.ID, &c.ProjectID, &c.Code, &c.Name, &c.Description, &c.SortOrder,
			&billable, &createdAtStr, &updatedAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		category, popErr := r.populateCategory(&c, billable, createdAtStr, updatedAtStr)
		if popErr != nil {
			return nil, popErr
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func (r *SQLiteCategoryRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Categories)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking category delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}

// populateCategory fills in parsed fields on a Category after scanning raw values.
func (r *SQLiteCategoryRepo) populateCategory(c *domain.Category, billable int, createdAtStr, updatedAtStr string) (*domain.Category, error) {
	c.IsBillable = intToBool(billable)

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return c, nil
}
