package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/consonum/timetrack/internal/db"
	"github.com/consonum/timetrack/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db     db.DBTX
	tables db.Tables
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX, tables db.Tables) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn, tables: tables}
}

const projectColumns = `id, name, code, description, color, department, hourly_rate,
	status, start_date, end_date, budget_hours, budget_amount, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, r.tables.Projects, projectColumns)
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Code,
		p.Description,
		p.Color,
		p.Department,
		p.HourlyRate,
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		nullableFloatToValue(p.BudgetHours),
		nullableFloatToValue(p.BudgetAmt),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, projectColumns, r.tables.Projects)
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name`, projectColumns, r.tables.Projects)
	if activeOnly {
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE status = 'active' ORDER BY name`,
			projectColumns, r.tables.Projects)
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()
	return r.scanProjects(rows)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := fmt.Sprintf(`UPDATE %s SET name = ?, code = ?, description = ?, color = ?,
		department = ?, hourly_rate = ?, status = ?, start_date = ?, end_date = ?,
		budget_hours = ?, budget_amount = ?, updated_at = ?
		WHERE id = ?`, r.tables.Projects)
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Code,
		p.Description,
		p.Color,
		p.Department,
		p.HourlyRate,
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		nullableFloatToValue(p.BudgetHours),
		nullableFloatToValue(p.BudgetAmt),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking project update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Projects)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking project delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanProject scans a single project from a *sql.Row.
func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var status, createdAtStr, updatedAtStr string
	var startDate, endDate sql.NullString
	var budgetHours, budgetAmount sql.NullFloat64

	err := row.Scan(
		&p.ID, &p.Name, &p.Code, &p.Description, &p.Color, &p.Department,
		&p.HourlyRate, &status, &startDate, &endDate, &budgetHours, &budgetAmount,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	return r.populateProject(&p, status, startDate, endDate, budgetHours, budgetAmount, createdAtStr, updatedAtStr)
}

// scanProjects scans multiple projects from *sql.Rows.
func (r *SQLiteProjectRepo) scanProjects(rows *sql.Rows) ([]*domain.Project, error) {
	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		var status, createdAtStr, updatedAtStr string
		var startDate, endDate sql.NullString
		var budgetHours, budgetAmount sql.NullFloat64

		err := rows.Scan(
			&p.ID, &p.Name, &p.Code, &p.Description, &p.Color, &p.Department,
			&p.HourlyRate, &status, &startDate, &endDate, &budgetHours, &budgetAmount,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}

		project, popErr := r.populateProject(&p, status, startDate, endDate, budgetHours, budgetAmount, createdAtStr, updatedAtStr)
		if popErr != nil {
			return nil, popErr
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// populateProject fills in parsed fields on a Project after scanning raw values.
func (r *SQLiteProjectRepo) populateProject(p *domain.Project, status string, startDate, endDate sql.NullString, budgetHours, budgetAmount sql.NullFloat64, createdAtStr, updatedAtStr string) (*domain.Project, error) {
	p.Status = domain.ProjectStatus(status)
	p.StartDate = parseNullableTime(startDate, dateLayout)
	p.EndDate = parseNullableTime(endDate, dateLayout)
	p.BudgetHours = floatOrNil(budgetHours)
	p.BudgetAmt = floatOrNil(budgetAmount)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
