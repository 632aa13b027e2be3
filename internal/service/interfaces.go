package service

import (
	"context"
	"time"

	"github.com/consonum/timetrack/internal/domain"
)

// TimerService drives the single active timer a user may have. Every
// mutation runs inside one transaction so the one-timer-per-user invariant
// holds under concurrent calls.
type TimerService interface {
	// Start creates a running timer for the user. An existing timer is
	// auto-stopped first, producing its time entry within the same
	// transaction.
	Start(ctx context.Context, userID, projectID, categoryID string) (*domain.ActiveTimer, error)
	Pause(ctx context.Context, userID string) (*domain.ActiveTimer, error)
	Resume(ctx context.Context, userID string) (*domain.ActiveTimer, error)
	// Stop finalizes the timer into a completed TimeEntry and destroys the
	// timer row. The entry's hourly rate is the project's rate at stop time.
	Stop(ctx context.Context, userID, description string) (*domain.TimeEntry, error)
	// Current returns the user's active timer, or a not-found error when
	// none is running.
	Current(ctx context.Context, userID string) (*domain.ActiveTimer, error)
}

// CreateEntryParams describes a manual time entry. A nil EndTime creates a
// draft; DurationHours is only honored when EndTime is nil, since a set end
// instant always wins on recompute. A zero Date is derived from StartTime.
type CreateEntryParams struct {
	ProjectID     string
	CategoryID    *string
	Date          time.Time
	StartTime     time.Time
	EndTime       *time.Time
	DurationHours *float64
	Description   string
}

// UpdateEntryParams carries a partial edit. Nil pointers leave the field
// untouched; ClearEnd removes the end instant (reverting the entry to a
// draft). Owner and project are immutable.
type UpdateEntryParams struct {
	Date          *time.Time
	StartTime     *time.Time
	EndTime       *time.Time
	ClearEnd      bool
	DurationHours *float64
	Description   *string
}

// EntryListFilter narrows an entry listing. Nil bounds mean unbounded; the
// range is inclusive. ProjectID "" or "all" selects every project.
type EntryListFilter struct {
	From      *time.Time
	To        *time.Time
	ProjectID string
}

// EntryService is the ledger of finalized time entries. All operations are
// scoped to the owning user; another user's entry is indistinguishable from
// a missing one.
type EntryService interface {
	Create(ctx context.Context, userID string, p CreateEntryParams) (*domain.TimeEntry, error)
	Get(ctx context.Context, userID, id string) (*domain.TimeEntry, error)
	Update(ctx context.Context, userID, id string, p UpdateEntryParams) (*domain.TimeEntry, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, f EntryListFilter) ([]*domain.TimeEntry, error)
}

// CreateProjectParams describes a new project. Zero-valued Color and
// HourlyRate fall back to the configured defaults.
type CreateProjectParams struct {
	Name        string
	Code        string
	Description string
	Color       string
	Department  string
	HourlyRate  *float64
}

// CreateCategoryParams describes a new billing category within a project.
type CreateCategoryParams struct {
	ProjectID   string
	Code        string
	Name        string
	Description string
	SortOrder   int
	Billable    bool
}

// ProjectService maintains the project and category directory that timers
// and entries reference.
type ProjectService interface {
	CreateProject(ctx context.Context, p CreateProjectParams) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, activeOnly bool) ([]*domain.Project, error)
	CreateCategory(ctx context.Context, p CreateCategoryParams) (*domain.Category, error)
	ListCategories(ctx context.Context, projectID string) ([]*domain.Category, error)
}

// Summary aggregates a set of entries. AverageRate is TotalAmount divided by
// TotalHours, or zero for an empty or zero-hour set.
type Summary struct {
	TotalHours  float64
	TotalAmount float64
	AverageRate float64
	EntryCount  int
}

// ProjectBucket is one row of the per-day breakdown: hours grouped by
// project and category, labeled "Project - CODE" and carrying the project's
// display color.
type ProjectBucket struct {
	Label string
	Color string
	Hours float64
}

// TodayReport is the dashboard view of the current day.
type TodayReport struct {
	Date       time.Time
	Entries    []*domain.TimeEntry
	Buckets    []ProjectBucket
	TotalHours float64
}

// ReportService aggregates the entry ledger for display and export.
type ReportService interface {
	Summarize(ctx context.Context, userID string, f EntryListFilter) (*Summary, error)
	Today(ctx context.Context, userID string) (*TodayReport, error)
	// WeekHours sums the current Monday-based week's hours.
	WeekHours(ctx context.Context, userID string) (float64, error)
	// MonthHours sums the current calendar month's hours.
	MonthHours(ctx context.Context, userID string) (float64, error)
}
