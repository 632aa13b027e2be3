package repository

import (
	"context"
	"errors"
	"time"

	"github.com/consonum/timetrack/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist, or exists but
// is not owned by the requesting user. Callers test with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// such as a second active timer for a user or a repeated category code
// within a project.
var ErrDuplicate = errors.New("duplicate")

// EntryFilter narrows an entry listing. Nil bounds mean unbounded; the date
// range is inclusive on both ends. An empty ProjectID means all projects.
type EntryFilter struct {
	From      *time.Time
	To        *time.Time
	ProjectID string
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type TimerRepo interface {
	Create(ctx context.Context, t *domain.ActiveTimer) error
	GetByUser(ctx context.Context, userID string) (*domain.ActiveTimer, error)
	Update(ctx context.Context, t *domain.ActiveTimer) error
	Delete(ctx context.Context, id string) error
}

type EntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	// GetForUser fetches an entry scoped to its owner. A row owned by a
	// different user reports ErrNotFound, never a permission error.
	GetForUser(ctx context.Context, id, userID string) (*domain.TimeEntry, error)
	List(ctx context.Context, userID string, f EntryFilter) ([]*domain.TimeEntry, error)
	Update(ctx context.Context, e *domain.TimeEntry) error
	Delete(ctx context.Context, id, userID string) error
}
