package testutil

import (
	"time"

	"github.com/consonum/timetrack/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithHourlyRate(rate float64) ProjectOption {
	return func(p *domain.Project) {
		p.HourlyRate = rate
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithColor(color string) ProjectOption {
	return func(p *domain.Project) {
		p.Color = color
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:         uuid.New().String(),
		Name:       name,
		Color:      domain.DefaultProjectColor,
		HourlyRate: 150.00,
		Status:     domain.ProjectActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Category options
type CategoryOption func(*domain.Category)

func WithSortOrder(order int) CategoryOption {
	return func(c *domain.Category) {
		c.SortOrder = order
	}
}

func WithNonBillable() CategoryOption {
	return func(c *domain.Category) {
		c.IsBillable = false
	}
}

func NewTestCategory(projectID, code, name string, opts ...CategoryOption) *domain.Category {
	now := time.Now().UTC()
	c := &domain.Category{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Code:       code,
		Name:       name,
		IsBillable: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TimeEntry options
type EntryOption func(*domain.TimeEntry)

func WithEntryDate(d time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Date = d
	}
}

func WithEntryTimes(start, end time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartTime = start
		e.EndTime = &end
		e.Date = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func WithEntryRate(rate float64) EntryOption {
	return func(e *domain.TimeEntry) {
		e.HourlyRate = rate
	}
}

func WithEntryCategory(categoryID string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.CategoryID = &categoryID
	}
}

func WithEntryDescription(text string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Description = text
	}
}

// NewTestEntry builds a completed one-hour entry on the given day,
// recomputed so duration and amount are consistent.
func NewTestEntry(userID, projectID string, opts ...EntryOption) *domain.TimeEntry {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	e := &domain.TimeEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProjectID:  projectID,
		Date:       time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:  start,
		EndTime:    &end,
		HourlyRate: 150.00,
		Status:     domain.EntryCompleted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Recompute()
	return e
}
