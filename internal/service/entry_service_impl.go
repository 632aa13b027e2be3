package service

import (
	"context"
	"fmt"

	"github.com/consonum/timetrack/internal/db"
	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/repository"
	"github.com/google/uuid"
)

type entryService struct {
	entries repository.EntryRepo
	uow     db.UnitOfWork
	tables  db.Tables
	clock   Clock
}

func NewEntryService(entries repository.EntryRepo, uow db.UnitOfWork, tables db.Tables, clock Clock) EntryService {
	return &entryService{entries: entries, uow: uow, tables: tables, clock: clock}
}

func (s *entryService) Create(ctx context.Context, userID string, p CreateEntryParams) (*domain.TimeEntry, error) {
	if len(p.Description) > domain.MaxDescriptionLen {
		return nil, &ValidationError{Field: "description", Reason: fmt.Sprintf("exceeds %d characters", domain.MaxDescriptionLen)}
	}
	if p.StartTime.IsZero() {
		return nil, &ValidationError{Field: "start_time", Reason: "start time is required"}
	}
	if p.EndTime != nil && p.EndTime.Before(p.StartTime) {
		return nil, &ValidationError{Field: "end_time", Reason: "end time precedes start time"}
	}
	if p.DurationHours != nil && *p.DurationHours < 0 {
		return nil, &ValidationError{Field: "duration_hours", Reason: "duration must not be negative"}
	}

	now := s.clock.Now()
	var entry *domain.TimeEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx, s.tables)
		txCategories := repository.NewSQLiteCategoryRepo(tx, s.tables)
		txEntries := repository.NewSQLiteEntryRepo(tx, s.tables)

		project, err := txProjects.GetByID(ctx, p.ProjectID)
		if err != nil {
			return err
		}
		if p.CategoryID != nil {
			category, err := txCategories.GetByID(ctx, *p.CategoryID)
			if err != nil {
				return err
			}
			if category.ProjectID != p.ProjectID {
				return &ValidationError{Field: "category_id", Reason: "category does not belong to the project"}
			}
		}

		date := p.Date
		if date.IsZero() {
			date = calendarDate(p.StartTime)
		}
		status := domain.EntryDraft
		if p.EndTime != nil {
			status = domain.EntryCompleted
		}
		entry = &domain.TimeEntry{
			ID:          uuid.New().String(),
			UserID:      userID,
			ProjectID:   p.ProjectID,
			CategoryID:  p.CategoryID,
			Date:        date,
			StartTime:   p.StartTime,
			EndTime:     p.EndTime,
			HourlyRate:  project.HourlyRate,
			Description: p.Description,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if p.DurationHours != nil {
			entry.DurationHours = *p.DurationHours
		}
		entry.Recompute()
		return txEntries.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) Get(ctx context.Context, userID, id string) (*domain.TimeEntry, error) {
	return s.entries.GetForUser(ctx, id, userID)
}

func (s *entryService) Update(ctx context.Context, userID, id string, p UpdateEntryParams) (*domain.TimeEntry, error) {
	if p.Description != nil && len(*p.Description) > domain.MaxDescriptionLen {
		return nil, &ValidationError{Field: "description", Reason: fmt.Sprintf("exceeds %d characters", domain.MaxDescriptionLen)}
	}
	if p.DurationHours != nil && *p.DurationHours < 0 {
		return nil, &ValidationError{Field: "duration_hours", Reason: "duration must not be negative"}
	}
	if p.ClearEnd && p.EndTime != nil {
		return nil, &ValidationError{Field: "end_time", Reason: "cannot both set and clear the end time"}
	}

	now := s.clock.Now()
	var entry *domain.TimeEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx, s.tables)

		e, err := txEntries.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		if e.Status == domain.EntryInvoiced {
			return fmt.Errorf("editing an invoiced entry: %w", ErrInvalidState)
		}

		if p.Date != nil {
			e.Date = calendarDate(*p.Date)
		}
		if p.StartTime != nil {
			e.StartTime = *p.StartTime
		}
		if p.EndTime != nil {
			e.EndTime = p.EndTime
		}
		if p.ClearEnd {
			e.EndTime = nil
		}
		if p.DurationHours != nil {
			e.DurationHours = *p.DurationHours
		}
		if p.Description != nil {
			e.Description = *p.Description
		}

		if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
			return &ValidationError{Field: "end_time", Reason: "end time precedes start time"}
		}
		if e.EndTime != nil {
			e.Status = domain.EntryCompleted
		} else {
			e.Status = domain.EntryDraft
		}
		e.Recompute()
		e.UpdatedAt = now

		if err := txEntries.Update(ctx, e); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) Delete(ctx context.Context, userID, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx, s.tables)

		e, err := txEntries.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		if e.Status == domain.EntryInvoiced {
			return fmt.Errorf("deleting an invoiced entry: %w", ErrInvalidState)
		}
		return txEntries.Delete(ctx, id, userID)
	})
}

func (s *entryService) List(ctx context.Context, userID string, f EntryListFilter) ([]*domain.TimeEntry, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, &ValidationError{Field: "to", Reason: "range end precedes range start"}
	}
	return s.entries.List(ctx, userID, repoFilter(f))
}
