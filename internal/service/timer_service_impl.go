package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/consonum/timetrack/internal/db"
	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/repository"
	"github.com/google/uuid"
)

// AutoStopDescription annotates the entry produced when starting a new timer
// implicitly finalizes the previous one.
const AutoStopDescription = "Auto-saved when switching tasks"

type timerService struct {
	timers   repository.TimerRepo
	uow      db.UnitOfWork
	tables   db.Tables
	clock    Clock
	observer UseCaseObserver
}

func NewTimerService(
	timers repository.TimerRepo,
	uow db.UnitOfWork,
	tables db.Tables,
	clock Clock,
	observers ...UseCaseObserver,
) TimerService {
	return &timerService{
		timers:   timers,
		uow:      uow,
		tables:   tables,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timerService) Start(ctx context.Context, userID, projectID, categoryID string) (timer *domain.ActiveTimer, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"user":    userID,
		"project": projectID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "start-timer",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := s.clock.Now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx, s.tables)
		txCategories := repository.NewSQLiteCategoryRepo(tx, s.tables)
		txTimers := repository.NewSQLiteTimerRepo(tx, s.tables)
		txEntries := repository.NewSQLiteEntryRepo(tx, s.tables)

		if _, err := txProjects.GetByID(ctx, projectID); err != nil {
			return err
		}
		category, err := txCategories.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if category.ProjectID != projectID {
			return &ValidationError{Field: "category_id", Reason: "category does not belong to the project"}
		}

		existing, err := txTimers.GetByUser(ctx, userID)
		switch {
		case err == nil:
			// The previous timer is finalized inside this transaction, so
			// there is never a moment with zero or two timers visible.
			if _, err := finalizeTimer(ctx, txProjects, txEntries, txTimers, existing, now, AutoStopDescription); err != nil {
				return err
			}
			fields["auto_stopped"] = existing.ID
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		timer = &domain.ActiveTimer{
			ID:         uuid.New().String(),
			UserID:     userID,
			ProjectID:  projectID,
			CategoryID: categoryID,
			StartedAt:  now,
			Status:     domain.TimerRunning,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := txTimers.Create(ctx, timer); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("active timer for user %s: %w", userID, ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return timer, nil
}

func (s *timerService) Pause(ctx context.Context, userID string) (*domain.ActiveTimer, error) {
	now := s.clock.Now()
	var timer *domain.ActiveTimer
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTimers := repository.NewSQLiteTimerRepo(tx, s.tables)
		t, err := txTimers.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if t.Status != domain.TimerRunning {
			return fmt.Errorf("pausing a timer that is %s: %w", t.Status, ErrInvalidState)
		}
		t.Pause(now)
		if err := txTimers.Update(ctx, t); err != nil {
			return err
		}
		timer = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return timer, nil
}

func (s *timerService) Resume(ctx context.Context, userID string) (*domain.ActiveTimer, error) {
	now := s.clock.Now()
	var timer *domain.ActiveTimer
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTimers := repository.NewSQLiteTimerRepo(tx, s.tables)
		t, err := txTimers.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if t.Status != domain.TimerPaused {
			return fmt.Errorf("resuming a timer that is %s: %w", t.Status, ErrInvalidState)
		}
		t.Resume(now)
		if err := txTimers.Update(ctx, t); err != nil {
			return err
		}
		timer = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return timer, nil
}

func (s *timerService) Stop(ctx context.Context, userID, description string) (entry *domain.TimeEntry, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "stop-timer",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user": userID},
		})
	}()

	if len(description) > domain.MaxDescriptionLen {
		return nil, &ValidationError{Field: "description", Reason: fmt.Sprintf("exceeds %d characters", domain.MaxDescriptionLen)}
	}

	now := s.clock.Now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx, s.tables)
		txTimers := repository.NewSQLiteTimerRepo(tx, s.tables)
		txEntries := repository.NewSQLiteEntryRepo(tx, s.tables)

		t, err := txTimers.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		entry, err = finalizeTimer(ctx, txProjects, txEntries, txTimers, t, now, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timerService) Current(ctx context.Context, userID string) (*domain.ActiveTimer, error) {
	return s.timers.GetByUser(ctx, userID)
}

// finalizeTimer converts an active timer into a completed time entry and
// destroys the timer row. A pending pause interval is folded in first, so a
// timer stopped while paused bills up to the pause instant only. The hourly
// rate is the project's rate at this moment, not a snapshot from when the
// timer started.
func finalizeTimer(
	ctx context.Context,
	projects repository.ProjectRepo,
	entries repository.EntryRepo,
	timers repository.TimerRepo,
	t *domain.ActiveTimer,
	now time.Time,
	description string,
) (*domain.TimeEntry, error) {
	t.FinalizePause(now)
	hours := t.ElapsedHours(now)

	project, err := projects.GetByID(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}

	end := now
	categoryID := t.CategoryID
	entry := &domain.TimeEntry{
		ID:            uuid.New().String(),
		UserID:        t.UserID,
		ProjectID:     t.ProjectID,
		CategoryID:    &categoryID,
		Date:          calendarDate(t.StartedAt),
		StartTime:     t.StartedAt,
		EndTime:       &end,
		DurationHours: domain.RoundHours(hours),
		HourlyRate:    project.HourlyRate,
		TotalAmount:   domain.RoundAmount(hours * project.HourlyRate),
		Description:   description,
		Status:        domain.EntryCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := timers.Delete(ctx, t.ID); err != nil {
		return nil, err
	}
	return entry, nil
}
