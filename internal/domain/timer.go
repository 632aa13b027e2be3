package domain

import "time"

// ActiveTimer is the single in-flight timing session a user may have.
// At most one exists per user; the storage layer enforces this with a
// uniqueness constraint on UserID.
//
// PausedDuration accumulates the seconds spent paused across all
// pause/resume cycles. While the timer is paused, the pending pause interval
// (now minus PausedAt) is not yet folded into PausedDuration; FinalizePause
// folds it in.
type ActiveTimer struct {
	ID             string
	UserID         string
	ProjectID      string
	CategoryID     string
	StartedAt      time.Time
	PausedAt       *time.Time
	PausedDuration int64
	Status         TimerStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ElapsedSeconds returns the billable seconds accumulated so far. For a
// paused timer the elapsed time is frozen at the pause instant. A negative
// result (clock skew, now before StartedAt) clamps to zero.
func (t *ActiveTimer) ElapsedSeconds(now time.Time) int64 {
	var elapsed int64
	if t.Status == TimerPaused && t.PausedAt != nil {
		elapsed = int64(t.PausedAt.Sub(t.StartedAt).Seconds()) - t.PausedDuration
	} else {
		elapsed = int64(now.Sub(t.StartedAt).Seconds()) - t.PausedDuration
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ElapsedHours returns ElapsedSeconds converted to decimal hours.
func (t *ActiveTimer) ElapsedHours(now time.Time) float64 {
	return float64(t.ElapsedSeconds(now)) / 3600
}

// Pause freezes the timer at now. Callers must check that the timer is
// running first.
func (t *ActiveTimer) Pause(now time.Time) {
	t.Status = TimerPaused
	t.PausedAt = &now
	t.UpdatedAt = now
}

// Resume folds the pending pause interval into PausedDuration and sets the
// timer running again. Callers must check that the timer is paused first.
func (t *ActiveTimer) Resume(now time.Time) {
	t.FinalizePause(now)
	t.Status = TimerRunning
	t.UpdatedAt = now
}

// FinalizePause adds the pending pause interval (now minus PausedAt) to
// PausedDuration and clears PausedAt, without changing the timer status.
// Used by Resume and by the stop path, which finalizes the pause but never
// flips back to running. A no-op when no pause is pending.
func (t *ActiveTimer) FinalizePause(now time.Time) {
	if t.PausedAt == nil {
		return
	}
	additional := int64(now.Sub(*t.PausedAt).Seconds())
	if additional > 0 {
		t.PausedDuration += additional
	}
	t.PausedAt = nil
}
