package service

import (
	"context"
	"testing"
	"time"

	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerStart(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	timer, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.TimerRunning, timer.Status)
	assert.Equal(t, env.clock.Now(), timer.StartedAt)
	assert.Nil(t, timer.PausedAt)
	assert.Zero(t, timer.PausedDuration)

	current, err := svc.Current(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, timer.ID, current.ID)
}

func TestTimerStart_UnknownProject(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	_, cat := env.seedProject(t, "Website", 150.00)

	_, err := env.timerService().Start(ctx, "alice", "missing", cat.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimerStart_CategoryFromOtherProject(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, _ := env.seedProject(t, "Website", 150.00)
	_, otherCat := env.seedProject(t, "App", 120.00)

	_, err := env.timerService().Start(ctx, "alice", proj.ID, otherCat.ID)
	assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
}

func TestTimerStart_AutoStopsExisting(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)
	other, otherCat := env.seedProject(t, "App", 120.00)

	svc := env.timerService()
	first, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	env.clock.Advance(30 * time.Minute)
	second, err := svc.Start(ctx, "alice", other.ID, otherCat.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// Exactly one timer remains, belonging to the new project.
	current, err := svc.Current(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, other.ID, current.ProjectID)

	// The displaced timer became exactly one entry, annotated as auto-saved.
	entries, err := env.entries.List(ctx, "alice", repository.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, AutoStopDescription, entries[0].Description)
	assert.Equal(t, proj.ID, entries[0].ProjectID)
	assert.Equal(t, 0.5, entries[0].DurationHours)
	assert.Equal(t, 75.00, entries[0].TotalAmount)
}

func TestTimerPauseResume(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	env.clock.Advance(30 * time.Minute)
	paused, err := svc.Pause(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TimerPaused, paused.Status)
	require.NotNil(t, paused.PausedAt)
	assert.Equal(t, env.clock.Now(), *paused.PausedAt)

	env.clock.Advance(10 * time.Minute)
	resumed, err := svc.Resume(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TimerRunning, resumed.Status)
	assert.Nil(t, resumed.PausedAt)
	assert.Equal(t, int64(600), resumed.PausedDuration)
}

func TestTimerPause_AlreadyPaused(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)
	_, err = svc.Pause(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.Pause(ctx, "alice")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTimerResume_NotPaused(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	_, err = svc.Resume(ctx, "alice")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTimerOps_NoTimer(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Pause(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Resume(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Stop(ctx, "alice", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Current(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// Full lifecycle: start, pause after 30 min, resume 10 min later, stop 50
// min wall-clock after start. Paused time is 600s, billable time 4800s, and
// at 150.00/h the amount comes to exactly 200.00.
func TestTimerLifecycle_PauseResumeStop(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	start := env.clock.Now()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	env.clock.Advance(1800 * time.Second)
	_, err = svc.Pause(ctx, "alice")
	require.NoError(t, err)

	env.clock.Advance(600 * time.Second)
	resumed, err := svc.Resume(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(600), resumed.PausedDuration)

	env.clock.Advance(3000 * time.Second)
	entry, err := svc.Stop(ctx, "alice", "Sprint work")
	require.NoError(t, err)

	assert.InDelta(t, 1.3333, entry.DurationHours, 0.0001)
	assert.Equal(t, 200.00, entry.TotalAmount)
	assert.Equal(t, 150.00, entry.HourlyRate)
	assert.Equal(t, "Sprint work", entry.Description)
	assert.Equal(t, domain.EntryCompleted, entry.Status)
	assert.Equal(t, start, entry.StartTime)
	require.NotNil(t, entry.EndTime)
	assert.Equal(t, env.clock.Now(), *entry.EndTime)
	assert.True(t, entry.Date.Equal(calendarDate(start)))
	require.NotNil(t, entry.CategoryID)
	assert.Equal(t, cat.ID, *entry.CategoryID)

	// The timer is gone and the entry is persisted.
	_, err = svc.Current(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	persisted, err := env.entries.GetForUser(ctx, entry.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 200.00, persisted.TotalAmount)
}

func TestTimerStop_WhilePaused_BillsToPauseInstant(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	env.clock.Advance(20 * time.Minute)
	_, err = svc.Pause(ctx, "alice")
	require.NoError(t, err)

	env.clock.Advance(40 * time.Minute)
	entry, err := svc.Stop(ctx, "alice", "")
	require.NoError(t, err)

	// 60 min wall clock minus 40 min paused: only 20 min billed.
	assert.InDelta(t, 0.3333, entry.DurationHours, 0.0001)
	assert.Equal(t, 50.00, entry.TotalAmount)
}

func TestTimerStop_ReadsRateAtStopTime(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	proj.HourlyRate = 200.00
	require.NoError(t, env.projects.Update(ctx, proj))

	entry, err := svc.Stop(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, 200.00, entry.HourlyRate, "rate is read at stop time, not cached from start")
	assert.Equal(t, 200.00, entry.TotalAmount)
}

func TestTimerStop_SecondStopIsNotFound(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	_, err = svc.Stop(ctx, "alice", "")
	require.NoError(t, err)
	_, err = svc.Stop(ctx, "alice", "")
	assert.ErrorIs(t, err, repository.ErrNotFound, "the losing stop sees no timer")

	entries, err := env.entries.List(ctx, "alice", repository.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only one finalized entry exists")
}

func TestTimerStop_ClockSkewClampsToZero(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	env.clock.Advance(-time.Hour)
	entry, err := svc.Stop(ctx, "alice", "")
	require.NoError(t, err)
	assert.Zero(t, entry.DurationHours)
	assert.Zero(t, entry.TotalAmount)
}

func TestTimerStart_IndependentUsers(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)
	_, err = svc.Start(ctx, "bob", proj.ID, cat.ID)
	require.NoError(t, err)

	// Neither start displaced the other; no auto-stop entries were written.
	entries, err := env.entries.List(ctx, "alice", repository.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTimerStop_DescriptionTooLong(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj, cat := env.seedProject(t, "Website", 150.00)

	svc := env.timerService()
	_, err := svc.Start(ctx, "alice", proj.ID, cat.ID)
	require.NoError(t, err)

	long := make([]byte, domain.MaxDescriptionLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.Stop(ctx, "alice", string(long))
	assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
}
