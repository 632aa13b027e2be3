package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var timerBase = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func runningTimer(start time.Time) *ActiveTimer {
	return &ActiveTimer{
		ID:        "t1",
		UserID:    "alice",
		ProjectID: "p1",
		StartedAt: start,
		Status:    TimerRunning,
	}
}

func TestElapsedSeconds_Running(t *testing.T) {
	timer := runningTimer(timerBase)

	assert.Equal(t, int64(0), timer.ElapsedSeconds(timerBase))
	assert.Equal(t, int64(90), timer.ElapsedSeconds(timerBase.Add(90*time.Second)))
}

func TestElapsedSeconds_SubtractsPausedDuration(t *testing.T) {
	timer := runningTimer(timerBase)
	timer.PausedDuration = 600

	assert.Equal(t, int64(1200), timer.ElapsedSeconds(timerBase.Add(30*time.Minute)))
}

func TestElapsedSeconds_FrozenWhilePaused(t *testing.T) {
	timer := runningTimer(timerBase)
	timer.Pause(timerBase.Add(10 * time.Minute))

	// Elapsed is measured to the pause instant, not to now.
	assert.Equal(t, int64(600), timer.ElapsedSeconds(timerBase.Add(time.Hour)))
}

func TestElapsedSeconds_ClampsNegativeToZero(t *testing.T) {
	timer := runningTimer(timerBase)

	// Clock skew: now before the start instant.
	assert.Equal(t, int64(0), timer.ElapsedSeconds(timerBase.Add(-time.Minute)))
}

func TestPauseResume_AccumulatesPausedDuration(t *testing.T) {
	timer := runningTimer(timerBase)

	timer.Pause(timerBase.Add(30 * time.Minute))
	assert.Equal(t, TimerPaused, timer.Status)
	assert.NotNil(t, timer.PausedAt)
	assert.Equal(t, int64(0), timer.PausedDuration, "pause alone must not add to paused duration")

	timer.Resume(timerBase.Add(40 * time.Minute))
	assert.Equal(t, TimerRunning, timer.Status)
	assert.Nil(t, timer.PausedAt)
	assert.Equal(t, int64(600), timer.PausedDuration)

	// Second cycle accumulates.
	timer.Pause(timerBase.Add(50 * time.Minute))
	timer.Resume(timerBase.Add(55 * time.Minute))
	assert.Equal(t, int64(900), timer.PausedDuration)
}

func TestFinalizePause_KeepsStatus(t *testing.T) {
	timer := runningTimer(timerBase)
	timer.Pause(timerBase.Add(30 * time.Minute))

	timer.FinalizePause(timerBase.Add(40 * time.Minute))
	assert.Equal(t, int64(600), timer.PausedDuration)
	assert.Nil(t, timer.PausedAt)
	assert.Equal(t, TimerPaused, timer.Status, "finalize must not flip the timer back to running")
}

func TestFinalizePause_NoopWithoutPendingPause(t *testing.T) {
	timer := runningTimer(timerBase)
	timer.PausedDuration = 120

	timer.FinalizePause(timerBase.Add(time.Hour))
	assert.Equal(t, int64(120), timer.PausedDuration)
}

func TestElapsed_FullLifecycleScenario(t *testing.T) {
	// Start at T0, pause at T0+1800s, resume at T0+2400s, measure at T0+5400s.
	timer := runningTimer(timerBase)
	timer.Pause(timerBase.Add(1800 * time.Second))
	timer.Resume(timerBase.Add(2400 * time.Second))

	assert.Equal(t, int64(600), timer.PausedDuration)
	assert.Equal(t, int64(4800), timer.ElapsedSeconds(timerBase.Add(5400*time.Second)))
	assert.InDelta(t, 1.3333, timer.ElapsedHours(timerBase.Add(5400*time.Second)), 0.0001)
}
