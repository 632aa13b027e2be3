package repository

import (
	"context"
	"testing"
	"time"

	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timerTestSetup(t *testing.T) (*SQLiteTimerRepo, string, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db, testutil.TestTables)
	catRepo := NewSQLiteCategoryRepo(db, testutil.TestTables)

	proj := testutil.NewTestProject("TimerProj")
	require.NoError(t, projRepo.Create(ctx, proj))
	cat := testutil.NewTestCategory(proj.ID, "DEV", "Development")
	require.NoError(t, catRepo.Create(ctx, cat))

	return NewSQLiteTimerRepo(db, testutil.TestTables), proj.ID, cat.ID
}

func newTimer(userID, projectID, categoryID string, start time.Time) *domain.ActiveTimer {
	return &domain.ActiveTimer{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProjectID:  projectID,
		CategoryID: categoryID,
		StartedAt:  start,
		Status:     domain.TimerRunning,
		CreatedAt:  start,
		UpdatedAt:  start,
	}
}

func TestTimerRepo_CreateAndGetByUser(t *testing.T) {
	repo, projID, catID := timerTestSetup(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	timer := newTimer("alice", projID, catID, start)
	require.NoError(t, repo.Create(ctx, timer))

	fetched, err := repo.GetByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, timer.ID, fetched.ID)
	assert.Equal(t, domain.TimerRunning, fetched.Status)
	assert.True(t, fetched.StartedAt.Equal(start))
	assert.Nil(t, fetched.PausedAt)
	assert.Equal(t, int64(0), fetched.PausedDuration)
}

func TestTimerRepo_GetByUser_NotFound(t *testing.T) {
	repo, _, _ := timerTestSetup(t)

	_, err := repo.GetByUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimerRepo_OneTimerPerUser(t *testing.T) {
	repo, projID, catID := timerTestSetup(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newTimer("alice", projID, catID, start)))

	err := repo.Create(ctx, newTimer("alice", projID, catID, start.Add(time.Minute)))
	assert.ErrorIs(t, err, ErrDuplicate, "second timer for the same user must be rejected by the constraint")

	// A different user is unaffected.
	require.NoError(t, repo.Create(ctx, newTimer("bob", projID, catID, start)))
}

func TestTimerRepo_UpdatePersistsPauseBookkeeping(t *testing.T) {
	repo, projID, catID := timerTestSetup(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	timer := newTimer("alice", projID, catID, start)
	require.NoError(t, repo.Create(ctx, timer))

	timer.Pause(start.Add(30 * time.Minute))
	require.NoError(t, repo.Update(ctx, timer))

	fetched, err := repo.GetByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TimerPaused, fetched.Status)
	require.NotNil(t, fetched.PausedAt)
	assert.True(t, fetched.PausedAt.Equal(start.Add(30*time.Minute)))

	fetched.Resume(start.Add(40 * time.Minute))
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TimerRunning, again.Status)
	assert.Nil(t, again.PausedAt)
	assert.Equal(t, int64(600), again.PausedDuration)
}

func TestTimerRepo_Delete(t *testing.T) {
	repo, projID, catID := timerTestSetup(t)
	ctx := context.Background()

	timer := newTimer("alice", projID, catID, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, timer))
	require.NoError(t, repo.Delete(ctx, timer.ID))

	_, err := repo.GetByUser(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, timer.ID), ErrNotFound)
}
