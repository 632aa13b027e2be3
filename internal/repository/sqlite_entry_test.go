package repository

import (
	"context"
	"testing"
	"time"

	"github.com/consonum/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryTestSetup(t *testing.T) (*SQLiteEntryRepo, string, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db, testutil.TestTables)
	p1 := testutil.NewTestProject("EntryProj")
	p2 := testutil.NewTestProject("OtherProj")
	require.NoError(t, projRepo.Create(ctx, p1))
	require.NoError(t, projRepo.Create(ctx, p2))

	return NewSQLiteEntryRepo(db, testutil.TestTables), p1.ID, p2.ID
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestEntryRepo_CreateAndGetForUser(t *testing.T) {
	repo, projID, _ := entryTestSetup(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry("alice", projID,
		testutil.WithEntryTimes(at(2026, 3, 2, 9), at(2026, 3, 2, 11)),
		testutil.WithEntryDescription("Implemented login flow"))
	require.NoError(t, repo.Create(ctx, entry))

	fetched, err := repo.GetForUser(ctx, entry.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2.0, fetched.DurationHours)
	assert.Equal(t, 300.00, fetched.TotalAmount)
	assert.Equal(t, "Implemented login flow", fetched.Description)
	assert.True(t, fetched.Date.Equal(day(2026, 3, 2)))
}

func TestEntryRepo_GetForUser_OtherUserIsNotFound(t *testing.T) {
	repo, projID, _ := entryTestSetup(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry("alice", projID)
	require.NoError(t, repo.Create(ctx, entry))

	_, err := repo.GetForUser(ctx, entry.ID, "mallory")
	assert.ErrorIs(t, err, ErrNotFound, "another user's entry must look nonexistent")
}

func TestEntryRepo_List_OrderedByDateThenStartDesc(t *testing.T) {
	repo, projID, _ := entryTestSetup(t)
	ctx := context.Background()

	early := testutil.NewTestEntry("alice", projID,
		testutil.WithEntryTimes(at(2026, 3, 2, 9), at(2026, 3, 2, 10)))
	late := testutil.NewTestEntry("alice", projID,
		testutil.WithEntryTimes(at(2026, 3, 2, 14), at(2026, 3, 2, 15)))
	nextDay := testutil.NewTestEntry("alice", projID,
		testutil.WithEntryTimes(at(2026, 3, 3, 8), at(2026, 3, 3, 9)))

	require.NoError(t, repo.Create(ctx, early))
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, nextDay))

	entries, err := repo.List(ctx, "alice", EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, nextDay.ID, entries[0].ID)
	assert.Equal(t, late.ID, entries[1].ID)
	assert.Equal(t, early.ID, entries[2].ID)
}

func TestEntryRepo_List_DateRangeInclusive(t *testing.T) {
	repo, projID, _ := entryTestSetup(t)
	ctx := context.Background()

	for d := 1; d <= 5; d++ {
		e := testutil.NewTestEntry("alice", projID,
			testutil.WithEntryTimes(at(2026, 3, d, 9), at(2026, 3, d, 10)))
		require.NoError(t, repo.Create(ctx, e))
	}

	from := day(2026, 3, 2)
	to := day(2026, 3, 4)
	entries, err := repo.List(ctx, "alice", EntryFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Date.Equal(day(2026, 3, 4)), "upper bound is inclusive")
	assert.True(t, entries[2].Date.Equal(day(2026, 3, 2)), "lower bound is inclusive")
}

func TestEntryRepo_List_ProjectFilter(t *testing.T) {
	repo, p1, p2 := entryTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestEntry("alice", p1)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEntry("alice", p2)))

	all, err := repo.List(ctx, "alice", EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "empty project filter means all projects")

	only, err := repo.List(ctx, "alice", EntryFilter{ProjectID: p1})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, p1, only[0].ProjectID)
}

func TestEntryRepo_List_ScopedToUser(t *testing.T) {
	repo, projID, _ := entryTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestEntry("alice", projID)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEntry("bob", projID)))

	entries, err := repo.List(ctx, "alice", EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].UserID)
}

func TestEntryRepo_Update(t *testing.T) {
	repo, projID, _ := entryTestSetup(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry("alice", projID,
		testutil.WithEntryTimes(at(2026, 3, 2, 9), at(2026, 3, 2, 10)))
	require.NoError(t, repo.Create(ctx, entry))

	newEnd := at(2026, 3, 2, 12)
	entry.EndTime = &newEnd
	entry.Recompute()
	require.NoError(t, repo.Update(ctx, entry))

	fetched, err := repo.GetForUser(ctx, entry.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3.0, fetched.DurationHours)
	assert.Equal(t, 450.00, fetched.TotalAmount)
}

func TestEntryRepo_Update_OtherUserIsNotFound(t *testing.T) {
	repo, projID, _ := entryTestSetup(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry("alice", projID)
	require.NoError(t, repo.Create(ctx, entry))

	hijacked := *entry
	hijacked.UserID = "mallory"
	assert.ErrorIs(t, repo.Update(ctx, &hijacked), ErrNotFound)
}

func TestEntryRepo_Delete_ScopedToOwner(t *testing.T) {
	repo, projID, _ := entryTestSetup(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry("alice", projID)
	require.NoError(t, repo.Create(ctx, entry))

	assert.ErrorIs(t, repo.Delete(ctx, entry.ID, "mallory"), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, entry.ID, "alice"))

	_, err := repo.GetForUser(ctx, entry.ID, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryRepo_NullableCategoryRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db, testutil.TestTables)
	catRepo := NewSQLiteCategoryRepo(db, testutil.TestTables)
	repo := NewSQLiteEntryRepo(db, testutil.TestTables)

	proj := testutil.NewTestProject("P")
	require.NoError(t, projRepo.Create(ctx, proj))
	cat := testutil.NewTestCategory(proj.ID, "DEV", "Development")
	require.NoError(t, catRepo.Create(ctx, cat))

	with := testutil.NewTestEntry("alice", proj.ID, testutil.WithEntryCategory(cat.ID))
	without := testutil.NewTestEntry("alice", proj.ID)
	require.NoError(t, repo.Create(ctx, with))
	require.NoError(t, repo.Create(ctx, without))

	fetchedWith, err := repo.GetForUser(ctx, with.ID, "alice")
	require.NoError(t, err)
	require.NotNil(t, fetchedWith.CategoryID)
	assert.Equal(t, cat.ID, *fetchedWith.CategoryID)

	fetchedWithout, err := repo.GetForUser(ctx, without.ID, "alice")
	require.NoError(t, err)
	assert.Nil(t, fetchedWithout.CategoryID)
}
