package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEntriesCSV(t *testing.T) {
	proj := testutil.NewTestProject("Website", testutil.WithHourlyRate(150.00))
	cat := testutil.NewTestCategory(proj.ID, "DEV", "Development")

	start := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	entry := testutil.NewTestEntry("alice", proj.ID,
		testutil.WithEntryTimes(start, end),
		testutil.WithEntryCategory(cat.ID),
		testutil.WithEntryDescription("Landing page"))

	var buf bytes.Buffer
	err := WriteEntriesCSV(&buf, "CHF",
		[]*domain.TimeEntry{entry},
		map[string]*domain.Project{proj.ID: proj},
		map[string]*domain.Category{cat.ID: cat})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Date", "Start Time", "End Time", "Duration (h)",
		"Project", "Category", "Description", "Rate (CHF)", "Total (CHF)",
	}, records[0])
	assert.Equal(t, []string{
		"2026-03-02", "09:30", "11:00", "1.50",
		"Website", "DEV - Development", "Landing page", "150.00", "225.00",
	}, records[1])
}

func TestWriteEntriesCSV_DraftAndUnknownLookups(t *testing.T) {
	entry := testutil.NewTestEntry("alice", "ghost-project",
		testutil.WithEntryDescription("draft work"))
	entry.EndTime = nil
	entry.DurationHours = 2
	entry.Recompute()

	var buf bytes.Buffer
	err := WriteEntriesCSV(&buf, "EUR", []*domain.TimeEntry{entry}, nil, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Empty(t, row[2], "no end time for a draft")
	assert.Equal(t, "2.00", row[3])
	assert.Equal(t, "ghost-project", row[4], "missing project falls back to its id")
	assert.Empty(t, row[5])
}

func TestWriteEntriesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, "CHF", nil, nil, nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "header only")
}
