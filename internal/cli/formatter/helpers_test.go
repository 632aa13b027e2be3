package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/consonum/timetrack/internal/domain"
	"github.com/consonum/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"zero", 0, "00:00:00"},
		{"seconds only", 42, "00:00:42"},
		{"minutes", 600, "00:10:00"},
		{"mixed", 4800, "01:20:00"},
		{"over a day keeps counting hours", 90061, "25:01:01"},
		{"negative clamps", -5, "00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.seconds))
		})
	}
}

func TestFormatHoursAndMoney(t *testing.T) {
	assert.Equal(t, "1.33h", FormatHours(1.3333))
	assert.Equal(t, "0.00h", FormatHours(0))
	assert.Equal(t, "CHF 200.00", FormatMoney("CHF", 200))
	assert.Equal(t, "EUR 99.99", FormatMoney("EUR", 99.99))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)))
}

func TestFormatEntryTable_ResolvesReferences(t *testing.T) {
	proj := testutil.NewTestProject("Website")
	cat := testutil.NewTestCategory(proj.ID, "DEV", "Development")
	entry := testutil.NewTestEntry("alice", proj.ID,
		testutil.WithEntryTimes(
			time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)),
		testutil.WithEntryCategory(cat.ID))

	out := FormatEntryTable(
		[]*domain.TimeEntry{entry},
		map[string]*domain.Project{proj.ID: proj},
		map[string]*domain.Category{cat.ID: cat},
		"CHF")

	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "DEV")
	assert.Contains(t, out, "2026-03-02")
	assert.Contains(t, out, "2.00h")
	assert.Contains(t, out, "Total (CHF)")
}

func TestFormatTimerStatus(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	start := now.Add(-80 * time.Minute)
	timer := &domain.ActiveTimer{
		ID:        "t1",
		UserID:    "alice",
		ProjectID: "p1",
		StartedAt: start,
		Status:    domain.TimerRunning,
	}
	proj := testutil.NewTestProject("Website")

	out := FormatTimerStatus(TimerStatusData{Timer: timer, Project: proj, Now: now})
	assert.Contains(t, out, "01:20:00")
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "Running")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable([]string{"A", "Long Header"}, [][]string{{"x", "y"}, {"longer", "z"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
}
