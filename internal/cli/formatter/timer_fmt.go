package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/consonum/timetrack/internal/domain"
)

// TimerStatusData bundles everything the timer status view needs.
type TimerStatusData struct {
	Timer    *domain.ActiveTimer
	Project  *domain.Project
	Category *domain.Category
	Now      time.Time
}

// FormatTimerStatus renders the active timer as a boxed status card.
func FormatTimerStatus(d TimerStatusData) string {
	var b strings.Builder

	b.WriteString(TimerStatusPill(d.Timer.Status))
	b.WriteString("  ")
	b.WriteString(StyleBold.Render(FormatElapsed(d.Timer.ElapsedSeconds(d.Now))))
	b.WriteString("\n\n")

	project := d.Timer.ProjectID
	if d.Project != nil {
		project = Swatch(d.Project.Color, d.Project.Name)
	}
	b.WriteString(fmt.Sprintf("Project   %s\n", project))

	category := Dim("--")
	if d.Category != nil {
		category = fmt.Sprintf("%s - %s", d.Category.Code, d.Category.Name)
	}
	b.WriteString(fmt.Sprintf("Category  %s\n", category))
	b.WriteString(fmt.Sprintf("Started   %s %s", HumanDate(d.Timer.StartedAt), FormatClock(d.Timer.StartedAt)))

	if d.Timer.PausedDuration > 0 || d.Timer.PausedAt != nil {
		b.WriteString(fmt.Sprintf("\nPaused    %s", FormatElapsed(pausedSeconds(d.Timer, d.Now))))
	}

	return RenderBox("Active Timer", b.String())
}

// pausedSeconds reports total paused time including a still-pending pause.
func pausedSeconds(t *domain.ActiveTimer, now time.Time) int64 {
	total := t.PausedDuration
	if t.PausedAt != nil {
		if pending := int64(now.Sub(*t.PausedAt).Seconds()); pending > 0 {
			total += pending
		}
	}
	return total
}
