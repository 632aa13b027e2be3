package formatter

import (
	"fmt"

	"github.com/consonum/timetrack/internal/domain"
)

// FormatEntryTable renders a listing of time entries. Project and category
// references are resolved through the provided maps; unresolvable references
// fall back to truncated IDs so a partially loaded view still renders.
func FormatEntryTable(
	entries []*domain.TimeEntry,
	projects map[string]*domain.Project,
	categories map[string]*domain.Category,
	currency string,
) string {
	headers := []string{"Date", "Start", "End", "Duration", "Project", "Category", "Status", fmt.Sprintf("Total (%s)", currency)}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		projectName := TruncID(e.ProjectID)
		if p, ok := projects[e.ProjectID]; ok {
			projectName = Swatch(p.Color, p.Name)
		}

		categoryLabel := Dim("--")
		if e.CategoryID != nil {
			if c, ok := categories[*e.CategoryID]; ok {
				categoryLabel = c.Code
			} else {
				categoryLabel = TruncID(*e.CategoryID)
			}
		}

		end := Dim("--")
		if e.EndTime != nil {
			end = FormatClock(*e.EndTime)
		}

		rows = append(rows, []string{
			e.Date.Format("2006-01-02"),
			FormatClock(e.StartTime),
			end,
			FormatHours(e.DurationHours),
			projectName,
			categoryLabel,
			EntryStatusPill(e.Status),
			fmt.Sprintf("%.2f", e.TotalAmount),
		})
	}

	return RenderTable(headers, rows)
}

// FormatEntryDetail renders a single entry with its description, for
// confirmation output after create or update.
func FormatEntryDetail(e *domain.TimeEntry, currency string) string {
	end := "--"
	if e.EndTime != nil {
		end = FormatClock(*e.EndTime)
	}
	lines := fmt.Sprintf("%s  %s–%s  %s  %s",
		e.Date.Format("2006-01-02"),
		FormatClock(e.StartTime), end,
		FormatHours(e.DurationHours),
		FormatMoney(currency, e.TotalAmount))
	if e.Description != "" {
		lines += "\n" + Dim(e.Description)
	}
	return lines
}
