// Package export renders entry listings for consumption outside the tool.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/consonum/timetrack/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// WriteEntriesCSV writes the given entries as CSV, one row per entry in the
// order supplied. Projects and categories are resolved through the provided
// maps; an entry whose category is missing from the map is rendered
// uncategorized rather than failing the whole export.
func WriteEntriesCSV(
	w io.Writer,
	currency string,
	entries []*domain.TimeEntry,
	projects map[string]*domain.Project,
	categories map[string]*domain.Category,
) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Date", "Start Time", "End Time", "Duration (h)",
		"Project", "Category", "Description",
		fmt.Sprintf("Rate (%s)", currency),
		fmt.Sprintf("Total (%s)", currency),
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range entries {
		projectName := e.ProjectID
		if p, ok := projects[e.ProjectID]; ok {
			projectName = p.Name
		}

		var categoryLabel string
		if e.CategoryID != nil {
			if c, ok := categories[*e.CategoryID]; ok {
				categoryLabel = fmt.Sprintf("%s - %s", c.Code, c.Name)
			}
		}

		var endTime string
		if e.EndTime != nil {
			endTime = e.EndTime.Format(timeLayout)
		}

		row := []string{
			e.Date.Format(dateLayout),
			e.StartTime.Format(timeLayout),
			endTime,
			fmt.Sprintf("%.2f", e.DurationHours),
			projectName,
			categoryLabel,
			e.Description,
			fmt.Sprintf("%.2f", e.HourlyRate),
			fmt.Sprintf("%.2f", e.TotalAmount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
