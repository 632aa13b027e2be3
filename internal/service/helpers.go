package service

import (
	"time"

	"github.com/consonum/timetrack/internal/repository"
)

// calendarDate truncates an instant to its UTC calendar day.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// repoFilter translates the service-level filter into the repository's
// shape, folding the "all" sentinel into an unfiltered listing.
func repoFilter(f EntryListFilter) repository.EntryFilter {
	projectID := f.ProjectID
	if projectID == "all" {
		projectID = ""
	}
	return repository.EntryFilter{From: f.From, To: f.To, ProjectID: projectID}
}

// weekStart returns the Monday beginning the week containing t.
func weekStart(t time.Time) time.Time {
	d := calendarDate(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// monthStart returns the first day of the month containing t.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
