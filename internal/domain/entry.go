package domain

import (
	"math"
	"time"
)

// MaxDescriptionLen bounds the free-text description on a time entry.
const MaxDescriptionLen = 1000

// TimeEntry is a finalized, billable record of time worked. It is created
// either by stopping an ActiveTimer or by direct manual entry. HourlyRate is
// snapshotted when the entry is created and never re-read from the project
// on later edits.
type TimeEntry struct {
	ID            string
	UserID        string
	ProjectID     string
	CategoryID    *string
	Date          time.Time
	StartTime     time.Time
	EndTime       *time.Time
	DurationHours float64
	HourlyRate    float64
	TotalAmount   float64
	Description   string
	Status        EntryStatus
	InvoiceID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RoundHours rounds a decimal-hour value to the stored precision of four
// decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*10000) / 10000
}

// RoundAmount rounds a monetary value to two decimal places.
func RoundAmount(a float64) float64 {
	return math.Round(a*100) / 100
}

// Recompute derives DurationHours and TotalAmount from the entry's fields.
// When both instants are present the duration is recomputed from them,
// overriding any manually supplied value. The amount is always the product
// of duration and rate, so it never goes stale when either side changes.
// Recompute is idempotent and must be applied on every create and update.
func (e *TimeEntry) Recompute() {
	// The amount is computed from the full-precision duration before the
	// 4-decimal rounding is applied, so repeated saves stay idempotent and
	// a 4800s entry at 150.00/h yields exactly 200.00.
	hours := e.DurationHours
	if e.EndTime != nil {
		hours = e.EndTime.Sub(e.StartTime).Seconds() / 3600
		e.DurationHours = RoundHours(hours)
	}
	e.TotalAmount = RoundAmount(hours * e.HourlyRate)
}
