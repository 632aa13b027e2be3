package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID          string
	Name        string
	Code        string
	Description string
	Color       string
	Department  string
	HourlyRate  float64
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	BudgetHours *float64
	BudgetAmt   *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the invariants a project must hold before persisting.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.HourlyRate < 0 {
		return fmt.Errorf("hourly rate must not be negative")
	}
	return nil
}
