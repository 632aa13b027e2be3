package domain

import (
	"fmt"
	"time"
)

// MaxCategoryCodeLen bounds the short code used to reference a category
// within its project (e.g. "DEV", "DESIGN").
const MaxCategoryCodeLen = 20

// Category is a billing sub-bucket of work within a Project. Codes are
// unique per project; SortOrder defines display order and need not be unique.
type Category struct {
	ID          string
	ProjectID   string
	Code        string
	Name        string
	Description string
	SortOrder   int
	IsBillable  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the invariants a category must hold before persisting.
func (c *Category) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("category project reference is required")
	}
	if c.Code == "" {
		return fmt.Errorf("category code is required")
	}
	if len(c.Code) > MaxCategoryCodeLen {
		return fmt.Errorf("category code %q exceeds %d characters", c.Code, MaxCategoryCodeLen)
	}
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	return nil
}
