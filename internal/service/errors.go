package service

import (
	"errors"
	"fmt"

	"github.com/consonum/timetrack/internal/repository"
)

// ErrInvalidState is returned when a timer transition is attempted from the
// wrong state, such as pausing an already-paused timer, or when an entry is
// modified after it has been invoiced.
var ErrInvalidState = errors.New("invalid state")

// ErrConflict is returned when an operation loses a uniqueness race, most
// notably two concurrent starts competing for a user's single timer slot.
var ErrConflict = errors.New("conflict")

// ValidationError reports malformed caller input. Field names the offending
// parameter when one can be singled out.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err represents a missing (or foreign-owned)
// record, regardless of which layer produced it.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
