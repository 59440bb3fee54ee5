package timesheet

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("timesheet not found")
	ErrEntryNotFound     = errors.New("daily entry not found")
	ErrPermissionDenied  = errors.New("timesheet is not editable by this user")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotDeletable      = errors.New("only draft or rejected timesheets may be deleted")
	ErrDuplicateDate     = errors.New("an entry already exists for this employee and date")
)

// ValidationError reports a bad input field before any write is
// attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError carries every entry that already occupies the candidate
// date. The write must be blocked and the conflicts surfaced; resolution
// is manual.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate entry: %d conflicting entries for this date", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrDuplicateDate
}
