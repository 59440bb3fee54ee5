package timesheet

import (
	"context"
	"time"
)

// StoreAPI is the persistence contract for timesheets and their daily
// entries. Entry writes and deletes recompute the owning timesheet's
// aggregate fields in the same transaction, so callers can treat the
// pair as a unit.
type StoreAPI interface {
	CreateTimesheet(ctx context.Context, ts Timesheet) (string, error)
	GetTimesheet(ctx context.Context, id string) (Timesheet, error)
	ListTimesheets(ctx context.Context, employeeID string, limit, offset int) ([]Timesheet, error)
	CountTimesheets(ctx context.Context, employeeID string) (int, error)
	UpdateTimesheetStatus(ctx context.Context, ts Timesheet) error
	DeleteTimesheet(ctx context.Context, id string) error

	ListEntries(ctx context.Context, timesheetID string) ([]DailyEntry, error)
	GetEntry(ctx context.Context, timesheetID string, date time.Time) (DailyEntry, error)
	// FindEntriesByDate returns every entry for the employee on the
	// given date, each annotated with its owning timesheet, excluding
	// the timesheet named by excludeTimesheetID (empty string excludes
	// nothing).
	FindEntriesByDate(ctx context.Context, employeeID string, date time.Time, excludeTimesheetID string) ([]Conflict, error)
	// SaveEntry upserts the entry keyed by (timesheet, date). When
	// replaceDate names a different date, the old row is removed in the
	// same transaction (a date change in place).
	SaveEntry(ctx context.Context, entry DailyEntry, replaceDate *time.Time) error
	DeleteEntry(ctx context.Context, timesheetID string, date time.Time) error
}
