package timesheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"timetrack/internal/domain/employee"
	"timetrack/internal/identity"
)

// EmployeeDirectory is the read-only view of employee master data this
// engine needs; the records are owned elsewhere.
type EmployeeDirectory interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
}

type Service struct {
	store     StoreAPI
	employees EmployeeDirectory
	calendar  HolidayCalendar
	now       func() time.Time
}

func NewService(store StoreAPI, employees EmployeeDirectory, calendar HolidayCalendar) *Service {
	return &Service{
		store:     store,
		employees: employees,
		calendar:  calendar,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput, actor identity.Identity) (Timesheet, error) {
	if actor.Unknown() {
		return Timesheet{}, ErrPermissionDenied
	}
	if strings.TrimSpace(input.EmployeeID) == "" {
		return Timesheet{}, &ValidationError{Field: "employeeId", Reason: "required"}
	}
	if input.PeriodKey == "" && (input.StartDate == nil || input.EndDate == nil) {
		return Timesheet{}, &ValidationError{Field: "period", Reason: "either periodKey or startDate/endDate is required"}
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return Timesheet{}, &ValidationError{Field: "endDate", Reason: "must be on or after startDate"}
	}
	if input.PeriodKey != "" {
		if _, err := time.Parse("2006-01", input.PeriodKey); err != nil {
			return Timesheet{}, &ValidationError{Field: "periodKey", Reason: "must be a YYYY-MM month key"}
		}
	}
	if _, err := s.employees.Get(ctx, input.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return Timesheet{}, &ValidationError{Field: "employeeId", Reason: "unknown employee"}
		}
		return Timesheet{}, err
	}

	ts := Timesheet{
		EmployeeID:    input.EmployeeID,
		PeriodKey:     input.PeriodKey,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        StatusDraft,
		CreatedByID:   actor.UserID,
		CreatedByName: actor.DisplayName,
	}
	id, err := s.store.CreateTimesheet(ctx, ts)
	if err != nil {
		return Timesheet{}, err
	}
	return s.Get(ctx, id)
}

// Get returns the timesheet header together with its daily entries.
// Weekend flags are derived from the entry dates on the way out.
func (s *Service) Get(ctx context.Context, id string) (Timesheet, error) {
	ts, err := s.store.GetTimesheet(ctx, id)
	if err != nil {
		return Timesheet{}, err
	}
	entries, err := s.store.ListEntries(ctx, id)
	if err != nil {
		return Timesheet{}, err
	}
	for i := range entries {
		entries[i].Weekend = IsWeekend(entries[i].EntryDate)
	}
	ts.Entries = entries
	return ts, nil
}

func (s *Service) List(ctx context.Context, employeeID string, limit, offset int) ([]Timesheet, int, error) {
	total, err := s.store.CountTimesheets(ctx, employeeID)
	if err != nil {
		return nil, 0, err
	}
	sheets, err := s.store.ListTimesheets(ctx, employeeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return sheets, total, nil
}

// FindConflicts lists every existing entry for the employee on the
// candidate date across all timesheets, minus the one being edited.
// A non-empty result must block the write; conflicts are never resolved
// automatically.
func (s *Service) FindConflicts(ctx context.Context, employeeID string, date time.Time, excludeTimesheetID string) ([]Conflict, error) {
	if date.IsZero() {
		return nil, &ValidationError{Field: "date", Reason: "required"}
	}
	return s.store.FindEntriesByDate(ctx, employeeID, date, excludeTimesheetID)
}

// SaveEntry validates, authorizes, duplicate-checks, prices, and writes
// one daily entry. entryDate is the key under which the entry currently
// lives (for edits); input.Date is authoritative and may move it.
func (s *Service) SaveEntry(ctx context.Context, timesheetID string, entryDate time.Time, input EntryInput, actor identity.Identity) (DailyEntry, error) {
	ts, err := s.store.GetTimesheet(ctx, timesheetID)
	if err != nil {
		return DailyEntry{}, err
	}
	if !CanEdit(ts, actor) {
		return DailyEntry{}, ErrPermissionDenied
	}

	if input.Date.IsZero() {
		input.Date = entryDate
	}
	if input.Date.IsZero() {
		return DailyEntry{}, &ValidationError{Field: "date", Reason: "required"}
	}
	if DateKey(input.Date) > DateKey(s.now()) {
		return DailyEntry{}, &ValidationError{Field: "date", Reason: "future dates are not allowed"}
	}
	if err := s.validateWithinPeriod(ts, input.Date); err != nil {
		return DailyEntry{}, err
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = AttendancePresent
	}
	if !validAttendance(status) {
		return DailyEntry{}, &ValidationError{Field: "status", Reason: "must be one of " + strings.Join(AttendanceStatuses, ", ")}
	}

	existing, err := s.store.GetEntry(ctx, timesheetID, entryDate)
	isNew := errors.Is(err, ErrEntryNotFound)
	if err != nil && !isNew {
		return DailyEntry{}, err
	}
	dateChanged := !isNew && DateKey(existing.EntryDate) != DateKey(input.Date)

	// The duplicate check runs only for new entries or date changes;
	// the timesheet being edited is excluded so same-sheet overwrites
	// stay legal.
	if isNew || dateChanged {
		conflicts, err := s.store.FindEntriesByDate(ctx, ts.EmployeeID, input.Date, ts.ID)
		if err != nil {
			return DailyEntry{}, err
		}
		if len(conflicts) > 0 {
			return DailyEntry{}, &ConflictError{Conflicts: conflicts}
		}
	}

	emp, err := s.employees.Get(ctx, ts.EmployeeID)
	if err != nil {
		return DailyEntry{}, err
	}

	class := s.calendar.Classify(input.Date)
	publicHoliday := input.PublicHoliday || class.Holiday
	holidayName := strings.TrimSpace(input.HolidayName)
	if holidayName == "" {
		holidayName = class.HolidayName
	}
	if publicHoliday {
		// Informational only: the holiday forces the display status but
		// never changes the pay.
		status = AttendanceHoliday
	}

	clientName := strings.TrimSpace(input.ClientName)
	if clientName == "" {
		clientName = DefaultClientName
	}
	jobRole := strings.TrimSpace(input.JobRole)
	if jobRole == "" {
		jobRole = emp.JobRole
	}

	// Absent days keep the amount the same rules produce for present
	// days; callers wanting zero pay for absence set the base salary
	// accordingly.
	salary := ComputeDailySalary(emp.MonthlySalary, PayModifiers{
		HalfDay:         input.HalfDay,
		EmergencyDuty:   input.EmergencyDuty,
		EmergencyAmount: input.EmergencyAmount,
		ManualOverride:  input.ManualOverride,
		ManualAmount:    input.ManualAmount,
	})

	entry := DailyEntry{
		TimesheetID:     ts.ID,
		EmployeeID:      ts.EmployeeID,
		EntryDate:       input.Date,
		ClientID:        strings.TrimSpace(input.ClientID),
		ClientName:      clientName,
		JobRole:         jobRole,
		Status:          status,
		HalfDay:         input.HalfDay,
		PublicHoliday:   publicHoliday,
		HolidayName:     holidayName,
		EmergencyDuty:   input.EmergencyDuty,
		EmergencyType:   strings.TrimSpace(input.EmergencyType),
		EmergencyClient: strings.TrimSpace(input.EmergencyClient),
		EmergencyAmount: input.EmergencyAmount,
		ManualOverride:  input.ManualOverride,
		ManualAmount:    input.ManualAmount,
		DailySalary:     salary,
		Notes:           input.Notes,
		UpdatedByID:     actor.UserID,
		UpdatedByName:   actor.DisplayName,
	}
	if isNew {
		entry.CreatedByID = actor.UserID
		entry.CreatedByName = actor.DisplayName
	} else {
		entry.CreatedByID = existing.CreatedByID
		entry.CreatedByName = existing.CreatedByName
	}

	var replaceDate *time.Time
	if dateChanged {
		prev := existing.EntryDate
		replaceDate = &prev
	}
	if err := s.store.SaveEntry(ctx, entry, replaceDate); err != nil {
		return DailyEntry{}, err
	}

	entry.Weekend = IsWeekend(entry.EntryDate)
	return entry, nil
}

func (s *Service) DeleteEntry(ctx context.Context, timesheetID string, date time.Time, actor identity.Identity) error {
	ts, err := s.store.GetTimesheet(ctx, timesheetID)
	if err != nil {
		return err
	}
	if !CanEdit(ts, actor) {
		return ErrPermissionDenied
	}
	if _, err := s.store.GetEntry(ctx, timesheetID, date); err != nil {
		return err
	}
	return s.store.DeleteEntry(ctx, timesheetID, date)
}

func (s *Service) Submit(ctx context.Context, id string, actor identity.Identity) (Timesheet, error) {
	return s.transition(ctx, id, StatusSubmitted, actor, func(ts *Timesheet) {
		now := s.now()
		ts.SubmittedAt = &now
	})
}

// Assign hands a submitted timesheet to a reviewer. Only admins
// dispatch work; the assignee inherits edit rights from that point on.
func (s *Service) Assign(ctx context.Context, id, assigneeID, assigneeName string, actor identity.Identity) (Timesheet, error) {
	if !actor.IsAdmin() {
		return Timesheet{}, ErrPermissionDenied
	}
	if strings.TrimSpace(assigneeID) == "" && strings.TrimSpace(assigneeName) == "" {
		return Timesheet{}, &ValidationError{Field: "assignee", Reason: "required"}
	}
	return s.transition(ctx, id, StatusAssigned, actor, func(ts *Timesheet) {
		ts.AssignedToID = strings.TrimSpace(assigneeID)
		ts.AssignedToName = strings.TrimSpace(assigneeName)
	})
}

func (s *Service) Approve(ctx context.Context, id string, actor identity.Identity) (Timesheet, error) {
	return s.transition(ctx, id, StatusApproved, actor, func(ts *Timesheet) {
		now := s.now()
		ts.ApprovedByID = actor.UserID
		ts.ApprovedByName = actor.DisplayName
		ts.ApprovedAt = &now
	})
}

func (s *Service) Reject(ctx context.Context, id, reason string, actor identity.Identity) (Timesheet, error) {
	return s.transition(ctx, id, StatusRejected, actor, func(ts *Timesheet) {
		ts.RejectionReason = strings.TrimSpace(reason)
	})
}

func (s *Service) RequestClarification(ctx context.Context, id, note string, actor identity.Identity) (Timesheet, error) {
	return s.transition(ctx, id, StatusClarification, actor, func(ts *Timesheet) {
		ts.ClarificationNote = strings.TrimSpace(note)
	})
}

// Reopen returns a rejected timesheet to draft so its creator can rework
// it.
func (s *Service) Reopen(ctx context.Context, id string, actor identity.Identity) (Timesheet, error) {
	return s.transition(ctx, id, StatusDraft, actor, func(ts *Timesheet) {
		ts.RejectionReason = ""
	})
}

func (s *Service) Delete(ctx context.Context, id string, actor identity.Identity) error {
	ts, err := s.store.GetTimesheet(ctx, id)
	if err != nil {
		return err
	}
	if !CanEdit(ts, actor) {
		return ErrPermissionDenied
	}
	if !ParseStatus(string(ts.Status)).Deletable() {
		return ErrNotDeletable
	}
	return s.store.DeleteTimesheet(ctx, id)
}

func (s *Service) transition(ctx context.Context, id string, target Status, actor identity.Identity, mutate func(*Timesheet)) (Timesheet, error) {
	ts, err := s.store.GetTimesheet(ctx, id)
	if err != nil {
		return Timesheet{}, err
	}
	if !CanEdit(ts, actor) {
		return Timesheet{}, ErrPermissionDenied
	}
	current := ParseStatus(string(ts.Status))
	if !current.CanTransitionTo(target) {
		return Timesheet{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}
	ts.Status = target
	if mutate != nil {
		mutate(&ts)
	}
	if err := s.store.UpdateTimesheetStatus(ctx, ts); err != nil {
		return Timesheet{}, err
	}
	return ts, nil
}

func (s *Service) validateWithinPeriod(ts Timesheet, date time.Time) error {
	key := DateKey(date)
	if ts.StartDate != nil && key < DateKey(*ts.StartDate) {
		return &ValidationError{Field: "date", Reason: "before the timesheet period"}
	}
	if ts.EndDate != nil && key > DateKey(*ts.EndDate) {
		return &ValidationError{Field: "date", Reason: "after the timesheet period"}
	}
	if ts.PeriodKey != "" && !strings.HasPrefix(key, ts.PeriodKey) {
		return &ValidationError{Field: "date", Reason: "outside the timesheet month"}
	}
	return nil
}

func validAttendance(status string) bool {
	for _, candidate := range AttendanceStatuses {
		if status == candidate {
			return true
		}
	}
	return false
}
