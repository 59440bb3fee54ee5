package timesheet

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const timesheetColumns = `
    id, employee_id, period_key, start_date, end_date, status,
    working_days, leaves, holidays, emergencies, absences,
    total_salary, advances_total, net_payable,
    created_by_id, created_by_name, assigned_to_id, assigned_to_name,
    approved_by_id, approved_by_name, rejection_reason, clarification_note,
    submitted_at, approved_at, created_at, updated_at`

const entryColumns = `
    id, timesheet_id, employee_id, entry_date, client_id, client_name,
    job_role, status, half_day, public_holiday, holiday_name,
    emergency_duty, emergency_type, emergency_client, emergency_amount,
    manual_override, manual_amount, daily_salary, notes,
    created_by_id, created_by_name, updated_by_id, updated_by_name,
    created_at, updated_at`

// aggregateSQL recomputes the cached aggregate fields of one timesheet
// from its entries and advances. Runs inside the same transaction as the
// entry write so the pair is a unit.
const aggregateSQL = `
  WITH agg AS (
    SELECT
      COUNT(*) FILTER (WHERE status = 'present') AS working_days,
      COUNT(*) FILTER (WHERE status = 'leave') AS leaves,
      COUNT(*) FILTER (WHERE status = 'holiday') AS holidays,
      COUNT(*) FILTER (WHERE emergency_duty) AS emergencies,
      COUNT(*) FILTER (WHERE status = 'absent') AS absences,
      COALESCE(SUM(daily_salary), 0) AS total_salary
    FROM daily_entries
    WHERE timesheet_id = $1
  ), adv AS (
    SELECT COALESCE(SUM(amount), 0) AS advances_total
    FROM advances
    WHERE timesheet_id = $1
  )
  UPDATE timesheets
  SET working_days = agg.working_days,
      leaves = agg.leaves,
      holidays = agg.holidays,
      emergencies = agg.emergencies,
      absences = agg.absences,
      total_salary = agg.total_salary,
      advances_total = adv.advances_total,
      net_payable = agg.total_salary - adv.advances_total,
      updated_at = now()
  FROM agg, adv
  WHERE timesheets.id = $1`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimesheet(row rowScanner) (Timesheet, error) {
	var ts Timesheet
	var status string
	err := row.Scan(
		&ts.ID, &ts.EmployeeID, &ts.PeriodKey, &ts.StartDate, &ts.EndDate, &status,
		&ts.WorkingDays, &ts.Leaves, &ts.Holidays, &ts.Emergencies, &ts.Absences,
		&ts.TotalSalary, &ts.AdvancesTotal, &ts.NetPayable,
		&ts.CreatedByID, &ts.CreatedByName, &ts.AssignedToID, &ts.AssignedToName,
		&ts.ApprovedByID, &ts.ApprovedByName, &ts.RejectionReason, &ts.ClarificationNote,
		&ts.SubmittedAt, &ts.ApprovedAt, &ts.CreatedAt, &ts.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Timesheet{}, ErrNotFound
	}
	if err != nil {
		return Timesheet{}, err
	}
	ts.Status = Status(status)
	return ts, nil
}

func scanEntry(row rowScanner) (DailyEntry, error) {
	var entry DailyEntry
	err := row.Scan(
		&entry.ID, &entry.TimesheetID, &entry.EmployeeID, &entry.EntryDate,
		&entry.ClientID, &entry.ClientName, &entry.JobRole, &entry.Status,
		&entry.HalfDay, &entry.PublicHoliday, &entry.HolidayName,
		&entry.EmergencyDuty, &entry.EmergencyType, &entry.EmergencyClient, &entry.EmergencyAmount,
		&entry.ManualOverride, &entry.ManualAmount, &entry.DailySalary, &entry.Notes,
		&entry.CreatedByID, &entry.CreatedByName, &entry.UpdatedByID, &entry.UpdatedByName,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return DailyEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return DailyEntry{}, err
	}
	return entry, nil
}

func (s *Store) CreateTimesheet(ctx context.Context, ts Timesheet) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO timesheets (employee_id, period_key, start_date, end_date, status, created_by_id, created_by_name)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, ts.EmployeeID, ts.PeriodKey, ts.StartDate, ts.EndDate, string(ts.Status), ts.CreatedByID, ts.CreatedByName).Scan(&id)
	if err != nil {
		return "", translatePgError(err)
	}
	return id, nil
}

func (s *Store) GetTimesheet(ctx context.Context, id string) (Timesheet, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+timesheetColumns+" FROM timesheets WHERE id = $1", id)
	return scanTimesheet(row)
}

func (s *Store) ListTimesheets(ctx context.Context, employeeID string, limit, offset int) ([]Timesheet, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+timesheetColumns+`
    FROM timesheets
    WHERE ($1 = '' OR employee_id::text = $1)
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, ts)
	}
	return sheets, rows.Err()
}

func (s *Store) CountTimesheets(ctx context.Context, employeeID string) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM timesheets WHERE ($1 = '' OR employee_id::text = $1)
  `, employeeID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateTimesheetStatus(ctx context.Context, ts Timesheet) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE timesheets
    SET status = $2,
        assigned_to_id = $3,
        assigned_to_name = $4,
        approved_by_id = $5,
        approved_by_name = $6,
        rejection_reason = $7,
        clarification_note = $8,
        submitted_at = $9,
        approved_at = $10,
        updated_at = now()
    WHERE id = $1
  `, ts.ID, string(ts.Status), ts.AssignedToID, ts.AssignedToName,
		ts.ApprovedByID, ts.ApprovedByName, ts.RejectionReason, ts.ClarificationNote,
		ts.SubmittedAt, ts.ApprovedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTimesheet removes the timesheet; its entries go with it via the
// foreign key cascade.
func (s *Store) DeleteTimesheet(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM timesheets WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListEntries(ctx context.Context, timesheetID string) ([]DailyEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+entryColumns+`
    FROM daily_entries
    WHERE timesheet_id = $1
    ORDER BY entry_date
  `, timesheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []DailyEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) GetEntry(ctx context.Context, timesheetID string, date time.Time) (DailyEntry, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+entryColumns+`
    FROM daily_entries
    WHERE timesheet_id = $1 AND entry_date = $2
  `, timesheetID, date)
	return scanEntry(row)
}

func (s *Store) FindEntriesByDate(ctx context.Context, employeeID string, date time.Time, excludeTimesheetID string) ([]Conflict, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+entryColumns+`
    FROM daily_entries
    WHERE employee_id = $1 AND entry_date = $2 AND timesheet_id::text <> $3
    ORDER BY created_at
  `, employeeID, date, excludeTimesheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conflicts []Conflict
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, Conflict{TimesheetID: entry.TimesheetID, Entry: entry})
	}
	return conflicts, rows.Err()
}

func (s *Store) SaveEntry(ctx context.Context, entry DailyEntry, replaceDate *time.Time) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if replaceDate != nil {
		if _, err := tx.Exec(ctx, `
      DELETE FROM daily_entries WHERE timesheet_id = $1 AND entry_date = $2
    `, entry.TimesheetID, *replaceDate); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO daily_entries (
      timesheet_id, employee_id, entry_date, client_id, client_name, job_role,
      status, half_day, public_holiday, holiday_name,
      emergency_duty, emergency_type, emergency_client, emergency_amount,
      manual_override, manual_amount, daily_salary, notes,
      created_by_id, created_by_name, updated_by_id, updated_by_name
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
    ON CONFLICT (timesheet_id, entry_date) DO UPDATE SET
      client_id = EXCLUDED.client_id,
      client_name = EXCLUDED.client_name,
      job_role = EXCLUDED.job_role,
      status = EXCLUDED.status,
      half_day = EXCLUDED.half_day,
      public_holiday = EXCLUDED.public_holiday,
      holiday_name = EXCLUDED.holiday_name,
      emergency_duty = EXCLUDED.emergency_duty,
      emergency_type = EXCLUDED.emergency_type,
      emergency_client = EXCLUDED.emergency_client,
      emergency_amount = EXCLUDED.emergency_amount,
      manual_override = EXCLUDED.manual_override,
      manual_amount = EXCLUDED.manual_amount,
      daily_salary = EXCLUDED.daily_salary,
      notes = EXCLUDED.notes,
      updated_by_id = EXCLUDED.updated_by_id,
      updated_by_name = EXCLUDED.updated_by_name,
      updated_at = now()
  `, entry.TimesheetID, entry.EmployeeID, entry.EntryDate, entry.ClientID, entry.ClientName, entry.JobRole,
		entry.Status, entry.HalfDay, entry.PublicHoliday, entry.HolidayName,
		entry.EmergencyDuty, entry.EmergencyType, entry.EmergencyClient, entry.EmergencyAmount,
		entry.ManualOverride, entry.ManualAmount, entry.DailySalary, entry.Notes,
		entry.CreatedByID, entry.CreatedByName, entry.UpdatedByID, entry.UpdatedByName); err != nil {
		return translatePgError(err)
	}

	if _, err := tx.Exec(ctx, aggregateSQL, entry.TimesheetID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) DeleteEntry(ctx context.Context, timesheetID string, date time.Time) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    DELETE FROM daily_entries WHERE timesheet_id = $1 AND entry_date = $2
  `, timesheetID, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	if _, err := tx.Exec(ctx, aggregateSQL, timesheetID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
