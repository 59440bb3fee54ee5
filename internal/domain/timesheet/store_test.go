package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var entryRowColumns = []string{
	"id", "timesheet_id", "employee_id", "entry_date", "client_id", "client_name",
	"job_role", "status", "half_day", "public_holiday", "holiday_name",
	"emergency_duty", "emergency_type", "emergency_client", "emergency_amount",
	"manual_override", "manual_amount", "daily_salary", "notes",
	"created_by_id", "created_by_name", "updated_by_id", "updated_by_name",
	"created_at", "updated_at",
}

func anyInsertArgs() []any {
	args := make([]any, 22)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func entryRow(now time.Time) []any {
	return []any{
		"entry-1", "ts-a", "emp-1", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		"", "Default Client", "Technician", "present", false, false, "",
		false, "", "", 0.0, false, 0.0, 300.0, "",
		"user-1", "Creator", "user-1", "Creator", now, now,
	}
}

func TestTranslatePgError(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: uniqueViolationCode}
	if !errors.Is(translatePgError(uniqueErr), ErrDuplicateDate) {
		t.Fatal("expected unique violation to map to ErrDuplicateDate")
	}

	other := errors.New("connection refused")
	if translatePgError(other) != other {
		t.Fatal("unexpected translation for generic error")
	}
}

func TestGetTimesheetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("FROM timesheets WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	store := NewStore(mock)
	_, err = store.GetTimesheet(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindEntriesByDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM daily_entries").
		WithArgs("emp-1", date, "ts-b").
		WillReturnRows(pgxmock.NewRows(entryRowColumns).AddRow(entryRow(now)...))

	store := NewStore(mock)
	conflicts, err := store.FindEntriesByDate(context.Background(), "emp-1", date, "ts-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %d", len(conflicts))
	}
	if conflicts[0].TimesheetID != "ts-a" {
		t.Fatalf("expected conflict annotated with ts-a, got %s", conflicts[0].TimesheetID)
	}
	if conflicts[0].Entry.DailySalary != 300 {
		t.Fatalf("expected scanned salary 300, got %v", conflicts[0].Entry.DailySalary)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveEntryTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO daily_entries").
		WithArgs(anyInsertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE timesheets").
		WithArgs("ts-a").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	store := NewStore(mock)
	entry := DailyEntry{
		TimesheetID: "ts-a",
		EmployeeID:  "emp-1",
		EntryDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		ClientName:  DefaultClientName,
		Status:      AttendancePresent,
		DailySalary: 300,
	}
	if err := store.SaveEntry(context.Background(), entry, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveEntryUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO daily_entries").
		WithArgs(anyInsertArgs()...).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
	mock.ExpectRollback()

	store := NewStore(mock)
	entry := DailyEntry{TimesheetID: "ts-a", EmployeeID: "emp-1", EntryDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)}
	err = store.SaveEntry(context.Background(), entry, nil)
	if !errors.Is(err, ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate from race backstop, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteEntryNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock pool: %v", err)
	}
	defer mock.Close()

	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM daily_entries").
		WithArgs("ts-a", date).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	store := NewStore(mock)
	err = store.DeleteEntry(context.Background(), "ts-a", date)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
