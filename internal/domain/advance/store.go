package advance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Advance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, COALESCE(timesheet_id::text, ''), amount, note, created_at
    FROM advances
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []Advance
	for rows.Next() {
		var adv Advance
		if err := rows.Scan(&adv.ID, &adv.EmployeeID, &adv.TimesheetID, &adv.Amount, &adv.Note, &adv.CreatedAt); err != nil {
			return nil, err
		}
		advances = append(advances, adv)
	}
	return advances, rows.Err()
}

func (s *Store) SumForTimesheet(ctx context.Context, timesheetID string) (float64, error) {
	var total float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(amount), 0)
    FROM advances
    WHERE timesheet_id = $1
  `, timesheetID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
