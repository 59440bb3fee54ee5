package advance

import "time"

// Advance is a cash advance owned by finance; this engine only reads
// and sums them against the timesheet's total salary.
type Advance struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	TimesheetID string    `json:"timesheetId,omitempty"`
	Amount      float64   `json:"amount"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
