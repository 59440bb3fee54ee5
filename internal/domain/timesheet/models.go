package timesheet

import "time"

type Timesheet struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	PeriodKey  string     `json:"periodKey,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Status     Status     `json:"status"`

	WorkingDays   int     `json:"workingDays"`
	Leaves        int     `json:"leaves"`
	Holidays      int     `json:"holidays"`
	Emergencies   int     `json:"emergencies"`
	Absences      int     `json:"absences"`
	TotalSalary   float64 `json:"totalSalary"`
	AdvancesTotal float64 `json:"advancesTotal"`
	NetPayable    float64 `json:"netPayable"`

	CreatedByID       string `json:"createdById"`
	CreatedByName     string `json:"createdByName"`
	AssignedToID      string `json:"assignedToId,omitempty"`
	AssignedToName    string `json:"assignedToName,omitempty"`
	ApprovedByID      string `json:"approvedById,omitempty"`
	ApprovedByName    string `json:"approvedByName,omitempty"`
	RejectionReason   string `json:"rejectionReason,omitempty"`
	ClarificationNote string `json:"clarificationNote,omitempty"`

	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Entries []DailyEntry `json:"entries,omitempty"`
}

type DailyEntry struct {
	ID          string    `json:"id"`
	TimesheetID string    `json:"timesheetId"`
	EmployeeID  string    `json:"employeeId"`
	EntryDate   time.Time `json:"entryDate"`

	ClientID   string `json:"clientId,omitempty"`
	ClientName string `json:"clientName"`
	JobRole    string `json:"jobRole"`
	Status     string `json:"status"`

	HalfDay       bool   `json:"halfDay"`
	PublicHoliday bool   `json:"publicHoliday"`
	HolidayName   string `json:"holidayName,omitempty"`
	// Weekend is derived from EntryDate on load, never stored.
	Weekend bool `json:"weekend"`

	EmergencyDuty   bool    `json:"emergencyDuty"`
	EmergencyType   string  `json:"emergencyType,omitempty"`
	EmergencyClient string  `json:"emergencyClient,omitempty"`
	EmergencyAmount float64 `json:"emergencyAmount,omitempty"`

	ManualOverride bool    `json:"manualOverride"`
	ManualAmount   float64 `json:"manualAmount,omitempty"`

	DailySalary float64 `json:"dailySalary"`
	Notes       string  `json:"notes,omitempty"`

	CreatedByID   string    `json:"createdById,omitempty"`
	CreatedByName string    `json:"createdByName,omitempty"`
	UpdatedByID   string    `json:"updatedById,omitempty"`
	UpdatedByName string    `json:"updatedByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Conflict is a daily entry that already occupies a candidate date,
// annotated with its owning timesheet so callers can present every
// collision to the user.
type Conflict struct {
	TimesheetID string     `json:"timesheetId"`
	Entry       DailyEntry `json:"entry"`
}

// EntryInput is the caller-supplied portion of a daily entry.
type EntryInput struct {
	Date            time.Time `json:"date"`
	ClientID        string    `json:"clientId"`
	ClientName      string    `json:"clientName"`
	JobRole         string    `json:"jobRole"`
	Status          string    `json:"status"`
	HalfDay         bool      `json:"halfDay"`
	PublicHoliday   bool      `json:"publicHoliday"`
	HolidayName     string    `json:"holidayName"`
	EmergencyDuty   bool      `json:"emergencyDuty"`
	EmergencyType   string    `json:"emergencyType"`
	EmergencyClient string    `json:"emergencyClient"`
	EmergencyAmount float64   `json:"emergencyAmount"`
	ManualOverride  bool      `json:"manualOverride"`
	ManualAmount    float64   `json:"manualAmount"`
	Notes           string    `json:"notes"`
}

type CreateInput struct {
	EmployeeID string     `json:"employeeId"`
	PeriodKey  string     `json:"periodKey"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
}
