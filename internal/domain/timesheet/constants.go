package timesheet

const (
	AttendancePresent = "present"
	AttendanceLeave   = "leave"
	AttendanceAbsent  = "absent"
	AttendanceHoliday = "holiday"

	// DefaultClientName is the sentinel client used when an entry does
	// not name one.
	DefaultClientName = "Default Client"

	// salaryDivisorDays is fixed regardless of actual month length.
	salaryDivisorDays = 30
)

var AttendanceStatuses = []string{
	AttendancePresent,
	AttendanceLeave,
	AttendanceAbsent,
	AttendanceHoliday,
}
