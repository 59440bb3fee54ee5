package timesheet

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey formats a date the way entries are keyed in the store and API.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(dateKeyLayout, key)
}

// IsWeekend is purely day-of-week based, with no locale or holiday
// calendar awareness.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// HolidayCalendar maps date keys to holiday names. A nil calendar is
// valid; classification then falls back to the built-in fixed list.
type HolidayCalendar map[string]string

// fixedHolidays is the built-in fallback list of fixed national holidays
// for the 2024 reference year.
var fixedHolidays = HolidayCalendar{
	"2024-01-01": "New Year's Day",
	"2024-01-26": "Republic Day",
	"2024-05-01": "Labour Day",
	"2024-08-15": "Independence Day",
	"2024-10-02": "Gandhi Jayanti",
	"2024-12-25": "Christmas Day",
}

// Holiday reports whether the date is a public holiday, preferring the
// caller-supplied calendar over the built-in fallback.
func (c HolidayCalendar) Holiday(t time.Time) (string, bool) {
	key := DateKey(t)
	if name, ok := c[key]; ok {
		return name, true
	}
	name, ok := fixedHolidays[key]
	return name, ok
}

type DayClass struct {
	Weekend     bool
	Holiday     bool
	HolidayName string
}

// Classify is a pure lookup with no side effects; weekend and holiday
// status are independent of each other and of pay.
func (c HolidayCalendar) Classify(t time.Time) DayClass {
	name, holiday := c.Holiday(t)
	return DayClass{
		Weekend:     IsWeekend(t),
		Holiday:     holiday,
		HolidayName: name,
	}
}
