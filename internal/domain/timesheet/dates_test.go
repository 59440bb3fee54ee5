package timesheet

import (
	"testing"
	"time"
)

func day(value string) time.Time {
	t, err := ParseDateKey(value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsWeekendDayOfWeekOnly(t *testing.T) {
	if !IsWeekend(day("2024-03-09")) {
		t.Fatal("2024-03-09 is a Saturday")
	}
	if !IsWeekend(day("2024-03-10")) {
		t.Fatal("2024-03-10 is a Sunday")
	}
	if IsWeekend(day("2024-03-11")) {
		t.Fatal("2024-03-11 is a Monday")
	}
	// holiday status must not leak into weekend classification
	if IsWeekend(day("2024-08-15")) {
		t.Fatal("2024-08-15 is a Thursday regardless of being a holiday")
	}
}

func TestHolidayFallbackList(t *testing.T) {
	var cal HolidayCalendar
	name, ok := cal.Holiday(day("2024-01-26"))
	if !ok || name != "Republic Day" {
		t.Fatalf("expected built-in Republic Day, got %q %v", name, ok)
	}
	if _, ok := cal.Holiday(day("2024-03-11")); ok {
		t.Fatal("2024-03-11 is not a holiday")
	}
}

func TestHolidayCallerCalendarWins(t *testing.T) {
	cal := HolidayCalendar{
		"2024-03-11": "Company Foundation Day",
		"2024-01-26": "Renamed Day",
	}
	name, ok := cal.Holiday(day("2024-03-11"))
	if !ok || name != "Company Foundation Day" {
		t.Fatalf("expected caller-supplied holiday, got %q %v", name, ok)
	}
	name, _ = cal.Holiday(day("2024-01-26"))
	if name != "Renamed Day" {
		t.Fatalf("caller calendar must shadow the fallback, got %q", name)
	}
}

func TestClassify(t *testing.T) {
	var cal HolidayCalendar
	class := cal.Classify(day("2024-08-15"))
	if class.Weekend {
		t.Fatal("Thursday is not a weekend")
	}
	if !class.Holiday || class.HolidayName != "Independence Day" {
		t.Fatalf("unexpected classification: %+v", class)
	}

	class = cal.Classify(day("2024-03-10"))
	if !class.Weekend || class.Holiday {
		t.Fatalf("expected plain weekend, got %+v", class)
	}
}
