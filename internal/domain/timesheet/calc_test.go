package timesheet

import "testing"

func TestBaseDailyFixedDivisor(t *testing.T) {
	if got := BaseDaily(9000); got != 300 {
		t.Fatalf("expected base daily 300, got %v", got)
	}
	if got := BaseDaily(0); got != 0 {
		t.Fatalf("expected base daily 0, got %v", got)
	}
	// 10000/30 = 333.33..., rounds down
	if got := BaseDaily(10000); got != 333 {
		t.Fatalf("expected base daily 333, got %v", got)
	}
	// 9995/30 = 333.16..., still 333; 10005/30 = 333.5, rounds half-up
	if got := BaseDaily(10005); got != 334 {
		t.Fatalf("expected half value to round up to 334, got %v", got)
	}
}

func TestManualOverrideReplacesBase(t *testing.T) {
	got := ComputeDailySalary(9000, PayModifiers{ManualOverride: true, ManualAmount: 500})
	if got != 500 {
		t.Fatalf("expected manual override to fully replace base, got %v", got)
	}
}

func TestEmergencyDutyIsAdditive(t *testing.T) {
	got := ComputeDailySalary(9000, PayModifiers{EmergencyDuty: true, EmergencyAmount: 200})
	if got != 500 {
		t.Fatalf("expected 300+200=500, got %v", got)
	}
}

func TestEmergencyDutyWinsOverManualOverride(t *testing.T) {
	got := ComputeDailySalary(9000, PayModifiers{
		EmergencyDuty:   true,
		EmergencyAmount: 200,
		ManualOverride:  true,
		ManualAmount:    500,
	})
	if got != 500 {
		t.Fatalf("expected emergency to take precedence (300+200), got %v", got)
	}
}

func TestHalfDayHalvesFinalAmount(t *testing.T) {
	if got := ComputeDailySalary(9000, PayModifiers{HalfDay: true}); got != 150 {
		t.Fatalf("expected round(300/2)=150, got %v", got)
	}
	// (300+201)/2 = 250.5 rounds half-up to 251
	got := ComputeDailySalary(9000, PayModifiers{HalfDay: true, EmergencyDuty: true, EmergencyAmount: 201})
	if got != 251 {
		t.Fatalf("expected round(501/2)=251, got %v", got)
	}
	// non-.5 case: (300+200)/2 = 250 exactly
	got = ComputeDailySalary(9000, PayModifiers{HalfDay: true, EmergencyDuty: true, EmergencyAmount: 200})
	if got != 250 {
		t.Fatalf("expected 250, got %v", got)
	}
	// half-day applies to the manual override branch too
	if got := ComputeDailySalary(9000, PayModifiers{HalfDay: true, ManualOverride: true, ManualAmount: 501}); got != 251 {
		t.Fatalf("expected round(501/2)=251, got %v", got)
	}
}

func TestComputeDailySalaryIsPure(t *testing.T) {
	mods := PayModifiers{HalfDay: true, EmergencyDuty: true, EmergencyAmount: 201}
	first := ComputeDailySalary(9000, mods)
	second := ComputeDailySalary(9000, mods)
	if first != second {
		t.Fatalf("expected identical output on identical inputs, got %v then %v", first, second)
	}
}
