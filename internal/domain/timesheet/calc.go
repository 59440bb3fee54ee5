package timesheet

import "math"

// PayModifiers are the per-day inputs to the salary calculation.
type PayModifiers struct {
	HalfDay         bool
	EmergencyDuty   bool
	EmergencyAmount float64
	ManualOverride  bool
	ManualAmount    float64
}

// BaseDaily is the monthly salary divided by a fixed 30-day divisor,
// rounded half-up. February pays the same per day as July.
func BaseDaily(monthlySalary float64) float64 {
	return round(monthlySalary / salaryDivisorDays)
}

// ComputeDailySalary produces the compensation for one calendar day.
//
// Emergency duty is additive on top of the base and always wins over a
// manual override; a manual override otherwise replaces the base
// entirely. The half-day adjustment halves whichever amount the earlier
// rules produced, rounding half-up. Public holiday and weekend have no
// effect on pay. Pure function of its inputs.
func ComputeDailySalary(monthlySalary float64, mods PayModifiers) float64 {
	amount := BaseDaily(monthlySalary)
	switch {
	case mods.EmergencyDuty:
		amount += mods.EmergencyAmount
	case mods.ManualOverride:
		amount = mods.ManualAmount
	}
	if mods.HalfDay {
		amount = round(amount / 2)
	}
	return amount
}

// round is round-half-up for the non-negative amounts handled here
// (math.Round rounds halves away from zero).
func round(value float64) float64 {
	return math.Round(value)
}
