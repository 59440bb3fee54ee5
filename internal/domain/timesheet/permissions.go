package timesheet

import "timetrack/internal/identity"

// CanEdit decides whether actor may create, edit, or delete entries in
// the timesheet, based solely on the current lifecycle status and the
// actor's relationship to it. It is evaluated fresh on every attempted
// mutation and returns a plain bool; a denial never raises an error.
//
//	draft / rejected / unrecognized  -> creator or admin
//	submitted / assigned / clarification -> assignee or admin
//	approved -> nobody
func CanEdit(ts Timesheet, actor identity.Identity) bool {
	status := ParseStatus(string(ts.Status))
	if status.Terminal() {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	if actor.Unknown() {
		return false
	}

	set := actor.MatchSet()
	switch status {
	case StatusSubmitted, StatusAssigned, StatusClarification:
		// The creator alone is not sufficient once submitted.
		return set.HasAny(ts.AssignedToID, ts.AssignedToName)
	default:
		return set.HasAny(ts.CreatedByID, ts.CreatedByName)
	}
}
