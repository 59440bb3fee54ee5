package timesheet

import "strings"

// Status is the timesheet lifecycle state. Legacy records may carry
// arbitrary strings; ParseStatus folds anything unrecognized into draft
// so that old data keeps its draft-era editability instead of becoming
// unreachable.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusSubmitted     Status = "submitted"
	StatusAssigned      Status = "assigned"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusClarification Status = "clarification"
)

var allStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusAssigned,
	StatusApproved,
	StatusRejected,
	StatusClarification,
}

func ParseStatus(raw string) Status {
	normalized := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, status := range allStatuses {
		if normalized == status {
			return status
		}
	}
	return StatusDraft
}

var transitions = map[Status][]Status{
	StatusDraft:         {StatusSubmitted},
	StatusSubmitted:     {StatusAssigned, StatusRejected, StatusClarification},
	StatusAssigned:      {StatusApproved, StatusRejected, StatusClarification},
	StatusClarification: {StatusSubmitted, StatusRejected},
	StatusRejected:      {StatusDraft},
	StatusApproved:      {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status permits no further mutation of any
// kind.
func (s Status) Terminal() bool {
	return s == StatusApproved
}

// Deletable reports whether a timesheet in this status may be hard
// deleted together with its entries.
func (s Status) Deletable() bool {
	return s == StatusDraft || s == StatusRejected
}
