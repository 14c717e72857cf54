package domain

import "time"

// TrackedFields is the set of six mutable ticket fields covered by the
// audit history. It serves both as the "before" snapshot and as the value
// set written by an update.
type TrackedFields struct {
	ExpectedCompletionDate *time.Time
	Priority               *TicketPriority
	Status                 *TicketStatus
	AssigneeDept           *string
	AssigneeSubDept        *string
	AssigneeEmpID          *string
}

// Snapshot extracts the tracked fields from a ticket.
func (t *Ticket) Snapshot() TrackedFields {
	return TrackedFields{
		ExpectedCompletionDate: t.ExpectedCompletionDate,
		Priority:               t.Priority,
		Status:                 t.Status,
		AssigneeDept:           t.AssigneeDept,
		AssigneeSubDept:        t.AssigneeSubDept,
		AssigneeEmpID:          t.AssigneeEmpID,
	}
}
