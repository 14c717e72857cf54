package domain

import "time"

// ActionType is the semantic name of a tracked ticket field as it appears
// in audit rows and notification feeds.
type ActionType string

const (
	ActionExpectedCompletionDate ActionType = "Expected Completion Date"
	ActionPriority               ActionType = "Priority"
	ActionStatus                 ActionType = "Status"
	ActionAssigneeDept           ActionType = "Assignee Department"
	ActionAssigneeSubDept        ActionType = "Assignee Sub-Department"
	ActionAssigneeEmpID          ActionType = "Assignee Employee"
)

// DefaultComment returns the canned comment recorded when the caller
// supplies none.
func (a ActionType) DefaultComment() string {
	return "Updated " + string(a)
}

// HistoryRecord is one immutable audit entry for a single field change.
// Only the read flag is ever mutated after insert.
type HistoryRecord struct {
	ID           int64
	TicketNumber string
	UserID       string
	Comment      string
	ActionType   ActionType
	BeforeState  *string
	AfterState   *string
	Timestamp    time.Time
	IsRead       bool
}
