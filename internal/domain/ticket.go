package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Values match what
// is stored and displayed, including the hyphen in In-Progress.
type TicketStatus string

const (
	TicketStatusInProgress TicketStatus = "In-Progress"
	TicketStatusOverdue    TicketStatus = "Overdue"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityLow    TicketPriority = "Low"
)

// Ticket is the aggregate for helpdesk requests. The ticket number is the
// primary identity and never changes once allocated. Reporter fields are
// captured at admission time and immutable; the six tracked fields
// (expected completion date, priority, status and the three assignee
// fields) are nullable because an update may clear any of them.
type Ticket struct {
	Number      string
	CreatedAt   time.Time
	Type        string
	Title       string
	Description string

	SubTask   string
	TaskLabel string

	ReporterEmpID      string
	ReporterName       string
	ReporterEmail      string
	ReporterLocation   string
	ReporterDepartment string

	AssigneeEmpID   *string
	AssigneeDept    *string
	AssigneeSubDept *string

	Priority               *TicketPriority
	Status                 *TicketStatus
	ExpectedCompletionDate *time.Time
}

// Unassigned reports the derived display state: a ticket with no expected
// completion date has not been picked up yet.
func (t *Ticket) Unassigned() bool {
	return t.ExpectedCompletionDate == nil
}

// StatusCounts aggregates tickets per lifecycle bucket for dashboards.
type StatusCounts struct {
	Total      int `json:"total"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
	Unassigned int `json:"unassigned"`
}

// Tally adds a ticket to the counts.
func (c *StatusCounts) Tally(t *Ticket) {
	c.Total++
	if t.Unassigned() {
		c.Unassigned++
	}
	if t.Status == nil {
		return
	}
	switch *t.Status {
	case TicketStatusInProgress:
		c.InProgress++
	case TicketStatusOverdue:
		c.Overdue++
	case TicketStatusResolved:
		c.Resolved++
	case TicketStatusClosed:
		c.Closed++
	}
}
