package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketAdmitted EventType = "ticket_admitted"
	EventTicketUpdated  EventType = "ticket_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	TicketNumber string      `json:"ticket_number"`
	ActorUserID  string      `json:"actor_user_id,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// TicketAdmittedPayload carries everything the notification handlers need
// without another store round-trip.
type TicketAdmittedPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	ReporterEmail string `json:"reporter_email"`
	AssigneeEmail string `json:"assignee_email"`
}

// FieldChange is one tracked-field diff entry in an update event.
type FieldChange struct {
	ActionType  domain.ActionType `json:"action_type"`
	BeforeState *string           `json:"before_state,omitempty"`
	AfterState  *string           `json:"after_state,omitempty"`
}

// TicketUpdatedPayload carries the diff set plus recipient addresses
// resolved after the write.
type TicketUpdatedPayload struct {
	Changes       []FieldChange `json:"changes"`
	ReporterEmail string        `json:"reporter_email"`
	AssigneeEmail *string       `json:"assignee_email,omitempty"`
}
