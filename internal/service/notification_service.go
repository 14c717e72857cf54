package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/mail"
)

// NotificationService turns ticket events into emails. Delivery is best
// effort: a failed send is logged and never surfaces to the workflow that
// produced the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	logger     *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, sender: sender, logger: logger}
}

// RegisterHandlers subscribes to events.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventTicketAdmitted, s.handleTicketAdmitted)
	s.dispatcher.Subscribe(events.EventTicketUpdated, s.handleTicketUpdated)
}

// handleTicketAdmitted mails the reporter a confirmation and the assignee
// an assignment notice.
func (s *NotificationService) handleTicketAdmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAdmittedPayload)
	if !ok {
		s.logger.Warn("unexpected payload type for ticket_admitted event",
			zap.String("event_id", event.ID))
		return nil
	}

	reporterBody := fmt.Sprintf("<p>Your ticket has been created successfully with Ticket Number: %s</p>", event.TicketNumber)
	s.send(ctx, payload.ReporterEmail, "Ticket Created Successfully", reporterBody)

	assigneeBody := fmt.Sprintf(`<p>A new ticket has been assigned to you with Ticket Number: %s</p>
<p>Details:</p>
<p>Title: %s</p>
<p>Description: %s</p>`, event.TicketNumber, payload.Title, payload.Description)
	s.send(ctx, payload.AssigneeEmail, "New Ticket Assigned to You", assigneeBody)
	return nil
}

// handleTicketUpdated mails the parties affected by a tracked-field change.
// Status transitions drive the reporter/assignee routing; a completion-date
// change always goes to the assignee.
func (s *NotificationService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketUpdatedPayload)
	if !ok {
		s.logger.Warn("unexpected payload type for ticket_updated event",
			zap.String("event_id", event.ID))
		return nil
	}

	number := event.TicketNumber
	for _, change := range payload.Changes {
		switch change.ActionType {
		case domain.ActionStatus:
			s.notifyStatusChange(ctx, number, change, payload)
		case domain.ActionExpectedCompletionDate:
			if payload.AssigneeEmail == nil {
				continue
			}
			subject := fmt.Sprintf("Ticket %s Expected Completion Date Updated", number)
			body := fmt.Sprintf(`<p>The expected completion date for ticket <strong>%s</strong> has been updated.</p>
<p>Please review the ticket details.</p>`, number)
			s.send(ctx, *payload.AssigneeEmail, subject, body)
		}
	}
	return nil
}

func (s *NotificationService) notifyStatusChange(ctx context.Context, number string, change events.FieldChange, payload events.TicketUpdatedPayload) {
	if change.AfterState == nil {
		return
	}
	switch domain.TicketStatus(*change.AfterState) {
	case domain.TicketStatusResolved:
		subject := fmt.Sprintf("Ticket %s Resolved", number)
		body := fmt.Sprintf(`<p>Your ticket <strong>%s</strong> has been marked as Resolved.</p>
<p>Please <strong>login to the system</strong> and Accept or Reject the resolution.</p>
<p>If you take no action within 7 days, the ticket will be auto-closed.</p>`, number)
		s.send(ctx, payload.ReporterEmail, subject, body)
	case domain.TicketStatusClosed:
		subject := fmt.Sprintf("Ticket %s Closed", number)
		body := fmt.Sprintf("<p>Your ticket <strong>%s</strong> is now Closed.</p>", number)
		s.send(ctx, payload.ReporterEmail, subject, body)
	case domain.TicketStatusInProgress:
		// Reverting to In-Progress means the reporter rejected the
		// resolution, so the assignee gets notified.
		if payload.AssigneeEmail == nil {
			return
		}
		subject := fmt.Sprintf("Ticket %s Resolution Rejected", number)
		body := fmt.Sprintf(`<p>The resolution for ticket <strong>%s</strong> has been rejected by the reporter.</p>
<p>Please review and address the issue again.</p>`, number)
		s.send(ctx, *payload.AssigneeEmail, subject, body)
	}
}

func (s *NotificationService) send(ctx context.Context, to, subject, body string) {
	if to == "" {
		return
	}
	if err := s.sender.Send(ctx, to, subject, body); err != nil {
		s.logger.Error("email delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return
	}
	s.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject))
}
