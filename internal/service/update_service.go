package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const dateLayout = "2006-01-02"

// UpdateService mutates the six tracked ticket fields, records one audit
// row per changed field and emits a ticket_updated event for notification
// handlers.
type UpdateService struct {
	tickets    repository.TicketRepository
	logins     repository.LoginRepository
	history    repository.HistoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// UpdateDependencies bundles collaborators for the update service.
type UpdateDependencies struct {
	TicketRepo  repository.TicketRepository
	LoginRepo   repository.LoginRepository
	HistoryRepo repository.HistoryRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Now         func() time.Time
}

// UpdateInput is a sparse patch: a field left absent keeps its current
// value, an explicit null clears it, and a set value replaces it.
type UpdateInput struct {
	TicketNumber string
	UserID       string
	Comment      *string

	ExpectedCompletionDate domain.Optional[time.Time]
	Priority               domain.Optional[domain.TicketPriority]
	Status                 domain.Optional[domain.TicketStatus]
	AssigneeDept           domain.Optional[string]
	AssigneeSubDept        domain.Optional[string]
	AssigneeEmpID          domain.Optional[string]
}

// NewUpdateService constructs the service.
func NewUpdateService(deps UpdateDependencies) *UpdateService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &UpdateService{
		tickets:    deps.TicketRepo,
		logins:     deps.LoginRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        now,
	}
}

// UpdateTicket applies the patch, writes the diff to the audit history and
// returns the per-field changes. History insert failures are logged and do
// not fail the update; the ticket write has already succeeded.
func (s *UpdateService) UpdateTicket(ctx context.Context, input UpdateInput) ([]events.FieldChange, error) {
	actorKnown, err := s.logins.Exists(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !actorKnown {
		return nil, apperrors.NewInvalidActor(input.UserID)
	}

	ticket, err := s.tickets.GetByNumber(ctx, input.TicketNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewTicketNotFound(input.TicketNumber)
		}
		return nil, apperrors.MapError(err)
	}

	before := ticket.Snapshot()
	after := applyPatch(before, input)

	if err := s.tickets.UpdateTracked(ctx, input.TicketNumber, after); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewTicketNotFound(input.TicketNumber)
		}
		return nil, apperrors.MapError(err)
	}

	changes := diffTracked(before, after)
	for _, change := range changes {
		comment := change.ActionType.DefaultComment()
		if input.Comment != nil && *input.Comment != "" {
			comment = *input.Comment
		}
		record := domain.HistoryRecord{
			TicketNumber: input.TicketNumber,
			UserID:       input.UserID,
			Comment:      comment,
			ActionType:   change.ActionType,
			BeforeState:  change.BeforeState,
			AfterState:   change.AfterState,
		}
		if err := s.history.Create(ctx, &record); err != nil {
			s.logger.Error("history insert failed",
				zap.String("ticket_number", input.TicketNumber),
				zap.String("action_type", string(change.ActionType)),
				zap.Error(err))
		}
	}

	if len(changes) > 0 {
		details, err := s.tickets.GetDetails(ctx, input.TicketNumber)
		if err != nil {
			s.logger.Error("detail lookup for notification failed",
				zap.String("ticket_number", input.TicketNumber),
				zap.Error(err))
		} else {
			s.publish(ctx, events.Event{
				Type:         events.EventTicketUpdated,
				TicketNumber: input.TicketNumber,
				ActorUserID:  input.UserID,
				Payload: events.TicketUpdatedPayload{
					Changes:       changes,
					ReporterEmail: details.ReporterEmail,
					AssigneeEmail: details.AssigneeEmail,
				},
			})
		}
	}
	return changes, nil
}

// applyPatch resolves the tri-state patch against the current values.
func applyPatch(before domain.TrackedFields, input UpdateInput) domain.TrackedFields {
	after := before
	if input.ExpectedCompletionDate.Present {
		after.ExpectedCompletionDate = input.ExpectedCompletionDate.Ptr()
	}
	if input.Priority.Present {
		after.Priority = input.Priority.Ptr()
	}
	if input.Status.Present {
		after.Status = input.Status.Ptr()
	}
	if input.AssigneeDept.Present {
		after.AssigneeDept = input.AssigneeDept.Ptr()
	}
	if input.AssigneeSubDept.Present {
		after.AssigneeSubDept = input.AssigneeSubDept.Ptr()
	}
	if input.AssigneeEmpID.Present {
		after.AssigneeEmpID = input.AssigneeEmpID.Ptr()
	}
	return after
}

// diffTracked compares the snapshots field by field, in the fixed order the
// audit history uses. Dates are rendered in YYYY-MM-DD for state strings.
func diffTracked(before, after domain.TrackedFields) []events.FieldChange {
	var changes []events.FieldChange

	appendChange := func(action domain.ActionType, b, a *string) {
		if equalStringPtr(b, a) {
			return
		}
		changes = append(changes, events.FieldChange{ActionType: action, BeforeState: b, AfterState: a})
	}

	appendChange(domain.ActionExpectedCompletionDate, formatDatePtr(before.ExpectedCompletionDate), formatDatePtr(after.ExpectedCompletionDate))
	appendChange(domain.ActionPriority, priorityPtr(before.Priority), priorityPtr(after.Priority))
	appendChange(domain.ActionStatus, statusPtr(before.Status), statusPtr(after.Status))
	appendChange(domain.ActionAssigneeDept, before.AssigneeDept, after.AssigneeDept)
	appendChange(domain.ActionAssigneeSubDept, before.AssigneeSubDept, after.AssigneeSubDept)
	appendChange(domain.ActionAssigneeEmpID, before.AssigneeEmpID, after.AssigneeEmpID)
	return changes
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func priorityPtr(p *domain.TicketPriority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func statusPtr(st *domain.TicketStatus) *string {
	if st == nil {
		return nil
	}
	s := string(*st)
	return &s
}

func (s *UpdateService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
