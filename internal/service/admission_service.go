package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AdmissionService creates tickets: it resolves the assignee from the
// taxonomy lookup, allocates the ticket number and persists the row.
type AdmissionService struct {
	employees  repository.EmployeeRepository
	rules      repository.AssignmentRuleRepository
	prefixes   repository.PrefixRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	allocator  *ticketNumberAllocator
	now        func() time.Time
}

// AdmissionDependencies bundles repositories for the admission service.
type AdmissionDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	RuleRepo     repository.AssignmentRuleRepository
	PrefixRepo   repository.PrefixRepository
	TicketRepo   repository.TicketRepository
	Dispatcher   events.Dispatcher
	Now          func() time.Time
}

// AdmitInput describes a ticket admission payload.
type AdmitInput struct {
	ReporterEmail string
	Type          string
	Title         string
	Description   string
	Priority      domain.TicketPriority
	Department    string
	SubDepartment string
	SubTask       string
	TaskLabel     string
}

// NewAdmissionService constructs the service.
func NewAdmissionService(deps AdmissionDependencies) *AdmissionService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &AdmissionService{
		employees:  deps.EmployeeRepo,
		rules:      deps.RuleRepo,
		prefixes:   deps.PrefixRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		allocator:  newTicketNumberAllocator(),
		now:        now,
	}
}

// AdmitTicket runs the full admission pipeline and returns the allocated
// ticket number. Each lookup failure maps to a distinct error code so the
// caller can show a specific message.
func (s *AdmissionService) AdmitTicket(ctx context.Context, input AdmitInput) (string, error) {
	reporter, err := s.employees.GetByEmail(ctx, input.ReporterEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewReporterNotFound(input.ReporterEmail)
		}
		return "", apperrors.MapError(err)
	}

	assigneeID, err := s.rules.FindAssignee(ctx, domain.AssignmentCriteria{
		Location:      reporter.Location,
		Department:    input.Department,
		SubDepartment: input.SubDepartment,
		SubTask:       input.SubTask,
		TaskLabel:     input.TaskLabel,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNoAssigneeForCriteria()
		}
		return "", apperrors.MapError(err)
	}

	assignee, err := s.employees.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewAssigneeNotFound(assigneeID)
		}
		return "", apperrors.MapError(err)
	}

	prefix, err := s.prefixes.FindBySubDept(ctx, assignee.SubDept)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewPrefixNotFound(assignee.SubDept)
		}
		return "", apperrors.MapError(err)
	}

	day := s.now()

	// Hold the per-(prefix, day) lock across count and insert so
	// concurrent admissions cannot allocate the same serial.
	lock := s.allocator.lockFor(prefix, day)
	lock.Lock()
	defer lock.Unlock()

	count, err := s.tickets.CountByPrefixOnDay(ctx, numberPrefix(prefix, day), day)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	number := formatTicketNumber(prefix, day, count+1)

	status := domain.TicketStatusInProgress
	priority := input.Priority
	ticket := &domain.Ticket{
		Number:             number,
		Type:               input.Type,
		Title:              strings.TrimSpace(input.Title),
		Description:        strings.TrimSpace(input.Description),
		SubTask:            input.SubTask,
		TaskLabel:          input.TaskLabel,
		ReporterEmpID:      reporter.EmpID,
		ReporterName:       reporter.Name,
		ReporterEmail:      reporter.Email,
		ReporterLocation:   reporter.Location,
		ReporterDepartment: reporter.Dept,
		AssigneeEmpID:      &assignee.EmpID,
		AssigneeDept:       &assignee.Dept,
		AssigneeSubDept:    &assignee.SubDept,
		Priority:           &priority,
		Status:             &status,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return "", apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:         events.EventTicketAdmitted,
		TicketNumber: number,
		ActorUserID:  reporter.Email,
		Payload: events.TicketAdmittedPayload{
			Title:         ticket.Title,
			Description:   ticket.Description,
			ReporterEmail: reporter.Email,
			AssigneeEmail: assignee.Email,
		},
	})
	return number, nil
}

func (s *AdmissionService) publish(ctx context.Context, event events.Event) {
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
