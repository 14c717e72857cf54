package service

import (
	"context"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ListMode selects the scoping axis for a ticket listing.
type ListMode string

const (
	ModeAssignedToMe   ListMode = "assignedToMe"
	ModeAssignedByMe   ListMode = "assignedByMe"
	ModeAssignedByDept ListMode = "assignedByDept"
	ModeAssignedToDept ListMode = "assignedToDept"
)

// TicketListing is a scoped ticket set with its dashboard counters. The
// previous counts cover the same scope restricted to tickets created
// before today, so the dashboard can show day-over-day movement.
type TicketListing struct {
	Tickets              []repository.TicketDetails `json:"tickets"`
	StatusCounts         domain.StatusCounts        `json:"statusCounts"`
	PreviousStatusCounts domain.StatusCounts        `json:"previousStatusCounts"`
}

// QueryService serves the read-side ticket views.
type QueryService struct {
	tickets repository.TicketRepository
	now     func() time.Time
}

// NewQueryService constructs the service.
func NewQueryService(tickets repository.TicketRepository, now func() time.Time) *QueryService {
	if now == nil {
		now = time.Now
	}
	return &QueryService{tickets: tickets, now: now}
}

// ListTickets returns the tickets visible in the given mode together with
// current and previous-day status counts.
func (s *QueryService) ListTickets(ctx context.Context, mode ListMode, empID, department string) (*TicketListing, error) {
	filter, err := buildFilter(mode, empID, department)
	if err != nil {
		return nil, err
	}

	current, err := s.tickets.ListWithFilter(ctx, *filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	startOfDay := s.startOfToday()
	previousFilter := *filter
	previousFilter.CreatedBefore = &startOfDay
	previous, err := s.tickets.ListWithFilter(ctx, previousFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	listing := &TicketListing{Tickets: current}
	for i := range current {
		listing.StatusCounts.Tally(&current[i].Ticket)
	}
	for i := range previous {
		listing.PreviousStatusCounts.Tally(&previous[i].Ticket)
	}
	return listing, nil
}

// GetTicket returns one ticket with display names resolved.
func (s *QueryService) GetTicket(ctx context.Context, number string) (*repository.TicketDetails, error) {
	details, err := s.tickets.GetDetails(ctx, number)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return details, nil
}

func buildFilter(mode ListMode, empID, department string) (*repository.TicketFilter, error) {
	switch mode {
	case ModeAssignedToMe:
		return &repository.TicketFilter{AssigneeEmpID: &empID}, nil
	case ModeAssignedByMe:
		return &repository.TicketFilter{ReporterEmpID: &empID}, nil
	case ModeAssignedByDept:
		return &repository.TicketFilter{ReporterDepartment: &department}, nil
	case ModeAssignedToDept:
		return &repository.TicketFilter{AssigneeDept: &department}, nil
	default:
		return nil, apperrors.NewValidationError("Invalid mode", map[string]any{"mode": string(mode)})
	}
}

func (s *QueryService) startOfToday() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
