package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// NotificationFeed is a user's notification rows plus the bucket counts.
// Counts always cover the whole feed regardless of the applied filter.
type NotificationFeed struct {
	Notifications []domain.HistoryRecord        `json:"notifications"`
	Counts        repository.NotificationCounts `json:"counts"`
}

// HistoryService serves the audit trail and the notification feed that is
// derived from it.
type HistoryService struct {
	history   repository.HistoryRepository
	employees repository.EmployeeRepository
}

// NewHistoryService constructs the service.
func NewHistoryService(history repository.HistoryRepository, employees repository.EmployeeRepository) *HistoryService {
	return &HistoryService{history: history, employees: employees}
}

// TicketHistory returns a ticket's audit trail, newest first.
func (s *HistoryService) TicketHistory(ctx context.Context, ticketNumber string) ([]domain.HistoryRecord, error) {
	if ticketNumber == "" {
		return nil, apperrors.NewValidationError("Ticket number is required", nil)
	}
	records, err := s.history.ListByTicket(ctx, ticketNumber)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// Notifications returns the feed for a login username: history rows on
// tickets where the user is reporter or assignee, minus the rows the user
// wrote themselves.
func (s *HistoryService) Notifications(ctx context.Context, username string, filter repository.ReadFilter) (*NotificationFeed, error) {
	switch filter {
	case repository.ReadFilterAll, repository.ReadFilterRead, repository.ReadFilterUnread:
	case "":
		filter = repository.ReadFilterAll
	default:
		return nil, apperrors.NewValidationError("invalid filter", map[string]any{"filter": string(filter)})
	}

	employee, err := s.employees.GetByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, apperrors.MapError(err)
	}

	records, err := s.history.ListForEmployee(ctx, employee.EmpID, username, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	counts, err := s.history.CountForEmployee(ctx, employee.EmpID, username)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &NotificationFeed{Notifications: records, Counts: counts}, nil
}

// MarkRead flips one notification row to read.
func (s *HistoryService) MarkRead(ctx context.Context, id int64) error {
	if err := s.history.MarkRead(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
