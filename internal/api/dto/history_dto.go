package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// HistoryEntryResponse serializes one audit row.
type HistoryEntryResponse struct {
	ID           int64     `json:"id"`
	TicketNumber string    `json:"ticket_number"`
	UserID       string    `json:"user_id"`
	Comment      string    `json:"comment"`
	ActionType   string    `json:"action_type"`
	BeforeState  *string   `json:"before_state"`
	AfterState   *string   `json:"after_state"`
	Timestamp    time.Time `json:"timestamp"`
	IsRead       bool      `json:"is_read"`
}

// NewHistoryEntryResponses maps audit rows to the wire shape.
func NewHistoryEntryResponses(records []domain.HistoryRecord) []HistoryEntryResponse {
	result := make([]HistoryEntryResponse, 0, len(records))
	for _, record := range records {
		result = append(result, HistoryEntryResponse{
			ID:           record.ID,
			TicketNumber: record.TicketNumber,
			UserID:       record.UserID,
			Comment:      record.Comment,
			ActionType:   string(record.ActionType),
			BeforeState:  record.BeforeState,
			AfterState:   record.AfterState,
			Timestamp:    record.Timestamp,
			IsRead:       record.IsRead,
		})
	}
	return result
}

// NotificationFeedResponse is the notification list with bucket counts.
type NotificationFeedResponse struct {
	Notifications []HistoryEntryResponse        `json:"notifications"`
	Counts        repository.NotificationCounts `json:"counts"`
}

// NewNotificationFeedResponse maps a feed.
func NewNotificationFeedResponse(feed *service.NotificationFeed) NotificationFeedResponse {
	return NotificationFeedResponse{
		Notifications: NewHistoryEntryResponses(feed.Notifications),
		Counts:        feed.Counts,
	}
}

// MarkReadRequest payload to flip one notification to read.
type MarkReadRequest struct {
	ID int64 `json:"id"`
}
