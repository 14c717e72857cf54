package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// NotificationsHandler exposes the feed derived from the audit history.
type NotificationsHandler struct {
	history *service.HistoryService
	auth    *service.AuthService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(history *service.HistoryService, authService *service.AuthService) *NotificationsHandler {
	return &NotificationsHandler{history: history, auth: authService}
}

// List handles GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	userID := c.Query("userID")
	if userID == "" {
		return fiber.NewError(http.StatusBadRequest, "userID required")
	}
	filter := repository.ReadFilter(c.Query("filter", string(repository.ReadFilterAll)))

	feed, err := h.history.Notifications(c.Context(), h.auth.FullEmail(userID), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewNotificationFeedResponse(feed))
}

// MarkRead handles POST /notifications/mark-read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	var req dto.MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "id required")
	}

	if err := h.history.MarkRead(c.Context(), req.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// TicketHistory handles GET /tickets/:number/history.
func (h *NotificationsHandler) TicketHistory(c *fiber.Ctx) error {
	records, err := h.history.TicketHistory(c.Context(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"history": dto.NewHistoryEntryResponses(records)})
}
