package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

const dateLayout = "2006-01-02"

// TicketsHandler exposes admission, update and listing endpoints.
type TicketsHandler struct {
	admission *service.AdmissionService
	updates   *service.UpdateService
	queries   *service.QueryService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(admission *service.AdmissionService, updates *service.UpdateService, queries *service.QueryService) *TicketsHandler {
	return &TicketsHandler{admission: admission, updates: updates, queries: queries}
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ReporterEmail == "" || req.Title == "" || req.Description == "" {
		return fiber.NewError(http.StatusBadRequest, "reporter_email, title, description required")
	}

	number, err := h.admission.AdmitTicket(c.Context(), service.AdmitInput{
		ReporterEmail: req.ReporterEmail,
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      domain.TicketPriority(req.Priority),
		Department:    req.Department,
		SubDepartment: req.SubDepartment,
		SubTask:       req.SubTask,
		TaskLabel:     req.TaskLabel,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":       "Ticket created successfully",
		"ticket_number": number,
	})
}

// Update handles PATCH /tickets/:number.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" {
		return fiber.NewError(http.StatusBadRequest, "user_id required")
	}

	input := service.UpdateInput{
		TicketNumber:    c.Params("number"),
		UserID:          req.UserID,
		Comment:         req.Comment,
		Priority:        optionalPriority(req.Priority),
		Status:          optionalStatus(req.Status),
		AssigneeDept:    req.AssigneeDept,
		AssigneeSubDept: req.AssigneeSubDept,
		AssigneeEmpID:   req.AssigneeEmpID,
	}

	date, err := optionalDate(req.ExpectedCompletionDate)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "expected_completion_date must be YYYY-MM-DD")
	}
	input.ExpectedCompletionDate = date

	changes, err := h.updates.UpdateTicket(c.Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":        "Ticket updated successfully",
		"changed_fields": len(changes),
	})
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	mode := service.ListMode(c.Query("mode"))
	empID := c.Query("empID")
	department := c.Query("department")

	listing, err := h.queries.ListTickets(c.Context(), mode, empID, department)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketListResponse{
		Tickets:              dto.NewTicketResponses(listing.Tickets),
		StatusCounts:         listing.StatusCounts,
		PreviousStatusCounts: listing.PreviousStatusCounts,
	})
}

// Get handles GET /tickets/:number.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	details, err := h.queries.GetTicket(c.Context(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(details)})
}

func optionalPriority(o domain.Optional[string]) domain.Optional[domain.TicketPriority] {
	if !o.Present {
		return domain.Optional[domain.TicketPriority]{}
	}
	if !o.Valid {
		return domain.Null[domain.TicketPriority]()
	}
	return domain.Some(domain.TicketPriority(o.Value))
}

func optionalStatus(o domain.Optional[string]) domain.Optional[domain.TicketStatus] {
	if !o.Present {
		return domain.Optional[domain.TicketStatus]{}
	}
	if !o.Valid {
		return domain.Null[domain.TicketStatus]()
	}
	return domain.Some(domain.TicketStatus(o.Value))
}

func optionalDate(o domain.Optional[string]) (domain.Optional[time.Time], error) {
	if !o.Present {
		return domain.Optional[time.Time]{}, nil
	}
	if !o.Valid {
		return domain.Null[time.Time](), nil
	}
	parsed, err := time.Parse(dateLayout, o.Value)
	if err != nil {
		return domain.Optional[time.Time]{}, err
	}
	return domain.Some(parsed), nil
}
