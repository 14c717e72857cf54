package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// CreateTicketRequest payload for ticket admission.
type CreateTicketRequest struct {
	ReporterEmail string `json:"reporter_email"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	Department    string `json:"department"`
	SubDepartment string `json:"sub_department"`
	SubTask       string `json:"sub_task"`
	TaskLabel     string `json:"task_label"`
}

// UpdateTicketRequest is a sparse patch over the six tracked fields. A key
// omitted from the JSON leaves the field alone; an explicit null clears it.
// The completion date travels as YYYY-MM-DD.
type UpdateTicketRequest struct {
	UserID  string  `json:"user_id"`
	Comment *string `json:"comment,omitempty"`

	ExpectedCompletionDate domain.Optional[string] `json:"expected_completion_date"`
	Priority               domain.Optional[string] `json:"priority"`
	Status                 domain.Optional[string] `json:"status"`
	AssigneeDept           domain.Optional[string] `json:"assignee_dept"`
	AssigneeSubDept        domain.Optional[string] `json:"assignee_sub_dept"`
	AssigneeEmpID          domain.Optional[string] `json:"assignee_emp_id"`
}

// TicketResponse serializes one ticket with resolved display names.
type TicketResponse struct {
	TicketNumber           string     `json:"ticket_number"`
	CreatedAt              time.Time  `json:"created_at"`
	Type                   string     `json:"type"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	SubTask                string     `json:"sub_task"`
	TaskLabel              string     `json:"task_label"`
	ReporterEmpID          string     `json:"reporter_emp_id"`
	ReporterName           string     `json:"reporter_name"`
	ReporterEmail          string     `json:"reporter_email"`
	ReporterLocation       string     `json:"reporter_location"`
	ReporterDepartment     string     `json:"reporter_department"`
	AssigneeEmpID          *string    `json:"assignee_emp_id"`
	AssigneeDept           *string    `json:"assignee_dept"`
	AssigneeSubDept        *string    `json:"assignee_sub_dept"`
	AssigneeName           *string    `json:"assignee_name"`
	Priority               *string    `json:"priority"`
	Status                 *string    `json:"status"`
	ExpectedCompletionDate *time.Time `json:"expected_completion_date"`
	Unassigned             bool       `json:"unassigned"`
}

// NewTicketResponse maps repository details to the wire shape.
func NewTicketResponse(details *repository.TicketDetails) TicketResponse {
	resp := TicketResponse{
		TicketNumber:           details.Number,
		CreatedAt:              details.CreatedAt,
		Type:                   details.Type,
		Title:                  details.Title,
		Description:            details.Description,
		SubTask:                details.SubTask,
		TaskLabel:              details.TaskLabel,
		ReporterEmpID:          details.ReporterEmpID,
		ReporterName:           details.ReporterName,
		ReporterEmail:          details.ReporterEmail,
		ReporterLocation:       details.ReporterLocation,
		ReporterDepartment:     details.ReporterDepartment,
		AssigneeEmpID:          details.AssigneeEmpID,
		AssigneeDept:           details.AssigneeDept,
		AssigneeSubDept:        details.AssigneeSubDept,
		AssigneeName:           details.AssigneeDisplayName,
		ExpectedCompletionDate: details.ExpectedCompletionDate,
		Unassigned:             details.Unassigned(),
	}
	if details.Priority != nil {
		p := string(*details.Priority)
		resp.Priority = &p
	}
	if details.Status != nil {
		s := string(*details.Status)
		resp.Status = &s
	}
	return resp
}

// NewTicketResponses maps a listing.
func NewTicketResponses(list []repository.TicketDetails) []TicketResponse {
	result := make([]TicketResponse, 0, len(list))
	for i := range list {
		result = append(result, NewTicketResponse(&list[i]))
	}
	return result
}

// TicketListResponse is a scoped listing with its dashboard counters.
type TicketListResponse struct {
	Tickets              []TicketResponse    `json:"tickets"`
	StatusCounts         domain.StatusCounts `json:"statusCounts"`
	PreviousStatusCounts domain.StatusCounts `json:"previousStatusCounts"`
}
