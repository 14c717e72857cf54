package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// DirectoryHandler exposes taxonomy, employee and HOD lookups.
type DirectoryHandler struct {
	directory *service.DirectoryService
	auth      *service.AuthService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService, authService *service.AuthService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, auth: authService}
}

// Departments handles GET /directory/departments.
func (h *DirectoryHandler) Departments(c *fiber.Ctx) error {
	values, err := h.directory.Departments(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"departments": values})
}

// SubDepartments handles GET /directory/subdepartments.
func (h *DirectoryHandler) SubDepartments(c *fiber.Ctx) error {
	department := c.Query("department")
	if department == "" {
		return fiber.NewError(http.StatusBadRequest, "department required")
	}
	values, err := h.directory.SubDepartments(c.Context(), department)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"subdepartments": values})
}

// SubTasks handles GET /directory/subtasks.
func (h *DirectoryHandler) SubTasks(c *fiber.Ctx) error {
	department := c.Query("department")
	subDepartment := c.Query("subdepartment")
	if department == "" || subDepartment == "" {
		return fiber.NewError(http.StatusBadRequest, "department and subdepartment required")
	}
	values, err := h.directory.SubTasks(c.Context(), department, subDepartment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"subtasks": values})
}

// TaskLabels handles GET /directory/tasklabels.
func (h *DirectoryHandler) TaskLabels(c *fiber.Ctx) error {
	department := c.Query("department")
	subDepartment := c.Query("subdepartment")
	subTask := c.Query("subtask")
	if department == "" || subDepartment == "" || subTask == "" {
		return fiber.NewError(http.StatusBadRequest, "department, subdepartment, subtask required")
	}
	values, err := h.directory.TaskLabels(c.Context(), department, subDepartment, subTask)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tasklabels": values})
}

// Employees handles GET /directory/employees.
func (h *DirectoryHandler) Employees(c *fiber.Ctx) error {
	department := c.Query("department")
	subDepartment := c.Query("subdepartment")
	if department == "" || subDepartment == "" {
		return fiber.NewError(http.StatusBadRequest, "department and subdepartment required")
	}
	employees, err := h.directory.EmployeesByDeptSubDept(c.Context(), department, subDepartment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"employees": dto.NewEmployeeResponses(employees)})
}

// Profile handles GET /directory/user.
func (h *DirectoryHandler) Profile(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}
	employee, err := h.directory.ProfileByEmail(c.Context(), h.auth.FullEmail(email))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(employee))
}

// IsHOD handles GET /directory/is-hod.
func (h *DirectoryHandler) IsHOD(c *fiber.Ctx) error {
	empID := c.Query("empID")
	if empID == "" {
		return fiber.NewError(http.StatusBadRequest, "empID required")
	}
	isHOD, err := h.directory.IsHOD(c.Context(), empID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"isHOD": isHOD})
}

// HODForDept handles GET /directory/hod.
func (h *DirectoryHandler) HODForDept(c *fiber.Ctx) error {
	dept := c.Query("dept")
	if dept == "" {
		return fiber.NewError(http.StatusBadRequest, "dept required")
	}
	hodID, err := h.directory.HODForDept(c.Context(), dept)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"HODID": hodID})
}

// TeamStructure handles GET /directory/team-structure.
func (h *DirectoryHandler) TeamStructure(c *fiber.Ctx) error {
	empID := c.Query("empID")
	if empID == "" {
		return fiber.NewError(http.StatusBadRequest, "Employee ID is required")
	}
	chart, err := h.directory.TeamStructure(c.Context(), empID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orgChart": chart})
}
