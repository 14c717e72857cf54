package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// DirectoryService exposes the employee directory, the ticket taxonomy
// and the head-of-department lookups.
type DirectoryService struct {
	employees repository.EmployeeRepository
	rules     repository.AssignmentRuleRepository
	hods      repository.HODRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(
	employees repository.EmployeeRepository,
	rules repository.AssignmentRuleRepository,
	hods repository.HODRepository,
) *DirectoryService {
	return &DirectoryService{employees: employees, rules: rules, hods: hods}
}

// Departments lists the departments present in the assignment taxonomy.
func (s *DirectoryService) Departments(ctx context.Context) ([]string, error) {
	values, err := s.rules.Departments(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return values, nil
}

// SubDepartments lists sub-departments under a department.
func (s *DirectoryService) SubDepartments(ctx context.Context, department string) ([]string, error) {
	values, err := s.rules.SubDepartments(ctx, department)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return values, nil
}

// SubTasks lists sub-tasks under a department and sub-department.
func (s *DirectoryService) SubTasks(ctx context.Context, department, subDepartment string) ([]string, error) {
	values, err := s.rules.SubTasks(ctx, department, subDepartment)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return values, nil
}

// TaskLabels lists task labels for a full taxonomy path.
func (s *DirectoryService) TaskLabels(ctx context.Context, department, subDepartment, subTask string) ([]string, error) {
	values, err := s.rules.TaskLabels(ctx, department, subDepartment, subTask)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return values, nil
}

// EmployeesByDeptSubDept lists the employees of a sub-department.
func (s *DirectoryService) EmployeesByDeptSubDept(ctx context.Context, department, subDepartment string) ([]domain.Employee, error) {
	employees, err := s.employees.ListByDeptSubDept(ctx, department, subDepartment)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// ProfileByEmail resolves a user's directory record by login email.
func (s *DirectoryService) ProfileByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// IsHOD reports whether the employee heads a department.
func (s *DirectoryService) IsHOD(ctx context.Context, empID string) (bool, error) {
	isHOD, err := s.hods.IsHOD(ctx, empID)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	return isHOD, nil
}

// HODForDept returns the department head's employee ID, nil when none is
// configured.
func (s *DirectoryService) HODForDept(ctx context.Context, dept string) (*string, error) {
	hodID, err := s.hods.HODForDept(ctx, dept)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return hodID, nil
}

// TeamStructure builds the org chart rooted at the employee using the
// manager references of everyone in the employee's department.
func (s *DirectoryService) TeamStructure(ctx context.Context, empID string) (*domain.OrgNode, error) {
	root, err := s.employees.GetByID(ctx, empID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"emp_id": empID})
		}
		return nil, apperrors.MapError(err)
	}

	colleagues, err := s.employees.ListByDept(ctx, root.Dept)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	node := &domain.OrgNode{EmpID: root.EmpID, EmpName: root.Name}
	node.Children = buildOrgTree(colleagues, root.EmpID)
	return node, nil
}

func buildOrgTree(employees []domain.Employee, managerID string) []*domain.OrgNode {
	children := []*domain.OrgNode{}
	for _, emp := range employees {
		if emp.ManagerID == nil || *emp.ManagerID != managerID {
			continue
		}
		child := &domain.OrgNode{EmpID: emp.EmpID, EmpName: emp.Name}
		child.Children = buildOrgTree(employees, emp.EmpID)
		children = append(children, child)
	}
	return children
}
