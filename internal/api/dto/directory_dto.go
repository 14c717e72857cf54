package dto

import "github.com/spec-kit/helpdesk-service/internal/domain"

// EmployeeResponse serializes one directory record.
type EmployeeResponse struct {
	EmpID    string `json:"empID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Dept     string `json:"dept"`
	SubDept  string `json:"sub_dept"`
	Location string `json:"location"`
}

// NewEmployeeResponse maps a directory record.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmpID:    emp.EmpID,
		Name:     emp.Name,
		Email:    emp.Email,
		Dept:     emp.Dept,
		SubDept:  emp.SubDept,
		Location: emp.Location,
	}
}

// NewEmployeeResponses maps a directory listing.
func NewEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, NewEmployeeResponse(&employees[i]))
	}
	return result
}
