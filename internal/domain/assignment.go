package domain

// AssignmentCriteria keys the static assignment-rule lookup: a reporter
// location plus a complete taxonomy path.
type AssignmentCriteria struct {
	Location      string
	Department    string
	SubDepartment string
	SubTask       string
	TaskLabel     string
}

// AssignmentRule maps criteria to the responsible employee.
type AssignmentRule struct {
	AssignmentCriteria
	AssigneeEmpID string
}

// Login is a credential record keyed by username (the full email address).
type Login struct {
	Username     string
	PasswordHash *string
	EmpID        string
}
