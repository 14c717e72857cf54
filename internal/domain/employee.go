package domain

// Employee is the identity record for everyone who can report or resolve
// tickets. Read-only from the ticket procedures' perspective.
type Employee struct {
	EmpID     string
	Name      string
	Email     string
	Dept      string
	SubDept   string
	Location  string
	ManagerID *string
	Active    bool
}

// OrgNode is one employee in the org-chart tree built from manager
// references.
type OrgNode struct {
	EmpID    string     `json:"empID"`
	EmpName  string     `json:"empName"`
	Children []*OrgNode `json:"children"`
}
