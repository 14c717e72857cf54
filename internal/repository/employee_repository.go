package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EmployeeRepository defines read access to the employee directory.
type EmployeeRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByID(ctx context.Context, empID string) (*domain.Employee, error)
	ListByDeptSubDept(ctx context.Context, dept, subDept string) ([]domain.Employee, error)
	ListByDept(ctx context.Context, dept string) ([]domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `emp_id, name, email, dept, sub_dept, location, manager_id, active`

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1 AND active`
	return r.fetchSingle(ctx, query, email)
}

func (r *employeeRepository) GetByID(ctx context.Context, empID string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE emp_id=$1`
	return r.fetchSingle(ctx, query, empID)
}

func (r *employeeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var emp domain.Employee
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&emp.EmpID,
		&emp.Name,
		&emp.Email,
		&emp.Dept,
		&emp.SubDept,
		&emp.Location,
		&emp.ManagerID,
		&emp.Active,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) ListByDeptSubDept(ctx context.Context, dept, subDept string) ([]domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE dept=$1 AND sub_dept=$2 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, dept, subDept)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *employeeRepository) ListByDept(ctx context.Context, dept string) ([]domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE dept=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, dept)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func scanEmployees(rows pgx.Rows) ([]domain.Employee, error) {
	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(
			&emp.EmpID,
			&emp.Name,
			&emp.Email,
			&emp.Dept,
			&emp.SubDept,
			&emp.Location,
			&emp.ManagerID,
			&emp.Active,
		); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}
