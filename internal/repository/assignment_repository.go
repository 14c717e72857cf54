package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AssignmentRuleRepository reads the static taxonomy-to-assignee lookup.
type AssignmentRuleRepository interface {
	FindAssignee(ctx context.Context, criteria domain.AssignmentCriteria) (string, error)
	Departments(ctx context.Context) ([]string, error)
	SubDepartments(ctx context.Context, department string) ([]string, error)
	SubTasks(ctx context.Context, department, subDepartment string) ([]string, error)
	TaskLabels(ctx context.Context, department, subDepartment, subTask string) ([]string, error)
}

type assignmentRuleRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRuleRepository returns a Postgres-backed implementation.
func NewAssignmentRuleRepository(pool *pgxpool.Pool) AssignmentRuleRepository {
	return &assignmentRuleRepository{pool: pool}
}

func (r *assignmentRuleRepository) FindAssignee(ctx context.Context, criteria domain.AssignmentCriteria) (string, error) {
	const query = `
        SELECT assignee_emp_id FROM assignment_rules
        WHERE location=$1 AND department=$2 AND sub_department=$3 AND sub_task=$4 AND task_label=$5`
	var empID string
	if err := r.pool.QueryRow(ctx, query,
		criteria.Location,
		criteria.Department,
		criteria.SubDepartment,
		criteria.SubTask,
		criteria.TaskLabel,
	).Scan(&empID); err != nil {
		return "", err
	}
	return empID, nil
}

func (r *assignmentRuleRepository) Departments(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT department FROM assignment_rules ORDER BY department`
	return r.fetchStrings(ctx, query)
}

func (r *assignmentRuleRepository) SubDepartments(ctx context.Context, department string) ([]string, error) {
	const query = `SELECT DISTINCT sub_department FROM assignment_rules WHERE department=$1 ORDER BY sub_department`
	return r.fetchStrings(ctx, query, department)
}

func (r *assignmentRuleRepository) SubTasks(ctx context.Context, department, subDepartment string) ([]string, error) {
	const query = `
        SELECT DISTINCT sub_task FROM assignment_rules
        WHERE department=$1 AND sub_department=$2 ORDER BY sub_task`
	return r.fetchStrings(ctx, query, department, subDepartment)
}

func (r *assignmentRuleRepository) TaskLabels(ctx context.Context, department, subDepartment, subTask string) ([]string, error) {
	const query = `
        SELECT DISTINCT task_label FROM assignment_rules
        WHERE department=$1 AND sub_department=$2 AND sub_task=$3 ORDER BY task_label`
	return r.fetchStrings(ctx, query, department, subDepartment, subTask)
}

func (r *assignmentRuleRepository) fetchStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func scanStrings(rows pgx.Rows) ([]string, error) {
	var result []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, rows.Err()
}
