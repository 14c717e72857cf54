package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketFilter captures listing parameters. At most one of the four
// scoping fields is set, matching the listing modes.
type TicketFilter struct {
	AssigneeEmpID      *string
	ReporterEmpID      *string
	ReporterDepartment *string
	AssigneeDept       *string
	CreatedBefore      *time.Time
}

// TicketDetails is a ticket joined with the display names and the
// assignee's email, which lives in the employee directory.
type TicketDetails struct {
	domain.Ticket
	ReporterDisplayName *string
	AssigneeDisplayName *string
	AssigneeEmail       *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	GetDetails(ctx context.Context, number string) (*TicketDetails, error)
	CountByPrefixOnDay(ctx context.Context, prefix string, day time.Time) (int, error)
	UpdateTracked(ctx context.Context, number string, fields domain.TrackedFields) error
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]TicketDetails, error)
	ListNumbersForEmployee(ctx context.Context, empID string) ([]string, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `ticket_number, created_at, type, title, description, sub_task, task_label,
               reporter_emp_id, reporter_name, reporter_email, reporter_location, reporter_department,
               assignee_emp_id, assignee_dept, assignee_sub_dept, priority, status, expected_completion_date`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, type, title, description, sub_task, task_label,
            reporter_emp_id, reporter_name, reporter_email, reporter_location, reporter_department,
            assignee_emp_id, assignee_dept, assignee_sub_dept, priority, status, expected_completion_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Number,
		ticket.Type,
		ticket.Title,
		ticket.Description,
		ticket.SubTask,
		ticket.TaskLabel,
		ticket.ReporterEmpID,
		ticket.ReporterName,
		ticket.ReporterEmail,
		ticket.ReporterLocation,
		ticket.ReporterDepartment,
		ticket.AssigneeEmpID,
		ticket.AssigneeDept,
		ticket.AssigneeSubDept,
		ticket.Priority,
		ticket.Status,
		ticket.ExpectedCompletionDate,
	).Scan(&ticket.CreatedAt)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_number=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, number).Scan(ticketScanTargets(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetDetails(ctx context.Context, number string) (*TicketDetails, error) {
	const query = `
        SELECT ` + detailColumns + `
        FROM tickets t
        LEFT JOIN employees rep ON t.reporter_emp_id = rep.emp_id
        LEFT JOIN employees asg ON t.assignee_emp_id = asg.emp_id
        WHERE t.ticket_number=$1`
	var details TicketDetails
	if err := r.pool.QueryRow(ctx, query, number).Scan(detailScanTargets(&details)...); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *ticketRepository) CountByPrefixOnDay(ctx context.Context, prefix string, day time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM tickets
        WHERE created_at::date = $2::date AND ticket_number LIKE $1 || '%'`
	var count int
	if err := r.pool.QueryRow(ctx, query, prefix, day).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ticketRepository) UpdateTracked(ctx context.Context, number string, fields domain.TrackedFields) error {
	const query = `
        UPDATE tickets SET expected_completion_date=$1, priority=$2, status=$3,
            assignee_dept=$4, assignee_sub_dept=$5, assignee_emp_id=$6
        WHERE ticket_number=$7`
	cmd, err := r.pool.Exec(ctx, query,
		fields.ExpectedCompletionDate,
		fields.Priority,
		fields.Status,
		fields.AssigneeDept,
		fields.AssigneeSubDept,
		fields.AssigneeEmpID,
		number,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const detailColumns = `t.ticket_number, t.created_at, t.type, t.title, t.description, t.sub_task, t.task_label,
               t.reporter_emp_id, t.reporter_name, t.reporter_email, t.reporter_location, t.reporter_department,
               t.assignee_emp_id, t.assignee_dept, t.assignee_sub_dept, t.priority, t.status, t.expected_completion_date,
               rep.name AS reporter_display_name, asg.name AS assignee_display_name, asg.email AS assignee_email`

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]TicketDetails, error) {
	base := `SELECT ` + detailColumns + `
             FROM tickets t
             LEFT JOIN employees rep ON t.reporter_emp_id = rep.emp_id
             LEFT JOIN employees asg ON t.assignee_emp_id = asg.emp_id`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AssigneeEmpID != nil {
		args = append(args, *filter.AssigneeEmpID)
		clauses = append(clauses, fmt.Sprintf("t.assignee_emp_id=$%d", len(args)))
	}
	if filter.ReporterEmpID != nil {
		args = append(args, *filter.ReporterEmpID)
		clauses = append(clauses, fmt.Sprintf("t.reporter_emp_id=$%d", len(args)))
	}
	if filter.ReporterDepartment != nil {
		args = append(args, *filter.ReporterDepartment)
		clauses = append(clauses, fmt.Sprintf("t.reporter_department=$%d", len(args)))
	}
	if filter.AssigneeDept != nil {
		args = append(args, *filter.AssigneeDept)
		clauses = append(clauses, fmt.Sprintf("t.assignee_dept=$%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		clauses = append(clauses, fmt.Sprintf("t.created_at < $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.created_at DESC", base, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TicketDetails
	for rows.Next() {
		var details TicketDetails
		if err := rows.Scan(detailScanTargets(&details)...); err != nil {
			return nil, err
		}
		result = append(result, details)
	}
	return result, rows.Err()
}

func (r *ticketRepository) ListNumbersForEmployee(ctx context.Context, empID string) ([]string, error) {
	const query = `
        SELECT ticket_number FROM tickets
        WHERE assignee_emp_id=$1 OR reporter_emp_id=$1`
	rows, err := r.pool.Query(ctx, query, empID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func ticketScanTargets(t *domain.Ticket) []any {
	return []any{
		&t.Number,
		&t.CreatedAt,
		&t.Type,
		&t.Title,
		&t.Description,
		&t.SubTask,
		&t.TaskLabel,
		&t.ReporterEmpID,
		&t.ReporterName,
		&t.ReporterEmail,
		&t.ReporterLocation,
		&t.ReporterDepartment,
		&t.AssigneeEmpID,
		&t.AssigneeDept,
		&t.AssigneeSubDept,
		&t.Priority,
		&t.Status,
		&t.ExpectedCompletionDate,
	}
}

func detailScanTargets(d *TicketDetails) []any {
	return append(ticketScanTargets(&d.Ticket),
		&d.ReporterDisplayName,
		&d.AssigneeDisplayName,
		&d.AssigneeEmail,
	)
}
