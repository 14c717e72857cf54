package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ReadFilter selects notification rows by their read flag.
type ReadFilter string

const (
	ReadFilterAll    ReadFilter = "all"
	ReadFilterRead   ReadFilter = "read"
	ReadFilterUnread ReadFilter = "unread"
)

// NotificationCounts summarizes a user's feed.
type NotificationCounts struct {
	All    int `json:"all"`
	Read   int `json:"read"`
	Unread int `json:"unread"`
}

// HistoryRepository stores immutable audit entries; only the read flag is
// ever updated.
type HistoryRepository interface {
	Create(ctx context.Context, record *domain.HistoryRecord) error
	ListByTicket(ctx context.Context, ticketNumber string) ([]domain.HistoryRecord, error)
	ListForEmployee(ctx context.Context, empID, excludeUserID string, filter ReadFilter) ([]domain.HistoryRecord, error)
	CountForEmployee(ctx context.Context, empID, excludeUserID string) (NotificationCounts, error)
	MarkRead(ctx context.Context, id int64) error
}

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) Create(ctx context.Context, record *domain.HistoryRecord) error {
	const query = `
        INSERT INTO ticket_history (ticket_number, user_id, comment, action_type, before_state, after_state, is_read)
        VALUES ($1,$2,$3,$4,$5,$6,false)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		record.TicketNumber,
		record.UserID,
		record.Comment,
		record.ActionType,
		record.BeforeState,
		record.AfterState,
	).Scan(&record.ID, &record.Timestamp)
}

const historyColumns = `h.id, h.ticket_number, h.user_id, h.comment, h.action_type, h.before_state, h.after_state, h.created_at, h.is_read`

func (r *historyRepository) ListByTicket(ctx context.Context, ticketNumber string) ([]domain.HistoryRecord, error) {
	const query = `
        SELECT ` + historyColumns + ` FROM ticket_history h
        WHERE h.ticket_number=$1 ORDER BY h.created_at DESC`
	rows, err := r.pool.Query(ctx, query, ticketNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

// ListForEmployee returns history on tickets where the employee is the
// reporter or assignee, excluding rows the user produced themselves.
func (r *historyRepository) ListForEmployee(ctx context.Context, empID, excludeUserID string, filter ReadFilter) ([]domain.HistoryRecord, error) {
	query := `
        SELECT ` + historyColumns + `
        FROM ticket_history h
        JOIN tickets t ON h.ticket_number = t.ticket_number
        WHERE (t.assignee_emp_id=$1 OR t.reporter_emp_id=$1) AND h.user_id <> $2`
	switch filter {
	case ReadFilterRead:
		query += ` AND h.is_read`
	case ReadFilterUnread:
		query += ` AND NOT h.is_read`
	}
	query += ` ORDER BY h.created_at DESC`

	rows, err := r.pool.Query(ctx, query, empID, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

func (r *historyRepository) CountForEmployee(ctx context.Context, empID, excludeUserID string) (NotificationCounts, error) {
	const query = `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE h.is_read),
            COUNT(*) FILTER (WHERE NOT h.is_read)
        FROM ticket_history h
        JOIN tickets t ON h.ticket_number = t.ticket_number
        WHERE (t.assignee_emp_id=$1 OR t.reporter_emp_id=$1) AND h.user_id <> $2`
	var counts NotificationCounts
	if err := r.pool.QueryRow(ctx, query, empID, excludeUserID).Scan(
		&counts.All,
		&counts.Read,
		&counts.Unread,
	); err != nil {
		return NotificationCounts{}, err
	}
	return counts, nil
}

func (r *historyRepository) MarkRead(ctx context.Context, id int64) error {
	const query = `UPDATE ticket_history SET is_read=true WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanHistory(rows pgx.Rows) ([]domain.HistoryRecord, error) {
	var result []domain.HistoryRecord
	for rows.Next() {
		var record domain.HistoryRecord
		if err := rows.Scan(
			&record.ID,
			&record.TicketNumber,
			&record.UserID,
			&record.Comment,
			&record.ActionType,
			&record.BeforeState,
			&record.AfterState,
			&record.Timestamp,
			&record.IsRead,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
