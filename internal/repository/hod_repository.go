package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HODRepository reads the head-of-department table.
type HODRepository interface {
	IsHOD(ctx context.Context, empID string) (bool, error)
	HODForDept(ctx context.Context, dept string) (*string, error)
}

type hodRepository struct {
	pool *pgxpool.Pool
}

// NewHODRepository returns a Postgres-backed implementation.
func NewHODRepository(pool *pgxpool.Pool) HODRepository {
	return &hodRepository{pool: pool}
}

func (r *hodRepository) IsHOD(ctx context.Context, empID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM department_heads WHERE hod_emp_id=$1`
	var count int
	if err := r.pool.QueryRow(ctx, query, empID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *hodRepository) HODForDept(ctx context.Context, dept string) (*string, error) {
	const query = `SELECT hod_emp_id FROM department_heads WHERE dept=$1`
	var hodID string
	err := r.pool.QueryRow(ctx, query, dept).Scan(&hodID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hodID, nil
}
