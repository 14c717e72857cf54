package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PrefixRepository maps a sub-department to its ticket-number prefix.
type PrefixRepository interface {
	FindBySubDept(ctx context.Context, subDept string) (string, error)
}

type prefixRepository struct {
	pool *pgxpool.Pool
}

// NewPrefixRepository returns a Postgres-backed implementation.
func NewPrefixRepository(pool *pgxpool.Pool) PrefixRepository {
	return &prefixRepository{pool: pool}
}

func (r *prefixRepository) FindBySubDept(ctx context.Context, subDept string) (string, error) {
	const query = `SELECT prefix FROM ticket_prefixes WHERE sub_department=$1`
	var prefix string
	if err := r.pool.QueryRow(ctx, query, subDept).Scan(&prefix); err != nil {
		return "", err
	}
	return prefix, nil
}
