package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// LoginRepository manages credential rows keyed by username.
type LoginRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Login, error)
	Exists(ctx context.Context, username string) (bool, error)
	Upsert(ctx context.Context, username, empID string) error
	SetPassword(ctx context.Context, username, passwordHash string) error
}

type loginRepository struct {
	pool *pgxpool.Pool
}

// NewLoginRepository returns a Postgres-backed implementation.
func NewLoginRepository(pool *pgxpool.Pool) LoginRepository {
	return &loginRepository{pool: pool}
}

func (r *loginRepository) GetByUsername(ctx context.Context, username string) (*domain.Login, error) {
	const query = `SELECT username, password_hash, emp_id FROM logins WHERE username=$1`
	var login domain.Login
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&login.Username,
		&login.PasswordHash,
		&login.EmpID,
	); err != nil {
		return nil, err
	}
	return &login, nil
}

func (r *loginRepository) Exists(ctx context.Context, username string) (bool, error) {
	const query = `SELECT COUNT(*) FROM logins WHERE username=$1`
	var count int
	if err := r.pool.QueryRow(ctx, query, username).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *loginRepository) Upsert(ctx context.Context, username, empID string) error {
	const query = `
        INSERT INTO logins (username, emp_id)
        VALUES ($1, $2)
        ON CONFLICT (username) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, username, empID)
	return err
}

func (r *loginRepository) SetPassword(ctx context.Context, username, passwordHash string) error {
	const query = `UPDATE logins SET password_hash=$1 WHERE username=$2`
	_, err := r.pool.Exec(ctx, query, passwordHash, username)
	return err
}
