package customer

import (
	"context"
	"errors"

	"applestore-clone/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (provider, subject, email, display_name)
VALUES ($1, $2, lower($3), $4)
ON CONFLICT (provider, subject) DO UPDATE SET
    email = EXCLUDED.email,
    display_name = EXCLUDED.display_name,
    last_sign_in = now()
RETURNING id::text, provider, subject, email, display_name, created_at, last_sign_in
`
	out, err := r.scanCustomer(r.pool.QueryRow(ctx, q, c.Provider, c.Subject, c.Email, c.DisplayName))
	if err != nil {
		r.logger.Error("customer repo: upsert", zap.String("provider", c.Provider), zap.Error(err))
		return nil, err
	}
	r.logger.Info("customer repo: upserted", zap.String("provider", out.Provider), zap.String("id", out.ID))
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, provider, subject, email, display_name, created_at, last_sign_in
FROM customers
WHERE id = $1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Provider, &c.Subject, &c.Email, &c.DisplayName, &c.CreatedAt, &c.LastSignIn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
			// malformed uuid
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
