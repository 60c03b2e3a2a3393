package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// uniqueViolation is the postgres error code for duplicate keys.
const uniqueViolation = "23505"

// BindingRepository persists per-user API-key bindings. user_id and api_key
// both carry unique constraints; the duplicate-user case surfaces as
// ErrBindingExists so handlers can answer 409.
type BindingRepository struct {
	pool *pgxpool.Pool
}

func NewBindingRepository(pool *pgxpool.Pool) *BindingRepository {
	return &BindingRepository{pool: pool}
}

func (r *BindingRepository) Create(ctx context.Context, binding *domain.Binding) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_api_configs (id, user_id, api_key, template_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		binding.ID, binding.UserID.UUID, binding.APIKey, binding.TemplateID, binding.CreatedAt, binding.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domerrors.ErrBindingExists
		}
		return err
	}
	return nil
}

func (r *BindingRepository) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Binding, error) {
	return scanBinding(r.pool.QueryRow(ctx,
		`SELECT id, user_id, api_key, template_id, created_at, updated_at
		 FROM user_api_configs WHERE user_id = $1`,
		userID.UUID))
}

func (r *BindingRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Binding, error) {
	return scanBinding(r.pool.QueryRow(ctx,
		`SELECT id, user_id, api_key, template_id, created_at, updated_at
		 FROM user_api_configs WHERE api_key = $1`,
		apiKey))
}

func (r *BindingRepository) UpdateTemplate(ctx context.Context, userID domain.UserID, templateID string) (*domain.Binding, error) {
	binding, err := scanBinding(r.pool.QueryRow(ctx,
		`UPDATE user_api_configs SET template_id = $2, updated_at = now()
		 WHERE user_id = $1
		 RETURNING id, user_id, api_key, template_id, created_at, updated_at`,
		userID.UUID, templateID))
	if err != nil {
		return nil, err
	}
	if binding == nil {
		return nil, domerrors.ErrBindingNotFound
	}
	return binding, nil
}

func scanBinding(row pgx.Row) (*domain.Binding, error) {
	var b domain.Binding
	err := row.Scan(&b.ID, &b.UserID.UUID, &b.APIKey, &b.TemplateID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

var _ ports.BindingRepository = (*BindingRepository)(nil)
