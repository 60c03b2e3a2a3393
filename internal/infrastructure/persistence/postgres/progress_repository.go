package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// ProgressRepository persists per-(user, project) status rows. SetStatus is
// last-writer-wins on last_activity_at and never creates rows; provisioning
// owns row creation.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

func (r *ProgressRepository) SetStatus(ctx context.Context, userID domain.UserID, projectID domain.ProjectID, status domain.ProgressStatus, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_projects SET status = $3, last_activity_at = $4
		 WHERE user_id = $1 AND project_id = $2`,
		userID.UUID, projectID.UUID, string(status), at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrProgressNotFound
	}
	return nil
}

func (r *ProgressRepository) Get(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) (*domain.ProjectProgress, error) {
	var p domain.ProjectProgress
	var status string
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, project_id, status, last_activity_at
		 FROM user_projects WHERE user_id = $1 AND project_id = $2`,
		userID.UUID, projectID.UUID).
		Scan(&p.UserID.UUID, &p.ProjectID.UUID, &status, &p.LastActivityAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Status = domain.ProgressStatus(status)
	return &p, nil
}

var _ ports.ProgressRepository = (*ProgressRepository)(nil)
