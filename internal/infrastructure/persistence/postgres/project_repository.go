package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// ProjectRepository persists the static project catalog.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, key, title, description, type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		project.ID.UUID, project.Key, project.Title, project.Description, string(project.Type), project.CreatedAt)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, key, title, description, type, created_at FROM projects WHERE id = $1`,
		projectID.UUID))
}

func (r *ProjectRepository) GetByKey(ctx context.Context, key string) (*domain.Project, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, key, title, description, type, created_at FROM projects WHERE key = $1`,
		key))
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, key, title, description, type, created_at FROM projects ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) scanOne(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var typ string
	err := row.Scan(&p.ID.UUID, &p.Key, &p.Title, &p.Description, &typ, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Type = domain.PayloadKind(typ)
	return &p, nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
