package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// StateRepository persists append-only state entries. Each payload variant
// has its own table (appliance_states, water_level_entries); the project's
// type selects which one a call touches. Rows are never updated.
type StateRepository struct {
	pool *pgxpool.Pool
}

func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool}
}

func (r *StateRepository) Append(ctx context.Context, project *domain.Project, entry *domain.StateEntry) error {
	switch p := entry.Payload.(type) {
	case domain.AppliancePayload:
		_, err := r.pool.Exec(ctx,
			`INSERT INTO appliance_states (id, user_id, project_id, led1, led2, fan1, source, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			entry.ID, entry.UserID.UUID, entry.ProjectID.UUID, p.LED1, p.LED2, p.Fan1, string(entry.Source), entry.CreatedAt)
		return err
	case domain.WaterLevelPayload:
		_, err := r.pool.Exec(ctx,
			`INSERT INTO water_level_entries (id, user_id, project_id, level_percent, source, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID, entry.UserID.UUID, entry.ProjectID.UUID, p.LevelPercent, string(entry.Source), entry.CreatedAt)
		return err
	default:
		return fmt.Errorf("unsupported payload kind %q", entry.Payload.Kind())
	}
}

func (r *StateRepository) List(ctx context.Context, project *domain.Project, userID domain.UserID) ([]*domain.StateEntry, error) {
	rows, err := r.query(ctx, project, userID, "")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.StateEntry
	for rows.Next() {
		entry, err := scanEntry(rows, project.Type)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *StateRepository) Latest(ctx context.Context, project *domain.Project, userID domain.UserID) (*domain.StateEntry, error) {
	rows, err := r.query(ctx, project, userID, " LIMIT 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanEntry(rows, project.Type)
}

func (r *StateRepository) Clear(ctx context.Context, project *domain.Project, userID domain.UserID) (int64, error) {
	table := tableFor(project.Type)
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM `+table+` WHERE user_id = $1 AND project_id = $2`,
		userID.UUID, project.ID.UUID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *StateRepository) query(ctx context.Context, project *domain.Project, userID domain.UserID, suffix string) (pgx.Rows, error) {
	switch project.Type {
	case domain.KindWaterLevel:
		return r.pool.Query(ctx,
			`SELECT id, user_id, project_id, level_percent, source, created_at
			 FROM water_level_entries
			 WHERE user_id = $1 AND project_id = $2
			 ORDER BY created_at DESC`+suffix,
			userID.UUID, project.ID.UUID)
	default:
		return r.pool.Query(ctx,
			`SELECT id, user_id, project_id, led1, led2, fan1, source, created_at
			 FROM appliance_states
			 WHERE user_id = $1 AND project_id = $2
			 ORDER BY created_at DESC`+suffix,
			userID.UUID, project.ID.UUID)
	}
}

func scanEntry(row pgx.Row, kind domain.PayloadKind) (*domain.StateEntry, error) {
	var e domain.StateEntry
	var source string
	if kind == domain.KindWaterLevel {
		var p domain.WaterLevelPayload
		if err := row.Scan(&e.ID, &e.UserID.UUID, &e.ProjectID.UUID, &p.LevelPercent, &source, &e.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		e.Payload = p
	} else {
		var p domain.AppliancePayload
		if err := row.Scan(&e.ID, &e.UserID.UUID, &e.ProjectID.UUID, &p.LED1, &p.LED2, &p.Fan1, &source, &e.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		e.Payload = p
	}
	e.Source = domain.Source(source)
	return &e, nil
}

func tableFor(kind domain.PayloadKind) string {
	if kind == domain.KindWaterLevel {
		return "water_level_entries"
	}
	return "appliance_states"
}

var _ ports.StateRepository = (*StateRepository)(nil)
