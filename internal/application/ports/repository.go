package ports

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// ProjectRepository defines persistence for the static project catalog.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error)
	// GetByKey returns nil, nil when no project has the slug.
	GetByKey(ctx context.Context, key string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

// BindingRepository defines persistence for per-user API-key bindings.
type BindingRepository interface {
	// Create fails with domain/errors.ErrBindingExists when the user already
	// has a binding; silent key rotation is deliberately impossible.
	Create(ctx context.Context, binding *domain.Binding) error
	// GetByUserID returns nil, nil when the user has no binding.
	GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Binding, error)
	// GetByAPIKey returns nil, nil when the key resolves to nothing.
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Binding, error)
	// UpdateTemplate fails with domain/errors.ErrBindingNotFound when the user
	// has no binding yet.
	UpdateTemplate(ctx context.Context, userID domain.UserID, templateID string) (*domain.Binding, error)
}

// StateRepository defines append-only persistence for state entries. The
// project carries the payload kind, which selects the backing table.
type StateRepository interface {
	Append(ctx context.Context, project *domain.Project, entry *domain.StateEntry) error
	// List returns entries for the pair, newest first. Each call re-queries.
	List(ctx context.Context, project *domain.Project, userID domain.UserID) ([]*domain.StateEntry, error)
	// Latest returns nil, nil when the pair has no entries.
	Latest(ctx context.Context, project *domain.Project, userID domain.UserID) (*domain.StateEntry, error)
	// Clear removes every entry for the pair and returns how many were removed.
	Clear(ctx context.Context, project *domain.Project, userID domain.UserID) (int64, error)
}

// ProgressRepository defines persistence for per-(user, project) status rows.
type ProgressRepository interface {
	// SetStatus fails with domain/errors.ErrProgressNotFound when no row
	// exists for the pair; it never creates one.
	SetStatus(ctx context.Context, userID domain.UserID, projectID domain.ProjectID, status domain.ProgressStatus, at time.Time) error
	// Get returns nil, nil when no row exists for the pair.
	Get(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) (*domain.ProjectProgress, error)
}
