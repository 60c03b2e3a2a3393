package state

import (
	"context"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// ClearHistory bulk-deletes every entry for one (user, project) pair. The
// deletion is irreversible and does not reset the progress row.
type ClearHistory struct {
	projects ports.ProjectRepository
	states   ports.StateRepository
}

// NewClearHistory builds the use case.
func NewClearHistory(projects ports.ProjectRepository, states ports.StateRepository) *ClearHistory {
	return &ClearHistory{projects: projects, states: states}
}

// Execute removes the pair's entries and returns how many went away.
func (uc *ClearHistory) Execute(ctx context.Context, userID domain.UserID, projectKey string) (int64, error) {
	project, err := uc.projects.GetByKey(ctx, projectKey)
	if err != nil {
		return 0, err
	}
	if project == nil {
		return 0, domerrors.ErrProjectNotFound
	}
	return uc.states.Clear(ctx, project, userID)
}
