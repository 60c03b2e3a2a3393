package state

import (
	"context"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// Snapshot is the read projection: ordered history plus the derived current
// state (the newest entry, or the zero value when none exist).
type Snapshot struct {
	Project *domain.Project
	Current domain.StatePayload
	History []*domain.StateEntry
}

// ReadState serves the history projection for one (user, project) pair. Each
// call re-queries; no cursor is retained.
type ReadState struct {
	projects ports.ProjectRepository
	states   ports.StateRepository
}

// NewReadState builds the read path.
func NewReadState(projects ports.ProjectRepository, states ports.StateRepository) *ReadState {
	return &ReadState{projects: projects, states: states}
}

// Execute returns history newest-first with the current state derived from
// its head.
func (uc *ReadState) Execute(ctx context.Context, userID domain.UserID, projectKey string) (*Snapshot, error) {
	project, err := uc.projects.GetByKey(ctx, projectKey)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	history, err := uc.states.List(ctx, project, userID)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Project: project, History: history}
	if len(history) > 0 {
		snap.Current = history[0].Payload
	} else {
		snap.Current = domain.ZeroPayload(project.Type)
	}
	return snap, nil
}

// Desired returns just the current state, the shape polled by firmware.
func (uc *ReadState) Desired(ctx context.Context, userID domain.UserID, projectKey string) (domain.StatePayload, error) {
	project, err := uc.projects.GetByKey(ctx, projectKey)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	latest, err := uc.states.Latest(ctx, project, userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return domain.ZeroPayload(project.Type), nil
	}
	return latest.Payload, nil
}
