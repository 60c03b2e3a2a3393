package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// WriteStateInput describes one accepted-or-rejected state write. Timestamp
// nil means "now"; devices may backdate delayed reports.
type WriteStateInput struct {
	UserID     domain.UserID
	ProjectKey string
	Payload    domain.StatePayload
	Source     domain.Source
	Timestamp  *time.Time
}

// WriteStateResult is the two-phase outcome: the appended entry (primary,
// strict) and whether the progress promotion landed (secondary, best effort).
type WriteStateResult struct {
	Entry           *domain.StateEntry
	Current         domain.StatePayload
	ProgressUpdated bool
}

// WriteState appends a state entry and opportunistically promotes the
// (user, project) progress row to IN_PROGRESS. The promotion is deliberately
// non-fatal: telemetry ingestion must not be blocked by progress tracking.
type WriteState struct {
	projects ports.ProjectRepository
	states   ports.StateRepository
	progress ports.ProgressRepository
	log      zerolog.Logger
}

// NewWriteState builds the reconciliation write path.
func NewWriteState(projects ports.ProjectRepository, states ports.StateRepository, progress ports.ProgressRepository, log zerolog.Logger) *WriteState {
	return &WriteState{projects: projects, states: states, progress: progress, log: log}
}

// Execute validates, appends, then promotes. Validation failures happen
// before any store mutation; no partial writes exist.
func (uc *WriteState) Execute(ctx context.Context, input WriteStateInput) (*WriteStateResult, error) {
	project, err := uc.projects.GetByKey(ctx, input.ProjectKey)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if input.Payload == nil || input.Payload.Kind() != project.Type {
		return nil, fmt.Errorf("%w: payload does not match project %q", domerrors.ErrInvalidInput, project.Key)
	}
	if err := input.Payload.Validate(); err != nil {
		return nil, err
	}

	createdAt := time.Now()
	if input.Timestamp != nil {
		createdAt = *input.Timestamp
	}
	entry := &domain.StateEntry{
		ID:        uuid.New(),
		UserID:    input.UserID,
		ProjectID: project.ID,
		Payload:   input.Payload,
		Source:    input.Source,
		CreatedAt: createdAt,
	}
	if err := uc.states.Append(ctx, project, entry); err != nil {
		return nil, err
	}

	progressUpdated := true
	next := domain.NextStatusOnWrite(domain.StatusInProgress)
	if err := uc.progress.SetStatus(ctx, input.UserID, project.ID, next, time.Now()); err != nil {
		// Pre-provisioning race or tracking bug; the entry is already durable.
		progressUpdated = false
		uc.log.Warn().Err(err).
			Str("user_id", input.UserID.String()).
			Str("project", project.Key).
			Msg("state accepted but progress update failed")
	}

	current, err := uc.states.Latest(ctx, project, input.UserID)
	if err != nil {
		return nil, err
	}
	result := &WriteStateResult{Entry: entry, ProgressUpdated: progressUpdated}
	if current != nil {
		result.Current = current.Payload
	} else {
		result.Current = domain.ZeroPayload(project.Type)
	}
	return result, nil
}
