package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// SetStatusInput names the pair and the status to force.
type SetStatusInput struct {
	UserID    domain.UserID
	ProjectID domain.ProjectID
	Status    domain.ProgressStatus
}

// SetStatus is the administrative override: the only path that may set
// COMPLETED (or reset to NOT_STARTED). Unlike the write-path promotion, a
// missing row here is a hard error.
type SetStatus struct {
	progress ports.ProgressRepository
}

// NewSetStatus builds the use case.
func NewSetStatus(progress ports.ProgressRepository) *SetStatus {
	return &SetStatus{progress: progress}
}

// Execute forces the status and refreshes lastActivityAt.
func (uc *SetStatus) Execute(ctx context.Context, input SetStatusInput) error {
	if !input.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domerrors.ErrInvalidInput, input.Status)
	}
	return uc.progress.SetStatus(ctx, input.UserID, input.ProjectID, input.Status, time.Now())
}
