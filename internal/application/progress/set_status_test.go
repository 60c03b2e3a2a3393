package progress

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/persistence/memory"
)

func TestSetStatusOverride(t *testing.T) {
	store := memory.NewStore()
	userID := domain.NewUserID(uuid.New())
	projectID := domain.NewProjectID(uuid.New())
	store.SeedProgress(userID, projectID, domain.StatusInProgress)
	uc := NewSetStatus(memory.ProgressStore{Store: store})

	err := uc.Execute(context.Background(), SetStatusInput{
		UserID:    userID,
		ProjectID: projectID,
		Status:    domain.StatusCompleted,
	})
	require.NoError(t, err)

	prog, err := store.Get(context.Background(), userID, projectID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, prog.Status)
	assert.False(t, prog.LastActivityAt.IsZero())
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	uc := NewSetStatus(memory.ProgressStore{Store: memory.NewStore()})

	err := uc.Execute(context.Background(), SetStatusInput{
		UserID:    domain.NewUserID(uuid.New()),
		ProjectID: domain.NewProjectID(uuid.New()),
		Status:    "ARCHIVED",
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidInput)
}

func TestSetStatusMissingRowIsHardError(t *testing.T) {
	uc := NewSetStatus(memory.ProgressStore{Store: memory.NewStore()})

	err := uc.Execute(context.Background(), SetStatusInput{
		UserID:    domain.NewUserID(uuid.New()),
		ProjectID: domain.NewProjectID(uuid.New()),
		Status:    domain.StatusNotStarted,
	})
	assert.ErrorIs(t, err, domerrors.ErrProgressNotFound)
}
