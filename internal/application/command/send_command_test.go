package command

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

type captureEnqueuer struct {
	commands []domain.Command
}

func (c *captureEnqueuer) EnqueueDeviceCommand(ctx context.Context, cmd domain.Command) error {
	c.commands = append(c.commands, cmd)
	return nil
}

func TestSendCommandEnqueues(t *testing.T) {
	enq := &captureEnqueuer{}
	uc := NewSendCommand(enq)
	userID := domain.NewUserID(uuid.New())

	err := uc.Execute(context.Background(), SendCommandInput{
		UserID:   userID,
		DeviceID: "bench-3",
		Command:  "FAN_ON",
	})
	require.NoError(t, err)
	require.Len(t, enq.commands, 1)
	assert.Equal(t, "bench-3", enq.commands[0].DeviceID)
	assert.Equal(t, "FAN_ON", enq.commands[0].Command)
	assert.Equal(t, userID, enq.commands[0].UserID)
	assert.False(t, enq.commands[0].SentAt.IsZero())
}

func TestSendCommandAcceptsBlink(t *testing.T) {
	enq := &captureEnqueuer{}
	uc := NewSendCommand(enq)

	err := uc.Execute(context.Background(), SendCommandInput{
		UserID:   domain.NewUserID(uuid.New()),
		DeviceID: "bench-3",
		Command:  "LED1_BLINK:500",
	})
	require.NoError(t, err)
	assert.Len(t, enq.commands, 1)
}

func TestSendCommandRejectsUnknownVerb(t *testing.T) {
	enq := &captureEnqueuer{}
	uc := NewSendCommand(enq)

	err := uc.Execute(context.Background(), SendCommandInput{
		UserID:   domain.NewUserID(uuid.New()),
		DeviceID: "bench-3",
		Command:  "SELF_DESTRUCT",
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidInput)
	assert.Empty(t, enq.commands)
}

func TestSendCommandRequiresFields(t *testing.T) {
	uc := NewSendCommand(&captureEnqueuer{})

	err := uc.Execute(context.Background(), SendCommandInput{
		UserID:  domain.NewUserID(uuid.New()),
		Command: "FAN_ON",
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidInput)

	err = uc.Execute(context.Background(), SendCommandInput{
		UserID:   domain.NewUserID(uuid.New()),
		DeviceID: "bench-3",
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidInput)
}
