package command

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// SendCommandInput is a push instruction for one named device.
type SendCommandInput struct {
	UserID   domain.UserID
	DeviceID string
	Command  string
}

// SendCommand validates the command vocabulary and hands dispatch to the
// background queue; the worker publishes to the per-device channel.
type SendCommand struct {
	enqueuer ports.TaskEnqueuer
}

// NewSendCommand builds the use case.
func NewSendCommand(enqueuer ports.TaskEnqueuer) *SendCommand {
	return &SendCommand{enqueuer: enqueuer}
}

// Execute enqueues the command for dispatch.
func (uc *SendCommand) Execute(ctx context.Context, input SendCommandInput) error {
	if input.DeviceID == "" || input.Command == "" {
		return fmt.Errorf("%w: deviceId and command are required", domerrors.ErrInvalidInput)
	}
	if !domain.ValidCommand(input.Command) {
		return fmt.Errorf("%w: invalid command", domerrors.ErrInvalidInput)
	}
	return uc.enqueuer.EnqueueDeviceCommand(ctx, domain.Command{
		DeviceID: input.DeviceID,
		Command:  input.Command,
		UserID:   input.UserID,
		SentAt:   time.Now(),
	})
}
