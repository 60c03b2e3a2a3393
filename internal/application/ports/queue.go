package ports

import (
	"context"

	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// TaskEnqueuer hands work to the background queue.
type TaskEnqueuer interface {
	EnqueueDeviceCommand(ctx context.Context, cmd domain.Command) error
}

// CommandSink publishes a command to the per-device push channel. The channel
// itself (what firmware subscribes to) is an external collaborator.
type CommandSink interface {
	Publish(ctx context.Context, cmd domain.Command) error
}
