package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// SyncEnqueuer publishes directly to the sink when Redis/Asynq is not
// configured, so send-command keeps working on a bare deployment.
type SyncEnqueuer struct {
	sink ports.CommandSink
	log  zerolog.Logger
}

func NewSyncEnqueuer(sink ports.CommandSink, log zerolog.Logger) *SyncEnqueuer {
	return &SyncEnqueuer{sink: sink, log: log}
}

func (q *SyncEnqueuer) EnqueueDeviceCommand(ctx context.Context, cmd domain.Command) error {
	return q.sink.Publish(ctx, cmd)
}

var _ ports.TaskEnqueuer = (*SyncEnqueuer)(nil)
