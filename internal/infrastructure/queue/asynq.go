package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

const (
	TypeDeviceCommand = "device:command"
)

// TaskEnqueuer hands device commands to Asynq for asynchronous dispatch.
type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

// deviceCommandPayload is the JSON carried by a device:command task.
type deviceCommandPayload struct {
	DeviceID  string `json:"device_id"`
	Command   string `json:"command"`
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

func (q *TaskEnqueuer) EnqueueDeviceCommand(ctx context.Context, cmd domain.Command) error {
	payload, _ := json.Marshal(deviceCommandPayload{
		DeviceID:  cmd.DeviceID,
		Command:   cmd.Command,
		UserID:    cmd.UserID.String(),
		Timestamp: cmd.SentAt.UnixMilli(),
	})
	task := asynq.NewTask(TypeDeviceCommand, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("device_id", cmd.DeviceID).Msg("enqueue device command failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
