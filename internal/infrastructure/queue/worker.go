package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// Worker runs Asynq task handlers (device command dispatch).
type Worker struct {
	srv  *asynq.Server
	mux  *asynq.ServeMux
	sink ports.CommandSink
	log  zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, sink ports.CommandSink, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, sink: sink, log: log}
	mux.HandleFunc(TypeDeviceCommand, w.handleDeviceCommand)
	return w
}

func (w *Worker) handleDeviceCommand(ctx context.Context, t *asynq.Task) error {
	var p deviceCommandPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("device command task payload invalid")
		return err
	}
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		w.log.Error().Err(err).Msg("device command task user id invalid")
		return err
	}
	cmd := domain.Command{
		DeviceID: p.DeviceID,
		Command:  p.Command,
		UserID:   domain.NewUserID(userID),
		SentAt:   time.UnixMilli(p.Timestamp),
	}
	if err := w.sink.Publish(ctx, cmd); err != nil {
		return err
	}
	w.log.Info().
		Str("device_id", p.DeviceID).
		Str("command", p.Command).
		Msg("device command dispatched")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
