package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// RedisSink publishes commands on a per-device channel
// ("devices:<id>:commands"). Firmware-side delivery is outside this service;
// the sink is just the hand-off point.
type RedisSink struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedisSink builds the sink over an existing client.
func NewRedisSink(client *redis.Client, log zerolog.Logger) *RedisSink {
	return &RedisSink{client: client, log: log}
}

type commandMessage struct {
	Command   string `json:"command"`
	Timestamp int64  `json:"timestamp"`
	UserID    string `json:"userId"`
}

// Publish sends the command to the device channel.
func (s *RedisSink) Publish(ctx context.Context, cmd domain.Command) error {
	payload, _ := json.Marshal(commandMessage{
		Command:   cmd.Command,
		Timestamp: cmd.SentAt.UnixMilli(),
		UserID:    cmd.UserID.String(),
	})
	channel := "devices:" + cmd.DeviceID + ":commands"
	if err := s.client.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("device_id", cmd.DeviceID).Msg("publish device command failed")
		return err
	}
	return nil
}

var _ ports.CommandSink = (*RedisSink)(nil)
