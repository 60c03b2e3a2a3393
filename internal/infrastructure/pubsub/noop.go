package pubsub

import (
	"context"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
)

// NoopSink drops commands when no redis is configured.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (NoopSink) Publish(ctx context.Context, cmd domain.Command) error { return nil }

var _ ports.CommandSink = (*NoopSink)(nil)
