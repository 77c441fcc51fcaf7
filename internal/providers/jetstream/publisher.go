// Package jetstream implements the messaging publisher on NATS JetStream.
package jetstream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	js "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc         adapter.NatsConn
	jetstream  adapter.JetStream
	streamName string
	json       adapter.JSON

	closeOnce sync.Once
	closed    chan struct{}
}

// NewPublisher connects to NATS, provisions the spirit stream and returns a
// publisher for evolution and graffiti events.
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, stream, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := stream.CreateStream(ctx, js.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{"spirits.>"},
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to provision stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:         nc,
		jetstream:  stream,
		streamName: cfg.StreamName,
		json:       jsonAdapter,
		closed:     make(chan struct{}),
	}, nil
}

// PublishSpiritEvolved publishes a confirmed evolution
func (p *publisher) PublishSpiritEvolved(ctx context.Context, event *messaging.SpiritEvolvedEvent) error {
	event.Type = messaging.EventSpiritEvolved
	return p.publish(ctx, fmt.Sprintf("spirits.evolved.%s", event.TokenID), event)
}

// PublishStrokeSynced publishes a mirrored paint event
func (p *publisher) PublishStrokeSynced(ctx context.Context, event *messaging.StrokeSyncedEvent) error {
	event.Type = messaging.EventStrokeSynced
	return p.publish(ctx, fmt.Sprintf("spirits.graffiti.%s", event.TokenID), event)
}

func (p *publisher) publish(ctx context.Context, subject string, event any) error {
	logger.DebugCtx(ctx, "publishing NATS event", zap.String("subject", subject), zap.Any("event", event))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.jetstream.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	p.closeOnce.Do(func() {
		close(p.closed)
		if p.nc != nil {
			p.nc.Close()
		}
	})
}

// CloseChan returns a channel that is closed when the publisher is closed
func (p *publisher) CloseChan() <-chan struct{} {
	return p.closed
}
