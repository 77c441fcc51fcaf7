// Package messaging defines the events emitted by the evolution pipeline and
// the graffiti syncer, and the publisher interface that carries them.
package messaging

import (
	"context"

	"github.com/soulscape/evolution-engine/internal/domain"
)

// EventType discriminates the messages on the wire.
type EventType string

const (
	EventSpiritEvolved EventType = "spirit_evolved"
	EventStrokeSynced  EventType = "stroke_synced"
)

// SpiritEvolvedEvent is emitted after an evolution transaction is confirmed.
type SpiritEvolvedEvent struct {
	Type         EventType              `json:"type"`
	OwnerAddress string                 `json:"ownerAddress"`
	TokenID      string                 `json:"tokenId"`
	Vector       domain.AttributeVector `json:"vector"`
	Stage        domain.Stage           `json:"stage"`
	TxHash       string                 `json:"txHash"`
	EntityKey    string                 `json:"entityKey,omitempty"`
	Timestamp    int64                  `json:"timestamp"` // unix milliseconds
}

// StrokeSyncedEvent is emitted for each paint event mirrored to the entity
// store.
type StrokeSyncedEvent struct {
	Type      EventType `json:"type"`
	X         uint16    `json:"x"`
	Y         uint16    `json:"y"`
	Color     uint32    `json:"color"`
	TokenID   string    `json:"tokenId"`
	EntityKey string    `json:"entityKey"`
	Timestamp int64     `json:"timestamp"` // unix milliseconds
}

// Publisher defines the interface for publishing events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishSpiritEvolved publishes a confirmed evolution
	PublishSpiritEvolved(ctx context.Context, event *SpiritEvolvedEvent) error
	// PublishStrokeSynced publishes a mirrored paint event
	PublishStrokeSynced(ctx context.Context, event *StrokeSyncedEvent) error
	// Close closes the connection
	Close()
	// CloseChan returns a channel that is closed when the publisher is closed
	CloseChan() <-chan struct{}
}
