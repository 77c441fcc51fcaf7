package arkiv

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/logger"
)

const (
	entityContentType = "application/json"

	// Snapshots and strokes auto-expire after 30 days.
	entityTTLSeconds = 30 * 24 * 60 * 60

	typeSnapshot = "spiritSnapshot"
	typeStroke   = "graffitiStroke"
)

// Store is the snapshot and stroke persistence surface used by the evolution
// pipeline, the graffiti syncer and the API
//
//go:generate mockgen -source=store.go -destination=../../mocks/arkivstore.go -package=mocks -mock_names=Store=MockSnapshotStore
type Store interface {
	// WriteSnapshot persists an evolution snapshot and returns its entity key
	WriteSnapshot(ctx context.Context, snapshot domain.Snapshot) (string, error)

	// QuerySnapshots returns every live snapshot for an owner and token
	QuerySnapshots(ctx context.Context, ownerAddress, tokenID string) ([]domain.Snapshot, error)

	// WriteStroke persists a paint event and returns its entity key
	WriteStroke(ctx context.Context, stroke domain.Stroke) (string, error)

	// QueryStrokes returns up to limit live strokes, unmerged
	QueryStrokes(ctx context.Context, limit int) ([]domain.Stroke, error)
}

type store struct {
	client EntityClient
	json   adapter.JSON
}

// NewStore creates a Store backed by the given entity client.
func NewStore(client EntityClient, jsonAdapter adapter.JSON) Store {
	return &store{
		client: client,
		json:   jsonAdapter,
	}
}

// WriteSnapshot persists an evolution snapshot and returns its entity key.
// Every vector dimension is mirrored into attributes so snapshots stay
// queryable without payload reads.
func (s *store) WriteSnapshot(ctx context.Context, snapshot domain.Snapshot) (string, error) {
	payload, err := s.json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	result, err := s.client.CreateEntity(ctx, CreateEntityParams{
		Payload:     payload,
		ContentType: entityContentType,
		Attributes: []Attribute{
			{Key: "type", Value: typeSnapshot},
			{Key: "spiritAddress", Value: strings.ToLower(snapshot.OwnerAddress)},
			{Key: "tokenId", Value: snapshot.TokenID},
			{Key: "stage", Value: string(snapshot.Stage)},
			{Key: "aggression", Value: strconv.Itoa(snapshot.Aggression)},
			{Key: "serenity", Value: strconv.Itoa(snapshot.Serenity)},
			{Key: "chaos", Value: strconv.Itoa(snapshot.Chaos)},
			{Key: "influence", Value: strconv.Itoa(snapshot.Influence)},
			{Key: "connectivity", Value: strconv.Itoa(snapshot.Connectivity)},
		},
		ExpiresIn: entityTTLSeconds,
	})
	if err != nil {
		return "", err
	}

	return result.EntityKey, nil
}

// QuerySnapshots returns every live snapshot for an owner and token.
// Entities with unparseable payloads are skipped, not fatal.
func (s *store) QuerySnapshots(ctx context.Context, ownerAddress, tokenID string) ([]domain.Snapshot, error) {
	entities, err := s.client.QueryEntities(ctx, QueryParams{
		Where: []Attribute{
			{Key: "type", Value: typeSnapshot},
			{Key: "spiritAddress", Value: strings.ToLower(ownerAddress)},
			{Key: "tokenId", Value: tokenID},
		},
		WithPayload: true,
	})
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.Snapshot, 0, len(entities))
	for _, entity := range entities {
		var snapshot domain.Snapshot
		if err := s.json.Unmarshal(entity.Payload, &snapshot); err != nil {
			logger.WarnCtx(ctx, "skipping snapshot with bad payload",
				zap.String("entityKey", entity.EntityKey),
				zap.Error(err))
			continue
		}
		snapshot.EntityKey = entity.EntityKey
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// WriteStroke persists a paint event and returns its entity key. The
// timestamp attribute carries seconds while the payload carries milliseconds,
// matching what wall readers expect.
func (s *store) WriteStroke(ctx context.Context, stroke domain.Stroke) (string, error) {
	payload, err := s.json.Marshal(stroke)
	if err != nil {
		return "", err
	}

	result, err := s.client.CreateEntity(ctx, CreateEntityParams{
		Payload:     payload,
		ContentType: entityContentType,
		Attributes: []Attribute{
			{Key: "type", Value: typeStroke},
			{Key: "x", Value: strconv.FormatUint(uint64(stroke.X), 10)},
			{Key: "y", Value: strconv.FormatUint(uint64(stroke.Y), 10)},
			{Key: "tokenId", Value: stroke.TokenID},
			{Key: "color", Value: hexColor(stroke.Color)},
			{Key: "timestamp", Value: strconv.FormatInt(stroke.Timestamp/1000, 10)},
			{Key: "txHash", Value: stroke.TxHash},
		},
		ExpiresIn: entityTTLSeconds,
	})
	if err != nil {
		return "", err
	}

	return result.EntityKey, nil
}

// QueryStrokes returns up to limit live strokes, unmerged. A limit of zero or
// less means no cap.
func (s *store) QueryStrokes(ctx context.Context, limit int) ([]domain.Stroke, error) {
	entities, err := s.client.QueryEntities(ctx, QueryParams{
		Where: []Attribute{
			{Key: "type", Value: typeStroke},
		},
		WithPayload: true,
	})
	if err != nil {
		return nil, err
	}

	strokes := make([]domain.Stroke, 0, len(entities))
	for _, entity := range entities {
		if limit > 0 && len(strokes) >= limit {
			break
		}

		var stroke domain.Stroke
		if err := s.json.Unmarshal(entity.Payload, &stroke); err != nil {
			logger.WarnCtx(ctx, "skipping stroke with bad payload",
				zap.String("entityKey", entity.EntityKey),
				zap.Error(err))
			continue
		}
		stroke.EntityKey = entity.EntityKey
		strokes = append(strokes, stroke)
	}

	return strokes, nil
}

// hexColor renders a packed RGB color the way wall queries filter on it.
func hexColor(color uint32) string {
	return fmt.Sprintf("0x%06x", color)
}
