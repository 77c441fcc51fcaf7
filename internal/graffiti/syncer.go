// Package graffiti mirrors PixelPainted events into the entity store and
// reconciles the shared wall from its competing stroke records.
package graffiti

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/messaging"
	"github.com/soulscape/evolution-engine/internal/providers/arkiv"
	"github.com/soulscape/evolution-engine/internal/providers/spiritchain"
	"github.com/soulscape/evolution-engine/internal/store"
)

const (
	// SyncHorizon bounds how far back a sync reaches when no cursor exists.
	SyncHorizon = 10000

	// cursorStream names the block cursor row for the paint event stream.
	cursorStream = "graffiti"

	syncWorkers = 8
)

// SyncReport counts one sync pass. Total counts decoded candidates; Synced
// counts strokes actually written to the entity store.
type SyncReport struct {
	FromBlock uint64
	ToBlock   uint64
	Total     int
	Synced    int
}

// Syncer mirrors paint events from the chain into the entity store
//
//go:generate mockgen -source=syncer.go -destination=../mocks/syncer.go -package=mocks -mock_names=Syncer=MockSyncer
type Syncer interface {
	// Sync mirrors every decodable paint event in [fromBlock, toBlock]
	Sync(ctx context.Context, fromBlock, toBlock uint64) (*SyncReport, error)

	// SyncFromCursor resumes from the stored cursor, bounded by the horizon,
	// and advances the cursor on success
	SyncFromCursor(ctx context.Context) (*SyncReport, error)
}

type syncer struct {
	chain     spiritchain.Client
	strokes   arkiv.Store
	cursor    store.Store         // nil disables cursor tracking
	publisher messaging.Publisher // nil disables event emission
}

// NewSyncer creates a paint event syncer. cursor and publisher may be nil.
func NewSyncer(chain spiritchain.Client, strokes arkiv.Store, cursor store.Store, publisher messaging.Publisher) Syncer {
	return &syncer{
		chain:     chain,
		strokes:   strokes,
		cursor:    cursor,
		publisher: publisher,
	}
}

// Sync mirrors the decodable paint events in [fromBlock, toBlock],
// deduplicated by coordinate so only the newest stroke per cell is written.
// A log that fails to decode or store is skipped, never fatal to the pass.
func (s *syncer) Sync(ctx context.Context, fromBlock, toBlock uint64) (*SyncReport, error) {
	logs, err := s.chain.FilterPaintLogs(ctx, fromBlock, toBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to scan blocks %d-%d: %w", fromBlock, toBlock, err)
	}

	report := &SyncReport{
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Total:     len(logs),
	}
	if len(logs) == 0 {
		return report, nil
	}

	decoded := make([]domain.Stroke, 0, len(logs))
	for _, vLog := range logs {
		stroke, err := s.chain.DecodePaintLog(vLog)
		if err != nil {
			logger.WarnCtx(ctx, "skipping undecodable paint log",
				zap.String("txHash", vLog.TxHash.Hex()),
				zap.Uint64("block", vLog.BlockNumber),
				zap.Error(err))
			continue
		}
		decoded = append(decoded, *stroke)
	}

	// Later logs win equal timestamps, preserving chain order per cell.
	deduped := MergeStrokes(domain.WallState{}, decoded, true)

	var synced atomic.Int64
	pool := pond.NewPool(syncWorkers)

	for _, stroke := range deduped {
		pool.Submit(func() {
			entityKey, err := s.strokes.WriteStroke(ctx, stroke)
			if err != nil {
				logger.ErrorCtx(ctx, err,
					zap.String("message", "failed to mirror stroke"),
					zap.Uint16("x", stroke.X),
					zap.Uint16("y", stroke.Y),
					zap.String("txHash", stroke.TxHash))
				return
			}

			synced.Add(1)
			s.emit(ctx, &stroke, entityKey)
		})
	}
	pool.StopAndWait()

	report.Synced = int(synced.Load())
	logger.InfoCtx(ctx, "graffiti sync pass complete",
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock),
		zap.Int("synced", report.Synced),
		zap.Int("total", report.Total))

	return report, nil
}

// SyncFromCursor resumes from the stored cursor, bounded by the horizon, and
// advances the cursor only after the pass succeeds.
func (s *syncer) SyncFromCursor(ctx context.Context) (*SyncReport, error) {
	head, err := s.chain.LatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain head: %w", err)
	}

	fromBlock := uint64(0)
	if head > SyncHorizon {
		fromBlock = head - SyncHorizon
	}

	if s.cursor != nil {
		last, err := s.cursor.GetBlockCursor(ctx, cursorStream)
		if err != nil {
			return nil, err
		}
		if last >= fromBlock {
			fromBlock = last + 1
		}
	}

	if fromBlock > head {
		return &SyncReport{FromBlock: fromBlock, ToBlock: head}, nil
	}

	report, err := s.Sync(ctx, fromBlock, head)
	if err != nil {
		return nil, err
	}

	if s.cursor != nil {
		if err := s.cursor.SetBlockCursor(ctx, cursorStream, head); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// emit publishes the mirrored stroke. Messaging is best effort.
func (s *syncer) emit(ctx context.Context, stroke *domain.Stroke, entityKey string) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishStrokeSynced(ctx, &messaging.StrokeSyncedEvent{
		X:         stroke.X,
		Y:         stroke.Y,
		Color:     stroke.Color,
		TokenID:   stroke.TokenID,
		EntityKey: entityKey,
		Timestamp: stroke.Timestamp,
	})
	if err != nil {
		logger.WarnCtx(ctx, "failed to publish stroke event",
			zap.String("entityKey", entityKey),
			zap.Error(err))
	}
}
