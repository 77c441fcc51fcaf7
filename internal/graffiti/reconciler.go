package graffiti

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/providers/arkiv"
	"github.com/soulscape/evolution-engine/internal/providers/spiritchain"
)

// Reconciler computes the current wall from stored strokes, falling back to
// a direct chain scan when the entity store is unavailable or not yet synced
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// WallState returns the merged one-stroke-per-coordinate wall
	WallState(ctx context.Context, limit int) (domain.WallState, error)
}

type reconciler struct {
	chain   spiritchain.Client
	strokes arkiv.Store
}

// NewReconciler creates a wall reconciler.
func NewReconciler(chain spiritchain.Client, strokes arkiv.Store) Reconciler {
	return &reconciler{
		chain:   chain,
		strokes: strokes,
	}
}

// WallState returns the merged one-stroke-per-coordinate wall. The entity
// store is the preferred source; when it fails, or holds no strokes yet, the
// recent chain window is scanned directly so reads degrade instead of erroring.
func (r *reconciler) WallState(ctx context.Context, limit int) (domain.WallState, error) {
	wall := domain.WallState{}

	stored, storeErr := r.strokes.QueryStrokes(ctx, limit)
	if storeErr == nil && len(stored) > 0 {
		return MergeStrokes(wall, stored, true), nil
	}

	if storeErr != nil {
		logger.WarnCtx(ctx, "entity store unavailable, reconciling wall from chain",
			zap.Error(storeErr))
	}

	chainStrokes, err := r.scanChain(ctx)
	if err != nil {
		if storeErr != nil {
			return nil, fmt.Errorf("wall reconciliation failed: store: %v, chain: %w", storeErr, err)
		}
		// The store answered with an empty wall; a failed chain scan only
		// loses the window the next sync will mirror anyway.
		logger.WarnCtx(ctx, "chain scan unavailable, serving empty wall", zap.Error(err))
		return wall, nil
	}

	return capWall(MergeStrokes(wall, chainStrokes, false), limit), nil
}

// capWall trims the wall to the limit newest strokes, matching the cap the
// store query applies on the primary path.
func capWall(wall domain.WallState, limit int) domain.WallState {
	if limit <= 0 || len(wall) <= limit {
		return wall
	}

	strokes := make([]domain.Stroke, 0, len(wall))
	for _, stroke := range wall {
		strokes = append(strokes, stroke)
	}
	sort.Slice(strokes, func(i, j int) bool {
		return strokes[i].Timestamp > strokes[j].Timestamp
	})

	capped := domain.WallState{}
	for _, stroke := range strokes[:limit] {
		capped[stroke.Coordinate()] = stroke
	}

	return capped
}

// scanChain decodes the paint events of the recent block window.
func (r *reconciler) scanChain(ctx context.Context) ([]domain.Stroke, error) {
	head, err := r.chain.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}

	fromBlock := uint64(0)
	if head > SyncHorizon {
		fromBlock = head - SyncHorizon
	}

	logs, err := r.chain.FilterPaintLogs(ctx, fromBlock, head)
	if err != nil {
		return nil, err
	}

	strokes := make([]domain.Stroke, 0, len(logs))
	for _, vLog := range logs {
		stroke, err := r.chain.DecodePaintLog(vLog)
		if err != nil {
			logger.WarnCtx(ctx, "skipping undecodable paint log",
				zap.String("txHash", vLog.TxHash.Hex()),
				zap.Error(err))
			continue
		}
		strokes = append(strokes, *stroke)
	}

	return strokes, nil
}

// MergeStrokes folds strokes into the wall with last-write-wins per
// coordinate. An incoming stroke replaces the resident one only if its
// timestamp is strictly newer; on equal timestamps the incoming stroke wins
// only when its source is authoritative.
func MergeStrokes(wall domain.WallState, strokes []domain.Stroke, authoritative bool) domain.WallState {
	for _, stroke := range strokes {
		coord := stroke.Coordinate()

		resident, occupied := wall[coord]
		switch {
		case !occupied:
			wall[coord] = stroke
		case stroke.Timestamp > resident.Timestamp:
			wall[coord] = stroke
		case stroke.Timestamp == resident.Timestamp && authoritative:
			wall[coord] = stroke
		}
	}

	return wall
}
