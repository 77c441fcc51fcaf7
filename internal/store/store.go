// Package store persists sync state and batch run audit records in
// PostgreSQL.
package store

import (
	"context"

	"github.com/soulscape/evolution-engine/internal/store/schema"
)

// Store defines the persistence surface for sync cursors and run audit
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetBlockCursor retrieves the last processed block number for a stream
	GetBlockCursor(ctx context.Context, stream string) (uint64, error)
	// SetBlockCursor stores the last processed block number for a stream
	SetBlockCursor(ctx context.Context, stream string, blockNumber uint64) error

	// CreateEvolutionRun inserts a new run audit row
	CreateEvolutionRun(ctx context.Context, run *schema.EvolutionRun) error
	// UpdateEvolutionRun saves the run's current counters and status
	UpdateEvolutionRun(ctx context.Context, run *schema.EvolutionRun) error
	// RecentEvolutionRuns returns the latest runs, newest first
	RecentEvolutionRuns(ctx context.Context, limit int) ([]schema.EvolutionRun, error)
}
