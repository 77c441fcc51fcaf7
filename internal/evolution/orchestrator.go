// Package evolution drives the spirit evolution pipeline: read the owner's
// chain history, score it, commit the new attribute vector on-chain, then
// snapshot the confirmed state to the entity store.
package evolution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/messaging"
	"github.com/soulscape/evolution-engine/internal/providers/arkiv"
	"github.com/soulscape/evolution-engine/internal/providers/explorer"
	"github.com/soulscape/evolution-engine/internal/providers/spiritchain"
	"github.com/soulscape/evolution-engine/internal/scoring"
)

var (
	// ErrNoSpirit is returned when the address has no minted spirit.
	ErrNoSpirit = errors.New("evolution: no spirit minted for address")

	// ErrEvolutionInProgress is returned when an evolution for the same
	// address is already running in this process.
	ErrEvolutionInProgress = errors.New("evolution: evolution already in progress for address")
)

// Result reports one completed evolution. EntityKey is empty when the
// snapshot write failed; the on-chain commit is still authoritative.
type Result struct {
	OwnerAddress string                 `json:"ownerAddress"`
	TokenID      string                 `json:"tokenId"`
	Vector       domain.AttributeVector `json:"vector"`
	Stage        domain.Stage           `json:"stage"`
	TxHash       string                 `json:"txHash"`
	EntityKey    string                 `json:"entityKey,omitempty"`
	TxCount      int                    `json:"txCount"`
}

// Orchestrator runs single-address evolutions
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// Evolve runs the full pipeline for one owner address
	Evolve(ctx context.Context, address string) (*Result, error)
}

type orchestrator struct {
	chain     spiritchain.Client
	txs       explorer.TxLister
	snapshots arkiv.Store
	publisher messaging.Publisher // nil disables event emission
	clock     adapter.Clock

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewOrchestrator wires the evolution pipeline. publisher may be nil.
func NewOrchestrator(
	chain spiritchain.Client,
	txs explorer.TxLister,
	snapshots arkiv.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Orchestrator {
	return &orchestrator{
		chain:     chain,
		txs:       txs,
		snapshots: snapshots,
		publisher: publisher,
		clock:     clock,
		inFlight:  make(map[string]struct{}),
	}
}

// Evolve runs the full pipeline for one owner address. Only one evolution per
// address may be in flight at a time; a second call returns
// ErrEvolutionInProgress instead of queueing.
func (o *orchestrator) Evolve(ctx context.Context, address string) (*Result, error) {
	key := strings.ToLower(address)
	if err := o.acquire(key); err != nil {
		return nil, err
	}
	defer o.release(key)

	tokenID, err := o.chain.SpiritOf(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve spirit for %s: %w", address, err)
	}
	if tokenID == nil || tokenID.Sign() == 0 {
		return nil, ErrNoSpirit
	}

	// An unreachable explorer degrades to an empty history, so the spirit
	// still evolves with the baseline vector.
	records, err := o.txs.ListTransactions(ctx, address)
	if err != nil {
		logger.WarnCtx(ctx, "transaction history unavailable, scoring empty history",
			zap.String("address", address),
			zap.Error(err))
		records = nil
	}

	vector := scoring.Score(records, address)
	stage := vector.Stage()

	logger.InfoCtx(ctx, "computed attribute vector",
		zap.String("address", address),
		zap.String("tokenId", tokenID.String()),
		zap.Int("txCount", len(records)),
		zap.String("vector", vector.String()),
		zap.String("stage", string(stage)))

	txHash, err := o.chain.EvolveSpirit(ctx, tokenID, vector)
	if err != nil {
		return nil, fmt.Errorf("failed to evolve spirit %s: %w", tokenID, err)
	}

	result := &Result{
		OwnerAddress: address,
		TokenID:      tokenID.String(),
		Vector:       vector,
		Stage:        stage,
		TxHash:       txHash,
		TxCount:      len(records),
	}

	// The chain is the source of truth. A failed snapshot write degrades
	// history, not the evolution itself.
	snapshot := domain.Snapshot{
		OwnerAddress:    address,
		TokenID:         tokenID.String(),
		AttributeVector: vector,
		Stage:           stage,
		CreatedAt:       o.clock.Now().UnixMilli(),
	}
	entityKey, err := o.snapshots.WriteSnapshot(ctx, snapshot)
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "failed to persist evolution snapshot"),
			zap.String("address", address),
			zap.String("tokenId", tokenID.String()))
	} else {
		result.EntityKey = entityKey
	}

	o.emit(ctx, result)

	return result, nil
}

// emit publishes the evolved event. Messaging is best effort.
func (o *orchestrator) emit(ctx context.Context, result *Result) {
	if o.publisher == nil {
		return
	}

	err := o.publisher.PublishSpiritEvolved(ctx, &messaging.SpiritEvolvedEvent{
		OwnerAddress: result.OwnerAddress,
		TokenID:      result.TokenID,
		Vector:       result.Vector,
		Stage:        result.Stage,
		TxHash:       result.TxHash,
		EntityKey:    result.EntityKey,
		Timestamp:    o.clock.Now().UnixMilli(),
	})
	if err != nil {
		logger.WarnCtx(ctx, "failed to publish evolution event",
			zap.String("tokenId", result.TokenID),
			zap.Error(err))
	}
}

func (o *orchestrator) acquire(key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, busy := o.inFlight[key]; busy {
		return ErrEvolutionInProgress
	}
	o.inFlight[key] = struct{}{}

	return nil
}

func (o *orchestrator) release(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.inFlight, key)
}
