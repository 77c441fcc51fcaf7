package evolution

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/providers/spiritchain"
	"github.com/soulscape/evolution-engine/internal/store"
	"github.com/soulscape/evolution-engine/internal/store/schema"
)

// BatchReport summarizes one batch run over every spirit owner.
type BatchReport struct {
	RunID     string   `json:"runId"`
	Attempted int      `json:"attempted"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// BatchRunner evolves every spirit owner in sequence
//
//go:generate mockgen -source=batch.go -destination=../mocks/batch.go -package=mocks -mock_names=BatchRunner=MockBatchRunner
type BatchRunner interface {
	// Owners enumerates the distinct owners of all minted spirits
	Owners(ctx context.Context) ([]string, error)
	// EvolveAll runs the pipeline for every owner, isolating failures
	EvolveAll(ctx context.Context) (*BatchReport, error)
}

type batchRunner struct {
	chain        spiritchain.Client
	orchestrator Orchestrator
	audit        store.Store // nil disables run auditing
	clock        adapter.Clock
}

// NewBatchRunner creates a batch runner. audit may be nil.
func NewBatchRunner(chain spiritchain.Client, orchestrator Orchestrator, audit store.Store, clock adapter.Clock) BatchRunner {
	return &batchRunner{
		chain:        chain,
		orchestrator: orchestrator,
		audit:        audit,
		clock:        clock,
	}
}

// Owners enumerates the distinct owners of all minted spirits. Token ids
// start at 1; burned or missing tokens are skipped.
func (r *batchRunner) Owners(ctx context.Context) ([]string, error) {
	supply, err := r.chain.TotalSupply(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read total supply: %w", err)
	}

	var owners []string
	seen := make(map[string]struct{})

	one := big.NewInt(1)
	for id := big.NewInt(1); id.Cmp(supply) <= 0; id = new(big.Int).Add(id, one) {
		owner, err := r.chain.OwnerOf(ctx, id)
		if err != nil {
			logger.WarnCtx(ctx, "skipping token without owner",
				zap.String("tokenId", id.String()),
				zap.Error(err))
			continue
		}

		key := strings.ToLower(owner)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		owners = append(owners, owner)
	}

	return owners, nil
}

// EvolveAll runs the pipeline for every owner. One owner's failure never
// stops the batch; evolutions run in sequence because they share a signing
// account and its nonce.
func (r *batchRunner) EvolveAll(ctx context.Context) (*BatchReport, error) {
	owners, err := r.Owners(ctx)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{RunID: uuid.NewString()}

	run := &schema.EvolutionRun{
		ID:        report.RunID,
		Status:    schema.RunStatusRunning,
		StartedAt: r.clock.Now(),
	}
	r.record(ctx, run, true)

	logger.InfoCtx(ctx, "starting batch evolution",
		zap.String("runId", report.RunID),
		zap.Int("owners", len(owners)))

	for _, owner := range owners {
		report.Attempted++

		if _, err := r.orchestrator.Evolve(ctx, owner); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", owner, err))
			logger.ErrorCtx(ctx, err,
				zap.String("message", "failed to evolve owner"),
				zap.String("runId", report.RunID),
				zap.String("owner", owner))
			continue
		}

		report.Succeeded++
	}

	finished := r.clock.Now()
	run.Status = schema.RunStatusCompleted
	run.Attempted = report.Attempted
	run.Succeeded = report.Succeeded
	run.Failed = report.Failed
	run.Errors = strings.Join(report.Errors, "\n")
	run.FinishedAt = &finished
	r.record(ctx, run, false)

	logger.InfoCtx(ctx, "batch evolution complete",
		zap.String("runId", report.RunID),
		zap.Int("attempted", report.Attempted),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))

	return report, nil
}

// record writes the run audit row. Auditing is best effort.
func (r *batchRunner) record(ctx context.Context, run *schema.EvolutionRun, create bool) {
	if r.audit == nil {
		return
	}

	var err error
	if create {
		err = r.audit.CreateEvolutionRun(ctx, run)
	} else {
		err = r.audit.UpdateEvolutionRun(ctx, run)
	}
	if err != nil {
		logger.WarnCtx(ctx, "failed to record evolution run",
			zap.String("runId", run.ID),
			zap.Error(err))
	}
}
