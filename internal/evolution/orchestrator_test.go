package evolution_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/evolution"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/mocks"
	"github.com/soulscape/evolution-engine/internal/scoring"
)

const owner = "0x1111111111111111111111111111111111111111"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testOrchestratorMocks contains all the mocks needed for testing the orchestrator
type testOrchestratorMocks struct {
	ctrl         *gomock.Controller
	chain        *mocks.MockChainClient
	txs          *mocks.MockTxLister
	snapshots    *mocks.MockSnapshotStore
	publisher    *mocks.MockPublisher
	clock        *mocks.MockClock
	orchestrator evolution.Orchestrator
}

// setupTestOrchestrator creates all the mocks and orchestrator for testing
func setupTestOrchestrator(t *testing.T) *testOrchestratorMocks {
	ctrl := gomock.NewController(t)

	tm := &testOrchestratorMocks{
		ctrl:      ctrl,
		chain:     mocks.NewMockChainClient(ctrl),
		txs:       mocks.NewMockTxLister(ctrl),
		snapshots: mocks.NewMockSnapshotStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.orchestrator = evolution.NewOrchestrator(
		tm.chain,
		tm.txs,
		tm.snapshots,
		tm.publisher,
		tm.clock,
	)

	return tm
}

func TestOrchestrator_Evolve_Success(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	now := time.UnixMilli(1700000000000)
	tokenID := big.NewInt(7)

	tm.chain.EXPECT().SpiritOf(gomock.Any(), owner).Return(tokenID, nil)
	tm.txs.EXPECT().ListTransactions(gomock.Any(), owner).Return(nil, nil)
	tm.chain.EXPECT().
		EvolveSpirit(gomock.Any(), tokenID, scoring.Baseline).
		Return("0xtxhash", nil)
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.snapshots.EXPECT().
		WriteSnapshot(gomock.Any(), domain.Snapshot{
			OwnerAddress:    owner,
			TokenID:         "7",
			AttributeVector: scoring.Baseline,
			Stage:           domain.StageSeed,
			CreatedAt:       now.UnixMilli(),
		}).
		Return("0xentitykey", nil)
	tm.publisher.EXPECT().PublishSpiritEvolved(gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.orchestrator.Evolve(context.Background(), owner)

	assert.NoError(t, err)
	assert.Equal(t, owner, result.OwnerAddress)
	assert.Equal(t, "7", result.TokenID)
	assert.Equal(t, scoring.Baseline, result.Vector)
	assert.Equal(t, domain.StageSeed, result.Stage)
	assert.Equal(t, "0xtxhash", result.TxHash)
	assert.Equal(t, "0xentitykey", result.EntityKey)
	assert.Equal(t, 0, result.TxCount)
}

func TestOrchestrator_Evolve_NoSpirit(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tm.chain.EXPECT().SpiritOf(gomock.Any(), owner).Return(big.NewInt(0), nil)

	result, err := tm.orchestrator.Evolve(context.Background(), owner)

	assert.ErrorIs(t, err, evolution.ErrNoSpirit)
	assert.Nil(t, result)
}

func TestOrchestrator_Evolve_ExplorerOutageDegradesToBaseline(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tokenID := big.NewInt(7)
	tm.chain.EXPECT().SpiritOf(gomock.Any(), owner).Return(tokenID, nil)
	tm.txs.EXPECT().
		ListTransactions(gomock.Any(), owner).
		Return(nil, errors.New("explorer unreachable"))
	tm.chain.EXPECT().
		EvolveSpirit(gomock.Any(), tokenID, scoring.Baseline).
		Return("0xtxhash", nil)
	tm.clock.EXPECT().Now().Return(time.UnixMilli(1700000000000)).AnyTimes()
	tm.snapshots.EXPECT().WriteSnapshot(gomock.Any(), gomock.Any()).Return("0xentitykey", nil)
	tm.publisher.EXPECT().PublishSpiritEvolved(gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.orchestrator.Evolve(context.Background(), owner)

	assert.NoError(t, err)
	assert.Equal(t, scoring.Baseline, result.Vector)
	assert.Equal(t, 0, result.TxCount)
}

func TestOrchestrator_Evolve_ChainCommitFailure(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tokenID := big.NewInt(7)
	tm.chain.EXPECT().SpiritOf(gomock.Any(), owner).Return(tokenID, nil)
	tm.txs.EXPECT().ListTransactions(gomock.Any(), owner).Return(nil, nil)
	tm.chain.EXPECT().
		EvolveSpirit(gomock.Any(), tokenID, scoring.Baseline).
		Return("", errors.New("execution reverted"))

	result, err := tm.orchestrator.Evolve(context.Background(), owner)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to evolve spirit")
}

func TestOrchestrator_Evolve_SnapshotFailureIsNotFatal(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	tokenID := big.NewInt(7)
	tm.chain.EXPECT().SpiritOf(gomock.Any(), owner).Return(tokenID, nil)
	tm.txs.EXPECT().ListTransactions(gomock.Any(), owner).Return(nil, nil)
	tm.chain.EXPECT().
		EvolveSpirit(gomock.Any(), tokenID, scoring.Baseline).
		Return("0xtxhash", nil)
	tm.clock.EXPECT().Now().Return(time.UnixMilli(1700000000000)).AnyTimes()
	tm.snapshots.EXPECT().
		WriteSnapshot(gomock.Any(), gomock.Any()).
		Return("", errors.New("entity store down"))
	tm.publisher.EXPECT().PublishSpiritEvolved(gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.orchestrator.Evolve(context.Background(), owner)

	assert.NoError(t, err)
	assert.Equal(t, "0xtxhash", result.TxHash)
	assert.Empty(t, result.EntityKey)
}

func TestOrchestrator_Evolve_NilPublisher(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	orchestrator := evolution.NewOrchestrator(tm.chain, tm.txs, tm.snapshots, nil, tm.clock)

	tokenID := big.NewInt(7)
	tm.chain.EXPECT().SpiritOf(gomock.Any(), owner).Return(tokenID, nil)
	tm.txs.EXPECT().ListTransactions(gomock.Any(), owner).Return(nil, nil)
	tm.chain.EXPECT().
		EvolveSpirit(gomock.Any(), tokenID, scoring.Baseline).
		Return("0xtxhash", nil)
	tm.clock.EXPECT().Now().Return(time.UnixMilli(1700000000000)).AnyTimes()
	tm.snapshots.EXPECT().WriteSnapshot(gomock.Any(), gomock.Any()).Return("0xentitykey", nil)

	result, err := orchestrator.Evolve(context.Background(), owner)

	assert.NoError(t, err)
	assert.Equal(t, "0xentitykey", result.EntityKey)
}

func TestOrchestrator_Evolve_RejectsConcurrentSameAddress(t *testing.T) {
	tm := setupTestOrchestrator(t)
	defer tm.ctrl.Finish()

	started := make(chan struct{})
	release := make(chan struct{})

	tm.chain.EXPECT().
		SpiritOf(gomock.Any(), owner).
		DoAndReturn(func(ctx context.Context, address string) (*big.Int, error) {
			close(started)
			<-release
			return nil, errors.New("canceled")
		})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = tm.orchestrator.Evolve(context.Background(), owner)
	}()
	<-started

	_, err := tm.orchestrator.Evolve(context.Background(), owner)
	assert.ErrorIs(t, err, evolution.ErrEvolutionInProgress)

	close(release)
	<-done
}
