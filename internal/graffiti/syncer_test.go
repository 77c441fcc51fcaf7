package graffiti_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/graffiti"
	"github.com/soulscape/evolution-engine/internal/mocks"
)

// testSyncerMocks contains all the mocks needed for testing the syncer
type testSyncerMocks struct {
	ctrl      *gomock.Controller
	chain     *mocks.MockChainClient
	strokes   *mocks.MockSnapshotStore
	cursor    *mocks.MockStore
	publisher *mocks.MockPublisher
	syncer    graffiti.Syncer
}

// setupTestSyncer creates all the mocks and syncer for testing
func setupTestSyncer(t *testing.T) *testSyncerMocks {
	ctrl := gomock.NewController(t)

	tm := &testSyncerMocks{
		ctrl:      ctrl,
		chain:     mocks.NewMockChainClient(ctrl),
		strokes:   mocks.NewMockSnapshotStore(ctrl),
		cursor:    mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
	}
	tm.syncer = graffiti.NewSyncer(tm.chain, tm.strokes, tm.cursor, tm.publisher)

	return tm
}

func paintLog(n uint64) types.Log {
	return types.Log{
		TxHash:      common.BigToHash(common.Big1),
		BlockNumber: n,
	}
}

func TestSyncer_Sync_MirrorsDecodableLogs(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tm.ctrl.Finish()

	logs := []types.Log{paintLog(100), paintLog(101)}
	first := &domain.Stroke{X: 3, Y: 4, Color: 0x00ff00, TokenID: "7", Timestamp: 1700000000000}
	second := &domain.Stroke{X: 5, Y: 6, Color: 0xff0000, TokenID: "9", Timestamp: 1700000001000}

	tm.chain.EXPECT().FilterPaintLogs(gomock.Any(), uint64(100), uint64(200)).Return(logs, nil)
	tm.chain.EXPECT().DecodePaintLog(logs[0]).Return(first, nil)
	tm.chain.EXPECT().DecodePaintLog(logs[1]).Return(second, nil)
	tm.strokes.EXPECT().WriteStroke(gomock.Any(), *first).Return("0xkey1", nil)
	tm.strokes.EXPECT().WriteStroke(gomock.Any(), *second).Return("0xkey2", nil)
	tm.publisher.EXPECT().PublishStrokeSynced(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	report, err := tm.syncer.Sync(context.Background(), 100, 200)

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Synced)
}

func TestSyncer_Sync_DeduplicatesByCoordinate(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tm.ctrl.Finish()

	// Two paints of the same cell in one window: only the newest is mirrored.
	logs := []types.Log{paintLog(100), paintLog(101)}
	older := &domain.Stroke{X: 3, Y: 4, Color: 0x111111, TokenID: "7", Timestamp: 1700000000000}
	newer := &domain.Stroke{X: 3, Y: 4, Color: 0x222222, TokenID: "8", Timestamp: 1700000005000}

	tm.chain.EXPECT().FilterPaintLogs(gomock.Any(), uint64(100), uint64(200)).Return(logs, nil)
	tm.chain.EXPECT().DecodePaintLog(logs[0]).Return(older, nil)
	tm.chain.EXPECT().DecodePaintLog(logs[1]).Return(newer, nil)
	tm.strokes.EXPECT().WriteStroke(gomock.Any(), *newer).Return("0xkey", nil)
	tm.publisher.EXPECT().PublishStrokeSynced(gomock.Any(), gomock.Any()).Return(nil)

	report, err := tm.syncer.Sync(context.Background(), 100, 200)

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Synced)
}

func TestSyncer_Sync_SkipsFailedLogs(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tm.ctrl.Finish()

	logs := []types.Log{paintLog(100), paintLog(101), paintLog(102)}
	rejected := &domain.Stroke{X: 1, Y: 1, Color: 0xff0000, TokenID: "3", Timestamp: 1700000000000}
	accepted := &domain.Stroke{X: 2, Y: 2, Color: 0x0000ff, TokenID: "3", Timestamp: 1700000001000}

	tm.chain.EXPECT().FilterPaintLogs(gomock.Any(), uint64(100), uint64(200)).Return(logs, nil)
	// One undecodable log, one store failure, one success.
	tm.chain.EXPECT().DecodePaintLog(logs[0]).Return(nil, errors.New("bad topics"))
	tm.chain.EXPECT().DecodePaintLog(logs[1]).Return(rejected, nil)
	tm.chain.EXPECT().DecodePaintLog(logs[2]).Return(accepted, nil)
	tm.strokes.EXPECT().WriteStroke(gomock.Any(), *rejected).Return("", errors.New("rpc error"))
	tm.strokes.EXPECT().WriteStroke(gomock.Any(), *accepted).Return("0xkey", nil)
	tm.publisher.EXPECT().PublishStrokeSynced(gomock.Any(), gomock.Any()).Return(nil)

	report, err := tm.syncer.Sync(context.Background(), 100, 200)

	assert.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Synced)
}

func TestSyncer_Sync_EmptyWindow(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tm.ctrl.Finish()

	tm.chain.EXPECT().FilterPaintLogs(gomock.Any(), uint64(50), uint64(60)).Return(nil, nil)

	report, err := tm.syncer.Sync(context.Background(), 50, 60)

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, report.Synced)
}

func TestSyncer_SyncFromCursor_ResumesAfterCursor(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tm.ctrl.Finish()

	head := uint64(50000)
	tm.chain.EXPECT().LatestBlock(gomock.Any()).Return(head, nil)
	tm.cursor.EXPECT().GetBlockCursor(gomock.Any(), "graffiti").Return(uint64(49500), nil)
	tm.chain.EXPECT().FilterPaintLogs(gomock.Any(), uint64(49501), head).Return(nil, nil)
	tm.cursor.EXPECT().SetBlockCursor(gomock.Any(), "graffiti", head).Return(nil)

	report, err := tm.syncer.SyncFromCursor(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, uint64(49501), report.FromBlock)
	assert.Equal(t, head, report.ToBlock)
}

func TestSyncer_SyncFromCursor_HorizonBoundsStaleCursor(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tm.ctrl.Finish()

	head := uint64(50000)
	tm.chain.EXPECT().LatestBlock(gomock.Any()).Return(head, nil)
	// Cursor far behind the horizon window: the sync starts at the horizon.
	tm.cursor.EXPECT().GetBlockCursor(gomock.Any(), "graffiti").Return(uint64(100), nil)
	tm.chain.EXPECT().
		FilterPaintLogs(gomock.Any(), head-graffiti.SyncHorizon, head).
		Return(nil, nil)
	tm.cursor.EXPECT().SetBlockCursor(gomock.Any(), "graffiti", head).Return(nil)

	report, err := tm.syncer.SyncFromCursor(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, head-graffiti.SyncHorizon, report.FromBlock)
}

func TestSyncer_SyncFromCursor_CaughtUp(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tm.ctrl.Finish()

	head := uint64(50000)
	tm.chain.EXPECT().LatestBlock(gomock.Any()).Return(head, nil)
	tm.cursor.EXPECT().GetBlockCursor(gomock.Any(), "graffiti").Return(head, nil)

	report, err := tm.syncer.SyncFromCursor(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, head+1, report.FromBlock)
}

func TestSyncer_SyncFromCursor_DoesNotAdvanceCursorOnFailure(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tm.ctrl.Finish()

	head := uint64(50000)
	tm.chain.EXPECT().LatestBlock(gomock.Any()).Return(head, nil)
	tm.cursor.EXPECT().GetBlockCursor(gomock.Any(), "graffiti").Return(uint64(49999), nil)
	tm.chain.EXPECT().
		FilterPaintLogs(gomock.Any(), uint64(50000), head).
		Return(nil, errors.New("rpc down"))

	report, err := tm.syncer.SyncFromCursor(context.Background())

	assert.Error(t, err)
	assert.Nil(t, report)
}
