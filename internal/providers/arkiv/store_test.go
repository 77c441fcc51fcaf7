package arkiv_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/mocks"
	"github.com/soulscape/evolution-engine/internal/providers/arkiv"
)

const testEntityKey = "0x" + "ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12"

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

func attributeMap(attrs []arkiv.Attribute) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value
	}
	return out
}

func TestWriteSnapshot_MirrorsVectorIntoAttributes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEntityClient(ctrl)

	var captured arkiv.CreateEntityParams
	client.EXPECT().
		CreateEntity(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params arkiv.CreateEntityParams) (*arkiv.CreateEntityResult, error) {
			captured = params
			return &arkiv.CreateEntityResult{EntityKey: testEntityKey, TxHash: "0xtx"}, nil
		})

	store := arkiv.NewStore(client, adapter.NewJSON())
	entityKey, err := store.WriteSnapshot(context.Background(), domain.Snapshot{
		OwnerAddress: "0xAbC0000000000000000000000000000000000001",
		TokenID:      "7",
		AttributeVector: domain.AttributeVector{
			Aggression: 70, Serenity: 24, Chaos: 0, Influence: 14, Connectivity: 20,
		},
		Stage:     domain.StageWild,
		CreatedAt: 1700000000000,
	})

	assert.NoError(t, err)
	assert.Equal(t, testEntityKey, entityKey)

	attrs := attributeMap(captured.Attributes)
	assert.Equal(t, "spiritSnapshot", attrs["type"])
	assert.Equal(t, "0xabc0000000000000000000000000000000000001", attrs["spiritAddress"])
	assert.Equal(t, "7", attrs["tokenId"])
	assert.Equal(t, "wild", attrs["stage"])
	assert.Equal(t, "70", attrs["aggression"])
	assert.Equal(t, "24", attrs["serenity"])
	assert.Equal(t, "0", attrs["chaos"])
	assert.Equal(t, "14", attrs["influence"])
	assert.Equal(t, "20", attrs["connectivity"])
	assert.Equal(t, int64(30*24*60*60), captured.ExpiresIn)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(captured.Payload, &payload))
	assert.Equal(t, "0xAbC0000000000000000000000000000000000001", payload["spiritAddress"])
	assert.Equal(t, float64(1700000000000), payload["createdAt"])
}

func TestWriteStroke_AttributeTimestampInSeconds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEntityClient(ctrl)

	var captured arkiv.CreateEntityParams
	client.EXPECT().
		CreateEntity(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params arkiv.CreateEntityParams) (*arkiv.CreateEntityResult, error) {
			captured = params
			return &arkiv.CreateEntityResult{EntityKey: testEntityKey}, nil
		})

	store := arkiv.NewStore(client, adapter.NewJSON())
	_, err := store.WriteStroke(context.Background(), domain.Stroke{
		X:         12,
		Y:         300,
		Color:     0x00ff00,
		TokenID:   "7",
		Timestamp: 1700000000000,
		TxHash:    "0xpaint",
	})

	assert.NoError(t, err)

	attrs := attributeMap(captured.Attributes)
	assert.Equal(t, "graffitiStroke", attrs["type"])
	assert.Equal(t, "12", attrs["x"])
	assert.Equal(t, "300", attrs["y"])
	assert.Equal(t, "0x00ff00", attrs["color"])
	// Payload keeps milliseconds while the attribute carries seconds.
	assert.Equal(t, "1700000000", attrs["timestamp"])
	assert.Equal(t, "0xpaint", attrs["txHash"])
}

func TestQuerySnapshots_SkipsBadPayloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEntityClient(ctrl)
	client.EXPECT().
		QueryEntities(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params arkiv.QueryParams) ([]arkiv.Entity, error) {
			attrs := attributeMap(params.Where)
			assert.Equal(t, "spiritSnapshot", attrs["type"])
			assert.Equal(t, "0xabc0000000000000000000000000000000000001", attrs["spiritAddress"])
			assert.Equal(t, "7", attrs["tokenId"])
			assert.True(t, params.WithPayload)

			return []arkiv.Entity{
				{EntityKey: testEntityKey, Payload: []byte(`{"spiritAddress":"0xabc","tokenId":"7","aggression":70,"stage":"wild","createdAt":1700000000000}`)},
				{EntityKey: "0xdeadbeef", Payload: []byte(`not json`)},
			}, nil
		})

	store := arkiv.NewStore(client, adapter.NewJSON())
	snapshots, err := store.QuerySnapshots(context.Background(), "0xAbC0000000000000000000000000000000000001", "7")

	assert.NoError(t, err)
	assert.Len(t, snapshots, 1)
	assert.Equal(t, testEntityKey, snapshots[0].EntityKey)
	assert.Equal(t, 70, snapshots[0].Aggression)
	assert.Equal(t, domain.StageWild, snapshots[0].Stage)
}

func TestQueryStrokes_HonorsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEntityClient(ctrl)
	client.EXPECT().
		QueryEntities(gomock.Any(), gomock.Any()).
		Return([]arkiv.Entity{
			{EntityKey: "0x01", Payload: []byte(`{"x":1,"y":1,"color":255,"timestamp":1700000000000}`)},
			{EntityKey: "0x02", Payload: []byte(`{"x":2,"y":2,"color":255,"timestamp":1700000001000}`)},
			{EntityKey: "0x03", Payload: []byte(`{"x":3,"y":3,"color":255,"timestamp":1700000002000}`)},
		}, nil)

	store := arkiv.NewStore(client, adapter.NewJSON())
	strokes, err := store.QueryStrokes(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, strokes, 2)
	assert.Equal(t, uint16(1), strokes[0].X)
	assert.Equal(t, "0x02", strokes[1].EntityKey)
}

func TestWriteSnapshot_ClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEntityClient(ctrl)
	client.EXPECT().
		CreateEntity(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("rpc unavailable"))

	store := arkiv.NewStore(client, adapter.NewJSON())
	entityKey, err := store.WriteSnapshot(context.Background(), domain.Snapshot{TokenID: "7"})

	assert.Error(t, err)
	assert.Empty(t, entityKey)
}
