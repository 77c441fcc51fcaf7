package spiritchain_test

import (
	"context"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/mocks"
	"github.com/soulscape/evolution-engine/internal/providers/spiritchain"
)

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

func newTestClient(t *testing.T) (spiritchain.Client, *mocks.MockEthClient, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	eth := mocks.NewMockEthClient(ctrl)

	client := spiritchain.NewClient(spiritchain.Config{
		ChainID:          big.NewInt(60138453033),
		SoulContract:     "0x1000000000000000000000000000000000000001",
		GraffitiContract: "0x2000000000000000000000000000000000000002",
	}, eth, adapter.NewClock(), nil)

	return client, eth, ctrl
}

// paintTopic packs a scalar into a 32-byte topic the way indexed event
// arguments are encoded.
func paintTopic(v uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(v))
}

func paintData(color uint64, timestamp uint64) []byte {
	data := make([]byte, 64)
	copy(data[0:32], common.BigToHash(new(big.Int).SetUint64(color)).Bytes())
	copy(data[32:64], common.BigToHash(new(big.Int).SetUint64(timestamp)).Bytes())
	return data
}

func pixelPaintedLog(x, y, tokenID, color, timestamp uint64) types.Log {
	return types.Log{
		Topics: []common.Hash{
			crypto.Keccak256Hash([]byte("PixelPainted(uint16,uint16,uint256,uint32,uint64)")),
			paintTopic(x),
			paintTopic(y),
			paintTopic(tokenID),
		},
		Data:        paintData(color, timestamp),
		TxHash:      common.HexToHash("0xfeed"),
		BlockNumber: 12345,
	}
}

func TestDecodePaintLog_Valid(t *testing.T) {
	client, _, ctrl := newTestClient(t)
	defer ctrl.Finish()

	stroke, err := client.DecodePaintLog(pixelPaintedLog(12, 300, 7, 0x00ff00, 1700000000))

	assert.NoError(t, err)
	assert.Equal(t, &domain.Stroke{
		X:         12,
		Y:         300,
		Color:     0x00ff00,
		TokenID:   "7",
		Timestamp: 1700000000000,
		TxHash:    common.HexToHash("0xfeed").Hex(),
		Block:     12345,
	}, stroke)
}

func TestDecodePaintLog_Invalid(t *testing.T) {
	client, _, ctrl := newTestClient(t)
	defer ctrl.Finish()

	tests := []struct {
		name string
		log  types.Log
	}{
		{
			name: "missing topics",
			log:  types.Log{Topics: []common.Hash{paintTopic(1)}},
		},
		{
			name: "wrong signature",
			log: types.Log{
				Topics: []common.Hash{paintTopic(1), paintTopic(2), paintTopic(3), paintTopic(4)},
				Data:   paintData(0, 0),
			},
		},
		{
			name: "truncated data",
			log: func() types.Log {
				l := pixelPaintedLog(1, 1, 1, 0, 0)
				l.Data = l.Data[:32]
				return l
			}(),
		},
		{
			name: "coordinate out of range",
			log:  pixelPaintedLog(70000, 1, 1, 0, 0),
		},
		{
			name: "color out of range",
			log:  pixelPaintedLog(1, 1, 1, 0x1_0000_0000, 0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stroke, err := client.DecodePaintLog(tc.log)
			assert.Error(t, err)
			assert.Nil(t, stroke)
		})
	}
}

// word packs a scalar into one 32-byte ABI return word.
func word(v uint64) []byte {
	return common.BigToHash(new(big.Int).SetUint64(v)).Bytes()
}

func words(vs ...uint64) []byte {
	out := make([]byte, 0, 32*len(vs))
	for _, v := range vs {
		out = append(out, word(v)...)
	}
	return out
}

func TestSpiritOf(t *testing.T) {
	client, eth, ctrl := newTestClient(t)
	defer ctrl.Finish()

	eth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(word(7), nil)

	tokenID, err := client.SpiritOf(context.Background(), "0xabc0000000000000000000000000000000000001")

	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(7), tokenID)
}

func TestGetSpirit(t *testing.T) {
	client, eth, ctrl := newTestClient(t)
	defer ctrl.Finish()

	eth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(words(70, 24, 0, 14, 20, 1700000000), nil)

	state, err := client.GetSpirit(context.Background(), big.NewInt(7))

	assert.NoError(t, err)
	assert.Equal(t, domain.AttributeVector{
		Aggression:   70,
		Serenity:     24,
		Chaos:        0,
		Influence:    14,
		Connectivity: 20,
	}, state.Vector)
	assert.Equal(t, int64(1700000000), state.LastUpdated.Unix())
}

func TestTotalSupply(t *testing.T) {
	client, eth, ctrl := newTestClient(t)
	defer ctrl.Finish()

	eth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(word(42), nil)

	supply, err := client.TotalSupply(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(42), supply)
}

func TestEvolveSpirit_ReadOnlyClientRefusesWrites(t *testing.T) {
	client, _, ctrl := newTestClient(t)
	defer ctrl.Finish()

	txHash, err := client.EvolveSpirit(context.Background(), big.NewInt(7), domain.AttributeVector{})

	assert.ErrorIs(t, err, spiritchain.ErrNoSigner)
	assert.Empty(t, txHash)
}
