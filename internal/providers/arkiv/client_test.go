package arkiv_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/mocks"
	"github.com/soulscape/evolution-engine/internal/providers/arkiv"
)

const endpoint = "https://arkiv.example/rpc"

func TestCreateEntity_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), endpoint, "application/json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, url, contentType string, body io.Reader) ([]byte, error) {
			raw, err := io.ReadAll(body)
			assert.NoError(t, err)

			var req map[string]interface{}
			assert.NoError(t, json.Unmarshal(raw, &req))
			assert.Equal(t, "2.0", req["jsonrpc"])
			assert.Equal(t, "arkiv_createEntity", req["method"])

			return []byte(`{"result":{"entityKey":"` + testEntityKey + `","txHash":"0xtx"}}`), nil
		})

	client := arkiv.NewEntityClient(endpoint, httpClient, adapter.NewJSON())
	result, err := client.CreateEntity(context.Background(), arkiv.CreateEntityParams{
		Payload:     []byte(`{}`),
		ContentType: "application/json",
	})

	assert.NoError(t, err)
	assert.Equal(t, testEntityKey, result.EntityKey)
	assert.Equal(t, "0xtx", result.TxHash)
}

func TestCreateEntity_RejectsMalformedEntityKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), endpoint, "application/json", gomock.Any()).
		Return([]byte(`{"result":{"entityKey":"0x1234","txHash":"0xtx"}}`), nil)

	client := arkiv.NewEntityClient(endpoint, httpClient, adapter.NewJSON())
	result, err := client.CreateEntity(context.Background(), arkiv.CreateEntityParams{})

	assert.ErrorIs(t, err, arkiv.ErrInvalidEntityKey)
	assert.Nil(t, result)
}

func TestCreateEntity_RPCError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), endpoint, "application/json", gomock.Any()).
		Return([]byte(`{"error":{"code":-32000,"message":"storage full"}}`), nil)

	client := arkiv.NewEntityClient(endpoint, httpClient, adapter.NewJSON())
	result, err := client.CreateEntity(context.Background(), arkiv.CreateEntityParams{})

	assert.ErrorIs(t, err, arkiv.ErrRPC)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "storage full")
}

func TestQueryEntities_ReturnsMatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), endpoint, "application/json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, url, contentType string, body io.Reader) ([]byte, error) {
			raw, err := io.ReadAll(body)
			assert.NoError(t, err)
			assert.Contains(t, string(raw), "arkiv_queryEntities")

			resp := map[string]interface{}{
				"result": map[string]interface{}{
					"entities": []map[string]interface{}{
						{"entityKey": testEntityKey, "payload": []byte(`{"x":1}`)},
					},
				},
			}
			return json.Marshal(resp)
		})

	client := arkiv.NewEntityClient(endpoint, httpClient, adapter.NewJSON())
	entities, err := client.QueryEntities(context.Background(), arkiv.QueryParams{
		Where: []arkiv.Attribute{{Key: "type", Value: "graffitiStroke"}},
	})

	assert.NoError(t, err)
	assert.Len(t, entities, 1)
	assert.Equal(t, testEntityKey, entities[0].EntityKey)
}
