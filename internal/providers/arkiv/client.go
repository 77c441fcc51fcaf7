// Package arkiv persists TTL-bounded spirit snapshots and graffiti strokes
// to the Arkiv entity network and queries them back by attribute.
package arkiv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/soulscape/evolution-engine/internal/adapter"
)

var (
	// ErrInvalidEntityKey is returned when a reported entity key is not a
	// 32-byte hex string.
	ErrInvalidEntityKey = errors.New("arkiv: invalid entity key")

	// ErrRPC is returned when the entity endpoint reports an error.
	ErrRPC = errors.New("arkiv: rpc error")
)

// entityKeyPattern matches a 0x-prefixed 32-byte hex key.
var entityKeyPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// Attribute is a single queryable annotation on an entity.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entity is one stored record with its payload and annotations.
type Entity struct {
	EntityKey  string      `json:"entityKey"`
	Payload    []byte      `json:"payload"`
	Attributes []Attribute `json:"attributes"`
	ExpiresAt  int64       `json:"expiresAt,omitempty"`
}

// CreateEntityParams describes a new entity write.
type CreateEntityParams struct {
	Payload     []byte      `json:"payload"`
	ContentType string      `json:"contentType"`
	Attributes  []Attribute `json:"attributes"`
	ExpiresIn   int64       `json:"expiresIn"`
}

// CreateEntityResult is the network's acknowledgement of a write.
type CreateEntityResult struct {
	EntityKey string `json:"entityKey"`
	TxHash    string `json:"txHash"`
}

// QueryParams describes an attribute-equality query.
type QueryParams struct {
	Where       []Attribute `json:"where"`
	WithPayload bool        `json:"withPayload"`
}

// EntityClient is the low-level entity RPC surface
//
//go:generate mockgen -source=client.go -destination=../../mocks/arkiv.go -package=mocks -mock_names=EntityClient=MockEntityClient
type EntityClient interface {
	// CreateEntity stores a new entity and returns its key
	CreateEntity(ctx context.Context, params CreateEntityParams) (*CreateEntityResult, error)

	// QueryEntities returns the entities whose attributes match all filters
	QueryEntities(ctx context.Context, params QueryParams) ([]Entity, error)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createEntityResponse struct {
	Result *CreateEntityResult `json:"result"`
	Error  *rpcError           `json:"error"`
}

type queryEntitiesResponse struct {
	Result struct {
		Entities []Entity `json:"entities"`
	} `json:"result"`
	Error *rpcError `json:"error"`
}

type entityClient struct {
	endpoint string
	http     adapter.HTTPClient
	json     adapter.JSON
	nextID   atomic.Uint64
}

// NewEntityClient creates an entity client against the given RPC endpoint.
func NewEntityClient(endpoint string, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON) EntityClient {
	return &entityClient{
		endpoint: endpoint,
		http:     httpClient,
		json:     jsonAdapter,
	}
}

// CreateEntity stores a new entity and returns its key
func (c *entityClient) CreateEntity(ctx context.Context, params CreateEntityParams) (*CreateEntityResult, error) {
	var resp createEntityResponse
	if err := c.invoke(ctx, "arkiv_createEntity", []any{params}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: createEntity failed (%d): %s", ErrRPC, resp.Error.Code, resp.Error.Message)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: createEntity returned no result", ErrRPC)
	}
	if !entityKeyPattern.MatchString(resp.Result.EntityKey) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEntityKey, resp.Result.EntityKey)
	}

	return resp.Result, nil
}

// QueryEntities returns the entities whose attributes match all filters
func (c *entityClient) QueryEntities(ctx context.Context, params QueryParams) ([]Entity, error) {
	var resp queryEntitiesResponse
	if err := c.invoke(ctx, "arkiv_queryEntities", []any{params}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: queryEntities failed (%d): %s", ErrRPC, resp.Error.Code, resp.Error.Message)
	}

	return resp.Result.Entities, nil
}

// invoke posts a single JSON-RPC request and decodes the response envelope.
func (c *entityClient) invoke(ctx context.Context, method string, params []any, result any) error {
	body, err := c.json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	respBody, err := c.http.Post(ctx, c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	if err := c.json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	return nil
}
