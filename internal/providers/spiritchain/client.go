// Package spiritchain talks to the Soul and Graffiti contracts: attribute
// reads, the signed evolveSpirit write, ownership enumeration, and
// PixelPainted event scanning.
package spiritchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/domain"
)

const (
	callTimeout        = 30 * time.Second
	receiptPollDelay   = 2 * time.Second
	receiptWaitTimeout = 3 * time.Minute
)

// ErrNoSigner is returned when a write is attempted on a read-only client.
var ErrNoSigner = errors.New("spiritchain: no signing key configured")

// pixelPaintedSignature is the topic hash of
// PixelPainted(uint16 indexed x, uint16 indexed y, uint256 indexed tokenId, uint32 color, uint64 timestamp)
var pixelPaintedSignature = crypto.Keccak256Hash([]byte("PixelPainted(uint16,uint16,uint256,uint32,uint64)"))

// Client defines the contract surface used by the evolution pipeline and the
// graffiti syncer
//
//go:generate mockgen -source=client.go -destination=../../mocks/spiritchain.go -package=mocks -mock_names=Client=MockChainClient
type Client interface {
	// SpiritOf returns the token id owned by owner, or zero if none is minted
	SpiritOf(ctx context.Context, owner string) (*big.Int, error)

	// GetSpirit returns the current on-chain attribute tuple for a token
	GetSpirit(ctx context.Context, tokenID *big.Int) (*domain.SpiritState, error)

	// EvolveSpirit commits a new attribute vector for a token and waits for
	// the transaction to be mined; it returns the transaction hash only once
	// the receipt reports success
	EvolveSpirit(ctx context.Context, tokenID *big.Int, vector domain.AttributeVector) (string, error)

	// OwnerOf returns the current owner of a token
	OwnerOf(ctx context.Context, tokenID *big.Int) (string, error)

	// TotalSupply returns the number of minted tokens
	TotalSupply(ctx context.Context) (*big.Int, error)

	// LatestBlock returns the current head block number
	LatestBlock(ctx context.Context) (uint64, error)

	// FilterPaintLogs returns the raw PixelPainted logs in [fromBlock, toBlock]
	FilterPaintLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error)

	// DecodePaintLog decodes a single PixelPainted log into a stroke
	DecodePaintLog(vLog types.Log) (*domain.Stroke, error)

	// LastPaintTimeOf returns the unix timestamp of a token's last paint action
	LastPaintTimeOf(ctx context.Context, tokenID *big.Int) (uint64, error)

	// PaintCooldown returns the contract's paint cooldown in seconds
	PaintCooldown(ctx context.Context) (uint64, error)

	// Close closes the underlying connection
	Close()
}

// Config holds the contract addresses and chain parameters for the client.
type Config struct {
	ChainID          *big.Int
	SoulContract     string
	GraffitiContract string
}

type spiritClient struct {
	config     Config
	soulAddr   common.Address
	painterKey *ecdsa.PrivateKey // nil for read-only clients
	client     adapter.EthClient
	clock      adapter.Clock
}

// NewClient creates a new spirit chain client. signingKey may be nil, in
// which case writes fail with ErrNoSigner.
func NewClient(cfg Config, client adapter.EthClient, clock adapter.Clock, signingKey *ecdsa.PrivateKey) Client {
	return &spiritClient{
		config:     cfg,
		soulAddr:   common.HexToAddress(cfg.SoulContract),
		painterKey: signingKey,
		client:     client,
		clock:      clock,
	}
}

// SpiritOf returns the token id owned by owner, or zero if none is minted
func (c *spiritClient) SpiritOf(ctx context.Context, owner string) (*big.Int, error) {
	spiritOfABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"spiritOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := spiritOfABI.Pack("spiritOf", common.HexToAddress(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, c.soulAddr, data)
	if err != nil {
		return nil, fmt.Errorf("failed to call spiritOf: %w", err)
	}

	var tokenID *big.Int
	if err := spiritOfABI.UnpackIntoInterface(&tokenID, "spiritOf", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	return tokenID, nil
}

// GetSpirit returns the current on-chain attribute tuple for a token
func (c *spiritClient) GetSpirit(ctx context.Context, tokenID *big.Int) (*domain.SpiritState, error) {
	getSpiritABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"getSpirit","outputs":[{"name":"aggression","type":"uint32"},{"name":"serenity","type":"uint32"},{"name":"chaos","type":"uint32"},{"name":"influence","type":"uint32"},{"name":"connectivity","type":"uint32"},{"name":"lastUpdated","type":"uint64"}],"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := getSpiritABI.Pack("getSpirit", tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, c.soulAddr, data)
	if err != nil {
		return nil, fmt.Errorf("failed to call getSpirit: %w", err)
	}

	values, err := getSpiritABI.Unpack("getSpirit", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}
	if len(values) != 6 {
		return nil, fmt.Errorf("unexpected getSpirit output arity: %d", len(values))
	}

	attrs := make([]uint32, 5)
	for i := range 5 {
		v, ok := values[i].(uint32)
		if !ok {
			return nil, fmt.Errorf("unexpected getSpirit output type at %d: %T", i, values[i])
		}
		attrs[i] = v
	}
	lastUpdated, ok := values[5].(uint64)
	if !ok {
		return nil, fmt.Errorf("unexpected getSpirit lastUpdated type: %T", values[5])
	}

	return &domain.SpiritState{
		Vector: domain.AttributeVector{
			Aggression:   int(attrs[0]),
			Serenity:     int(attrs[1]),
			Chaos:        int(attrs[2]),
			Influence:    int(attrs[3]),
			Connectivity: int(attrs[4]),
		},
		LastUpdated: c.clock.Unix(int64(lastUpdated), 0), //nolint:gosec,G115 // contract timestamps fit in int64
	}, nil
}

// EvolveSpirit commits a new attribute vector and waits for the receipt.
// An unconfirmed or reverted transaction is never reported as success.
func (c *spiritClient) EvolveSpirit(ctx context.Context, tokenID *big.Int, vector domain.AttributeVector) (string, error) {
	if c.painterKey == nil {
		return "", ErrNoSigner
	}

	evolveABI, err := abi.JSON(strings.NewReader(`[{"inputs":[{"name":"tokenId","type":"uint256"},{"name":"aggression","type":"uint32"},{"name":"serenity","type":"uint32"},{"name":"chaos","type":"uint32"},{"name":"influence","type":"uint32"},{"name":"connectivity","type":"uint32"}],"name":"evolveSpirit","outputs":[],"stateMutability":"nonpayable","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := evolveABI.Pack("evolveSpirit", tokenID,
		uint32(vector.Aggression), //nolint:gosec,G115 // vector fields are clamped to [0,100]
		uint32(vector.Serenity),   //nolint:gosec,G115
		uint32(vector.Chaos),      //nolint:gosec,G115
		uint32(vector.Influence),  //nolint:gosec,G115
		uint32(vector.Connectivity)) //nolint:gosec,G115
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	tx, err := c.submitTransaction(ctx, c.soulAddr, data)
	if err != nil {
		return "", err
	}

	if err := c.waitMined(ctx, tx.Hash()); err != nil {
		return "", err
	}

	return tx.Hash().Hex(), nil
}

// submitTransaction builds, signs and sends a transaction from the evolution
// account to the given contract.
func (c *spiritClient) submitTransaction(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	from := crypto.PubkeyToAddress(c.painterKey.PublicKey)

	nonce, err := c.client.PendingNonceAt(callCtx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := c.client.EstimateGas(callCtx, ethereum.CallMsg{
		From: from,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.config.ChainID), c.painterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(callCtx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx, nil
}

// waitMined polls for the receipt until the transaction is mined, the wait
// times out, or the context is canceled. A reverted receipt is an error.
func (c *spiritClient) waitMined(ctx context.Context, txHash common.Hash) error {
	waitCtx, cancel := context.WithTimeout(ctx, receiptWaitTimeout)
	defer cancel()

	for {
		receipt, err := c.client.TransactionReceipt(waitCtx, txHash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted", txHash.Hex())
			}
			return nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return fmt.Errorf("failed to get receipt for %s: %w", txHash.Hex(), err)
		}

		select {
		case <-waitCtx.Done():
			return fmt.Errorf("timed out waiting for transaction %s: %w", txHash.Hex(), waitCtx.Err())
		case <-c.clock.After(receiptPollDelay):
		}
	}
}

// OwnerOf returns the current owner of a token
func (c *spiritClient) OwnerOf(ctx context.Context, tokenID *big.Int) (string, error) {
	ownerOfABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := ownerOfABI.Pack("ownerOf", tokenID)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, c.soulAddr, data)
	if err != nil {
		return "", fmt.Errorf("failed to call ownerOf: %w", err)
	}

	var owner common.Address
	if err := ownerOfABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return owner.Hex(), nil
}

// TotalSupply returns the number of minted tokens
func (c *spiritClient) TotalSupply(ctx context.Context) (*big.Int, error) {
	totalSupplyABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := totalSupplyABI.Pack("totalSupply")
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, c.soulAddr, data)
	if err != nil {
		return nil, fmt.Errorf("failed to call totalSupply: %w", err)
	}

	var supply *big.Int
	if err := totalSupplyABI.UnpackIntoInterface(&supply, "totalSupply", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	return supply, nil
}

// LatestBlock returns the current head block number
func (c *spiritClient) LatestBlock(ctx context.Context) (uint64, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	header, err := c.client.HeaderByNumber(callCtx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest header: %w", err)
	}

	return header.Number.Uint64(), nil
}

// FilterPaintLogs returns the raw PixelPainted logs in [fromBlock, toBlock]
func (c *spiritClient) FilterPaintLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	callCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{common.HexToAddress(c.config.GraffitiContract)},
		Topics:    [][]common.Hash{{pixelPaintedSignature}},
	}

	logs, err := c.client.FilterLogs(callCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter paint logs: %w", err)
	}

	return logs, nil
}

// DecodePaintLog decodes a single PixelPainted log into a stroke. The x, y
// and tokenId values ride in the indexed topics; color and timestamp in data.
func (c *spiritClient) DecodePaintLog(vLog types.Log) (*domain.Stroke, error) {
	if len(vLog.Topics) != 4 {
		return nil, fmt.Errorf("invalid PixelPainted event: expected 4 topics, got %d", len(vLog.Topics))
	}
	if vLog.Topics[0] != pixelPaintedSignature {
		return nil, fmt.Errorf("unexpected event signature: %s", vLog.Topics[0].Hex())
	}
	if len(vLog.Data) < 64 {
		return nil, fmt.Errorf("invalid PixelPainted event: insufficient data")
	}

	x := new(big.Int).SetBytes(vLog.Topics[1].Bytes())
	y := new(big.Int).SetBytes(vLog.Topics[2].Bytes())
	if !x.IsUint64() || x.Uint64() > 0xffff || !y.IsUint64() || y.Uint64() > 0xffff {
		return nil, fmt.Errorf("invalid PixelPainted coordinates: (%s, %s)", x, y)
	}

	tokenID := new(big.Int).SetBytes(vLog.Topics[3].Bytes())
	color := new(big.Int).SetBytes(vLog.Data[0:32])
	timestamp := new(big.Int).SetBytes(vLog.Data[32:64])
	if !color.IsUint64() || color.Uint64() > 0xffffffff {
		return nil, fmt.Errorf("invalid PixelPainted color: %s", color)
	}

	return &domain.Stroke{
		X:         uint16(x.Uint64()),     //nolint:gosec,G115 // bounds checked above
		Y:         uint16(y.Uint64()),     //nolint:gosec,G115
		Color:     uint32(color.Uint64()), //nolint:gosec,G115
		TokenID:   tokenID.String(),
		Timestamp: int64(timestamp.Uint64()) * 1000, //nolint:gosec,G115 // contract timestamps fit in int64
		TxHash:    vLog.TxHash.Hex(),
		Block:     vLog.BlockNumber,
	}, nil
}

// LastPaintTimeOf returns the unix timestamp of a token's last paint action
func (c *spiritClient) LastPaintTimeOf(ctx context.Context, tokenID *big.Int) (uint64, error) {
	lastPaintABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"lastPaintTimeOf","outputs":[{"name":"","type":"uint64"}],"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return 0, fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := lastPaintABI.Pack("lastPaintTimeOf", tokenID)
	if err != nil {
		return 0, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, common.HexToAddress(c.config.GraffitiContract), data)
	if err != nil {
		return 0, fmt.Errorf("failed to call lastPaintTimeOf: %w", err)
	}

	var lastPaint uint64
	if err := lastPaintABI.UnpackIntoInterface(&lastPaint, "lastPaintTimeOf", result); err != nil {
		return 0, fmt.Errorf("failed to unpack result: %w", err)
	}

	return lastPaint, nil
}

// PaintCooldown returns the contract's paint cooldown in seconds
func (c *spiritClient) PaintCooldown(ctx context.Context) (uint64, error) {
	cooldownABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"PAINT_COOLDOWN","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return 0, fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := cooldownABI.Pack("PAINT_COOLDOWN")
	if err != nil {
		return 0, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, common.HexToAddress(c.config.GraffitiContract), data)
	if err != nil {
		return 0, fmt.Errorf("failed to call PAINT_COOLDOWN: %w", err)
	}

	var cooldown *big.Int
	if err := cooldownABI.UnpackIntoInterface(&cooldown, "PAINT_COOLDOWN", result); err != nil {
		return 0, fmt.Errorf("failed to unpack result: %w", err)
	}

	return cooldown.Uint64(), nil
}

// call performs a bounded read-only contract call.
func (c *spiritClient) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	return c.client.CallContract(callCtx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
}

// Close closes the underlying connection
func (c *spiritClient) Close() {
	c.client.Close()
}
