package rest

import (
	"errors"
	"math/big"
	"net/http"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/soulscape/evolution-engine/internal/adapter"
	"github.com/soulscape/evolution-engine/internal/artwork"
	"github.com/soulscape/evolution-engine/internal/domain"
	"github.com/soulscape/evolution-engine/internal/evolution"
	"github.com/soulscape/evolution-engine/internal/graffiti"
	"github.com/soulscape/evolution-engine/internal/logger"
	"github.com/soulscape/evolution-engine/internal/providers/arkiv"
	"github.com/soulscape/evolution-engine/internal/providers/spiritchain"
	"github.com/soulscape/evolution-engine/internal/store"
	"github.com/soulscape/evolution-engine/internal/store/schema"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// Evolve runs the evolution pipeline for a single owner address
	// POST /api/v1/evolve
	Evolve(c *gin.Context)

	// EvolveAll runs the evolution pipeline for every spirit owner
	// POST /api/v1/evolve/all
	EvolveAll(c *gin.Context)

	// ListOwners enumerates the distinct owners of all minted spirits
	// GET /api/v1/spirits/owners
	ListOwners(c *gin.Context)

	// GetSpirit returns the current on-chain state of an owner's spirit
	// GET /api/v1/spirits/:address
	GetSpirit(c *gin.Context)

	// GetSpiritHistory returns the stored evolution snapshots for a spirit
	// GET /api/v1/spirits/:address/history
	GetSpiritHistory(c *gin.Context)

	// GetSpiritArtwork renders the spirit's current state as SVG
	// GET /api/v1/spirits/:address/artwork
	GetSpiritArtwork(c *gin.Context)

	// GetWall returns the reconciled wall state
	// GET /api/v1/wall?limit=<limit>
	GetWall(c *gin.Context)

	// GetPaintCooldown reports whether a token may paint again
	// GET /api/v1/wall/cooldown/:tokenId
	GetPaintCooldown(c *gin.Context)

	// ListRuns returns recent batch evolution runs
	// GET /api/v1/runs?limit=<limit>
	ListRuns(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	chain        spiritchain.Client
	orchestrator evolution.Orchestrator
	batch        evolution.BatchRunner
	snapshots    arkiv.Store
	reconciler   graffiti.Reconciler
	audit        store.Store
	clock        adapter.Clock
	wallLimit    int
}

// NewHandler creates a new REST API handler
func NewHandler(
	chain spiritchain.Client,
	orchestrator evolution.Orchestrator,
	batch evolution.BatchRunner,
	snapshots arkiv.Store,
	reconciler graffiti.Reconciler,
	audit store.Store,
	clock adapter.Clock,
	wallLimit int,
) Handler {
	return &handler{
		chain:        chain,
		orchestrator: orchestrator,
		batch:        batch,
		snapshots:    snapshots,
		reconciler:   reconciler,
		audit:        audit,
		clock:        clock,
		wallLimit:    wallLimit,
	}
}

type evolveRequest struct {
	Address string `json:"address" binding:"required"`
}

// Evolve runs the evolution pipeline for a single owner address
func (h *handler) Evolve(c *gin.Context) {
	var req evolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if !common.IsHexAddress(req.Address) {
		respondBadRequest(c, "Invalid owner address")
		return
	}

	result, err := h.orchestrator.Evolve(c.Request.Context(), req.Address)
	if err != nil {
		switch {
		case errors.Is(err, evolution.ErrNoSpirit):
			respondNotFound(c, "No spirit minted for address")
		case errors.Is(err, evolution.ErrEvolutionInProgress):
			respondConflict(c, "Evolution already in progress for address")
		default:
			respondInternalError(c, err, "Failed to evolve spirit", zap.String("address", req.Address))
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// EvolveAll runs the evolution pipeline for every spirit owner
func (h *handler) EvolveAll(c *gin.Context) {
	report, err := h.batch.EvolveAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to run batch evolution")
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListOwners enumerates the distinct owners of all minted spirits
func (h *handler) ListOwners(c *gin.Context) {
	owners, err := h.batch.Owners(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list spirit owners")
		return
	}
	if owners == nil {
		owners = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"owners": owners})
}

type spiritResponse struct {
	OwnerAddress string                 `json:"ownerAddress"`
	TokenID      string                 `json:"tokenId"`
	Vector       domain.AttributeVector `json:"vector"`
	Stage        domain.Stage           `json:"stage"`
	LastUpdated  int64                  `json:"lastUpdated"` // unix milliseconds
}

// GetSpirit returns the current on-chain state of an owner's spirit
func (h *handler) GetSpirit(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		respondBadRequest(c, "Invalid owner address")
		return
	}

	tokenID, state, err := h.resolveSpirit(c, address)
	if err != nil || tokenID == nil {
		return
	}

	c.JSON(http.StatusOK, spiritResponse{
		OwnerAddress: address,
		TokenID:      tokenID.String(),
		Vector:       state.Vector,
		Stage:        state.Vector.Stage(),
		LastUpdated:  state.LastUpdated.UnixMilli(),
	})
}

// GetSpiritHistory returns the stored evolution snapshots for a spirit,
// newest first
func (h *handler) GetSpiritHistory(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		respondBadRequest(c, "Invalid owner address")
		return
	}

	tokenID, err := h.chain.SpiritOf(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to resolve spirit", zap.String("address", address))
		return
	}
	if tokenID == nil || tokenID.Sign() == 0 {
		respondNotFound(c, "No spirit minted for address")
		return
	}

	snapshots, err := h.snapshots.QuerySnapshots(c.Request.Context(), address, tokenID.String())
	if err != nil {
		// A store outage must not break the history view. Serve an empty
		// history and let the next sync fill it back in.
		logger.WarnCtx(c.Request.Context(), "snapshot store unavailable, serving empty history",
			zap.String("address", address),
			zap.Error(err))
		snapshots = nil
	}
	if snapshots == nil {
		snapshots = []domain.Snapshot{}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt > snapshots[j].CreatedAt
	})

	c.JSON(http.StatusOK, gin.H{
		"tokenId":   tokenID.String(),
		"snapshots": snapshots,
	})
}

// GetSpiritArtwork renders the spirit's current state as SVG
func (h *handler) GetSpiritArtwork(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		respondBadRequest(c, "Invalid owner address")
		return
	}

	tokenID, state, err := h.resolveSpirit(c, address)
	if err != nil || tokenID == nil {
		return
	}

	svg := artwork.Render(state.Vector, tokenID.String())
	c.Data(http.StatusOK, "image/svg+xml", svg)
}

// resolveSpirit looks up an owner's token and its on-chain state, writing
// the error response itself when the lookup fails.
func (h *handler) resolveSpirit(c *gin.Context, address string) (*big.Int, *domain.SpiritState, error) {
	tokenID, err := h.chain.SpiritOf(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to resolve spirit", zap.String("address", address))
		return nil, nil, err
	}
	if tokenID == nil || tokenID.Sign() == 0 {
		respondNotFound(c, "No spirit minted for address")
		return nil, nil, nil
	}

	state, err := h.chain.GetSpirit(c.Request.Context(), tokenID)
	if err != nil {
		respondInternalError(c, err, "Failed to read spirit state", zap.String("tokenId", tokenID.String()))
		return nil, nil, err
	}

	return tokenID, state, nil
}

type wallCell struct {
	X         uint16 `json:"x"`
	Y         uint16 `json:"y"`
	Color     uint32 `json:"color"`
	TokenID   string `json:"tokenId"`
	Timestamp int64  `json:"timestamp"`
}

// GetWall returns the reconciled wall state
func (h *handler) GetWall(c *gin.Context) {
	limit := h.wallLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil {
			respondValidationError(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	wall, err := h.reconciler.WallState(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, err, "Failed to reconcile wall")
		return
	}

	cells := make([]wallCell, 0, len(wall))
	for coord, stroke := range wall {
		cells = append(cells, wallCell{
			X:         coord.X,
			Y:         coord.Y,
			Color:     stroke.Color,
			TokenID:   stroke.TokenID,
			Timestamp: stroke.Timestamp,
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})

	c.JSON(http.StatusOK, gin.H{"cells": cells})
}

type cooldownResponse struct {
	TokenID          string `json:"tokenId"`
	LastPaintedAt    int64  `json:"lastPaintedAt"` // unix seconds, 0 if never
	CooldownSeconds  uint64 `json:"cooldownSeconds"`
	RemainingSeconds uint64 `json:"remainingSeconds"`
	CanPaint         bool   `json:"canPaint"`
}

// GetPaintCooldown reports whether a token may paint again
func (h *handler) GetPaintCooldown(c *gin.Context) {
	tokenID, ok := new(big.Int).SetString(c.Param("tokenId"), 10)
	if !ok || tokenID.Sign() <= 0 {
		respondBadRequest(c, "Invalid token id")
		return
	}

	lastPaint, err := h.chain.LastPaintTimeOf(c.Request.Context(), tokenID)
	if err != nil {
		respondInternalError(c, err, "Failed to read last paint time", zap.String("tokenId", tokenID.String()))
		return
	}

	cooldown, err := h.chain.PaintCooldown(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to read paint cooldown", zap.String("tokenId", tokenID.String()))
		return
	}

	resp := cooldownResponse{
		TokenID:         tokenID.String(),
		LastPaintedAt:   int64(lastPaint), //nolint:gosec,G115 // contract timestamps fit in int64
		CooldownSeconds: cooldown,
		CanPaint:        true,
	}

	now := uint64(h.clock.Now().Unix()) //nolint:gosec,G115
	if lastPaint > 0 && now < lastPaint+cooldown {
		resp.RemainingSeconds = lastPaint + cooldown - now
		resp.CanPaint = false
	}

	c.JSON(http.StatusOK, resp)
}

// ListRuns returns recent batch evolution runs
func (h *handler) ListRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil {
			respondValidationError(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.audit.RecentEvolutionRuns(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list evolution runs")
		return
	}
	if runs == nil {
		runs = []schema.EvolutionRun{}
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if _, err := h.chain.LatestBlock(c.Request.Context()); err != nil {
		logger.WarnCtx(c.Request.Context(), "health check degraded", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
