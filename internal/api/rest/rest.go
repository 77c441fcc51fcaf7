package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Evolution triggers
		v1.POST("/evolve", handler.Evolve)
		v1.POST("/evolve/all", handler.EvolveAll)

		// Spirit reads (public)
		v1.GET("/spirits/owners", handler.ListOwners)
		v1.GET("/spirits/:address", handler.GetSpirit)
		v1.GET("/spirits/:address/history", handler.GetSpiritHistory)
		v1.GET("/spirits/:address/artwork", handler.GetSpiritArtwork)

		// Wall reads (public)
		v1.GET("/wall", handler.GetWall)
		v1.GET("/wall/cooldown/:tokenId", handler.GetPaintCooldown)

		// Batch run audit (public)
		v1.GET("/runs", handler.ListRuns)
	}
}

// parsePositiveInt parses a query value that must be a positive integer.
func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("value %d is not positive", value)
	}

	return value, nil
}
