package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/database"
)

// DatabaseProbe is the slice of the database manager the health check needs
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	PoolStats() (database.ConnectionPoolMetrics, error)
}

// HealthHandler reports process and database health
type HealthHandler struct {
	db           DatabaseProbe
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewHealthHandler(db DatabaseProbe, timeProvider coreport.TimeProvider, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Health handles GET /api/health. An unreachable database yields 503.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: h.timeProvider.Now(),
		Database:  dto.DatabaseHealth{Status: "connected"},
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", map[string]any{"error": err.Error()})
		resp.Status = "degraded"
		resp.Database.Status = "unreachable"
		resp.Database.Error = "database unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	if stats, err := h.db.PoolStats(); err == nil {
		resp.Database.OpenConnections = stats.OpenConnections
		resp.Database.InUse = stats.InUse
		resp.Database.Idle = stats.IdleConnections
		resp.Database.MaxOpenConnections = stats.MaxOpenConnections
		resp.Database.WaitCount = stats.WaitCount
	}
	c.JSON(http.StatusOK, resp)
}
