// Package health provides the liveness endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/database/database"
)

// checkTimeout bounds each dependency probe.
const checkTimeout = 5 * time.Second

// Pinger is an optional dependency whose failure degrades but does not fail the service.
// *ratelimit.Limiter satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler handles health check requests.
type Handler struct {
	db       *gorm.DB
	optional map[string]Pinger
	logger   *zap.SugaredLogger
}

// New creates a health handler that requires db and reports on each optional dependency.
func New(db *gorm.DB, logger *zap.SugaredLogger, optional map[string]Pinger) *Handler {
	return &Handler{
		db:       db,
		optional: optional,
		logger:   logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Check handles GET /health request.
// The database must answer a ping; optional dependencies only mark the response degraded.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Checks: map[string]string{"database": "ok"}}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "dependency", "database", "error", err)
		resp.Status = "unhealthy"
		resp.Checks["database"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	for name, p := range h.optional {
		if err := p.Ping(ctx); err != nil {
			h.logger.Warnw("optional dependency unavailable", "dependency", name, "error", err)
			resp.Status = "degraded"
			resp.Checks[name] = "unavailable"
			continue
		}
		resp.Checks[name] = "ok"
	}

	c.JSON(http.StatusOK, resp)
}
