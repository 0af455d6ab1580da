// Package handler provides HTTP handlers for the admin dashboard.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/dashboard/model"
	"github.com/festy23/hackathon_teams/internal/dashboard/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "hackathon-export.xlsx"
)

// Handler handles HTTP requests for dashboard endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new dashboard handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetParticipants handles GET /dashboard/participants request.
// @Summary List all participants with team status
// @Tags Dashboard
// @Produce json
// @Success 200 {object} model.ParticipantsResponse
// @Failure 403 {object} ErrorResponse "FORBIDDEN"
// @Router /dashboard/participants [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetParticipants(c *gin.Context) {
	resp, err := h.service.Participants(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "listing participants", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTeams handles GET /dashboard/teams request.
// @Summary List all teams with members
// @Tags Dashboard
// @Produce json
// @Success 200 {object} model.TeamsResponse
// @Failure 403 {object} ErrorResponse "FORBIDDEN"
// @Router /dashboard/teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeams(c *gin.Context) {
	resp, err := h.service.Teams(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "listing teams", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStatistics handles GET /dashboard/statistics request.
// @Summary Get registration and team formation statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} model.StatisticsResponse
// @Failure 403 {object} ErrorResponse "FORBIDDEN"
// @Router /dashboard/statistics [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetStatistics(c *gin.Context) {
	resp, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "getting statistics", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export handles GET /dashboard/export request.
// @Summary Download participants and teams as XLSX
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse "FORBIDDEN"
// @Router /dashboard/export [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Export(c *gin.Context) {
	buf, err := h.service.Export(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "exporting workbook", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Broadcast handles POST /dashboard/broadcast request.
// @Summary Email an announcement to every participant
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body model.BroadcastRequest true "Request"
// @Success 200 {object} model.BroadcastResponse
// @Failure 400 {object} ErrorResponse "INVALID_REQUEST"
// @Failure 403 {object} ErrorResponse "FORBIDDEN"
// @Failure 503 {object} ErrorResponse "BROADCAST_FAILED"
// @Router /dashboard/broadcast [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Broadcast(c *gin.Context) {
	var req model.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "subject and message required")
		return
	}

	resp, err := h.service.Broadcast(c.Request.Context(), req.Subject, req.Message)
	if err != nil {
		respondError(c, h.logger, "broadcasting", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
