// Package handler provides HTTP handlers for participant endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/middleware"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	"github.com/festy23/hackathon_teams/internal/participant/service"
)

// Handler handles HTTP requests for participant endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new participant handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetParticipant handles GET /participant request.
// @Summary Get the caller's registration and team status
// @Tags Participants
// @Produce json
// @Success 200 {object} participantModel.ProfileResponse
// @Router /participant [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetParticipant(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), middleware.ParticipantEmail(c))
	if err != nil {
		respondError(c, h.logger, "getting participant", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register handles POST /participant request.
// @Summary Register or update the caller
// @Tags Participants
// @Accept json
// @Produce json
// @Param request body participantModel.RegisterRequest true "Request"
// @Success 200 {object} participantModel.RegisterResponse
// @Failure 400 {object} ErrorResponse "INVALID_REQUEST, INVALID_FIELDS, INVALID_EMAIL"
// @Router /participant [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Register(c *gin.Context) {
	var req participantModel.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "fields object is required")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), middleware.ParticipantEmail(c), req.Fields)
	if err != nil {
		respondError(c, h.logger, "registering participant", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAvailable handles GET /team-discovery/available-members request.
// @Summary List participants without a team
// @Tags Discovery
// @Produce json
// @Success 200 {object} map[string][]participantModel.AvailableMember
// @Router /team-discovery/available-members [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListAvailable(c *gin.Context) {
	members, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "listing available members", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// GetSchema handles GET /registration/schema request.
// @Summary Get the registration form definition
// @Tags Participants
// @Produce json
// @Success 200 {object} schema.Schema
// @Router /registration/schema [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetSchema(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Schema())
}
