// Package handler provides HTTP handlers for connection request endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/connection/model"
	"github.com/festy23/hackathon_teams/internal/connection/service"
	"github.com/festy23/hackathon_teams/internal/middleware"
)

// Handler handles HTTP requests for connection request endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new connection request handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Connect handles POST /team-discovery/connect-request request.
// @Summary Ask another participant to team up
// @Tags Discovery
// @Accept json
// @Produce json
// @Param request body model.CreateRequest true "Request"
// @Success 201 {object} model.CreateResponse
// @Failure 400 {object} ErrorResponse "INVALID_REQUEST, INVALID_EMAIL, SELF_CONNECTION"
// @Failure 404 {object} ErrorResponse "USER_NOT_FOUND"
// @Failure 409 {object} ErrorResponse "ALREADY_IN_TEAM, RECIPIENT_IN_TEAM"
// @Failure 429 {object} ErrorResponse "RATE_LIMITED"
// @Router /team-discovery/connect-request [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Connect(c *gin.Context) {
	var req model.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "to_email is required")
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.ParticipantEmail(c), req.ToEmail)
	if err != nil {
		respondError(c, h.logger, "creating connection request", err)
		return
	}

	c.JSON(http.StatusCreated, model.CreateResponse{
		OK:        true,
		RequestID: created.ID,
		Message:   "connection request sent; they will be notified by email",
	})
}

// ListIncoming handles GET /team-discovery/connect-requests request.
// @Summary List connection requests addressed to the caller
// @Tags Discovery
// @Produce json
// @Success 200 {object} model.ListResponse
// @Router /team-discovery/connect-requests [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListIncoming(c *gin.Context) {
	requests, err := h.service.ListIncoming(c.Request.Context(), middleware.ParticipantEmail(c))
	if err != nil {
		respondError(c, h.logger, "listing connection requests", err)
		return
	}
	c.JSON(http.StatusOK, model.ListResponse{Requests: requests})
}
