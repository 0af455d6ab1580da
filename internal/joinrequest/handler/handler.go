// Package handler provides HTTP handlers for join request endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/joinrequest/model"
	"github.com/festy23/hackathon_teams/internal/joinrequest/service"
	"github.com/festy23/hackathon_teams/internal/middleware"
)

// Handler handles HTTP requests for join request endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new join request handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// RequestToJoin handles POST /team-discovery/join-request request.
// @Summary Ask to join a team
// @Tags Join Requests
// @Accept json
// @Produce json
// @Param request body model.CreateRequest true "Request"
// @Success 201 {object} model.CreateResponse
// @Failure 404 {object} ErrorResponse "TEAM_NOT_FOUND, USER_NOT_FOUND"
// @Failure 409 {object} ErrorResponse "ALREADY_MEMBER, DUPLICATE_REQUEST, ALREADY_IN_ANOTHER_TEAM"
// @Failure 422 {object} ErrorResponse "TEAM_FULL"
// @Failure 429 {object} ErrorResponse "RATE_LIMITED"
// @Router /team-discovery/join-request [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RequestToJoin(c *gin.Context) {
	var req model.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "team_id is required")
		return
	}

	created, err := h.service.RequestToJoin(c.Request.Context(), middleware.ParticipantEmail(c), req.TeamID)
	if err != nil {
		respondError(c, h.logger, "creating join request", err)
		return
	}

	c.JSON(http.StatusCreated, model.CreateResponse{
		OK:        true,
		RequestID: created.ID,
		Message:   "join request sent; the team leader can accept or reject it",
	})
}

// ListTeamRequests handles GET /team/join-requests request.
// @Summary List pending requests for the caller's team
// @Tags Join Requests
// @Produce json
// @Success 200 {object} model.ListResponse
// @Router /team/join-requests [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeamRequests(c *gin.Context) {
	requests, err := h.service.ListForLeader(c.Request.Context(), middleware.ParticipantEmail(c))
	if err != nil {
		respondError(c, h.logger, "listing team join requests", err)
		return
	}
	c.JSON(http.StatusOK, model.ListResponse{Requests: requests})
}

// ManageRequest handles POST /team/manage-request request.
// @Summary Accept or reject a join request
// @Tags Join Requests
// @Accept json
// @Produce json
// @Param request body model.ManageRequest true "Request"
// @Success 200 {object} model.ManageResponse
// @Failure 400 {object} ErrorResponse "INVALID_REQUEST, INVALID_ACTION"
// @Failure 403 {object} ErrorResponse "NOT_TEAM_LEADER"
// @Failure 404 {object} ErrorResponse "REQUEST_NOT_FOUND, TEAM_NOT_FOUND, USER_NOT_FOUND"
// @Failure 409 {object} ErrorResponse "REQUEST_ALREADY_RESOLVED"
// @Failure 422 {object} ErrorResponse "TEAM_FULL, GENDER_CONSTRAINT_VIOLATION"
// @Router /team/manage-request [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ManageRequest(c *gin.Context) {
	var req model.ManageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "request_id and action are required")
		return
	}

	resp, err := h.service.Resolve(c.Request.Context(), middleware.ParticipantEmail(c), req.RequestID, req.Action)
	if err != nil {
		respondError(c, h.logger, "resolving join request", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMyRequests handles GET /user/join-requests request.
// @Summary List teams the caller has pending requests for
// @Tags Join Requests
// @Produce json
// @Success 200 {object} model.RequestedTeamsResponse
// @Router /user/join-requests [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListMyRequests(c *gin.Context) {
	ids, err := h.service.ListRequestedTeamIDs(c.Request.Context(), middleware.ParticipantEmail(c))
	if err != nil {
		respondError(c, h.logger, "listing user join requests", err)
		return
	}
	c.JSON(http.StatusOK, model.RequestedTeamsResponse{RequestedTeamIDs: ids})
}
