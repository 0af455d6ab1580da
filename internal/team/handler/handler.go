// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/middleware"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
	"github.com/festy23/hackathon_teams/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /team/create request.
// @Summary Create a team led by the caller
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body teamModel.CreateTeamRequest true "Request"
// @Success 201 {object} teamModel.CreateTeamResponse
// @Failure 400 {object} ErrorResponse "INVALID_REQUEST, INVALID_TEAM_NAME"
// @Failure 404 {object} ErrorResponse "NOT_REGISTERED"
// @Failure 409 {object} ErrorResponse "ALREADY_IN_TEAM, DUPLICATE_NAME, CODE_COLLISION"
// @Router /team/create [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "name is required")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.ParticipantEmail(c), &req)
	if err != nil {
		respondError(c, h.logger, "creating team", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// JoinTeam handles POST /team/join request.
// @Summary Join a team by invite code
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body teamModel.JoinTeamRequest true "Request"
// @Success 200 {object} teamModel.JoinTeamResponse
// @Failure 400 {object} ErrorResponse "INVALID_REQUEST, INVITE_CODE_REQUIRED"
// @Failure 404 {object} ErrorResponse "NOT_REGISTERED, INVALID_INVITE_CODE"
// @Failure 409 {object} ErrorResponse "ALREADY_IN_TEAM"
// @Failure 422 {object} ErrorResponse "TEAM_FULL, GENDER_CONSTRAINT_VIOLATION"
// @Router /team/join [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) JoinTeam(c *gin.Context) {
	var req teamModel.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, teamModel.ErrInviteCodeRequired.Code, teamModel.ErrInviteCodeRequired.Message, http.StatusBadRequest)
		return
	}

	resp, err := h.service.JoinByCode(c.Request.Context(), middleware.ParticipantEmail(c), req.InviteCode)
	if err != nil {
		respondError(c, h.logger, "joining team", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LeaveTeam handles POST /team/leave request.
// @Summary Leave the caller's team
// @Tags Teams
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 404 {object} ErrorResponse "NOT_IN_TEAM"
// @Failure 409 {object} ErrorResponse "LEADER_CANNOT_LEAVE"
// @Router /team/leave [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) LeaveTeam(c *gin.Context) {
	if err := h.service.Leave(c.Request.Context(), middleware.ParticipantEmail(c)); err != nil {
		respondError(c, h.logger, "leaving team", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetStatus handles GET /team/status request.
// @Summary Get the caller's team and members
// @Tags Teams
// @Produce json
// @Success 200 {object} teamModel.StatusResponse
// @Router /team/status [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetStatus(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context(), middleware.ParticipantEmail(c))
	if err != nil {
		respondError(c, h.logger, "getting team status", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DissolveTeam handles DELETE /team/status request.
// @Summary Dissolve the team led by the caller
// @Tags Teams
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 403 {object} ErrorResponse "NOT_LEADER_OR_NO_TEAM"
// @Router /team/status [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DissolveTeam(c *gin.Context) {
	if err := h.service.Dissolve(c.Request.Context(), middleware.ParticipantEmail(c)); err != nil {
		respondError(c, h.logger, "dissolving team", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UpdateTeam handles PATCH /team request.
// @Summary Edit the discovery details of the caller's team
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body teamModel.UpdateTeamRequest true "Request"
// @Success 200 {object} teamModel.Team
// @Failure 403 {object} ErrorResponse "NOT_LEADER_OR_NO_TEAM"
// @Router /team [patch] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateTeam(c *gin.Context) {
	var req teamModel.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}

	team, err := h.service.UpdateDetails(c.Request.Context(), middleware.ParticipantEmail(c), &req)
	if err != nil {
		respondError(c, h.logger, "updating team", err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// ListOpenTeams handles GET /team-discovery/teams request.
// @Summary List public teams with free slots
// @Tags Discovery
// @Produce json
// @Success 200 {object} map[string][]teamModel.DiscoveryTeam
// @Router /team-discovery/teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListOpenTeams(c *gin.Context) {
	teams, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "listing open teams", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}
