package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/apperr"
)

// ErrorResponse represents the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse writes the error envelope.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// invalidRequest writes a 400 for an unparseable body.
func invalidRequest(c *gin.Context, message string) {
	errorResponse(c, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// respondError maps an application error to its status and envelope.
// Only unexpected failures are logged; domain refusals are logged by the service.
func respondError(c *gin.Context, logger *zap.SugaredLogger, action string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Errorw("error "+action, "path", c.FullPath(), "error", err)
	}
	errorResponse(c, apperr.CodeOf(err), apperr.MessageOf(err), status)
}
