// Package router provides participant module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/membership"
	"github.com/festy23/hackathon_teams/internal/notify"
	"github.com/festy23/hackathon_teams/internal/participant/handler"
	"github.com/festy23/hackathon_teams/internal/participant/repository"
	"github.com/festy23/hackathon_teams/internal/participant/service"
)

// RegisterRoutes registers participant module routes. public serves the
// registration schema without authentication; authed requires a token.
func RegisterRoutes(
	public, authed gin.IRouter,
	db *gorm.DB,
	schemas service.SchemaSource,
	directory *membership.Directory,
	notifier notify.Notifier,
	logger *zap.SugaredLogger,
) service.Service {
	repo := repository.New(db, logger)
	svc := service.New(repo, schemas, directory, notifier, logger)
	h := handler.New(svc, logger)

	public.GET("/registration/schema", h.GetSchema)

	authed.GET("/participant", h.GetParticipant)
	authed.POST("/participant", h.Register)
	authed.GET("/team-discovery/available-members", h.ListAvailable)

	return svc
}
