// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/team/handler"
	"github.com/festy23/hackathon_teams/internal/team/repository"
	"github.com/festy23/hackathon_teams/internal/team/service"
)

// RegisterRoutes registers team module routes on an authenticated router
// and returns the service so other modules can admit members through it.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) service.Service {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.POST("/team/create", h.CreateTeam)
	r.POST("/team/join", h.JoinTeam)
	r.POST("/team/leave", h.LeaveTeam)
	r.GET("/team/status", h.GetStatus)
	r.DELETE("/team/status", h.DissolveTeam)
	r.PATCH("/team", h.UpdateTeam)
	r.GET("/team-discovery/teams", h.ListOpenTeams)

	return svc
}
