// Package router provides admin dashboard routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/dashboard/handler"
	"github.com/festy23/hackathon_teams/internal/dashboard/repository"
	"github.com/festy23/hackathon_teams/internal/dashboard/service"
	"github.com/festy23/hackathon_teams/internal/middleware"
	"github.com/festy23/hackathon_teams/internal/notify"
)

// RegisterRoutes registers dashboard routes under /dashboard on an
// authenticated router. Only callers accepted by isAdmin get through.
func RegisterRoutes(
	r gin.IRouter,
	db *gorm.DB,
	participants service.ParticipantSource,
	teams service.TeamSource,
	notifier notify.Notifier,
	isAdmin func(email string) bool,
	logger *zap.SugaredLogger,
) {
	repo := repository.New(db, logger)
	svc := service.New(repo, participants, teams, notifier, logger)
	h := handler.New(svc, logger)

	admin := r.Group("/dashboard", middleware.RequireAdmin(isAdmin))
	admin.GET("/participants", h.GetParticipants)
	admin.GET("/teams", h.GetTeams)
	admin.GET("/statistics", h.GetStatistics)
	admin.GET("/export", h.Export)
	admin.POST("/broadcast", h.Broadcast)
}
