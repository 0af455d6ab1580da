// Package router provides connection request module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/connection/handler"
	"github.com/festy23/hackathon_teams/internal/connection/repository"
	"github.com/festy23/hackathon_teams/internal/connection/service"
	"github.com/festy23/hackathon_teams/internal/middleware"
	"github.com/festy23/hackathon_teams/internal/notify"
	teamRepository "github.com/festy23/hackathon_teams/internal/team/repository"
)

// RegisterRoutes registers connection request routes on an authenticated router.
// Request creation is throttled when limiter is non-nil.
func RegisterRoutes(
	r gin.IRouter,
	db *gorm.DB,
	notifier notify.Notifier,
	limiter middleware.Limiter,
	logger *zap.SugaredLogger,
) service.Service {
	svc := service.New(repository.New(db, logger), teamRepository.New(db, logger), notifier, logger)
	h := handler.New(svc, logger)

	connect := []gin.HandlerFunc{h.Connect}
	if limiter != nil {
		connect = append([]gin.HandlerFunc{middleware.RateLimit(limiter, "connect-request", logger)}, connect...)
	}

	r.POST("/team-discovery/connect-request", connect...)
	r.GET("/team-discovery/connect-requests", h.ListIncoming)

	return svc
}
