// Package router provides join request module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/joinrequest/handler"
	"github.com/festy23/hackathon_teams/internal/joinrequest/repository"
	"github.com/festy23/hackathon_teams/internal/joinrequest/service"
	"github.com/festy23/hackathon_teams/internal/middleware"
	teamRepository "github.com/festy23/hackathon_teams/internal/team/repository"
)

// RegisterRoutes registers join request routes on an authenticated router.
// Request creation is throttled when limiter is non-nil.
func RegisterRoutes(
	r gin.IRouter,
	db *gorm.DB,
	engine service.Admitter,
	limiter middleware.Limiter,
	logger *zap.SugaredLogger,
) service.Service {
	repo := repository.New(db, logger)
	svc := service.New(repo, teamRepository.New(db, logger), engine, logger)
	h := handler.New(svc, logger)

	create := []gin.HandlerFunc{h.RequestToJoin}
	if limiter != nil {
		create = append([]gin.HandlerFunc{middleware.RateLimit(limiter, "join-request", logger)}, create...)
	}

	r.POST("/team-discovery/join-request", create...)
	r.GET("/team/join-requests", h.ListTeamRequests)
	r.POST("/team/manage-request", h.ManageRequest)
	r.GET("/user/join-requests", h.ListMyRequests)

	return svc
}
