// Package repository provides data access layer for connection request module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/connection/model"
)

// Repository defines the interface for connection request data access operations.
type Repository interface {
	// Create stores a pending request.
	Create(ctx context.Context, req *model.ConnectionRequest) error

	// ListByRecipient returns requests addressed to email, newest first.
	ListByRecipient(ctx context.Context, email string) ([]model.ConnectionRequest, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new connection request repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, req *model.ConnectionRequest) error {
	now := time.Now()
	req.Status = model.StatusPending
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

func (r *repository) ListByRecipient(ctx context.Context, email string) ([]model.ConnectionRequest, error) {
	requests := []model.ConnectionRequest{}
	err := r.db.WithContext(ctx).
		Where("to_email = ?", email).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return requests, nil
}
