// Package repository provides data access layer for join request module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/database/dberr"
	"github.com/festy23/hackathon_teams/internal/joinrequest/model"
)

// Repository defines the interface for join request data access operations.
type Repository interface {
	// Create stores a pending request. A second pending request for the same
	// team and user fails with ErrDuplicateRequest.
	Create(ctx context.Context, req *model.JoinRequest) error

	// GetByID finds a request by id.
	GetByID(ctx context.Context, id string) (*model.JoinRequest, error)

	// HasPending reports whether email has a pending request for the team.
	HasPending(ctx context.Context, teamID, email string) (bool, error)

	// ListPendingForTeam returns the team's pending requests, oldest first.
	ListPendingForTeam(ctx context.Context, teamID string) ([]model.JoinRequest, error)

	// ListPendingByUser returns email's pending requests, oldest first.
	ListPendingByUser(ctx context.Context, email string) ([]model.JoinRequest, error)

	// SetStatus moves a pending request to status.
	SetStatus(ctx context.Context, id string, status model.Status) error

	// Delete removes a request that is still pending; resolved requests stay as history.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new join request repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, req *model.JoinRequest) error {
	now := time.Now()
	req.Status = model.StatusPending
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if dberr.IsDuplicate(err) {
			return model.ErrDuplicateRequest
		}
		return apperr.Unavailable(err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, model.ErrRequestNotFound
		}
		return nil, apperr.Unavailable(err)
	}
	return &req, nil
}

func (r *repository) HasPending(ctx context.Context, teamID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.JoinRequest{}).
		Where("team_id = ? AND user_email = ? AND status = ?", teamID, email, model.StatusPending).
		Count(&count).Error
	if err != nil {
		return false, apperr.Unavailable(err)
	}
	return count > 0, nil
}

func (r *repository) listPending(ctx context.Context, query string, arg string) ([]model.JoinRequest, error) {
	requests := []model.JoinRequest{}
	err := r.db.WithContext(ctx).
		Where(query+" AND status = ?", arg, model.StatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return requests, nil
}

func (r *repository) ListPendingForTeam(ctx context.Context, teamID string) ([]model.JoinRequest, error) {
	return r.listPending(ctx, "team_id = ?", teamID)
}

func (r *repository) ListPendingByUser(ctx context.Context, email string) ([]model.JoinRequest, error) {
	return r.listPending(ctx, "user_email = ?", email)
}

// SetStatus only touches pending rows, so a request is resolved at most once.
func (r *repository) SetStatus(ctx context.Context, id string, status model.Status) error {
	result := r.db.WithContext(ctx).Model(&model.JoinRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return apperr.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return model.ErrRequestAlreadyResolved
	}
	r.logger.Debugw("join request status updated", "request_id", id, "status", status)
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Delete(&model.JoinRequest{})
	if result.Error != nil {
		return apperr.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return model.ErrRequestAlreadyResolved
	}
	return nil
}
