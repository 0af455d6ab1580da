// Package repository provides data access layer for participant module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/database/dberr"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Repository defines the interface for participant data access operations.
type Repository interface {
	// Get finds a participant by email.
	Get(ctx context.Context, email string) (*participantModel.Participant, error)

	// Upsert inserts the participant or replaces name, gender and fields of an
	// existing record. It reports whether a new record was created.
	Upsert(ctx context.Context, p *participantModel.Participant) (bool, error)

	// List returns all participants in registration order.
	List(ctx context.Context) ([]participantModel.Participant, error)

	// ListAvailable returns participants without a team membership row.
	ListAvailable(ctx context.Context) ([]participantModel.Participant, error)

	// Emails returns every registered email.
	Emails(ctx context.Context) ([]string, error)

	// Delete removes a participant record.
	Delete(ctx context.Context, email string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new participant repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Get(ctx context.Context, email string) (*participantModel.Participant, error) {
	var p participantModel.Participant
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, participantModel.ErrParticipantNotFound
		}
		return nil, apperr.Unavailable(err)
	}
	return &p, nil
}

func (r *repository) Upsert(ctx context.Context, p *participantModel.Participant) (bool, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(p).Error
	if err == nil {
		return true, nil
	}
	if !dberr.IsDuplicate(err) {
		return false, apperr.Unavailable(err)
	}

	// Already registered; the first insert's created_at is kept.
	result := r.db.WithContext(ctx).
		Model(&participantModel.Participant{}).
		Where("email = ?", p.Email).
		Updates(map[string]interface{}{
			"name":       p.Name,
			"gender":     p.Gender,
			"fields":     p.Fields,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, apperr.Unavailable(result.Error)
	}
	r.logger.Debugw("participant record replaced", "email", p.Email)
	return false, nil
}

func (r *repository) List(ctx context.Context) ([]participantModel.Participant, error) {
	participants := []participantModel.Participant{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&participants).Error; err != nil {
		return nil, apperr.Unavailable(err)
	}
	return participants, nil
}

func (r *repository) ListAvailable(ctx context.Context) ([]participantModel.Participant, error) {
	participants := []participantModel.Participant{}
	members := r.db.Model(&teamModel.Member{}).Select("user_email")

	err := r.db.WithContext(ctx).
		Where("email NOT IN (?)", members).
		Order("created_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return participants, nil
}

func (r *repository) Emails(ctx context.Context) ([]string, error) {
	emails := []string{}
	err := r.db.WithContext(ctx).
		Model(&participantModel.Participant{}).
		Order("email ASC").
		Pluck("email", &emails).Error
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return emails, nil
}

func (r *repository) Delete(ctx context.Context, email string) error {
	result := r.db.WithContext(ctx).Where("email = ?", email).Delete(&participantModel.Participant{})
	if result.Error != nil {
		return apperr.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return participantModel.ErrParticipantNotFound
	}
	return nil
}
