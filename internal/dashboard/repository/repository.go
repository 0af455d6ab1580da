// Package repository provides aggregate queries for the admin dashboard.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/dashboard/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Repository defines the interface for dashboard data access operations.
type Repository interface {
	// GetStatistics computes registration and team formation counts.
	GetStatistics(ctx context.Context) (*model.Statistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new dashboard repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetStatistics computes registration and team formation counts.
func (r *repository) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	r.logger.Debugw("GetStatistics called")

	var result struct {
		Participants            int64 `gorm:"column:participants"`
		Teams                   int64 `gorm:"column:teams"`
		FullTeams               int64 `gorm:"column:full_teams"`
		TeamsWithFemaleMember   int64 `gorm:"column:teams_with_female"`
		ParticipantsWithoutTeam int64 `gorm:"column:without_team"`
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM participants) AS participants,
			(SELECT COUNT(*) FROM teams) AS teams,
			(SELECT COUNT(*) FROM (
				SELECT team_id FROM team_members GROUP BY team_id HAVING COUNT(*) >= ?
			) full_teams) AS full_teams,
			(SELECT COUNT(DISTINCT team_members.team_id)
				FROM team_members
				JOIN participants ON participants.email = team_members.user_email
				WHERE LOWER(TRIM(participants.gender)) = ?) AS teams_with_female,
			(SELECT COUNT(*) FROM participants
				WHERE email NOT IN (SELECT user_email FROM team_members)) AS without_team
	`, teamModel.MaxTeamSize, teamModel.FemaleGender).Scan(&result).Error
	if err != nil {
		r.logger.Errorw("GetStatistics database error", "error", err)
		return nil, apperr.Unavailable(err)
	}

	var genders []struct {
		Gender string `gorm:"column:gender"`
		Count  int64  `gorm:"column:count"`
	}
	err = r.db.WithContext(ctx).
		Table("participants").
		Select("LOWER(TRIM(gender)) AS gender, COUNT(*) AS count").
		Group("LOWER(TRIM(gender))").
		Scan(&genders).Error
	if err != nil {
		r.logger.Errorw("GetStatistics gender breakdown error", "error", err)
		return nil, apperr.Unavailable(err)
	}

	stats := &model.Statistics{
		Participants:            int(result.Participants),
		Teams:                   int(result.Teams),
		FullTeams:               int(result.FullTeams),
		TeamsWithFemaleMember:   int(result.TeamsWithFemaleMember),
		ParticipantsWithoutTeam: int(result.ParticipantsWithoutTeam),
		Genders:                 make(map[string]int, len(genders)),
	}
	for _, g := range genders {
		stats.Genders[g.Gender] = int(g.Count)
	}

	r.logger.Debugw("GetStatistics completed", "participants", stats.Participants, "teams", stats.Teams)
	return stats, nil
}
