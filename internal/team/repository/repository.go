// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/database/dberr"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts the team and its leader's membership row.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds a team by id.
	GetByID(ctx context.Context, teamID string) (*teamModel.Team, error)

	// LockByID finds a team by id and locks its row until the transaction ends.
	LockByID(ctx context.Context, teamID string) (*teamModel.Team, error)

	// GetByInviteCode finds a team by invite code.
	GetByInviteCode(ctx context.Context, code string) (*teamModel.Team, error)

	// GetByName finds a team by its exact name.
	GetByName(ctx context.Context, name string) (*teamModel.Team, error)

	// GetByLeader finds the team led by email.
	GetByLeader(ctx context.Context, email string) (*teamModel.Team, error)

	// FindByMember scans membership for every team listing email as leader or member.
	FindByMember(ctx context.Context, email string) ([]teamModel.Team, error)

	// List returns all teams ordered by creation time.
	List(ctx context.Context) ([]teamModel.Team, error)

	// ListMembers returns a team's members in join order.
	ListMembers(ctx context.Context, teamID string) ([]teamModel.MemberProfile, error)

	// ListAllMembers returns the members of every team.
	ListAllMembers(ctx context.Context) ([]teamModel.MemberProfile, error)

	// AddMember appends email to the team at position.
	AddMember(ctx context.Context, teamID, email string, position int) error

	// RemoveMember deletes email's membership row in the team.
	RemoveMember(ctx context.Context, teamID, email string) error

	// Touch bumps the team's updated_at.
	Touch(ctx context.Context, teamID string) error

	// UpdateDetails applies discovery metadata column updates.
	UpdateDetails(ctx context.Context, teamID string, updates map[string]interface{}) error

	// Delete removes the team and all its membership rows.
	Delete(ctx context.Context, teamID string) error

	// GetParticipant finds the registered participant for email.
	GetParticipant(ctx context.Context, email string) (*participantModel.Participant, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// mapWriteError turns unique violations into typed conflicts. The invite code
// is checked first because a collision there is retried by the caller.
func mapWriteError(err error) error {
	switch {
	case dberr.Violates(err, "invite_code"):
		return teamModel.ErrCodeCollision
	case dberr.Violates(err, "user_email"), dberr.Violates(err, "team_members"):
		return teamModel.ErrAlreadyInTeam
	case dberr.Violates(err, "name"):
		return teamModel.ErrDuplicateName
	default:
		return apperr.Unavailable(err)
	}
}

func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return mapWriteError(err)
	}

	leader := &teamModel.Member{
		TeamID:    team.ID,
		UserEmail: team.LeaderEmail,
		Position:  0,
		JoinedAt:  now,
	}
	if err := r.db.WithContext(ctx).Create(leader).Error; err != nil {
		return mapWriteError(err)
	}

	return nil
}

func (r *repository) first(ctx context.Context, db *gorm.DB, notFound error, query string, args ...interface{}) (*teamModel.Team, error) {
	var team teamModel.Team
	err := db.WithContext(ctx).Where(query, args...).First(&team).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, notFound
		}
		return nil, apperr.Unavailable(err)
	}
	return &team, nil
}

func (r *repository) GetByID(ctx context.Context, teamID string) (*teamModel.Team, error) {
	return r.first(ctx, r.db, teamModel.ErrTeamNotFound, "id = ?", teamID)
}

func (r *repository) LockByID(ctx context.Context, teamID string) (*teamModel.Team, error) {
	locked := r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(ctx, locked, teamModel.ErrTeamNotFound, "id = ?", teamID)
}

func (r *repository) GetByInviteCode(ctx context.Context, code string) (*teamModel.Team, error) {
	return r.first(ctx, r.db, teamModel.ErrInvalidInviteCode, "invite_code = ?", code)
}

func (r *repository) GetByName(ctx context.Context, name string) (*teamModel.Team, error) {
	return r.first(ctx, r.db, teamModel.ErrTeamNotFound, "name = ?", name)
}

func (r *repository) GetByLeader(ctx context.Context, email string) (*teamModel.Team, error) {
	return r.first(ctx, r.db, teamModel.ErrNotLeader, "leader_email = ?", email)
}

func (r *repository) FindByMember(ctx context.Context, email string) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	memberOf := r.db.Model(&teamModel.Member{}).Select("team_id").Where("user_email = ?", email)

	err := r.db.WithContext(ctx).
		Where("leader_email = ? OR id IN (?)", email, memberOf).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return teams, nil
}

func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&teams).Error; err != nil {
		return nil, apperr.Unavailable(err)
	}
	return teams, nil
}

func (r *repository) memberProfiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("team_members AS m").
		Select("m.team_id, m.user_email AS email, COALESCE(p.name, '') AS name, " +
			"COALESCE(p.gender, '') AS gender, m.position").
		Joins("LEFT JOIN participants AS p ON p.email = m.user_email")
}

func (r *repository) ListMembers(ctx context.Context, teamID string) ([]teamModel.MemberProfile, error) {
	members := []teamModel.MemberProfile{}
	err := r.memberProfiles(ctx).
		Where("m.team_id = ?", teamID).
		Order("m.position ASC").
		Scan(&members).Error
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return members, nil
}

func (r *repository) ListAllMembers(ctx context.Context) ([]teamModel.MemberProfile, error) {
	members := []teamModel.MemberProfile{}
	err := r.memberProfiles(ctx).
		Order("m.team_id ASC, m.position ASC").
		Scan(&members).Error
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return members, nil
}

func (r *repository) AddMember(ctx context.Context, teamID, email string, position int) error {
	member := &teamModel.Member{
		TeamID:    teamID,
		UserEmail: email,
		Position:  position,
		JoinedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *repository) RemoveMember(ctx context.Context, teamID, email string) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_email = ?", teamID, email).
		Delete(&teamModel.Member{})
	if result.Error != nil {
		return apperr.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrNotInTeam
	}
	return nil
}

func (r *repository) Touch(ctx context.Context, teamID string) error {
	return r.UpdateDetails(ctx, teamID, map[string]interface{}{})
}

func (r *repository) UpdateDetails(ctx context.Context, teamID string, updates map[string]interface{}) error {
	columns := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		columns[k] = v
	}
	// Map updates bypass the field serializer.
	if skills, ok := columns["skills_needed"].([]string); ok {
		encoded, err := json.Marshal(skills)
		if err != nil {
			return apperr.Unavailable(err)
		}
		columns["skills_needed"] = string(encoded)
	}
	columns["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", teamID).
		Updates(columns)
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, teamID string) error {
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Delete(&teamModel.Member{}).Error; err != nil {
		return apperr.Unavailable(err)
	}

	result := r.db.WithContext(ctx).Where("id = ?", teamID).Delete(&teamModel.Team{})
	if result.Error != nil {
		return apperr.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	r.logger.Debugw("team rows deleted", "team_id", teamID)
	return nil
}

func (r *repository) GetParticipant(ctx context.Context, email string) (*participantModel.Participant, error) {
	var p participantModel.Participant
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, teamModel.ErrNotRegistered
		}
		return nil, apperr.Unavailable(err)
	}
	return &p, nil
}
