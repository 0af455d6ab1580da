// Package model provides domain models and DTOs for the team module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team is a named group of up to MaxTeamSize participants led by its creator.
// Membership lives in team_members; the leader always has a row there.
type Team struct {
	ID               string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Name             string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_teams_name" json:"name"`
	InviteCode       string    `gorm:"column:invite_code;type:varchar(16);not null;uniqueIndex:uq_teams_invite_code" json:"invite_code"`
	LeaderEmail      string    `gorm:"column:leader_email;type:varchar(320);not null;index:idx_teams_leader_email" json:"leader_email"`
	Description      string    `gorm:"column:description;not null;default:''" json:"description"`
	SkillsNeeded     []string  `gorm:"column:skills_needed;serializer:json" json:"skills_needed"`
	ProblemStatement string    `gorm:"column:problem_statement;not null;default:''" json:"problem_statement"`
	IsPublic         bool      `gorm:"column:is_public;not null" json:"is_public"`
	CreatedAt        time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate assigns a UUID to new teams.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsLeader reports whether email leads the team.
func (t *Team) IsLeader(email string) bool {
	return t.LeaderEmail == email
}

// Member is one participant's membership row. user_email is unique across
// all teams, so a participant can be in at most one team.
type Member struct {
	TeamID    string    `gorm:"primaryKey;column:team_id;type:varchar(36)" json:"team_id"`
	UserEmail string    `gorm:"primaryKey;column:user_email;type:varchar(320);uniqueIndex:uq_team_members_user_email" json:"user_email"`
	Position  int       `gorm:"column:position;not null" json:"position"`
	JoinedAt  time.Time `gorm:"column:joined_at;not null" json:"joined_at"`
}

// TableName specifies the table name for GORM.
func (Member) TableName() string {
	return "team_members"
}

// MemberProfile is a member row joined with the participant's name and gender.
// Name and Gender are empty when the participant record no longer exists.
type MemberProfile struct {
	TeamID   string `json:"-"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Position int    `json:"-"`
}

// Genders returns the genders of members in order.
func Genders(members []MemberProfile) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Gender
	}
	return out
}

// Emails returns the emails of members in order.
func Emails(members []MemberProfile) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Email
	}
	return out
}
