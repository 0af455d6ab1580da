// Package membership derives a participant's team membership by scanning teams.
// Nothing is cached: every call re-reads the team tables.
package membership

import (
	"context"

	"go.uber.org/zap"

	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Role is a participant's role within their team.
type Role string

const (
	// RoleLeader is the team's creator.
	RoleLeader Role = "Leader"
	// RoleMember is any other member.
	RoleMember Role = "Member"
)

// Membership is the derived team status of a participant.
type Membership struct {
	HasTeam  bool   `json:"has_team"`
	TeamID   string `json:"team_id,omitempty"`
	TeamName string `json:"team_name,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// TeamFinder returns every team listing email as leader or member.
type TeamFinder interface {
	FindByMember(ctx context.Context, email string) ([]teamModel.Team, error)
}

// Directory resolves memberships.
type Directory struct {
	teams  TeamFinder
	logger *zap.SugaredLogger
}

// NewDirectory creates a directory backed by teams.
func NewDirectory(teams TeamFinder, logger *zap.SugaredLogger) *Directory {
	return &Directory{teams: teams, logger: logger}
}

// Resolve returns email's membership. A participant found in more than one
// team breaks the one-team invariant; the first match is reported and the
// inconsistency is logged.
func (d *Directory) Resolve(ctx context.Context, email string) (Membership, error) {
	teams, err := d.teams.FindByMember(ctx, email)
	if err != nil {
		return Membership{}, err
	}
	if len(teams) == 0 {
		return Membership{}, nil
	}
	if len(teams) > 1 {
		ids := make([]string, len(teams))
		for i, t := range teams {
			ids[i] = t.ID
		}
		d.logger.Errorw("participant found in more than one team", "email", email, "team_ids", ids)
	}

	team := teams[0]
	return Membership{
		HasTeam:  true,
		TeamID:   team.ID,
		TeamName: team.Name,
		Role:     RoleIn(&team, email),
	}, nil
}

// RoleIn returns email's role in team, assuming email is a member.
func RoleIn(team *teamModel.Team, email string) Role {
	if team.IsLeader(email) {
		return RoleLeader
	}
	return RoleMember
}
