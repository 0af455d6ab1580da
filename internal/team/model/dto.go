package model

import "time"

// CreateTeamRequest is the payload for creating a team.
type CreateTeamRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	SkillsNeeded     []string `json:"skills_needed"`
	ProblemStatement string   `json:"problem_statement"`
	IsPublic         *bool    `json:"is_public"`
}

// CreateTeamResponse returns the new team's identity and invite code.
type CreateTeamResponse struct {
	OK         bool   `json:"ok"`
	TeamID     string `json:"team_id"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code"`
}

// JoinTeamRequest is the payload for joining by invite code.
type JoinTeamRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// JoinTeamResponse identifies the team joined.
type JoinTeamResponse struct {
	OK       bool   `json:"ok"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
}

// UpdateTeamRequest edits discovery metadata. Nil fields are left unchanged.
type UpdateTeamRequest struct {
	Description      *string  `json:"description"`
	SkillsNeeded     []string `json:"skills_needed"`
	ProblemStatement *string  `json:"problem_statement"`
	IsPublic         *bool    `json:"is_public"`
}

// StatusResponse is the caller's team and members; Team is nil without a team.
type StatusResponse struct {
	Team    *Team           `json:"team"`
	Members []MemberProfile `json:"members,omitempty"`
}

// DiscoveryTeam is the public view of a team with open slots. The invite code is not exposed.
type DiscoveryTeam struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	LeaderEmail      string    `json:"leader_email"`
	MemberEmails     []string  `json:"member_emails"`
	MemberCount      int       `json:"member_count"`
	AvailableSpots   int       `json:"available_spots"`
	HasFemaleMember  bool      `json:"has_female_member"`
	Description      string    `json:"description"`
	SkillsNeeded     []string  `json:"skills_needed"`
	ProblemStatement string    `json:"problem_statement"`
	CreatedAt        time.Time `json:"created_at"`
}

// TeamWithMembers is a team with its ordered member list.
type TeamWithMembers struct {
	Team
	Members     []MemberProfile `json:"members"`
	MemberCount int             `json:"member_count"`
}
