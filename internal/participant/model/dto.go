package model

import "github.com/festy23/hackathon_teams/internal/membership"

// RegisterRequest is the registration form submission.
type RegisterRequest struct {
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// RegisterResponse reports whether registration created or updated the record.
type RegisterResponse struct {
	OK      bool `json:"ok"`
	Created bool `json:"created,omitempty"`
	Updated bool `json:"updated,omitempty"`
}

// ProfileResponse is the caller's participant record with derived team status.
// Participant is nil when the caller has not registered yet.
type ProfileResponse struct {
	Participant *Participant          `json:"participant"`
	TeamStatus  membership.Membership `json:"team_status"`
}

// AvailableMember is a participant without a team, as shown in discovery.
type AvailableMember struct {
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Fields AvailableFields `json:"fields"`
}

// AvailableFields exposes only the profile fields shown to other participants.
type AvailableFields struct {
	Phone      *string  `json:"phone"`
	Department *string  `json:"department"`
	Year       *string  `json:"year"`
	Skills     []string `json:"skills"`
	Bio        *string  `json:"bio"`
}

// ToAvailableMember builds the discovery view of p.
func ToAvailableMember(p *Participant) AvailableMember {
	return AvailableMember{
		Name:  p.Name,
		Email: p.Email,
		Fields: AvailableFields{
			Phone:      optional(p.Field(FieldPhone)),
			Department: optional(p.Field(FieldDepartment)),
			Year:       optional(p.Field(FieldYear)),
			Skills:     p.Skills(),
			Bio:        optional(p.Field(FieldBio)),
		},
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
