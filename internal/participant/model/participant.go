// Package model provides domain models and DTOs for the participant module.
package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Recognized registration field keys read by discovery and request snapshots.
const (
	FieldName       = "name"
	FieldGender     = "gender"
	FieldPhone      = "phone"
	FieldDepartment = "department"
	FieldYear       = "year"
	FieldSkills     = "skills"
	FieldBio        = "bio"
)

// Participant is a registered hackathon participant. The email is the participant's identity.
// Team membership is never stored here; it is derived from team_members on read.
type Participant struct {
	Email     string            `gorm:"primaryKey;column:email;type:varchar(320)" json:"email"`
	Name      string            `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Gender    string            `gorm:"column:gender;type:varchar(64);not null" json:"gender"`
	Fields    datatypes.JSONMap `gorm:"column:fields" json:"fields"`
	CreatedAt time.Time         `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Participant) TableName() string {
	return "participants"
}

// Field returns a registration field as a trimmed string, or "" when absent.
func (p *Participant) Field(key string) string {
	if p.Fields == nil {
		return ""
	}
	switch v := p.Fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// Skills returns the skills field split on commas.
func (p *Participant) Skills() []string {
	if p.Fields == nil {
		return []string{}
	}
	switch v := p.Fields[FieldSkills].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		return SplitList(v)
	default:
		return []string{}
	}
}

// Snapshot captures the details copied into join and connection requests.
func (p *Participant) Snapshot() Details {
	return Details{
		Department: p.Field(FieldDepartment),
		Year:       p.Field(FieldYear),
		Phone:      p.Field(FieldPhone),
		Skills:     p.Skills(),
	}
}

// Details is a point-in-time copy of a participant's profile.
type Details struct {
	Department string   `json:"department,omitempty"`
	Year       string   `json:"year,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Skills     []string `json:"skills"`
}

// SplitList splits a comma-separated value, dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
