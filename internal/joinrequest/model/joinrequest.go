// Package model provides domain models and DTOs for the join request module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
)

// Status is the lifecycle state of a join request.
type Status string

const (
	// StatusPending awaits the leader's decision.
	StatusPending Status = "pending"
	// StatusAccepted means the requester was added to the team.
	StatusAccepted Status = "accepted"
	// StatusRejected means the leader declined.
	StatusRejected Status = "rejected"
)

// Action is a leader's decision on a pending request.
type Action string

const (
	// ActionAccept admits the requester.
	ActionAccept Action = "accept"
	// ActionReject declines the request.
	ActionReject Action = "reject"
)

// Valid reports whether a is accept or reject.
func (a Action) Valid() bool {
	return a == ActionAccept || a == ActionReject
}

// JoinRequest is a participant's request to join a team. TeamName and the
// user fields are copies taken when the request was made. TeamID carries no
// foreign key: a request outlives its dissolved team.
type JoinRequest struct {
	ID          string                   `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	TeamID      string                   `gorm:"column:team_id;type:varchar(36);not null;index:idx_join_requests_team_id;uniqueIndex:uq_join_requests_pending,where:status = 'pending'" json:"team_id"`
	TeamName    string                   `gorm:"column:team_name;type:varchar(255);not null" json:"team_name"`
	UserEmail   string                   `gorm:"column:user_email;type:varchar(320);not null;index:idx_join_requests_user_email;uniqueIndex:uq_join_requests_pending,where:status = 'pending'" json:"user_email"`
	UserName    string                   `gorm:"column:user_name;type:varchar(255);not null" json:"user_name"`
	UserDetails participantModel.Details `gorm:"column:user_details;serializer:json" json:"user_details"`
	Status      Status                   `gorm:"column:status;type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time                `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (JoinRequest) TableName() string {
	return "join_requests"
}

// BeforeCreate assigns a UUID to new requests.
func (r *JoinRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// TeamIDs returns the team ids of requests in order.
func TeamIDs(requests []JoinRequest) []string {
	out := make([]string, len(requests))
	for i, r := range requests {
		out[i] = r.TeamID
	}
	return out
}
