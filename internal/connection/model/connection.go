// Package model provides domain models and DTOs for the connection request module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
)

// Status is the state of a connection request.
type Status string

const (
	// StatusPending is the state every request is created in.
	StatusPending Status = "pending"
	// StatusConnected marks a request the recipient followed up on.
	StatusConnected Status = "connected"
	// StatusDeclined marks a request the recipient turned down.
	StatusDeclined Status = "declined"
)

// ConnectionRequest records one participant's interest in teaming up with
// another. It never changes team membership.
type ConnectionRequest struct {
	ID              string                   `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	FromEmail       string                   `gorm:"column:from_email;type:varchar(320);not null;index:idx_connection_requests_from_email" json:"from_email"`
	FromName        string                   `gorm:"column:from_name;type:varchar(255);not null" json:"from_name"`
	ToEmail         string                   `gorm:"column:to_email;type:varchar(320);not null;index:idx_connection_requests_to_email" json:"to_email"`
	ToName          string                   `gorm:"column:to_name;type:varchar(255);not null" json:"to_name"`
	FromUserDetails participantModel.Details `gorm:"column:from_user_details;serializer:json" json:"from_user_details"`
	Status          Status                   `gorm:"column:status;type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time                `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt       time.Time                `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ConnectionRequest) TableName() string {
	return "connection_requests"
}

// BeforeCreate assigns a UUID to new requests.
func (r *ConnectionRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
