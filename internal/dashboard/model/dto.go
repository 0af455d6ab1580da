// Package model provides data transfer objects for the admin dashboard.
package model

import (
	"github.com/festy23/hackathon_teams/internal/membership"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Statistics summarizes registration and team formation.
type Statistics struct {
	Participants            int            `json:"participants"`
	Teams                   int            `json:"teams"`
	FullTeams               int            `json:"full_teams"`
	TeamsWithFemaleMember   int            `json:"teams_with_female_member"`
	ParticipantsWithoutTeam int            `json:"participants_without_team"`
	Genders                 map[string]int `json:"genders"`
}

// StatisticsResponse wraps the dashboard statistics.
type StatisticsResponse struct {
	Statistics Statistics `json:"statistics"`
}

// ParticipantRow is a participant with derived team status.
type ParticipantRow struct {
	participantModel.Participant
	TeamStatus membership.Membership `json:"team_status"`
}

// ParticipantsResponse lists every participant.
type ParticipantsResponse struct {
	Participants []ParticipantRow `json:"participants"`
	Total        int              `json:"total"`
}

// TeamsResponse lists every team with its members.
type TeamsResponse struct {
	Teams []teamModel.TeamWithMembers `json:"teams"`
	Total int                         `json:"total"`
}

// BroadcastRequest is an announcement to every registered participant.
type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// BroadcastResponse reports how many participants the announcement went to.
type BroadcastResponse struct {
	OK    bool   `json:"ok"`
	Count int    `json:"count"`
	Info  string `json:"info,omitempty"`
}
