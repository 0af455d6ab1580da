package model

import "github.com/festy23/hackathon_teams/internal/apperr"

var (
	// ErrParticipantNotFound indicates that no participant is registered under the email.
	ErrParticipantNotFound = apperr.New(apperr.KindNotFound, "PARTICIPANT_NOT_FOUND", "participant not found")
	// ErrInvalidEmail indicates a malformed participant email.
	ErrInvalidEmail = apperr.New(apperr.KindValidation, "INVALID_EMAIL", "invalid email address")
	// ErrInvalidFields indicates registration fields rejected by the registration schema.
	ErrInvalidFields = apperr.New(apperr.KindValidation, "INVALID_FIELDS", "invalid registration fields")
	// ErrParticipantInTeam indicates a delete of a participant who still belongs to a team.
	ErrParticipantInTeam = apperr.New(apperr.KindConflict, "PARTICIPANT_IN_TEAM", "participant is still a team member")
)
