package model

import "github.com/festy23/hackathon_teams/internal/apperr"

var (
	// ErrSelfConnection indicates a participant tried to connect with themselves.
	ErrSelfConnection = apperr.New(apperr.KindValidation, "SELF_CONNECTION", "you cannot connect with yourself")
	// ErrUserNotFound indicates the sender or the recipient is not registered.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "one or both users not found")
	// ErrSenderInTeam indicates the sender already belongs to a team.
	ErrSenderInTeam = apperr.New(apperr.KindConflict, "ALREADY_IN_TEAM", "you are already part of a team")
	// ErrRecipientInTeam indicates the recipient already belongs to a team.
	ErrRecipientInTeam = apperr.New(apperr.KindConflict, "RECIPIENT_IN_TEAM",
		"the person you're trying to connect with is already in a team")
)
