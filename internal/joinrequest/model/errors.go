package model

import "github.com/festy23/hackathon_teams/internal/apperr"

var (
	// ErrDuplicateRequest indicates a pending request for the same team already exists.
	ErrDuplicateRequest = apperr.New(apperr.KindConflict, "DUPLICATE_REQUEST", "you already have a pending request for this team")
	// ErrAlreadyMember indicates the requester already belongs to the requested team.
	ErrAlreadyMember = apperr.New(apperr.KindConflict, "ALREADY_MEMBER", "you are already a member of this team")
	// ErrAlreadyInAnotherTeam indicates the requester belongs to a different team.
	ErrAlreadyInAnotherTeam = apperr.New(apperr.KindConflict, "ALREADY_IN_ANOTHER_TEAM", "you are already part of a team")
	// ErrUserNotFound indicates the requester has no participant record.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	// ErrRequestNotFound indicates no join request has the given id.
	ErrRequestNotFound = apperr.New(apperr.KindNotFound, "REQUEST_NOT_FOUND", "join request not found")
	// ErrRequestAlreadyResolved indicates the request was accepted or rejected before.
	ErrRequestAlreadyResolved = apperr.New(apperr.KindConflict, "REQUEST_ALREADY_RESOLVED", "join request already resolved")
	// ErrInvalidAction indicates an action other than accept or reject.
	ErrInvalidAction = apperr.New(apperr.KindValidation, "INVALID_ACTION", "action must be accept or reject")
	// ErrNotTeamLeader indicates the caller does not lead the request's team.
	ErrNotTeamLeader = apperr.New(apperr.KindUnauthorized, "NOT_TEAM_LEADER", "you are not the team leader")
)
