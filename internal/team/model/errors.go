package model

import "github.com/festy23/hackathon_teams/internal/apperr"

var (
	// ErrInvalidTeamName indicates an empty or overlong team name.
	ErrInvalidTeamName = apperr.New(apperr.KindValidation, "INVALID_TEAM_NAME", "team name is required")
	// ErrInviteCodeRequired indicates a join without an invite code.
	ErrInviteCodeRequired = apperr.New(apperr.KindValidation, "INVITE_CODE_REQUIRED", "invite code is required")
	// ErrInvalidInviteCode indicates that the invite code matches no team.
	ErrInvalidInviteCode = apperr.New(apperr.KindNotFound, "INVALID_INVITE_CODE", "invalid invite code")
	// ErrTeamNotFound indicates that the team does not exist (it may have been dissolved).
	ErrTeamNotFound = apperr.New(apperr.KindNotFound, "TEAM_NOT_FOUND", "team not found")
	// ErrNotRegistered indicates that the participant has not completed registration.
	ErrNotRegistered = apperr.New(apperr.KindNotFound, "NOT_REGISTERED", "complete registration first")
	// ErrNotInTeam indicates that the participant is not a member of any team.
	ErrNotInTeam = apperr.New(apperr.KindNotFound, "NOT_IN_TEAM", "not in a team")
	// ErrDuplicateName indicates that the team name is taken.
	ErrDuplicateName = apperr.New(apperr.KindConflict, "DUPLICATE_NAME", "team name already taken")
	// ErrCodeCollision indicates that no unused invite code was found within the retry budget.
	ErrCodeCollision = apperr.New(apperr.KindConflict, "CODE_COLLISION", "could not allocate a unique invite code")
	// ErrAlreadyInTeam indicates that the participant already belongs to a team.
	ErrAlreadyInTeam = apperr.New(apperr.KindConflict, "ALREADY_IN_TEAM", "you are already in a team")
	// ErrLeaderCannotLeave indicates that the leader tried to leave instead of dissolving.
	ErrLeaderCannotLeave = apperr.New(apperr.KindConflict, "LEADER_CANNOT_LEAVE", "leader cannot leave; dissolve the team instead")
	// ErrTeamFull indicates that the team already has MaxTeamSize members.
	ErrTeamFull = apperr.New(apperr.KindConstraint, "TEAM_FULL", "team is full (6 members)")
	// ErrGenderConstraint indicates that the join would fill the last slot without a female member.
	ErrGenderConstraint = apperr.New(apperr.KindConstraint, "GENDER_CONSTRAINT_VIOLATION",
		"teams need at least 1 female member; the last slot must be taken by a female if none is in the team yet")
	// ErrNotLeader indicates a leader-only action by someone who leads no team.
	ErrNotLeader = apperr.New(apperr.KindUnauthorized, "NOT_LEADER_OR_NO_TEAM", "not leader or no team")
)
