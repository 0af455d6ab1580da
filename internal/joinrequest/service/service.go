// Package service provides business logic layer for join request module.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/joinrequest/model"
	"github.com/festy23/hackathon_teams/internal/joinrequest/repository"
	"github.com/festy23/hackathon_teams/internal/metrics"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Service defines the interface for join request business logic operations.
type Service interface {
	// RequestToJoin stores a pending request from email to join the team.
	RequestToJoin(ctx context.Context, email, teamID string) (*model.JoinRequest, error)

	// Resolve applies the team leader's decision to a pending request.
	Resolve(ctx context.Context, leaderEmail, requestID string, action model.Action) (*model.ManageResponse, error)

	// ListForLeader returns pending requests for the team email leads.
	ListForLeader(ctx context.Context, email string) ([]model.JoinRequest, error)

	// ListRequestedTeamIDs returns the teams email has pending requests for.
	ListRequestedTeamIDs(ctx context.Context, email string) ([]string, error)
}

// TeamReader is the read side of team storage.
type TeamReader interface {
	GetByID(ctx context.Context, teamID string) (*teamModel.Team, error)
	GetByLeader(ctx context.Context, email string) (*teamModel.Team, error)
	ListMembers(ctx context.Context, teamID string) ([]teamModel.MemberProfile, error)
	FindByMember(ctx context.Context, email string) ([]teamModel.Team, error)
	GetParticipant(ctx context.Context, email string) (*participantModel.Participant, error)
}

// Admitter appends a participant to a team under the team composition rules.
type Admitter interface {
	Admit(ctx context.Context, teamID, email string) (*teamModel.Team, error)
}

type service struct {
	repo   repository.Repository
	teams  TeamReader
	engine Admitter
	logger *zap.SugaredLogger
}

// New creates a new join request service instance.
func New(repo repository.Repository, teams TeamReader, engine Admitter, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		teams:  teams,
		engine: engine,
		logger: logger,
	}
}

func (s *service) logRefusal(op string, err error, keysAndValues ...interface{}) {
	kv := append([]interface{}{"code", apperr.CodeOf(err)}, keysAndValues...)
	if apperr.KindOf(err) == apperr.KindUnavailable || apperr.KindOf(err) == "" {
		s.logger.Errorw(op+" failed", append(kv, "error", err)...)
		return
	}
	s.logger.Warnw(op+" refused", kv...)
}

// RequestToJoin checks the team has room and the requester is free, then
// stores a pending request carrying a copy of the requester's profile.
func (s *service) RequestToJoin(ctx context.Context, email, teamID string) (req *model.JoinRequest, err error) {
	start := time.Now()
	defer func() { metrics.ObserveTeamOp("request_to_join", start, err) }()

	s.logger.Debugw("requesting to join team", "email", email, "team_id", teamID)
	req, err = s.requestToJoin(ctx, email, teamID)
	if err != nil {
		s.logRefusal("join request", err, "email", email, "team_id", teamID)
		return nil, err
	}
	s.logger.Infow("join request created", "request_id", req.ID, "email", email, "team_id", teamID)
	return req, nil
}

func (s *service) requestToJoin(ctx context.Context, email, teamID string) (*model.JoinRequest, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.teams.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(members) >= teamModel.MaxTeamSize {
		return nil, teamModel.ErrTeamFull
	}
	if team.IsLeader(email) || containsEmail(members, email) {
		return nil, model.ErrAlreadyMember
	}

	pending, err := s.repo.HasPending(ctx, teamID, email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, model.ErrDuplicateRequest
	}

	participant, err := s.teams.GetParticipant(ctx, email)
	if err != nil {
		if errors.Is(err, teamModel.ErrNotRegistered) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	teams, err := s.teams.FindByMember(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(teams) > 0 {
		return nil, model.ErrAlreadyInAnotherTeam
	}

	req := &model.JoinRequest{
		TeamID:      team.ID,
		TeamName:    team.Name,
		UserEmail:   email,
		UserName:    participant.Name,
		UserDetails: participant.Snapshot(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Resolve accepts or rejects a request on behalf of the team leader.
// Accepting admits the requester first and records the status second, so a
// failure in between leaves a stale pending status rather than a lost member.
// A requester who joined another team in the meantime has the request
// removed; that is reported as a successful outcome with UserAlreadyInTeam set.
func (s *service) Resolve(ctx context.Context, leaderEmail, requestID string, action model.Action) (resp *model.ManageResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveTeamOp("resolve_request", start, err) }()

	s.logger.Debugw("resolving join request", "request_id", requestID, "leader", leaderEmail, "action", action)
	resp, err = s.resolve(ctx, leaderEmail, requestID, action)
	if err != nil {
		s.logRefusal("resolve join request", err, "request_id", requestID, "leader", leaderEmail, "action", action)
		return nil, err
	}
	return resp, nil
}

func (s *service) resolve(ctx context.Context, leaderEmail, requestID string, action model.Action) (*model.ManageResponse, error) {
	if !action.Valid() {
		return nil, model.ErrInvalidAction
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if !team.IsLeader(leaderEmail) {
		return nil, model.ErrNotTeamLeader
	}
	if req.Status != model.StatusPending {
		return nil, model.ErrRequestAlreadyResolved
	}

	if action == model.ActionReject {
		if err := s.repo.SetStatus(ctx, req.ID, model.StatusRejected); err != nil {
			return nil, err
		}
		s.logger.Infow("join request rejected", "request_id", req.ID, "team_id", team.ID, "email", req.UserEmail)
		return &model.ManageResponse{OK: true, Status: model.StatusRejected, Message: "join request rejected"}, nil
	}

	_, err = s.engine.Admit(ctx, team.ID, req.UserEmail)
	switch {
	case errors.Is(err, teamModel.ErrAlreadyInTeam):
		joined, lookupErr := s.inTeam(ctx, req.UserEmail, team.ID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if joined {
			// A concurrent accept of this request already admitted the requester.
			return s.markAccepted(ctx, req, team.ID), nil
		}
		if err := s.repo.Delete(ctx, req.ID); err != nil {
			return nil, err
		}
		s.logger.Infow("join request removed, requester already in a team",
			"request_id", req.ID, "team_id", team.ID, "email", req.UserEmail)
		return &model.ManageResponse{
			OK:                true,
			UserAlreadyInTeam: true,
			Message:           "user is already in a team; the request has been removed",
		}, nil
	case errors.Is(err, teamModel.ErrNotRegistered):
		return nil, model.ErrUserNotFound
	case err != nil:
		return nil, err
	}

	return s.markAccepted(ctx, req, team.ID), nil
}

// markAccepted records the accepted status once membership is in place.
// Membership is authoritative, so a failed update is only logged.
func (s *service) markAccepted(ctx context.Context, req *model.JoinRequest, teamID string) *model.ManageResponse {
	err := s.repo.SetStatus(ctx, req.ID, model.StatusAccepted)
	if err != nil && !errors.Is(err, model.ErrRequestAlreadyResolved) {
		s.logger.Errorw("member admitted but join request status not updated",
			"request_id", req.ID, "team_id", teamID, "email", req.UserEmail, "error", err)
	}
	s.logger.Infow("join request accepted", "request_id", req.ID, "team_id", teamID, "email", req.UserEmail)
	return &model.ManageResponse{OK: true, Status: model.StatusAccepted, Message: "join request accepted and user added to team"}
}

func (s *service) inTeam(ctx context.Context, email, teamID string) (bool, error) {
	teams, err := s.teams.FindByMember(ctx, email)
	if err != nil {
		return false, err
	}
	for _, t := range teams {
		if t.ID == teamID {
			return true, nil
		}
	}
	return false, nil
}

// ListForLeader returns an empty list when email leads no team.
func (s *service) ListForLeader(ctx context.Context, email string) ([]model.JoinRequest, error) {
	team, err := s.teams.GetByLeader(ctx, email)
	if err != nil {
		if errors.Is(err, teamModel.ErrNotLeader) {
			return []model.JoinRequest{}, nil
		}
		return nil, err
	}
	return s.repo.ListPendingForTeam(ctx, team.ID)
}

func (s *service) ListRequestedTeamIDs(ctx context.Context, email string) ([]string, error) {
	requests, err := s.repo.ListPendingByUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return model.TeamIDs(requests), nil
}

func containsEmail(members []teamModel.MemberProfile, email string) bool {
	for _, m := range members {
		if m.Email == email {
			return true
		}
	}
	return false
}
