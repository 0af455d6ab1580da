// Package service provides business logic layer for connection request module.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/badoux/checkmail"
	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/connection/model"
	"github.com/festy23/hackathon_teams/internal/connection/repository"
	"github.com/festy23/hackathon_teams/internal/notify"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Service defines the interface for connection request business logic operations.
type Service interface {
	// Create records from's interest in teaming up with to and notifies to.
	Create(ctx context.Context, from, to string) (*model.ConnectionRequest, error)

	// ListIncoming returns requests addressed to email.
	ListIncoming(ctx context.Context, email string) ([]model.ConnectionRequest, error)
}

// Directory looks up participants and the teams they belong to.
type Directory interface {
	GetParticipant(ctx context.Context, email string) (*participantModel.Participant, error)
	FindByMember(ctx context.Context, email string) ([]teamModel.Team, error)
}

type service struct {
	repo      repository.Repository
	directory Directory
	notifier  notify.Notifier
	logger    *zap.SugaredLogger
}

// New creates a new connection request service instance.
func New(repo repository.Repository, directory Directory, notifier notify.Notifier, logger *zap.SugaredLogger) Service {
	return &service{
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create requires both participants to be registered and without a team.
// The recipient is emailed in the background; a failed send does not fail the request.
func (s *service) Create(ctx context.Context, from, to string) (*model.ConnectionRequest, error) {
	to = strings.TrimSpace(to)
	if err := checkmail.ValidateFormat(to); err != nil {
		return nil, participantModel.ErrInvalidEmail
	}
	if from == to {
		return nil, model.ErrSelfConnection
	}

	sender, err := s.participant(ctx, from)
	if err != nil {
		return nil, err
	}
	recipient, err := s.participant(ctx, to)
	if err != nil {
		return nil, err
	}

	if err := s.requireFree(ctx, from, model.ErrSenderInTeam); err != nil {
		return nil, err
	}
	if err := s.requireFree(ctx, to, model.ErrRecipientInTeam); err != nil {
		return nil, err
	}

	req := &model.ConnectionRequest{
		FromEmail:       sender.Email,
		FromName:        sender.Name,
		ToEmail:         recipient.Email,
		ToName:          recipient.Name,
		FromUserDetails: sender.Snapshot(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Errorw("failed to store connection request", "from", from, "to", to, "error", err)
		return nil, err
	}
	s.logger.Infow("connection request created", "request_id", req.ID, "from", from, "to", to)

	profile := notify.Profile{
		Name:       sender.Name,
		Email:      sender.Email,
		Department: req.FromUserDetails.Department,
		Year:       req.FromUserDetails.Year,
		Phone:      req.FromUserDetails.Phone,
		Skills:     req.FromUserDetails.Skills,
	}
	toName := recipient.Name
	notify.Background(s.logger, "connection request", func(ctx context.Context) error {
		return s.notifier.ConnectionRequested(ctx, to, toName, profile)
	})

	return req, nil
}

func (s *service) participant(ctx context.Context, email string) (*participantModel.Participant, error) {
	p, err := s.directory.GetParticipant(ctx, email)
	if err != nil {
		if errors.Is(err, teamModel.ErrNotRegistered) {
			s.logger.Warnw("connection request refused", "code", model.ErrUserNotFound.Code, "email", email)
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) requireFree(ctx context.Context, email string, inTeam error) error {
	teams, err := s.directory.FindByMember(ctx, email)
	if err != nil {
		return err
	}
	if len(teams) > 0 {
		s.logger.Warnw("connection request refused", "email", email, "team_id", teams[0].ID)
		return inTeam
	}
	return nil
}

func (s *service) ListIncoming(ctx context.Context, email string) ([]model.ConnectionRequest, error) {
	return s.repo.ListByRecipient(ctx, email)
}
