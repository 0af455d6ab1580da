// Package service provides business logic layer for participant module.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/badoux/checkmail"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/festy23/hackathon_teams/internal/membership"
	"github.com/festy23/hackathon_teams/internal/notify"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	"github.com/festy23/hackathon_teams/internal/participant/repository"
	"github.com/festy23/hackathon_teams/internal/schema"
)

// Service defines the interface for participant business logic operations.
type Service interface {
	// Register creates or replaces the caller's registration.
	Register(ctx context.Context, email string, fields map[string]interface{}) (*participantModel.RegisterResponse, error)

	// Get returns the caller's record and derived team status.
	Get(ctx context.Context, email string) (*participantModel.ProfileResponse, error)

	// ListAvailable returns participants without a team.
	ListAvailable(ctx context.Context) ([]participantModel.AvailableMember, error)

	// ListAll returns every participant.
	ListAll(ctx context.Context) ([]participantModel.Participant, error)

	// Emails returns every registered email.
	Emails(ctx context.Context) ([]string, error)

	// Delete removes the record of a participant who is in no team.
	Delete(ctx context.Context, email string) error

	// Schema returns the registration form in effect.
	Schema() *schema.Schema
}

// SchemaSource provides the current registration schema.
type SchemaSource interface {
	Current() *schema.Schema
}

type service struct {
	repo      repository.Repository
	schemas   SchemaSource
	directory *membership.Directory
	notifier  notify.Notifier
	logger    *zap.SugaredLogger
}

// New creates a new participant service instance.
func New(
	repo repository.Repository,
	schemas SchemaSource,
	directory *membership.Directory,
	notifier notify.Notifier,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:      repo,
		schemas:   schemas,
		directory: directory,
		notifier:  notifier,
		logger:    logger,
	}
}

// Register validates fields against the registration schema and upserts by email.
// A confirmation email is sent in the background on first registration only.
func (s *service) Register(ctx context.Context, email string, fields map[string]interface{}) (*participantModel.RegisterResponse, error) {
	email = strings.TrimSpace(email)
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, participantModel.ErrInvalidEmail
	}

	clean, err := s.schemas.Current().Validate(fields)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			s.logger.Warnw("registration rejected", "email", email, "problems", len(verr.Fields))
			return nil, participantModel.ErrInvalidFields.WithMessage(verr.Error())
		}
		return nil, err
	}

	p := &participantModel.Participant{
		Email:  email,
		Name:   clean[participantModel.FieldName].(string),
		Gender: clean[participantModel.FieldGender].(string),
		Fields: datatypes.JSONMap(clean),
	}
	created, err := s.repo.Upsert(ctx, p)
	if err != nil {
		s.logger.Errorw("failed to save registration", "email", email, "error", err)
		return nil, err
	}

	if created {
		s.logger.Infow("participant registered", "email", email)
		name := p.Name
		notify.Background(s.logger, "registration", func(ctx context.Context) error {
			return s.notifier.RegistrationConfirmed(ctx, email, name)
		})
		return &participantModel.RegisterResponse{OK: true, Created: true}, nil
	}

	s.logger.Infow("participant registration updated", "email", email)
	return &participantModel.RegisterResponse{OK: true, Updated: true}, nil
}

// Get returns the caller's profile. Participant is nil before registration.
func (s *service) Get(ctx context.Context, email string) (*participantModel.ProfileResponse, error) {
	resp := &participantModel.ProfileResponse{}

	p, err := s.repo.Get(ctx, email)
	switch {
	case err == nil:
		resp.Participant = p
	case errors.Is(err, participantModel.ErrParticipantNotFound):
	default:
		return nil, err
	}

	status, err := s.directory.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	resp.TeamStatus = status
	return resp, nil
}

func (s *service) ListAvailable(ctx context.Context) ([]participantModel.AvailableMember, error) {
	participants, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]participantModel.AvailableMember, len(participants))
	for i := range participants {
		out[i] = participantModel.ToAvailableMember(&participants[i])
	}
	return out, nil
}

func (s *service) ListAll(ctx context.Context) ([]participantModel.Participant, error) {
	return s.repo.List(ctx)
}

func (s *service) Emails(ctx context.Context) ([]string, error) {
	return s.repo.Emails(ctx)
}

func (s *service) Delete(ctx context.Context, email string) error {
	m, err := s.directory.Resolve(ctx, email)
	if err != nil {
		return err
	}
	if m.HasTeam {
		s.logger.Warnw("participant delete refused", "email", email, "team_id", m.TeamID)
		return participantModel.ErrParticipantInTeam
	}
	if err := s.repo.Delete(ctx, email); err != nil {
		return err
	}
	s.logger.Infow("participant deleted", "email", email)
	return nil
}

func (s *service) Schema() *schema.Schema {
	return s.schemas.Current()
}
