// Package service provides business logic layer for the admin dashboard.
package service

import (
	"bytes"
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/dashboard/model"
	"github.com/festy23/hackathon_teams/internal/dashboard/repository"
	"github.com/festy23/hackathon_teams/internal/notify"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Service defines the interface for dashboard business logic operations.
type Service interface {
	// Participants lists every participant with team status.
	Participants(ctx context.Context) (*model.ParticipantsResponse, error)

	// Teams lists every team with its members.
	Teams(ctx context.Context) (*model.TeamsResponse, error)

	// Statistics summarizes registration and team formation.
	Statistics(ctx context.Context) (*model.StatisticsResponse, error)

	// Export renders participants and teams as an XLSX workbook.
	Export(ctx context.Context) (*bytes.Buffer, error)

	// Broadcast emails every registered participant.
	Broadcast(ctx context.Context, subject, message string) (*model.BroadcastResponse, error)
}

// ParticipantSource lists registered participants.
type ParticipantSource interface {
	ListAll(ctx context.Context) ([]participantModel.Participant, error)
	Emails(ctx context.Context) ([]string, error)
}

// TeamSource lists teams with their members.
type TeamSource interface {
	ListAll(ctx context.Context) ([]teamModel.TeamWithMembers, error)
}

// BroadcastTimeout bounds a broadcast send.
const BroadcastTimeout = 2 * time.Minute

type service struct {
	repo         repository.Repository
	participants ParticipantSource
	teams        TeamSource
	notifier     notify.Notifier
	logger       *zap.SugaredLogger
}

// New creates a new dashboard service instance.
func New(
	repo repository.Repository,
	participants ParticipantSource,
	teams TeamSource,
	notifier notify.Notifier,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:         repo,
		participants: participants,
		teams:        teams,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *service) Participants(ctx context.Context) (*model.ParticipantsResponse, error) {
	participants, err := s.participants.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	roles := teamRoles(teams)
	rows := make([]model.ParticipantRow, len(participants))
	for i, p := range participants {
		rows[i] = model.ParticipantRow{Participant: p, TeamStatus: roles[p.Email]}
	}
	return &model.ParticipantsResponse{Participants: rows, Total: len(rows)}, nil
}

func (s *service) Teams(ctx context.Context) (*model.TeamsResponse, error) {
	teams, err := s.teams.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &model.TeamsResponse{Teams: teams, Total: len(teams)}, nil
}

func (s *service) Statistics(ctx context.Context) (*model.StatisticsResponse, error) {
	s.logger.Debugw("Statistics called")

	stats, err := s.repo.GetStatistics(ctx)
	if err != nil {
		s.logger.Errorw("Statistics failed", "error", err)
		return nil, err
	}

	s.logger.Infow("Statistics completed", "participants", stats.Participants, "teams", stats.Teams)
	return &model.StatisticsResponse{Statistics: *stats}, nil
}

func (s *service) Export(ctx context.Context) (*bytes.Buffer, error) {
	participants, err := s.participants.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	buf, err := writeWorkbook(participants, teams)
	if err != nil {
		s.logger.Errorw("failed to render export", "error", err)
		return nil, err
	}
	s.logger.Infow("export rendered", "participants", len(participants), "teams", len(teams), "bytes", buf.Len())
	return buf, nil
}

// Broadcast sends synchronously so the caller learns whether the mail server accepted it.
func (s *service) Broadcast(ctx context.Context, subject, message string) (*model.BroadcastResponse, error) {
	emails, err := s.participants.Emails(ctx)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return &model.BroadcastResponse{OK: true, Info: "no recipients"}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, BroadcastTimeout)
	defer cancel()
	if err := s.notifier.Broadcast(ctx, emails, subject, message); err != nil {
		s.logger.Errorw("broadcast failed", "recipients", len(emails), "error", err)
		return nil, model.ErrBroadcastFailed.WithMessage("failed to send emails: " + err.Error())
	}

	s.logger.Infow("broadcast sent", "recipients", len(emails), "subject", subject)
	return &model.BroadcastResponse{OK: true, Count: len(emails)}, nil
}
