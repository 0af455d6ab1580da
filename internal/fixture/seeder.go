package fixture

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/apperr"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

// Registrar creates and deletes participant records.
type Registrar interface {
	Register(ctx context.Context, email string, fields map[string]interface{}) (*participantModel.RegisterResponse, error)
	Delete(ctx context.Context, email string) error
}

// Teams looks up teams and changes their membership.
type Teams interface {
	GetByName(ctx context.Context, name string) (*teamModel.TeamWithMembers, error)
	Admit(ctx context.Context, teamID, email string) (*teamModel.Team, error)
	Remove(ctx context.Context, teamID, email string) error
}

// Report lists what a seed run changed. Skipped maps an email to the refusal code.
type Report struct {
	Team    string            `json:"team"`
	Changed []string          `json:"changed"`
	Skipped map[string]string `json:"skipped,omitempty"`
	Members int               `json:"members"`
}

// Seeder applies fixtures through the regular registration and team rules.
type Seeder struct {
	participants Registrar
	teams        Teams
	logger       *zap.SugaredLogger
}

// NewSeeder creates a seeder.
func NewSeeder(participants Registrar, teams Teams, logger *zap.SugaredLogger) *Seeder {
	return &Seeder{participants: participants, teams: teams, logger: logger}
}

// Add registers each fixture participant and admits it to the named team.
// Admission refusals (full team, gender rule, membership elsewhere) skip the
// participant; storage failures abort the run.
func (s *Seeder) Add(ctx context.Context, teamName string, fixtures []Participant) (*Report, error) {
	team, err := s.teams.GetByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	report := &Report{Team: team.Name, Changed: []string{}, Skipped: map[string]string{}, Members: team.MemberCount}

	for _, p := range fixtures {
		if _, err := s.participants.Register(ctx, p.Email, p.Values()); err != nil {
			if !isRefusal(err) {
				return nil, err
			}
			s.logger.Warnw("fixture registration rejected", "email", p.Email, "error", err)
			report.Skipped[p.Email] = apperr.CodeOf(err)
			continue
		}

		if _, err := s.teams.Admit(ctx, team.ID, p.Email); err != nil {
			if !isRefusal(err) {
				return nil, err
			}
			s.logger.Warnw("fixture not admitted", "email", p.Email, "team", team.Name, "code", apperr.CodeOf(err))
			report.Skipped[p.Email] = apperr.CodeOf(err)
			continue
		}
		report.Changed = append(report.Changed, p.Email)
		report.Members++
	}

	s.logger.Infow("fixtures added", "team", team.Name, "added", len(report.Changed), "skipped", len(report.Skipped))
	return report, nil
}

// Remove takes each fixture participant out of the named team and deletes
// its registration. Participants already gone are ignored; participants that
// belong to another team are kept and reported as ALREADY_IN_TEAM.
func (s *Seeder) Remove(ctx context.Context, teamName string, fixtures []Participant) (*Report, error) {
	team, err := s.teams.GetByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	report := &Report{Team: team.Name, Changed: []string{}, Skipped: map[string]string{}, Members: team.MemberCount}

	for _, p := range fixtures {
		err := s.teams.Remove(ctx, team.ID, p.Email)
		switch {
		case err == nil:
			report.Members--
		case errors.Is(err, teamModel.ErrNotInTeam):
		case errors.Is(err, teamModel.ErrLeaderCannotLeave):
			report.Skipped[p.Email] = apperr.CodeOf(err)
			continue
		default:
			return nil, err
		}

		err = s.participants.Delete(ctx, p.Email)
		switch {
		case err == nil:
			report.Changed = append(report.Changed, p.Email)
		case errors.Is(err, participantModel.ErrParticipantNotFound):
		case errors.Is(err, participantModel.ErrParticipantInTeam):
			// Still a member of another team; deleting would orphan that membership.
			s.logger.Warnw("fixture kept, member of another team", "email", p.Email, "team", team.Name)
			report.Skipped[p.Email] = apperr.CodeOf(teamModel.ErrAlreadyInTeam)
		default:
			return nil, err
		}
	}

	s.logger.Infow("fixtures removed", "team", team.Name, "removed", len(report.Changed))
	return report, nil
}

func isRefusal(err error) bool {
	kind := apperr.KindOf(err)
	return kind != "" && kind != apperr.KindUnavailable
}
