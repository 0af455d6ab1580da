// Package service provides business logic layer for team module.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/metrics"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
	"github.com/festy23/hackathon_teams/internal/team/repository"
	"github.com/festy23/hackathon_teams/pkg/invitecode"
	"github.com/festy23/hackathon_teams/pkg/retry"
)

// codeAttempts bounds invite code regeneration on collision.
const codeAttempts = 5

// maxNameLength matches the teams.name column width.
const maxNameLength = 255

// Service defines the interface for team business logic operations.
type Service interface {
	// Create creates a team led by email with a fresh invite code.
	Create(ctx context.Context, email string, req *teamModel.CreateTeamRequest) (*teamModel.CreateTeamResponse, error)

	// JoinByCode adds email to the team holding inviteCode.
	JoinByCode(ctx context.Context, email, inviteCode string) (*teamModel.JoinTeamResponse, error)

	// Admit appends email to the team under the size and gender rules.
	Admit(ctx context.Context, teamID, email string) (*teamModel.Team, error)

	// Leave removes a non-leader member from their team.
	Leave(ctx context.Context, email string) error

	// Remove takes a non-leader member out of the given team.
	Remove(ctx context.Context, teamID, email string) error

	// Dissolve deletes the team led by email.
	Dissolve(ctx context.Context, email string) error

	// Status returns the caller's team and members.
	Status(ctx context.Context, email string) (*teamModel.StatusResponse, error)

	// UpdateDetails lets the leader edit discovery metadata.
	UpdateDetails(ctx context.Context, email string, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error)

	// Get returns a team with its members.
	Get(ctx context.Context, teamID string) (*teamModel.TeamWithMembers, error)

	// GetByName returns a team with its members by exact name.
	GetByName(ctx context.Context, name string) (*teamModel.TeamWithMembers, error)

	// ListOpen returns public teams that still have free slots.
	ListOpen(ctx context.Context) ([]teamModel.DiscoveryTeam, error)

	// ListAll returns every team with its members.
	ListAll(ctx context.Context) ([]teamModel.TeamWithMembers, error)
}

// Option configures a service.
type Option func(*service)

// WithCodeGenerator replaces the invite code source.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *service) {
		s.generateCode = gen
	}
}

type service struct {
	repo         repository.Repository
	db           *gorm.DB
	logger       *zap.SugaredLogger
	generateCode func() (string, error)
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger, opts ...Option) Service {
	s := &service{
		repo:         repo,
		db:           db,
		logger:       logger,
		generateCode: invitecode.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// transaction runs fn against a repository bound to a single transaction.
func (s *service) transaction(ctx context.Context, fn func(txRepo repository.Repository) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.New(tx, s.logger))
	})
	return apperr.Unavailable(err)
}

func (s *service) logRefusal(op string, err error, keysAndValues ...interface{}) {
	kv := append([]interface{}{"code", apperr.CodeOf(err)}, keysAndValues...)
	if apperr.KindOf(err) == apperr.KindUnavailable || apperr.KindOf(err) == "" {
		s.logger.Errorw(op+" failed", append(kv, "error", err)...)
		return
	}
	s.logger.Warnw(op+" refused", kv...)
}

// Create creates a team with the caller as leader and only member.
func (s *service) Create(ctx context.Context, email string, req *teamModel.CreateTeamRequest) (resp *teamModel.CreateTeamResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveTeamOp("create", start, err) }()

	name := strings.TrimSpace(req.Name)
	s.logger.Debugw("creating team", "email", email, "name", name)
	if name == "" || len(name) > maxNameLength {
		return nil, teamModel.ErrInvalidTeamName
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	cfg := retry.Immediate(codeAttempts, func(err error) bool {
		return errors.Is(err, teamModel.ErrCodeCollision)
	})
	team, err := retry.DoWithResult(ctx, cfg, func() (*teamModel.Team, error) {
		code, err := s.generateCode()
		if err != nil {
			return nil, apperr.Unavailable(err)
		}

		team := &teamModel.Team{
			Name:             name,
			InviteCode:       code,
			LeaderEmail:      email,
			Description:      strings.TrimSpace(req.Description),
			SkillsNeeded:     cleanList(req.SkillsNeeded),
			ProblemStatement: strings.TrimSpace(req.ProblemStatement),
			IsPublic:         isPublic,
		}
		err = s.transaction(ctx, func(txRepo repository.Repository) error {
			teams, err := txRepo.FindByMember(ctx, email)
			if err != nil {
				return err
			}
			if len(teams) > 0 {
				return teamModel.ErrAlreadyInTeam
			}
			if _, err := txRepo.GetParticipant(ctx, email); err != nil {
				return err
			}
			return txRepo.Create(ctx, team)
		})
		if errors.Is(err, teamModel.ErrCodeCollision) {
			s.logger.Warnw("invite code collision, regenerating", "name", name)
		}
		return team, err
	})
	if err != nil {
		s.logRefusal("create team", err, "email", email, "name", name)
		return nil, err
	}

	s.logger.Infow("team created", "team_id", team.ID, "name", team.Name, "leader", email)
	return &teamModel.CreateTeamResponse{
		OK:         true,
		TeamID:     team.ID,
		Name:       team.Name,
		InviteCode: team.InviteCode,
	}, nil
}

// JoinByCode resolves the invite code and admits the caller.
func (s *service) JoinByCode(ctx context.Context, email, inviteCode string) (resp *teamModel.JoinTeamResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveTeamOp("join_by_code", start, err) }()

	code := invitecode.Normalize(inviteCode)
	s.logger.Debugw("joining team by code", "email", email)
	if code == "" {
		return nil, teamModel.ErrInviteCodeRequired
	}

	if _, err = s.repo.GetParticipant(ctx, email); err != nil {
		s.logRefusal("join by code", err, "email", email)
		return nil, err
	}
	teams, err := s.repo.FindByMember(ctx, email)
	if err != nil {
		s.logRefusal("join by code", err, "email", email)
		return nil, err
	}
	if len(teams) > 0 {
		err = teamModel.ErrAlreadyInTeam
		s.logRefusal("join by code", err, "email", email)
		return nil, err
	}

	target, err := s.repo.GetByInviteCode(ctx, code)
	if err != nil {
		s.logRefusal("join by code", err, "email", email)
		return nil, err
	}

	team, err := s.admit(ctx, target.ID, email)
	if errors.Is(err, teamModel.ErrTeamNotFound) {
		// Dissolved between lookup and lock.
		err = teamModel.ErrInvalidInviteCode
	}
	if err != nil {
		s.logRefusal("join by code", err, "email", email, "team_id", target.ID)
		return nil, err
	}

	s.logger.Infow("participant joined team", "email", email, "team_id", team.ID, "via", "invite_code")
	return &teamModel.JoinTeamResponse{OK: true, TeamID: team.ID, TeamName: team.Name}, nil
}

// Admit appends email to a team; used when a leader accepts a join request.
func (s *service) Admit(ctx context.Context, teamID, email string) (team *teamModel.Team, err error) {
	start := time.Now()
	defer func() { metrics.ObserveTeamOp("admit", start, err) }()

	s.logger.Debugw("admitting participant", "email", email, "team_id", teamID)
	team, err = s.admit(ctx, teamID, email)
	if err != nil {
		s.logRefusal("admit", err, "email", email, "team_id", teamID)
		return nil, err
	}
	s.logger.Infow("participant joined team", "email", email, "team_id", teamID, "via", "admit")
	return team, nil
}

// admit locks the team row so concurrent joins see each other's writes,
// then re-validates size, registration, membership and gender before inserting.
func (s *service) admit(ctx context.Context, teamID, email string) (*teamModel.Team, error) {
	var team *teamModel.Team
	err := s.transaction(ctx, func(txRepo repository.Repository) error {
		locked, err := txRepo.LockByID(ctx, teamID)
		if err != nil {
			return err
		}

		members, err := txRepo.ListMembers(ctx, teamID)
		if err != nil {
			return err
		}
		if len(members) >= teamModel.MaxTeamSize {
			return teamModel.ErrTeamFull
		}

		participant, err := txRepo.GetParticipant(ctx, email)
		if err != nil {
			return err
		}

		teams, err := txRepo.FindByMember(ctx, email)
		if err != nil {
			return err
		}
		if len(teams) > 0 {
			return teamModel.ErrAlreadyInTeam
		}

		if err := teamModel.CheckAdmission(teamModel.Genders(members), participant.Gender); err != nil {
			return err
		}

		position := 0
		if n := len(members); n > 0 {
			position = members[n-1].Position + 1
		}
		if err := txRepo.AddMember(ctx, teamID, email, position); err != nil {
			return err
		}
		if err := txRepo.Touch(ctx, teamID); err != nil {
			return err
		}

		team = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// Leave removes the caller from their team. The leader must dissolve instead.
func (s *service) Leave(ctx context.Context, email string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveTeamOp("leave", start, err) }()

	s.logger.Debugw("leaving team", "email", email)
	var teamID string
	err = s.transaction(ctx, func(txRepo repository.Repository) error {
		teams, err := txRepo.FindByMember(ctx, email)
		if err != nil {
			return err
		}
		if len(teams) == 0 {
			return teamModel.ErrNotInTeam
		}
		team := teams[0]
		if team.IsLeader(email) {
			return teamModel.ErrLeaderCannotLeave
		}
		if _, err := txRepo.LockByID(ctx, team.ID); err != nil {
			return err
		}
		if err := txRepo.RemoveMember(ctx, team.ID, email); err != nil {
			return err
		}
		teamID = team.ID
		return txRepo.Touch(ctx, team.ID)
	})
	if err != nil {
		s.logRefusal("leave team", err, "email", email)
		return err
	}

	s.logger.Infow("participant left team", "email", email, "team_id", teamID)
	return nil
}

// Remove takes a non-leader member out of the given team.
func (s *service) Remove(ctx context.Context, teamID, email string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveTeamOp("remove", start, err) }()

	s.logger.Debugw("removing member", "email", email, "team_id", teamID)
	err = s.transaction(ctx, func(txRepo repository.Repository) error {
		team, err := txRepo.LockByID(ctx, teamID)
		if err != nil {
			return err
		}
		if team.IsLeader(email) {
			return teamModel.ErrLeaderCannotLeave
		}
		if err := txRepo.RemoveMember(ctx, teamID, email); err != nil {
			return err
		}
		return txRepo.Touch(ctx, teamID)
	})
	if err != nil {
		s.logRefusal("remove member", err, "email", email, "team_id", teamID)
		return err
	}

	s.logger.Infow("member removed", "email", email, "team_id", teamID)
	return nil
}

// Dissolve deletes the team led by the caller. Participant records are kept.
func (s *service) Dissolve(ctx context.Context, email string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveTeamOp("dissolve", start, err) }()

	s.logger.Debugw("dissolving team", "email", email)
	var dissolved *teamModel.Team
	err = s.transaction(ctx, func(txRepo repository.Repository) error {
		team, err := txRepo.GetByLeader(ctx, email)
		if err != nil {
			return err
		}
		if _, err := txRepo.LockByID(ctx, team.ID); err != nil {
			return err
		}
		dissolved = team
		return txRepo.Delete(ctx, team.ID)
	})
	if errors.Is(err, teamModel.ErrTeamNotFound) {
		err = teamModel.ErrNotLeader
	}
	if err != nil {
		s.logRefusal("dissolve team", err, "email", email)
		return err
	}

	s.logger.Infow("team dissolved", "team_id", dissolved.ID, "name", dissolved.Name, "leader", email)
	return nil
}

// Status returns the caller's team, or an empty response without one.
func (s *service) Status(ctx context.Context, email string) (*teamModel.StatusResponse, error) {
	teams, err := s.repo.FindByMember(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return &teamModel.StatusResponse{}, nil
	}
	if len(teams) > 1 {
		s.logger.Errorw("participant found in more than one team", "email", email, "teams", len(teams))
	}

	team := teams[0]
	members, err := s.repo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	return &teamModel.StatusResponse{Team: &team, Members: members}, nil
}

// UpdateDetails applies the non-nil fields of req to the caller's team.
func (s *service) UpdateDetails(ctx context.Context, email string, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error) {
	team, err := s.repo.GetByLeader(ctx, email)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.SkillsNeeded != nil {
		updates["skills_needed"] = cleanList(req.SkillsNeeded)
	}
	if req.ProblemStatement != nil {
		updates["problem_statement"] = strings.TrimSpace(*req.ProblemStatement)
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if err := s.repo.UpdateDetails(ctx, team.ID, updates); err != nil {
		s.logRefusal("update team", err, "team_id", team.ID)
		return nil, err
	}

	s.logger.Infow("team details updated", "team_id", team.ID, "fields", len(updates))
	return s.repo.GetByID(ctx, team.ID)
}

// Get returns a team with its ordered members.
func (s *service) Get(ctx context.Context, teamID string) (*teamModel.TeamWithMembers, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.withMembers(ctx, team)
}

// GetByName returns the team with the given name and its members.
func (s *service) GetByName(ctx context.Context, name string) (*teamModel.TeamWithMembers, error) {
	team, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return s.withMembers(ctx, team)
}

func (s *service) withMembers(ctx context.Context, team *teamModel.Team) (*teamModel.TeamWithMembers, error) {
	members, err := s.repo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	return &teamModel.TeamWithMembers{Team: *team, Members: members, MemberCount: len(members)}, nil
}

// ListOpen returns public teams below full size. Invite codes are not exposed.
func (s *service) ListOpen(ctx context.Context) ([]teamModel.DiscoveryTeam, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	open := make([]teamModel.DiscoveryTeam, 0, len(all))
	for _, t := range all {
		if !t.IsPublic || t.MemberCount >= teamModel.MaxTeamSize {
			continue
		}
		skills := t.SkillsNeeded
		if skills == nil {
			skills = []string{}
		}
		open = append(open, teamModel.DiscoveryTeam{
			ID:               t.ID,
			Name:             t.Name,
			LeaderEmail:      t.LeaderEmail,
			MemberEmails:     teamModel.Emails(t.Members),
			MemberCount:      t.MemberCount,
			AvailableSpots:   teamModel.MaxTeamSize - t.MemberCount,
			HasFemaleMember:  teamModel.HasFemale(teamModel.Genders(t.Members)),
			Description:      t.Description,
			SkillsNeeded:     skills,
			ProblemStatement: t.ProblemStatement,
			CreatedAt:        t.CreatedAt,
		})
	}
	return open, nil
}

// ListAll returns every team with its members.
func (s *service) ListAll(ctx context.Context) ([]teamModel.TeamWithMembers, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListAllMembers(ctx)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string][]teamModel.MemberProfile, len(teams))
	for _, m := range members {
		byTeam[m.TeamID] = append(byTeam[m.TeamID], m)
	}

	out := make([]teamModel.TeamWithMembers, 0, len(teams))
	for _, t := range teams {
		list := byTeam[t.ID]
		if list == nil {
			list = []teamModel.MemberProfile{}
		}
		out = append(out, teamModel.TeamWithMembers{Team: t, Members: list, MemberCount: len(list)})
	}
	return out, nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
