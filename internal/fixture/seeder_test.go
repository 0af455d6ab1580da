package fixture

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/database/dbtest"
	"github.com/festy23/hackathon_teams/internal/membership"
	"github.com/festy23/hackathon_teams/internal/notify"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	participantRepository "github.com/festy23/hackathon_teams/internal/participant/repository"
	participantService "github.com/festy23/hackathon_teams/internal/participant/service"
	"github.com/festy23/hackathon_teams/internal/schema"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
	teamRepository "github.com/festy23/hackathon_teams/internal/team/repository"
	teamService "github.com/festy23/hackathon_teams/internal/team/service"
)

type fixture struct {
	db           *gorm.DB
	participants participantService.Service
	teams        teamService.Service
	seeder       *Seeder
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t, &participantModel.Participant{}, &teamModel.Team{}, &teamModel.Member{})
	logger := zap.NewNop().Sugar()
	store, err := schema.NewStore("", logger)
	require.NoError(t, err)

	teamRepo := teamRepository.New(db, logger)
	teams := teamService.New(teamRepo, db, logger)
	participants := participantService.New(participantRepository.New(db, logger), store,
		membership.NewDirectory(teamRepo, logger), notify.Nop{}, logger)
	return &fixture{db: db, participants: participants, teams: teams, seeder: NewSeeder(participants, teams, logger)}
}

func (f *fixture) team(t *testing.T, name, leader, gender string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.participants.Register(ctx, leader, map[string]interface{}{"name": "Leader", "gender": gender})
	require.NoError(t, err)
	_, err = f.teams.Create(ctx, leader, &teamModel.CreateTeamRequest{Name: name})
	require.NoError(t, err)
}

func member(i int, gender string) Participant {
	return Participant{
		Email:  fmt.Sprintf("testmember%d@example.com", i),
		Fields: map[string]string{"name": fmt.Sprintf("Test Member %d", i), "gender": gender, "year": "3"},
	}
}

func TestSeeder_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("admits fixtures", func(t *testing.T) {
		f := setup(t)
		f.team(t, "Tekions", "lead@example.com", "male")
		fixtures := []Participant{member(1, "male"), member(2, "male"), member(3, "male"), member(4, "female")}

		report, err := f.seeder.Add(ctx, "Tekions", fixtures)

		require.NoError(t, err)
		assert.Len(t, report.Changed, 4)
		assert.Empty(t, report.Skipped)
		assert.Equal(t, 5, report.Members)

		team, err := f.teams.GetByName(ctx, "Tekions")
		require.NoError(t, err)
		assert.Equal(t, 5, team.MemberCount)
	})

	t.Run("team rules still apply", func(t *testing.T) {
		f := setup(t)
		f.team(t, "Tekions", "lead@example.com", "male")
		fixtures := []Participant{
			member(1, "male"), member(2, "male"), member(3, "male"), member(4, "male"),
			member(5, "male"), member(6, "female"), member(7, "female"),
		}

		report, err := f.seeder.Add(ctx, "Tekions", fixtures)

		require.NoError(t, err)
		assert.Equal(t, "GENDER_CONSTRAINT_VIOLATION", report.Skipped["testmember5@example.com"])
		assert.Equal(t, "TEAM_FULL", report.Skipped["testmember7@example.com"])
		assert.Equal(t, 6, report.Members)
	})

	t.Run("rerun skips existing members", func(t *testing.T) {
		f := setup(t)
		f.team(t, "Tekions", "lead@example.com", "female")
		fixtures := []Participant{member(1, "male")}
		_, err := f.seeder.Add(ctx, "Tekions", fixtures)
		require.NoError(t, err)

		report, err := f.seeder.Add(ctx, "Tekions", fixtures)

		require.NoError(t, err)
		assert.Empty(t, report.Changed)
		assert.Equal(t, "ALREADY_IN_TEAM", report.Skipped["testmember1@example.com"])
	})

	t.Run("invalid registration skipped", func(t *testing.T) {
		f := setup(t)
		f.team(t, "Tekions", "lead@example.com", "female")
		bad := Participant{Email: "x@example.com", Fields: map[string]string{"name": "X", "gender": "robot"}}

		report, err := f.seeder.Add(ctx, "Tekions", []Participant{bad})

		require.NoError(t, err)
		assert.Equal(t, "INVALID_FIELDS", report.Skipped["x@example.com"])
	})

	t.Run("unknown team", func(t *testing.T) {
		f := setup(t)
		_, err := f.seeder.Add(ctx, "Nope", []Participant{member(1, "male")})
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}

func TestSeeder_Remove(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.team(t, "Tekions", "lead@example.com", "male")
	fixtures := []Participant{member(1, "male"), member(2, "female")}
	_, err := f.seeder.Add(ctx, "Tekions", fixtures)
	require.NoError(t, err)

	withLeader := append(fixtures, Participant{Email: "lead@example.com"}, member(9, "male"))
	report, err := f.seeder.Remove(ctx, "Tekions", withLeader)

	require.NoError(t, err)
	assert.Equal(t, []string{"testmember1@example.com", "testmember2@example.com"}, report.Changed)
	assert.Equal(t, "LEADER_CANNOT_LEAVE", report.Skipped["lead@example.com"])
	assert.Equal(t, 1, report.Members)

	var n int64
	require.NoError(t, f.db.Model(&participantModel.Participant{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSeeder_Remove_KeepsMembersOfOtherTeams(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.team(t, "A", "lead-a@example.com", "male")
	f.team(t, "B", "lead-b@example.com", "male")
	_, err := f.seeder.Add(ctx, "A", []Participant{
		member(1, "male"), member(2, "male"), member(3, "male"), member(4, "male"), member(5, "female"),
	})
	require.NoError(t, err)

	report, err := f.seeder.Remove(ctx, "B", []Participant{member(5, "female")})

	require.NoError(t, err)
	assert.Empty(t, report.Changed)
	assert.Equal(t, "ALREADY_IN_TEAM", report.Skipped["testmember5@example.com"])

	team, err := f.teams.GetByName(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, teamModel.MaxTeamSize, team.MemberCount)
	assert.True(t, teamModel.HasFemale(teamModel.Genders(team.Members)))
}
