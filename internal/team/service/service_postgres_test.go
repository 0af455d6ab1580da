//go:build integration

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/database/migrate"
	"github.com/festy23/hackathon_teams/internal/database/pool"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
	"github.com/festy23/hackathon_teams/internal/team/repository"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("hackathon"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := gorm.Open(postgresDriver.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, pool.SetupConnectionPool(db, pool.DefaultPoolConfig()))

	require.NoError(t, migrate.Migrate(db, "../../../migrations", zap.NewNop().Sugar()))
	return db
}

func TestPostgres_ConcurrentAdmitsRespectSize(t *testing.T) {
	ctx := context.Background()
	db := startPostgres(t)
	logger := zap.NewNop().Sugar()
	svc := New(repository.New(db, logger), db, logger)

	register := func(email, gender string) {
		require.NoError(t, db.Create(&participantModel.Participant{
			Email: email, Name: email, Gender: gender, Fields: datatypes.JSONMap{"name": email, "gender": gender},
		}).Error)
	}
	register("lead@example.com", "female")
	created, err := svc.Create(ctx, "lead@example.com", &teamModel.CreateTeamRequest{Name: "Racers"})
	require.NoError(t, err)

	const candidates = 12
	for i := 0; i < candidates; i++ {
		register(fmt.Sprintf("m%d@example.com", i), "male")
	}

	var wg sync.WaitGroup
	codes := make(chan string, candidates)
	for i := 0; i < candidates; i++ {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			_, err := svc.Admit(ctx, created.TeamID, email)
			if err != nil {
				codes <- apperr.CodeOf(err)
				return
			}
			codes <- "OK"
		}(fmt.Sprintf("m%d@example.com", i))
	}
	wg.Wait()
	close(codes)

	counts := map[string]int{}
	for c := range codes {
		counts[c]++
	}
	assert.Equal(t, teamModel.MaxTeamSize-1, counts["OK"])
	assert.Equal(t, candidates-(teamModel.MaxTeamSize-1), counts["TEAM_FULL"])

	team, err := svc.Get(ctx, created.TeamID)
	require.NoError(t, err)
	assert.Equal(t, teamModel.MaxTeamSize, team.MemberCount)
}

func TestPostgres_OneTeamPerParticipant(t *testing.T) {
	ctx := context.Background()
	db := startPostgres(t)
	logger := zap.NewNop().Sugar()
	svc := New(repository.New(db, logger), db, logger)

	for _, email := range []string{"a@example.com", "b@example.com", "free@example.com"} {
		require.NoError(t, db.Create(&participantModel.Participant{
			Email: email, Name: email, Gender: "female", Fields: datatypes.JSONMap{},
		}).Error)
	}
	teamA, err := svc.Create(ctx, "a@example.com", &teamModel.CreateTeamRequest{Name: "A"})
	require.NoError(t, err)
	teamB, err := svc.Create(ctx, "b@example.com", &teamModel.CreateTeamRequest{Name: "B"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, id := range []string{teamA.TeamID, teamB.TeamID} {
		wg.Add(1)
		go func(teamID string) {
			defer wg.Done()
			_, err := svc.Admit(ctx, teamID, "free@example.com")
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var ok, refused int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, teamModel.ErrAlreadyInTeam)
		refused++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, refused)
}
