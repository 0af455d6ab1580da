package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/database/dbtest"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

func setupRepo(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t, &participantModel.Participant{}, &teamModel.Team{}, &teamModel.Member{})
	return New(db, zap.NewNop().Sugar()), db
}

func participant(email, name, gender string, fields datatypes.JSONMap) *participantModel.Participant {
	return &participantModel.Participant{Email: email, Name: name, Gender: gender, Fields: fields}
}

func TestRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepo(t)

	created, err := repo.Upsert(ctx, participant("asha@example.com", "Asha", "female",
		datatypes.JSONMap{"name": "Asha", "gender": "female", "skills": "Go, ML"}))
	require.NoError(t, err)
	assert.True(t, created)

	first, err := repo.Get(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "ML"}, first.Skills())

	time.Sleep(5 * time.Millisecond)
	created, err = repo.Upsert(ctx, participant("asha@example.com", "Asha Rao", "female",
		datatypes.JSONMap{"name": "Asha Rao", "gender": "female"}))
	require.NoError(t, err)
	assert.False(t, created)

	second, err := repo.Get(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", second.Name)
	assert.Empty(t, second.Skills())
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupRepo(t)
	_, err := repo.Get(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, participantModel.ErrParticipantNotFound)
}

func TestRepository_Lists(t *testing.T) {
	ctx := context.Background()
	repo, db := setupRepo(t)
	for _, e := range []string{"b@example.com", "a@example.com", "c@example.com"} {
		_, err := repo.Upsert(ctx, participant(e, e, "male", datatypes.JSONMap{}))
		require.NoError(t, err)
	}
	require.NoError(t, db.Create(&teamModel.Member{TeamID: "t1", UserEmail: "b@example.com", JoinedAt: time.Now()}).Error)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	available, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	emails := []string{}
	for _, p := range available {
		emails = append(emails, p.Email)
	}
	assert.ElementsMatch(t, []string{"a@example.com", "c@example.com"}, emails)

	sorted, err := repo.Emails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, sorted)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepo(t)
	_, err := repo.Upsert(ctx, participant("a@example.com", "A", "male", datatypes.JSONMap{}))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "a@example.com"))
	assert.ErrorIs(t, repo.Delete(ctx, "a@example.com"), participantModel.ErrParticipantNotFound)
}
