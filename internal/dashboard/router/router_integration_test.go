package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/dashboard/model"
	"github.com/festy23/hackathon_teams/internal/database/dbtest"
	"github.com/festy23/hackathon_teams/internal/membership"
	"github.com/festy23/hackathon_teams/internal/middleware"
	"github.com/festy23/hackathon_teams/internal/middleware/authtest"
	"github.com/festy23/hackathon_teams/internal/notify"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	participantRouter "github.com/festy23/hackathon_teams/internal/participant/router"
	"github.com/festy23/hackathon_teams/internal/schema"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
	teamRepository "github.com/festy23/hackathon_teams/internal/team/repository"
	teamRouter "github.com/festy23/hackathon_teams/internal/team/router"
)

const admin = "organizer@example.com"

func setupIntegration(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t, &participantModel.Participant{}, &teamModel.Team{}, &teamModel.Member{})
	logger := zap.NewNop().Sugar()
	store, err := schema.NewStore("", logger)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", middleware.Auth(authtest.Secret, ""))
	teams := teamRouter.RegisterRoutes(authed, db, logger)
	directory := membership.NewDirectory(teamRepository.New(db, logger), logger)
	participants := participantRouter.RegisterRoutes(r, authed, db, store, directory, notify.Nop{}, logger)
	RegisterRoutes(authed, db, participants, teams, notify.Nop{}, func(email string) bool {
		return strings.EqualFold(email, admin)
	}, logger)
	return r, db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now()
	for _, p := range []participantModel.Participant{
		{Email: "lead@example.com", Name: "Lead", Gender: "female", Fields: datatypes.JSONMap{"name": "Lead"}},
		{Email: "solo@example.com", Name: "Solo", Gender: "male", Fields: datatypes.JSONMap{"name": "Solo"}},
	} {
		now = now.Add(time.Second)
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, db.Create(&p).Error)
	}
	team := &teamModel.Team{Name: "Byte Busters", InviteCode: "K7QX9M", LeaderEmail: "lead@example.com", IsPublic: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(team).Error)
	require.NoError(t, db.Create(&teamModel.Member{TeamID: team.ID, UserEmail: "lead@example.com", JoinedAt: now}).Error)
}

func get(t *testing.T, r *gin.Engine, email, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if email != "" {
		authtest.Authorize(t, req, email)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIntegration_DashboardRequiresAdmin(t *testing.T) {
	r, _ := setupIntegration(t)

	for _, path := range []string{"/dashboard/participants", "/dashboard/teams", "/dashboard/statistics", "/dashboard/export"} {
		assert.Equal(t, http.StatusUnauthorized, get(t, r, "", path).Code, path)
		assert.Equal(t, http.StatusForbidden, get(t, r, "lead@example.com", path).Code, path)
	}
}

func TestIntegration_DashboardViews(t *testing.T) {
	r, db := setupIntegration(t)
	seed(t, db)

	w := get(t, r, "Organizer@Example.com", "/dashboard/participants")
	require.Equal(t, http.StatusOK, w.Code)
	var participants model.ParticipantsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &participants))
	require.Equal(t, 2, participants.Total)
	assert.Equal(t, membership.RoleLeader, participants.Participants[0].TeamStatus.Role)
	assert.False(t, participants.Participants[1].TeamStatus.HasTeam)

	w = get(t, r, admin, "/dashboard/teams")
	require.Equal(t, http.StatusOK, w.Code)
	var teams model.TeamsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &teams))
	require.Equal(t, 1, teams.Total)
	assert.Equal(t, "K7QX9M", teams.Teams[0].InviteCode)
	assert.Equal(t, 1, teams.Teams[0].MemberCount)

	w = get(t, r, admin, "/dashboard/statistics")
	require.Equal(t, http.StatusOK, w.Code)
	var stats model.StatisticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Statistics.Participants)
	assert.Equal(t, 1, stats.Statistics.TeamsWithFemaleMember)
	assert.Equal(t, 1, stats.Statistics.ParticipantsWithoutTeam)

	w = get(t, r, admin, "/dashboard/export")
	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Teams")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
