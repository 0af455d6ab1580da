package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/hackathon_teams/internal/apperr"
	"github.com/festy23/hackathon_teams/internal/middleware"
	"github.com/festy23/hackathon_teams/internal/middleware/authtest"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
	"github.com/festy23/hackathon_teams/internal/team/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, email string, req *teamModel.CreateTeamRequest) (*teamModel.CreateTeamResponse, error) {
	args := m.Called(ctx, email, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.CreateTeamResponse), args.Error(1)
}

func (m *mockService) JoinByCode(ctx context.Context, email, inviteCode string) (*teamModel.JoinTeamResponse, error) {
	args := m.Called(ctx, email, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.JoinTeamResponse), args.Error(1)
}

func (m *mockService) Admit(ctx context.Context, teamID, email string) (*teamModel.Team, error) {
	args := m.Called(ctx, teamID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockService) Leave(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockService) Remove(ctx context.Context, teamID, email string) error {
	return m.Called(ctx, teamID, email).Error(0)
}

func (m *mockService) Dissolve(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockService) Status(ctx context.Context, email string) (*teamModel.StatusResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.StatusResponse), args.Error(1)
}

func (m *mockService) UpdateDetails(ctx context.Context, email string, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error) {
	args := m.Called(ctx, email, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, teamID string) (*teamModel.TeamWithMembers, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.TeamWithMembers), args.Error(1)
}

func (m *mockService) GetByName(ctx context.Context, name string) (*teamModel.TeamWithMembers, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.TeamWithMembers), args.Error(1)
}

func (m *mockService) ListOpen(ctx context.Context) ([]teamModel.DiscoveryTeam, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]teamModel.DiscoveryTeam), args.Error(1)
}

func (m *mockService) ListAll(ctx context.Context) ([]teamModel.TeamWithMembers, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]teamModel.TeamWithMembers), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

const caller = "asha@example.com"

func setupRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, zap.NewNop().Sugar())
	r := gin.New()
	r.Use(middleware.Auth(authtest.Secret, ""))
	r.POST("/team/create", h.CreateTeam)
	r.POST("/team/join", h.JoinTeam)
	r.POST("/team/leave", h.LeaveTeam)
	r.GET("/team/status", h.GetStatus)
	r.DELETE("/team/status", h.DissolveTeam)
	r.PATCH("/team", h.UpdateTeam)
	r.GET("/team-discovery/teams", h.ListOpenTeams)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	authtest.Authorize(t, req, caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_CreateTeam(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		req := &teamModel.CreateTeamRequest{Name: "Byte Busters", SkillsNeeded: []string{"Go"}}
		svc.On("Create", mock.Anything, caller, req).Return(&teamModel.CreateTeamResponse{
			OK: true, TeamID: "t1", Name: "Byte Busters", InviteCode: "K7QX9M",
		}, nil)

		w := do(t, setupRouter(svc), http.MethodPost, "/team/create", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp teamModel.CreateTeamResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "K7QX9M", resp.InviteCode)
		svc.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		svc := new(mockService)
		w := do(t, setupRouter(svc), http.MethodPost, "/team/create", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Error.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := new(mockService)
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/team/create", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	errorCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"already in team", teamModel.ErrAlreadyInTeam, http.StatusConflict},
		{"duplicate name", teamModel.ErrDuplicateName, http.StatusConflict},
		{"not registered", teamModel.ErrNotRegistered, http.StatusNotFound},
		{"invalid name", teamModel.ErrInvalidTeamName, http.StatusBadRequest},
		{"storage down", apperr.Unavailable(errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Create", mock.Anything, caller, mock.Anything).Return(nil, tt.err)

			w := do(t, setupRouter(svc), http.MethodPost, "/team/create", map[string]string{"name": "X"})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, apperr.CodeOf(tt.err), decodeError(t, w).Error.Code)
		})
	}
}

func TestHandler_JoinTeam(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("JoinByCode", mock.Anything, caller, "k7qx9m").Return(&teamModel.JoinTeamResponse{
			OK: true, TeamID: "t1", TeamName: "Byte Busters",
		}, nil)

		w := do(t, setupRouter(svc), http.MethodPost, "/team/join", map[string]string{"invite_code": "k7qx9m"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Byte Busters")
	})

	t.Run("missing code", func(t *testing.T) {
		w := do(t, setupRouter(new(mockService)), http.MethodPost, "/team/join", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVITE_CODE_REQUIRED", decodeError(t, w).Error.Code)
	})

	for _, tt := range []struct {
		err        error
		wantStatus int
	}{
		{teamModel.ErrTeamFull, http.StatusUnprocessableEntity},
		{teamModel.ErrGenderConstraint, http.StatusUnprocessableEntity},
		{teamModel.ErrInvalidInviteCode, http.StatusNotFound},
		{teamModel.ErrAlreadyInTeam, http.StatusConflict},
	} {
		t.Run(apperr.CodeOf(tt.err), func(t *testing.T) {
			svc := new(mockService)
			svc.On("JoinByCode", mock.Anything, caller, "ABCDEF").Return(nil, tt.err)

			w := do(t, setupRouter(svc), http.MethodPost, "/team/join", map[string]string{"invite_code": "ABCDEF"})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, apperr.CodeOf(tt.err), decodeError(t, w).Error.Code)
		})
	}
}

func TestHandler_LeaveAndDissolve(t *testing.T) {
	t.Run("leave", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Leave", mock.Anything, caller).Return(nil).Once()
		svc.On("Leave", mock.Anything, caller).Return(teamModel.ErrNotInTeam).Once()
		r := setupRouter(svc)

		assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/team/leave", nil).Code)
		w := do(t, r, http.MethodPost, "/team/leave", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_IN_TEAM", decodeError(t, w).Error.Code)
	})

	t.Run("leader cannot leave", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Leave", mock.Anything, caller).Return(teamModel.ErrLeaderCannotLeave)

		w := do(t, setupRouter(svc), http.MethodPost, "/team/leave", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("dissolve", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Dissolve", mock.Anything, caller).Return(nil)

		w := do(t, setupRouter(svc), http.MethodDelete, "/team/status", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("dissolve by non-leader", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Dissolve", mock.Anything, caller).Return(teamModel.ErrNotLeader)

		w := do(t, setupRouter(svc), http.MethodDelete, "/team/status", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "NOT_LEADER_OR_NO_TEAM", decodeError(t, w).Error.Code)
	})
}

func TestHandler_GetStatus(t *testing.T) {
	t.Run("in team", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Status", mock.Anything, caller).Return(&teamModel.StatusResponse{
			Team:    &teamModel.Team{ID: "t1", Name: "Byte Busters", LeaderEmail: caller},
			Members: []teamModel.MemberProfile{{Email: caller, Name: "Asha", Gender: "female"}},
		}, nil)

		w := do(t, setupRouter(svc), http.MethodGet, "/team/status", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp teamModel.StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Team)
		assert.Equal(t, "Byte Busters", resp.Team.Name)
		assert.Len(t, resp.Members, 1)
	})

	t.Run("no team", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Status", mock.Anything, caller).Return(&teamModel.StatusResponse{}, nil)

		w := do(t, setupRouter(svc), http.MethodGet, "/team/status", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"team":null}`, w.Body.String())
	})
}

func TestHandler_UpdateTeam(t *testing.T) {
	svc := new(mockService)
	desc := "Smart irrigation"
	svc.On("UpdateDetails", mock.Anything, caller, &teamModel.UpdateTeamRequest{Description: &desc}).
		Return(&teamModel.Team{ID: "t1", Description: desc}, nil)

	w := do(t, setupRouter(svc), http.MethodPatch, "/team", map[string]string{"description": desc})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), desc)
}

func TestHandler_ListOpenTeams(t *testing.T) {
	svc := new(mockService)
	svc.On("ListOpen", mock.Anything).Return([]teamModel.DiscoveryTeam{
		{ID: "t1", Name: "Byte Busters", MemberCount: 2, AvailableSpots: 4},
	}, nil)

	w := do(t, setupRouter(svc), http.MethodGet, "/team-discovery/teams", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string][]teamModel.DiscoveryTeam
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp["teams"], 1)
	assert.Equal(t, 4, resp["teams"][0].AvailableSpots)
	assert.NotContains(t, w.Body.String(), "invite_code")
}
