package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/festy23/hackathon_teams/internal/middleware/authtest"
)

func setupLoggedRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(zap.New(core).Sugar()))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/teams/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	authed := r.Group("/", Auth(authtest.Secret, ""))
	authed.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r, logs
}

func TestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		path  string
		level zapcore.Level
	}{
		{"/teams/t1", zapcore.InfoLevel},
		{"/health", zapcore.DebugLevel},
		{"/missing", zapcore.WarnLevel},
		{"/me", zapcore.WarnLevel},
		{"/fail", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, logs := setupLoggedRouter(t)
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	r, logs := setupLoggedRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teams/t1?full=1", nil))
	req := authtest.Authorize(t, httptest.NewRequest(http.MethodGet, "/me", nil), "asha@example.com")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	require.Len(t, entries, 2)

	teams := entries[0].ContextMap()
	assert.Equal(t, "/teams/:id", teams["route"])
	assert.Equal(t, "full=1", teams["query"])
	assert.NotContains(t, teams, "participant")

	me := entries[1].ContextMap()
	assert.Equal(t, "asha@example.com", me["participant"])
	assert.EqualValues(t, http.StatusNoContent, me["status"])
	assert.NotContains(t, me, "route")
}
