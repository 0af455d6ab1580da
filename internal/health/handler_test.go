package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hackathon_teams/internal/database/dbtest"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handler.Check)
	return router
}

func check(t *testing.T, db *gorm.DB, optional map[string]Pinger) (int, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	setupRouter(New(db, zap.NewNop().Sugar(), optional)).ServeHTTP(w, req)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandler_Check(t *testing.T) {
	t.Run("database is healthy", func(t *testing.T) {
		code, resp := check(t, dbtest.Open(t), nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, map[string]string{"database": "ok"}, resp.Checks)
	})

	t.Run("database is unavailable", func(t *testing.T) {
		db := dbtest.Open(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		code, resp := check(t, db, map[string]Pinger{
			"ratelimit": pingFunc(func(context.Context) error { return nil }),
		})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "unavailable", resp.Checks["database"])
	})

	t.Run("optional dependency down degrades", func(t *testing.T) {
		code, resp := check(t, dbtest.Open(t), map[string]Pinger{
			"ratelimit": pingFunc(func(context.Context) error { return errors.New("dial tcp: connection refused") }),
		})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unavailable", resp.Checks["ratelimit"])
		assert.Equal(t, "ok", resp.Checks["database"])
	})

	t.Run("optional dependency healthy", func(t *testing.T) {
		code, resp := check(t, dbtest.Open(t), map[string]Pinger{
			"ratelimit": pingFunc(func(context.Context) error { return nil }),
		})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Checks["ratelimit"])
	})

	t.Run("probes share the check deadline", func(t *testing.T) {
		var deadline time.Time
		check(t, dbtest.Open(t), map[string]Pinger{
			"ratelimit": pingFunc(func(ctx context.Context) error {
				deadline, _ = ctx.Deadline()
				return nil
			}),
		})

		assert.WithinDuration(t, time.Now().Add(checkTimeout), deadline, time.Second)
	})

	t.Run("concurrent checks", func(t *testing.T) {
		router := setupRouter(New(dbtest.Open(t), zap.NewNop().Sugar(), nil))

		results := make(chan int, 10)
		for i := 0; i < 10; i++ {
			go func() {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
				results <- w.Code
			}()
		}
		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, <-results)
		}
	})
}
