package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func setupAuthRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(testSecret, issuer))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, ParticipantEmail(c))
	})
	return r
}

func TestAuth(t *testing.T) {
	valid := jwt.MapClaims{"email": "asha@example.com", "exp": time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name       string
		issuer     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid token",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid),
			wantStatus: http.StatusOK,
			wantBody:   "asha@example.com",
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "UNAUTHENTICATED",
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("another-secret-value"), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected algorithm",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(testSecret), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
				"email": "asha@example.com", "exp": time.Now().Add(-time.Minute).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no email claim",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "x"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "issuer mismatch",
			issuer: "hackathon-web",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
				"email": "asha@example.com", "iss": "someone-else",
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "issuer match",
			issuer: "hackathon-web",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
				"email": " asha@example.com ", "iss": "hackathon-web",
			}),
			wantStatus: http.StatusOK,
			wantBody:   "asha@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter(tt.issuer)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.wantBody), w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(participantEmailKey, c.GetHeader("X-Email"))
	})
	r.Use(RequireAdmin(func(email string) bool { return email == "admin@example.com" }))
	r.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for email, want := range map[string]int{
		"admin@example.com": http.StatusNoContent,
		"asha@example.com":  http.StatusForbidden,
		"":                  http.StatusForbidden,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("X-Email", email)
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, email)
	}
}
