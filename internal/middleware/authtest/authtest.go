// Package authtest signs bearer tokens for handler and router tests.
package authtest

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// Secret is the signing key tests configure middleware.Auth with.
const Secret = "test-secret-0123456789"

// Token returns an HS256 token carrying email, valid for an hour.
func Token(t testing.TB, email string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(Secret))
	require.NoError(t, err)
	return token
}

// Authorize sets the Authorization header for email on req.
func Authorize(t testing.TB, req *http.Request, email string) *http.Request {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+Token(t, email))
	return req
}
