package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// participantEmailKey is the gin context key holding the verified email.
const participantEmailKey = "participant_email"

var errMissingToken = errors.New("missing bearer token")

// Auth verifies the HS256 bearer token and stores its email claim as the
// participant identity. Requests without a valid token are rejected with 401.
func Auth(secret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)
	key := []byte(secret)

	return func(c *gin.Context) {
		email, err := verify(parser, key, c.GetHeader("Authorization"))
		if err != nil {
			_ = c.Error(err)
			abort(c, http.StatusUnauthorized, "UNAUTHENTICATED", "valid bearer token required")
			return
		}
		c.Set(participantEmailKey, email)
		c.Next()
	}
}

func verify(parser *jwt.Parser, key []byte, header string) (string, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", errMissingToken
	}

	claims := jwt.MapClaims{}
	if _, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}); err != nil {
		return "", err
	}

	email, _ := claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("token has no email claim")
	}
	return email, nil
}

// ParticipantEmail returns the verified email set by Auth, or "".
func ParticipantEmail(c *gin.Context) string {
	return c.GetString(participantEmailKey)
}

// RequireAdmin rejects authenticated callers for whom isAdmin is false.
func RequireAdmin(isAdmin func(email string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(ParticipantEmail(c)) {
			abort(c, http.StatusForbidden, "FORBIDDEN", "administrator access required")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
