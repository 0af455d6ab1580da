package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter decides whether key may perform one more action in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles the authenticated participant within scope. Limiter
// errors are logged and the request is let through.
func RateLimit(limiter Limiter, scope string, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + ParticipantEmail(c)
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, try again later")
			return
		}
		c.Next()
	}
}
