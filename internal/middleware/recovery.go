package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sentryFlushTimeout bounds how long a panicking request waits for the report to go out.
const sentryFlushTimeout = 2 * time.Second

// Recovery turns a panic into a 500 envelope, logs the stack and reports the
// panic to Sentry when a client is bound.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			participant := ParticipantEmail(c)

			logger.Errorw("panic recovered",
				"error", recovered,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"participant", participant,
				"stack", string(debug.Stack()),
			)
			report(c, participant, recovered)
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}()

		c.Next()
	}
}

func report(c *gin.Context, participant string, recovered interface{}) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub = hub.Clone()
	hub.Scope().SetRequest(c.Request)
	hub.Scope().SetTag("path", c.FullPath())
	if participant != "" {
		hub.Scope().SetUser(sentry.User{Email: participant})
	}
	hub.RecoverWithContext(c.Request.Context(), recovered)
	hub.Flush(sentryFlushTimeout)
}
