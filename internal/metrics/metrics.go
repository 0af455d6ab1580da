// Package metrics exposes Prometheus collectors for HTTP traffic and team operations.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/festy23/hackathon_teams/internal/apperr"
)

var (
	registry = prometheus.DefaultRegisterer

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path, method and status code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path, method and status code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)

	teamOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "team_operations_total",
			Help: "Team and join-request operations by operation, result and error code.",
		},
		[]string{"op", "result", "code"},
	)

	teamOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "team_operation_duration_seconds",
			Help:    "Duration of team operations by operation and result.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "result"},
	)
)

func init() {
	for _, c := range []prometheus.Collector{httpRequests, httpDuration, teamOps, teamOpDuration} {
		_ = registry.Register(c)
	}
}

// GinMiddleware records request counts and latency. Unmatched routes use the raw path.
func GinMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	if path == "/metrics" {
		return
	}

	code := strconv.Itoa(c.Writer.Status())
	httpRequests.WithLabelValues(path, c.Request.Method, code).Inc()
	httpDuration.WithLabelValues(path, c.Request.Method, code).Observe(time.Since(start).Seconds())
}

// Handler serves the default Prometheus registry.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// ObserveTeamOp records the outcome of a team operation started at start.
// The code label is the application error code, never the raw error text.
func ObserveTeamOp(op string, start time.Time, err error) {
	result := "success"
	code := ""
	if err != nil {
		result = "error"
		code = apperr.CodeOf(err)
	}
	teamOps.WithLabelValues(op, result, code).Inc()
	teamOpDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}
