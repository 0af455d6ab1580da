// Package retry runs operations again when they fail with errors the caller
// considers transient: database dials at startup and invite-code collisions.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoAttempts is returned when a Config allows no attempts at all.
var ErrNoAttempts = errors.New("retry: MaxAttempts must be greater than 0")

// Config describes how many times to try and how long to wait in between.
type Config struct {
	// MaxAttempts counts the first call too.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt. Zero means no wait.
	InitialDelay time.Duration
	// MaxDelay caps the grown delay.
	MaxDelay time.Duration
	// Multiplier grows the delay after every failed attempt.
	Multiplier float64
	// ShouldRetry decides whether an error is worth another attempt.
	// A nil predicate retries every error.
	ShouldRetry func(error) bool
}

// DefaultConfig retries every error five times with exponential backoff.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
	}
}

// PostgresConfig is DefaultConfig restricted to errors reported by Transient.
func PostgresConfig() Config {
	cfg := DefaultConfig()
	cfg.ShouldRetry = Transient
	return cfg
}

// Immediate retries without waiting while shouldRetry reports true.
func Immediate(maxAttempts int, shouldRetry func(error) bool) Config {
	return Config{
		MaxAttempts: maxAttempts,
		Multiplier:  1,
		ShouldRetry: shouldRetry,
	}
}

// Do is DoWithResult for operations without a result.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult calls fn until it succeeds, returns a non-retryable error,
// runs out of attempts or ctx is done. The last error from fn is returned
// as is so callers can match it with errors.Is.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		return zero, ErrNoAttempts
	}

	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}

		var result T
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !cfg.retryable(err) || attempt == cfg.MaxAttempts-1 {
			return zero, err
		}

		wait := addJitter(calculateDelay(attempt, cfg))
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, err
}

func (c Config) retryable(err error) bool {
	if err == nil {
		return false
	}
	if c.ShouldRetry == nil {
		return true
	}
	return c.ShouldRetry(err)
}

// calculateDelay returns InitialDelay * Multiplier^attempt, capped at MaxDelay.
func calculateDelay(attempt int, cfg Config) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if cfg.MaxDelay > 0 && delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	return time.Duration(delay)
}

// addJitter spreads delay by up to ±10%.
func addJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	//nolint:gosec // jitter needs no cryptographic randomness
	spread := float64(delay) * 0.1 * (rand.Float64()*2 - 1)
	return delay + time.Duration(spread)
}

// SQLSTATE codes worth retrying: the server is still starting, is out of
// connection slots or dropped the link.
var transientCodes = map[string]bool{
	"57P03": true, // cannot_connect_now
	"53300": true, // too_many_connections
	"53400": true, // configuration_limit_exceeded
	"08000": true,
	"08001": true,
	"08003": true,
	"08004": true,
	"08006": true,
}

// Messages drivers produce before a PgError or net.Error is available.
var transientMessages = []string{
	"connection refused",
	"connection reset",
	"server closed the connection",
	"too many connections",
	"database system is starting up",
	"network is unreachable",
	"no such host",
	"i/o timeout",
}

// Transient reports whether err looks like PostgreSQL being unreachable or
// not ready yet. Authentication failures and SQL errors are permanent.
func Transient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientCodes[pgErr.Code]
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range transientMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
