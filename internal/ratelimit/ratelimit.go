// Package ratelimit implements a redis-backed fixed-window request limiter.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "ratelimit:"

// Limiter allows at most limit actions per key in each window.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

// Options holds the redis connection and limit settings.
type Options struct {
	Addr     string
	Password string
	DB       int
	Limit    int
	Window   time.Duration
}

// New connects a limiter to redis. The connection is established lazily.
func New(opts Options) *Limiter {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewWithClient(client, opts.Limit, opts.Window)
}

// NewWithClient creates a limiter on an existing client.
func NewWithClient(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: int64(limit), window: window, now: time.Now}
}

// windowKey names the counter for key in the window containing t.
func (l *Limiter) windowKey(key string, t time.Time) string {
	slot := t.UnixNano() / int64(l.window)
	return keyPrefix + key + ":" + strconv.FormatInt(slot, 10)
}

// Allow counts one action for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.windowKey(key, l.now())

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= l.limit, nil
}

// Ping checks the redis connection.
func (l *Limiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the redis connection.
func (l *Limiter) Close() error {
	return l.client.Close()
}
