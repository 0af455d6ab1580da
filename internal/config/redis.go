package config

import (
	"fmt"
	"time"
)

// RedisConfig holds the rate limiter backend settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// RequestLimit is the number of join/connect requests allowed per window and participant.
	RequestLimit int
	// RequestWindow is the fixed window length.
	RequestWindow time.Duration
}

// LoadRedisConfigFromEnv loads redis configuration from environment variables.
func LoadRedisConfigFromEnv() RedisConfig {
	return RedisConfig{
		Addr:          GetEnv("REDIS_ADDR", ""),
		Password:      GetEnv("REDIS_PASSWORD", ""),
		DB:            GetEnvInt("REDIS_DB", 0),
		RequestLimit:  GetEnvInt("REQUEST_RATE_LIMIT", 20),
		RequestWindow: GetEnvDuration("REQUEST_RATE_WINDOW", time.Minute),
	}
}

// Enabled reports whether rate limiting is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Validate validates redis configuration.
func (c RedisConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.RequestLimit <= 0 {
		return fmt.Errorf("REQUEST_RATE_LIMIT must be greater than 0")
	}
	if c.RequestWindow <= 0 {
		return fmt.Errorf("REQUEST_RATE_WINDOW must be greater than 0")
	}
	return nil
}
