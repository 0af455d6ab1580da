// Package config provides database configuration management.
package config

import (
	"fmt"
	"strings"

	appconfig "github.com/festy23/hackathon_teams/internal/config"
	"github.com/festy23/hackathon_teams/internal/database/pool"
	"github.com/festy23/hackathon_teams/pkg/retry"
)

// Config holds database connection configuration.
type Config struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string

	// Pool is applied to the underlying sql.DB after connecting.
	Pool pool.Config
	// Retry controls connection attempts at startup.
	Retry retry.Config
	// MigrationsPath is the golang-migrate file source directory.
	MigrationsPath string
}

// BuildDSN constructs PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Host:           appconfig.GetEnv("DB_HOST", "localhost"),
		User:           appconfig.GetEnv("DB_USER", "postgres"),
		Password:       appconfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:         appconfig.GetEnv("DB_NAME", "hackathon"),
		Port:           appconfig.GetEnv("DB_PORT", "5432"),
		SSLMode:        appconfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone:       appconfig.GetEnv("DB_TIMEZONE", "UTC"),
		Pool:           LoadPoolConfigFromEnv(),
		Retry:          LoadRetryConfigFromEnv(),
		MigrationsPath: appconfig.GetEnv("MIGRATIONS_PATH", "migrations"),
	}
}

// Validate checks that the connection settings are usable.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if err := c.Pool.Validate(); err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("DB_RETRY_MAX_ATTEMPTS must be greater than 0")
	}
	return nil
}

// SanitizeError removes sensitive information (password) from error messages.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	safeDSN := fmt.Sprintf("host=%s user=%s password=*** dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
	errMsg = strings.ReplaceAll(errMsg, BuildDSN(cfg), safeDSN)
	if cfg.Password != "" {
		errMsg = strings.ReplaceAll(errMsg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", errMsg)
}

// LoadPoolConfigFromEnv loads connection pool limits from environment variables.
func LoadPoolConfigFromEnv() pool.Config {
	cfg := pool.DefaultPoolConfig()
	cfg.MaxOpenConns = appconfig.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = appconfig.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = appconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = appconfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}

// LoadRetryConfigFromEnv loads retry configuration from environment variables.
func LoadRetryConfigFromEnv() retry.Config {
	cfg := retry.PostgresConfig()
	cfg.MaxAttempts = appconfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appconfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appconfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	return cfg
}
