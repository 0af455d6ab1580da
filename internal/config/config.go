// Package config provides application configuration loaded from the environment.
package config

import (
	"fmt"
	"time"
)

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// Auth holds bearer-token verification and admin settings.
	Auth AuthConfig
	// Mail holds SMTP settings.
	Mail MailConfig
	// Redis holds rate limiter settings.
	Redis RedisConfig
	// SchemaPath is the registration schema file; empty uses the built-in schema.
	SchemaPath string
	// SchemaReload is the polling interval for schema file changes.
	SchemaReload time.Duration
	// SentryDSN enables panic reporting when set.
	SentryDSN string
	// Environment is the deployment environment name.
	Environment string
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:       LoadServerConfigFromEnv(),
		Logger:       LoadLoggerConfigFromEnv(),
		Auth:         LoadAuthConfigFromEnv(),
		Mail:         LoadMailConfigFromEnv(),
		Redis:        LoadRedisConfigFromEnv(),
		SchemaPath:   GetEnv("REGISTRATION_SCHEMA_PATH", ""),
		SchemaReload: GetEnvDuration("REGISTRATION_SCHEMA_RELOAD", 30*time.Second),
		SentryDSN:    GetEnv("SENTRY_DSN", ""),
		Environment:  GetEnv("ENVIRONMENT", "development"),
		GinMode:      GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}
	if err := c.Mail.Validate(); err != nil {
		return fmt.Errorf("mail config validation failed: %w", err)
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis config validation failed: %w", err)
	}
	if c.SchemaPath != "" && c.SchemaReload < 0 {
		return fmt.Errorf("REGISTRATION_SCHEMA_RELOAD must not be negative")
	}

	return oneOf("GIN_MODE", c.GinMode, "debug", "release", "test")
}
