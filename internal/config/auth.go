package config

import (
	"fmt"
	"strings"
)

// AuthConfig holds identity verification settings.
// Tokens are issued by the OAuth front-end; this service only verifies them.
type AuthConfig struct {
	// JWTSecret is the HMAC key used to verify bearer tokens.
	JWTSecret string
	// Issuer, when set, must match the token's iss claim.
	Issuer string
	// AdminEmails lists participants allowed to use the dashboard.
	AdminEmails []string
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:   GetEnv("AUTH_JWT_SECRET", ""),
		Issuer:      GetEnv("AUTH_JWT_ISSUER", ""),
		AdminEmails: GetEnvList("ADMIN_EMAILS"),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least 16 characters")
	}
	return nil
}

// IsAdmin reports whether email is in the admin allowlist (case-insensitive).
func (c AuthConfig) IsAdmin(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}
