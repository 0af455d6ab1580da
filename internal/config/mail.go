package config

import "fmt"

// MailConfig holds SMTP settings for outbound notifications.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// EventName appears in subjects and bodies.
	EventName string
}

// LoadMailConfigFromEnv loads SMTP configuration from environment variables.
func LoadMailConfigFromEnv() MailConfig {
	return MailConfig{
		Host:     GetEnv("SMTP_HOST", ""),
		Port:     GetEnvInt("SMTP_PORT", 587),
		Username: GetEnv("SMTP_USERNAME", ""),
		Password: GetEnv("SMTP_PASSWORD", ""),
		From:     GetEnv("SMTP_FROM", "Hackathon Organizers <no-reply@hackathon.local>"),

		EventName: GetEnv("EVENT_NAME", "Hackathon"),
	}
}

// Enabled reports whether SMTP delivery is configured.
func (c MailConfig) Enabled() bool {
	return c.Host != ""
}

// Validate validates mail configuration. An empty host disables delivery.
func (c MailConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP_PORT: %d", c.Port)
	}
	if c.From == "" {
		return fmt.Errorf("SMTP_FROM is required when SMTP_HOST is set")
	}
	return nil
}
