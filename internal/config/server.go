package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	// Host is empty to listen on all interfaces.
	Host string
	// Port accepts both ":8080" and "8080".
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadServerConfigFromEnv loads server configuration from environment variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:            GetEnv("SERVER_HOST", ""),
		Port:            GetEnv("SERVER_PORT", ":8080"),
		ReadTimeout:     GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    GetEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func (c ServerConfig) port() string {
	return strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

// GetAddress returns the listen address for http.Server.
func (c ServerConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, c.port())
}

// Validate validates server configuration.
func (c ServerConfig) Validate() error {
	if n, err := strconv.Atoi(c.port()); err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %q", c.Port)
	}
	if err := positive("ReadTimeout", c.ReadTimeout); err != nil {
		return err
	}
	if err := positive("WriteTimeout", c.WriteTimeout); err != nil {
		return err
	}
	if err := positive("IdleTimeout", c.IdleTimeout); err != nil {
		return err
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("ShutdownTimeout must not be negative")
	}
	return nil
}
