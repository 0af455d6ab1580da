package config

import "strings"

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
	logOutputs = []string{"stdout", "stderr"}
)

// LoggerConfig selects the zap level, encoder and output stream.
type LoggerConfig struct {
	Level  string
	Format string
	// Output is stdout or stderr; the service never writes log files.
	Output string
}

// LoadLoggerConfigFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT.
// Values are lower-cased so "INFO" and "info" are equivalent.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:  strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(GetEnv("LOG_FORMAT", "json")),
		Output: strings.ToLower(GetEnv("LOG_OUTPUT", "stdout")),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if err := oneOf("log level", c.Level, logLevels...); err != nil {
		return err
	}
	if err := oneOf("log format", c.Format, logFormats...); err != nil {
		return err
	}
	return oneOf("log output", c.Output, logOutputs...)
}

// IsProduction reports whether the production zap preset applies:
// JSON lines without debug noise.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}
