// Package logger builds the service's structured zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appConfig "github.com/festy23/hackathon_teams/internal/config"
)

// ServiceName is attached to every entry as the "service" field.
const ServiceName = "hackathon-teams"

// FromEnv builds a logger from the LOG_* environment variables.
func FromEnv() (*zap.SugaredLogger, error) {
	return New(appConfig.LoadLoggerConfigFromEnv())
}

// New builds a logger for cfg. An unparsable level falls back to info and an
// output other than stderr falls back to stdout.
func New(cfg appConfig.LoggerConfig) (*zap.SugaredLogger, error) {
	logger, err := buildConfig(cfg).Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func buildConfig(cfg appConfig.LoggerConfig) zap.Config {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapConfig.Encoding = "json"
	}

	output := "stdout"
	if cfg.Output == "stderr" {
		output = "stderr"
	}
	zapConfig.OutputPaths = []string{output}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.InitialFields = map[string]interface{}{"service": ServiceName}

	return zapConfig
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync(logger *zap.SugaredLogger) {
	_ = logger.Sync()
}
