// Package database provides database connection management for PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/hackathon_teams/internal/database/config"
	"github.com/festy23/hackathon_teams/internal/database/pool"
	"github.com/festy23/hackathon_teams/pkg/retry"
)

// connectTimeout bounds the whole retry loop at startup.
const connectTimeout = 2 * time.Minute

// New opens a PostgreSQL connection, retrying transient failures, and applies the pool settings.
func New(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	dsn := config.BuildDSN(cfg)
	gormCfg := &gorm.Config{Logger: NewGormLogger(logger)}

	attempt := 0
	db, err := retry.DoWithResult(ctx, cfg.Retry, func() (*gorm.DB, error) {
		attempt++
		conn, openErr := gorm.Open(postgres.Open(dsn), gormCfg)
		if openErr != nil {
			logger.Warnw("database connection attempt failed",
				"attempt", attempt,
				"max_attempts", cfg.Retry.MaxAttempts,
				"error", config.SanitizeError(openErr, cfg))
		}
		return conn, openErr
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, cfg.Pool); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("database connected",
		"host", cfg.Host,
		"database", cfg.DBName,
		"attempts", attempt,
		"max_open_conns", cfg.Pool.MaxOpenConns)

	return db, nil
}

// NewGormLogger routes GORM warnings (slow queries, failed statements) through zap.
// Record-not-found results are expected lookups and are not logged.
func NewGormLogger(logger *zap.SugaredLogger) gormlogger.Interface {
	return gormlogger.New(zapWriter{logger: logger.Named("gorm")}, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type zapWriter struct {
	logger *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.logger.Warnf(format, args...)
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
