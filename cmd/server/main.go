// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	appconfig "github.com/festy23/hackathon_teams/internal/config"
	connectionRouter "github.com/festy23/hackathon_teams/internal/connection/router"
	dashboardRouter "github.com/festy23/hackathon_teams/internal/dashboard/router"
	dbconfig "github.com/festy23/hackathon_teams/internal/database/config"
	"github.com/festy23/hackathon_teams/internal/database/database"
	"github.com/festy23/hackathon_teams/internal/database/migrate"
	"github.com/festy23/hackathon_teams/internal/health"
	joinRequestRouter "github.com/festy23/hackathon_teams/internal/joinrequest/router"
	"github.com/festy23/hackathon_teams/internal/membership"
	"github.com/festy23/hackathon_teams/internal/metrics"
	"github.com/festy23/hackathon_teams/internal/middleware"
	"github.com/festy23/hackathon_teams/internal/notify"
	participantRouter "github.com/festy23/hackathon_teams/internal/participant/router"
	"github.com/festy23/hackathon_teams/internal/ratelimit"
	"github.com/festy23/hackathon_teams/internal/schema"
	teamRepository "github.com/festy23/hackathon_teams/internal/team/repository"
	teamRouter "github.com/festy23/hackathon_teams/internal/team/router"
	"github.com/festy23/hackathon_teams/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	appconfig.LoadDotEnv()

	cfg := appconfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	dbCfg := dbconfig.LoadConfigFromEnv()
	if err := dbCfg.Validate(); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync(log)

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			ServerName:  logger.ServiceName,
		})
		if err != nil {
			return fmt.Errorf("failed to initialise sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		log.Infow("sentry enabled", "environment", cfg.Environment)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, dbCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db, dbCfg.MigrationsPath, log); err != nil {
		return err
	}

	store, err := schema.NewStore(cfg.SchemaPath, log)
	if err != nil {
		return fmt.Errorf("failed to load registration schema: %w", err)
	}
	go store.Watch(ctx, cfg.SchemaReload)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Mail.Enabled() {
		notifier = notify.NewSMTP(notify.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		}, cfg.Mail.EventName)
		log.Infow("smtp notifications enabled", "host", cfg.Mail.Host)
	} else {
		log.Warnw("SMTP_HOST not set, notifications are disabled")
	}

	// A nil limiter leaves request endpoints unthrottled.
	var limiter middleware.Limiter
	optional := map[string]health.Pinger{}
	if cfg.Redis.Enabled() {
		rl := ratelimit.New(ratelimit.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Limit:    cfg.Redis.RequestLimit,
			Window:   cfg.Redis.RequestWindow,
		})
		defer func() { _ = rl.Close() }()
		limiter = rl
		optional["ratelimit"] = rl
		log.Infow("request rate limiting enabled",
			"limit", cfg.Redis.RequestLimit,
			"window", cfg.Redis.RequestWindow)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logger(log), metrics.GinMiddleware)
	r.GET("/metrics", metrics.Handler())
	r.GET("/health", health.New(db, log, optional).Check)

	authed := r.Group("/", middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer))
	teams := teamRouter.RegisterRoutes(authed, db, log)
	directory := membership.NewDirectory(teamRepository.New(db, log), log)
	participants := participantRouter.RegisterRoutes(r, authed, db, store, directory, notifier, log)
	joinRequestRouter.RegisterRoutes(authed, db, teams, limiter, log)
	connectionRouter.RegisterRoutes(authed, db, notifier, limiter, log)
	dashboardRouter.RegisterRoutes(authed, db, participants, teams, notifier, cfg.Auth.IsAdmin, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", srv.Addr, "admins", len(cfg.Auth.AdminEmails))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
