package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/store"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, time.Duration(cfg.LogRetentionDays)*24*time.Hour, cleanupDone)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Google signing keys
	jwks, err := services.NewGoogleKeySet(ctx, cfg.GoogleJWKSURL, cfg.JWKSRefreshInterval)
	if err != nil {
		slog.Error("google jwks unavailable", "url", cfg.GoogleJWKSURL, "error", err)
		os.Exit(1)
	}
	verifier := services.NewTokenVerifier(services.VerifierConfig{
		Audience: cfg.GoogleClientID,
		Issuers:  cfg.GoogleIssuers,
		Leeway:   30 * time.Second,
	}, jwks.Keyfunc, collector)

	// Services
	st := store.New(database.DB)
	identityService := services.NewIdentityService(st, verifier, collector)
	accountService := services.NewAccountService(st, collector)
	providerService := services.NewProviderService(st, collector)
	calendarService := services.NewCalendarService(st, collector)

	// Handlers
	identityHandler := handlers.NewIdentityHandler(identityService, accountService, cfg.GoogleClientID)
	providerHandler := handlers.NewProviderHandler(providerService, calendarService)
	healthHandler := handlers.NewHealthHandler(database.Ping)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, identityHandler, providerHandler, healthHandler,
		middleware.IdentityRequired(verifier), collector.Handler())

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	jwks.EndBackground()
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
