package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical/imaging"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical/labresults"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical/visits"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/config"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/database"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/handlers"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/logging"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/middleware"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/notify"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/routes"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/services"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate identity and hospital models
	if err := database.MigrateCore(); err != nil {
		slog.Error("core migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Document storage (local disk default)
	docStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		slog.Error("document store init failed", "error", err)
		os.Exit(1)
	}

	// Services
	identityService := services.NewIdentityService(database.DB, cfg)
	authService := services.NewAuthService(database.DB, cfg, notify.LogNotifier{})
	hospitalService := services.NewHospitalService(database.DB)
	personnelService := services.NewPersonnelService(database.DB, identityService)

	// Clinical record modules
	plugins := []clinical.Plugin{
		visits.New(),
		imaging.New(),
		labresults.New(),
	}

	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "kind", string(p.Kind()), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "kind", string(p.Kind()), "models", len(models))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, identityService)
	personnelHandler := handlers.NewPersonnelHandler(personnelService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService, docStore)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, personnelHandler, hospitalHandler, healthHandler, plugins)

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

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

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

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
