package routes

import (
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/config"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/handlers"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	personnelHandler *handlers.PersonnelHandler,
	hospitalHandler *handlers.HospitalHandler,
	healthHandler *handlers.HealthHandler,
	plugins []clinical.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public with a stricter limiter: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/hospital-admin-login", authHandler.HospitalAdminLogin)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/verify-email", authHandler.VerifyEmail)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Post("/auth/add-hospital-personnel",
		middleware.JWTProtected(cfg), middleware.RequireIdentity(db),
		personnelHandler.AddPersonnel)
	api.Get("/auth/hospital-personnel",
		middleware.JWTProtected(cfg), middleware.RequireIdentity(db),
		personnelHandler.ListPersonnel)

	// Hospital registration and directory (public)
	api.Post("/hospitals", hospitalHandler.Register)
	api.Get("/hospitals", hospitalHandler.List)
	api.Get("/hospitals/:id", hospitalHandler.Get)

	// Platform-administrator hospital lifecycle
	admin := api.Group("/hospitals",
		middleware.JWTProtected(cfg),
		middleware.RequireIdentity(db),
		middleware.AdminRequired(db, cfg))
	admin.Patch("/:id/status", hospitalHandler.UpdateStatus)
	admin.Patch("/:id/documents", hospitalHandler.UpdateDocuments)

	// Clinical record modules: JWT + loaded identity, then each plugin's
	// create path runs the shared write gate.
	protected := api.Group("/p",
		middleware.JWTProtected(cfg),
		middleware.RequireIdentity(db))
	for _, p := range plugins {
		p.RegisterRoutes(protected, db, cfg)
	}
}
