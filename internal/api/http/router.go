package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ms1708/academy-portal/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Application *handlers.ApplicationHandler
	Onboarding  *handlers.OnboardingHandler
	Logs        *handlers.LogsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/live", cfg.Health.Live)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOTP)
	authGroup.Post("/resend-otp", cfg.Auth.ResendOTP)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Put("/change-password", cfg.Auth.ChangePassword)
	authGroup.Put("/profile", cfg.Auth.UpdateProfile)
	authGroup.Get("/session", cfg.Auth.Session)

	appGroup := app.Group("/application")
	appGroup.Get("/", cfg.Application.State)
	appGroup.Put("/", cfg.Application.Update)
	appGroup.Post("/advance", cfg.Application.Advance)
	appGroup.Post("/retreat", cfg.Application.Retreat)
	appGroup.Post("/submit", cfg.Application.Submit)

	onboardingGroup := app.Group("/onboarding")
	onboardingGroup.Get("/", cfg.Onboarding.State)
	onboardingGroup.Put("/", cfg.Onboarding.Update)
	onboardingGroup.Post("/advance", cfg.Onboarding.Advance)
	onboardingGroup.Post("/retreat", cfg.Onboarding.Retreat)
	onboardingGroup.Post("/submit", cfg.Onboarding.Submit)

	logsGroup := app.Group("/logs")
	logsGroup.Get("/dates", cfg.Logs.Dates)
	logsGroup.Get("/:date", cfg.Logs.ForDate)
	logsGroup.Get("/:date/export", cfg.Logs.Export)
	logsGroup.Delete("/:date", cfg.Logs.Clear)
}
