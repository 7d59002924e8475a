package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gradtrack/gradtrack-api/internal/config"
	"github.com/gradtrack/gradtrack-api/internal/handler"
	"github.com/gradtrack/gradtrack-api/internal/middleware"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	ProfileHandler      *handler.ProfileHandler
	FormHandler         *handler.FormHandler
	AssignmentHandler   *handler.AssignmentHandler
	NotificationHandler *handler.NotificationHandler
	DashboardHandler    *handler.DashboardHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
	}

	if deps.ProfileHandler != nil {
		profiles := api.Group("/profiles", jwtMiddleware)
		deps.ProfileHandler.Register(profiles)

		users := api.Group("/users", jwtMiddleware)
		deps.ProfileHandler.RegisterUsers(users)
	}

	if deps.FormHandler != nil {
		forms := api.Group("/forms", jwtMiddleware)
		forms.Use(middleware.RateLimit("forms", cfg.SubmitRateLimit, time.Minute))
		deps.FormHandler.Register(forms)
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments", jwtMiddleware)
		deps.AssignmentHandler.Register(assignments)
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}
}
