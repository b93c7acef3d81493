package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-report-service/internal/api/http/handlers"
	"github.com/spec-kit/civic-report-service/internal/auth"
	"github.com/spec-kit/civic-report-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	reports := api.Group("/reports", cfg.AuthMiddleware.Handle)
	// /stats before /:id so it is not swallowed by the param route.
	reports.Get("/stats", auth.RequireRole(domain.RoleAdmin), cfg.Reports.Stats)
	reports.Post("/", cfg.Reports.Create)
	reports.Get("/", cfg.Reports.List)
	reports.Get("/my-reports", cfg.Reports.ListMine)
	reports.Get("/:id", cfg.Reports.Get)
	reports.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Reports.Update)
	reports.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Reports.Delete)
}
