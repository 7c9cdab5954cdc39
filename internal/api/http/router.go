package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/staffdesk/staff-service/internal/api/http/handlers"
	"github.com/staffdesk/staff-service/internal/auth"
	"github.com/staffdesk/staff-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware fiber.Handler
}

// Route describes one protected endpoint. An empty Roles list admits any authenticated staff.
type Route struct {
	Method  string
	Path    string
	Roles   []domain.StaffRole
	Handler fiber.Handler
}

// ProtectedRoutes is the table of endpoints that require a bearer token.
func ProtectedRoutes(cfg RouteConfig) []Route {
	admin := []domain.StaffRole{domain.StaffRoleAdmin}
	return []Route{
		{Method: fiber.MethodPost, Path: "/auth/logout", Handler: cfg.Auth.Logout},
		{Method: fiber.MethodGet, Path: "/auth/me", Handler: cfg.Auth.Me},

		{Method: fiber.MethodGet, Path: "/staff", Roles: admin, Handler: cfg.Staff.List},
		{Method: fiber.MethodPost, Path: "/staff", Roles: admin, Handler: cfg.Staff.Create},
		{Method: fiber.MethodGet, Path: "/staff/:id", Roles: admin, Handler: cfg.Staff.Get},
		{Method: fiber.MethodPatch, Path: "/staff/:id", Roles: admin, Handler: cfg.Staff.Update},
		{Method: fiber.MethodDelete, Path: "/staff/:id", Roles: admin, Handler: cfg.Staff.Delete},

		{Method: fiber.MethodGet, Path: "/metrics", Roles: admin, Handler: cfg.Health.Metrics},
	}
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Post("/auth/login", cfg.Auth.Login)

	for _, r := range ProtectedRoutes(cfg) {
		app.Add(r.Method, r.Path, cfg.AuthMiddleware, auth.RequireRole(r.Roles...), r.Handler)
	}
}
