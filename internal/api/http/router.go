package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Directory      *handlers.DirectoryHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/send-otp", cfg.Auth.SendOTP)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOTP)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Post("/tickets", cfg.Tickets.Create)
	api.Get("/tickets", cfg.Tickets.List)
	api.Get("/tickets/:number", cfg.Tickets.Get)
	api.Patch("/tickets/:number", cfg.Tickets.Update)
	api.Get("/tickets/:number/history", cfg.Notifications.TicketHistory)

	api.Get("/notifications", cfg.Notifications.List)
	api.Post("/notifications/mark-read", cfg.Notifications.MarkRead)

	directory := api.Group("/directory")
	directory.Get("/departments", cfg.Directory.Departments)
	directory.Get("/subdepartments", cfg.Directory.SubDepartments)
	directory.Get("/subtasks", cfg.Directory.SubTasks)
	directory.Get("/tasklabels", cfg.Directory.TaskLabels)
	directory.Get("/employees", cfg.Directory.Employees)
	directory.Get("/user", cfg.Directory.Profile)
	directory.Get("/is-hod", cfg.Directory.IsHOD)
	directory.Get("/hod", cfg.Directory.HODForDept)
	directory.Get("/team-structure", cfg.Directory.TeamStructure)
}
