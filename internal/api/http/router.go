package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Contacts       *handlers.ContactHandler
	AdminContacts  *handlers.AdminContactsHandler
	Replies        *handlers.RepliesHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/contact", cfg.Contacts.Submit)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))

	contacts := admin.Group("/contacts")
	contacts.Get("/", cfg.AdminContacts.List)
	contacts.Get("/stats", cfg.AdminContacts.Stats)
	contacts.Get("/:id", cfg.AdminContacts.Get)
	contacts.Post("/:id/read", cfg.AdminContacts.MarkRead)
	contacts.Post("/:id/replied", cfg.AdminContacts.MarkReplied)
	contacts.Delete("/:id", cfg.AdminContacts.Delete)
	contacts.Get("/:id/replies", cfg.Replies.ListForContact)
	contacts.Post("/:id/replies", cfg.Replies.Create)

	replies := admin.Group("/replies")
	replies.Get("/:id", cfg.Replies.Get)
	replies.Put("/:id", cfg.Replies.Update)
	replies.Post("/:id/send", cfg.Replies.Send)
	replies.Delete("/:id", cfg.Replies.Delete)

	admin.Get("/metrics", cfg.Metrics.Snapshot)
}
