package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/event-service/internal/api/http/handlers"
	"github.com/spec-kit/event-service/internal/auth"
	"github.com/spec-kit/event-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Version   string
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Events    *handlers.EventsHandler
	RSVPs     *handlers.RSVPHandler
	Favorites *handlers.FavoritesHandler
	WS        *handlers.WSHandler
	Guard     *auth.Guard
	Metrics   *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", handlers.Index(cfg.Version))
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	authenticated := cfg.Guard.Authenticate

	authGroup := app.Group("/api/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify", cfg.Auth.Verify)
	authGroup.Get("/profile", authenticated, cfg.Auth.Profile)

	events := app.Group("/api/events")
	events.Get("/", cfg.Guard.Optional, cfg.Events.List)
	events.Get("/all", authenticated, auth.RequireRole(auth.AdminOnly), cfg.Events.ListAll)
	// Static segments are registered before /:id so they are not captured as ids.
	events.Get("/user/events", authenticated, cfg.Events.ListMine)
	events.Get("/user/rsvps", authenticated, cfg.RSVPs.ListMine)
	events.Get("/user/favorites", authenticated, cfg.Favorites.ListMine)
	events.Post("/", authenticated, auth.RequireRole(auth.AnyAuthenticated), cfg.Events.Create)
	events.Get("/:id", cfg.Events.Get)
	events.Put("/:id", authenticated, auth.RequireRole(auth.OrganizerOrAdmin), cfg.Events.Update)
	events.Delete("/:id", authenticated, auth.RequireRole(auth.OrganizerOrAdmin), cfg.Events.Delete)
	events.Post("/:id/approve", authenticated, auth.RequireRole(auth.AdminOnly), cfg.Events.Approve)
	events.Post("/:id/rsvp", authenticated, auth.RequireRole(auth.AnyAuthenticated), cfg.RSVPs.Respond)
	events.Get("/:id/rsvps", cfg.RSVPs.ListForEvent)
	events.Post("/:id/favorite", authenticated, auth.RequireRole(auth.AnyAuthenticated), cfg.Favorites.Add)
	events.Delete("/:id/favorite", authenticated, auth.RequireRole(auth.AnyAuthenticated), cfg.Favorites.Remove)

	app.Get("/ws", cfg.WS.Upgrade, cfg.WS.Handler())
}
