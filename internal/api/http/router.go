package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/triage-dashboard/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Dashboard *handlers.DashboardHandler
	Tickets   *handlers.TicketsHandler
	Realtime  http.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	dashboard := app.Group("/dashboard")
	dashboard.Get("/tickets", cfg.Dashboard.ListTickets)
	dashboard.Get("/stats", cfg.Dashboard.Stats)
	dashboard.Get("/agents", cfg.Dashboard.Agents)
	dashboard.Put("/view", cfg.Dashboard.SetView)
	dashboard.Post("/view/clear", cfg.Dashboard.ClearView)

	dashboard.Post("/tickets", cfg.Tickets.CreateTicket)
	dashboard.Post("/tickets/simulate", cfg.Tickets.SimulateTicket)
	dashboard.Post("/tickets/:id/toggle", cfg.Tickets.ToggleStatus)
	dashboard.Post("/tickets/:id/assign", cfg.Tickets.AssignTicket)
	dashboard.Put("/tickets/:id", cfg.Tickets.UpdateTicket)

	if cfg.Realtime != nil {
		app.Use("/realtime", adaptor.HTTPHandler(cfg.Realtime))
	}
}
