package routes

import (
	"facility-registry/internal/delivery/http/handler"
	"facility-registry/internal/delivery/http/middleware"
	"facility-registry/internal/pkg/metrics"
	"facility-registry/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Health       *handler.HealthHandler
	Autocomplete *handler.AutocompleteHandler
	Master       *handler.MasterHandler
	Suggestion   *handler.SuggestionHandler
	Auth         *handler.AuthHandler
	WS           *ws.Handler

	AdminAuth *middleware.AdminAuth
	Metrics   *metrics.Metrics
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerMetrics(app *fiber.App) {
	if r.Metrics == nil {
		return
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.Metrics.Registry(), promhttp.HandlerOpts{})))
}

func (r *Registry) registerAPI(app *fiber.App) {
	// Mounted before the /api middleware so only the read-only CORS policy applies.
	if r.Autocomplete != nil {
		r.Autocomplete.RegisterRoutes(app.Group("/api"), middleware.ReadOnlyCORS())
	}

	api := app.Group("/api", middleware.CORS())

	var admin fiber.Router
	if r.AdminAuth != nil {
		adminGroup := api.Group("/admin")
		if r.Auth != nil {
			r.Auth.RegisterRoutes(adminGroup)
		}
		admin = adminGroup.Group("", r.AdminAuth.Middleware())
	}

	if r.Master != nil {
		r.Master.RegisterRoutes(api, admin)
	}
	if r.Suggestion != nil {
		r.Suggestion.RegisterRoutes(api, admin)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS != nil {
		app.Get("/ws/moderation", r.WS.HandleModerationWS)
	}
}
