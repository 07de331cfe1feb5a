package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lumina-reports/lumina/internal/authz"
	"github.com/lumina-reports/lumina/internal/bindings"
	"github.com/lumina-reports/lumina/internal/campaigns"
	"github.com/lumina-reports/lumina/internal/identity"
	"github.com/lumina-reports/lumina/internal/modules"
	"github.com/lumina-reports/lumina/internal/observability"
	"github.com/lumina-reports/lumina/internal/permissions"
	"github.com/lumina-reports/lumina/internal/roles"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Identity           identity.Middleware
	ModulesHandler     *modules.Handler
	PermissionsHandler *permissions.Handler
	RolesHandler       *roles.Handler
	BindingsHandler    *bindings.Handler
	EntitlementHandler *authz.Handler
	CampaignsHandler   *campaigns.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Lumina defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	// Everything below requires an authenticated actor; the capability
	// and ownership gates live inside each handler's MountRoutes.
	r.Group(func(r chi.Router) {
		r.Use(params.Identity.RequireActor)

		r.Route("/modules", params.ModulesHandler.MountRoutes)
		r.Route("/permissions", params.PermissionsHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/actors", func(r chi.Router) {
			params.BindingsHandler.MountRoutes(r)
			params.EntitlementHandler.MountRoutes(r)
		})
		r.Route("/campaigns", params.CampaignsHandler.MountRoutes)
	})

	return r
}
