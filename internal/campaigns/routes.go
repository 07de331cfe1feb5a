package campaigns

import (
	"github.com/go-chi/chi/v5"

	"github.com/lumina-reports/lumina/internal/shared"
)

// MountRoutes registers campaign routes behind their capability gates.
// The ownership filter inside the service narrows what each gate lets
// through.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(shared.PermCampaignsRead))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(shared.PermCampaignsCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(shared.PermCampaignsEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(shared.PermCampaignsDelete))
		r.Delete("/{id}", h.delete)
	})
}
