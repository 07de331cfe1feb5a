package authz

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lumina-reports/lumina/internal/platform/httpx"
	"github.com/lumina-reports/lumina/internal/shared"
)

// Handler exposes the effective-permission view for actors.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers actor entitlement routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{id}/permissions", h.effectivePermissions)
}

type effectivePermissionsResponse struct {
	ActorID     int64    `json:"actorId"`
	Elevated    bool     `json:"elevated"`
	Permissions []string `json:"permissions"`
}

// effectivePermissions returns the resolver output for an actor. Actors
// may always inspect their own set; inspecting others requires the
// actors_read capability.
func (h *Handler) effectivePermissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no authenticated actor")
		return
	}
	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || targetID <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid actor id")
		return
	}

	if targetID != actor.ID {
		decision, err := h.service.Authorize(r.Context(), actor.ID, shared.PermActorsRead)
		if err != nil {
			h.logger.Error("authorize actors_read", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		if !decision.Allowed {
			WriteDenial(w, decision)
			return
		}
	}

	perms, err := h.service.EffectivePermissions(r.Context(), targetID)
	if err != nil {
		h.logger.Error("effective permissions", slog.Int64("actor", targetID), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	elevated, err := h.service.IsElevated(r.Context(), targetID)
	if err != nil {
		h.logger.Error("classify actor", slog.Int64("actor", targetID), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if perms == nil {
		perms = []string{}
	}
	httpx.JSON(w, http.StatusOK, effectivePermissionsResponse{
		ActorID:     targetID,
		Elevated:    elevated,
		Permissions: perms,
	})
}
