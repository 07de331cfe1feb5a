package bindings

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lumina-reports/lumina/internal/authz"
	"github.com/lumina-reports/lumina/internal/platform/httpx"
	"github.com/lumina-reports/lumina/internal/shared"
)

// Handler manages actor-role binding endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	authz     authz.Middleware
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authzmw authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, authz: authzmw, validator: validator.New()}
}

// MountRoutes registers binding routes under the actors resource.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(shared.PermActorsRead))
		r.Get("/{id}/roles", h.list)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(shared.PermActorsEdit))
		r.Post("/{id}/roles", h.bind)
		r.Delete("/{id}/roles/{roleID}", h.unbind)
	})
}

type bindRequest struct {
	RoleID int64 `json:"roleId" validate:"required,gt=0"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	list, err := h.service.ListForActor(r.Context(), actorID)
	if err != nil {
		h.logger.Error("list bindings", slog.Int64("actor", actorID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Binding{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": list})
}

func (h *Handler) bind(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	var req bindRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	boundBy, _ := shared.ActorFromContext(r.Context())
	if err := h.service.Bind(r.Context(), actorID, req.RoleID, boundBy); err != nil {
		h.logger.Error("bind role", slog.Int64("actor", actorID), slog.Int64("role", req.RoleID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unbind(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	roleID, ok := h.parseID(w, r, "roleID")
	if !ok {
		return
	}
	if err := h.service.Unbind(r.Context(), actorID, roleID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid "+param)
		return 0, false
	}
	return id, true
}
