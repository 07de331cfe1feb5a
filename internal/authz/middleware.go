package authz

import (
	"log/slog"
	"net/http"

	"github.com/lumina-reports/lumina/internal/platform/httpx"
	"github.com/lumina-reports/lumina/internal/shared"
)

// Middleware wires the decision point into HTTP handlers.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Require ensures the current actor may perform the given capability.
// Elevated actors pass regardless of grants.
func (m Middleware) Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := shared.ActorFromContext(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no authenticated actor")
				return
			}
			decision, err := m.Service.Authorize(r.Context(), actor.ID, perm)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("authorize", slog.String("permission", perm), slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !decision.Allowed {
				WriteDenial(w, decision)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteDenial renders a negative decision with the uniform 403 envelope.
func WriteDenial(w http.ResponseWriter, decision Decision) {
	message := "you do not have permission to perform this action"
	if decision.Reason == ReasonNotOwner {
		message = "not the owner of this resource"
	}
	httpx.Deny(w, message, httpx.DenialDetails{
		Reason:             string(decision.Reason),
		RequiredPermission: decision.RequiredPermission,
		UserRole:           decision.RoleName,
		AvailableActions:   decision.AvailableActions,
		Suggestion:         decision.Suggestion,
	})
}
