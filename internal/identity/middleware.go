package identity

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/lumina-reports/lumina/internal/platform/httpx"
	"github.com/lumina-reports/lumina/internal/shared"
)

// Middleware authenticates requests via the Authorization header.
type Middleware struct {
	Verifier *Verifier
	Logger   *slog.Logger
}

// RequireActor rejects requests without a valid bearer token and stores
// the actor in the request context for downstream authorization.
func (m Middleware) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}
		actor, err := m.Verifier.Verify(token)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("reject actor token", slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid bearer token")
			return
		}
		ctx := shared.ContextWithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
