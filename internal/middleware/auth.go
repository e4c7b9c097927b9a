package middleware

import (
	"context"
	"net/http"

	"restaurant-pos/internal/config"
	"restaurant-pos/internal/models"
)

type actorContextKey struct{}

// TerminalAuth resolves the "terminal_key" header into an Actor and stores
// it in the request context. Requests without a known key never reach the
// engine.
func TerminalAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("terminal_key")

			if key == "" {
				http.Error(w, "Unauthorized: terminal key required", http.StatusUnauthorized)
				return
			}

			actor, ok := cfg.Actor(key)
			if !ok {
				http.Error(w, "Forbidden: unknown terminal key", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFrom extracts the authenticated actor from the request context
func ActorFrom(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(models.Actor)
	return actor, ok
}
