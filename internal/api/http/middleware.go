package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"equipme-backend/internal/security"
	"equipme-backend/internal/service"
)

type contextKey string

const actorContextKey contextKey = "actor"

// AuthMiddleware validates the bearer token and stores the resulting actor on
// the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			actor := service.Actor{ID: claims.ActorID, Role: claims.Role}
			ctx := context.WithValue(r.Context(), actorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFrom returns the authenticated actor stored by AuthMiddleware.
func actorFrom(r *http.Request) (service.Actor, bool) {
	actor, ok := r.Context().Value(actorContextKey).(service.Actor)
	return actor, ok
}

// CallbackAuth guards the payment callback with a shared secret.
func CallbackAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Callback-Secret")
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid callback secret"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
