package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/communityeye/auth-service/internal/server/handlers"
	"github.com/communityeye/auth-service/internal/server/storage"
	"github.com/communityeye/auth-service/pkg/api"
)

// AuthMiddleware creates the token guard applied to protected routes.
// It short-circuits on the first failure: missing header, bad signature
// or expiry, then denylist membership. On success the decoded identity
// is injected into the request context for the wrapped handler. The
// guard only reads state, it never mutates it.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig, tokenStorage storage.TokenStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(handlers.TokenHeader)
			if token == "" {
				logger.Warn("unauthorized access attempt: token is missing")
				sendError(logger, w, "token is missing", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, token)
			if err != nil {
				logger.Warn("unauthorized access attempt: invalid token", "error", err)
				sendError(logger, w, "token is invalid", http.StatusUnauthorized)
				return
			}

			revoked, err := tokenStorage.IsTokenRevoked(r.Context(), token)
			if err != nil {
				logger.Error("failed to check token denylist", "error", err)
				sendError(logger, w, "error checking token denylist", http.StatusInternalServerError)
				return
			}
			if revoked {
				logger.Warn("unauthorized access attempt: token has been cancelled", "user_id", claims.UserID)
				sendError(logger, w, "token has been cancelled", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.IsAdminKey, claims.Admin)

			logger.Debug("user authenticated", "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sendError writes a JSON error response from middleware
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}
