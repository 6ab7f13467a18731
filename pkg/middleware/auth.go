package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the signed-in identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
}

var errMissingToken = errors.New("missing authorization token")

// AuthSession requires a valid bearer token and stores the resolved
// Identity on the request context. Browsers cannot set headers on
// WebSocket upgrades, so access_token is accepted there as well.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				utils.ResponseUnauthorized(w, err.Error())
				return
			}

			identity, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if usecase.IsAuthError(err) {
					logger.Warn("Rejected session", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Invalid or expired session")
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin must run after AuthSession.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !identity.IsAdmin() {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", identity.UserID().String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if token := r.URL.Query().Get("access_token"); token != "" && isWebSocket(r) {
			return token, nil
		}
		return "", errMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("invalid token format, use: Bearer <token>")
	}
	return strings.TrimSpace(token), nil
}

func isWebSocket(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
