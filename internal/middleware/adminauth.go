package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	// AdminCookieName carries the signed admin token.
	AdminCookieName = "admin_token"

	adminEmailKey contextKey = "admin_email"
)

// TokenValidator checks an admin token and returns the email it was
// issued for.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AdminAuthMiddleware guards admin routes. A request without a valid
// admin token (cookie or bearer header) is rejected with 401 — the API
// analog of redirecting an unauthenticated admin to the login page.
func AdminAuthMiddleware(validator TokenValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := adminToken(r)
			if token == "" {
				logger.Debug("Missing admin token")
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			email, err := validator.ValidateToken(token)
			if err != nil {
				logger.Debug("Admin token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), adminEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminEmail extracts the authenticated admin's email from the
// context.
func GetAdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminEmailKey).(string)
	return email, ok
}

func adminToken(r *http.Request) string {
	if cookie, err := r.Cookie(AdminCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
