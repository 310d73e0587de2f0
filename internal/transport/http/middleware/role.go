package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

// RequireRole returns middleware that allows access only to users whose JWT
// role matches one of the provided role names (e.g. domain.RoleDoctor).
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}

// DoctorChecker answers whether a user has a doctor profile.
type DoctorChecker interface {
	IsDoctor(ctx context.Context, userID string) (bool, error)
}

// RequireDoctor verifies the caller's doctor profile actually exists, on top
// of whatever the JWT role claim says. A lookup failure denies access.
func RequireDoctor(checker DoctorChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			isDoctor, err := checker.IsDoctor(r.Context(), claims.UserID)
			if err != nil {
				slog.Error("doctor check failed", "user_id", claims.UserID, "error", err)
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			if !isDoctor {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
