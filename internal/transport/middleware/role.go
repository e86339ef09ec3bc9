package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maintenance-management/internal/auth"
)

// RequireRoles creates a middleware that rejects users outside the given roles.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed := false
			for _, role := range roles {
				if user.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				slog.Warn("access denied: user lacks required role",
					"user_id", user.ID,
					"user_role", user.Role,
					"required_roles", roles)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
