package middleware

import (
	"context"
	"net/http"

	"amalkitchen-be/internal/identity"
	"amalkitchen-be/internal/utils"
)

type contextKey string

const userKey contextKey = "currentUser"

// Auth resolves the session token into an identity.User on the request
// context. Anonymous requests pass through untouched; role checks happen
// in RequireRole.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := identity.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := identity.ParseSessionToken(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		u := &identity.User{
			ID:     claims.UserID,
			Email:  claims.Email,
			Role:   identity.Role(claims.Role),
			Branch: claims.Branch,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// CurrentUser returns the authenticated user attached by Auth.
func CurrentUser(ctx context.Context) (*identity.User, bool) {
	u, ok := ctx.Value(userKey).(*identity.User)
	return u, ok
}

// RequireRole gates a handler to the given roles. Admins always pass.
func RequireRole(roles ...identity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r.Context())
			if !ok {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			if u.Role == identity.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.WriteJSONError(w, "insufficient role", http.StatusForbidden)
		})
	}
}
