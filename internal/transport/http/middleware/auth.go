package middleware

import (
	"net/http"
	"strings"

	"timetrack/internal/auth"
	"timetrack/internal/identity"
)

// Auth resolves a bearer token into an identity on the request context.
// Requests without a valid token pass through unauthenticated; handlers
// that need an identity reject those themselves.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			actor := identity.Identity{
				UserID:      claims.UserID,
				AuthID:      claims.Subject,
				DisplayName: claims.DisplayName,
				Email:       claims.Email,
				Role:        claims.Role,
			}
			if actor.AuthID == "" {
				actor.AuthID = claims.UserID
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), actor)))
		})
	}
}
