package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/repwear/pkg/auth"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

// Auth validates the bearer token and stores the claims in the request
// context for downstream handlers.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := auth.WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated users whose role does not match.
// Must run after Auth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFromCtx(r.Context())
			if claims == nil {
				response.Unauthorized(w)
				return
			}
			if claims.Role != role {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
