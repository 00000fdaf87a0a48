package httpapi

import (
	"context"
	"net/http"
	"strings"

	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"
)

type contextKey string

const ctxIdentity contextKey = "identity"

func identityFromClaims(claims map[string]interface{}) (services.Identity, bool) {
	userID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	rawRole, _ := claims["role"].(string)
	role, ok := models.ParseRole(rawRole)
	if userID == "" || !ok {
		return services.Identity{}, false
	}
	return services.Identity{UserID: userID, Email: email, Role: role}, true
}

func WithAuth(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			token, claims, err := tokenService.ParseToken(tokenStr)
			if err != nil || !token.Valid {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			identity, ok := identityFromClaims(claims)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentIdentity(r *http.Request) services.Identity {
	if value, ok := r.Context().Value(ctxIdentity).(services.Identity); ok {
		return value
	}
	return services.Identity{}
}

func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return RequireAnyRole(role)
}

func RequireAnyRole(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := map[models.Role]bool{}
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowed[CurrentIdentity(r).Role] {
				next.ServeHTTP(w, r)
				return
			}
			WriteError(w, http.StatusForbidden, "Not allowed")
		})
	}
}
