package middleware

import (
	"context"
	"net/http"
	"strings"

	"andhara-backend/internal/auth"
	"andhara-backend/internal/models"
	"andhara-backend/internal/repositories"
	"andhara-backend/pkg/utils"
)

type contextKey string

const userKey contextKey = "current_user"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   *repositories.UserRepository
	policy     auth.Policy
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo *repositories.UserRepository, policy auth.Policy) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
		policy:     policy,
	}
}

// Authenticate validates the bearer token and loads the current user from
// the database so deactivations take effect immediately, not at token expiry.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := m.userRepo.Get(r.Context(), claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "User not found")
			return
		}

		if !user.IsActive {
			utils.Error(w, http.StatusForbidden, "Account suspended. Please contact administrator.")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUserAdmin chains Authenticate with the authorization policy check
// for privileged operations.
func (m *AuthMiddleware) RequireUserAdmin(next http.Handler) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !m.policy.CanManageUsers(user) {
			utils.Error(w, http.StatusForbidden, "Forbidden: admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
