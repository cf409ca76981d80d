package services

import (
	"context"
	"fmt"
	"log"

	"andhara-backend/internal/apperrors"
	"andhara-backend/internal/auth"
	"andhara-backend/internal/cache"
	"andhara-backend/internal/models"
	"andhara-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, JWTManager: jwtManager}
}

// Signup registers a new account with the default employee role and returns
// a fresh token.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: req.Email, PasswordHash: hash, Role: "employee"}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// Login verifies the credentials and returns a token. A redis hit skips the
// bcrypt comparison, which dominates login latency.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if userID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); ok {
		user, err := s.Repo.Get(ctx, userID)
		if err == nil && user.IsActive {
			return s.issueToken(user)
		}
		cache.InvalidateAuth(ctx, req.Email, req.Password)
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", apperrors.ErrUnauthorized)
	}
	cache.CacheAuth(ctx, req.Email, req.Password, user.ID)
	return s.issueToken(user)
}

func (s *UserService) issueToken(user *models.User) (*models.AuthResponse, error) {
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		log.Printf("[Auth] token generation failed for %s: %v", user.Email, err)
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// CreateUser provisions an account with an explicit role. Admin-gated at the
// router.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: req.Email, PasswordHash: hash, Role: req.Role}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
