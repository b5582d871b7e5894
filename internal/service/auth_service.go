package service

import (
	"context"
	"log/slog"

	"github.com/ShotaYmzk/onme-backend/internal/auth"
	"github.com/ShotaYmzk/onme-backend/internal/models"
)

// AuthService handles registration and login.
type AuthService struct {
	authenticator *auth.PasswordAuthenticator
	tokens        *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator *auth.PasswordAuthenticator, tokens *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, tokens: tokens}
}

// Register creates an account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}
