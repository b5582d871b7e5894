package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShotaYmzk/onme-backend/internal/service"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest is the JSON body for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionResponse carries the account and its session token.
type SessionResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return NewValidationError(c, "email and password are required")
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return ServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, SessionResponse{
		User:  UserResponse{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	})
}

// Login authenticates an account.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return ServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SessionResponse{
		User:  UserResponse{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	})
}
