package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ShotaYmzk/onme-backend/internal/auth"
	"github.com/ShotaYmzk/onme-backend/internal/service"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// NewValidationError creates a 400 response.
func NewValidationError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Detail: detail})
}

// NewNotFoundError creates a 404 response.
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Detail: detail})
}

// NewUnauthorizedError creates a 401 response.
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Detail: detail})
}

// NewConflictError creates a 409 response.
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict", Detail: detail})
}

// NewInternalError creates a 500 response. The detail stays generic so
// internals never leak into the body.
func NewInternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal", Detail: "something went wrong"})
}

// ServiceError maps a service-layer error to an HTTP response.
func ServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrAmountNotPositive),
		errors.Is(err, service.ErrAmountExceedsSuggested),
		errors.Is(err, service.ErrSelfSettlement),
		errors.Is(err, service.ErrNoPayments),
		errors.Is(err, service.ErrNoParticipants),
		errors.Is(err, service.ErrMemberNotInGroup),
		errors.Is(err, service.ErrMemberArchived),
		errors.Is(err, auth.ErrWeakPassword):
		return NewValidationError(c, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return NewUnauthorizedError(c, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		return NewConflictError(c, err.Error())
	case strings.Contains(err.Error(), "not found"):
		return NewNotFoundError(c, err.Error())
	default:
		slog.Error("Unhandled service error", "path", c.Request().URL.Path, "error", err)
		return NewInternalError(c)
	}
}
