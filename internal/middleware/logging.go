package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ShotaYmzk/onme-backend/internal/metrics"
)

// RequestLogging returns a middleware that logs every request and feeds the
// request counter. It logs the method, path, user ID, status, and duration.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			duration := time.Since(start).Milliseconds()
			userID := GetUserID(c) // empty if pre-auth

			metrics.HTTPRequests.WithLabelValues(req.Method, c.Path(), strconv.Itoa(status)).Inc()

			if status >= 500 {
				slog.Error("Request failed",
					"method", req.Method,
					"path", req.URL.Path,
					"status", status,
					"error", err,
					"user_id", userID,
					"duration_ms", duration,
				)
			} else if status >= 400 {
				slog.Warn("Request rejected",
					"method", req.Method,
					"path", req.URL.Path,
					"status", status,
					"user_id", userID,
					"duration_ms", duration,
				)
			} else {
				slog.Info("Request ok",
					"method", req.Method,
					"path", req.URL.Path,
					"status", status,
					"user_id", userID,
					"duration_ms", duration,
				)
			}

			return err
		}
	}
}
