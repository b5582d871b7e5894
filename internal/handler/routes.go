package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShotaYmzk/onme-backend/internal/auth"
	"github.com/ShotaYmzk/onme-backend/internal/metrics"
	"github.com/ShotaYmzk/onme-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes.
func RegisterRoutes(e *echo.Echo, jwtManager *auth.JWTManager, limiter *middleware.RateLimiter, authHandler *AuthHandler, groupHandler *GroupHandler, expenseHandler *ExpenseHandler, settlementHandler *SettlementHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter))

	// Auth routes (public)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Group routes (protected)
	groups := api.Group("/groups")
	groups.Use(middleware.RequireAuth(jwtManager))
	groups.POST("", groupHandler.Create)
	groups.GET("", groupHandler.List)
	groups.GET("/:id", groupHandler.Get)
	groups.POST("/:id/members", groupHandler.AddMember)
	groups.DELETE("/:id/members/:memberId", groupHandler.ArchiveMember)
	groups.GET("/:id/balances", groupHandler.Balances)

	// Expense routes (protected)
	groups.POST("/:id/expenses", expenseHandler.Create)
	groups.GET("/:id/expenses", expenseHandler.List)
	groups.DELETE("/:id/expenses/:expenseId", expenseHandler.Archive)

	// Settlement routes (protected)
	groups.POST("/:id/settlements", settlementHandler.Record)
	groups.GET("/:id/settlements", settlementHandler.History)
}
