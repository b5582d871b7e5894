package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ShotaYmzk/onme-backend/internal/auth"
	"github.com/ShotaYmzk/onme-backend/internal/config"
	"github.com/ShotaYmzk/onme-backend/internal/exchange"
	"github.com/ShotaYmzk/onme-backend/internal/handler"
	"github.com/ShotaYmzk/onme-backend/internal/middleware"
	"github.com/ShotaYmzk/onme-backend/internal/service"
	"github.com/ShotaYmzk/onme-backend/internal/storage/sqlite"
	"github.com/ShotaYmzk/onme-backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	rates := exchange.NewProvider(
		exchange.NewClient(cfg.RatesURL, cfg.RatesTimeout),
		cfg.BaseCurrency,
	)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authHandler := handler.NewAuthHandler(service.NewAuthService(authenticator, jwtManager))
	groupService := service.NewGroupService(store)
	groupHandler := handler.NewGroupHandler(groupService, service.NewBalanceService(store, rates))
	expenseHandler := handler.NewExpenseHandler(service.NewExpenseService(store))
	settlementHandler := handler.NewSettlementHandler(service.NewSettlementService(store))

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer limiter.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogging())

	handler.RegisterRoutes(e, jwtManager, limiter, authHandler, groupHandler, expenseHandler, settlementHandler)

	// h2c lets clients speak HTTP/2 without TLS when a proxy terminates it.
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h2c.NewHandler(e, &http2.Server{}),
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
