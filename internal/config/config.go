package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Database
	DBPath string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Exchange rates
	RatesURL     string
	RatesTimeout time.Duration
	BaseCurrency money.Currency

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int
}

// Load reads configuration from environment variables. A .env file is loaded
// first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	ratesTimeout, err := time.ParseDuration(getEnv("RATES_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATES_TIMEOUT: %w", err)
	}
	baseCurrency, err := money.ParseCurrency(getEnv("BASE_CURRENCY", "USD"))
	if err != nil {
		return nil, fmt.Errorf("invalid BASE_CURRENCY: %w", err)
	}
	limitPerMinute, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}
	limitBurst, err := getEnvInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                getEnv("ENV", "development"),
		DBPath:             getEnv("DB_PATH", "./data/onme.db"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           tokenTTL,
		RatesURL:           getEnv("RATES_URL", "https://api.frankfurter.dev/v1"),
		RatesTimeout:       ratesTimeout,
		BaseCurrency:       baseCurrency,
		RateLimitPerMinute: limitPerMinute,
		RateLimitBurst:     limitBurst,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
