package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	Port           int
	RedisURL       string   // empty disables the projection cache
	AllowedOrigins []string // CORS allow-list; ["*"] allows everything
	RateLimitRPS   float64  // requests per second per client IP
	RateLimitBurst int
	RequestTimeout int // per-request deadline in seconds
	CacheTTL       int // projection cache TTL in seconds
	LogLevel       string
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables or defaults")
	}

	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://127.0.0.1:5432/gestor_gastos?sslmode=disable"),
		Port:           getEnvInt("PORT", 3000),
		RedisURL:       getEnv("REDIS_URL", ""),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		RequestTimeout: getEnvInt("REQUEST_TIMEOUT_SECONDS", 10),
		CacheTTL:       getEnvInt("CACHE_TTL_SECONDS", 300),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// splitOrigins parses a comma-separated origin list, dropping empty entries.
// A wildcard anywhere in the list means allow-all: gin-contrib/cors rejects
// "*" mixed into a concrete origin list at startup.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == "*" {
			return []string{"*"}
		}
		origins = append(origins, p)
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
