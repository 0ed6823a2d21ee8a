package app

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string        // Required: base64-encoded HS256 signing key, min 256 bits
	TokenTTL  time.Duration // Required: lifetime of issued bearer tokens

	Issuer              string        // Optional: issuer claim for tokens (default: finbook)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./finbook.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. The signing key and
// token TTL have no safe default, so their absence is an error rather than a
// fallback.
func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:           os.Getenv("FINBOOK_JWT_SECRET"),
		Issuer:              getEnvOrDefault("FINBOOK_ISSUER", "finbook"),
		DatabaseFile:        getEnvOrDefault("FINBOOK_DATABASE_FILE", "finbook.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("FINBOOK_JWT_SECRET is required")
	}

	ttl := os.Getenv("FINBOOK_TOKEN_TTL")
	if ttl == "" {
		return Config{}, fmt.Errorf("FINBOOK_TOKEN_TTL is required")
	}
	d, err := time.ParseDuration(ttl)
	if err != nil || d <= 0 {
		return Config{}, fmt.Errorf("FINBOOK_TOKEN_TTL must be a positive duration, got %q", ttl)
	}
	cfg.TokenTTL = d

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
