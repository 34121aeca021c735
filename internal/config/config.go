package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config collects everything read from the environment at startup so no
// component reaches for os.Getenv on its own.
type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	GeminiAPIKey   string
	GeminiModel    string
	ProviderWait   time.Duration
	AllowedOrigins []string
	Cache          *CacheConfig
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "5050"),
		DatabaseURL:    dbURL,
		JWTSecret:      jwtSecret,
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ProviderWait:   30 * time.Second,
		AllowedOrigins: splitOrigins(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		Cache:          NewCacheConfig(),
	}

	if wait := os.Getenv("PROVIDER_TIMEOUT_SECONDS"); wait != "" {
		secs, err := strconv.Atoi(wait)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT_SECONDS: %q", wait)
		}
		cfg.ProviderWait = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
