// Package config loads the gateway configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Settings holds the complete gateway configuration.
type Settings struct {
	// HTTP
	Host string
	Port string

	// Redis
	RedisURL string

	// Document store (SQLite)
	DocStorePath string

	// GNews upstream
	GNewsAPIKey  string
	GNewsBaseURL string

	// Cache TTLs
	NewsTTL     time.Duration // news + summary + sentiment results
	CommentsTTL time.Duration // cached comment lists

	// Timeouts for outbound calls
	UpstreamTimeout time.Duration // GNews requests
	ScrapeTimeout   time.Duration // article content acquisition
	CacheTimeout    time.Duration // per-operation Redis bound

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load builds Settings from environment variables, applying defaults
// for everything except the GNews API key (validated by Validate, not
// here, so tests can construct partial settings).
func Load() Settings {
	return Settings{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "8080"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		DocStorePath:    getEnv("DOCSTORE_PATH", "newsaura.db"),
		GNewsAPIKey:     getEnv("GNEWS_API_KEY", ""),
		GNewsBaseURL:    getEnv("GNEWS_BASE_URL", "https://gnews.io/api/v4"),
		NewsTTL:         getEnvDuration("CACHE_TTL_NEWS", 15*time.Minute),
		CommentsTTL:     getEnvDuration("CACHE_TTL_COMMENTS", 5*time.Minute),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		ScrapeTimeout:   getEnvDuration("SCRAPE_TIMEOUT", 15*time.Second),
		CacheTimeout:    getEnvDuration("CACHE_TIMEOUT", 2*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvBool("LOG_PRETTY", false),
	}
}

// Validate checks settings that have no safe default.
func (s Settings) Validate() error {
	if s.GNewsAPIKey == "" {
		return fmt.Errorf("GNEWS_API_KEY is required")
	}
	if s.GNewsBaseURL == "" {
		return fmt.Errorf("GNEWS_BASE_URL cannot be empty")
	}
	if s.NewsTTL <= 0 {
		return fmt.Errorf("CACHE_TTL_NEWS must be positive (got %s)", s.NewsTTL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a duration from the environment. Plain integers
// are interpreted as seconds, so CACHE_TTL_NEWS=900 and
// CACHE_TTL_NEWS=15m are equivalent.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
