package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// RouteLimit is the limit for one route. Path supports prefix matching when
// it ends with "/". A Limit of zero means unlimited.
type RouteLimit struct {
	Path   string
	Method string
	Limit  int // requests per window
	Window time.Duration
	Burst  int // defaults to Limit when zero
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Routes          []RouteLimit
}

// LoadConfig reads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Routes:          DefaultRouteLimits(),
	}
}

// DefaultRouteLimits returns the per-route tiers. Upload and commit are the
// expensive operations: upload may call the AI provider and commit opens a
// write transaction.
func DefaultRouteLimits() []RouteLimit {
	return []RouteLimit{
		{Path: "/wizard/upload", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/wizard/commit", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		{Path: "/wizard/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 30},
		{Path: "/resumes/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func defaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Routes:          DefaultRouteLimits(),
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}
