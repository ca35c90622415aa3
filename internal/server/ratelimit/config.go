package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// EndpointConfig holds the rate limit for a specific endpoint. Path matches
// by prefix when it ends with a slash, exactly otherwise.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window, <= 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity, defaults to Limit if 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Enhancement runs
// make two model calls each and dominate cost, so they get the strictest
// bucket. Login is limited to slow down password guessing.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/enhance", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/render", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/runs", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/runs/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/health", Method: "GET", Limit: 0},
	}
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
