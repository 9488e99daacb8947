// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Role specifies the service role: "gateway" or "handler"
	Role string

	// Server configuration
	ServerPort string

	// Handler service URL (used by gateway to forward requests)
	HandlerURL string

	// Redis configuration; an empty URL disables result caching
	RedisURL string
	CacheTTL time.Duration

	// Expose Prometheus metrics on /metrics
	MetricsEnabled bool

	// Environment
	Environment string
}

// New creates a new Config with values from environment variables or defaults.
func New() *Config {
	return &Config{
		Role:           getEnv("SERVICE_ROLE", "gateway"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		HandlerURL:     getEnv("HANDLER_URL", "http://handler:8081"),
		RedisURL:       getEnv("REDIS_URL", "redis://redis:6379"),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}
}

// IsGateway returns true if the service is running as an API gateway.
func (c *Config) IsGateway() bool {
	return c.Role == "gateway"
}

// IsHandler returns true if the service is running as a handler.
func (c *Config) IsHandler() bool {
	return c.Role == "handler"
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// CacheEnabled returns true if validation results should be cached in Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.CacheTTL > 0
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
