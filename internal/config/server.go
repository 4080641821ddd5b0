package config

import (
	"errors"
	"fmt"
	"time"
)

// ServerConfig holds the HTTP API server configuration.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8080"
	Addr string

	// Version is reported by /health. Default: "dev"
	Version string

	ReadHeaderTimeout time.Duration // Default: 10s
	ShutdownTimeout   time.Duration // Default: 5s

	// MaxBodyBytes caps request bodies. Default: 1 MiB
	MaxBodyBytes int64

	// SearchRatePerSecond is the per-client budget on /quotes/search.
	// Zero disables the limiter. Default: 10
	SearchRatePerSecond float64
	// SearchRateBurst is the per-client burst. Default: 20
	SearchRateBurst int

	// DBCircuitBreakerEnabled routes store queries through a circuit breaker.
	DBCircuitBreakerEnabled bool
}

// LoadServerConfig loads server configuration from environment variables.
func LoadServerConfig() (*ServerConfig, error) {
	config := &ServerConfig{
		Addr:                    getEnvOrDefault("HTTP_ADDR", ":8080"),
		Version:                 getEnvOrDefault("VERSION", "dev"),
		ReadHeaderTimeout:       getEnvDuration("HTTP_READ_HEADER_TIMEOUT", 10*time.Second),
		ShutdownTimeout:         getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 5*time.Second),
		MaxBodyBytes:            int64(getEnvInt("HTTP_MAX_BODY_BYTES", 1<<20)),
		SearchRatePerSecond:     getEnvFloat("SEARCH_RATE_PER_SEC", 10),
		SearchRateBurst:         getEnvInt("SEARCH_RATE_BURST", 20),
		DBCircuitBreakerEnabled: getEnvBool("DB_CIRCUIT_BREAKER_ENABLED", false),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return config, nil
}

// Validate checks every field and reports all failures together.
func (c *ServerConfig) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR is required"))
	}
	if c.ReadHeaderTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_READ_HEADER_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("HTTP_MAX_BODY_BYTES must be positive"))
	}
	if c.SearchRatePerSecond < 0 {
		errs = append(errs, fmt.Errorf("SEARCH_RATE_PER_SEC cannot be negative, got %g", c.SearchRatePerSecond))
	}
	if c.SearchRatePerSecond > 0 && c.SearchRateBurst < 1 {
		errs = append(errs, fmt.Errorf("SEARCH_RATE_BURST must be at least 1, got %d", c.SearchRateBurst))
	}

	return errors.Join(errs...)
}

// SearchRateLimited reports whether the per-client search limiter is on.
func (c *ServerConfig) SearchRateLimited() bool {
	return c.SearchRatePerSecond > 0
}
