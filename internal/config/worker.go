package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// WorkerConfig holds the configuration for the catalog stats worker.
type WorkerConfig struct {
	// StatsCronSchedule is a standard 5-field cron expression.
	// Default: "*/5 * * * *"
	StatsCronSchedule string

	// Timezone is the IANA timezone the schedule runs in. Default: "UTC"
	Timezone string

	// MetricsPort serves /metrics and /health for the worker. Default: 9091
	MetricsPort int

	// RefreshTimeout bounds one stats refresh. Default: 30s
	RefreshTimeout time.Duration
}

// LoadWorkerConfig loads worker configuration from environment variables.
func LoadWorkerConfig() (*WorkerConfig, error) {
	config := &WorkerConfig{
		StatsCronSchedule: getEnvOrDefault("STATS_CRON_SCHEDULE", "*/5 * * * *"),
		Timezone:          getEnvOrDefault("STATS_TIMEZONE", "UTC"),
		MetricsPort:       getEnvInt("WORKER_METRICS_PORT", 9091),
		RefreshTimeout:    getEnvDuration("STATS_REFRESH_TIMEOUT", 30*time.Second),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}
	return config, nil
}

// Validate checks every field and reports all failures together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if _, err := cron.ParseStandard(c.StatsCronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("STATS_CRON_SCHEDULE %q: %w", c.StatsCronSchedule, err))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("STATS_TIMEZONE %q: %w", c.Timezone, err))
	}

	if c.MetricsPort < 1024 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("WORKER_METRICS_PORT must be between 1024 and 65535, got %d", c.MetricsPort))
	}

	if c.RefreshTimeout <= 0 {
		errs = append(errs, fmt.Errorf("STATS_REFRESH_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

// Location returns the parsed timezone, falling back to UTC.
func (c *WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
