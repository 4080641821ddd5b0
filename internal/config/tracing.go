package config

import (
	"errors"
	"fmt"
)

// TracingConfig controls OpenTelemetry trace export.
type TracingConfig struct {
	// Enabled turns on the OTLP exporter. Default: false
	Enabled bool
	// Endpoint is the OTLP gRPC collector address. Default: "localhost:4317"
	Endpoint string
	// Insecure disables TLS to the collector. Default: true
	Insecure bool
	// ServiceName is the service.name resource attribute.
	ServiceName string
	// SamplingRate is the parent-based trace id ratio, 0..1. Default: 0.1
	SamplingRate float64
}

// LoadTracingConfig loads tracing configuration from environment variables.
// serviceName is used when OTEL_SERVICE_NAME is unset.
func LoadTracingConfig(serviceName string) (*TracingConfig, error) {
	config := &TracingConfig{
		Enabled:      getEnvBool("TRACING_ENABLED", false),
		Endpoint:     getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		ServiceName:  getEnvOrDefault("OTEL_SERVICE_NAME", serviceName),
		SamplingRate: getEnvFloat("TRACING_SAMPLE_RATE", 0.1),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tracing configuration: %w", err)
	}
	return config, nil
}

// Validate checks the exporter settings. A disabled config is always valid.
func (c *TracingConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("OTEL_EXPORTER_OTLP_ENDPOINT is required when tracing is enabled"))
	}
	if c.ServiceName == "" {
		errs = append(errs, errors.New("OTEL_SERVICE_NAME is required when tracing is enabled"))
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		errs = append(errs, fmt.Errorf("TRACING_SAMPLE_RATE must be between 0 and 1, got %g", c.SamplingRate))
	}
	return errors.Join(errs...)
}
