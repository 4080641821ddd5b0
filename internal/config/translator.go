package config

import (
	"fmt"
	"strings"
	"time"
)

// Translator providers.
const (
	TranslatorProviderNone   = "none"
	TranslatorProviderOpenAI = "openai"
	TranslatorProviderClaude = "claude"
)

// TranslatorConfig holds configuration for the query translator used by
// search expansion.
type TranslatorConfig struct {
	// Provider selects the backend: "openai", "claude" or "none". Default: "none"
	Provider string

	// OpenAIAPIKey is required when Provider is "openai".
	OpenAIAPIKey string

	// AnthropicAPIKey is required when Provider is "claude".
	AnthropicAPIKey string

	// Model overrides the provider's default model when set.
	Model string

	// Timeout bounds one provider call. Default: 5s
	Timeout time.Duration

	// RatePerSecond is the sustained call budget shared by all requests. Default: 5
	RatePerSecond float64

	// Burst is the token bucket size. Default: 10
	Burst int

	// CircuitBreaker for translator calls.
	CircuitBreaker CircuitBreakerConfig
}

// CircuitBreakerConfig for translator resilience.
type CircuitBreakerConfig struct {
	// MaxRequests in half-open state.
	MaxRequests uint32

	// Interval for clearing failure counts.
	Interval time.Duration

	// Timeout before transitioning from open to half-open.
	Timeout time.Duration

	// FailureThreshold ratio to trip circuit (0.0 to 1.0).
	FailureThreshold float64

	// MinRequests before calculating failure ratio.
	MinRequests uint32
}

// LoadTranslatorConfig loads translator configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadTranslatorConfig() (*TranslatorConfig, error) {
	config := &TranslatorConfig{
		Provider:        strings.ToLower(getEnvOrDefault("TRANSLATOR_PROVIDER", TranslatorProviderNone)),
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnvOrDefault("ANTHROPIC_API_KEY", ""),
		Model:           getEnvOrDefault("TRANSLATOR_MODEL", ""),
		Timeout:         getEnvDuration("TRANSLATOR_TIMEOUT", 5*time.Second),
		RatePerSecond:   getEnvFloat("TRANSLATOR_RATE_PER_SEC", 5),
		Burst:           getEnvInt("TRANSLATOR_BURST", 10),
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      uint32(getEnvInt("TRANSLATOR_CB_MAX_REQUESTS", 1)),
			Interval:         getEnvDuration("TRANSLATOR_CB_INTERVAL", 30*time.Second),
			Timeout:          getEnvDuration("TRANSLATOR_CB_TIMEOUT", 60*time.Second),
			FailureThreshold: getEnvFloat("TRANSLATOR_CB_FAILURE_THRESHOLD", 0.5),
			MinRequests:      uint32(getEnvInt("TRANSLATOR_CB_MIN_REQUESTS", 4)),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid translator configuration: %w", err)
	}

	return config, nil
}

// Enabled reports whether a real provider is configured.
func (c *TranslatorConfig) Enabled() bool {
	return c.Provider != TranslatorProviderNone
}

// Validate checks configuration correctness.
func (c *TranslatorConfig) Validate() error {
	switch c.Provider {
	case TranslatorProviderNone:
		return nil
	case TranslatorProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.Provider)
		}
	case TranslatorProviderClaude:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("TRANSLATOR_PROVIDER must be one of none, openai, claude: got %q", c.Provider)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("TRANSLATOR_TIMEOUT must be positive")
	}

	if c.RatePerSecond <= 0 {
		return fmt.Errorf("TRANSLATOR_RATE_PER_SEC must be positive")
	}

	if c.Burst < 1 {
		return fmt.Errorf("TRANSLATOR_BURST must be at least 1")
	}

	if c.CircuitBreaker.MaxRequests == 0 {
		return fmt.Errorf("TRANSLATOR_CB_MAX_REQUESTS must be positive")
	}

	if c.CircuitBreaker.Interval <= 0 {
		return fmt.Errorf("TRANSLATOR_CB_INTERVAL must be positive")
	}

	if c.CircuitBreaker.Timeout <= 0 {
		return fmt.Errorf("TRANSLATOR_CB_TIMEOUT must be positive")
	}

	if c.CircuitBreaker.FailureThreshold <= 0 || c.CircuitBreaker.FailureThreshold > 1 {
		return fmt.Errorf("TRANSLATOR_CB_FAILURE_THRESHOLD must be within (0, 1]")
	}

	return nil
}
