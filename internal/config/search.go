package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SearchConfig holds the tunables of the quote search service.
type SearchConfig struct {
	// DefaultLimit applies when a request carries no limit. Default: 10
	DefaultLimit int `yaml:"default_limit"`
	// MaxLimit caps the limit a client may ask for. Default: 50
	MaxLimit int `yaml:"max_limit"`
	// OverfetchFactor multiplies the limit for each per-variant store search. Default: 2
	OverfetchFactor int `yaml:"overfetch_factor"`
	// TranslateTimeout bounds query translation during expansion. Default: 3s
	TranslateTimeout time.Duration `yaml:"translate_timeout"`
	// ListScanBatch is the page size used when scanning grouped quotes. Default: 200
	ListScanBatch int `yaml:"list_scan_batch"`
}

type searchFile struct {
	Search SearchConfig `yaml:"search"`
}

// DefaultSearchConfig returns the built-in search settings.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		DefaultLimit:     10,
		MaxLimit:         50,
		OverfetchFactor:  2,
		TranslateTimeout: 3 * time.Second,
		ListScanBatch:    200,
	}
}

// LoadSearchConfig builds the search configuration.
// Defaults are overlaid by the YAML file named in SEARCH_CONFIG_FILE (if any),
// and environment variables take precedence over both.
//
// Environment variables:
//   - SEARCH_CONFIG_FILE: optional YAML file with a top-level "search" key
//   - SEARCH_DEFAULT_LIMIT, SEARCH_MAX_LIMIT, SEARCH_OVERFETCH_FACTOR
//   - SEARCH_TRANSLATE_TIMEOUT, SEARCH_LIST_SCAN_BATCH
func LoadSearchConfig() (*SearchConfig, error) {
	cfg := DefaultSearchConfig()

	if path := os.Getenv("SEARCH_CONFIG_FILE"); path != "" {
		if err := overlaySearchFile(&cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.DefaultLimit = getEnvInt("SEARCH_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.MaxLimit = getEnvInt("SEARCH_MAX_LIMIT", cfg.MaxLimit)
	cfg.OverfetchFactor = getEnvInt("SEARCH_OVERFETCH_FACTOR", cfg.OverfetchFactor)
	cfg.TranslateTimeout = getEnvDuration("SEARCH_TRANSLATE_TIMEOUT", cfg.TranslateTimeout)
	cfg.ListScanBatch = getEnvInt("SEARCH_LIST_SCAN_BATCH", cfg.ListScanBatch)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search configuration: %w", err)
	}
	return &cfg, nil
}

func overlaySearchFile(cfg *SearchConfig, path string) error {
	// #nosec G304 -- path comes from the operator's environment, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read search config file: %w", err)
	}

	file := searchFile{Search: *cfg}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse search config file: %w", err)
	}
	*cfg = file.Search
	return nil
}

// Validate checks configuration correctness.
func (c *SearchConfig) Validate() error {
	if c.MaxLimit <= 0 || c.MaxLimit > 500 {
		return fmt.Errorf("SEARCH_MAX_LIMIT must be between 1 and 500")
	}
	if c.DefaultLimit <= 0 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT must be between 1 and SEARCH_MAX_LIMIT")
	}
	if c.OverfetchFactor < 1 || c.OverfetchFactor > 10 {
		return fmt.Errorf("SEARCH_OVERFETCH_FACTOR must be between 1 and 10")
	}
	if c.TranslateTimeout <= 0 {
		return fmt.Errorf("SEARCH_TRANSLATE_TIMEOUT must be positive")
	}
	if c.ListScanBatch <= 0 {
		return fmt.Errorf("SEARCH_LIST_SCAN_BATCH must be positive")
	}
	return nil
}

// ClampLimit maps a requested limit onto the configured bounds.
// Zero means "not given" and yields DefaultLimit. Negative values are returned
// unchanged so callers can reject them.
func (c *SearchConfig) ClampLimit(requested int) int {
	switch {
	case requested == 0:
		return c.DefaultLimit
	case requested > c.MaxLimit:
		return c.MaxLimit
	default:
		return requested
	}
}
