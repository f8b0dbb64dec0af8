package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceConfig describes the listing source being ingested.
type SourceConfig struct {
	BaseURL      string `yaml:"base_url"`
	Pages        int    `yaml:"pages"`
	LookbackDays int    `yaml:"lookback_days"` // recency window for listing entries
	Timeout      int    `yaml:"timeout"`       // per-page fetch timeout, seconds
}

func DefaultSourceConfig() *SourceConfig {
	return &SourceConfig{
		BaseURL:      "http://rutor.info",
		Pages:        10,
		LookbackDays: 2,
		Timeout:      3,
	}
}

// LoadSourceConfig reads overrides from a YAML file on top of the
// defaults. An empty path returns the defaults unchanged.
func LoadSourceConfig(path string) (*SourceConfig, error) {
	config := DefaultSourceConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse source config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid source config %s: %w", path, err)
	}

	return config, nil
}

func (c *SourceConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.Pages <= 0 {
		return fmt.Errorf("pages must be positive, got %d", c.Pages)
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("lookback_days must be positive, got %d", c.LookbackDays)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	return nil
}
