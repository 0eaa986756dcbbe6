// Package config provides unified configuration loading for the twin:
// defaults, optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/plasma-twin/internal/decision"
	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
)

// #region config

// Config is the full engine configuration.
type Config struct {
	Plasma   plasma.Config   `yaml:"plasma"`
	Selector decision.Config `yaml:"selector"`

	// EnableDecision and EnableMemory toggle the optional sub-components.
	// A disabled component propagates "nothing happened here" downstream,
	// it never errors.
	EnableDecision bool `yaml:"enable_decision" env:"TWIN_ENABLE_DECISION"`
	EnableMemory   bool `yaml:"enable_memory" env:"TWIN_ENABLE_MEMORY"`
}

// Default returns the configuration with all hand-tuned defaults and both
// optional sub-components enabled.
func Default() Config {
	return Config{
		Plasma:         plasma.DefaultConfig(),
		Selector:       decision.DefaultConfig(),
		EnableDecision: true,
		EnableMemory:   true,
	}
}

// #endregion config

// #region load

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then TWIN_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// #endregion load
