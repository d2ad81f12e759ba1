// Package config provides configuration types and loading for ponder.
//
// Configuration follows a SetDefaults/Validate convention: every config
// struct knows how to fill in its own defaults and check its own invariants.
// Loading happens once at startup; the resulting Config is immutable for the
// lifetime of the agent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a ponder agent.
type Config struct {
	LLM       LLMProviderConfig `yaml:"llm"`
	Reasoning ReasoningConfig   `yaml:"reasoning"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// SetDefaults fills in defaults for all sections.
func (c *Config) SetDefaults() {
	c.LLM.SetDefaults()
	c.Reasoning.SetDefaults()
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "simple"
	}
}

// Validate checks all sections. Defaults must be applied first.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Reasoning.Validate(); err != nil {
		return fmt.Errorf("reasoning: %w", err)
	}
	return nil
}

// LoadFromFile reads a YAML config file, expands environment variable
// references, applies defaults, and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Load(data)
}

// Load parses YAML config bytes with env expansion, defaults and validation.
func Load(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a ready-to-use configuration without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}
