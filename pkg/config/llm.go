package config

import (
	"fmt"
	"os"
)

// Supported LLM provider types.
const (
	ProviderOpenAI = "openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// LLMProviderConfig configures the model collaborator.
type LLMProviderConfig struct {
	Type        string  `yaml:"type,omitempty"`
	Model       string  `yaml:"model,omitempty"`
	Host        string  `yaml:"host,omitempty"`
	APIKey      string  `yaml:"api_key,omitempty"`
	Temperature float32 `yaml:"temperature,omitempty"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`

	// Timeout in seconds for a single model invocation. A timed-out
	// invocation is recoverable: the controller retries the step once.
	Timeout int `yaml:"timeout,omitempty"`
}

// SetDefaults fills in provider defaults, reading the API key from the
// environment when not set explicitly.
func (c *LLMProviderConfig) SetDefaults() {
	if c.Type == "" {
		c.Type = ProviderOpenAI
	}
	if c.Model == "" {
		c.Model = DefaultOpenAIModel
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 4000
	}
	if c.Timeout == 0 {
		c.Timeout = 120
	}
}

// Validate checks provider invariants.
func (c *LLMProviderConfig) Validate() error {
	switch c.Type {
	case ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm provider type: %s", c.Type)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Timeout < 1 {
		return fmt.Errorf("timeout must be >= 1 second, got %d", c.Timeout)
	}
	return nil
}
