package llms

import (
	"fmt"

	"github.com/ponder-ai/ponder/pkg/config"
)

// NewProvider creates the configured model collaborator.
func NewProvider(cfg config.LLMProviderConfig) (LLM, error) {
	switch cfg.Type {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider type: %s", cfg.Type)
	}
}
