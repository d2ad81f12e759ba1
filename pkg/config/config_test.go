package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Type)
	assert.Equal(t, DefaultOpenAIModel, cfg.LLM.Model)
	assert.Equal(t, "chain_of_thought", cfg.Reasoning.PrimaryStrategy)
	assert.Equal(t, DefaultMaxSteps, cfg.Reasoning.MaxSteps)
	assert.Equal(t, DefaultMaxReasoningDepth, cfg.Reasoning.MaxReasoningDepth)
	assert.Equal(t, DefaultConfidenceMarkers, cfg.Reasoning.ConfidenceMarkers)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFullConfig(t *testing.T) {
	yaml := `
llm:
  type: openai
  model: gpt-4o
  temperature: 0.2
  timeout: 30
reasoning:
  primary_strategy: tree_of_thought
  fallback_strategies: [socratic, analogical]
  max_steps: 5
  exploration_breadth: 4
logging:
  level: debug
`
	cfg, err := Load([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, float32(0.2), cfg.LLM.Temperature)
	assert.Equal(t, 30, cfg.LLM.Timeout)
	assert.Equal(t, "tree_of_thought", cfg.Reasoning.PrimaryStrategy)
	assert.Equal(t, []string{"socratic", "analogical"}, cfg.Reasoning.FallbackStrategies)
	assert.Equal(t, 5, cfg.Reasoning.MaxSteps)
	assert.Equal(t, 4, cfg.Reasoning.ExplorationBreadth)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("PONDER_TEST_MODEL", "gpt-test")

	yaml := `
llm:
  model: ${PONDER_TEST_MODEL}
  host: ${PONDER_TEST_HOST:-http://localhost:8080}
`
	cfg, err := Load([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "gpt-test", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:8080", cfg.LLM.Host)
}

func TestPrimaryStrippedFromFallbacks(t *testing.T) {
	yaml := `
reasoning:
  primary_strategy: chain_of_thought
  fallback_strategies: [chain_of_thought, socratic]
`
	cfg, err := Load([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, []string{"socratic"}, cfg.Reasoning.FallbackStrategies)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unsupported provider",
			yaml: "llm:\n  type: carrier_pigeon\n",
		},
		{
			name: "duplicate fallback",
			yaml: "reasoning:\n  fallback_strategies: [socratic, socratic]\n",
		},
		{
			name: "negative max_steps",
			yaml: "reasoning:\n  max_steps: -1\n",
		},
		{
			name: "malformed yaml",
			yaml: "llm: [unbalanced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
