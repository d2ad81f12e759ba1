package llms

import (
	"context"
	"errors"
	"testing"

	"github.com/ponder-ai/ponder/pkg/config"
)

func testLLMConfig() config.LLMProviderConfig {
	return config.LLMProviderConfig{
		Type:    config.ProviderOpenAI,
		Model:   "gpt-4o-mini",
		APIKey:  "test-key",
		Timeout: 5,
	}
}

func TestAccumulate(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "par"
	ch <- "tial "
	ch <- "answer"
	close(ch)

	if got := Accumulate(ch); got != "partial answer" {
		t.Errorf("Accumulate = %q", got)
	}
}

func TestClassifyError(t *testing.T) {
	if err := classifyError(context.DeadlineExceeded); !errors.Is(err, ErrModelTimeout) {
		t.Errorf("deadline exceeded should map to ErrModelTimeout, got %v", err)
	}
	if err := classifyError(errors.New("connection refused")); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("generic failure should map to ErrModelUnavailable, got %v", err)
	}
}

func TestNewProviderRejectsUnknownType(t *testing.T) {
	cfg := testLLMConfig()
	cfg.Type = "carrier_pigeon"
	if _, err := NewProvider(cfg); err == nil {
		t.Error("unknown provider type should be rejected")
	}
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	cfg := testLLMConfig()
	cfg.APIKey = ""
	if _, err := NewOpenAIProvider(cfg); err == nil {
		t.Error("missing api key should be rejected")
	}
}
