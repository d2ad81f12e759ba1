package llms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ponder-ai/ponder/pkg/config"
)

// OpenAIProvider implements LLM on top of the OpenAI chat completions API.
// Any OpenAI-compatible endpoint works via the host override.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

// NewOpenAIProvider creates a provider from config.
func NewOpenAIProvider(cfg config.LLMProviderConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires an api key")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Host != "" {
		clientCfg.BaseURL = cfg.Host
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     time.Duration(cfg.Timeout) * time.Second,
	}, nil
}

// Name implements LLM.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Generate implements LLM.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	slog.Debug("invoking model", "provider", "openai", "model", p.model)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrModelUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateStreaming implements StreamingLLM.
func (p *OpenAIProvider) GenerateStreaming(ctx context.Context, prompt string) (<-chan string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)

	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Stream:      true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		cancel()
		return nil, classifyError(err)
	}

	outputCh := make(chan string, 100)
	go func() {
		defer close(outputCh)
		defer cancel()
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				slog.Warn("stream interrupted", "provider", "openai", "error", err)
				return
			}
			if len(chunk.Choices) > 0 {
				outputCh <- chunk.Choices[0].Delta.Content
			}
		}
	}()

	return outputCh, nil
}

// classifyError maps transport failures onto the collaborator's sentinel
// errors so the controller can apply its retry policy.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrModelTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrModelTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
}
