// Package llms defines the model collaborator contract and its providers.
//
// The reasoning core treats the model as a black box: prompt in, text out.
// Providers translate that contract onto a concrete API.
package llms

import (
	"context"
	"errors"
)

// Sentinel errors for model invocation failures. Both are recoverable from
// the controller's point of view: the step is retried once with the same
// prompt before surfacing as a step failure.
var (
	// ErrModelUnavailable indicates the provider could not be reached or
	// refused the request.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrModelTimeout indicates the invocation exceeded its deadline.
	ErrModelTimeout = errors.New("model timeout")
)

// LLM is the minimal model collaborator contract.
type LLM interface {
	// Generate invokes the model once with the given prompt and returns the
	// complete response text. Errors wrap ErrModelUnavailable or
	// ErrModelTimeout where the cause is known.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider for logging.
	Name() string
}

// StreamingLLM is an optional extension for providers that stream chunks.
// The reasoning core has no streaming contract; Accumulate collects a stream
// into the complete text the parser expects.
type StreamingLLM interface {
	LLM

	// GenerateStreaming invokes the model and returns a channel of text
	// chunks. The channel is closed when the response is complete.
	GenerateStreaming(ctx context.Context, prompt string) (<-chan string, error)
}

// Accumulate drains a chunk stream into a single response text.
func Accumulate(ch <-chan string) string {
	var out []byte
	for chunk := range ch {
		out = append(out, chunk...)
	}
	return string(out)
}
