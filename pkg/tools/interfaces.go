// Package tools defines the tool-execution collaborator contracts.
//
// The reasoning core never executes or interprets tools itself; it only
// needs their capability surface (name, input schema, invoke) and a way to
// hand a concluded task to an external executor after user confirmation.
package tools

import (
	"context"
)

// ToolCapability describes a single tool the action phase may use.
type ToolCapability interface {
	// GetName returns the tool's unique name.
	GetName() string

	// GetDescription returns a human-readable description.
	GetDescription() string

	// GetInputSchema returns the JSON-schema-shaped argument description.
	GetInputSchema() map[string]interface{}

	// Execute invokes the tool and returns its raw text result.
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

// Executor is the external action collaborator. It receives the accumulated
// reasoning conclusion plus the user's latest instruction as the task text,
// along with the capabilities it may use. The result is forwarded verbatim.
type Executor interface {
	Execute(ctx context.Context, task string, capabilities []ToolCapability) (string, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, task string, capabilities []ToolCapability) (string, error)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, task string, capabilities []ToolCapability) (string, error) {
	return f(ctx, task, capabilities)
}
