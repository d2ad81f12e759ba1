// Package agent wires the reasoning controller and the external tool
// executor into the two-phase protocol: reason first, then act only after an
// explicit user confirmation.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ponder-ai/ponder/pkg/config"
	"github.com/ponder-ai/ponder/pkg/llms"
	"github.com/ponder-ai/ponder/pkg/reasoning"
	"github.com/ponder-ai/ponder/pkg/tools"
)

// confirmationPrompt is returned when reasoning concludes and tools are
// available: no tool runs until the user says so.
const confirmationPrompt = "Based on my reasoning above, would you like me to take any actions? " +
	"I can use tools to help implement the conclusion or gather more information."

// clarifyPrompt is returned for ambiguous confirmation-phase input.
const clarifyPrompt = "Would you like me to take action based on my reasoning? " +
	"Please answer 'yes' to proceed, or describe what to explore instead."

// Response is what the coordinator surfaces for one input.
type Response struct {
	// SessionID identifies the session the response belongs to.
	SessionID string

	// Phase is the session phase after handling the input.
	Phase reasoning.Phase

	// Text is the user-facing output: a conclusion, a labeled partial
	// result, a confirmation prompt, or a tool execution result.
	Text string

	// AwaitingConfirmation is set when the next input decides whether the
	// action phase runs.
	AwaitingConfirmation bool

	// Partial marks results from an incomplete reasoning run. Partial
	// output is always labeled, never presented as a complete answer.
	Partial bool
}

// Coordinator holds phase state across separate invocations and delegates to
// the reasoning controller or the action executor depending on the phase.
// One coordinator serves one conversation; independent conversations get
// independent coordinators.
type Coordinator struct {
	controller *reasoning.Controller
	registry   *tools.Registry
	executor   tools.Executor

	session  *reasoning.Session
	archived []*reasoning.Session

	// lastInstruction is the most recent user input, forwarded to the
	// executor together with the conclusion when action is confirmed.
	lastInstruction string
}

// New builds a coordinator from config and collaborators. The registry may
// be empty; then conclusions end sessions directly with no action phase.
// The executor may be nil only when the registry is empty.
func New(cfg config.ReasoningConfig, llm llms.LLM, registry *tools.Registry, executor tools.Executor) (*Coordinator, error) {
	if registry == nil {
		registry = tools.NewRegistry()
	}
	if registry.Len() > 0 && executor == nil {
		return nil, fmt.Errorf("tools are configured but no executor was provided")
	}

	controller, err := reasoning.NewController(cfg, reasoning.NewCatalog(), llm, registry.Len() > 0)
	if err != nil {
		return nil, err
	}

	return &Coordinator{
		controller: controller,
		registry:   registry,
		executor:   executor,
	}, nil
}

// Session returns the current session (nil before the first input).
func (c *Coordinator) Session() *reasoning.Session {
	return c.session
}

// Archived returns sessions replaced by refinements, traces intact.
func (c *Coordinator) Archived() []*reasoning.Session {
	out := make([]*reasoning.Session, len(c.archived))
	copy(out, c.archived)
	return out
}

// Handle processes one user input according to the current phase.
func (c *Coordinator) Handle(ctx context.Context, input string) (*Response, error) {
	if c.session == nil || c.session.Done() {
		c.startSession()
	}

	switch c.session.Phase() {
	case reasoning.PhaseReasoning:
		return c.reason(ctx, input)

	case reasoning.PhaseAwaitingConfirmation:
		switch classifyConfirmation(input) {
		case confirmAffirmative:
			return c.act(ctx, input)
		case confirmAmbiguous:
			return &Response{
				SessionID:            c.session.ID(),
				Phase:                c.session.Phase(),
				Text:                 clarifyPrompt,
				AwaitingConfirmation: true,
			}, nil
		default:
			// A refinement or new instruction: the old session is
			// archived and a fresh one starts, so step numbering
			// never merges across sessions.
			slog.Info("confirmation declined, starting fresh session",
				"previous_session", c.session.ID())
			c.startSession()
			return c.reason(ctx, input)
		}

	default: // reasoning.PhaseAction is terminal for the session
		c.startSession()
		return c.reason(ctx, input)
	}
}

// startSession archives the current session, if any, and begins a new one.
func (c *Coordinator) startSession() {
	if c.session != nil {
		c.archived = append(c.archived, c.session)
	}
	c.session = reasoning.NewSession()
	slog.Debug("session started", "session", c.session.ID())
}

// reason delegates to the controller and maps its result onto the phase
// protocol.
func (c *Coordinator) reason(ctx context.Context, input string) (*Response, error) {
	c.lastInstruction = input

	result, err := c.controller.Reason(ctx, c.session, input)
	if err != nil {
		resp := &Response{
			SessionID: c.session.ID(),
			Phase:     c.session.Phase(),
			Partial:   true,
		}
		if result != nil && result.Answer != "" {
			resp.Text = fmt.Sprintf("Reasoning failed; partial result so far:\n%s", result.Answer)
		}
		return resp, err
	}

	if result.Status == reasoning.StatusIncomplete {
		text := fmt.Sprintf("Reasoning incomplete: step budget exhausted after %d step(s).", result.StepsTaken)
		if result.Answer != "" {
			text += "\nBest partial result:\n" + result.Answer
		}
		return &Response{
			SessionID: c.session.ID(),
			Phase:     c.session.Phase(),
			Text:      text,
			Partial:   true,
		}, nil
	}

	if result.AwaitingAction {
		if err := c.session.AwaitConfirmation(); err != nil {
			return nil, err
		}
		return &Response{
			SessionID:            c.session.ID(),
			Phase:                c.session.Phase(),
			Text:                 result.Answer + "\n\n" + confirmationPrompt,
			AwaitingConfirmation: true,
		}, nil
	}

	// Concluded with no tools configured: the session ends here.
	if err := c.session.BeginAction(); err != nil {
		return nil, err
	}
	c.session.MarkDone()
	return &Response{
		SessionID: c.session.ID(),
		Phase:     c.session.Phase(),
		Text:      result.Answer,
	}, nil
}

// act hands the accumulated conclusion plus the confirming instruction to
// the external executor. The executor's output or error is forwarded
// verbatim; the session is terminal either way.
func (c *Coordinator) act(ctx context.Context, input string) (*Response, error) {
	if err := c.session.BeginAction(); err != nil {
		return nil, err
	}
	c.session.MarkDone()

	task := fmt.Sprintf("Original request: %s\n\nConclusion from reasoning:\n%s\n\nUser instruction: %s",
		c.lastInstruction, c.session.Conclusion(), input)

	slog.Info("executing action phase",
		"session", c.session.ID(), "tools", c.registry.Len())

	output, err := c.executor.Execute(ctx, task, c.registry.List())
	resp := &Response{
		SessionID: c.session.ID(),
		Phase:     c.session.Phase(),
		Text:      output,
	}
	if err != nil {
		return resp, err
	}
	return resp, nil
}
