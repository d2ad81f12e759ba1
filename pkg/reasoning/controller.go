package reasoning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ponder-ai/ponder/pkg/config"
	"github.com/ponder-ai/ponder/pkg/llms"
)

// Status classifies the outcome of a reasoning run.
type Status string

const (
	// StatusConcluded means a step produced an accepted conclusion.
	StatusConcluded Status = "concluded"

	// StatusIncomplete means the step budget ran out first. The result
	// carries the best available partial step and must be presented as
	// partial, never as a complete answer.
	StatusIncomplete Status = "incomplete"
)

// Result is the outcome of one reasoning run over a session.
type Result struct {
	Status Status

	// Answer is the conclusion text, or the best partial content when the
	// run is incomplete.
	Answer string

	// Step is the concluding step, or the most complete step on an
	// incomplete run. Nil only when no step was recorded at all.
	Step *ReasoningStep

	// StepsTaken is the number of steps recorded during this run.
	StepsTaken int

	// AwaitingAction is set when the run concluded and tools are
	// configured: the caller must obtain user confirmation before any
	// tool executes.
	AwaitingAction bool
}

// Controller drives the reasoning loop: select strategy, build prompt,
// invoke the model, parse output, evaluate completion. The controller itself
// is stateless across sessions; all per-conversation state lives in the
// Session it is handed.
type Controller struct {
	cfg      config.ReasoningConfig
	catalog  *Catalog
	llm      llms.LLM
	hasTools bool

	primary   StrategyID
	fallbacks []StrategyID
	markers   []string
}

// NewController validates the configured strategies against the catalog and
// returns a ready controller. Unknown strategy ids are fatal here, before
// any reasoning starts.
func NewController(cfg config.ReasoningConfig, catalog *Catalog, llm llms.LLM, hasTools bool) (*Controller, error) {
	primary := StrategyID(cfg.PrimaryStrategy)
	if _, err := catalog.Get(primary); err != nil {
		return nil, err
	}

	fallbacks := make([]StrategyID, 0, len(cfg.FallbackStrategies))
	for _, raw := range cfg.FallbackStrategies {
		id := StrategyID(raw)
		if _, err := catalog.Get(id); err != nil {
			return nil, err
		}
		fallbacks = append(fallbacks, id)
	}

	markers := make([]string, 0, len(cfg.ConfidenceMarkers))
	for _, m := range cfg.ConfidenceMarkers {
		markers = append(markers, strings.ToLower(m))
	}

	return &Controller{
		cfg:       cfg,
		catalog:   catalog,
		llm:       llm,
		hasTools:  hasTools,
		primary:   primary,
		fallbacks: fallbacks,
		markers:   markers,
	}, nil
}

// Reason runs the reasoning loop on the session until a step concludes or
// the step budget is exhausted. Each step invokes the model exactly once
// (plus at most one retry on a recoverable model failure); a step whose
// invocation fails is never recorded.
func (c *Controller) Reason(ctx context.Context, session *Session, input string) (*Result, error) {
	if session.active == "" {
		session.active = c.primary
	}

	stepsTaken := 0
	for session.NextStepIndex() < c.cfg.MaxSteps {
		stepIndex := session.NextStepIndex()

		strategy, err := c.catalog.Get(session.active)
		if err != nil {
			return nil, err
		}

		prompt := c.buildPrompt(strategy, session, input, stepIndex)

		text, err := c.invokeWithRetry(ctx, prompt, stepIndex)
		if err != nil {
			session.MarkDone()
			return c.partialResult(session, stepsTaken), &StepFailedError{Step: stepIndex, Err: err}
		}

		parsed, parseErr := ParseOutput(text, strategy)
		lowConfidence := parseErr != nil || c.signalsLowConfidence(parsed)

		complete := parseErr == nil &&
			parsed.HasConclusion() &&
			(session.active == c.primary || c.fallbacksExhausted(session))

		step := &ReasoningStep{
			Step:       stepIndex,
			Strategy:   strategy.ID,
			Sections:   parsed.Sections,
			Extra:      parsed.Extra,
			Components: parsed.Components(strategy),
			Depth:      parsed.Depth(),
			Completed:  complete,
		}
		if err := session.AppendStep(step); err != nil {
			return nil, err
		}
		if err := session.recorder.Record(step); err != nil {
			return nil, err
		}
		stepsTaken++

		slog.Debug("reasoning step recorded",
			"session", session.ID(),
			"step", stepIndex,
			"strategy", strategy.ID,
			"depth", step.Depth,
			"complete", complete,
			"low_confidence", lowConfidence)

		if complete {
			session.conclusion = parsed.Section(SectionConclusion)
			slog.Info("reasoning concluded",
				"session", session.ID(),
				"steps", stepIndex+1,
				"strategy", strategy.ID)
			return &Result{
				Status:         StatusConcluded,
				Answer:         session.conclusion,
				Step:           step,
				StepsTaken:     stepsTaken,
				AwaitingAction: c.hasTools,
			}, nil
		}

		if lowConfidence {
			c.rotate(session)
		}
	}

	// Step budget exhausted without a concluding step: soft failure with
	// the best available partial result.
	session.MarkDone()
	slog.Info("reasoning incomplete, step budget exhausted",
		"session", session.ID(),
		"max_steps", c.cfg.MaxSteps)
	return c.partialResult(session, stepsTaken), nil
}

// rotate advances the fallback rotation after a low-confidence step: the
// next unused fallback in configured order, then back to the primary for any
// remaining budget once fallbacks are exhausted.
func (c *Controller) rotate(session *Session) {
	if session.fallbackIndex < len(c.fallbacks) {
		session.active = c.fallbacks[session.fallbackIndex]
		session.fallbackIndex++
		session.usedFallback = true
	} else {
		session.active = c.primary
	}
	slog.Debug("strategy rotation", "session", session.ID(), "next_strategy", session.active)
}

func (c *Controller) fallbacksExhausted(session *Session) bool {
	return session.fallbackIndex >= len(c.fallbacks)
}

// signalsLowConfidence checks the evaluation section for the configured
// low-confidence markers, case-insensitively.
func (c *Controller) signalsLowConfidence(parsed *ParsedOutput) bool {
	evaluation := strings.ToLower(parsed.Section(SectionEvaluation))
	if evaluation == "" {
		return false
	}
	for _, marker := range c.markers {
		if strings.Contains(evaluation, marker) {
			return true
		}
	}
	return false
}

// invokeWithRetry invokes the model once and retries once with the same
// prompt on a recoverable failure. A cancelled context is never retried.
func (c *Controller) invokeWithRetry(ctx context.Context, prompt string, stepIndex int) (string, error) {
	text, err := c.llm.Generate(ctx, prompt)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	slog.Warn("model invocation failed, retrying step",
		"step", stepIndex, "provider", c.llm.Name(), "error", err)

	text, err = c.llm.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return text, nil
}

// partialResult builds the ReasoningIncomplete result: the recorded step
// with the most complete component set wins.
func (c *Controller) partialResult(session *Session, stepsTaken int) *Result {
	var best *ReasoningStep
	for _, step := range session.Steps() {
		if best == nil || step.ComponentCount() > best.ComponentCount() {
			best = step
		}
	}

	result := &Result{
		Status:     StatusIncomplete,
		Step:       best,
		StepsTaken: stepsTaken,
	}
	if best != nil {
		result.Answer = bestAnswerText(best)
	}
	return result
}

// bestAnswerText picks the most conclusive content a partial step offers.
func bestAnswerText(step *ReasoningStep) string {
	for _, tag := range []string{SectionConclusion, SectionEvaluation, SectionProcess, SectionQuestion} {
		if content := strings.TrimSpace(step.Sections[tag]); content != "" {
			return content
		}
	}
	return ""
}

// buildPrompt combines the strategy guidance, the chronological reasoning
// history, budget hints for branching strategies, the minimum-alternatives
// requirement, and per-step steering into one prompt.
func (c *Controller) buildPrompt(strategy *Strategy, session *Session, input string, stepIndex int) string {
	var sb strings.Builder

	if session.usedFallback && strategy.ID != c.primary {
		sb.WriteString(multiStrategyGuidance(strategy, c.primary))
	} else {
		sb.WriteString(strategy.Guidance)
	}
	sb.WriteString("\n\n")

	if strategy.Branching {
		depthUsed := c.branchingDepthUsed(session)
		remaining := c.cfg.MaxReasoningDepth - depthUsed
		if remaining < 1 {
			remaining = 1
		}
		fmt.Fprintf(&sb, "Explore at most %d branches per step and keep branch depth within %d more level(s).\n",
			c.cfg.ExplorationBreadth, remaining)
	}

	if strategy.WantsAlternatives {
		fmt.Fprintf(&sb, "Consider at least %d alternative approaches in your alternatives section.\n",
			c.cfg.MinAlternatives)
	}

	if history := formatHistory(session.Steps()); history != "" {
		sb.WriteString("\nYour reasoning so far, in order:\n")
		sb.WriteString(history)
		sb.WriteString("\n")
	}

	if guidance := stepGuidance(strategy, stepIndex, c.cfg.MaxSteps, session.usedFallback); guidance != "" {
		sb.WriteString("\n")
		sb.WriteString(guidance)
		sb.WriteString("\n")
	}

	sb.WriteString("\nQuestion: ")
	sb.WriteString(input)
	sb.WriteString("\n\nRespond using the tagged reasoning format above.")
	return sb.String()
}

// branchingDepthUsed counts prior steps taken under a branching strategy.
func (c *Controller) branchingDepthUsed(session *Session) int {
	used := 0
	for _, step := range session.Steps() {
		if s, err := c.catalog.Get(step.Strategy); err == nil && s.Branching {
			used++
		}
	}
	return used
}

// formatHistory renders prior steps chronologically for the next prompt.
func formatHistory(steps []*ReasoningStep) string {
	var sb strings.Builder
	for _, step := range steps {
		fmt.Fprintf(&sb, "[Step %d, %s]\n", step.Step, step.Strategy)
		for _, tag := range BaseSections {
			if content := strings.TrimSpace(step.Sections[tag]); content != "" {
				fmt.Fprintf(&sb, "%s: %s\n", tag, content)
			}
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
