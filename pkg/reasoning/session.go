package reasoning

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Phase is the lifecycle stage of a reasoning session. Transitions only move
// forward: REASONING → AWAITING_CONFIRMATION → ACTION, or REASONING → ACTION
// directly when no tools are configured.
type Phase string

const (
	PhaseReasoning            Phase = "REASONING"
	PhaseAwaitingConfirmation Phase = "AWAITING_CONFIRMATION"
	PhaseAction               Phase = "ACTION"
)

// ReasoningStep is one completed loop iteration: one model invocation plus
// its parsed structured output. Immutable once recorded.
type ReasoningStep struct {
	// Step is the monotonic step index, starting at 0.
	Step int

	// Strategy is the strategy the step ran under.
	Strategy StrategyID

	// Sections maps known tags to their content for this step.
	Sections map[string]string

	// Extra holds tags the active strategy did not declare.
	Extra map[string]string

	// Components records presence per known tag (plus extras).
	Components map[string]bool

	// Depth is the derived depth: base sections present in the output.
	Depth int

	// Completed marks the step that concluded the reasoning phase.
	Completed bool
}

// StrategiesUsed returns the strategies evidenced by this step: the active
// strategy plus any strategy id the model named in its strategy section.
func (s *ReasoningStep) StrategiesUsed() []StrategyID {
	used := []StrategyID{s.Strategy}
	declared := strings.ToLower(s.Sections[SectionStrategy])
	for _, id := range allStrategyIDs {
		if id != s.Strategy && strings.Contains(declared, string(id)) {
			used = append(used, id)
		}
	}
	return used
}

var allStrategyIDs = []StrategyID{
	StrategyChainOfThought,
	StrategyTreeOfThought,
	StrategySocratic,
	StrategyFirstPrinciples,
	StrategyAnalogical,
	StrategyCounterfactual,
	StrategyStepBack,
}

// ComponentCount returns how many components the step produced. Used to pick
// the best partial step when the budget runs out.
func (s *ReasoningStep) ComponentCount() int {
	count := 0
	for _, present := range s.Components {
		if present {
			count++
		}
	}
	return count
}

// Session holds the state of one reasoning conversation: the ordered steps,
// the current phase, the per-session trace, and the fallback rotation state.
// A session is owned by exactly one caller; independent sessions share
// nothing mutable.
type Session struct {
	id       string
	phase    Phase
	steps    []*ReasoningStep
	recorder *TraceRecorder

	// conclusion accumulates once a step concludes the reasoning phase.
	conclusion string

	// done marks the session terminal (conclusion delivered, action run,
	// budget exhausted, or step failure). Further input starts fresh.
	done bool

	// Fallback rotation state, managed by the controller.
	active        StrategyID
	fallbackIndex int
	usedFallback  bool
}

// NewSession creates a fresh session in the reasoning phase.
func NewSession() *Session {
	return &Session{
		id:       uuid.NewString(),
		phase:    PhaseReasoning,
		recorder: NewTraceRecorder(),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Recorder returns the session-owned trace recorder.
func (s *Session) Recorder() *TraceRecorder { return s.recorder }

// Steps returns the recorded steps in order.
func (s *Session) Steps() []*ReasoningStep {
	out := make([]*ReasoningStep, len(s.steps))
	copy(out, s.steps)
	return out
}

// NextStepIndex returns the index the next step will use.
func (s *Session) NextStepIndex() int { return len(s.steps) }

// AppendStep adds a step, enforcing the strictly-increasing gap-free step
// sequence invariant.
func (s *Session) AppendStep(step *ReasoningStep) error {
	if step.Step != len(s.steps) {
		return fmt.Errorf("step index %d out of sequence, want %d", step.Step, len(s.steps))
	}
	s.steps = append(s.steps, step)
	return nil
}

// Conclusion returns the reasoning conclusion once available.
func (s *Session) Conclusion() string { return s.conclusion }

// Done reports whether the session is terminal.
func (s *Session) Done() bool { return s.done }

// MarkDone makes the session terminal.
func (s *Session) MarkDone() { s.done = true }

// AwaitConfirmation moves REASONING → AWAITING_CONFIRMATION.
func (s *Session) AwaitConfirmation() error {
	if s.phase != PhaseReasoning {
		return fmt.Errorf("cannot await confirmation from phase %s", s.phase)
	}
	s.phase = PhaseAwaitingConfirmation
	return nil
}

// BeginAction moves AWAITING_CONFIRMATION → ACTION, or REASONING → ACTION
// directly when no tools are configured. Never moves backward.
func (s *Session) BeginAction() error {
	switch s.phase {
	case PhaseReasoning, PhaseAwaitingConfirmation:
		s.phase = PhaseAction
		return nil
	default:
		return fmt.Errorf("cannot begin action from phase %s", s.phase)
	}
}
