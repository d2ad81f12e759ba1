package reasoning

// TraceEntry is the read-only analytics projection of one reasoning step.
type TraceEntry struct {
	Step           int
	StrategiesUsed []StrategyID
	Components     map[string]bool
	Depth          int
}

// TraceRecorder records one entry per reasoning step and answers read-only
// analytics queries. Each session owns its own recorder; nothing is shared
// across sessions.
type TraceRecorder struct {
	entries []TraceEntry
	seen    map[int]bool
}

// NewTraceRecorder creates an empty recorder.
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{
		seen: make(map[int]bool),
	}
}

// Record appends a trace entry derived from the given step. Recording the
// same step index twice is a contract violation.
func (r *TraceRecorder) Record(step *ReasoningStep) error {
	if r.seen[step.Step] {
		return &DuplicateStepError{Step: step.Step}
	}
	r.seen[step.Step] = true
	r.entries = append(r.entries, TraceEntry{
		Step:           step.Step,
		StrategiesUsed: step.StrategiesUsed(),
		Components:     step.Components,
		Depth:          step.Depth,
	})
	return nil
}

// History returns all recorded entries in step order.
func (r *TraceRecorder) History() []TraceEntry {
	out := make([]TraceEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Reset clears the recorder for a new, unrelated session.
func (r *TraceRecorder) Reset() {
	r.entries = nil
	r.seen = make(map[int]bool)
}

// StrategyUsage counts how many recorded steps used each strategy.
func (r *TraceRecorder) StrategyUsage() map[StrategyID]int {
	usage := make(map[StrategyID]int)
	for _, entry := range r.entries {
		for _, id := range entry.StrategiesUsed {
			usage[id]++
		}
	}
	return usage
}

// ComponentCoverage counts, per section tag, how many recorded steps
// produced that component.
func (r *TraceRecorder) ComponentCoverage() map[string]int {
	coverage := make(map[string]int)
	for _, entry := range r.entries {
		for tag, present := range entry.Components {
			if present {
				coverage[tag]++
			}
		}
	}
	return coverage
}

// MaxDepth returns the deepest recorded step (0 when no steps recorded).
func (r *TraceRecorder) MaxDepth() int {
	max := 0
	for _, entry := range r.entries {
		if entry.Depth > max {
			max = entry.Depth
		}
	}
	return max
}
