// Package reasoning implements multi-strategy reasoning orchestration.
//
// The package drives a strict step loop: select strategy, build prompt,
// invoke the model, parse the tagged output, evaluate completion. Seven fixed
// reasoning strategies share one structured-output contract; a per-session
// trace records which strategies and output components each step produced.
package reasoning

import (
	"fmt"
)

// StrategyID identifies one of the seven fixed reasoning strategies.
type StrategyID string

const (
	StrategyChainOfThought  StrategyID = "chain_of_thought"
	StrategyTreeOfThought   StrategyID = "tree_of_thought"
	StrategySocratic        StrategyID = "socratic"
	StrategyFirstPrinciples StrategyID = "first_principles"
	StrategyAnalogical      StrategyID = "analogical"
	StrategyCounterfactual  StrategyID = "counterfactual"
	StrategyStepBack        StrategyID = "step_back"
)

// Base section tags shared by every strategy's output contract.
const (
	SectionQuestion     = "question"
	SectionStrategy     = "strategy"
	SectionProcess      = "process"
	SectionAlternatives = "alternatives"
	SectionEvaluation   = "evaluation"
	SectionConclusion   = "conclusion"
)

// BaseSections lists the shared section tags in contract order. The derived
// depth of a step is the number of these present in its output.
var BaseSections = []string{
	SectionQuestion,
	SectionStrategy,
	SectionProcess,
	SectionAlternatives,
	SectionEvaluation,
	SectionConclusion,
}

// Strategy is the immutable template metadata for one strategy id.
type Strategy struct {
	// ID is the strategy identifier.
	ID StrategyID

	// Required lists section tags that must appear in every step output
	// produced under this strategy. Always includes conclusion.
	Required []string

	// Optional lists section tags that may appear, including the
	// strategy-specific sub-tags nested inside process.
	Optional []string

	// Guidance is the opaque prompt template for this strategy.
	Guidance string

	// Branching marks tree-style strategies that need depth/breadth hints.
	Branching bool

	// WantsAlternatives marks strategies with a minimum-alternatives
	// requirement surfaced in the prompt.
	WantsAlternatives bool
}

// HasSection reports whether tag belongs to the strategy's known
// (required or optional) section set.
func (s *Strategy) HasSection(tag string) bool {
	for _, t := range s.Required {
		if t == tag {
			return true
		}
	}
	for _, t := range s.Optional {
		if t == tag {
			return true
		}
	}
	return false
}

// Catalog is the static registry of the seven strategies. It is read-only
// after construction and safe to share across sessions.
type Catalog struct {
	strategies map[StrategyID]*Strategy
}

// NewCatalog builds the catalog of all seven strategies.
func NewCatalog() *Catalog {
	required := []string{SectionQuestion, SectionStrategy, SectionProcess, SectionConclusion}
	baseOptional := []string{SectionAlternatives, SectionEvaluation}

	withSubTags := func(subTags ...string) []string {
		out := append([]string(nil), baseOptional...)
		return append(out, subTags...)
	}

	strategies := []*Strategy{
		{
			ID:                StrategyChainOfThought,
			Required:          required,
			Optional:          withSubTags(),
			Guidance:          chainOfThoughtGuidance,
			WantsAlternatives: false,
		},
		{
			ID:                StrategyTreeOfThought,
			Required:          required,
			Optional:          withSubTags("branch", "branch_selection"),
			Guidance:          treeOfThoughtGuidance,
			Branching:         true,
			WantsAlternatives: true,
		},
		{
			ID:       StrategySocratic,
			Required: required,
			Optional: withSubTags("inquiry", "synthesis"),
			Guidance: socraticGuidance,
		},
		{
			ID:       StrategyFirstPrinciples,
			Required: required,
			Optional: withSubTags("axioms", "decomposition", "reconstruction"),
			Guidance: firstPrinciplesGuidance,
		},
		{
			ID:                StrategyAnalogical,
			Required:          required,
			Optional:          withSubTags("problem_analysis", "analogy", "synthesis"),
			Guidance:          analogicalGuidance,
			WantsAlternatives: true,
		},
		{
			ID:       StrategyCounterfactual,
			Required: required,
			Optional: withSubTags("baseline", "counterfactual", "synthesis"),
			Guidance: counterfactualGuidance,
		},
		{
			ID:       StrategyStepBack,
			Required: required,
			Optional: withSubTags("initial_framing", "step_back", "reframing", "solution_approach"),
			Guidance: stepBackGuidance,
		},
	}

	byID := make(map[StrategyID]*Strategy, len(strategies))
	for _, s := range strategies {
		byID[s.ID] = s
	}
	return &Catalog{strategies: byID}
}

// Get returns the strategy for the given id.
func (c *Catalog) Get(id StrategyID) (*Strategy, error) {
	s, ok := c.strategies[id]
	if !ok {
		return nil, &UnknownStrategyError{ID: id}
	}
	return s, nil
}

// RequiredSections returns the required section tags for a strategy id.
func (c *Catalog) RequiredSections(id StrategyID) ([]string, error) {
	s, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), s.Required...), nil
}

// OptionalSections returns the optional section tags for a strategy id.
func (c *Catalog) OptionalSections(id StrategyID) ([]string, error) {
	s, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), s.Optional...), nil
}

// IDs returns all strategy ids in a stable order.
func (c *Catalog) IDs() []StrategyID {
	return []StrategyID{
		StrategyChainOfThought,
		StrategyTreeOfThought,
		StrategySocratic,
		StrategyFirstPrinciples,
		StrategyAnalogical,
		StrategyCounterfactual,
		StrategyStepBack,
	}
}

// UnknownStrategyError reports a strategy id outside the seven fixed values.
// It is fatal at construction time: configs naming unknown strategies are
// rejected before any reasoning starts.
type UnknownStrategyError struct {
	ID StrategyID
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown reasoning strategy: %q", string(e.ID))
}
