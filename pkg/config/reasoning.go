package config

import (
	"fmt"
)

// Default reasoning budgets. MaxSteps is a safety limit, not the primary
// termination condition: the loop normally ends when a step concludes.
const (
	DefaultMaxSteps           = 3
	DefaultMaxReasoningDepth  = 3
	DefaultExplorationBreadth = 3
	DefaultMinAlternatives    = 2
)

// DefaultConfidenceMarkers are the phrases that, when present in a step's
// evaluation section, signal the model could not adequately proceed under the
// current strategy and trigger fallback rotation.
var DefaultConfidenceMarkers = []string{
	"low confidence",
	"cannot determine",
	"insufficient information",
	"unable to proceed",
}

// ReasoningConfig controls the multi-step reasoning loop.
type ReasoningConfig struct {
	// PrimaryStrategy is the strategy used for step 0. Required.
	PrimaryStrategy string `yaml:"primary_strategy"`

	// FallbackStrategies are rotated to, in order, when a step signals low
	// confidence under the active strategy. May be empty.
	FallbackStrategies []string `yaml:"fallback_strategies,omitempty"`

	// MaxSteps bounds the number of reasoning steps per session.
	MaxSteps int `yaml:"max_steps,omitempty"`

	// MaxReasoningDepth bounds branch depth for tree-style strategies.
	MaxReasoningDepth int `yaml:"max_reasoning_depth,omitempty"`

	// ExplorationBreadth bounds the number of branches explored per step for
	// tree-style strategies.
	ExplorationBreadth int `yaml:"exploration_breadth,omitempty"`

	// MinAlternatives is the minimum number of alternative approaches the
	// model is asked to consider where the strategy calls for them.
	MinAlternatives int `yaml:"min_alternatives,omitempty"`

	// ConfidenceMarkers override the phrases treated as low-confidence
	// signals in a step's evaluation section.
	ConfidenceMarkers []string `yaml:"confidence_markers,omitempty"`
}

// SetDefaults fills in default budgets. PrimaryStrategy has a default so that
// zero-config startup works; Validate still rejects unknown ids.
func (c *ReasoningConfig) SetDefaults() {
	if c.PrimaryStrategy == "" {
		c.PrimaryStrategy = "chain_of_thought"
	}
	if c.MaxSteps == 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	if c.MaxReasoningDepth == 0 {
		c.MaxReasoningDepth = DefaultMaxReasoningDepth
	}
	if c.ExplorationBreadth == 0 {
		c.ExplorationBreadth = DefaultExplorationBreadth
	}
	if c.MinAlternatives == 0 {
		c.MinAlternatives = DefaultMinAlternatives
	}
	if len(c.ConfidenceMarkers) == 0 {
		c.ConfidenceMarkers = append([]string(nil), DefaultConfidenceMarkers...)
	}

	// The primary strategy never appears in its own fallback list.
	fallbacks := c.FallbackStrategies[:0]
	for _, s := range c.FallbackStrategies {
		if s != c.PrimaryStrategy {
			fallbacks = append(fallbacks, s)
		}
	}
	c.FallbackStrategies = fallbacks
}

// Validate checks budget invariants. Strategy ids are validated against the
// catalog at controller construction, not here, to keep config free of the
// reasoning package.
func (c *ReasoningConfig) Validate() error {
	if c.PrimaryStrategy == "" {
		return fmt.Errorf("primary_strategy is required")
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be >= 1, got %d", c.MaxSteps)
	}
	if c.MaxReasoningDepth < 1 {
		return fmt.Errorf("max_reasoning_depth must be >= 1, got %d", c.MaxReasoningDepth)
	}
	if c.ExplorationBreadth < 1 {
		return fmt.Errorf("exploration_breadth must be >= 1, got %d", c.ExplorationBreadth)
	}
	if c.MinAlternatives < 1 {
		return fmt.Errorf("min_alternatives must be >= 1, got %d", c.MinAlternatives)
	}
	seen := map[string]bool{}
	for _, s := range c.FallbackStrategies {
		if seen[s] {
			return fmt.Errorf("duplicate fallback strategy: %s", s)
		}
		seen[s] = true
	}
	return nil
}
