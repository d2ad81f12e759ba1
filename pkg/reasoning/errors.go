package reasoning

import (
	"fmt"
	"strings"
)

// MissingRequiredSectionError reports that a step's output lacked one or more
// sections the active strategy requires. Recoverable: the controller treats
// it as a low-confidence signal and rotates to the next fallback strategy.
type MissingRequiredSectionError struct {
	Strategy StrategyID
	Missing  []string
}

func (e *MissingRequiredSectionError) Error() string {
	return fmt.Sprintf("output for strategy %s missing required sections: %s",
		e.Strategy, strings.Join(e.Missing, ", "))
}

// DuplicateStepError reports an attempt to record the same step index twice.
// This is a programming-contract violation, not a runtime condition.
type DuplicateStepError struct {
	Step int
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("step %d already recorded", e.Step)
}

// StepFailedError reports that a step's model invocation failed twice
// (initial attempt plus one retry). The session ends with a partial trace.
type StepFailedError struct {
	Step int
	Err  error
}

func (e *StepFailedError) Error() string {
	return fmt.Sprintf("reasoning step %d failed: %v", e.Step, e.Err)
}

func (e *StepFailedError) Unwrap() error {
	return e.Err
}
