package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponder-ai/ponder/pkg/config"
	"github.com/ponder-ai/ponder/pkg/reasoning"
	"github.com/ponder-ai/ponder/pkg/tools"
)

// staticLLM returns the same response on every call.
type staticLLM struct {
	text  string
	calls int
}

func (m *staticLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.text, nil
}

func (m *staticLLM) Name() string { return "static" }

// countingExecutor records every task it receives.
type countingExecutor struct {
	tasks  []string
	output string
	err    error
}

func (e *countingExecutor) Execute(ctx context.Context, task string, capabilities []tools.ToolCapability) (string, error) {
	e.tasks = append(e.tasks, task)
	return e.output, e.err
}

type stubTool struct{ name string }

func (t *stubTool) GetName() string        { return t.name }
func (t *stubTool) GetDescription() string { return "stub tool" }
func (t *stubTool) GetInputSchema() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (t *stubTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return "", nil
}

func concludingOutput(conclusion string) string {
	return fmt.Sprintf(`<reasoning>
<question>q</question>
<strategy>chain_of_thought</strategy>
<process>p</process>
<conclusion>%s</conclusion>
</reasoning>`, conclusion)
}

func incompleteOutput() string {
	return `<reasoning>
<question>q</question>
<strategy>chain_of_thought</strategy>
<process>still going</process>
</reasoning>`
}

func reasoningConfig(maxSteps int) config.ReasoningConfig {
	cfg := config.ReasoningConfig{
		PrimaryStrategy: "chain_of_thought",
		MaxSteps:        maxSteps,
	}
	cfg.SetDefaults()
	return cfg
}

func toolRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	registry := tools.NewRegistry()
	require.NoError(t, registry.Register(&stubTool{name: "search"}))
	return registry
}

func TestNewRequiresExecutorWhenToolsConfigured(t *testing.T) {
	llm := &staticLLM{text: concludingOutput("c")}
	_, err := New(reasoningConfig(3), llm, toolRegistry(t), nil)
	require.Error(t, err)
}

func TestConclusionWithToolsAwaitsConfirmation(t *testing.T) {
	llm := &staticLLM{text: concludingOutput("Refactor the cache layer.")}
	executor := &countingExecutor{output: "executed"}
	coordinator, err := New(reasoningConfig(3), llm, toolRegistry(t), executor)
	require.NoError(t, err)

	resp, err := coordinator.Handle(context.Background(), "should we refactor?")
	require.NoError(t, err)

	assert.True(t, resp.AwaitingConfirmation)
	assert.Equal(t, reasoning.PhaseAwaitingConfirmation, resp.Phase)
	assert.Contains(t, resp.Text, "Refactor the cache layer.")
	assert.Contains(t, resp.Text, "would you like me to take any actions")
	assert.Empty(t, executor.tasks, "no tool may run before confirmation")
}

func TestAffirmativeConfirmationRunsExecutorOnce(t *testing.T) {
	llm := &staticLLM{text: concludingOutput("Refactor the cache layer.")}
	executor := &countingExecutor{output: "refactoring plan written"}
	coordinator, err := New(reasoningConfig(3), llm, toolRegistry(t), executor)
	require.NoError(t, err)

	_, err = coordinator.Handle(context.Background(), "should we refactor?")
	require.NoError(t, err)

	resp, err := coordinator.Handle(context.Background(), "Yes!")
	require.NoError(t, err)

	require.Len(t, executor.tasks, 1)
	assert.Contains(t, executor.tasks[0], "should we refactor?")
	assert.Contains(t, executor.tasks[0], "Refactor the cache layer.")
	assert.Equal(t, "refactoring plan written", resp.Text)
	assert.Equal(t, reasoning.PhaseAction, resp.Phase)
	assert.True(t, coordinator.Session().Done())
}

func TestAmbiguousConfirmationReprompts(t *testing.T) {
	llm := &staticLLM{text: concludingOutput("c")}
	executor := &countingExecutor{}
	coordinator, err := New(reasoningConfig(3), llm, toolRegistry(t), executor)
	require.NoError(t, err)

	_, err = coordinator.Handle(context.Background(), "q")
	require.NoError(t, err)

	resp, err := coordinator.Handle(context.Background(), "maybe")
	require.NoError(t, err)

	assert.True(t, resp.AwaitingConfirmation)
	assert.Equal(t, reasoning.PhaseAwaitingConfirmation, resp.Phase)
	assert.Contains(t, resp.Text, "yes")
	assert.Empty(t, executor.tasks)

	// Still confirmable after the re-prompt.
	resp, err = coordinator.Handle(context.Background(), "ok")
	require.NoError(t, err)
	assert.Len(t, executor.tasks, 1)
	assert.Equal(t, reasoning.PhaseAction, resp.Phase)
}

func TestRefinementStartsFreshSession(t *testing.T) {
	llm := &staticLLM{text: concludingOutput("c")}
	executor := &countingExecutor{}
	coordinator, err := New(reasoningConfig(3), llm, toolRegistry(t), executor)
	require.NoError(t, err)

	_, err = coordinator.Handle(context.Background(), "q")
	require.NoError(t, err)
	firstID := coordinator.Session().ID()

	resp, err := coordinator.Handle(context.Background(), "what about using a queue instead")
	require.NoError(t, err)

	assert.Empty(t, executor.tasks, "a refinement never triggers the action phase")
	assert.NotEqual(t, firstID, coordinator.Session().ID())
	assert.True(t, resp.AwaitingConfirmation, "the refinement reasons again and concludes")

	// Step numbering restarts in the new session.
	steps := coordinator.Session().Steps()
	require.NotEmpty(t, steps)
	assert.Equal(t, 0, steps[0].Step)

	// The replaced session is archived with its trace intact.
	archived := coordinator.Archived()
	require.Len(t, archived, 1)
	assert.Equal(t, firstID, archived[0].ID())
	assert.Len(t, archived[0].Recorder().History(), 1)
}

func TestNoToolsConcludesDirectly(t *testing.T) {
	llm := &staticLLM{text: concludingOutput("The answer is 4.")}
	coordinator, err := New(reasoningConfig(3), llm, tools.NewRegistry(), nil)
	require.NoError(t, err)

	resp, err := coordinator.Handle(context.Background(), "what is 2+2?")
	require.NoError(t, err)

	assert.False(t, resp.AwaitingConfirmation)
	assert.Equal(t, reasoning.PhaseAction, resp.Phase)
	assert.Equal(t, "The answer is 4.", resp.Text)
	assert.True(t, coordinator.Session().Done())

	// The next input starts a fresh session.
	_, err = coordinator.Handle(context.Background(), "and 3+3?")
	require.NoError(t, err)
	assert.Len(t, coordinator.Archived(), 1)
}

func TestIncompleteReasoningIsLabeledPartial(t *testing.T) {
	llm := &staticLLM{text: incompleteOutput()}
	coordinator, err := New(reasoningConfig(1), llm, tools.NewRegistry(), nil)
	require.NoError(t, err)

	resp, err := coordinator.Handle(context.Background(), "q")
	require.NoError(t, err)

	assert.True(t, resp.Partial)
	assert.True(t, strings.Contains(resp.Text, "Reasoning incomplete"), resp.Text)
	assert.Contains(t, resp.Text, "still going")
	assert.True(t, coordinator.Session().Done())
}

func TestClassifyConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  confirmation
	}{
		{"yes", confirmAffirmative},
		{"Yes!", confirmAffirmative},
		{"  go ahead  ", confirmAffirmative},
		{"sure thing", confirmAffirmative},
		{"oui", confirmAffirmative},
		{"", confirmAmbiguous},
		{"maybe", confirmAmbiguous},
		{"hmm", confirmAmbiguous},
		{"i don't know", confirmAmbiguous},
		{"what about the other option", confirmRefinement},
		{"no, compare it with a queue instead", confirmRefinement},
	}

	for _, tt := range tests {
		if got := classifyConfirmation(tt.input); got != tt.want {
			t.Errorf("classifyConfirmation(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
