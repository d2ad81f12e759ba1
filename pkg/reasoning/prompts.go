package reasoning

import (
	"fmt"
	"strings"
)

// Guidance templates, one per strategy. These are opaque to the control
// logic: the controller only concatenates them into prompts. Each template
// tells the model which tagged sections to emit so the parser can validate
// the step against the strategy's contract.

const chainOfThoughtGuidance = `You are an expert in Chain of Thought reasoning.

Think through the problem step-by-step, showing your complete reasoning process.

Structure your response using this tagged format:

<reasoning>
  <question>Restate the problem to ensure understanding</question>
  <strategy>chain_of_thought</strategy>
  <process>
    Break down your thinking into clear, numbered logical steps.
    Step 1: [Initial analysis]
    Step 2: [Further development]
  </process>
  <alternatives>Consider alternative approaches and briefly explain each.</alternatives>
  <evaluation>Assess the strengths and weaknesses of your approach.</evaluation>
  <conclusion>State your final answer clearly and concisely.</conclusion>
</reasoning>

Be thorough and transparent; make every logical connection explicit.`

const treeOfThoughtGuidance = `You are an expert in Tree of Thought reasoning.

Explore multiple reasoning paths, developing the most promising ones further.

Structure your response using this tagged format:

<reasoning>
  <question>Restate the problem to ensure understanding</question>
  <strategy>tree_of_thought</strategy>
  <process>
    <branch id="1">
      <description>Describe this approach</description>
      <exploration>Develop the idea step by step</exploration>
      <assessment>Evaluate this branch's promise</assessment>
    </branch>
    <branch id="2">...</branch>
    <branch_selection>Identify the most promising branch(es) and why.</branch_selection>
  </process>
  <alternatives>Mention approaches you considered but did not explore.</alternatives>
  <evaluation>Compare the branches and their trade-offs.</evaluation>
  <conclusion>State your final answer based on the selected path.</conclusion>
</reasoning>

Generate diverse branches, develop the promising ones, prune the rest.`

const socraticGuidance = `You are an expert in Socratic questioning.

Use a series of probing questions to explore the topic deeply.

Structure your response using this tagged format:

<reasoning>
  <question>Restate the problem to ensure understanding</question>
  <strategy>socratic</strategy>
  <process>
    <inquiry>
      Ask a fundamental question, explore possible answers, follow up,
      and note the insight gained.
    </inquiry>
    <synthesis>Bring together insights from your lines of questioning.</synthesis>
  </process>
  <alternatives>Identify questions that could have led elsewhere.</alternatives>
  <evaluation>Assess how effective your questioning was.</evaluation>
  <conclusion>State your final answer based on the inquiry.</conclusion>
</reasoning>

Question assumptions, seek evidence, examine implications.`

const firstPrinciplesGuidance = `You are an expert in First Principles reasoning.

Break the problem down to fundamental truths and build up from there.

Structure your response using this tagged format:

<reasoning>
  <question>Restate the problem to ensure understanding</question>
  <strategy>first_principles</strategy>
  <process>
    <axioms>List the fundamental truths relevant to this problem.</axioms>
    <decomposition>Break the problem into basic components.</decomposition>
    <reconstruction>Rebuild the solution from first principles.</reconstruction>
  </process>
  <alternatives>Consider alternative sets of first principles.</alternatives>
  <evaluation>Assess the reliability of your chosen principles.</evaluation>
  <conclusion>State your final answer based on the analysis.</conclusion>
</reasoning>

Identify truly fundamental principles, not just assumptions.`

const analogicalGuidance = `You are an expert in Analogical reasoning.

Use analogies to familiar situations to gain insight into the problem.

Structure your response using this tagged format:

<reasoning>
  <question>Restate the problem to ensure understanding</question>
  <strategy>analogical</strategy>
  <process>
    <problem_analysis>Identify the key features and structure of the problem.</problem_analysis>
    <analogy id="1">
      Describe an analogous situation, map its elements to the problem,
      and transfer the insight.
    </analogy>
    <synthesis>Integrate insights from your analogies.</synthesis>
  </process>
  <alternatives>Suggest other analogies that might provide different insights.</alternatives>
  <evaluation>Assess how well your analogies map to the problem.</evaluation>
  <conclusion>State your final answer based on the analogies.</conclusion>
</reasoning>

Choose sources with structural similarity and map elements explicitly.`

const counterfactualGuidance = `You are an expert in Counterfactual reasoning.

Explore hypothetical alternatives to key aspects of the problem.

Structure your response using this tagged format:

<reasoning>
  <question>Restate the problem to ensure understanding</question>
  <strategy>counterfactual</strategy>
  <process>
    <baseline>Establish the actual situation or conventional understanding.</baseline>
    <counterfactual id="1">
      Describe a "what if" scenario, trace its consequences, and state
      what it reveals about the original problem.
    </counterfactual>
    <synthesis>Integrate insights from the counterfactual scenarios.</synthesis>
  </process>
  <alternatives>Suggest other counterfactuals worth exploring.</alternatives>
  <evaluation>Assess how reliable the counterfactual insights are.</evaluation>
  <conclusion>State your final answer based on the analysis.</conclusion>
</reasoning>

Create plausible scenarios and trace their implications systematically.`

const stepBackGuidance = `You are an expert in Step-Back reasoning.

Take a step back to view the problem from a higher level before the details.

Structure your response using this tagged format:

<reasoning>
  <question>Restate the problem to ensure understanding</question>
  <strategy>step_back</strategy>
  <process>
    <initial_framing>Describe how the problem appears at first glance.</initial_framing>
    <step_back>Take a broader perspective; identify patterns and principles.</step_back>
    <reframing>Reframe the problem from that perspective.</reframing>
    <solution_approach>Work through the solution systematically.</solution_approach>
  </process>
  <alternatives>Consider other ways you could have stepped back.</alternatives>
  <evaluation>Assess the benefits and limits of the broader view.</evaluation>
  <conclusion>State your final answer based on the reframed view.</conclusion>
</reasoning>

Find the right level of abstraction, then bring the insight back down.`

// multiStrategyGuidance is used when fallback rotation has engaged: the model
// keeps the shared output contract while the active strategy drives the
// process section.
func multiStrategyGuidance(active *Strategy, primary StrategyID) string {
	return fmt.Sprintf(`You are an advanced reasoning assistant employing multiple strategies.

The primary approach was %s; you are now reasoning under %s.

%s

Incorporate any useful insight from the earlier approach, but keep the tagged
output contract above.`, primary, active.ID, active.Guidance)
}

// stepGuidance returns per-step steering text appended to the prompt.
// Mirrors the strategy-specific pacing of the reasoning process: branch
// development for tree strategies, inquiry deepening for socratic, synthesis
// once several steps have run, and conclusion pressure near the step budget.
func stepGuidance(active *Strategy, stepIndex, maxSteps int, usedFallback bool) string {
	if stepIndex == 0 {
		return ""
	}

	var guidance []string

	if active.ID == StrategyTreeOfThought {
		switch stepIndex {
		case 1:
			guidance = append(guidance, "Continue exploring the most promising branches from your initial reasoning.")
		default:
			guidance = append(guidance, "Select the most promising branch and develop it further.")
		}
	}

	if active.ID == StrategySocratic {
		switch stepIndex {
		case 1:
			guidance = append(guidance, "Deepen your inquiry with follow-up questions based on your initial exploration.")
		default:
			guidance = append(guidance, "Synthesize insights from your questioning process.")
		}
	}

	if usedFallback && stepIndex >= 2 {
		guidance = append(guidance, "Begin synthesizing insights from the different reasoning strategies you have employed.")
	}

	if stepIndex >= maxSteps-1 {
		guidance = append(guidance, "Focus on finalizing your conclusion based on all your reasoning so far.")
	}

	return strings.Join(guidance, "\n")
}
