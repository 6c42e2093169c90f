package agent

import "github.com/maximecaron/deepresearch/schema"

// Notes holds the research material gathered by the execute stage: one
// Markdown summary per subquestion, in plan order.
type Notes struct {
	OverallObjective string   `json:"overall_objective"`
	Subquestions     []string `json:"subquestions"`
}

// State is the single mutable record threaded through a run. It is created
// once per run, mutated in place by each stage's commit phase, and
// discarded when the run completes. Exactly one stage touches it at a time.
type State struct {
	// UserQuery is the raw query the run started from.
	UserQuery string `json:"user_query"`

	// Goal is the clarified one-sentence research objective.
	Goal string `json:"goal,omitempty"`

	// Constraints are the limiting factors extracted alongside the goal.
	Constraints schema.ResearchConstraints `json:"constraints"`

	// Plan is the current research plan; nil until the plan stage runs.
	Plan *schema.ResearchPlan `json:"plan,omitempty"`

	// Notes is the gathered research material; nil until the execute stage
	// runs.
	Notes *Notes `json:"notes,omitempty"`

	// Reflection is carried through the run and fed to the decide and
	// synthesize prompts. No current stage writes it.
	Reflection map[string]any `json:"reflection,omitempty"`

	// Report is the final Markdown report; empty until the synthesize stage
	// runs.
	Report string `json:"report,omitempty"`

	// Steps counts decide invocations. It increases by exactly one per
	// invocation and is the sole termination guard.
	Steps int `json:"steps"`

	// LastAction is the most recent committed action label.
	LastAction schema.Action `json:"last_action,omitempty"`

	// LastObservation summarizes what the last action produced.
	LastObservation string `json:"last_observation,omitempty"`
}

// NewState creates the initial state for a run.
func NewState(userQuery string) *State {
	return &State{
		UserQuery:  userQuery,
		Reflection: make(map[string]any),
	}
}
