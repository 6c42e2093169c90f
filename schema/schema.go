// Package schema defines the structured contracts exchanged with the
// language model. Every contract is a closed record: unknown fields are
// rejected at decode time, and structural constraints are checked by
// Validate. Violations surface as *ValidationError.
package schema

import (
	"encoding/json"
	"fmt"
)

// Schema is implemented by every structured contract. SchemaName is the
// identifier sent to the completion provider when requesting a
// schema-constrained response; JSONSchema is the JSON Schema document sent
// alongside it; Validate checks the structural constraints after a
// successful JSON decode.
//
// The documents are hand-authored rather than reflected from the Go types:
// strict-mode providers enforce them verbatim, so they must carry what the
// types cannot express — the null alternative on optional constraint
// fields, the closed action enum, and the query-count bounds.
type Schema interface {
	SchemaName() string
	JSONSchema() json.RawMessage
	Validate() error
}

// ValidationError reports a structured completion that parsed as JSON but
// violated its contract: a missing required field, an enum value outside its
// closed set, or a list-length bound.
type ValidationError struct {
	// Schema is the name of the violated contract.
	Schema string

	// Constraint describes the violated constraint.
	Constraint string

	// Raw is the payload that failed validation, when available.
	Raw string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema %s: %s", e.Schema, e.Constraint)
}

// Action is the closed set of next actions the decide stage may choose.
type Action string

const (
	ActionPlan       Action = "plan"
	ActionExecute    Action = "execute"
	ActionReflect    Action = "reflect"
	ActionSynthesize Action = "synthesize"
)

// Valid reports whether a is one of the four known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionPlan, ActionExecute, ActionReflect, ActionSynthesize:
		return true
	}
	return false
}

// ResearchConstraints are the limiting factors extracted from the user
// query. Each field is explicitly nullable: nil means the user did not
// specify it.
type ResearchConstraints struct {
	Audience  *string `json:"audience"`
	Depth     *string `json:"depth"`
	Region    *string `json:"region"`
	TimeScope *string `json:"time_scope"`
	Format    *string `json:"format"`
}

// ResearchRequest is the clarified form of a raw user query: a one-sentence
// research goal plus explicit constraints.
type ResearchRequest struct {
	Goal        string              `json:"goal"`
	Constraints ResearchConstraints `json:"constraints"`
}

func (r *ResearchRequest) SchemaName() string { return "ResearchRequest" }

func (r *ResearchRequest) Validate() error {
	if r.Goal == "" {
		return &ValidationError{Schema: r.SchemaName(), Constraint: "goal is required"}
	}
	return nil
}

// SubQuestion is one granular research task within a plan. It is immutable
// once produced by the plan stage.
type SubQuestion struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Priority       int      `json:"priority"`
	Dependencies   []string `json:"dependencies"`
	SuggestedTools []string `json:"suggested_tools"`
	Notes          string   `json:"notes"`
}

// ResearchPlan decomposes a research goal into an ordered list of
// subquestions.
type ResearchPlan struct {
	OverallObjective string        `json:"overall_objective"`
	Subquestions     []SubQuestion `json:"subquestions"`
	GlobalStrategy   string        `json:"global_strategy"`
}

func (p *ResearchPlan) SchemaName() string { return "ResearchPlan" }

func (p *ResearchPlan) Validate() error {
	if p.OverallObjective == "" {
		return &ValidationError{Schema: p.SchemaName(), Constraint: "overall_objective is required"}
	}
	if len(p.Subquestions) == 0 {
		return &ValidationError{Schema: p.SchemaName(), Constraint: "subquestions must be non-empty"}
	}
	seen := make(map[string]bool, len(p.Subquestions))
	for _, sq := range p.Subquestions {
		if sq.ID == "" {
			return &ValidationError{Schema: p.SchemaName(), Constraint: "subquestion id is required"}
		}
		if seen[sq.ID] {
			return &ValidationError{
				Schema:     p.SchemaName(),
				Constraint: fmt.Sprintf("duplicate subquestion id %q", sq.ID),
			}
		}
		seen[sq.ID] = true
	}
	// Dependency ids are not resolved against the plan. The execute stage
	// processes subquestions in list order and never consults them.
	return nil
}

// AgentAction is the decide stage's choice of next action and its reasoning.
type AgentAction struct {
	Action Action `json:"action"`
	Reason string `json:"reason"`
}

func (a *AgentAction) SchemaName() string { return "AgentAction" }

func (a *AgentAction) Validate() error {
	if !a.Action.Valid() {
		return &ValidationError{
			Schema:     a.SchemaName(),
			Constraint: fmt.Sprintf("action %q is not one of plan, execute, reflect, synthesize", a.Action),
		}
	}
	return nil
}

// SearchQueries is a list of 3-5 focused web search queries for a single
// subquestion.
type SearchQueries struct {
	Queries []string `json:"queries"`
}

const (
	minQueries = 3
	maxQueries = 5
)

func (q *SearchQueries) SchemaName() string { return "SearchQueries" }

func (q *SearchQueries) Validate() error {
	if len(q.Queries) < minQueries || len(q.Queries) > maxQueries {
		return &ValidationError{
			Schema:     q.SchemaName(),
			Constraint: fmt.Sprintf("queries length %d outside [%d,%d]", len(q.Queries), minQueries, maxQueries),
		}
	}
	return nil
}
