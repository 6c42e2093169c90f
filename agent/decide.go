package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/maximecaron/deepresearch/llm"
	"github.com/maximecaron/deepresearch/schema"
)

// decideNode is the ReAct-style controller: given everything the run has
// produced so far it picks the next action. Once the step budget is
// exhausted it forces synthesis without consulting the model, which
// guarantees termination even when the model keeps asking for more work.
type decideNode struct {
	llm      llm.Client
	sink     Sink
	maxSteps int
}

type decideInput struct {
	Goal            string
	Constraints     schema.ResearchConstraints
	Plan            *schema.ResearchPlan
	Notes           *Notes
	Reflection      map[string]any
	Steps           int
	LastAction      schema.Action
	LastObservation string
}

func (n *decideNode) run(ctx context.Context, s *State) (string, error) {
	// Every decide invocation consumes one step of the budget.
	s.Steps++

	in := n.prepare(s)
	out, err := n.compute(ctx, in)
	if err != nil {
		return "", err
	}
	return n.commit(ctx, in, out), nil
}

func (n *decideNode) prepare(s *State) decideInput {
	return decideInput{
		Goal:            s.Goal,
		Constraints:     s.Constraints,
		Plan:            s.Plan,
		Notes:           s.Notes,
		Reflection:      s.Reflection,
		Steps:           s.Steps,
		LastAction:      s.LastAction,
		LastObservation: s.LastObservation,
	}
}

func (n *decideNode) compute(ctx context.Context, in decideInput) (*schema.AgentAction, error) {
	if in.Steps >= n.maxSteps {
		return &schema.AgentAction{
			Action: schema.ActionSynthesize,
			Reason: fmt.Sprintf("Reached max steps=%d, forcing synthesis.", n.maxSteps),
		}, nil
	}

	var action schema.AgentAction
	if err := n.llm.CompleteStructured(ctx, decideSystemPrompt, decideUserPrompt(in), &action); err != nil {
		return nil, err
	}
	return &action, nil
}

// commit writes nothing to the state; decide is a pure controller. It only
// reports the Thought-Action-Observation triple to the sink and hands the
// chosen action label to the flow.
func (n *decideNode) commit(ctx context.Context, in decideInput, action *schema.AgentAction) string {
	mode := "Start"
	if in.LastAction != "" {
		mode = capitalize(string(in.LastAction))
	}
	observation := in.LastObservation
	if observation == "" {
		observation = "(no observation yet)"
	}

	n.sink.Emit(ctx, &TraceEntry{
		Stage: fmt.Sprintf("ReAct step %d - %s", in.Steps, mode),
		Elements: map[string]string{
			"Thought":     action.Reason,
			"Action":      string(action.Action),
			"Observation": observation,
		},
	})
	return string(action.Action)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
