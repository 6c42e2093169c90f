package agent

import (
	"context"
	"fmt"

	"github.com/maximecaron/deepresearch/llm"
	"github.com/maximecaron/deepresearch/schema"
)

// planNode decomposes the clarified goal into an ordered list of
// subquestions.
type planNode struct {
	llm  llm.Client
	sink Sink
}

type planInput struct {
	Goal        string
	Constraints schema.ResearchConstraints
}

func (n *planNode) run(ctx context.Context, s *State) (string, error) {
	in := n.prepare(s)
	out, err := n.compute(ctx, in)
	if err != nil {
		return "", err
	}
	return n.commit(ctx, s, out), nil
}

func (n *planNode) prepare(s *State) planInput {
	return planInput{
		Goal:        s.Goal,
		Constraints: s.Constraints,
	}
}

func (n *planNode) compute(ctx context.Context, in planInput) (*schema.ResearchPlan, error) {
	var plan schema.ResearchPlan
	if err := n.llm.CompleteStructured(ctx, planSystemPrompt, planUserPrompt(in.Goal, in.Constraints), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (n *planNode) commit(ctx context.Context, s *State, plan *schema.ResearchPlan) string {
	s.Plan = plan
	s.LastAction = schema.ActionPlan
	s.LastObservation = fmt.Sprintf("Planned %d subquestions.", len(plan.Subquestions))

	n.sink.Emit(ctx, &TraceEntry{Stage: stagePlan, Output: plan})
	return labelDecide
}
