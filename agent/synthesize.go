package agent

import (
	"context"

	"github.com/maximecaron/deepresearch/graph"
	"github.com/maximecaron/deepresearch/llm"
	"github.com/maximecaron/deepresearch/schema"
)

// synthesizeNode writes the final Markdown report from the gathered notes.
type synthesizeNode struct {
	llm  llm.Client
	sink Sink
}

type synthesizeInput struct {
	Goal        string
	Constraints schema.ResearchConstraints
	Notes       *Notes
	Reflection  map[string]any
}

func (n *synthesizeNode) run(ctx context.Context, s *State) (string, error) {
	in := n.prepare(s)
	out, err := n.compute(ctx, in)
	if err != nil {
		return "", err
	}
	return n.commit(ctx, s, out), nil
}

func (n *synthesizeNode) prepare(s *State) synthesizeInput {
	return synthesizeInput{
		Goal:        s.Goal,
		Constraints: s.Constraints,
		Notes:       s.Notes,
		Reflection:  s.Reflection,
	}
}

func (n *synthesizeNode) compute(ctx context.Context, in synthesizeInput) (string, error) {
	return n.llm.Complete(ctx, synthesizeSystemPrompt, synthesizeUserPrompt(in))
}

func (n *synthesizeNode) commit(ctx context.Context, s *State, report string) string {
	s.Report = report
	s.LastAction = schema.ActionSynthesize
	s.LastObservation = "Final report generated."

	n.sink.Emit(ctx, &TraceEntry{Stage: stageSynthesize, Output: "Final report generated."})
	return graph.DefaultLabel
}
