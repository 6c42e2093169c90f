package agent

import (
	"context"

	"github.com/maximecaron/deepresearch/graph"
	"github.com/maximecaron/deepresearch/llm"
	"github.com/maximecaron/deepresearch/schema"
)

// clarifyNode normalizes the raw user query into a goal plus constraints.
type clarifyNode struct {
	llm  llm.Client
	sink Sink
}

func (n *clarifyNode) run(ctx context.Context, s *State) (string, error) {
	in := n.prepare(s)
	out, err := n.compute(ctx, in)
	if err != nil {
		return "", err
	}
	return n.commit(ctx, s, out), nil
}

func (n *clarifyNode) prepare(s *State) string {
	return s.UserQuery
}

func (n *clarifyNode) compute(ctx context.Context, userQuery string) (*schema.ResearchRequest, error) {
	var req schema.ResearchRequest
	if err := n.llm.CompleteStructured(ctx, clarifySystemPrompt, clarifyUserPrompt(userQuery), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (n *clarifyNode) commit(ctx context.Context, s *State, req *schema.ResearchRequest) string {
	s.Goal = req.Goal
	s.Constraints = req.Constraints

	n.sink.Emit(ctx, &TraceEntry{Stage: stageClarify, Output: req})
	return graph.DefaultLabel
}
