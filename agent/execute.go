package agent

import (
	"context"
	"fmt"

	"github.com/maximecaron/deepresearch/llm"
	"github.com/maximecaron/deepresearch/log"
	"github.com/maximecaron/deepresearch/schema"
	"github.com/maximecaron/deepresearch/search"
)

// searchErrorTitle marks a synthetic result standing in for a failed
// search query, so downstream summarization still sees a well-formed (if
// degraded) result list.
const searchErrorTitle = "SEARCH_ERROR"

// executeNode runs the research plan: per subquestion, generate focused
// search queries, collect results, and summarize them. Subquestions are
// processed in plan order; one failing query never aborts a subquestion.
type executeNode struct {
	llm         llm.Client
	search      search.Provider
	sink        Sink
	searchLimit int
}

type executeInput struct {
	Plan        *schema.ResearchPlan
	Goal        string
	Constraints schema.ResearchConstraints
}

func (n *executeNode) run(ctx context.Context, s *State) (string, error) {
	in := n.prepare(s)
	out, err := n.compute(ctx, in)
	if err != nil {
		return "", err
	}
	return n.commit(s, out), nil
}

func (n *executeNode) prepare(s *State) executeInput {
	return executeInput{
		Plan:        s.Plan,
		Goal:        s.Goal,
		Constraints: s.Constraints,
	}
}

func (n *executeNode) compute(ctx context.Context, in executeInput) (*Notes, error) {
	notes := &Notes{
		Subquestions: make([]string, 0, len(in.Plan.Subquestions)),
	}
	notes.OverallObjective = in.Plan.OverallObjective

	for _, subq := range in.Plan.Subquestions {
		queries, err := n.generateQueries(ctx, subq, in.Goal, in.Constraints)
		if err != nil {
			return nil, err
		}

		var aggregated []search.Result
		for _, q := range queries {
			results, err := n.search.Search(ctx, q, n.searchLimit)
			if err != nil {
				log.Warn("search %q failed: %v", q, err)
				aggregated = append(aggregated, search.Result{
					Title:   searchErrorTitle,
					URL:     "",
					Snippet: err.Error(),
				})
				continue
			}
			aggregated = append(aggregated, results...)
		}

		summary, err := n.llm.Complete(ctx, summarySystemPrompt,
			summaryUserPrompt(subq, in.Goal, in.Constraints, aggregated))
		if err != nil {
			return nil, err
		}
		notes.Subquestions = append(notes.Subquestions, summary)

		n.sink.Emit(ctx, &TraceEntry{
			Stage:  fmt.Sprintf("%s %s", stageExecute, subq.ID),
			Input:  subq.Description,
			Output: summary,
		})
	}

	return notes, nil
}

func (n *executeNode) generateQueries(ctx context.Context, subq schema.SubQuestion, goal string, constraints schema.ResearchConstraints) ([]string, error) {
	var queries schema.SearchQueries
	if err := n.llm.CompleteStructured(ctx, queriesSystemPrompt,
		queriesUserPrompt(subq, goal, constraints), &queries); err != nil {
		return nil, err
	}
	return queries.Queries, nil
}

func (n *executeNode) commit(s *State, notes *Notes) string {
	s.Notes = notes
	s.LastAction = schema.ActionExecute
	s.LastObservation = fmt.Sprintf("Executed research for %d subquestions.", len(notes.Subquestions))
	return labelDecide
}
