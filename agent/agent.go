// Package agent implements the staged research workflow: clarify the user
// query into a goal, decompose it into subquestions, search and summarize
// per subquestion, and synthesize a final Markdown report. A bounded
// ReAct-style decide loop picks the next stage after planning and
// execution.
package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/maximecaron/deepresearch/graph"
	"github.com/maximecaron/deepresearch/llm"
	"github.com/maximecaron/deepresearch/log"
	"github.com/maximecaron/deepresearch/search"
)

// Stage names, as they appear in the flow and in trace entries.
const (
	stageClarify    = "clarify"
	stagePlan       = "plan"
	stageDecide     = "decide"
	stageExecute    = "execute"
	stageSynthesize = "synthesize"
)

// labelDecide routes plan and execute back into the decide loop.
const labelDecide = "decide"

// DefaultMaxSteps is the decide-loop step budget.
const DefaultMaxSteps = 8

// Config carries the per-run knobs. It is constructed once and passed into
// every stage; there is no package-level configuration.
type Config struct {
	// MaxSteps bounds the number of decide invocations. Zero means
	// DefaultMaxSteps.
	MaxSteps int

	// SearchLimit is the number of results requested per search query. Zero
	// means the provider default.
	SearchLimit int
}

// Agent drives one research flow per Run call. Concurrent Run calls are
// safe: every run owns an isolated State.
type Agent struct {
	cfg    Config
	flow   *graph.Runnable[*State]
	tracer *graph.Tracer
	sink   Sink
}

// Option configures an Agent.
type Option func(*Agent)

// WithSink sets the progress sink stages report to.
func WithSink(sink Sink) Option {
	return func(a *Agent) {
		a.sink = sink
	}
}

// WithTracer sets a tracer receiving a span per executed stage.
func WithTracer(tracer *graph.Tracer) Option {
	return func(a *Agent) {
		a.tracer = tracer
	}
}

// New builds the agent and compiles its stage flow.
func New(cfg Config, client llm.Client, provider search.Provider, opts ...Option) (*Agent, error) {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = search.DefaultLimit
	}

	a := &Agent{
		cfg:  cfg,
		sink: NopSink{},
	}
	for _, opt := range opts {
		opt(a)
	}

	flow, err := a.buildFlow(client, provider)
	if err != nil {
		return nil, fmt.Errorf("build flow: %w", err)
	}
	a.flow = flow
	return a, nil
}

func (a *Agent) buildFlow(client llm.Client, provider search.Provider) (*graph.Runnable[*State], error) {
	clarify := &clarifyNode{llm: client, sink: a.sink}
	plan := &planNode{llm: client, sink: a.sink}
	decide := &decideNode{llm: client, sink: a.sink, maxSteps: a.cfg.MaxSteps}
	execute := &executeNode{llm: client, search: provider, sink: a.sink, searchLimit: a.cfg.SearchLimit}
	synthesize := &synthesizeNode{llm: client, sink: a.sink}

	f := graph.New[*State]()
	f.AddNode(stageClarify, "Normalize the raw user query into a goal and constraints", clarify.run)
	f.AddNode(stagePlan, "Decompose the goal into subquestions", plan.run)
	f.AddNode(stageDecide, "Pick the next action in the research loop", decide.run)
	f.AddNode(stageExecute, "Search and summarize per subquestion", execute.run)
	f.AddNode(stageSynthesize, "Write the final report", synthesize.run)

	f.SetEntryPoint(stageClarify)
	f.AddEdge(stageClarify, graph.DefaultLabel, stagePlan)
	f.AddEdge(stagePlan, labelDecide, stageDecide)
	f.AddEdge(stageExecute, labelDecide, stageDecide)
	f.AddEdge(stageDecide, "plan", stagePlan)
	f.AddEdge(stageDecide, "execute", stageExecute)
	f.AddEdge(stageDecide, "synthesize", stageSynthesize)
	// Reflection routes to synthesis; no dedicated reflect stage exists.
	f.AddEdge(stageDecide, "reflect", stageSynthesize)
	f.AddEdge(stageSynthesize, graph.DefaultLabel, graph.End)

	runnable, err := f.Compile()
	if err != nil {
		return nil, err
	}
	if a.tracer != nil {
		runnable.SetTracer(a.tracer)
	}
	return runnable, nil
}

// Run executes the full research flow for userQuery and returns the final
// Markdown report. Any unrecovered stage error aborts the run; no partial
// report is produced.
func (a *Agent) Run(ctx context.Context, userQuery string) (string, error) {
	state, err := a.RunState(ctx, userQuery)
	if err != nil {
		return "", err
	}
	return state.Report, nil
}

// RunState is Run exposing the final state, for drivers that want to
// persist more than the report.
func (a *Agent) RunState(ctx context.Context, userQuery string) (*State, error) {
	runID := uuid.NewString()
	log.Info("run %s: researching %q", runID, userQuery)

	state := NewState(userQuery)
	if _, err := a.flow.Invoke(ctx, state); err != nil {
		log.Error("run %s: %v", runID, err)
		return nil, err
	}

	log.Info("run %s: done after %d decide steps", runID, state.Steps)
	return state, nil
}
