package graph

import (
	"context"
	"sync"
	"time"
)

// Span records one node execution: timing, the action label it returned,
// and any error.
type Span struct {
	// Node is the name of the executed node.
	Node string

	// Label is the action label the node returned (empty on error).
	Label string

	// StartTime is when the node began executing.
	StartTime time.Time

	// EndTime is when the node finished.
	EndTime time.Time

	// Duration is the total execution time.
	Duration time.Duration

	// Err is the node's error, if any.
	Err error
}

// Hook receives spans as nodes finish.
type Hook interface {
	OnSpan(ctx context.Context, span *Span)
}

// HookFunc is a function adapter for Hook.
type HookFunc func(ctx context.Context, span *Span)

// OnSpan implements the Hook interface.
func (f HookFunc) OnSpan(ctx context.Context, span *Span) {
	f(ctx, span)
}

// Tracer collects node execution spans and delivers them to registered
// hooks. It is a reporting side channel only; the engine never reads it
// back. A Tracer may be shared by concurrent Invoke calls.
type Tracer struct {
	mu    sync.Mutex
	hooks []Hook
	spans []*Span
}

// NewTracer creates a new tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// AddHook registers a hook notified for every completed span.
func (t *Tracer) AddHook(hook Hook) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, hook)
}

// Spans returns a snapshot of all collected spans in completion order.
func (t *Tracer) Spans() []*Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Span, len(t.spans))
	copy(out, t.spans)
	return out
}

func (t *Tracer) start(_ context.Context, node string) *Span {
	return &Span{
		Node:      node,
		StartTime: time.Now(),
	}
}

func (t *Tracer) end(ctx context.Context, span *Span, label string, err error) {
	span.EndTime = time.Now()
	span.Duration = span.EndTime.Sub(span.StartTime)
	span.Label = label
	span.Err = err

	t.mu.Lock()
	t.spans = append(t.spans, span)
	hooks := make([]Hook, len(t.hooks))
	copy(hooks, t.hooks)
	t.mu.Unlock()

	// Hooks run outside the lock so a slow hook cannot stall other runs.
	for _, hook := range hooks {
		hook.OnSpan(ctx, span)
	}
}
