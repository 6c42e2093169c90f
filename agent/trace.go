package agent

import "context"

// TraceEntry is one labeled progress report emitted by a stage. It is a
// reporting side channel only; nothing in the agent reads entries back.
type TraceEntry struct {
	// Stage names the emitting stage, e.g. "plan" or "execute Q1".
	Stage string

	// Input is the stage input worth surfacing, if any.
	Input string

	// Output is the stage output worth surfacing, if any.
	Output any

	// Elements are named text fragments, e.g. the Thought/Action/Observation
	// triple of a decide cycle.
	Elements map[string]string
}

// Sink receives progress entries from the stages.
type Sink interface {
	Emit(ctx context.Context, entry *TraceEntry)
}

// SinkFunc is a function adapter for Sink.
type SinkFunc func(ctx context.Context, entry *TraceEntry)

// Emit implements the Sink interface.
func (f SinkFunc) Emit(ctx context.Context, entry *TraceEntry) {
	f(ctx, entry)
}

// NopSink discards all entries.
type NopSink struct{}

// Emit does nothing.
func (NopSink) Emit(context.Context, *TraceEntry) {}
