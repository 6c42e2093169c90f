// Package graph implements a small state-graph engine with labeled
// dispatch. Nodes run sequentially over a shared state value; each node
// returns an action label, and the label selects the outgoing edge to the
// next node. A label with no outgoing edge (or an edge to End) terminates
// the run. The edge table is static and validated at Compile time, so a
// reference to an unknown node is a construction-time error, not a runtime
// crash.
package graph

import (
	"context"
	"errors"
	"fmt"
)

// End is a special destination marking the end of the flow.
const End = "END"

// DefaultLabel is the label returned by nodes with a single unconditional
// successor.
const DefaultLabel = "default"

var (
	// ErrEntryPointNotSet is returned when the entry point of the flow is not set.
	ErrEntryPointNotSet = errors.New("entry point not set")

	// ErrNodeNotFound is returned when an edge or the entry point references
	// an unknown node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDuplicateEdge is returned when two edges share a source node and label.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// NodeFunc runs one node over the shared state and returns the action label
// used to select the next node.
type NodeFunc[S any] func(ctx context.Context, state S) (string, error)

// Node is a named node in the flow.
type Node[S any] struct {
	// Name is the unique identifier for the node.
	Name string

	// Description describes the functionality of the node.
	Description string

	// Function is the function associated with the node.
	Function NodeFunc[S]
}

// Edge is a labeled edge between two nodes.
type Edge struct {
	From  string
	Label string
	To    string
}

// Flow is a buildable graph of nodes and labeled edges. Call Compile to
// validate it and obtain a Runnable.
type Flow[S any] struct {
	nodes      map[string]Node[S]
	edges      []Edge
	entryPoint string
}

// New creates an empty flow.
func New[S any]() *Flow[S] {
	return &Flow[S]{
		nodes: make(map[string]Node[S]),
	}
}

// AddNode adds a node with the given name, description and function.
func (f *Flow[S]) AddNode(name, description string, fn NodeFunc[S]) {
	f.nodes[name] = Node[S]{
		Name:        name,
		Description: description,
		Function:    fn,
	}
}

// AddEdge adds a labeled edge from one node to another. The destination may
// be End.
func (f *Flow[S]) AddEdge(from, label, to string) {
	f.edges = append(f.edges, Edge{From: from, Label: label, To: to})
}

// SetEntryPoint sets the node the flow starts from.
func (f *Flow[S]) SetEntryPoint(name string) {
	f.entryPoint = name
}

// Compile validates the flow and returns a Runnable. Validation fails when
// the entry point is unset or unknown, an edge references an unknown node,
// or two edges share a source and label.
func (f *Flow[S]) Compile() (*Runnable[S], error) {
	if f.entryPoint == "" {
		return nil, ErrEntryPointNotSet
	}
	if _, ok := f.nodes[f.entryPoint]; !ok {
		return nil, fmt.Errorf("%w: entry point %s", ErrNodeNotFound, f.entryPoint)
	}

	next := make(map[string]map[string]string, len(f.nodes))
	for _, e := range f.edges {
		if _, ok := f.nodes[e.From]; !ok {
			return nil, fmt.Errorf("%w: edge source %s", ErrNodeNotFound, e.From)
		}
		if _, ok := f.nodes[e.To]; !ok && e.To != End {
			return nil, fmt.Errorf("%w: edge destination %s", ErrNodeNotFound, e.To)
		}
		labels := next[e.From]
		if labels == nil {
			labels = make(map[string]string)
			next[e.From] = labels
		}
		if _, ok := labels[e.Label]; ok {
			return nil, fmt.Errorf("%w: %s --%s-->", ErrDuplicateEdge, e.From, e.Label)
		}
		labels[e.Label] = e.To
	}

	return &Runnable[S]{flow: f, next: next}, nil
}

// Runnable is a compiled flow that can be invoked. It holds no state of its
// own beyond the static edge table; the shared state belongs to the caller.
type Runnable[S any] struct {
	flow   *Flow[S]
	next   map[string]map[string]string
	tracer *Tracer
}

// SetTracer sets a tracer for observability.
func (r *Runnable[S]) SetTracer(tracer *Tracer) {
	r.tracer = tracer
}

// Invoke runs the flow to completion over state. Nodes execute strictly
// sequentially starting at the entry point; each node's returned label
// selects the next node. A node error aborts the run, wrapped with the node
// name.
func (r *Runnable[S]) Invoke(ctx context.Context, state S) (S, error) {
	current := r.flow.entryPoint

	for {
		node := r.flow.nodes[current]

		var span *Span
		if r.tracer != nil {
			span = r.tracer.start(ctx, current)
		}

		label, err := node.Function(ctx, state)

		if r.tracer != nil {
			r.tracer.end(ctx, span, label, err)
		}
		if err != nil {
			return state, fmt.Errorf("node %s: %w", current, err)
		}

		to, ok := r.next[current][label]
		if !ok || to == End {
			return state, nil
		}
		current = to
	}
}
