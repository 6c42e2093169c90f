// Package llm wraps the completion provider behind two primitive
// operations: free-text completion, and schema-constrained completion with
// best-effort JSON recovery. No retry logic lives here; callers decide
// whether a failed call is worth repeating.
package llm

import (
	"context"
	"fmt"

	"github.com/maximecaron/deepresearch/schema"
)

// Client is the completion provider contract consumed by the stage nodes.
type Client interface {
	// Complete performs a single free-text completion.
	Complete(ctx context.Context, system, user string) (string, error)

	// CompleteStructured requests a completion constrained to the given
	// contract and decodes the response into out. It fails with
	// *MalformedOutputError when the response cannot be parsed as JSON even
	// after brace recovery, and with *schema.ValidationError when it parses
	// but violates the contract.
	CompleteStructured(ctx context.Context, system, user string, out schema.Schema) error
}

// CompletionError reports a transport or auth failure calling the
// completion provider. It is fatal for the run.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion provider: %v", e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// MalformedOutputError reports model output that could not be parsed as
// JSON even after brace recovery. Raw carries the original text.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("model did not return valid JSON: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }
