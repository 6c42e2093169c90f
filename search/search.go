// Package search defines the web search contract consumed by the execute
// stage, plus two providers: the Brave Search API and the DuckDuckGo HTML
// endpoint. Provider failures are never fatal for a run; callers degrade
// them into placeholder results.
package search

import "context"

// Result is one ranked web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Provider searches the web for a text query. Implementations return at
// most limit results; limit <= 0 means the default of 5.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// DefaultLimit is the number of results returned when the caller does not
// ask for a specific count.
const DefaultLimit = 5

// Error reports a failed search for a single query.
type Error struct {
	Query string
	Err   error
}

func (e *Error) Error() string {
	return "search " + e.Query + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
