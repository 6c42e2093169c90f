package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
)

// BraveProvider searches the web via the Brave Search API.
type BraveProvider struct {
	apiKey     string
	baseURL    string
	country    string
	lang       string
	httpClient *http.Client
}

var _ Provider = (*BraveProvider)(nil)

// BraveOption configures a BraveProvider.
type BraveOption func(*BraveProvider)

// WithBraveBaseURL sets the base URL for the Brave Search API.
func WithBraveBaseURL(baseURL string) BraveOption {
	return func(b *BraveProvider) {
		b.baseURL = baseURL
	}
}

// WithBraveCountry sets the country code for search results (e.g., "US").
func WithBraveCountry(country string) BraveOption {
	return func(b *BraveProvider) {
		b.country = country
	}
}

// WithBraveLang sets the language code for search results (e.g., "en").
func WithBraveLang(lang string) BraveOption {
	return func(b *BraveProvider) {
		b.lang = lang
	}
}

// WithBraveHTTPClient sets the HTTP client used for API calls.
func WithBraveHTTPClient(client *http.Client) BraveOption {
	return func(b *BraveProvider) {
		b.httpClient = client
	}
}

// NewBraveProvider creates a new Brave search provider. If apiKey is empty,
// it tries the BRAVE_API_KEY environment variable.
func NewBraveProvider(apiKey string, opts ...BraveOption) (*BraveProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("BRAVE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("BRAVE_API_KEY not set")
	}

	b := &BraveProvider{
		apiKey:     apiKey,
		baseURL:    "https://api.search.brave.com/res/v1/web/search",
		country:    "US",
		lang:       "en",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search executes a single query against the Brave API.
func (b *BraveProvider) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", limit))
	if b.country != "" {
		params.Set("country", b.country)
	}
	if b.lang != "" {
		params.Set("search_lang", b.lang)
	}

	reqURL := fmt.Sprintf("%s?%s", b.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Query: query, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Query: query, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Query: query, Err: fmt.Errorf("brave api returned status %d", resp.StatusCode)}
	}

	var parsed braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Query: query, Err: fmt.Errorf("decode response: %w", err)}
	}

	results := make([]Result, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		results = append(results, Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
