package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DuckDuckGoProvider searches the web by scraping the DuckDuckGo HTML
// endpoint. It needs no API key, which makes it the default provider.
type DuckDuckGoProvider struct {
	baseURL    string
	httpClient *http.Client
}

var _ Provider = (*DuckDuckGoProvider)(nil)

// DuckDuckGoOption configures a DuckDuckGoProvider.
type DuckDuckGoOption func(*DuckDuckGoProvider)

// WithDuckDuckGoBaseURL sets the base URL of the HTML endpoint.
func WithDuckDuckGoBaseURL(baseURL string) DuckDuckGoOption {
	return func(d *DuckDuckGoProvider) {
		d.baseURL = baseURL
	}
}

// WithDuckDuckGoHTTPClient sets the HTTP client used for requests.
func WithDuckDuckGoHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGoProvider) {
		d.httpClient = client
	}
}

// NewDuckDuckGoProvider creates a new DuckDuckGo search provider.
func NewDuckDuckGoProvider(opts ...DuckDuckGoOption) *DuckDuckGoProvider {
	d := &DuckDuckGoProvider{
		baseURL:    "https://html.duckduckgo.com/html/",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Search executes a single query against the HTML endpoint and scrapes the
// ranked result list.
func (d *DuckDuckGoProvider) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	reqURL := fmt.Sprintf("%s?q=%s", d.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Query: query, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; deepresearch/1.0)")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Query: query, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Query: query, Err: fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &Error{Query: query, Err: fmt.Errorf("parse response: %w", err)}
	}

	var results []Result
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())

		if title == "" || href == "" {
			return true
		}
		results = append(results, Result{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: snippet,
		})
		return len(results) < limit
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<url> redirect links.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
