// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/meshintel/orgminer/internal/httputil"
	"github.com/meshintel/orgminer/pkg/types"
)

// ddgAPIBase is the DuckDuckGo instant-answer endpoint. Declared as a
// var so tests can substitute an httptest server.
var ddgAPIBase = "https://api.duckduckgo.com/"

// DuckDuckGoProvider queries the DuckDuckGo instant-answer API. Keyless,
// so it is the default provider.
type DuckDuckGoProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *DuckDuckGoProvider) Name() string { return "duckduckgo" }

// Search queries the instant-answer API. Related-topic entries carry the
// title/URL/snippet triples the pipeline consumes; positions run in API
// order.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	params := url.Values{
		"q":           {query},
		"format":      {"json"},
		"no_html":     {"1"},
		"no_redirect": {"1"},
	}
	reqURL := ddgAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("DuckDuckGo API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DuckDuckGo API returned HTTP %d", resp.StatusCode)
	}

	var dr ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("parsing DuckDuckGo response: %w", err)
	}

	var results []types.SearchResult
	add := func(title, pageURL, snippet string) {
		if pageURL == "" || snippet == "" && title == "" {
			return
		}
		if title == "" {
			title = firstSentence(snippet)
		}
		results = append(results, types.SearchResult{
			Title:    title,
			URL:      pageURL,
			Snippet:  snippet,
			Source:   "duckduckgo",
			Position: len(results),
		})
	}

	if dr.AbstractURL != "" {
		add(dr.Heading, dr.AbstractURL, dr.AbstractText)
	}
	for _, topic := range dr.RelatedTopics {
		add("", topic.FirstURL, topic.Text)
		for _, sub := range topic.Topics {
			add("", sub.FirstURL, sub.Text)
		}
	}

	if cfg.MaxResults > 0 && len(results) > cfg.MaxResults {
		results = results[:cfg.MaxResults]
	}
	return results, nil
}

// firstSentence extracts a display title from a topic snippet, which
// DuckDuckGo formats as "Name - description".
func firstSentence(text string) string {
	if idx := strings.Index(text, " - "); idx > 0 {
		return text[:idx]
	}
	if len(text) > 60 {
		return text[:57] + "..."
	}
	return text
}

// DuckDuckGo instant-answer JSON structures. Topics nest one level for
// category groupings.
type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}
