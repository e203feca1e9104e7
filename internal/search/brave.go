// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/meshintel/orgminer/internal/httputil"
	"github.com/meshintel/orgminer/pkg/types"
)

// braveAPIBase is the Brave web search endpoint. Declared as a var so
// tests can substitute an httptest server.
var braveAPIBase = "https://api.search.brave.com/res/v1/web/search"

// BraveProvider queries the Brave Search API. Requires a subscription
// token.
type BraveProvider struct {
	Client *http.Client
	APIKey string
}

// Name returns the provider identifier.
func (p *BraveProvider) Name() string { return "brave" }

// Search queries the Brave web search API.
func (p *BraveProvider) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("brave API key not configured")
	}

	count := cfg.MaxResults
	if count <= 0 || count > 20 {
		count = 20
	}
	params := url.Values{
		"q":     {query},
		"count": {fmt.Sprintf("%d", count)},
	}
	reqURL := braveAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", p.APIKey)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Brave API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Brave API returned HTTP %d", resp.StatusCode)
	}

	var br braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return nil, fmt.Errorf("parsing Brave response: %w", err)
	}

	var results []types.SearchResult
	for i, item := range br.Web.Results {
		if item.URL == "" {
			continue
		}
		results = append(results, types.SearchResult{
			Title:    item.Title,
			URL:      item.URL,
			Snippet:  item.Description,
			Source:   "brave",
			Position: i,
		})
	}
	return results, nil
}

// Brave Search API JSON structures.
type braveResponse struct {
	Web braveWebSection `json:"web"`
}

type braveWebSection struct {
	Results []braveResult `json:"results"`
}

type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
