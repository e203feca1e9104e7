// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/meshintel/orgminer/pkg/types"
)

// fakeProvider returns canned results or a canned error.
type fakeProvider struct {
	name    string
	results []types.SearchResult
	err     error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(_ context.Context, _ string, _ types.SearchConfig) ([]types.SearchResult, error) {
	return f.results, f.err
}

func res(title, url string) types.SearchResult {
	return types.SearchResult{Title: title, URL: url, Source: "fake"}
}

func TestSearchEmptyQuery(t *testing.T) {
	_, err := Search(context.Background(), "  ", []Provider{&fakeProvider{name: "a"}}, types.SearchConfig{}, io.Discard)
	if err == nil {
		t.Fatal("Search() with blank query returned nil error")
	}
}

func TestSearchNoProviders(t *testing.T) {
	_, err := Search(context.Background(), "universities", nil, types.SearchConfig{}, io.Discard)
	if err == nil {
		t.Fatal("Search() with no providers returned nil error")
	}
}

func TestSearchMergesProviders(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "a", results: []types.SearchResult{res("MIT", "https://mit.edu")}},
		&fakeProvider{name: "b", results: []types.SearchResult{res("Stanford", "https://stanford.edu")}},
	}
	out, err := Search(context.Background(), "universities", providers, types.SearchConfig{}, io.Discard)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(out.Results))
	}
	for i, r := range out.Results {
		if r.Position != i {
			t.Errorf("result %d has Position %d", i, r.Position)
		}
	}
}

func TestSearchDeduplicatesByURL(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "a", results: []types.SearchResult{
			{Title: "MIT homepage", URL: "https://www.mit.edu/", Source: "a"},
		}},
		&fakeProvider{name: "b", results: []types.SearchResult{
			{Title: "Massachusetts Institute of Technology", URL: "http://mit.edu", Source: "b", Snippet: "research university"},
		}},
	}
	out, err := Search(context.Background(), "mit", providers, types.SearchConfig{}, io.Discard)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("got %d results, want 1 after URL dedup: %+v", len(out.Results), out.Results)
	}
	if out.DupsRemoved != 1 {
		t.Errorf("DupsRemoved = %d, want 1", out.DupsRemoved)
	}
	// Merge fills empty fields from the duplicate.
	if out.Results[0].Snippet != "research university" {
		t.Errorf("Snippet = %q, want merged from duplicate", out.Results[0].Snippet)
	}
}

func TestSearchDeduplicatesByTitle(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "a", results: []types.SearchResult{
			res("Harvard University!", "https://harvard.edu"),
			res("harvard university", "https://news.harvard.edu/today"),
		}},
	}
	out, err := Search(context.Background(), "harvard", providers, types.SearchConfig{}, io.Discard)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("got %d results, want 1 after title dedup", len(out.Results))
	}
}

func TestSearchPartialProviderFailure(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "broken", err: fmt.Errorf("HTTP 500")},
		&fakeProvider{name: "ok", results: []types.SearchResult{res("ETH", "https://ethz.ch")}},
	}
	var warnings strings.Builder
	out, err := Search(context.Background(), "eth", providers, types.SearchConfig{}, &warnings)
	if err != nil {
		t.Fatalf("Search() error = %v, want partial success", err)
	}
	if len(out.Results) != 1 {
		t.Errorf("got %d results, want 1", len(out.Results))
	}
	if len(out.ProviderErrors) != 1 || !strings.Contains(out.ProviderErrors[0], "broken") {
		t.Errorf("ProviderErrors = %v", out.ProviderErrors)
	}
	if !strings.Contains(warnings.String(), "broken") {
		t.Errorf("warning not written: %q", warnings.String())
	}
}

func TestSearchAllProvidersFail(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "a", err: fmt.Errorf("down")},
		&fakeProvider{name: "b", err: fmt.Errorf("down")},
	}
	if _, err := Search(context.Background(), "anything", providers, types.SearchConfig{}, io.Discard); err == nil {
		t.Fatal("Search() with all providers failing returned nil error")
	}
}

func TestSearchMaxResults(t *testing.T) {
	var many []types.SearchResult
	for i := 0; i < 10; i++ {
		many = append(many, res(fmt.Sprintf("Result %d", i), fmt.Sprintf("https://site%d.org", i)))
	}
	out, err := Search(context.Background(), "q", []Provider{&fakeProvider{name: "a", results: many}},
		types.SearchConfig{MaxResults: 3}, io.Discard)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(out.Results) != 3 {
		t.Errorf("got %d results, want 3", len(out.Results))
	}
}

func TestNormalizeResultURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.mit.edu/", "mit.edu"},
		{"http://mit.edu", "mit.edu"},
		{"https://harvard.edu/admissions/", "harvard.edu/admissions"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		if got := normalizeResultURL(tt.raw); got != tt.want {
			t.Errorf("normalizeResultURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormatTable(t *testing.T) {
	out := Output{
		Results:     []types.SearchResult{res("MIT", "https://mit.edu")},
		DupsRemoved: 2,
	}
	var buf strings.Builder
	FormatTable(out, &buf)
	got := buf.String()
	for _, want := range []string{"MIT", "https://mit.edu", "1 results", "2 duplicates removed"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf strings.Builder
	FormatTable(Output{}, &buf)
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("empty table output = %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	var buf strings.Builder
	if err := FormatJSON(Output{Results: []types.SearchResult{res("MIT", "https://mit.edu")}}, &buf); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"https://mit.edu"`) {
		t.Errorf("JSON output missing URL: %s", buf.String())
	}
}
