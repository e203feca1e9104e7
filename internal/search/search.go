// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries web search APIs and returns unified,
// deduplicated results for the organization-mining pipeline.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/meshintel/orgminer/pkg/types"
)

// Provider searches a single web search API. Each provider implements
// this interface per the Strategy pattern.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchResult, error)
}

// Output holds the merged results and collection statistics.
type Output struct {
	Results        []types.SearchResult
	DupsRemoved    int
	ProviderErrors []string
}

// Search fans out the query to all providers concurrently, deduplicates
// by normalized URL and title, and returns at most cfg.MaxResults. A
// failed provider degrades coverage; it never fails the search unless
// every provider failed.
func Search(ctx context.Context, query string, providers []Provider, cfg types.SearchConfig, w io.Writer) (Output, error) {
	if strings.TrimSpace(query) == "" {
		return Output{}, fmt.Errorf("query is empty")
	}
	if len(providers) == 0 {
		return Output{}, fmt.Errorf("no search providers configured")
	}

	type providerResult struct {
		results []types.SearchResult
		err     error
		name    string
	}

	ch := make(chan providerResult, len(providers))
	var wg sync.WaitGroup

	for i, p := range providers {
		if i > 0 && cfg.InterProviderDelay > 0 {
			time.Sleep(cfg.InterProviderDelay)
		}
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			results, err := p.Search(ctx, query, cfg)
			ch <- providerResult{results: results, err: err, name: p.Name()}
		}(p)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.SearchResult
	var providerErrors []string
	for pr := range ch {
		if pr.err != nil {
			providerErrors = append(providerErrors, fmt.Sprintf("%s: %v", pr.name, pr.err))
			fmt.Fprintf(w, "warning: provider %s failed: %v\n", pr.name, pr.err)
			continue
		}
		all = append(all, pr.results...)
	}
	if len(all) == 0 && len(providerErrors) == len(providers) {
		return Output{ProviderErrors: providerErrors}, fmt.Errorf("all search providers failed")
	}

	deduped, removed := deduplicate(all)
	for i := range deduped {
		deduped[i].Position = i
	}
	if cfg.MaxResults > 0 && len(deduped) > cfg.MaxResults {
		deduped = deduped[:cfg.MaxResults]
	}

	return Output{
		Results:        deduped,
		DupsRemoved:    removed,
		ProviderErrors: providerErrors,
	}, nil
}

// deduplicate merges results that share a normalized URL or title.
// First seen wins; the merged record fills empty fields from later
// duplicates.
func deduplicate(results []types.SearchResult) ([]types.SearchResult, int) {
	seen := make(map[string]int) // dedup key → index in deduped
	var deduped []types.SearchResult
	removed := 0

	for _, r := range results {
		urlKey := "url:" + normalizeResultURL(r.URL)
		titleKey := "title:" + normalizeTitle(r.Title)

		if idx, ok := seen[urlKey]; ok && urlKey != "url:" {
			mergeInto(&deduped[idx], r)
			removed++
			continue
		}
		if idx, ok := seen[titleKey]; ok && titleKey != "title:" {
			mergeInto(&deduped[idx], r)
			removed++
			continue
		}

		idx := len(deduped)
		deduped = append(deduped, r)
		if urlKey != "url:" {
			seen[urlKey] = idx
		}
		if titleKey != "title:" {
			seen[titleKey] = idx
		}
	}
	return deduped, removed
}

// mergeInto fills empty fields of dst from src.
func mergeInto(dst *types.SearchResult, src types.SearchResult) {
	if dst.Title == "" && src.Title != "" {
		dst.Title = src.Title
	}
	if dst.Snippet == "" && src.Snippet != "" {
		dst.Snippet = src.Snippet
	}
	if dst.Source != src.Source && src.Source != "" && !strings.Contains(dst.Source, src.Source) {
		dst.Source = dst.Source + "," + src.Source
	}
}

// normalizeResultURL strips scheme, www, and trailing slash so mirror
// listings of the same page collapse.
func normalizeResultURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	path := strings.TrimRight(u.Path, "/")
	return host + path
}

// normalizeTitle returns a lowercased, punctuation-stripped title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		} else if r == '\t' || r == '\n' {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-40s  %s\n", "Rank", "Title", "URL", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range out.Results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		u := r.URL
		if len(u) > 40 {
			u = u[:37] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-40s  %s\n", i+1, title, u, r.Source)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}
