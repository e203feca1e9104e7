// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"testing"

	"github.com/meshintel/orgminer/internal/intent"
	"github.com/meshintel/orgminer/internal/tagger"
	"github.com/meshintel/orgminer/pkg/types"
)

func testRanker(t *testing.T) *Ranker {
	t.Helper()
	r, err := New(types.RankingConfig{
		SemanticWeight:      0.35,
		AuthorityWeight:     0.20,
		EntityOverlapWeight: 0.30,
		GeographicWeight:    0.15,
		SpamPenalty:         0.15,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func testIntent(t *testing.T, query string) types.QueryIntent {
	t.Helper()
	tables := intent.DefaultTables()
	a, err := intent.NewAnalyzer(tables, tagger.NewKeywordTagger(tables.Locations))
	if err != nil {
		t.Fatal(err)
	}
	return a.Analyze(query)
}

func TestNewRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.RankingConfig
	}{
		{
			name: "weights do not sum to one",
			cfg:  types.RankingConfig{SemanticWeight: 0.5, AuthorityWeight: 0.2, EntityOverlapWeight: 0.2, GeographicWeight: 0.2},
		},
		{
			name: "negative weight",
			cfg:  types.RankingConfig{SemanticWeight: 1.2, AuthorityWeight: -0.2, EntityOverlapWeight: 0, GeographicWeight: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("New() accepted invalid config")
			}
		})
	}
}

func TestRankAuthorityOrdering(t *testing.T) {
	r := testRanker(t)
	qi := testIntent(t, "European universities with AI research")

	// Same text, different hosts: authority alone decides.
	results := []types.SearchResult{
		{Title: "AI research at European universities", URL: "https://someblog.com/post"},
		{Title: "AI research at European universities", URL: "https://ethz.edu/research"},
		{Title: "AI research at European universities", URL: "https://ai-society.org/groups"},
	}
	ranked := r.Rank(results, qi, nil, nil)

	wantOrder := []string{"https://ethz.edu/research", "https://ai-society.org/groups", "https://someblog.com/post"}
	for i, want := range wantOrder {
		if ranked[i].Result.URL != want {
			t.Errorf("ranked[%d].URL = %s, want %s", i, ranked[i].Result.URL, want)
		}
	}
	for _, rr := range ranked {
		if rr.RelevanceScore < 0 || rr.RelevanceScore > 1 {
			t.Errorf("score %v for %s outside [0,1]", rr.RelevanceScore, rr.Result.URL)
		}
	}
}

func TestRankSemanticCoverage(t *testing.T) {
	r := testRanker(t)
	qi := testIntent(t, "machine learning scholarships")

	results := []types.SearchResult{
		{Title: "Gardening tips", Snippet: "grow tomatoes at home", URL: "https://a.com"},
		{Title: "Machine learning scholarships", Snippet: "funding for machine learning students", URL: "https://b.com"},
	}
	ranked := r.Rank(results, qi, nil, nil)
	if ranked[0].Result.URL != "https://b.com" {
		t.Fatalf("on-topic result ranked below off-topic: %+v", ranked)
	}
	if ranked[0].ComponentScores["semantic"] <= ranked[1].ComponentScores["semantic"] {
		t.Errorf("semantic scores not ordered: %v vs %v",
			ranked[0].ComponentScores["semantic"], ranked[1].ComponentScores["semantic"])
	}
}

func TestRankSpamPenalty(t *testing.T) {
	r := testRanker(t)
	qi := testIntent(t, "university scholarships")

	results := []types.SearchResult{
		{Title: "University scholarships", Snippet: "application guidance", URL: "https://a.org/x"},
		{Title: "University scholarships - you won't believe these tricks", Snippet: "click here now", URL: "https://b.org/x"},
	}
	ranked := r.Rank(results, qi, nil, nil)

	var clean, spam types.RankedResult
	for _, rr := range ranked {
		if rr.Result.URL == "https://a.org/x" {
			clean = rr
		} else {
			spam = rr
		}
	}
	if spam.ComponentScores["authority"] >= clean.ComponentScores["authority"] {
		t.Errorf("spam authority %v not below clean authority %v",
			spam.ComponentScores["authority"], clean.ComponentScores["authority"])
	}
}

func TestRankEntityOverlap(t *testing.T) {
	r := testRanker(t)
	qi := testIntent(t, "Stanford University admissions")

	queryEntities := []types.ExtractedEntity{{Text: "Stanford University", Label: types.LabelUniversity}}
	extracted := map[int][]types.ExtractedEntity{
		0: {{Text: "stanford university", Label: types.LabelUniversity}},
		1: {{Text: "Acme Corporation", Label: types.LabelOrganization}},
	}
	results := []types.SearchResult{
		{Title: "irrelevant title one", URL: "https://a.com"},
		{Title: "irrelevant title two", URL: "https://b.com"},
	}
	ranked := r.Rank(results, qi, extracted, queryEntities)

	for _, rr := range ranked {
		switch rr.Result.URL {
		case "https://a.com":
			if rr.ComponentScores["entity_overlap"] != 1.0 {
				t.Errorf("case-insensitive match overlap = %v, want 1.0", rr.ComponentScores["entity_overlap"])
			}
		case "https://b.com":
			if rr.ComponentScores["entity_overlap"] != 0.0 {
				t.Errorf("non-matching overlap = %v, want 0.0", rr.ComponentScores["entity_overlap"])
			}
		}
	}
}

func TestRankGeographic(t *testing.T) {
	r := testRanker(t)
	qi := testIntent(t, "universities in Germany")

	results := []types.SearchResult{
		{Title: "Top universities in Germany", URL: "https://a.com"},
		{Title: "Top universities worldwide", URL: "https://b.com"},
	}
	ranked := r.Rank(results, qi, nil, nil)
	for _, rr := range ranked {
		want := 0.0
		if rr.Result.URL == "https://a.com" {
			want = 1.0
		}
		if got := rr.ComponentScores["geographic"]; got != want {
			t.Errorf("geographic score for %s = %v, want %v", rr.Result.URL, got, want)
		}
	}
}

func TestRankTieBreakShorterPath(t *testing.T) {
	r := testRanker(t)
	qi := testIntent(t, "example university")

	results := []types.SearchResult{
		{Title: "Example University", URL: "https://example.edu/depts/science/groups/ai"},
		{Title: "Example University", URL: "https://example.edu/"},
	}
	ranked := r.Rank(results, qi, nil, nil)
	if ranked[0].Result.URL != "https://example.edu/" {
		t.Errorf("tie-break preferred deep link: %s", ranked[0].Result.URL)
	}
}

func TestRankEmptyInput(t *testing.T) {
	r := testRanker(t)
	if got := r.Rank(nil, testIntent(t, "anything"), nil, nil); len(got) != 0 {
		t.Errorf("Rank(nil) = %+v, want empty", got)
	}
}
