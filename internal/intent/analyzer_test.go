// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"testing"

	"github.com/meshintel/orgminer/internal/tagger"
	"github.com/meshintel/orgminer/pkg/types"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	tables := DefaultTables()
	a, err := NewAnalyzer(tables, tagger.NewKeywordTagger(tables.Locations))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}
	return a
}

func TestAnalyzeSearchIntent(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name       string
		query      string
		wantIntent types.SearchIntentClass
		wantDomain string
		wantGeo    string
	}{
		{
			name:       "academic query",
			query:      "European universities with AI research",
			wantIntent: types.IntentAcademic,
			wantDomain: "education",
			wantGeo:    "europe",
		},
		{
			name:       "business query",
			query:      "startup accelerators in Silicon Valley",
			wantIntent: types.IntentBusiness,
			wantDomain: "business",
			wantGeo:    "silicon valley",
		},
		{
			name:       "research query",
			query:      "national laboratories doing fusion science",
			wantIntent: types.IntentResearch,
			wantDomain: "research",
		},
		{
			name:       "healthcare query",
			query:      "best hospitals for cardiology",
			wantIntent: types.IntentHealthcare,
			wantDomain: "healthcare",
		},
		{
			name:       "no domain signal",
			query:      "things to do on a rainy day",
			wantIntent: types.IntentGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qi := a.Analyze(tt.query)
			if qi.SearchIntent != tt.wantIntent {
				t.Errorf("SearchIntent = %q, want %q", qi.SearchIntent, tt.wantIntent)
			}
			if tt.wantDomain != "" && !qi.HasDomain(tt.wantDomain) {
				t.Errorf("DomainFocus = %v, want it to include %q", qi.DomainFocus, tt.wantDomain)
			}
			if tt.wantGeo != "" {
				found := false
				for _, g := range qi.GeographicFocus {
					if g == tt.wantGeo {
						found = true
					}
				}
				if !found {
					t.Errorf("GeographicFocus = %v, want it to include %q", qi.GeographicFocus, tt.wantGeo)
				}
			}
		})
	}
}

func TestAnalyzeEmptyQuery(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		qi := a.Analyze(query)
		if qi.SearchIntent != types.IntentGeneral {
			t.Errorf("Analyze(%q).SearchIntent = %q, want %q", query, qi.SearchIntent, types.IntentGeneral)
		}
		if len(qi.DomainFocus) != 0 || len(qi.GeographicFocus) != 0 {
			t.Errorf("Analyze(%q) produced non-empty focus sets: %+v", query, qi)
		}
	}
}

func TestAnalyzeOrganizationTypes(t *testing.T) {
	a := newTestAnalyzer(t)

	qi := a.Analyze("graduate scholarships at German universities")
	for _, want := range []string{"university", "college", "school"} {
		found := false
		for _, ot := range qi.OrganizationTypes {
			if ot == want {
				found = true
			}
		}
		if !found {
			t.Errorf("OrganizationTypes = %v, missing %q", qi.OrganizationTypes, want)
		}
	}
}

func TestAnalyzeConfidenceFactors(t *testing.T) {
	a := newTestAnalyzer(t)

	qi := a.Analyze("European universities with AI research")
	if got := qi.ConfidenceFactors["domain_match"]; got != 0.4 {
		t.Errorf("domain_match = %v, want 0.4", got)
	}
	if got := qi.ConfidenceFactors["url_domain_bonus"]; got != 0.3 {
		t.Errorf("url_domain_bonus = %v, want 0.3", got)
	}
	if got := qi.ConfidenceFactors["geographic_match"]; got != 0.2 {
		t.Errorf("geographic_match = %v, want 0.2", got)
	}
	for name, v := range qi.ConfidenceFactors {
		if v < 0 || v > 1 {
			t.Errorf("factor %q = %v, want within [0,1]", name, v)
		}
	}

	// Without a location the geographic factor stays off.
	qi = a.Analyze("scholarship deadlines")
	if _, ok := qi.ConfidenceFactors["geographic_match"]; ok {
		t.Error("geographic_match present for query without location")
	}
}

func TestAnalyzePatterns(t *testing.T) {
	a := newTestAnalyzer(t)

	qi := a.Analyze("European universities with AI research")
	if len(qi.Patterns.Include) == 0 {
		t.Fatal("Patterns.Include is empty for an education query")
	}
	if len(qi.Patterns.Exclude) == 0 {
		t.Fatal("Patterns.Exclude is empty; global exclusions must always apply")
	}
	foundEdu := false
	for _, d := range qi.Patterns.Domain {
		if d == `\.edu$` {
			foundEdu = true
		}
	}
	if !foundEdu {
		t.Errorf("Patterns.Domain = %v, want it to include the .edu pattern", qi.Patterns.Domain)
	}
}

func TestAnalyzeSynonymExpansion(t *testing.T) {
	a := newTestAnalyzer(t)

	qi := a.Analyze("university scholarship programs")
	if len(qi.Synonyms) == 0 {
		t.Fatal("Synonyms is empty")
	}
	found := false
	for _, s := range qi.Synonyms {
		if s == "fellowship" {
			found = true
		}
	}
	if !found {
		t.Errorf("Synonyms = %v, want it to include %q", qi.Synonyms, "fellowship")
	}
}

func TestNewAnalyzerRejectsBrokenTables(t *testing.T) {
	tables := DefaultTables()
	tables.ExcludePatterns = append(tables.ExcludePatterns, `([unclosed`)
	if _, err := NewAnalyzer(tables, nil); err == nil {
		t.Fatal("NewAnalyzer() accepted a non-compiling exclude pattern")
	}

	tables = DefaultTables()
	tables.DomainOrgTypes = map[string][]string{}
	if _, err := NewAnalyzer(tables, nil); err == nil {
		t.Fatal("NewAnalyzer() accepted keywords without org-type mapping")
	}
}
