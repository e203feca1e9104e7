// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the orgminer pipeline.
// See docs/ARCHITECTURE § Pipeline Interface, § Data Structures.
package types

// SearchIntentClass classifies the overall goal of a query. The set is
// closed: Analyze always returns one of these values.
type SearchIntentClass string

const (
	IntentAcademic   SearchIntentClass = "academic"
	IntentBusiness   SearchIntentClass = "business"
	IntentResearch   SearchIntentClass = "research"
	IntentHealthcare SearchIntentClass = "healthcare"
	IntentGeneral    SearchIntentClass = "general"
)

// PatternSet groups the match patterns generated for a query. Include
// patterns raise candidate confidence; Exclude patterns suppress known
// noise (navigation text, share prompts, numeric listicle titles); Boost
// patterns mark terms worth an extra confidence bump; Domain patterns
// match trusted URL suffixes.
type PatternSet struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
	Boost   []string `json:"boost,omitempty" yaml:"boost,omitempty"`
	Domain  []string `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// QueryIntent is the structured interpretation of a free-text query.
// It is built once per query by the intent analyzer and then passed by
// value into extraction and ranking; no component mutates it.
type QueryIntent struct {
	// Query is the original query text.
	Query string `json:"query" yaml:"query"`

	// CleanedQuery is the lowercased, stop-word-reduced form used for
	// term matching.
	CleanedQuery string `json:"cleaned_query" yaml:"cleaned_query"`

	// EntityTypes names the kinds of entities the query is after
	// (e.g. "organization", "scholarship").
	EntityTypes []string `json:"entity_types" yaml:"entity_types"`

	// GeographicFocus holds normalized place names mentioned or implied.
	GeographicFocus []string `json:"geographic_focus" yaml:"geographic_focus"`

	// DomainFocus holds subject domains with at least one keyword hit
	// (education, research, business, healthcare, technology,
	// government, nonprofit).
	DomainFocus []string `json:"domain_focus" yaml:"domain_focus"`

	// OrganizationTypes holds org-type labels derived from DomainFocus
	// through the static domain→type table.
	OrganizationTypes []string `json:"organization_types" yaml:"organization_types"`

	// SearchIntent is the overall classification, always one of the
	// SearchIntentClass constants.
	SearchIntent SearchIntentClass `json:"search_intent" yaml:"search_intent"`

	// ConfidenceFactors maps factor names (domain_match,
	// geographic_match, url_domain_bonus, title_match) to additive
	// weights in [0,1].
	ConfidenceFactors map[string]float64 `json:"confidence_factors" yaml:"confidence_factors"`

	// Patterns holds the generated inclusion/exclusion pattern sets.
	Patterns PatternSet `json:"patterns" yaml:"patterns"`

	// Synonyms and RelatedTerms expand the query vocabulary for the
	// ranker's semantic sub-score.
	Synonyms     []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	RelatedTerms []string `json:"related_terms,omitempty" yaml:"related_terms,omitempty"`
}

// HasGeographicFocus reports whether the query names any place or region.
func (qi QueryIntent) HasGeographicFocus() bool {
	return len(qi.GeographicFocus) > 0
}

// HasDomain reports whether domain is one of the query's focus domains.
func (qi QueryIntent) HasDomain(domain string) bool {
	for _, d := range qi.DomainFocus {
		if d == domain {
			return true
		}
	}
	return false
}
