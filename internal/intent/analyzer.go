// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intent turns a raw query string into a structured QueryIntent:
// which domains the user cares about, where, what kinds of organizations,
// and the pattern and confidence tables downstream stages score with.
package intent

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/meshintel/orgminer/internal/tagger"
	"github.com/meshintel/orgminer/pkg/types"
)

// intentPrecedence breaks ties between equally scored domains. Earlier
// wins.
var intentPrecedence = []string{"education", "research", "business", "technology", "healthcare", "government", "nonprofit"}

// domainIntent maps a winning domain to the search-intent class.
var domainIntent = map[string]types.SearchIntentClass{
	"education":  types.IntentAcademic,
	"research":   types.IntentResearch,
	"business":   types.IntentBusiness,
	"technology": types.IntentBusiness,
	"healthcare": types.IntentHealthcare,
	"government": types.IntentGeneral,
	"nonprofit":  types.IntentGeneral,
}

// Analyzer derives QueryIntent values from query strings. Stateless apart
// from its read-only tables; safe for concurrent use.
type Analyzer struct {
	tables *Tables
	tagger tagger.Tagger
}

// NewAnalyzer builds an analyzer over the given tables and tagger. The
// tagger may be nil; analysis then relies on tables alone. Table
// validation failures are construction errors, never deferred to query
// time.
func NewAnalyzer(tables *Tables, tg tagger.Tagger) (*Analyzer, error) {
	if tables == nil {
		tables = DefaultTables()
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("building intent analyzer: %w", err)
	}
	return &Analyzer{tables: tables, tagger: tg}, nil
}

// Analyze derives the intent behind query. It never fails: an empty or
// unintelligible query yields a general intent with empty sets.
func (a *Analyzer) Analyze(query string) types.QueryIntent {
	cleaned := strings.Join(strings.Fields(query), " ")
	out := types.QueryIntent{
		Query:             query,
		CleanedQuery:      cleaned,
		SearchIntent:      types.IntentGeneral,
		ConfidenceFactors: map[string]float64{},
	}
	if cleaned == "" {
		out.ConfidenceFactors["base_organization"] = 0.5
		return out
	}
	lower := strings.ToLower(cleaned)

	a.tagQuery(cleaned, &out)

	// Domain scoring: count keyword hits per domain.
	scores := make(map[string]int)
	for domain, keywords := range a.tables.DomainKeywords {
		for _, kw := range keywords {
			if matchKeyword(lower, kw) {
				scores[domain]++
			}
		}
	}
	for domain, n := range scores {
		if n > 0 {
			out.DomainFocus = append(out.DomainFocus, domain)
		}
	}
	sort.Strings(out.DomainFocus)

	for _, domain := range out.DomainFocus {
		out.OrganizationTypes = appendUnique(out.OrganizationTypes, a.tables.DomainOrgTypes[domain]...)
	}
	sort.Strings(out.OrganizationTypes)

	out.SearchIntent = classify(scores)
	out.ConfidenceFactors = confidenceFactors(out)
	out.Patterns = a.buildPatterns(out)
	out.Synonyms = a.expand(lower, a.tables.Synonyms)
	out.RelatedTerms = a.expand(lower, a.tables.RelatedTerms)
	return out
}

// tagQuery runs the tagger over the query to seed geographic focus and
// entity types. Tagger absence only reduces recall.
func (a *Analyzer) tagQuery(query string, out *types.QueryIntent) {
	if a.tagger == nil {
		return
	}
	for _, span := range a.tagger.Tag(query) {
		switch span.Label {
		case types.LabelLocation:
			out.GeographicFocus = appendUnique(out.GeographicFocus, strings.ToLower(span.Text))
		case types.LabelOrganization, types.LabelUniversity:
			out.EntityTypes = appendUnique(out.EntityTypes, "organization")
		}
	}
	// Gazetteer sweep catches aliases the tagger labels differently.
	lower := strings.ToLower(query)
	for normalized, aliases := range a.tables.Locations {
		for _, alias := range aliases {
			if containsWord(lower, alias) {
				out.GeographicFocus = appendUnique(out.GeographicFocus, normalized)
				break
			}
		}
	}
	sort.Strings(out.GeographicFocus)
}

// classify picks the search intent from domain hit counts. Highest count
// wins; ties fall to the fixed precedence order; no hits means general.
func classify(scores map[string]int) types.SearchIntentClass {
	best, bestScore := "", 0
	for _, domain := range intentPrecedence {
		if scores[domain] > bestScore {
			best, bestScore = domain, scores[domain]
		}
	}
	if best == "" {
		return types.IntentGeneral
	}
	return domainIntent[best]
}

// confidenceFactors produces the additive weight table for the intent.
// Weights follow the search-intent class; geographic and entity factors
// switch on only when the query gave us something to match against.
func confidenceFactors(qi types.QueryIntent) map[string]float64 {
	factors := map[string]float64{
		"base_organization":     0.5,
		"structured_data_bonus": 0.2,
	}
	switch qi.SearchIntent {
	case types.IntentAcademic, types.IntentResearch:
		factors["domain_match"] = 0.4
		factors["url_domain_bonus"] = 0.3
		factors["title_match"] = 0.2
	case types.IntentBusiness, types.IntentHealthcare:
		factors["domain_match"] = 0.3
		factors["url_domain_bonus"] = 0.2
		factors["title_match"] = 0.2
	default:
		factors["domain_match"] = 0.3
		factors["title_match"] = 0.1
	}
	if len(qi.GeographicFocus) > 0 {
		factors["geographic_match"] = 0.2
	}
	if len(qi.EntityTypes) > 0 {
		factors["entity_type_match"] = 0.2
	}
	return factors
}

// buildPatterns synthesizes the inclusion/boost pattern sets for the
// active organization types plus the global exclusion set.
func (a *Analyzer) buildPatterns(qi types.QueryIntent) types.PatternSet {
	ps := types.PatternSet{Exclude: append([]string(nil), a.tables.ExcludePatterns...)}

	for _, domain := range qi.DomainFocus {
		switch domain {
		case "education":
			ps.Include = append(ps.Include,
				`(?i)\b(university|université|universität|universidad|università|college|institute|school|academy)\b`,
				`(?i)\b(education|academic|phd|graduate|undergraduate)\b`)
			ps.Domain = append(ps.Domain, `\.edu$`, `\.ac\.`)
		case "business", "technology":
			ps.Include = append(ps.Include,
				`(?i)\b(company|corporation|startup|enterprise|business|accelerator)\b`,
				`(?i)\b(inc|ltd|llc|corp)\b`)
		case "research":
			ps.Include = append(ps.Include,
				`(?i)\b(research|laboratory|institute|center|centre|foundation)\b`,
				`(?i)\b(science|scientific|innovation)\b`)
		case "healthcare":
			ps.Include = append(ps.Include, `(?i)\b(hospital|clinic|medical|health)\b`)
		case "government":
			ps.Include = append(ps.Include, `(?i)\b(ministry|agency|department|federal)\b`)
		case "nonprofit":
			ps.Include = append(ps.Include, `(?i)\b(foundation|association|charity|ngo)\b`)
		}
	}
	for _, loc := range qi.GeographicFocus {
		ps.Boost = append(ps.Boost, `(?i)\b`+regexp.QuoteMeta(loc)+`\b`)
	}
	for _, ot := range qi.OrganizationTypes {
		ps.Boost = append(ps.Boost, `(?i)\b`+regexp.QuoteMeta(ot)+`\b`)
	}
	return ps
}

// expand returns the table entries triggered by words present in the
// lowercased query.
func (a *Analyzer) expand(lower string, table map[string][]string) []string {
	var out []string
	for trigger, terms := range table {
		if matchKeyword(lower, trigger) {
			out = appendUnique(out, terms...)
		}
	}
	sort.Strings(out)
	return out
}

// matchKeyword reports whether kw occurs in the lowercased query on word
// boundaries, in singular or plural form.
func matchKeyword(lower, kw string) bool {
	if containsWord(lower, kw) {
		return true
	}
	if strings.HasSuffix(kw, "y") {
		return containsWord(lower, kw[:len(kw)-1]+"ies")
	}
	return containsWord(lower, kw+"s")
}

func compilePattern(src string) (*regexp.Regexp, error) {
	return regexp.Compile(src)
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, have := range dst {
			if have == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}

func containsWord(haystack, needle string) bool {
	idx := strings.Index(haystack, needle)
	for idx >= 0 {
		left := idx == 0 || !isAlnum(haystack[idx-1])
		rightIdx := idx + len(needle)
		right := rightIdx >= len(haystack) || !isAlnum(haystack[rightIdx])
		if left && right {
			return true
		}
		next := strings.Index(haystack[idx+1:], needle)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
