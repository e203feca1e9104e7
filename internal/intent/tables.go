// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// Tables holds the static keyword and pattern data the analyzer consults.
// Loaded once at construction and treated as immutable afterwards, so a
// single Tables value is safe to share across concurrent pipelines.
type Tables struct {
	// DomainKeywords maps a subject domain to the lowercase keywords
	// that signal it in a query.
	DomainKeywords map[string][]string `yaml:"domain_keywords"`

	// DomainOrgTypes maps a subject domain to the organization-type
	// labels relevant to it.
	DomainOrgTypes map[string][]string `yaml:"domain_org_types"`

	// Locations is the gazetteer: normalized place name to lowercase
	// surface aliases.
	Locations map[string][]string `yaml:"locations"`

	// Synonyms maps a query word to equivalent terms used for semantic
	// expansion during ranking.
	Synonyms map[string][]string `yaml:"synonyms"`

	// RelatedTerms maps a query word to loosely associated terms, scored
	// lower than synonyms by the ranker.
	RelatedTerms map[string][]string `yaml:"related_terms"`

	// ExcludePatterns are regex sources applied globally to candidate
	// text. A hit marks the candidate as noise.
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// DefaultTables returns the built-in table set.
func DefaultTables() *Tables {
	return &Tables{
		DomainKeywords: map[string][]string{
			"education":  {"university", "college", "school", "institute", "academy", "phd", "graduate", "undergraduate", "academic", "campus", "degree", "scholarship", "fellowship"},
			"research":   {"research", "laboratory", "institute", "science", "foundation", "innovation", "r&d"},
			"business":   {"company", "startup", "business", "accelerator", "incubator", "enterprise", "corporation", "venture"},
			"healthcare": {"hospital", "clinic", "medical", "health", "pharma", "biotech"},
			"technology": {"technology", "software", "engineering", "ai", "tech", "computing", "data"},
			"government": {"government", "ministry", "agency", "federal", "municipal", "public sector"},
			"nonprofit":  {"nonprofit", "non-profit", "ngo", "charity", "foundation", "association"},
		},
		DomainOrgTypes: map[string][]string{
			"education":  {"university", "college", "school", "institute", "academy"},
			"research":   {"laboratory", "research center", "institute", "foundation"},
			"business":   {"company", "corporation", "startup", "accelerator"},
			"healthcare": {"hospital", "clinic", "medical center"},
			"technology": {"company", "laboratory", "startup"},
			"government": {"agency", "ministry", "department"},
			"nonprofit":  {"foundation", "association", "charity"},
		},
		Locations: map[string][]string{
			"europe":         {"europe", "european"},
			"north america":  {"north america", "usa", "united states", "america", "canada"},
			"asia":           {"asia", "asian"},
			"silicon valley": {"silicon valley", "bay area"},
			"united kingdom": {"uk", "united kingdom", "britain", "british", "england"},
			"germany":        {"germany", "german"},
			"france":         {"france", "french"},
			"australia":      {"australia", "australian"},
			"india":          {"india", "indian"},
			"china":          {"china", "chinese"},
			"japan":          {"japan", "japanese"},
		},
		Synonyms: map[string][]string{
			"university":  {"college", "institution", "school", "academia"},
			"scholarship": {"fellowship", "grant", "financial aid", "bursary"},
			"research":    {"study", "investigation", "science"},
			"startup":     {"company", "venture", "new business"},
			"program":     {"course", "degree", "curriculum"},
		},
		RelatedTerms: map[string][]string{
			"university":  {"higher education", "academic institution", "campus"},
			"scholarship": {"tuition assistance", "stipend", "funding"},
			"program":     {"major", "course of study"},
			"research":    {"laboratory", "publication", "faculty"},
		},
		ExcludePatterns: []string{
			`^\d+\s+\w+`,
			`^(home|about|contact|blog|menu|search)$`,
			`(?i)\b(share (on|this)|tweet|follow us|subscribe|sign up|log ?in)\b`,
			`(?i)\bhow\s+to\b`,
			`(?i)^\d+\s+(best|top|tips|free)\b`,
			`^(SAT|ACT|GRE|GMAT|TOEFL|IELTS|FAQ|PDF)$`,
		},
	}
}

// LoadTables reads a Tables document from a YAML file. Any section left
// empty in the file falls back to the built-in default, so a file may
// override only the sections it cares about.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables file: %w", err)
	}

	t := &Tables{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parsing tables file %s: %w", path, err)
	}

	def := DefaultTables()
	if len(t.DomainKeywords) == 0 {
		t.DomainKeywords = def.DomainKeywords
	}
	if len(t.DomainOrgTypes) == 0 {
		t.DomainOrgTypes = def.DomainOrgTypes
	}
	if len(t.Locations) == 0 {
		t.Locations = def.Locations
	}
	if len(t.Synonyms) == 0 {
		t.Synonyms = def.Synonyms
	}
	if len(t.RelatedTerms) == 0 {
		t.RelatedTerms = def.RelatedTerms
	}
	if len(t.ExcludePatterns) == 0 {
		t.ExcludePatterns = def.ExcludePatterns
	}
	return t, nil
}

// Validate checks that every domain with keywords also has an org-type
// mapping and that all exclusion patterns compile. Construction-time
// check; a broken table set must not reach query processing.
func (t *Tables) Validate() error {
	if len(t.DomainKeywords) == 0 {
		return fmt.Errorf("tables: domain_keywords is empty")
	}
	for domain := range t.DomainKeywords {
		if len(t.DomainOrgTypes[domain]) == 0 {
			return fmt.Errorf("tables: domain %q has keywords but no org types", domain)
		}
	}
	for _, pat := range t.ExcludePatterns {
		if _, err := compilePattern(pat); err != nil {
			return fmt.Errorf("tables: exclude pattern %q: %w", pat, err)
		}
	}
	return nil
}
