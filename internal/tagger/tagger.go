// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tagger provides the entity-tagging capability used by the
// intent analyzer and the entity extractor. A Tagger surfaces typed spans
// from plain text; the keyword tagger is the always-available variant, and
// an NLP-backed implementation can be substituted at construction time so
// the rest of the pipeline never branches on availability.
package tagger

import (
	"regexp"
	"strings"

	"github.com/meshintel/orgminer/pkg/types"
)

// Span is one tagged region of text.
type Span struct {
	Text  string
	Label types.EntityLabel
	Start int
	End   int
}

// Tagger surfaces typed spans from text. Implementations must be safe for
// concurrent use: extraction fans out across search results.
type Tagger interface {
	Name() string
	Tag(text string) []Span
}

// orgSpanPattern matches capitalized phrases anchored on an
// institutional indicator word, covering both the suffix form
// ("Harvard University", "Technische Universität München") and the
// indicator-first form ("University of Helsinki"). Unicode letter
// classes keep internationalized names intact.
var orgSpanPattern = regexp.MustCompile(
	`(?:\p{Lu}[\p{L}\d&.'-]*\s+(?:(?:of|for|de|di|für)\s+)?)*` +
		`(?:University|Université|Universidad|Università|Universität|Universiteit|College|Institute|Institut|School|Academy|Polytechnic|Conservatory|Hochschule|Laboratory|Foundation|Corporation|Company|Agency|Ministry|Council)\b` +
		`(?:\s+(?:of|for|de|di)\s+\p{Lu}[\p{L}\d&.'-]*(?:\s+\p{Lu}[\p{L}\d&.'-]*)*|(?:\s+\p{Lu}[\p{L}\d&.'-]*)+)?`)

// KeywordTagger is the fallback tagger: a gazetteer for locations plus
// lexical patterns for organization-like spans. Reduced recall compared to
// a full NLP model, never a failure.
type KeywordTagger struct {
	// locations maps a normalized place name to its surface aliases,
	// all lowercased.
	locations map[string][]string
}

// NewKeywordTagger builds a keyword tagger over the given gazetteer.
// The map may be nil; the tagger then only finds organization spans.
func NewKeywordTagger(locations map[string][]string) *KeywordTagger {
	return &KeywordTagger{locations: locations}
}

// Name returns the tagger identifier.
func (t *KeywordTagger) Name() string { return "keyword" }

// Tag returns organization and location spans found in text.
func (t *KeywordTagger) Tag(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	for _, loc := range orgSpanPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		name := text[start:end]
		// Leading article is part of the sentence, not the name.
		if trimmed, ok := strings.CutPrefix(name, "The "); ok {
			name = trimmed
			start += len("The ")
		}
		name = strings.TrimSpace(name)
		// A bare indicator word is a sentence fragment, not a name.
		if !strings.ContainsRune(name, ' ') {
			continue
		}
		spans = append(spans, Span{
			Text:  name,
			Label: types.LabelOrganization,
			Start: start,
			End:   end,
		})
	}

	spans = append(spans, t.tagLocations(text)...)
	return spans
}

// tagLocations finds gazetteer aliases in text. Matching is
// case-insensitive on word boundaries; the span text is the normalized
// place name, not the surface alias.
func (t *KeywordTagger) tagLocations(text string) []Span {
	if len(t.locations) == 0 {
		return nil
	}
	lower := strings.ToLower(text)

	var spans []Span
	for normalized, aliases := range t.locations {
		for _, alias := range aliases {
			idx := indexWord(lower, alias)
			if idx < 0 {
				continue
			}
			spans = append(spans, Span{
				Text:  normalized,
				Label: types.LabelLocation,
				Start: idx,
				End:   idx + len(alias),
			})
			break // one span per normalized place is enough
		}
	}
	return spans
}

// indexWord returns the index of needle in haystack when it occurs on word
// boundaries, or -1. Both arguments must already be lowercased.
func indexWord(haystack, needle string) int {
	if needle == "" {
		return -1
	}
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return -1
		}
		idx += from
		before := idx - 1
		after := idx + len(needle)
		boundedLeft := before < 0 || !isWordByte(haystack[before])
		boundedRight := after >= len(haystack) || !isWordByte(haystack[after])
		if boundedLeft && boundedRight {
			return idx
		}
		from = idx + 1
		if from >= len(haystack) {
			return -1
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
