// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/meshintel/orgminer/internal/tagger"
	"github.com/meshintel/orgminer/pkg/types"
)

// Base confidences by extraction method.
const (
	confTagger  = 0.7
	confPattern = 0.8
	confMoney   = 0.9

	contextWindow = 100
)

// Extractor surfaces typed entity candidates from result text, scored
// against a QueryIntent. Stateless apart from its tagger and config;
// safe for the per-result fan-out.
type Extractor struct {
	tagger tagger.Tagger
	cfg    types.ExtractionConfig

	// now is stubbed in tests for deterministic deadline resolution.
	now func() time.Time
}

// New builds an extractor. The tagger may be nil; extraction then relies
// on the pattern layer alone.
func New(tg tagger.Tagger, cfg types.ExtractionConfig) *Extractor {
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = contextWindow
	}
	return &Extractor{tagger: tg, cfg: cfg, now: time.Now}
}

// Extract returns entity candidates found in text. Empty text yields an
// empty list. sourceURL is best effort: a malformed URL disables the
// URL-domain bonus but never aborts extraction. Entity confidence is the
// method base plus intent-weighted bonuses, clamped to [0,1].
func (e *Extractor) Extract(text, sourceURL string, intent types.QueryIntent) []types.ExtractedEntity {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if e.cfg.MaxTextLength > 0 && len(text) > e.cfg.MaxTextLength {
		text = truncateRunes(text, e.cfg.MaxTextLength)
	}

	exclude := compileAll(intent.Patterns.Exclude)
	include := compileAll(intent.Patterns.Include)
	boost := compileAll(intent.Patterns.Boost)
	urlBonus := e.urlDomainBonus(sourceURL, intent)

	var out []types.ExtractedEntity
	for _, s := range e.collect(text) {
		if matchesAny(exclude, s.text) || excludedContext(exclude, text, s) {
			continue
		}

		conf := baseConfidence(s)
		if s.label == types.LabelOrganization || s.label == types.LabelUniversity {
			if matchesAny(include, s.text) {
				conf += intent.ConfidenceFactors["domain_match"]
			}
			if matchesAny(boost, s.text) {
				conf += intent.ConfidenceFactors["entity_type_match"]
			}
			conf += urlBonus
			if geoMatch(intent.GeographicFocus, text) {
				conf += intent.ConfidenceFactors["geographic_match"]
			}
		}

		out = append(out, types.ExtractedEntity{
			Text:       s.text,
			Normalized: s.norm,
			Label:      s.label,
			Confidence: clamp01(conf),
			StartPos:   s.start,
			EndPos:     s.end,
			Context:    contextAround(text, s.start, s.end, e.cfg.ContextWindow),
			Source:     sourceURL,
			Method:     methodFor(s.label),
		})
	}
	return out
}

// collect gathers raw spans from the tagger and the pattern layer, with
// university-class promotion applied to organization spans.
func (e *Extractor) collect(text string) []span {
	var spans []span
	if e.tagger != nil {
		for _, ts := range e.tagger.Tag(text) {
			s := span{text: ts.Text, label: ts.Label, start: ts.Start, end: ts.End}
			if s.label == types.LabelOrganization && isUniversityName(s.text) {
				s.label = types.LabelUniversity
			}
			spans = append(spans, s)
		}
	}
	spans = append(spans, findMoney(text)...)
	spans = append(spans, findDeadlines(text, e.now())...)
	return spans
}

// urlDomainBonus returns the intent's URL bonus when the source host is
// an academic domain and the intent rewards that.
func (e *Extractor) urlDomainBonus(sourceURL string, intent types.QueryIntent) float64 {
	if sourceURL == "" {
		return 0
	}
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return 0
	}
	host := strings.ToLower(u.Host)
	if strings.HasSuffix(host, ".edu") || strings.Contains(host, ".ac.") {
		return intent.ConfidenceFactors["url_domain_bonus"]
	}
	return 0
}

func baseConfidence(s span) float64 {
	switch s.label {
	case types.LabelMoney:
		return confMoney
	case types.LabelDeadline:
		return confPattern
	default:
		return confTagger
	}
}

func methodFor(label types.EntityLabel) string {
	switch label {
	case types.LabelMoney, types.LabelDeadline:
		return "pattern"
	default:
		return "tagger"
	}
}

// excludedContext checks the sentence holding the span against the
// exclusion set, so "17 Postdoctoral Fellowships at Duke University"
// suppresses the embedded organization span too.
func excludedContext(exclude []*regexp.Regexp, text string, s span) bool {
	start := strings.LastIndexAny(text[:s.start], ".!?\n") + 1
	end := s.end
	if idx := strings.IndexAny(text[end:], ".!?\n"); idx >= 0 {
		end += idx
	} else {
		end = len(text)
	}
	sentence := strings.TrimSpace(text[start:end])
	return matchesAny(exclude, sentence)
}

func geoMatch(focus []string, text string) bool {
	lower := strings.ToLower(text)
	for _, f := range focus {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

func contextAround(text string, start, end, window int) string {
	half := window / 2
	from := start - half
	if from < 0 {
		from = 0
	}
	to := end + half
	if to > len(text) {
		to = len(text)
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to > end && to < len(text) && !utf8.RuneStart(text[to]) {
		to--
	}
	return strings.TrimSpace(text[from:to])
}

// truncateRunes cuts s at limit bytes, backing the cut up to a rune
// boundary so truncation never leaves invalid UTF-8.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// compileAll compiles pattern sources, skipping any that fail. Broken
// patterns are a table-validation concern; here they only lose coverage.
func compileAll(sources []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}

func matchesAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
