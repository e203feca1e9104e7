// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package postproc cleans, deduplicates, validates, and quality-gates
// organization candidates. Nothing is silently discarded: every record
// that fails a stage lands in the reclassified bucket with a reason.
package postproc

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/meshintel/orgminer/pkg/types"
)

// spamPhrases is the fixed blacklist for promotional and lottery-style
// language in names and descriptions.
var spamPhrases = []string{
	"click here", "limited time offer", "act now", "you won't believe",
	"congratulations", "claim your prize", "100% free", "winner",
	"make money fast", "work from home",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Processor runs the post-processing pipeline. Construction validates
// config; a Processor that exists will not produce misleading counts
// from broken thresholds.
type Processor struct {
	cfg types.ProcessingConfig
}

// New builds a processor, failing fast on invalid config.
func New(cfg types.ProcessingConfig) (*Processor, error) {
	if cfg.ConfidenceThreshold < 0 {
		return nil, fmt.Errorf("confidence threshold %v is negative", cfg.ConfidenceThreshold)
	}
	if cfg.MinNameLength < 1 {
		return nil, fmt.Errorf("minimum name length %d must be at least 1", cfg.MinNameLength)
	}
	if cfg.MaxDescriptionLength < 0 {
		return nil, fmt.Errorf("max description length %d is negative", cfg.MaxDescriptionLength)
	}
	return &Processor{cfg: cfg}, nil
}

// Process runs clean, deduplicate, validate, and quality-filter over the
// candidates, strictly in that order. The input slice is not mutated.
func (p *Processor) Process(candidates []types.Organization) types.ProcessingResult {
	start := time.Now()
	res := types.ProcessingResult{
		InputCount:        len(candidates),
		ValidationResults: map[string]int{},
	}

	cleaned := make([]types.Organization, len(candidates))
	for i, c := range candidates {
		cleaned[i] = p.clean(c)
	}

	var kept []types.Organization
	if p.cfg.DeduplicationEnabled {
		kept = p.dedup(cleaned, &res)
	} else {
		kept = cleaned
	}

	for _, c := range kept {
		p.validate(c, &res)
		if reason := p.qualityReason(c); reason != "" {
			res.FilteredCount++
			res.Reclassified = append(res.Reclassified, types.ReclassifiedRecord{
				Organization: c,
				Stage:        "quality",
				Reason:       reason,
			})
			continue
		}
		res.Organizations = append(res.Organizations, c)
	}

	res.OutputCount = len(res.Organizations)
	res.ProcessingTime = time.Since(start)
	return res
}

// clean normalizes whitespace, truncates the description, and normalizes
// the URL. A URL that still has no host after scheme defaulting is
// cleared rather than kept broken.
func (p *Processor) clean(org types.Organization) types.Organization {
	org.Name = strings.TrimSpace(whitespaceRe.ReplaceAllString(org.Name, " "))
	org.Description = strings.TrimSpace(whitespaceRe.ReplaceAllString(org.Description, " "))

	if p.cfg.MaxDescriptionLength > 0 && len(org.Description) > p.cfg.MaxDescriptionLength {
		org.Description = truncateRunes(org.Description, p.cfg.MaxDescriptionLength) + "..."
	}

	org.URL = normalizeURL(org.URL)
	org.SourceURL = normalizeURL(org.SourceURL)
	return org
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

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.String()
}

// dedup drops candidates whose normalized name or URL was already seen.
// First seen wins; duplicates go to the reclassified bucket.
func (p *Processor) dedup(orgs []types.Organization, res *types.ProcessingResult) []types.Organization {
	seenName := make(map[string]bool)
	seenURL := make(map[string]bool)

	var kept []types.Organization
	for _, org := range orgs {
		nameKey := strings.ToLower(strings.TrimSpace(org.Name))
		urlKey := strings.ToLower(strings.TrimRight(org.URL, "/"))
		urlKey = strings.TrimPrefix(urlKey, "https://")
		urlKey = strings.TrimPrefix(urlKey, "http://")
		urlKey = strings.TrimPrefix(urlKey, "www.")

		dup := nameKey != "" && seenName[nameKey] || urlKey != "" && seenURL[urlKey]
		if dup {
			res.DuplicatesRemoved++
			res.Reclassified = append(res.Reclassified, types.ReclassifiedRecord{
				Organization: org,
				Stage:        "dedup",
				Reason:       "duplicate name or url",
			})
			continue
		}
		if nameKey != "" {
			seenName[nameKey] = true
		}
		if urlKey != "" {
			seenURL[urlKey] = true
		}
		kept = append(kept, org)
	}
	return kept
}

// validate runs the independent structural checks and counts failures.
// Structural failure alone does not drop a candidate; the quality gate
// decides that.
func (p *Processor) validate(org types.Organization, res *types.ProcessingResult) {
	if org.Name == "" {
		res.ValidationResults["empty_name"]++
	}
	if org.URL != "" {
		u, err := url.Parse(org.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.ValidationResults["invalid_url"]++
		}
	} else {
		res.ValidationResults["missing_url"]++
	}
	if math.IsNaN(org.ConfidenceScore) || math.IsInf(org.ConfidenceScore, 0) ||
		org.ConfidenceScore < 0 || org.ConfidenceScore > types.MaxOrganizationScore {
		res.ValidationResults["confidence_out_of_range"]++
	}
}

// qualityReason returns why a candidate fails the quality gate, or ""
// when it passes.
func (p *Processor) qualityReason(org types.Organization) string {
	if org.Name == "" || len(org.Name) < p.cfg.MinNameLength {
		return "name below minimum length"
	}
	score := org.ConfidenceScore
	if score > types.MaxOrganizationScore {
		score = types.MaxOrganizationScore
	}
	if math.IsNaN(score) || score < p.cfg.ConfidenceThreshold {
		return "confidence below threshold"
	}
	text := strings.ToLower(org.Name + " " + org.Description)
	for _, phrase := range spamPhrases {
		if strings.Contains(text, phrase) {
			return "spam phrase: " + phrase
		}
	}
	if repeatedWordDominates(org.Name) || repeatedWordDominates(org.Description) {
		return "repeated-word text"
	}
	return ""
}

// repeatedWordDominates reports pathological text where the most frequent
// word exceeds half the word count.
func repeatedWordDominates(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) < 4 {
		return false
	}
	counts := make(map[string]int)
	max := 0
	for _, w := range words {
		counts[w]++
		if counts[w] > max {
			max = counts[w]
		}
	}
	return max*2 > len(words)
}
