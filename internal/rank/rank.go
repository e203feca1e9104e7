// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores search results against a QueryIntent. Ranking is
// descriptive: every input result comes back with a score and component
// breakdown; dropping low scorers is the post-processor's call.
package rank

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/meshintel/orgminer/pkg/types"
)

// authorityByTLD maps URL suffixes to authority scores.
var authorityByTLD = []struct {
	suffix string
	score  float64
}{
	{".edu", 1.0},
	{".ac.", 1.0},
	{".gov", 0.9},
	{".org", 0.7},
	{".com", 0.3},
}

const defaultAuthority = 0.1

// spamRe flags clickbait and social-share phrasing in result text.
var spamRe = regexp.MustCompile(`(?i)\b(you won'?t believe|click here|share (on|this)|limited time|act now|top \d+ (secrets|tricks)|congratulations|winner)\b`)

// Ranker computes relevance scores. Construction validates the weight
// set; a Ranker that exists is safe to use concurrently.
type Ranker struct {
	cfg types.RankingConfig
}

// New builds a ranker. Weights must be non-negative and sum to 1.
func New(cfg types.RankingConfig) (*Ranker, error) {
	sum := cfg.SemanticWeight + cfg.AuthorityWeight + cfg.EntityOverlapWeight + cfg.GeographicWeight
	if sum < 0.999 || sum > 1.001 {
		return nil, fmt.Errorf("ranking weights sum to %.3f, want 1.0", sum)
	}
	for _, w := range []float64{cfg.SemanticWeight, cfg.AuthorityWeight, cfg.EntityOverlapWeight, cfg.GeographicWeight, cfg.SpamPenalty} {
		if w < 0 {
			return nil, fmt.Errorf("ranking weights must be non-negative, got %v", w)
		}
	}
	return &Ranker{cfg: cfg}, nil
}

// Rank scores results against the intent. queryEntities are the entities
// the extractor found in the query text itself; extracted maps each
// result index to its entities. The returned slice is sorted by score
// descending; ties fall to higher authority, then shorter URL path.
func (r *Ranker) Rank(results []types.SearchResult, intent types.QueryIntent, extracted map[int][]types.ExtractedEntity, queryEntities []types.ExtractedEntity) []types.RankedResult {
	terms := queryTerms(intent)

	ranked := make([]types.RankedResult, 0, len(results))
	for i, res := range results {
		text := strings.ToLower(res.CombinedText())

		semantic := termCoverage(terms, text)
		authority := authorityScore(res.URL)
		spam := 0.0
		if spamRe.MatchString(text) {
			spam = r.cfg.SpamPenalty
			authority -= spam
			if authority < 0 {
				authority = 0
			}
		}
		overlap := entityOverlap(extracted[i], queryEntities)
		geo := geographicScore(intent.GeographicFocus, res.URL, text)

		score := r.cfg.SemanticWeight*semantic +
			r.cfg.AuthorityWeight*authority +
			r.cfg.EntityOverlapWeight*overlap +
			r.cfg.GeographicWeight*geo
		score = clamp01(score)

		rr := types.RankedResult{
			Result:         res,
			RelevanceScore: score,
			ComponentScores: map[string]float64{
				"semantic":       semantic,
				"authority":      authority,
				"entity_overlap": overlap,
				"geographic":     geo,
			},
		}
		rr.Explanation = explain(rr, spam)
		ranked = append(ranked, rr)
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		ra, rb := ranked[a], ranked[b]
		if ra.RelevanceScore != rb.RelevanceScore {
			return ra.RelevanceScore > rb.RelevanceScore
		}
		aa, ab := ra.ComponentScores["authority"], rb.ComponentScores["authority"]
		if aa != ab {
			return aa > ab
		}
		return pathLen(ra.Result.URL) < pathLen(rb.Result.URL)
	})
	return ranked
}

// queryTerms collects the match vocabulary: cleaned query words plus the
// intent's synonym and related-term expansions.
func queryTerms(intent types.QueryIntent) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if len(t) > 2 && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	for _, w := range strings.Fields(intent.CleanedQuery) {
		add(w)
	}
	for _, s := range intent.Synonyms {
		add(s)
	}
	for _, s := range intent.RelatedTerms {
		add(s)
	}
	return terms
}

// termCoverage is the fraction of terms present in text.
func termCoverage(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}
	hits := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

// authorityScore rates a URL by its host suffix.
func authorityScore(rawURL string) float64 {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return defaultAuthority
	}
	host := strings.ToLower(u.Hostname())
	for _, entry := range authorityByTLD {
		// Infix entries like ".ac." match anywhere in the host.
		if strings.HasSuffix(entry.suffix, ".") {
			if strings.Contains(host, entry.suffix) {
				return entry.score
			}
		} else if strings.HasSuffix(host, entry.suffix) {
			return entry.score
		}
	}
	return defaultAuthority
}

// entityOverlap is the fraction of result entities whose text substring-
// matches (case-insensitive, either direction) a query entity.
func entityOverlap(resultEntities, queryEntities []types.ExtractedEntity) float64 {
	if len(resultEntities) == 0 || len(queryEntities) == 0 {
		return 0
	}
	hits := 0
	for _, re := range resultEntities {
		rt := strings.ToLower(re.Text)
		for _, qe := range queryEntities {
			qt := strings.ToLower(qe.Text)
			if strings.Contains(rt, qt) || strings.Contains(qt, rt) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(resultEntities))
}

// geographicScore is 1 when any focus term appears in the URL or text.
func geographicScore(focus []string, rawURL, text string) float64 {
	if len(focus) == 0 {
		return 0
	}
	lowerURL := strings.ToLower(rawURL)
	for _, f := range focus {
		if strings.Contains(text, f) || strings.Contains(lowerURL, strings.ReplaceAll(f, " ", "")) {
			return 1
		}
	}
	return 0
}

func explain(rr types.RankedResult, spam float64) []string {
	var out []string
	for _, name := range []string{"semantic", "authority", "entity_overlap", "geographic"} {
		out = append(out, fmt.Sprintf("%s=%.2f", name, rr.ComponentScores[name]))
	}
	if spam > 0 {
		out = append(out, fmt.Sprintf("spam_penalty=-%.2f", spam))
	}
	return out
}

func pathLen(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return len(rawURL)
	}
	return len(u.Path)
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
