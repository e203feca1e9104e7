// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is one record returned by a web search provider: the
// boundary shape the pipeline consumes. Providers are external
// collaborators; the pipeline tolerates empty result lists.
type SearchResult struct {
	// Title is the result title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// URL is the result link.
	URL string `json:"url" yaml:"url"`

	// Snippet is the provider's abstract or description text.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Source identifies which provider found this result
	// (e.g. "duckduckgo", "brave").
	Source string `json:"source" yaml:"source"`

	// Position is the zero-based rank within the provider's own output.
	// Relevance lives on RankedResult; raw results carry no score.
	Position int `json:"position" yaml:"position"`
}

// CombinedText returns the title and snippet joined for text analysis.
func (r SearchResult) CombinedText() string {
	if r.Title == "" {
		return r.Snippet
	}
	if r.Snippet == "" {
		return r.Title
	}
	return r.Title + ". " + r.Snippet
}

// RankedResult carries a search result with its intent-aware relevance
// score. Ranking is descriptive: it attaches scores without dropping
// results; filtering is the post-processor's job.
type RankedResult struct {
	Result SearchResult `json:"result" yaml:"result"`

	// RelevanceScore is the weighted sum of the component scores, in [0,1].
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// ComponentScores breaks the score down by signal
	// (semantic, authority, entity_overlap, geographic).
	ComponentScores map[string]float64 `json:"component_scores" yaml:"component_scores"`

	// Explanation lists the signals that fired, for diagnostics.
	Explanation []string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}
