// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "orgminer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search-provider boundary.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to process (default 30).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableDuckDuckGo controls the keyless DuckDuckGo provider.
	EnableDuckDuckGo bool `json:"enable_duckduckgo" yaml:"enable_duckduckgo"`

	// EnableBrave controls the Brave Search provider (requires an API key).
	EnableBrave bool `json:"enable_brave" yaml:"enable_brave"`

	// BraveAPIKey authenticates Brave Search requests. Usually loaded
	// from .secrets/brave-search-api-key rather than the config file.
	BraveAPIKey string `json:"brave_api_key,omitempty" yaml:"brave_api_key,omitempty"`

	// InterProviderDelay is the delay between calls to different
	// providers (default 1s), to stay polite with free tiers.
	InterProviderDelay time.Duration `json:"inter_provider_delay" yaml:"inter_provider_delay"`
}

// ExtractionConfig holds settings for the entity extractor.
type ExtractionConfig struct {
	// ContextWindow is the number of characters of surrounding text kept
	// on each entity for review (default 50 per side, 100 total).
	ContextWindow int `json:"context_window" yaml:"context_window"`

	// MaxTextLength truncates pathological inputs before extraction
	// (default 5000).
	MaxTextLength int `json:"max_text_length" yaml:"max_text_length"`

	// MaxWorkers bounds the per-result extraction fan-out (default 5).
	MaxWorkers int `json:"max_workers" yaml:"max_workers"`
}

// RankingConfig holds the relevance ranker's weights. The four weights
// must sum to 1.0.
type RankingConfig struct {
	SemanticWeight      float64 `json:"semantic_weight" yaml:"semantic_weight"`
	AuthorityWeight     float64 `json:"authority_weight" yaml:"authority_weight"`
	EntityOverlapWeight float64 `json:"entity_overlap_weight" yaml:"entity_overlap_weight"`
	GeographicWeight    float64 `json:"geographic_weight" yaml:"geographic_weight"`

	// SpamPenalty is subtracted from the authority sub-score when
	// clickbait indicators match (default 0.15).
	SpamPenalty float64 `json:"spam_penalty" yaml:"spam_penalty"`
}

// ProcessingConfig holds settings for the post-processor / validator.
type ProcessingConfig struct {
	// ConfidenceThreshold is the quality-gate minimum (default 0.5).
	// This gate is stricter than structural validation.
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`

	// MinNameLength is the minimum organization-name length (default 3).
	MinNameLength int `json:"min_name_length" yaml:"min_name_length"`

	// MaxDescriptionLength bounds descriptions in the clean step
	// (default 500); longer text is truncated with an ellipsis marker.
	MaxDescriptionLength int `json:"max_description_length" yaml:"max_description_length"`

	// DeduplicationEnabled controls the dedup stage (default true).
	DeduplicationEnabled bool `json:"deduplication_enabled" yaml:"deduplication_enabled"`
}

// StoreConfig holds settings for the results store.
type StoreConfig struct {
	// DataDir is the base directory for persisted runs
	// (contains orgminer.db and exports).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search     SearchConfig     `json:"search" yaml:"search"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Ranking    RankingConfig    `json:"ranking" yaml:"ranking"`
	Processing ProcessingConfig `json:"processing" yaml:"processing"`
	Store      StoreConfig      `json:"store" yaml:"store"`

	// TablesFile optionally overrides the built-in keyword/pattern
	// tables with a YAML file.
	TablesFile string `json:"tables_file,omitempty" yaml:"tables_file,omitempty"`
}

// DefaultPipelineConfig returns the configuration used when no file or
// flags override it.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   15 * time.Second,
				UserAgent: "orgminer/0.1",
			},
			MaxResults:         30,
			EnableDuckDuckGo:   true,
			InterProviderDelay: time.Second,
		},
		Extraction: ExtractionConfig{
			ContextWindow: 50,
			MaxTextLength: 5000,
			MaxWorkers:    5,
		},
		Ranking: RankingConfig{
			SemanticWeight:      0.35,
			AuthorityWeight:     0.20,
			EntityOverlapWeight: 0.30,
			GeographicWeight:    0.15,
			SpamPenalty:         0.15,
		},
		Processing: ProcessingConfig{
			ConfidenceThreshold:  0.5,
			MinNameLength:        3,
			MaxDescriptionLength: 500,
			DeduplicationEnabled: true,
		},
		Store: StoreConfig{
			DataDir: "data",
		},
	}
}

// Validate checks the configuration and returns the first problem found.
// Configuration errors are fatal at pipeline construction: running with a
// broken config would produce misleading results.
func (c PipelineConfig) Validate() error {
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Extraction.MaxWorkers <= 0 {
		return fmt.Errorf("extraction.max_workers must be positive, got %d", c.Extraction.MaxWorkers)
	}
	if c.Extraction.ContextWindow < 0 {
		return fmt.Errorf("extraction.context_window must be non-negative, got %d", c.Extraction.ContextWindow)
	}
	sum := c.Ranking.SemanticWeight + c.Ranking.AuthorityWeight +
		c.Ranking.EntityOverlapWeight + c.Ranking.GeographicWeight
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("ranking weights must sum to 1.0, got %.4f", sum)
	}
	for name, w := range map[string]float64{
		"semantic_weight":       c.Ranking.SemanticWeight,
		"authority_weight":      c.Ranking.AuthorityWeight,
		"entity_overlap_weight": c.Ranking.EntityOverlapWeight,
		"geographic_weight":     c.Ranking.GeographicWeight,
		"spam_penalty":          c.Ranking.SpamPenalty,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("ranking.%s must be in [0,1], got %.4f", name, w)
		}
	}
	if c.Processing.ConfidenceThreshold < 0 || c.Processing.ConfidenceThreshold > MaxOrganizationScore {
		return fmt.Errorf("processing.confidence_threshold must be in [0,%.1f], got %.4f",
			MaxOrganizationScore, c.Processing.ConfidenceThreshold)
	}
	if c.Processing.MinNameLength < 1 {
		return fmt.Errorf("processing.min_name_length must be at least 1, got %d", c.Processing.MinNameLength)
	}
	if c.Processing.MaxDescriptionLength <= 0 {
		return fmt.Errorf("processing.max_description_length must be positive, got %d", c.Processing.MaxDescriptionLength)
	}
	return nil
}
