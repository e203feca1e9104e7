// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ProcessingResult reports what the post-processor did with a batch of
// organization candidates. InputCount always equals OutputCount plus
// DuplicatesRemoved plus FilteredCount; partial success is the normal
// outcome, not an error.
type ProcessingResult struct {
	InputCount        int `json:"input_count" yaml:"input_count"`
	OutputCount       int `json:"output_count" yaml:"output_count"`
	FilteredCount     int `json:"filtered_count" yaml:"filtered_count"`
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`

	// ValidationResults counts failures per named check
	// (name_empty, url_invalid, confidence_out_of_range, ...).
	ValidationResults map[string]int `json:"validation_results" yaml:"validation_results"`

	// ProcessingTime is the wall-clock duration of the run.
	ProcessingTime time.Duration `json:"processing_time" yaml:"processing_time"`

	// Organizations is the valid-organizations bucket.
	Organizations []Organization `json:"organizations" yaml:"organizations"`

	// Reclassified is the general-content bucket: every candidate that
	// was dropped, attributed to a stage and a reason.
	Reclassified []ReclassifiedRecord `json:"reclassified" yaml:"reclassified"`
}

// Report is the full outcome of one pipeline run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Query is the original free-text query.
	Query string `json:"query" yaml:"query"`

	// SearchIntent is the classification the intent analyzer derived.
	SearchIntent SearchIntentClass `json:"search_intent" yaml:"search_intent"`

	// ResultCount is the number of search results processed.
	ResultCount int `json:"result_count" yaml:"result_count"`

	// SearchDuplicatesRemoved counts raw results dropped when merging
	// provider outputs. Separate from the post-processor's
	// DuplicatesRemoved, which counts only organization candidates.
	SearchDuplicatesRemoved int `json:"search_duplicates_removed" yaml:"search_duplicates_removed"`

	// ProviderErrors lists search providers that failed; failures do not
	// abort the run.
	ProviderErrors []string `json:"provider_errors,omitempty" yaml:"provider_errors,omitempty"`

	// Processing is the post-processor's outcome.
	Processing ProcessingResult `json:"processing" yaml:"processing"`

	// StartedAt is the run start time.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the total run duration, including search.
	Duration time.Duration `json:"duration" yaml:"duration"`
}
