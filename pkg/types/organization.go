// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OrgType classifies a final organization record.
type OrgType string

const (
	OrgUniversity     OrgType = "university"
	OrgCompany        OrgType = "company"
	OrgInstitute      OrgType = "institute"
	OrgResearchCenter OrgType = "research_center"
	OrgGovernment     OrgType = "government"
	OrgNonprofit      OrgType = "nonprofit"
	OrgUnknown        OrgType = "unknown"
)

// MaxOrganizationScore is the documented cap for Organization confidence.
// Unlike entity-level confidence, organization scores stack additive
// bonuses above 1.0: they are rank scores, not probabilities. The
// post-processor clamps to this value before the quality-gate comparison.
const MaxOrganizationScore = 3.0

// Organization is a final output record. Records are created during
// extraction, mutated only by the post-processor's clean step, and frozen
// once validation completes.
type Organization struct {
	// Name is the cleaned organization name; also the dedup key after
	// lowercasing and trimming.
	Name string `json:"organization_name" yaml:"organization_name"`

	// URL is the organization's own URL, normalized to carry a scheme
	// and a non-empty host. Empty when no URL could be attributed.
	URL string `json:"url" yaml:"url"`

	// OrgType is the classified organization type.
	OrgType OrgType `json:"type" yaml:"type"`

	// SourceURL is the search result the record was extracted from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// ConfidenceScore stacks extraction confidence and ranking bonuses;
	// see MaxOrganizationScore.
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	// ExtractionMethod is the provenance tag of the producing extractor.
	ExtractionMethod string `json:"extraction_method" yaml:"extraction_method"`

	// Description is optional and length-bounded by the clean step.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ReclassifiedRecord is a candidate routed out of the organization bucket.
// Nothing is silently discarded: every dropped candidate carries the stage
// that dropped it and a reason.
type ReclassifiedRecord struct {
	Organization Organization `json:"organization" yaml:"organization"`

	// Stage names the pipeline stage that reclassified the record
	// (dedup, validate, quality).
	Stage string `json:"stage" yaml:"stage"`

	// Reason is a short machine-friendly explanation
	// (duplicate_name, below_threshold, spam, ...).
	Reason string `json:"reason" yaml:"reason"`
}
