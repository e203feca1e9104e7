// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EntityLabel is the coarse type assigned to an extracted span.
type EntityLabel string

const (
	LabelOrganization EntityLabel = "organization"
	LabelUniversity   EntityLabel = "university"
	LabelLocation     EntityLabel = "location"
	LabelPerson       EntityLabel = "person"
	LabelMoney        EntityLabel = "money"
	LabelDeadline     EntityLabel = "deadline"
	LabelScholarship  EntityLabel = "scholarship"
)

// ExtractedEntity is one raw textual candidate pulled from a document or
// query. Confidence combines the extraction method's base confidence with
// intent-weighted contextual bonuses and is clamped to [0,1]; positive
// signals stack additively.
type ExtractedEntity struct {
	// Text is the raw matched string, always the literal content of
	// [StartPos,EndPos) in the source text.
	Text string `json:"text" yaml:"text"`

	// Normalized is the canonical form where one exists (ISO dates for
	// resolved deadlines); empty otherwise.
	Normalized string `json:"normalized,omitempty" yaml:"normalized,omitempty"`

	// Label is the coarse entity type.
	Label EntityLabel `json:"label" yaml:"label"`

	// Confidence is in [0,1] immediately after extraction.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// StartPos and EndPos are character offsets into the source text,
	// kept for provenance. EndPos > StartPos for every entity.
	StartPos int `json:"start_pos" yaml:"start_pos"`
	EndPos   int `json:"end_pos" yaml:"end_pos"`

	// Context is a short surrounding-text window for human review.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`

	// Source identifies which result or document produced the entity
	// ("query" for entities extracted from the query itself).
	Source string `json:"source" yaml:"source"`

	// Method is the extraction-method provenance tag
	// (tagger, pattern, money_pattern, deadline_pattern, deadline_nl).
	Method string `json:"method" yaml:"method"`
}
