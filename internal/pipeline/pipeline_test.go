// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/meshintel/orgminer/internal/intent"
	"github.com/meshintel/orgminer/internal/search"
	"github.com/meshintel/orgminer/pkg/types"
)

// stubProvider returns canned results.
type stubProvider struct {
	results []types.SearchResult
	err     error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, _ string, _ types.SearchConfig) ([]types.SearchResult, error) {
	return s.results, s.err
}

func academicResults() []types.SearchResult {
	return []types.SearchResult{
		{
			Title:   "ETH Zürich - Homepage",
			URL:     "https://ethz.ch",
			Snippet: "ETH Zürich is a public research University in Switzerland with strong AI groups in Europe.",
			Source:  "stub",
		},
		{
			Title:   "Technical University of Munich",
			URL:     "https://tum.de",
			Snippet: "The Technical University of Munich is a top European research institution.",
			Source:  "stub",
		},
		{
			Title:   "17 Best AI Blogs you must follow",
			URL:     "https://spamblog.com/17-best-ai-blogs",
			Snippet: "Click here for the top AI blogs. Share this list with friends!",
			Source:  "stub",
		},
	}
}

func newTestPipeline(t *testing.T, providers ...search.Provider) *Pipeline {
	t.Helper()
	p, err := New(types.DefaultPipelineConfig(), intent.DefaultTables(), providers)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestNewFailsFast(t *testing.T) {
	cfg := types.DefaultPipelineConfig()
	cfg.Ranking.SemanticWeight = 0.9 // weights no longer sum to 1

	if _, err := New(cfg, nil, []search.Provider{&stubProvider{}}); err == nil {
		t.Error("New() accepted broken ranking weights")
	}
	if _, err := New(types.DefaultPipelineConfig(), nil, nil); err == nil {
		t.Error("New() accepted empty provider list")
	}
}

func TestRunEndToEnd(t *testing.T) {
	p := newTestPipeline(t, &stubProvider{results: academicResults()})

	report, err := p.Run(context.Background(), "European universities with AI research", io.Discard)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.SearchIntent != types.IntentAcademic {
		t.Errorf("SearchIntent = %q, want academic", report.SearchIntent)
	}
	if report.ResultCount != 3 {
		t.Errorf("ResultCount = %d, want 3", report.ResultCount)
	}
	if report.Processing.OutputCount == 0 {
		t.Fatalf("no organizations survived: %+v", report.Processing)
	}

	names := make(map[string]bool)
	for _, org := range report.Processing.Organizations {
		names[org.Name] = true
		if org.ConfidenceScore < 0 || org.ConfidenceScore > types.MaxOrganizationScore {
			t.Errorf("organization %q score %v outside [0,%v]", org.Name, org.ConfidenceScore, types.MaxOrganizationScore)
		}
		if org.URL == "" {
			t.Errorf("organization %q has no URL", org.Name)
		}
	}
	if !names["Technical University of Munich"] {
		t.Errorf("expected Technical University of Munich in output, got %v", names)
	}
}

func TestRunUniqueRunIDs(t *testing.T) {
	p := newTestPipeline(t, &stubProvider{results: academicResults()})

	a, err := p.Run(context.Background(), "European universities", io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Run(context.Background(), "European universities", io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if a.RunID == b.RunID {
		t.Errorf("two runs share RunID %q", a.RunID)
	}
}

func TestRunEmptyResults(t *testing.T) {
	p := newTestPipeline(t, &stubProvider{results: nil})

	report, err := p.Run(context.Background(), "obscure query with no hits", io.Discard)
	if err != nil {
		t.Fatalf("Run() error = %v, want graceful empty report", err)
	}
	if report.ResultCount != 0 || report.Processing.OutputCount != 0 {
		t.Errorf("report = %+v, want zero counts", report)
	}
}

func TestRunAllProvidersFailed(t *testing.T) {
	p := newTestPipeline(t, &stubProvider{err: fmt.Errorf("network down")})

	if _, err := p.Run(context.Background(), "anything", io.Discard); err == nil {
		t.Fatal("Run() with total search failure returned nil error")
	}
}

func TestRunPartialProviderFailure(t *testing.T) {
	p := newTestPipeline(t,
		&stubProvider{err: fmt.Errorf("rate limited")},
		&stubProvider{results: academicResults()},
	)

	report, err := p.Run(context.Background(), "European universities with AI research", io.Discard)
	if err != nil {
		t.Fatalf("Run() error = %v, want partial success", err)
	}
	if len(report.ProviderErrors) != 1 {
		t.Errorf("ProviderErrors = %v, want one entry", report.ProviderErrors)
	}
	if report.Processing.OutputCount == 0 {
		t.Error("partial failure produced no organizations")
	}
}

func TestRunSearchDuplicateAccounting(t *testing.T) {
	dup := academicResults()[1]
	p := newTestPipeline(t, &stubProvider{results: []types.SearchResult{dup, dup}})

	report, err := p.Run(context.Background(), "European universities with AI research", io.Discard)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Merging the two identical results is search-layer accounting and
	// must not leak into the post-processor's counters.
	if report.SearchDuplicatesRemoved != 1 {
		t.Errorf("SearchDuplicatesRemoved = %d, want 1", report.SearchDuplicatesRemoved)
	}
	if report.ResultCount != 1 {
		t.Errorf("ResultCount = %d, want 1", report.ResultCount)
	}
	proc := report.Processing
	if proc.InputCount != proc.OutputCount+proc.DuplicatesRemoved+proc.FilteredCount {
		t.Errorf("processing counts inconsistent: input=%d output=%d dups=%d filtered=%d",
			proc.InputCount, proc.OutputCount, proc.DuplicatesRemoved, proc.FilteredCount)
	}
}

func TestRunFileRoundTrip(t *testing.T) {
	p := newTestPipeline(t, &stubProvider{results: academicResults()})

	report, err := p.Run(context.Background(), "European universities with AI research", io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := WriteRunFile(path, report); err != nil {
		t.Fatalf("WriteRunFile() error = %v", err)
	}

	rf, err := ReadRunFile(path)
	if err != nil {
		t.Fatalf("ReadRunFile() error = %v", err)
	}
	if rf.Report.RunID != report.RunID {
		t.Errorf("RunID = %q, want %q", rf.Report.RunID, report.RunID)
	}
	if len(rf.Organizations) != len(report.Processing.Organizations) {
		t.Errorf("organizations = %d, want %d", len(rf.Organizations), len(report.Processing.Organizations))
	}
}

func TestReadRunFileMissing(t *testing.T) {
	if _, err := ReadRunFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("ReadRunFile() on missing file returned nil error")
	}
}
