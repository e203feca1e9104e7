// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires intent analysis, search, extraction, ranking,
// and post-processing into one run. Each Run is independent; a Pipeline
// value holds only read-only components and is safe for concurrent runs.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meshintel/orgminer/internal/extract"
	"github.com/meshintel/orgminer/internal/intent"
	"github.com/meshintel/orgminer/internal/postproc"
	"github.com/meshintel/orgminer/internal/rank"
	"github.com/meshintel/orgminer/internal/search"
	"github.com/meshintel/orgminer/internal/tagger"
	"github.com/meshintel/orgminer/pkg/types"
)

// Pipeline runs queries end to end.
type Pipeline struct {
	cfg       types.PipelineConfig
	providers []search.Provider
	analyzer  *intent.Analyzer
	extractor *extract.Extractor
	ranker    *rank.Ranker
	processor *postproc.Processor
}

// New builds a pipeline over the given providers. Configuration and
// table errors are fatal here: a pipeline that constructs will not
// produce misleading results from broken config.
func New(cfg types.PipelineConfig, tables *intent.Tables, providers []search.Provider) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("pipeline: no search providers configured")
	}
	if tables == nil {
		tables = intent.DefaultTables()
	}

	tg := tagger.NewKeywordTagger(tables.Locations)
	analyzer, err := intent.NewAnalyzer(tables, tg)
	if err != nil {
		return nil, err
	}
	ranker, err := rank.New(cfg.Ranking)
	if err != nil {
		return nil, err
	}
	processor, err := postproc.New(cfg.Processing)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:       cfg,
		providers: providers,
		analyzer:  analyzer,
		extractor: extract.New(tg, cfg.Extraction),
		ranker:    ranker,
		processor: processor,
	}, nil
}

// Run executes the full pipeline for query. Warnings (failed providers,
// skipped results) go to w; the report always describes partial success
// with explicit counts. Only empty queries and total search failure
// return an error.
func (p *Pipeline) Run(ctx context.Context, query string, w io.Writer) (*types.Report, error) {
	started := time.Now()
	qi := p.analyzer.Analyze(query)

	out, err := search.Search(ctx, query, p.providers, p.cfg.Search, w)
	if err != nil {
		return nil, err
	}

	extracted := p.extractAll(ctx, out.Results, qi)
	queryEntities := p.extractor.Extract(qi.CleanedQuery, "", qi)
	ranked := p.ranker.Rank(out.Results, qi, extracted, queryEntities)

	candidates := promote(ranked, extracted, out.Results, qi)
	processing := p.processor.Process(candidates)

	return &types.Report{
		RunID:                   uuid.NewString(),
		Query:                   query,
		SearchIntent:            qi.SearchIntent,
		ResultCount:             len(out.Results),
		SearchDuplicatesRemoved: out.DupsRemoved,
		ProviderErrors:          out.ProviderErrors,
		Processing:              processing,
		StartedAt:               started,
		Duration:                time.Since(started),
	}, nil
}

// extractAll fans extraction out across results, one goroutine per
// result up to MaxWorkers, keyed by result index so ordering survives
// the fan-in. A cancelled context leaves the remaining slots empty;
// missing entities degrade the run, they do not abort it.
func (p *Pipeline) extractAll(ctx context.Context, results []types.SearchResult, qi types.QueryIntent) map[int][]types.ExtractedEntity {
	workers := p.cfg.Extraction.MaxWorkers
	if workers <= 0 {
		workers = 4
	}

	entities := make([][]types.ExtractedEntity, len(results))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, res := range results {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, res types.SearchResult) {
			defer wg.Done()
			defer func() { <-sem }()
			entities[i] = p.extractor.Extract(res.CombinedText(), res.URL, qi)
		}(i, res)
	}
	wg.Wait()

	out := make(map[int][]types.ExtractedEntity, len(results))
	for i, ents := range entities {
		if len(ents) > 0 {
			out[i] = ents
		}
	}
	return out
}

// promote converts organization-class entities into Organization
// candidates. The candidate score stacks entity confidence with the
// result's relevance; stacked scores may exceed 1 and are capped at the
// documented maximum. The post-processor owns all filtering.
func promote(ranked []types.RankedResult, extracted map[int][]types.ExtractedEntity, results []types.SearchResult, qi types.QueryIntent) []types.Organization {
	relevance := make(map[int]float64, len(ranked))
	for _, rr := range ranked {
		relevance[rr.Result.Position] = rr.RelevanceScore
	}

	var out []types.Organization
	for i, res := range results {
		for _, ent := range extracted[i] {
			var orgType types.OrgType
			switch ent.Label {
			case types.LabelUniversity:
				orgType = types.OrgUniversity
			case types.LabelOrganization:
				orgType = classifyOrg(ent.Text, qi)
			default:
				continue
			}

			score := ent.Confidence + relevance[res.Position]
			if score > types.MaxOrganizationScore {
				score = types.MaxOrganizationScore
			}

			out = append(out, types.Organization{
				Name:             ent.Text,
				URL:              res.URL,
				OrgType:          orgType,
				SourceURL:        res.URL,
				ConfidenceScore:  score,
				ExtractionMethod: ent.Method,
				Description:      res.Snippet,
			})
		}
	}
	return out
}

// classifyOrg maps a generic organization span to a type using its text
// and the query's intent class.
func classifyOrg(name string, qi types.QueryIntent) types.OrgType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "laborator") || strings.Contains(lower, "research"):
		return types.OrgResearchCenter
	case strings.Contains(lower, "institut"):
		return types.OrgInstitute
	case strings.Contains(lower, "foundation") || strings.Contains(lower, "association") || strings.Contains(lower, "charity"):
		return types.OrgNonprofit
	case strings.Contains(lower, "ministry") || strings.Contains(lower, "agency") || strings.Contains(lower, "council"):
		return types.OrgGovernment
	case strings.Contains(lower, "company") || strings.Contains(lower, "corporation") || strings.Contains(lower, " inc") || strings.Contains(lower, " ltd"):
		return types.OrgCompany
	}
	switch qi.SearchIntent {
	case types.IntentBusiness:
		return types.OrgCompany
	case types.IntentResearch:
		return types.OrgResearchCenter
	default:
		return types.OrgUnknown
	}
}
