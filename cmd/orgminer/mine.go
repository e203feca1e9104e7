// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/orgminer/internal/pipeline"
	"github.com/meshintel/orgminer/internal/store"
)

var mineCmd = &cobra.Command{
	Use:   "mine [query]",
	Short: "Run the full organization-mining pipeline",
	Long: `Mine runs the complete pipeline for a query: intent analysis, web
search, per-result entity extraction, relevance ranking, and
post-processing. The validated organizations print to stdout; dropped
candidates are reported with the stage and reason that dropped them.

With --save the run is persisted to the SQLite store for later export.
With --out the run is written to a YAML file that process and export can
consume without re-searching.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMine,
}

func runMine(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		cfg.Search.MaxResults = maxResults
	}
	if threshold, _ := cmd.Flags().GetFloat64("threshold"); cmd.Flags().Changed("threshold") {
		cfg.Processing.ConfidenceThreshold = threshold
	}
	if brave, _ := cmd.Flags().GetBool("brave"); brave {
		cfg.Search.EnableBrave = true
	}

	tables, err := loadTables(cfg)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, tables, buildProviders(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Search.Timeout*4)
	defer cancel()

	report, err := p.Run(ctx, strings.Join(args, " "), os.Stderr)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if err := store.ExportJSON(report.Processing.Organizations, os.Stdout); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := pipeline.WriteRunFile(outPath, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run written to %s\n", outPath)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		st, err := store.Open(cfg.Store.DataDir)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveRun(ctx, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run %s saved\n", report.RunID)
	}
	return nil
}

func init() {
	mineCmd.Flags().Int("max-results", 0, "maximum number of search results to process")
	mineCmd.Flags().Float64("threshold", 0, "confidence threshold for the quality gate")
	mineCmd.Flags().Bool("brave", false, "also query Brave Search (needs brave-search-api-key)")
	mineCmd.Flags().Bool("json", false, "output organizations as JSON")
	mineCmd.Flags().String("out", "", "write the run to a YAML file")
	mineCmd.Flags().Bool("save", false, "persist the run to the SQLite store")

	rootCmd.AddCommand(mineCmd)
}
