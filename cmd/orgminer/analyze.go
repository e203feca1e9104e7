// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/orgminer/internal/intent"
	"github.com/meshintel/orgminer/internal/tagger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Show the intent derived from a query",
	Long: `Analyze runs only the intent-analysis stage and prints the derived
QueryIntent: domain focus, geographic focus, organization types, search
intent class, and the confidence factors downstream stages would apply.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	tables, err := loadTables(cfg)
	if err != nil {
		return err
	}
	analyzer, err := intent.NewAnalyzer(tables, tagger.NewKeywordTagger(tables.Locations))
	if err != nil {
		return err
	}

	qi := analyzer.Analyze(strings.Join(args, " "))

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(qi)
	}

	fmt.Printf("query:              %s\n", qi.CleanedQuery)
	fmt.Printf("search intent:      %s\n", qi.SearchIntent)
	fmt.Printf("domain focus:       %s\n", strings.Join(qi.DomainFocus, ", "))
	fmt.Printf("geographic focus:   %s\n", strings.Join(qi.GeographicFocus, ", "))
	fmt.Printf("organization types: %s\n", strings.Join(qi.OrganizationTypes, ", "))
	if len(qi.Synonyms) > 0 {
		fmt.Printf("synonyms:           %s\n", strings.Join(qi.Synonyms, ", "))
	}
	fmt.Println("confidence factors:")
	factors := make([]string, 0, len(qi.ConfidenceFactors))
	for name := range qi.ConfidenceFactors {
		factors = append(factors, name)
	}
	sort.Strings(factors)
	for _, name := range factors {
		fmt.Printf("  %-22s %.2f\n", name, qi.ConfidenceFactors[name])
	}
	return nil
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "output the intent as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
