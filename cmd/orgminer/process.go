// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/orgminer/internal/pipeline"
	"github.com/meshintel/orgminer/internal/postproc"
	"github.com/meshintel/orgminer/internal/store"
)

var processCmd = &cobra.Command{
	Use:   "process [run-file]",
	Short: "Re-run post-processing on a saved run file",
	Long: `Process loads a run file written by mine --out and pushes its
organizations through post-processing again with the current
configuration. This lets you tighten the confidence threshold or
deduplication settings without repeating the search and extraction.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if threshold, _ := cmd.Flags().GetFloat64("threshold"); cmd.Flags().Changed("threshold") {
		cfg.Processing.ConfidenceThreshold = threshold
	}

	rf, err := pipeline.ReadRunFile(args[0])
	if err != nil {
		return err
	}

	processor, err := postproc.New(cfg.Processing)
	if err != nil {
		return err
	}

	// Re-process the combined candidate set. Previously reclassified
	// records get a second chance under the new settings.
	candidates := rf.Organizations
	for _, rec := range rf.Report.Processing.Reclassified {
		candidates = append(candidates, rec.Organization)
	}

	report := rf.Report
	report.Processing = processor.Process(candidates)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if err := store.ExportJSON(report.Processing.Organizations, os.Stdout); err != nil {
			return err
		}
	} else {
		printReport(&report)
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := pipeline.WriteRunFile(outPath, &report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run written to %s\n", outPath)
	}
	return nil
}

func init() {
	processCmd.Flags().Float64("threshold", 0, "confidence threshold for the quality gate")
	processCmd.Flags().Bool("json", false, "output organizations as JSON")
	processCmd.Flags().String("out", "", "write the re-processed run to a YAML file")

	rootCmd.AddCommand(processCmd)
}
