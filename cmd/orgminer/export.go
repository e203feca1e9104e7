// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/orgminer/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export organizations from saved runs",
	Long: `Export reads runs persisted with mine --save. Without --run it lists
the saved runs; with --run it exports that run's organizations in the
requested format (csv, json, or yaml).`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	runID, _ := cmd.Flags().GetString("run")
	if runID == "" {
		limit, _ := cmd.Flags().GetInt("limit")
		return listRuns(ctx, st, limit)
	}

	orgs, err := st.GetOrganizations(ctx, runID)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "csv":
		return store.ExportCSV(orgs, w)
	case "json":
		return store.ExportJSON(orgs, w)
	case "yaml":
		return store.ExportYAML(orgs, w)
	default:
		return fmt.Errorf("unknown format %q (want csv, json, or yaml)", format)
	}
}

func listRuns(ctx context.Context, st *store.Store, limit int) error {
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	fmt.Printf("%-38s  %-20s  %-12s  %-5s  %s\n", "Run ID", "Started", "Intent", "Orgs", "Query")
	for _, r := range runs {
		query := r.Query
		if len(query) > 50 {
			query = query[:47] + "..."
		}
		fmt.Printf("%-38s  %-20s  %-12s  %-5d  %s\n",
			r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Intent, r.OutputCount, query)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("run", "", "run ID to export (omit to list saved runs)")
	exportCmd.Flags().String("format", "csv", "export format: csv, json, or yaml")
	exportCmd.Flags().String("out", "", "write to a file instead of stdout")
	exportCmd.Flags().Int("limit", 20, "maximum runs to list")

	rootCmd.AddCommand(exportCmd)
}
