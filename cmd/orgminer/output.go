// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/meshintel/orgminer/pkg/types"
)

// printReport writes a human-readable summary of a run to stdout: the
// organization table first, then the drop accounting.
func printReport(report *types.Report) {
	printOrganizations(report.Processing.Organizations)

	p := report.Processing
	fmt.Printf("\n%d candidates in, %d organizations out", p.InputCount, p.OutputCount)
	if p.DuplicatesRemoved > 0 {
		fmt.Printf(", %d duplicates removed", p.DuplicatesRemoved)
	}
	if report.SearchDuplicatesRemoved > 0 {
		fmt.Printf(", %d duplicate search results merged", report.SearchDuplicatesRemoved)
	}
	if p.FilteredCount > 0 {
		fmt.Printf(", %d reclassified", p.FilteredCount)
	}
	fmt.Println()

	if len(p.ValidationResults) > 0 {
		checks := make([]string, 0, len(p.ValidationResults))
		for check := range p.ValidationResults {
			checks = append(checks, check)
		}
		sort.Strings(checks)
		fmt.Println("Validation failures:")
		for _, check := range checks {
			fmt.Printf("  %-24s %d\n", check, p.ValidationResults[check])
		}
	}

	for _, rec := range p.Reclassified {
		fmt.Fprintf(os.Stderr, "dropped (%s): %s: %s\n", rec.Stage, rec.Organization.Name, rec.Reason)
	}
	for _, perr := range report.ProviderErrors {
		fmt.Fprintf(os.Stderr, "provider error: %s\n", perr)
	}
}

func printOrganizations(orgs []types.Organization) {
	if len(orgs) == 0 {
		fmt.Println("No organizations found.")
		return
	}

	fmt.Printf("%-40s  %-12s  %-5s  %s\n", "Name", "Type", "Score", "URL")
	fmt.Println(strings.Repeat("-", 110))
	for _, org := range orgs {
		name := org.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		u := org.URL
		if len(u) > 50 {
			u = u[:47] + "..."
		}
		fmt.Printf("%-40s  %-12s  %.2f  %s\n", name, org.OrgType, org.ConfidenceScore, u)
	}
}
