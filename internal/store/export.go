// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	yaml "go.yaml.in/yaml/v3"

	"github.com/meshintel/orgminer/pkg/types"
)

// csvHeader preserves the column layout earlier exports used, so
// downstream spreadsheets keep working.
var csvHeader = []string{
	"organization_name", "url", "type", "source_url",
	"confidence_score", "extraction_method", "description",
}

// ExportCSV writes organizations to w in the legacy CSV layout.
func ExportCSV(orgs []types.Organization, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, org := range orgs {
		record := []string{
			org.Name,
			org.URL,
			string(org.OrgType),
			org.SourceURL,
			strconv.FormatFloat(org.ConfidenceScore, 'f', 3, 64),
			org.ExtractionMethod,
			org.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record for %q: %w", org.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes organizations to w as indented JSON.
func ExportJSON(orgs []types.Organization, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(orgs)
}

// ExportYAML writes organizations to w as a YAML document.
func ExportYAML(orgs []types.Organization, w io.Writer) error {
	data, err := yaml.Marshal(orgs)
	if err != nil {
		return fmt.Errorf("marshaling organizations: %w", err)
	}
	_, err = w.Write(data)
	return err
}
