// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"

	"github.com/meshintel/orgminer/pkg/types"
)

// RunFile is the on-disk representation of a completed run. A run saved
// to a file can be re-exported or re-processed later without hitting
// the search APIs again.
type RunFile struct {
	Report        types.Report         `yaml:"report"`
	Organizations []types.Organization `yaml:"organizations"`
}

// WriteRunFile saves a report and its organizations to a YAML file.
func WriteRunFile(path string, report *types.Report) error {
	rf := RunFile{
		Report:        *report,
		Organizations: report.Processing.Organizations,
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file %s: %w", path, err)
	}
	return &rf, nil
}
