// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTablesValidate(t *testing.T) {
	if err := DefaultTables().Validate(); err != nil {
		t.Fatalf("DefaultTables().Validate() error = %v", err)
	}
}

func TestLoadTablesPartialOverride(t *testing.T) {
	doc := `
domain_keywords:
  education: [university, school]
domain_org_types:
  education: [university, school]
locations:
  mars: [mars, martian]
`
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables() error = %v", err)
	}
	if len(tables.DomainKeywords) != 1 {
		t.Errorf("DomainKeywords has %d domains, want 1 (file overrides)", len(tables.DomainKeywords))
	}
	if len(tables.Locations["mars"]) != 2 {
		t.Errorf("Locations[mars] = %v, want the two aliases from the file", tables.Locations["mars"])
	}
	// Sections absent from the file fall back to defaults.
	if len(tables.ExcludePatterns) == 0 {
		t.Error("ExcludePatterns empty, want built-in defaults")
	}
	if len(tables.Synonyms) == 0 {
		t.Error("Synonyms empty, want built-in defaults")
	}
	if err := tables.Validate(); err != nil {
		t.Errorf("merged tables failed validation: %v", err)
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadTables() on a missing file returned nil error")
	}
}

func TestLoadTablesBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("domain_keywords: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTables(path); err == nil {
		t.Fatal("LoadTables() on malformed YAML returned nil error")
	}
}
