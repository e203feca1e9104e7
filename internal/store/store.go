// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists pipeline runs and their organization records in
// a SQLite database, and exports them in CSV, JSON, and YAML form.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/orgminer/pkg/types"
)

const dbFile = "orgminer.db"

// Store manages the run database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database under dataDir, creating the
// schema if it does not exist.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			search_intent TEXT,
			result_count INTEGER,
			search_duplicates_removed INTEGER,
			input_count INTEGER,
			output_count INTEGER,
			filtered_count INTEGER,
			duplicates_removed INTEGER,
			provider_errors TEXT,
			validation_results TEXT,
			started_at TEXT,
			duration_ms INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS organizations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			organization_name TEXT NOT NULL,
			url TEXT,
			type TEXT,
			source_url TEXT,
			confidence_score REAL,
			extraction_method TEXT,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reclassified (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			organization_name TEXT,
			url TEXT,
			stage TEXT,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orgs_run_id ON organizations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reclassified_run_id ON reclassified(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun persists a report and its organization records in one
// transaction.
func (s *Store) SaveRun(ctx context.Context, report *types.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	errsJSON, _ := json.Marshal(report.ProviderErrors)
	validJSON, _ := json.Marshal(report.Processing.ValidationResults)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, query, search_intent, result_count,
			search_duplicates_removed, input_count, output_count,
			filtered_count, duplicates_removed, provider_errors,
			validation_results, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.Query, string(report.SearchIntent), report.ResultCount,
		report.SearchDuplicatesRemoved,
		report.Processing.InputCount, report.Processing.OutputCount,
		report.Processing.FilteredCount, report.Processing.DuplicatesRemoved,
		string(errsJSON), string(validJSON),
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	orgStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO organizations (run_id, organization_name, url, type,
			source_url, confidence_score, extraction_method, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing organization insert: %w", err)
	}
	defer orgStmt.Close()

	for _, org := range report.Processing.Organizations {
		if _, err := orgStmt.ExecContext(ctx,
			report.RunID, org.Name, org.URL, string(org.OrgType),
			org.SourceURL, org.ConfidenceScore, org.ExtractionMethod, org.Description,
		); err != nil {
			return fmt.Errorf("inserting organization %q: %w", org.Name, err)
		}
	}

	recStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO reclassified (run_id, organization_name, url, stage, reason)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing reclassified insert: %w", err)
	}
	defer recStmt.Close()

	for _, rec := range report.Processing.Reclassified {
		if _, err := recStmt.ExecContext(ctx,
			report.RunID, rec.Organization.Name, rec.Organization.URL, rec.Stage, rec.Reason,
		); err != nil {
			return fmt.Errorf("inserting reclassified record: %w", err)
		}
	}

	return tx.Commit()
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	RunID       string
	Query       string
	Intent      string
	OutputCount int
	StartedAt   time.Time
}

// ListRuns returns saved runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, search_intent, output_count, started_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var started string
		if err := rows.Scan(&rs.RunID, &rs.Query, &rs.Intent, &rs.OutputCount, &started); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, started); parseErr == nil {
			rs.StartedAt = t
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// GetOrganizations returns the organization records saved for a run.
func (s *Store) GetOrganizations(ctx context.Context, runID string) ([]types.Organization, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT organization_name, url, type, source_url, confidence_score,
			extraction_method, description
		 FROM organizations WHERE run_id = ? ORDER BY confidence_score DESC`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying organizations: %w", err)
	}
	defer rows.Close()

	var out []types.Organization
	for rows.Next() {
		var org types.Organization
		var orgType string
		if err := rows.Scan(&org.Name, &org.URL, &orgType, &org.SourceURL,
			&org.ConfidenceScore, &org.ExtractionMethod, &org.Description); err != nil {
			return nil, fmt.Errorf("scanning organization row: %w", err)
		}
		org.OrgType = types.OrgType(orgType)
		out = append(out, org)
	}
	return out, rows.Err()
}

// GetRun loads a saved report without its organization records.
func (s *Store) GetRun(ctx context.Context, runID string) (*types.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, query, search_intent, result_count, search_duplicates_removed,
			input_count, output_count, filtered_count, duplicates_removed,
			provider_errors, validation_results, started_at, duration_ms
		 FROM runs WHERE id = ?`, runID)

	var r types.Report
	var intent, errsJSON, validJSON, started string
	var durationMS int64
	err := row.Scan(&r.RunID, &r.Query, &intent, &r.ResultCount,
		&r.SearchDuplicatesRemoved,
		&r.Processing.InputCount, &r.Processing.OutputCount,
		&r.Processing.FilteredCount, &r.Processing.DuplicatesRemoved,
		&errsJSON, &validJSON, &started, &durationMS)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}

	r.SearchIntent = types.SearchIntentClass(intent)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	if t, parseErr := time.Parse(time.RFC3339Nano, started); parseErr == nil {
		r.StartedAt = t
	}
	json.Unmarshal([]byte(errsJSON), &r.ProviderErrors)
	json.Unmarshal([]byte(validJSON), &r.Processing.ValidationResults)
	return &r, nil
}
