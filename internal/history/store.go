// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists assessment reports in a local SQLite database
// so a later run can be compared against the previous one for the same
// source.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/metaqa/pkg/types"
)

// ErrNotFound is returned when no report is stored for a source.
var ErrNotFound = errors.New("no stored report")

const defaultListLimit = 20

// Entry is one stored report.
type Entry struct {
	ID           string             `json:"id" yaml:"id"`
	Source       string             `json:"source" yaml:"source"`
	MetadataHash string             `json:"metadata_hash" yaml:"metadata_hash"`
	OverallScore float64            `json:"overall_score" yaml:"overall_score"`
	OverallLevel types.QualityLevel `json:"overall_level" yaml:"overall_level"`
	CreatedAt    time.Time          `json:"created_at" yaml:"created_at"`

	// Report is nil for entries returned by List.
	Report *types.Report `json:"report,omitempty" yaml:"report,omitempty"`
}

// Store manages the history SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the history database at path, creating the
// parent directory and the schema if they do not exist.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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
		`CREATE TABLE IF NOT EXISTS reports (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			metadata_hash TEXT NOT NULL,
			overall_score REAL NOT NULL,
			overall_level TEXT NOT NULL,
			created_at TEXT NOT NULL,
			report_json TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_source ON reports(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores r under source and returns the new entry.
func (s *Store) Save(ctx context.Context, source string, r *types.Report) (Entry, error) {
	if strings.TrimSpace(source) == "" {
		return Entry{}, fmt.Errorf("saving report: source is empty")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return Entry{}, fmt.Errorf("marshaling report: %w", err)
	}

	e := Entry{
		ID:           uuid.NewString(),
		Source:       source,
		MetadataHash: r.MetadataHash,
		OverallScore: r.OverallScore,
		OverallLevel: r.OverallLevel,
		CreatedAt:    s.now().UTC(),
		Report:       r,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, source, metadata_hash, overall_score, overall_level, created_at, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Source, e.MetadataHash, e.OverallScore, string(e.OverallLevel),
		e.CreatedAt.Format(time.RFC3339Nano), string(data),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting report: %w", err)
	}
	return e, nil
}

// Latest returns the most recently saved report for source, or
// ErrNotFound.
func (s *Store) Latest(ctx context.Context, source string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, metadata_hash, overall_score, overall_level, created_at, report_json
		 FROM reports WHERE source = ? ORDER BY rowid DESC LIMIT 1`, source)

	var (
		e                  Entry
		level, at, payload string
	)
	err := row.Scan(&e.ID, &e.Source, &e.MetadataHash, &e.OverallScore, &level, &at, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w for %s", ErrNotFound, source)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("querying latest report: %w", err)
	}

	e.OverallLevel = types.QualityLevel(level)
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
		return Entry{}, fmt.Errorf("parsing created_at of %s: %w", e.ID, err)
	}
	var r types.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return Entry{}, fmt.Errorf("decoding stored report %s: %w", e.ID, err)
	}
	e.Report = &r
	return e, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Source restricts the listing to one source. Empty lists all.
	Source string

	// Limit caps the number of entries. Zero uses the default of 20.
	Limit int
}

// List returns stored entries, newest first, without their reports.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, source, metadata_hash, overall_score, overall_level, created_at FROM reports`)
	if opts.Source != "" {
		qb.WriteString(` WHERE source = ?`)
		args = append(args, opts.Source)
	}
	qb.WriteString(` ORDER BY rowid DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e         Entry
			level, at string
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.MetadataHash, &e.OverallScore, &level, &at); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		e.OverallLevel = types.QualityLevel(level)
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
