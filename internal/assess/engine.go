// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assess computes metadata quality reports. An Engine flattens a
// nested record, attributes fields to extractor types, scores the
// expected categories, runs the consistency checks, and combines the
// results into one reproducible report.
//
// An Engine holds only read-only tables, so one Engine may serve any
// number of concurrent Assess calls.
package assess

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pdiddy/metaqa/internal/flatten"
	"github.com/pdiddy/metaqa/internal/indicators"
	"github.com/pdiddy/metaqa/internal/logging"
	"github.com/pdiddy/metaqa/internal/report"
	"github.com/pdiddy/metaqa/internal/validate"
	"github.com/pdiddy/metaqa/pkg/types"
)

// Request is one assessment input.
type Request struct {
	// Record is the nested metadata: maps, sequences and scalars.
	Record any

	// ContentType is the declared MIME-like type, e.g. "image/jpeg".
	ContentType string

	// Categories overrides the categories inferred from ContentType.
	Categories []string

	// FileSize is the source size in bytes; zero when unknown.
	FileSize int64

	// ExtractionTimeMS is the upstream extraction duration.
	ExtractionTimeMS float64

	// Strict is recorded on the report; no rule depends on it yet.
	Strict bool
}

// Engine runs assessments against one set of indicator tables.
type Engine struct {
	tables *indicators.Tables
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an engine using tables, which must not be modified afterwards.
func New(tables *indicators.Tables, opts ...Option) *Engine {
	e := &Engine{
		tables: tables,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.New("assess")
	}
	return e
}

// Tables returns the engine's indicator tables.
func (e *Engine) Tables() *indicators.Tables { return e.tables }

// Assess produces the quality report for req. It fails only when the
// record cannot be traversed; problems with the record's content are
// reported inside the returned report.
func (e *Engine) Assess(req Request) (*types.Report, error) {
	start := time.Now()

	fields, err := flatten.Flatten(req.Record)
	if err != nil {
		return nil, fmt.Errorf("flattening record: %w", err)
	}

	results := make([]types.FieldValidationResult, len(fields))
	for i, f := range fields {
		results[i] = validate.Field(f.Path, f.Value)
	}

	categories := ExpectedCategories(e.tables, req.ContentType, req.Categories)
	extractors := AssessExtractors(fields, e.tables)
	categoryQualities := AssessCategories(fields, results, e.tables, categories)
	checks := CheckConsistency(fields)

	completeness := Completeness(fields, e.tables, categories, extractors)
	validity := Validity(results)
	consistency := Consistency(checks)
	overall := Overall(completeness, validity, consistency)

	failures := DetectFailures(extractors, categoryQualities)
	recs := Recommend(overall, categoryQualities, failures, e.tables.IsImageType(req.ContentType))

	r := report.Build(report.Parts{
		Fields:             fields,
		FileType:           req.ContentType,
		FileSize:           req.FileSize,
		ExtractionTimeMS:   req.ExtractionTimeMS,
		StrictMode:         req.Strict,
		CompletenessScore:  completeness,
		ValidityScore:      validity,
		ConsistencyScore:   consistency,
		OverallScore:       overall,
		ExpectedCategories: categories,
		Extractors:         extractors,
		Categories:         categoryQualities,
		Failures:           failures,
		ConsistencyChecks:  checks,
		Recommendations:    recs,
	}, e.now())

	e.logger.Debug("assessment complete",
		"content_type", req.ContentType,
		"fields", len(fields),
		"extractors", len(extractors),
		"overall_score", r.OverallScore,
		"level", string(r.OverallLevel),
		"duration", time.Since(start),
	)
	return r, nil
}

// FieldReport explains how one flattened field was treated.
type FieldReport struct {
	Path       string                      `json:"path" yaml:"path"`
	Value      string                      `json:"value" yaml:"value"`
	Validation types.FieldValidationResult `json:"validation" yaml:"validation"`

	// Owner is the single owner chosen by the classification pass.
	Owner string `json:"owner" yaml:"owner"`

	// Extractors lists every extractor type whose keywords match the path.
	Extractors []string `json:"extractors" yaml:"extractors"`

	// Categories lists every known category whose indicators match the path.
	Categories []string `json:"categories" yaml:"categories"`
}

// Explain returns a per-field breakdown of record in traversal order.
func (e *Engine) Explain(record any) ([]FieldReport, error) {
	fields, err := flatten.Flatten(record)
	if err != nil {
		return nil, fmt.Errorf("flattening record: %w", err)
	}

	out := make([]FieldReport, 0, len(fields))
	for _, f := range fields {
		fr := FieldReport{
			Path:       f.Path,
			Value:      validate.Stringify(f.Value),
			Validation: validate.Field(f.Path, f.Value),
			Extractors: []string{},
			Categories: []string{},
		}
		if fr.Validation.Errors == nil {
			fr.Validation.Errors = []string{}
		}
		owner := e.tables.Classify(f.Path)
		if owner.Kind != indicators.KindNone {
			fr.Owner = owner.Kind.String() + ":" + owner.Name
		}
		for _, c := range e.tables.ClassifyAll(f.Path) {
			switch c.Kind {
			case indicators.KindExtractor:
				fr.Extractors = append(fr.Extractors, c.Name)
			case indicators.KindCategory:
				fr.Categories = append(fr.Categories, c.Name)
			}
		}
		out = append(out, fr)
	}
	return out, nil
}
