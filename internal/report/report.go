// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles quality reports, computes their content hash,
// and projects or compares finished reports.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/metaqa/internal/flatten"
	"github.com/pdiddy/metaqa/internal/validate"
	"github.com/pdiddy/metaqa/pkg/types"
)

// Parts carries everything the engine computed for one assessment.
type Parts struct {
	Fields flatten.Fields

	FileType         string
	FileSize         int64
	ExtractionTimeMS float64
	StrictMode       bool

	CompletenessScore float64
	ValidityScore     float64
	ConsistencyScore  float64
	OverallScore      float64

	ExpectedCategories []string
	Extractors         []types.ExtractorQuality
	Categories         []types.CategoryQuality
	Failures           []types.FailurePattern
	ConsistencyChecks  []types.ConsistencyCheck
	Recommendations    []types.Recommendation
}

// Build assembles the report, stamping it with now in UTC.
func Build(p Parts, now time.Time) *types.Report {
	level := types.LevelForScore(p.OverallScore)
	return &types.Report{
		OverallScore:       p.OverallScore,
		OverallLevel:       level,
		CompletenessScore:  p.CompletenessScore,
		ValidityScore:      p.ValidityScore,
		ConsistencyScore:   p.ConsistencyScore,
		FileType:           p.FileType,
		FileSize:           p.FileSize,
		ExtractionTimeMS:   p.ExtractionTimeMS,
		TotalFields:        len(p.Fields),
		StrictMode:         p.StrictMode,
		ExpectedCategories: nonNil(p.ExpectedCategories),
		ExtractorQualities: nonNil(p.Extractors),
		CategoryQualities:  nonNil(p.Categories),
		FailurePatterns:    nonNil(p.Failures),
		ConsistencyChecks:  nonNil(p.ConsistencyChecks),
		Recommendations:    nonNil(p.Recommendations),
		CriticalIssues:     criticalIssues(level, p.OverallScore, p.Categories, p.Failures),
		Timestamp:          now.UTC().Format(time.RFC3339),
		MetadataHash:       Hash(p.Fields),
	}
}

// hashEntry is one leaf as it contributes to the digest.
type hashEntry struct {
	path, kind, text string
}

// Hash returns the hex SHA-256 digest of the fields. Each entry
// contributes its path, a kind tag and the value's text. Entries are
// sorted on all three, so leaves that flatten to the same path ("a.b" and
// {"a": {"b": ...}}) hash alike whatever their source order.
func Hash(fields flatten.Fields) string {
	entries := make([]hashEntry, len(fields))
	for i, f := range fields {
		entries[i] = hashEntry{path: f.Path, kind: kindTag(f.Value), text: validate.Stringify(f.Value)}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.path != b.path {
			return a.path < b.path
		}
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		return a.text < b.text
	})

	h := sha256.New()
	for _, e := range entries {
		fmt.Fprintf(h, "%q\x00%s\x00%q\n", e.path, e.kind, e.text)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// kindTag distinguishes values whose text collides, such as the string
// "800" and the number 800.
func kindTag(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	}
	if _, err := validate.Float(v); err == nil {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// criticalIssues lists critical failure patterns, critical categories
// missing critical fields, and a critical overall level.
func criticalIssues(level types.QualityLevel, overall float64, categories []types.CategoryQuality, failures []types.FailurePattern) []string {
	issues := []string{}
	for _, p := range failures {
		if p.Severity == types.SeverityCritical {
			issues = append(issues, p.Description)
		}
	}
	for _, cq := range categories {
		if cq.QualityLevel == types.LevelCritical && len(cq.MissingCriticalFields) > 0 {
			issues = append(issues, fmt.Sprintf("Category %s is critical: missing %s",
				cq.CategoryName, strings.Join(cq.MissingCriticalFields, ", ")))
		}
	}
	if level == types.LevelCritical {
		issues = append(issues, fmt.Sprintf("Overall metadata quality is critical (%.2f)", overall))
	}
	return issues
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
