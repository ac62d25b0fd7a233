// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assess

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/metaqa/internal/flatten"
	"github.com/pdiddy/metaqa/internal/indicators"
	"github.com/pdiddy/metaqa/internal/validate"
	"github.com/pdiddy/metaqa/pkg/types"
)

// errorMarkers identify fields that report an extractor problem rather
// than extracted data.
var errorMarkers = []string{"_error", "_failed", "_exception", "_timeout"}

// falsyPlaceholders are string values that mean "no error" in an error
// indicator field.
var falsyPlaceholders = map[string]bool{
	"": true, "0": true, "false": true, "none": true, "null": true, "nil": true, "n/a": true,
}

// Attribution lists the paths that matched one extractor type's keywords.
// A path may appear under several extractor types.
type Attribution struct {
	Extractor indicators.Extractor
	Paths     []string
}

// Attribute scans every path for every extractor type's keywords and
// returns the extractor types found, in table order.
func Attribute(fields flatten.Fields, tables *indicators.Tables) []Attribution {
	var out []Attribution
	for _, ext := range tables.Extractors() {
		var paths []string
		for _, f := range fields {
			if containsAny(strings.ToLower(f.Path), ext.Keywords) {
				paths = append(paths, f.Path)
			}
		}
		if len(paths) > 0 {
			out = append(out, Attribution{Extractor: ext, Paths: paths})
		}
	}
	return out
}

// AssessExtractors attributes fields to extractor types and scores each
// one found. A failure while scoring one extractor is recorded on that
// extractor only.
func AssessExtractors(fields flatten.Fields, tables *indicators.Tables) []types.ExtractorQuality {
	attributions := Attribute(fields, tables)
	out := make([]types.ExtractorQuality, 0, len(attributions))
	for _, a := range attributions {
		ext := a.Extractor
		var eq types.ExtractorQuality
		if err := safely(func() { eq = assessExtractor(ext, fields) }); err != nil {
			eq = types.ExtractorQuality{
				ExtractorName:  extractorName(ext.Name),
				ExtractorType:  ext.Name,
				Status:         types.StatusFailed,
				ExpectedFields: ext.ExpectedFields,
				Errors:         []string{err.Error()},
				Warnings:       []string{},
			}
		}
		out = append(out, eq)
	}
	return out
}

func assessExtractor(ext indicators.Extractor, fields flatten.Fields) types.ExtractorQuality {
	eq := types.ExtractorQuality{
		ExtractorName:  extractorName(ext.Name),
		ExtractorType:  ext.Name,
		ExpectedFields: ext.ExpectedFields,
		Errors:         []string{},
		Warnings:       []string{},
	}

	timingSeen, retrySeen := false, false
	for _, f := range fields {
		lower := strings.ToLower(f.Path)
		if !strings.Contains(lower, ext.Name) {
			continue
		}
		if isErrorIndicator(lower) {
			if !isFalsy(f.Value) {
				eq.Errors = append(eq.Errors, fmt.Sprintf("%s: %s", f.Path, validate.Stringify(f.Value)))
			}
			continue
		}
		eq.FieldsExtracted++

		if !timingSeen && (strings.Contains(lower, "execution_time") || strings.Contains(lower, "processing_time")) {
			if ms, err := validate.Float(f.Value); err == nil && ms >= 0 {
				eq.ExecutionTimeMS = ms
				timingSeen = true
			}
		}
		if !retrySeen && strings.Contains(lower, "retr") {
			if n, err := validate.Int(f.Value); err == nil && n >= 0 {
				eq.RetryCount = int(n)
				retrySeen = true
			}
		}
	}

	eq.Status = extractionStatus(eq.Errors, eq.FieldsExtracted)
	eq.QualityScore = extractorScore(eq.FieldsExtracted, ext.ExpectedFields, ext.Priority)

	if eq.FieldsExtracted*2 < ext.ExpectedFields {
		eq.Warnings = append(eq.Warnings,
			fmt.Sprintf("Only %d of about %d expected fields extracted", eq.FieldsExtracted, ext.ExpectedFields))
	}
	return eq
}

// extractionStatus infers an extractor's outcome from its error fields.
func extractionStatus(errs []string, fieldsExtracted int) types.ExtractionStatus {
	if len(errs) == 0 {
		return types.StatusSuccess
	}
	if fieldsExtracted > 0 {
		return types.StatusPartial
	}
	for _, e := range errs {
		if strings.Contains(strings.ToLower(e), "timeout") {
			return types.StatusTimeout
		}
	}
	return types.StatusFailed
}

// extractorScore weighs field coverage (capped at 150%) at 70% and the
// extractor's static priority at 30%.
func extractorScore(extracted, expected int, priority float64) float64 {
	coverage := 0.0
	if expected > 0 {
		coverage = math.Min(float64(extracted)/float64(expected), 1.5)
	}
	score := (coverage*0.7 + priority/100*0.3) * 100
	return round2(clamp(score))
}

func extractorName(extractorType string) string {
	return extractorType + "_extractor"
}

func isErrorIndicator(lowerPath string) bool {
	return containsAny(lowerPath, errorMarkers)
}

// isFalsy reports whether an error indicator value means "no error".
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return falsyPlaceholders[strings.ToLower(strings.TrimSpace(t))]
	}
	if f, err := validate.Float(v); err == nil {
		return f == 0
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
