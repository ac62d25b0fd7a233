// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assess

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/metaqa/internal/flatten"
	"github.com/pdiddy/metaqa/internal/indicators"
	"github.com/pdiddy/metaqa/pkg/types"
)

// Weights of the three sub-scores in the overall score.
const (
	CompletenessWeight = 0.4
	ValidityWeight     = 0.35
	ConsistencyWeight  = 0.25
)

// unknownCategoryCompleteness is used for categories with no indicator
// table and when no extractor was attributed.
const unknownCategoryCompleteness = 50.0

// Completeness averages per-category keyword coverage (weight 0.6) with
// the mean extractor quality score (weight 0.4).
func Completeness(fields flatten.Fields, tables *indicators.Tables, categories []string, extractors []types.ExtractorQuality) float64 {
	lowerPaths := make([]string, len(fields))
	for i, f := range fields {
		lowerPaths[i] = strings.ToLower(f.Path)
	}

	categoryMean := unknownCategoryCompleteness
	if len(categories) > 0 {
		sum := 0.0
		for _, name := range categories {
			c, ok := tables.Category(name)
			if !ok {
				sum += unknownCategoryCompleteness
				continue
			}
			present := 0
			for _, kw := range c.Indicators {
				if anyContains(lowerPaths, kw) {
					present++
				}
			}
			sum += float64(present) / float64(len(c.Indicators)) * 100
		}
		categoryMean = sum / float64(len(categories))
	}

	extractorMean := unknownCategoryCompleteness
	if len(extractors) > 0 {
		sum := 0.0
		for _, eq := range extractors {
			sum += eq.QualityScore
		}
		extractorMean = sum / float64(len(extractors))
	}

	return round2(clamp(categoryMean*0.6 + extractorMean*0.4))
}

// Validity is the percentage of all flattened fields judged valid.
func Validity(results []types.FieldValidationResult) float64 {
	if len(results) == 0 {
		return 0
	}
	valid := 0
	for _, r := range results {
		if r.IsValid {
			valid++
		}
	}
	return round2(float64(valid) / float64(len(results)) * 100)
}

// Consistency is the percentage of consistency checks that passed.
func Consistency(checks []types.ConsistencyCheck) float64 {
	if len(checks) == 0 {
		return 100
	}
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	return round2(float64(passed) / float64(len(checks)) * 100)
}

// Overall combines the sub-scores with fixed weights, rounded to two
// decimals.
func Overall(completeness, validity, consistency float64) float64 {
	return round2(clamp(completeness*CompletenessWeight + validity*ValidityWeight + consistency*ConsistencyWeight))
}

func anyContains(lowerPaths []string, kw string) bool {
	for _, p := range lowerPaths {
		if strings.Contains(p, kw) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// safely runs fn and converts a panic into an error.
func safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	fn()
	return nil
}
