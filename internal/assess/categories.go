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

// ExpectedCategories returns the explicit override when given, otherwise
// the categories implied by the content type. Names are lower-cased and
// de-duplicated, keeping first occurrence order.
func ExpectedCategories(tables *indicators.Tables, contentType string, override []string) []string {
	names := override
	if len(names) == 0 {
		names = tables.CategoriesFor(contentType)
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// AssessCategories scores every expected category. results holds the
// validation result of each field, index-aligned with fields.
func AssessCategories(fields flatten.Fields, results []types.FieldValidationResult, tables *indicators.Tables, categories []string) []types.CategoryQuality {
	out := make([]types.CategoryQuality, 0, len(categories))
	for _, name := range categories {
		var cq types.CategoryQuality
		if err := safely(func() { cq = assessCategory(name, fields, results, tables) }); err != nil {
			cq = types.CategoryQuality{
				CategoryName:          name,
				QualityScore:          0,
				QualityLevel:          types.LevelCritical,
				MissingCriticalFields: []string{},
				ValidationErrors:      []string{err.Error()},
				Warnings:              []string{fmt.Sprintf("Assessment of category %s failed", name)},
			}
		}
		out = append(out, cq)
	}
	return out
}

func assessCategory(name string, fields flatten.Fields, results []types.FieldValidationResult, tables *indicators.Tables) types.CategoryQuality {
	cq := types.CategoryQuality{
		CategoryName:          name,
		MissingCriticalFields: []string{},
		ValidationErrors:      []string{},
		Warnings:              []string{},
	}

	c, known := tables.Category(name)
	if !known {
		cq.Warnings = append(cq.Warnings, fmt.Sprintf("Unknown category %s has no indicator table", name))
	}
	cq.TotalExpected = c.TotalExpected()

	var matched []string
	for i, f := range fields {
		lower := strings.ToLower(f.Path)
		if !containsAny(lower, c.Indicators) {
			continue
		}
		matched = append(matched, lower)
		cq.FieldsExtracted++
		if results[i].IsValid {
			cq.FieldsValid++
			continue
		}
		for _, e := range results[i].Errors {
			cq.ValidationErrors = append(cq.ValidationErrors, fmt.Sprintf("%s: %s", f.Path, e))
		}
	}

	for _, critical := range c.Critical {
		if !anyContains(matched, critical) {
			cq.MissingCriticalFields = append(cq.MissingCriticalFields, critical)
		}
	}

	cq.QualityScore = categoryScore(cq.FieldsExtracted, cq.FieldsValid, cq.TotalExpected, len(cq.MissingCriticalFields))
	cq.QualityLevel = types.LevelForScore(cq.QualityScore)

	if len(cq.MissingCriticalFields) > 0 {
		cq.Warnings = append(cq.Warnings,
			fmt.Sprintf("Missing critical fields: %s", strings.Join(cq.MissingCriticalFields, ", ")))
	}
	if cq.FieldsExtracted == 0 {
		cq.Warnings = append(cq.Warnings, fmt.Sprintf("No fields extracted for category %s", name))
	}
	return cq
}

// categoryScore rewards coverage of 70% of the expected fields (40
// points) and validity of the extracted ones (40 points), and subtracts
// 20 points per missing critical field.
func categoryScore(extracted, valid, totalExpected, missingCritical int) float64 {
	coverage := math.Min(float64(extracted)/math.Max(float64(totalExpected)*0.7, 1), 1)
	validity := float64(valid) / math.Max(float64(extracted), 1)
	score := coverage*40 + validity*40 - float64(missingCritical)*20
	return round2(clamp(score))
}
