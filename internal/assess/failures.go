// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assess

import (
	"fmt"
	"strings"

	"github.com/pdiddy/metaqa/pkg/types"
)

const (
	lowQualityCategoryScore = 50.0
	maxValidationErrors     = 5
)

// DetectFailures applies the failure rules in their fixed order: timeout,
// extraction failure, low-quality categories, missing critical fields,
// validation errors.
func DetectFailures(extractors []types.ExtractorQuality, categories []types.CategoryQuality) []types.FailurePattern {
	patterns := []types.FailurePattern{}

	if names := extractorsWithStatus(extractors, types.StatusTimeout); len(names) > 0 {
		patterns = append(patterns, types.FailurePattern{
			Type:               types.FailureTimeout,
			Severity:           types.SeverityHigh,
			Description:        fmt.Sprintf("%d extractor(s) timed out: %s", len(names), strings.Join(names, ", ")),
			AffectedExtractors: names,
			Recommendation:     "Increase extractor timeouts or process large files asynchronously",
		})
	}

	if names := extractorsWithStatus(extractors, types.StatusFailed); len(names) > 0 {
		patterns = append(patterns, types.FailurePattern{
			Type:               types.FailureExtraction,
			Severity:           types.SeverityCritical,
			Description:        fmt.Sprintf("%d extractor(s) failed: %s", len(names), strings.Join(names, ", ")),
			AffectedExtractors: names,
			Recommendation:     "Check extractor dependencies and the integrity of the source file",
		})
	}

	var lowQuality, missingCritical []string
	validationErrors := 0
	for _, cq := range categories {
		if cq.QualityScore < lowQualityCategoryScore {
			lowQuality = append(lowQuality, cq.CategoryName)
		}
		if len(cq.MissingCriticalFields) > 0 {
			missingCritical = append(missingCritical, cq.CategoryName)
		}
		validationErrors += len(cq.ValidationErrors)
	}

	if len(lowQuality) > 0 {
		patterns = append(patterns, types.FailurePattern{
			Type:               types.FailureLowQualityCategories,
			Severity:           types.SeverityMedium,
			Description:        fmt.Sprintf("%d category(ies) scored below %.0f: %s", len(lowQuality), lowQualityCategoryScore, strings.Join(lowQuality, ", ")),
			AffectedCategories: lowQuality,
			Recommendation:     "Review the extractors that populate these categories",
		})
	}

	if len(missingCritical) > 0 {
		patterns = append(patterns, types.FailurePattern{
			Type:               types.FailureMissingCriticalFields,
			Severity:           types.SeverityHigh,
			Description:        fmt.Sprintf("Critical fields missing in: %s", strings.Join(missingCritical, ", ")),
			AffectedCategories: missingCritical,
			Recommendation:     "Confirm the source carries these fields and that the matching extractors are enabled",
		})
	}

	if validationErrors > maxValidationErrors {
		patterns = append(patterns, types.FailurePattern{
			Type:           types.FailureValidationErrors,
			Severity:       types.SeverityMedium,
			Description:    fmt.Sprintf("%d validation errors across categories", validationErrors),
			Recommendation: "Inspect the value formats produced by upstream extractors",
		})
	}

	return patterns
}

func extractorsWithStatus(extractors []types.ExtractorQuality, status types.ExtractionStatus) []string {
	var names []string
	for _, eq := range extractors {
		if eq.Status == status {
			names = append(names, eq.ExtractorName)
		}
	}
	return names
}
