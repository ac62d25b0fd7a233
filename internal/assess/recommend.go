// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assess

import (
	"fmt"
	"strings"

	"github.com/pdiddy/metaqa/pkg/types"
)

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 10

const recommendScoreThreshold = 60.0

// Recommend builds the ranked remediation list: the general item, then
// per-category items, then one per failure pattern, then the image
// source hint. The list is truncated after ordering, never reordered.
func Recommend(overall float64, categories []types.CategoryQuality, patterns []types.FailurePattern, imageLike bool) []types.Recommendation {
	recs := []types.Recommendation{}

	if overall < recommendScoreThreshold {
		recs = append(recs, types.Recommendation{
			Priority: types.SeverityHigh,
			Category: "general",
			Message:  fmt.Sprintf("Overall metadata quality is low (%.2f)", overall),
			Action:   "Review extractor configuration and the integrity of the source file",
		})
	}

	for _, cq := range categories {
		if cq.QualityScore >= recommendScoreThreshold {
			continue
		}
		recs = append(recs, types.Recommendation{
			Priority: types.SeverityMedium,
			Category: cq.CategoryName,
			Message:  fmt.Sprintf("Improve %s extraction (score %.2f)", cq.CategoryName, cq.QualityScore),
			Action:   categoryAction(cq),
		})
	}

	for _, p := range patterns {
		recs = append(recs, types.Recommendation{
			Priority: p.Type.Priority(),
			Category: string(p.Type),
			Message:  p.Description,
			Action:   p.Recommendation,
		})
	}

	if imageLike {
		recs = append(recs, types.Recommendation{
			Priority: types.SeverityLow,
			Category: "source",
			Message:  "Prefer lossless or original camera files as metadata sources",
			Action:   "Use RAW, TIFF or PNG originals; re-encoded images often lose EXIF, ICC and XMP data",
		})
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

func categoryAction(cq types.CategoryQuality) string {
	if len(cq.MissingCriticalFields) > 0 {
		return "Extract the missing critical fields: " + strings.Join(cq.MissingCriticalFields, ", ")
	}
	if cq.FieldsExtracted == 0 {
		return "Enable an extractor that produces this category"
	}
	return "Fix the validation errors reported for this category"
}
