// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"math"

	"github.com/pdiddy/metaqa/pkg/types"
)

// Summarize projects the headline figures of a report.
func Summarize(r *types.Report) types.Summary {
	successful := 0
	for _, eq := range r.ExtractorQualities {
		if eq.Status == types.StatusSuccess {
			successful++
		}
	}
	return types.Summary{
		OverallScore:         r.OverallScore,
		OverallLevel:         r.OverallLevel,
		CompletenessScore:    r.CompletenessScore,
		ValidityScore:        r.ValidityScore,
		ConsistencyScore:     r.ConsistencyScore,
		TotalFields:          r.TotalFields,
		TotalExtractors:      len(r.ExtractorQualities),
		SuccessfulExtractors: successful,
		TotalCategories:      len(r.CategoryQualities),
		FailurePatterns:      len(r.FailurePatterns),
		CriticalIssues:       len(r.CriticalIssues),
		Recommendations:      len(r.Recommendations),
		MetadataHash:         r.MetadataHash,
		Timestamp:            r.Timestamp,
	}
}

// Compare reports how after differs from before. Deltas are after minus
// before, rounded to two decimals.
func Compare(before, after *types.Report) types.Comparison {
	fieldDelta := after.TotalFields - before.TotalFields
	return types.Comparison{
		ScoreChange:        delta(before.OverallScore, after.OverallScore),
		CompletenessChange: delta(before.CompletenessScore, after.CompletenessScore),
		ValidityChange:     delta(before.ValidityScore, after.ValidityScore),
		ConsistencyChange:  delta(before.ConsistencyScore, after.ConsistencyScore),
		LevelBefore:        before.OverallLevel,
		LevelAfter:         after.OverallLevel,
		FieldsAdded:        max(fieldDelta, 0),
		FieldsRemoved:      max(-fieldDelta, 0),
		SameData:           before.MetadataHash != "" && before.MetadataHash == after.MetadataHash,
		Improved:           after.OverallScore > before.OverallScore,
	}
}

func delta(before, after float64) float64 {
	return math.Round((after-before)*100) / 100
}
