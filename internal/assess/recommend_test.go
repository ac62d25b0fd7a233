// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assess

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metaqa/pkg/types"
)

func TestRecommendHealthy(t *testing.T) {
	got := Recommend(95, []types.CategoryQuality{{CategoryName: "exif", QualityScore: 80}}, nil, false)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommendOrder(t *testing.T) {
	categories := []types.CategoryQuality{
		{CategoryName: "exif", QualityScore: 20, MissingCriticalFields: []string{"make", "model"}},
		{CategoryName: "color", QualityScore: 75},
		{CategoryName: "icc", QualityScore: 0},
	}
	patterns := []types.FailurePattern{
		{Type: types.FailureExtraction, Description: "1 extractor(s) failed", Recommendation: "check"},
	}

	got := Recommend(40, categories, patterns, true)
	require.Len(t, got, 5)

	assert.Equal(t, "general", got[0].Category)
	assert.Equal(t, types.SeverityHigh, got[0].Priority)

	assert.Equal(t, "exif", got[1].Category)
	assert.Equal(t, types.SeverityMedium, got[1].Priority)
	assert.Equal(t, "Extract the missing critical fields: make, model", got[1].Action)

	assert.Equal(t, "icc", got[2].Category)
	assert.Equal(t, "Enable an extractor that produces this category", got[2].Action)

	assert.Equal(t, string(types.FailureExtraction), got[3].Category)
	assert.Equal(t, types.SeverityCritical, got[3].Priority)

	assert.Equal(t, "source", got[4].Category)
	assert.Equal(t, types.SeverityLow, got[4].Priority)
}

func TestRecommendTruncatesWithoutReordering(t *testing.T) {
	var categories []types.CategoryQuality
	for i := range 12 {
		categories = append(categories, types.CategoryQuality{CategoryName: fmt.Sprintf("c%02d", i), QualityScore: 10})
	}

	got := Recommend(10, categories, nil, true)
	require.Len(t, got, MaxRecommendations)
	assert.Equal(t, "general", got[0].Category)
	for i := 1; i < MaxRecommendations; i++ {
		assert.Equal(t, fmt.Sprintf("c%02d", i-1), got[i].Category)
	}
	for _, r := range got {
		assert.NotEqual(t, "source", r.Category, "the trailing item falls off the end")
	}
}
