// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metaqa/internal/flatten"
	"github.com/pdiddy/metaqa/internal/indicators"
	"github.com/pdiddy/metaqa/internal/validate"
	"github.com/pdiddy/metaqa/pkg/types"
)

func validateAll(fields flatten.Fields) []types.FieldValidationResult {
	out := make([]types.FieldValidationResult, len(fields))
	for i, f := range fields {
		out[i] = validate.Field(f.Path, f.Value)
	}
	return out
}

func TestExpectedCategories(t *testing.T) {
	tables := indicators.MustDefault()

	tests := []struct {
		name        string
		contentType string
		override    []string
		want        []string
	}{
		{"jpeg", "image/jpeg", nil, []string{"basic_properties", "exif", "color", "icc", "iptc", "xmp"}},
		{"unknown type uses default", "application/x-unknown", nil, []string{"basic_properties"}},
		{"override wins", "image/jpeg", []string{"GPS", " gps ", "", "Exif"}, []string{"gps", "exif"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpectedCategories(tables, tt.contentType, tt.override))
		})
	}
}

func TestAssessCategoriesScores(t *testing.T) {
	tables := indicators.MustDefault()

	tests := []struct {
		name        string
		record      map[string]any
		wantScore   float64
		wantLevel   types.QualityLevel
		wantMissing []string
		wantErrors  []string
	}{
		{
			name:        "all critical present and valid",
			record:      map[string]any{"width": 800, "height": 600, "format": "jpeg"},
			wantScore:   55.58,
			wantLevel:   types.LevelPoor,
			wantMissing: []string{},
			wantErrors:  []string{},
		},
		{
			name:        "one invalid field",
			record:      map[string]any{"width": -5, "height": 600, "format": "jpeg"},
			wantScore:   42.25,
			wantLevel:   types.LevelPoor,
			wantMissing: []string{},
			wantErrors:  []string{"width: Value must be positive: -5"},
		},
		{
			name:        "two critical fields missing",
			record:      map[string]any{"width": 1},
			wantScore:   5.19,
			wantLevel:   types.LevelCritical,
			wantMissing: []string{"height", "format"},
			wantErrors:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := flat(t, tt.record)
			got := AssessCategories(fields, validateAll(fields), tables, []string{"basic_properties"})
			require.Len(t, got, 1)
			cq := got[0]
			assert.Equal(t, tt.wantScore, cq.QualityScore)
			assert.Equal(t, tt.wantLevel, cq.QualityLevel)
			assert.Equal(t, tt.wantMissing, cq.MissingCriticalFields)
			assert.Equal(t, tt.wantErrors, cq.ValidationErrors)
			assert.Equal(t, 11, cq.TotalExpected)
		})
	}
}

func TestAssessCategoriesUnknown(t *testing.T) {
	tables := indicators.MustDefault()
	fields := flat(t, map[string]any{"width": 1})

	got := AssessCategories(fields, validateAll(fields), tables, []string{"astrology"})
	require.Len(t, got, 1)
	cq := got[0]
	assert.Equal(t, 0.0, cq.QualityScore)
	assert.Equal(t, types.LevelCritical, cq.QualityLevel)
	assert.Equal(t, 0, cq.TotalExpected)
	assert.Len(t, cq.Warnings, 2)
	assert.Contains(t, cq.Warnings[0], "Unknown category astrology")
}

func TestAssessCategoriesRecoversPerCategory(t *testing.T) {
	tables := indicators.MustDefault()
	fields := flat(t, map[string]any{"width": 1})

	// No validation results for a matched field panics inside the
	// basic_properties pass only.
	got := AssessCategories(fields, nil, tables, []string{"basic_properties", "gps"})
	require.Len(t, got, 2)

	assert.Equal(t, types.LevelCritical, got[0].QualityLevel)
	require.Len(t, got[0].ValidationErrors, 1)
	assert.Contains(t, got[0].ValidationErrors[0], "internal error:")

	assert.Equal(t, "gps", got[1].CategoryName)
	assert.Equal(t, []string{"latitude", "longitude"}, got[1].MissingCriticalFields)
}

func TestCategoryScoreBounds(t *testing.T) {
	assert.Equal(t, 80.0, categoryScore(100, 100, 10, 0))
	assert.Equal(t, 0.0, categoryScore(0, 0, 10, 3))
	assert.Equal(t, 0.0, categoryScore(0, 0, 0, 0))
}
