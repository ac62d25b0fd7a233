// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metaqa/internal/flatten"
	"github.com/pdiddy/metaqa/pkg/types"
)

func TestHashStable(t *testing.T) {
	a := flatten.Fields{{Path: "width", Value: 800}, {Path: "exif.make", Value: "Canon"}}
	b := flatten.Fields{{Path: "exif.make", Value: "Canon"}, {Path: "width", Value: 800}}

	ha := Hash(a)
	assert.Len(t, ha, 64)
	assert.Equal(t, ha, Hash(b), "field order must not matter")
	assert.Equal(t, ha, Hash(flatten.Fields{{Path: "exif.make", Value: "Canon"}, {Path: "width", Value: json.Number("800")}}),
		"decoded and native numbers hash alike")
}

func TestHashCollidingPathsIgnoreKeyOrder(t *testing.T) {
	hashOf := func(doc string) string {
		t.Helper()
		record, err := flatten.DecodeJSON(strings.NewReader(doc))
		require.NoError(t, err)
		fields, err := flatten.Flatten(record)
		require.NoError(t, err)
		require.Equal(t, []string{"a.b", "a.b"}, fields.Sorted().Paths())
		return Hash(fields)
	}

	assert.Equal(t, hashOf(`{"a.b": 1, "a": {"b": 2}}`), hashOf(`{"a": {"b": 2}, "a.b": 1}`))
	assert.NotEqual(t, hashOf(`{"a.b": 1, "a": {"b": 2}}`), hashOf(`{"a.b": 1, "a": {"b": 3}}`))
}

func TestHashDistinguishesValues(t *testing.T) {
	base := Hash(flatten.Fields{{Path: "width", Value: 800}})

	tests := []struct {
		name   string
		fields flatten.Fields
	}{
		{"different value", flatten.Fields{{Path: "width", Value: 801}}},
		{"string vs number", flatten.Fields{{Path: "width", Value: "800"}}},
		{"different path", flatten.Fields{{Path: "height", Value: 800}}},
		{"extra field", flatten.Fields{{Path: "width", Value: 800}, {Path: "height", Value: nil}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, Hash(tt.fields))
		})
	}

	assert.NotEqual(t, Hash(flatten.Fields{{Path: "x", Value: nil}}), Hash(flatten.Fields{{Path: "x", Value: ""}}))
	assert.NotEqual(t, Hash(flatten.Fields{{Path: "x", Value: true}}), Hash(flatten.Fields{{Path: "x", Value: "true"}}))
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 10, 14, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	r := Build(Parts{
		Fields:        flatten.Fields{{Path: "width", Value: 1}},
		FileType:      "image/png",
		FileSize:      2048,
		OverallScore:  30,
		ValidityScore: 100,
	}, now)

	assert.Equal(t, types.LevelCritical, r.OverallLevel)
	assert.Equal(t, "2026-10-14T12:00:00Z", r.Timestamp)
	assert.Equal(t, 1, r.TotalFields)
	assert.Equal(t, int64(2048), r.FileSize)
	assert.NotNil(t, r.ExpectedCategories)
	assert.NotNil(t, r.ExtractorQualities)
	assert.NotNil(t, r.CategoryQualities)
	assert.NotNil(t, r.FailurePatterns)
	assert.NotNil(t, r.ConsistencyChecks)
	assert.NotNil(t, r.Recommendations)
	assert.Equal(t, []string{"Overall metadata quality is critical (30.00)"}, r.CriticalIssues)
	assert.Equal(t, Hash(flatten.Fields{{Path: "width", Value: 1}}), r.MetadataHash)
}

func TestBuildCriticalIssues(t *testing.T) {
	r := Build(Parts{
		OverallScore: 70,
		Categories: []types.CategoryQuality{
			{CategoryName: "exif", QualityLevel: types.LevelCritical, MissingCriticalFields: []string{"make", "model"}},
			{CategoryName: "icc", QualityLevel: types.LevelCritical, MissingCriticalFields: []string{}},
			{CategoryName: "color", QualityLevel: types.LevelPoor, MissingCriticalFields: []string{"bit_depth"}},
		},
		Failures: []types.FailurePattern{
			{Type: types.FailureTimeout, Severity: types.SeverityHigh, Description: "timed out"},
			{Type: types.FailureExtraction, Severity: types.SeverityCritical, Description: "1 extractor(s) failed: exif_extractor"},
		},
	}, time.Unix(0, 0))

	assert.Equal(t, types.LevelAcceptable, r.OverallLevel)
	assert.Equal(t, []string{
		"1 extractor(s) failed: exif_extractor",
		"Category exif is critical: missing make, model",
	}, r.CriticalIssues)
}

func TestSummarize(t *testing.T) {
	r := &types.Report{
		OverallScore: 81.5,
		OverallLevel: types.LevelGood,
		TotalFields:  12,
		ExtractorQualities: []types.ExtractorQuality{
			{Status: types.StatusSuccess}, {Status: types.StatusPartial}, {Status: types.StatusSuccess},
		},
		CategoryQualities: []types.CategoryQuality{{}, {}},
		FailurePatterns:   []types.FailurePattern{{}},
		Recommendations:   []types.Recommendation{{}, {}, {}},
		MetadataHash:      "abc",
		Timestamp:         "2026-10-14T12:00:00Z",
	}

	s := Summarize(r)
	assert.Equal(t, 81.5, s.OverallScore)
	assert.Equal(t, types.LevelGood, s.OverallLevel)
	assert.Equal(t, 3, s.TotalExtractors)
	assert.Equal(t, 2, s.SuccessfulExtractors)
	assert.Equal(t, 2, s.TotalCategories)
	assert.Equal(t, 1, s.FailurePatterns)
	assert.Equal(t, 0, s.CriticalIssues)
	assert.Equal(t, 3, s.Recommendations)
	assert.Equal(t, "abc", s.MetadataHash)
}

func TestCompare(t *testing.T) {
	before := &types.Report{OverallScore: 66.0, OverallLevel: types.LevelAcceptable, CompletenessScore: 15.01,
		ValidityScore: 100, ConsistencyScore: 100, TotalFields: 3, MetadataHash: "h1"}
	after := &types.Report{OverallScore: 42.25, OverallLevel: types.LevelPoor, CompletenessScore: 15.01,
		ValidityScore: 50, ConsistencyScore: 75, TotalFields: 5, MetadataHash: "h2"}

	c := Compare(before, after)
	assert.Equal(t, -23.75, c.ScoreChange)
	assert.Equal(t, 0.0, c.CompletenessChange)
	assert.Equal(t, -50.0, c.ValidityChange)
	assert.Equal(t, -25.0, c.ConsistencyChange)
	assert.Equal(t, types.LevelAcceptable, c.LevelBefore)
	assert.Equal(t, types.LevelPoor, c.LevelAfter)
	assert.Equal(t, 2, c.FieldsAdded)
	assert.Equal(t, 0, c.FieldsRemoved)
	assert.False(t, c.SameData)
	assert.False(t, c.Improved)

	back := Compare(after, before)
	assert.Equal(t, 23.75, back.ScoreChange)
	assert.Equal(t, 0, back.FieldsAdded)
	assert.Equal(t, 2, back.FieldsRemoved)
	assert.True(t, back.Improved)
}

func TestCompareSameReport(t *testing.T) {
	r := &types.Report{OverallScore: 50, MetadataHash: "h"}
	c := Compare(r, r)
	require.True(t, c.SameData)
	assert.Equal(t, 0.0, c.ScoreChange)
	assert.False(t, c.Improved)

	assert.False(t, Compare(&types.Report{}, &types.Report{}).SameData, "empty hashes never match")
}
