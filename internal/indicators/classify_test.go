// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ambiguousTables = `version: test
default_categories: [color]
categories:
  - name: color
    indicators: [color]
  - name: icc_profile
    indicators: [color_space, icc]
extractors:
  - name: exif
    keywords: [color_space, make]
    expected_fields: 10
    priority: 90
  - name: icc
    keywords: [color_space, icc]
    expected_fields: 5
    priority: 60
`

func TestClassifyLaterEntriesWin(t *testing.T) {
	tables, err := Parse([]byte(ambiguousTables))
	require.NoError(t, err)

	tests := []struct {
		path string
		want Classification
	}{
		// Both extractors list color_space; the later one (icc) wins.
		{"color_space", Classification{Kind: KindExtractor, Name: "icc", Keyword: "color_space"}},
		{"exif.make", Classification{Kind: KindExtractor, Name: "exif", Keyword: "make"}},
		// No extractor matches, so the category table decides.
		{"dominant_color", Classification{Kind: KindCategory, Name: "color", Keyword: "color"}},
		{"unrelated", Classification{Kind: KindNone}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, tables.Classify(tt.path))
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	tables, err := Parse([]byte(ambiguousTables))
	require.NoError(t, err)
	assert.Equal(t, "exif", tables.Classify("EXIF.Make").Name)
}

func TestClassifyAll(t *testing.T) {
	tables, err := Parse([]byte(ambiguousTables))
	require.NoError(t, err)

	got := tables.ClassifyAll("image.color_space")
	want := []Classification{
		{Kind: KindExtractor, Name: "icc", Keyword: "color_space"},
		{Kind: KindExtractor, Name: "exif", Keyword: "color_space"},
		{Kind: KindCategory, Name: "icc_profile", Keyword: "color_space"},
		{Kind: KindCategory, Name: "color", Keyword: "color"},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, got[0], tables.Classify("image.color_space"))
	assert.Empty(t, tables.ClassifyAll("nothing"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "extractor", KindExtractor.String())
	assert.Equal(t, "category", KindCategory.String())
	assert.Equal(t, "none", KindNone.String())
}
