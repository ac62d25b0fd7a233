// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flatten

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name   string
		record any
		want   Fields
	}{
		{
			name:   "empty map yields no fields",
			record: map[string]any{},
			want:   Fields{},
		},
		{
			name:   "flat map is visited in sorted key order",
			record: map[string]any{"width": 800, "height": 600, "make": "Canon"},
			want: Fields{
				{Path: "height", Value: 600},
				{Path: "make", Value: "Canon"},
				{Path: "width", Value: 800},
			},
		},
		{
			name: "nested maps and sequences",
			record: map[string]any{
				"exif": map[string]any{
					"make": "Nikon",
					"tags": []any{"a", map[string]any{"k": true}},
				},
			},
			want: Fields{
				{Path: "exif.make", Value: "Nikon"},
				{Path: "exif.tags[0]", Value: "a"},
				{Path: "exif.tags[1].k", Value: true},
			},
		},
		{
			name:   "empty containers contribute nothing",
			record: map[string]any{"a": map[string]any{}, "b": []any{}, "c": nil},
			want:   Fields{{Path: "c", Value: nil}},
		},
		{
			name:   "typed maps and slices",
			record: map[string]any{"tags": []string{"x", "y"}, "dims": map[string]int{"w": 1}},
			want: Fields{
				{Path: "dims.w", Value: 1},
				{Path: "tags[0]", Value: "x"},
				{Path: "tags[1]", Value: "y"},
			},
		},
		{
			name:   "top-level sequence",
			record: []any{1.5, "s"},
			want:   Fields{{Path: "[0]", Value: 1.5}, {Path: "[1]", Value: "s"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flatten(tt.record)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlattenLeafCount(t *testing.T) {
	record := map[string]any{
		"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": 1, "e": []any{1, 2, []any{3, 4}}}}},
		"f": "x",
	}
	got, err := Flatten(record)
	require.NoError(t, err)
	assert.Len(t, got, 6)
	assert.Contains(t, got.Paths(), "a.b.c.e[2][1]")
}

func TestFlattenUntraversable(t *testing.T) {
	tests := []struct {
		name   string
		record any
	}{
		{name: "channel", record: map[string]any{"c": make(chan int)}},
		{name: "function", record: func() {}},
		{name: "struct", record: struct{ A int }{A: 1}},
		{name: "int-keyed map", record: map[int]string{1: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flatten(tt.record)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUntraversable)
		})
	}
}

func TestFlattenDeterministic(t *testing.T) {
	record := map[string]any{"z": 1, "a": map[string]any{"y": 2, "b": 3}, "m": []any{4, 5}}
	first, err := Flatten(record)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Flatten(record)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDecodeJSONPreservesOrder(t *testing.T) {
	doc := `{"width": 800, "height": 600, "exif": {"model": "X", "make": "Y"}, "list": [1, {"b": 2, "a": 3}]}`
	v, err := DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)

	got, err := Flatten(v)
	require.NoError(t, err)

	want := []string{"width", "height", "exif.model", "exif.make", "list[0]", "list[1].b", "list[1].a"}
	assert.Equal(t, want, got.Paths())
	assert.Equal(t, json.Number("800"), got[0].Value)
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty input", doc: ""},
		{name: "truncated object", doc: `{"a": 1`},
		{name: "trailing data", doc: `{"a": 1} {"b": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestObjectMarshalJSON(t *testing.T) {
	obj := NewObject()
	obj.Set("b", 1)
	obj.Set("a", []any{"x"})
	obj.Set("b", 2)

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":["x"]}`, string(data))
	assert.Equal(t, []string{"b", "a"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())
}

func TestSortedIsStable(t *testing.T) {
	f := Fields{{Path: "b", Value: 1}, {Path: "a", Value: 2}, {Path: "c", Value: 3}}
	sorted := f.Sorted()
	assert.Equal(t, []string{"a", "b", "c"}, sorted.Paths())
	assert.Equal(t, []string{"b", "a", "c"}, f.Paths(), "Sorted must not modify the receiver")
}
