// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package indicators holds the keyword tables that drive category and
// extractor attribution. Tables are loaded once from versioned YAML (an
// embedded default or a user file), validated, and are read-only after
// that, so a single *Tables may be shared by concurrent assessments.
package indicators

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Category describes one expected metadata category.
type Category struct {
	Name string `yaml:"name"`

	// Indicators are keywords whose presence in a path associates the
	// field with this category.
	Indicators []string `yaml:"indicators"`

	// Critical names fields whose absence is penalized.
	Critical []string `yaml:"critical"`
}

// TotalExpected is the indicator count plus the critical field count.
func (c Category) TotalExpected() int {
	return len(c.Indicators) + len(c.Critical)
}

// Extractor describes one upstream extractor type.
type Extractor struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`

	// ExpectedFields is the static estimate of fields a healthy run emits.
	ExpectedFields int `yaml:"expected_fields"`

	// Priority weights the extractor's score, 0-100.
	Priority float64 `yaml:"priority"`
}

// ContentTypeRule maps a content type to its expected categories. Type is
// either a full MIME type ("image/jpeg") or a major-type wildcard ("image/*").
type ContentTypeRule struct {
	Type       string   `yaml:"type"`
	Categories []string `yaml:"categories"`
}

// file is the on-disk YAML layout.
type file struct {
	Version           string            `yaml:"version"`
	DefaultCategories []string          `yaml:"default_categories"`
	ImageTypes        []string          `yaml:"image_types"`
	ContentTypes      []ContentTypeRule `yaml:"content_types"`
	Categories        []Category        `yaml:"categories"`
	Extractors        []Extractor       `yaml:"extractors"`
}

// Tables is an immutable set of indicator tables.
type Tables struct {
	version           string
	defaultCategories []string
	imageTypes        []string
	contentTypes      []ContentTypeRule
	categories        []Category
	categoryIndex     map[string]int
	extractors        []Extractor
	rules             []rule
}

// Default returns the embedded default tables.
func Default() (*Tables, error) {
	t, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded tables: %w", err)
	}
	return t, nil
}

// MustDefault is like Default but panics on error. The embedded file is
// covered by tests, so this only fails on a broken build.
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads and validates a YAML tables file.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading indicator tables %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("indicator tables %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates YAML table data. Keywords and names are
// lower-cased so matching is case-insensitive.
func Parse(data []byte) (*Tables, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if strings.TrimSpace(f.Version) == "" {
		return nil, fmt.Errorf("missing version")
	}

	t := &Tables{
		version:           f.Version,
		defaultCategories: lowerAll(f.DefaultCategories),
		imageTypes:        lowerAll(f.ImageTypes),
		categoryIndex:     make(map[string]int, len(f.Categories)),
	}

	for i, c := range f.Categories {
		c.Name = strings.ToLower(strings.TrimSpace(c.Name))
		if c.Name == "" {
			return nil, fmt.Errorf("category %d: empty name", i)
		}
		if _, dup := t.categoryIndex[c.Name]; dup {
			return nil, fmt.Errorf("category %q: duplicate name", c.Name)
		}
		if len(c.Indicators) == 0 {
			return nil, fmt.Errorf("category %q: no indicators", c.Name)
		}
		c.Indicators = lowerAll(c.Indicators)
		c.Critical = lowerAll(c.Critical)
		t.categoryIndex[c.Name] = len(t.categories)
		t.categories = append(t.categories, c)
	}

	seen := make(map[string]bool, len(f.Extractors))
	for i, e := range f.Extractors {
		e.Name = strings.ToLower(strings.TrimSpace(e.Name))
		if e.Name == "" {
			return nil, fmt.Errorf("extractor %d: empty name", i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("extractor %q: duplicate name", e.Name)
		}
		seen[e.Name] = true
		if len(e.Keywords) == 0 {
			return nil, fmt.Errorf("extractor %q: no keywords", e.Name)
		}
		if e.ExpectedFields <= 0 {
			return nil, fmt.Errorf("extractor %q: expected_fields must be positive, got %d", e.Name, e.ExpectedFields)
		}
		if e.Priority < 0 || e.Priority > 100 {
			return nil, fmt.Errorf("extractor %q: priority %v out of range [0,100]", e.Name, e.Priority)
		}
		e.Keywords = lowerAll(e.Keywords)
		t.extractors = append(t.extractors, e)
	}

	if len(t.defaultCategories) == 0 {
		return nil, fmt.Errorf("default_categories must not be empty")
	}
	for _, r := range f.ContentTypes {
		r.Type = strings.ToLower(strings.TrimSpace(r.Type))
		if r.Type == "" {
			return nil, fmt.Errorf("content type rule with empty type")
		}
		r.Categories = lowerAll(r.Categories)
		t.contentTypes = append(t.contentTypes, r)
	}

	t.rules = buildRules(t.categories, t.extractors)
	return t, nil
}

// Version returns the tables' declared version string.
func (t *Tables) Version() string { return t.version }

// Categories returns every known category in table order.
func (t *Tables) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = c.clone()
	}
	return out
}

// Category looks up one category by name.
func (t *Tables) Category(name string) (Category, bool) {
	i, ok := t.categoryIndex[strings.ToLower(name)]
	if !ok {
		return Category{}, false
	}
	return t.categories[i].clone(), true
}

// Extractors returns every known extractor type in table order.
func (t *Tables) Extractors() []Extractor {
	out := make([]Extractor, len(t.extractors))
	for i, e := range t.extractors {
		e.Keywords = append([]string(nil), e.Keywords...)
		out[i] = e
	}
	return out
}

// CategoriesFor returns the expected categories for a content type. An
// exact MIME rule wins over a major-type wildcard; unknown types get the
// default categories.
func (t *Tables) CategoriesFor(contentType string) []string {
	ct := normalizeContentType(contentType)
	for _, r := range t.contentTypes {
		if r.Type == ct {
			return append([]string(nil), r.Categories...)
		}
	}
	if major, _, ok := strings.Cut(ct, "/"); ok {
		wildcard := major + "/*"
		for _, r := range t.contentTypes {
			if r.Type == wildcard {
				return append([]string(nil), r.Categories...)
			}
		}
	}
	return append([]string(nil), t.defaultCategories...)
}

// IsImageType reports whether the content type is image-like.
func (t *Tables) IsImageType(contentType string) bool {
	ct := normalizeContentType(contentType)
	for _, prefix := range t.imageTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

func (c Category) clone() Category {
	c.Indicators = append([]string(nil), c.Indicators...)
	c.Critical = append([]string(nil), c.Critical...)
	return c
}

// normalizeContentType lower-cases and drops MIME parameters such as
// "; charset=utf-8".
func normalizeContentType(ct string) string {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
