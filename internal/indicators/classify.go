// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package indicators

import "strings"

// Kind tags what a Classification refers to.
type Kind int

const (
	KindNone Kind = iota
	KindExtractor
	KindCategory
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindExtractor:
		return "extractor"
	case KindCategory:
		return "category"
	default:
		return "none"
	}
}

// Classification is the owner assigned to one flattened path: either an
// extractor type or a category, chosen by the first matching rule.
type Classification struct {
	Kind    Kind
	Name    string
	Keyword string
}

// rule is one entry of the priority-ordered classification table.
type rule struct {
	kind    Kind
	name    string
	keyword string
}

// buildRules orders rules so that extractors are tried before categories
// and, within each table, later entries are tried before earlier ones.
// Keyword substring matching makes a path like "color_space" ambiguous
// between several owners; this order keeps the precedence the keyword
// tables have always had, where a later entry overwrote an earlier match.
func buildRules(categories []Category, extractors []Extractor) []rule {
	var rules []rule
	for i := len(extractors) - 1; i >= 0; i-- {
		for _, kw := range extractors[i].Keywords {
			rules = append(rules, rule{kind: KindExtractor, name: extractors[i].Name, keyword: kw})
		}
	}
	for i := len(categories) - 1; i >= 0; i-- {
		for _, kw := range categories[i].Indicators {
			rules = append(rules, rule{kind: KindCategory, name: categories[i].Name, keyword: kw})
		}
	}
	return rules
}

// Classify returns the owner of path under the first matching rule, or a
// Classification with KindNone when nothing matches.
func (t *Tables) Classify(path string) Classification {
	lower := strings.ToLower(path)
	for _, r := range t.rules {
		if strings.Contains(lower, r.keyword) {
			return Classification{Kind: r.kind, Name: r.name, Keyword: r.keyword}
		}
	}
	return Classification{Kind: KindNone}
}

// ClassifyAll returns every distinct owner matching path, in rule order.
// The first element, if any, equals Classify(path).
func (t *Tables) ClassifyAll(path string) []Classification {
	lower := strings.ToLower(path)
	var out []Classification
	seen := make(map[Kind]map[string]bool)
	for _, r := range t.rules {
		if !strings.Contains(lower, r.keyword) {
			continue
		}
		if seen[r.kind] == nil {
			seen[r.kind] = make(map[string]bool)
		}
		if seen[r.kind][r.name] {
			continue
		}
		seen[r.kind][r.name] = true
		out = append(out, Classification{Kind: r.kind, Name: r.name, Keyword: r.keyword})
	}
	return out
}
