// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate judges single flattened metadata fields against
// type, format and range rules chosen by the field's path.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/pdiddy/metaqa/pkg/types"
)

// ErrEmpty is the message for nil or empty-string values.
const ErrEmpty = "Field is empty or null"

// pattern is a semantic format rule applied when its token appears in the
// lower-cased path.
type pattern struct {
	token string
	re    *regexp.Regexp
}

// patterns is applied in order; every matching token is checked.
var patterns = []pattern{
	{"datetime", regexp.MustCompile(`^\d{4}[:/\-]?\d{2}[:/\-]?\d{2}`)},
	{"coordinates", regexp.MustCompile(`^-?\d+(\.\d+)?\s*,\s*-?\d+(\.\d+)?$`)},
	{"iso", regexp.MustCompile(`^\d+$`)},
	{"exposure", regexp.MustCompile(`^(\d+/\d+|\d+(\.\d+)?)$`)},
	{"f_number", regexp.MustCompile(`^(?i:f/?)?\d+(\.\d+)?$`)},
	{"resolution", regexp.MustCompile(`^\d+(\.\d+)?(\s*[xX×]\s*\d+(\.\d+)?)?(\s*(?i:dpi|ppi))?$`)},
	{"filesize", regexp.MustCompile(`^\d+$`)},
	{"mime_type", regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*/[a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*$`)},
}

// datetimeLayouts are tried after separators in the date part have been
// normalized to "-" and a space between date and time replaced by "T".
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"20060102T150405",
	"20060102",
}

// Field validates one (path, value) pair. All applicable rules run and
// their errors are collected; the field is valid iff none fired.
func Field(path string, value any) types.FieldValidationResult {
	if isEmpty(value) {
		return types.FieldValidationResult{IsValid: false, Errors: []string{ErrEmpty}}
	}

	lower := strings.ToLower(path)
	str := Stringify(value)
	var errs []string

	for _, p := range patterns {
		if strings.Contains(lower, p.token) && !p.re.MatchString(str) {
			errs = append(errs, fmt.Sprintf("Invalid %s format: %s", p.token, str))
		}
	}

	if strings.Contains(lower, "datetime") {
		if _, err := ParseDatetime(str); err != nil {
			errs = append(errs, fmt.Sprintf("Invalid datetime value: %s", str))
		}
	}

	if strings.Contains(lower, "latitude") || strings.Contains(lower, "longitude") {
		coord, err := Float(value)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("Invalid coordinate value: %s", str))
		case coord < -180 || coord > 180:
			errs = append(errs, fmt.Sprintf("Coordinate out of range: %s", str))
		}
	}

	if strings.Contains(lower, "size") || strings.Contains(lower, "width") || strings.Contains(lower, "height") {
		n, err := Int(value)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("Invalid numeric value: %s", str))
		case n <= 0:
			errs = append(errs, fmt.Sprintf("Value must be positive: %s", str))
		}
	}

	return types.FieldValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ParseDatetime parses a calendar timestamp, accepting "/" and ":" as
// date separators ("2024:01:15 10:30:00", "2024/01/15").
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	date, rest := s, ""
	if i := strings.IndexAny(s, " T"); i >= 0 {
		date, rest = s[:i], s[i+1:]
	}
	date = strings.NewReplacer("/", "-", ":", "-").Replace(date)
	normalized := date
	if rest != "" {
		normalized = date + "T" + rest
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// Float converts a scalar to float64. Booleans are rejected.
func Float(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("nil is not numeric")
	case bool:
		return 0, fmt.Errorf("boolean is not numeric")
	case json.Number:
		v = t.String()
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number %v", f)
	}
	return f, nil
}

// Int converts a scalar to an integer. Fractional numbers and booleans are
// rejected; "800", 800 and 800.0 are all accepted.
func Int(v any) (int64, error) {
	f, err := Float(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", v)
	}
	if f >= 0x1p63 || f < -0x1p63 {
		return 0, fmt.Errorf("%v overflows int64", v)
	}
	return int64(f), nil
}

// Stringify renders a scalar the way it appears in error messages and
// pattern checks.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case json.Number:
		return t.String()
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
