// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assess

import (
	"fmt"
	"strings"

	"github.com/pdiddy/metaqa/internal/flatten"
	"github.com/pdiddy/metaqa/internal/validate"
	"github.com/pdiddy/metaqa/pkg/types"
)

// Names of the consistency checks, in report order.
const (
	CheckDimensions = "dimensions"
	CheckDatetime   = "datetime"
	CheckGPSPair    = "gps_pair"
	CheckColorDepth = "color_depth"
)

var validBitDepths = map[string]map[int64]bool{
	"rgb":       {8: true, 16: true, 32: true},
	"grayscale": {1: true, 2: true, 4: true, 8: true, 16: true},
}

// CheckConsistency runs the fixed battery of cross-field checks. Each
// check is independent of the others.
func CheckConsistency(fields flatten.Fields) []types.ConsistencyCheck {
	return []types.ConsistencyCheck{
		checkDimensions(fields),
		checkDatetime(),
		checkGPSPair(fields),
		checkColorDepth(fields),
	}
}

func checkDimensions(fields flatten.Fields) types.ConsistencyCheck {
	c := types.ConsistencyCheck{Name: CheckDimensions, Passed: true}
	width, wok := findValue(fields, "width")
	height, hok := findValue(fields, "height")
	if !wok || !hok {
		return c
	}
	w, werr := validate.Int(width)
	h, herr := validate.Int(height)
	if werr != nil || herr != nil {
		return c
	}
	if w <= 0 || h <= 0 {
		c.Passed = false
		c.Detail = fmt.Sprintf("non-positive dimensions %dx%d", w, h)
	}
	return c
}

// checkDatetime always passes; it reserves a slot for ordering checks
// across several date fields.
func checkDatetime() types.ConsistencyCheck {
	return types.ConsistencyCheck{Name: CheckDatetime, Passed: true}
}

func checkGPSPair(fields flatten.Fields) types.ConsistencyCheck {
	c := types.ConsistencyCheck{Name: CheckGPSPair, Passed: true}
	_, lat := findValue(fields, "latitude")
	_, lon := findValue(fields, "longitude")
	switch {
	case lat && !lon:
		c.Passed = false
		c.Detail = "latitude present without longitude"
	case lon && !lat:
		c.Passed = false
		c.Detail = "longitude present without latitude"
	}
	return c
}

func checkColorDepth(fields flatten.Fields) types.ConsistencyCheck {
	c := types.ConsistencyCheck{Name: CheckColorDepth, Passed: true}
	space, sok := findValue(fields, "color_space", "colorspace")
	depth, dok := findValue(fields, "bit_depth", "bitdepth", "bits_per_sample")
	if !sok || !dok {
		return c
	}
	bits, err := validate.Int(depth)
	if err != nil {
		return c
	}
	name := strings.ToLower(strings.TrimSpace(validate.Stringify(space)))
	allowed, known := validBitDepths[name]
	if known && !allowed[bits] {
		c.Passed = false
		c.Detail = fmt.Sprintf("bit depth %d invalid for color space %s", bits, name)
	}
	return c
}

// findValue returns the value of the first field whose lower-cased path
// contains any of the tokens.
func findValue(fields flatten.Fields, tokens ...string) (any, bool) {
	for _, f := range fields {
		if containsAny(strings.ToLower(f.Path), tokens) {
			return f.Value, true
		}
	}
	return nil, false
}
