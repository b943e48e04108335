// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"strconv"
	"strings"
)

// FontSpec is a parsed font string.
type FontSpec struct {
	Bold   bool
	Size   float64
	Family string
}

const (
	defaultFontSize   = 10
	defaultFontFamily = "sans-serif"
)

// ParseFont parses a CSS-like font string such as "bold 28px Microsoft YaHei".
//
// Recognized tokens before the size are "bold", "bolder", numeric weights
// (600 and above are bold) and ignored style keywords ("normal", "italic",
// "oblique"). The first token ending in "px" is the size; everything after it
// is the family, with surrounding quotes removed. Missing parts fall back to
// 10px sans-serif. ParseFont never fails.
func ParseFont(s string) FontSpec {
	spec := FontSpec{Size: defaultFontSize, Family: defaultFontFamily}
	fields := strings.Fields(s)

	for i, f := range fields {
		lf := strings.ToLower(f)
		switch lf {
		case "bold", "bolder":
			spec.Bold = true
			continue
		case "normal", "italic", "oblique", "lighter", "small-caps":
			continue
		}
		if w, err := strconv.Atoi(lf); err == nil {
			spec.Bold = w >= 600
			continue
		}
		if size, ok := strings.CutSuffix(lf, "px"); ok {
			if v, err := strconv.ParseFloat(size, 64); err == nil && v > 0 {
				spec.Size = v
			}
			if family := strings.Join(fields[i+1:], " "); family != "" {
				spec.Family = strings.Trim(family, `"'`)
			}
			return spec
		}
		// No size: the rest is the family.
		spec.Family = strings.Trim(strings.Join(fields[i:], " "), `"'`)
		return spec
	}
	return spec
}

// String formats the spec as "bold 28px Family" (no "bold " when regular).
func (f FontSpec) String() string {
	var b strings.Builder
	if f.Bold {
		b.WriteString("bold ")
	}
	b.WriteString(strconv.FormatFloat(f.Size, 'f', -1, 64))
	b.WriteString("px ")
	b.WriteString(f.Family)
	return b.String()
}
