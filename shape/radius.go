package shape

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRadius is returned by ParseRadius for malformed input.
var ErrInvalidRadius = errors.New("shape: invalid radius")

// Radius holds corner radii: one value for every corner (Uniform) or four
// independent values (PerCorner). The zero value is a uniform zero radius.
type Radius struct {
	tl, tr, br, bl float64
	perCorner      bool
}

// Uniform returns a radius applied to all four corners.
func Uniform(r float64) Radius {
	r = sanitize(r)
	return Radius{tl: r, tr: r, br: r, bl: r}
}

// PerCorner returns independent radii for the top-left, top-right,
// bottom-right and bottom-left corners.
func PerCorner(tl, tr, br, bl float64) Radius {
	return Radius{
		tl: sanitize(tl), tr: sanitize(tr), br: sanitize(br), bl: sanitize(bl),
		perCorner: true,
	}
}

// ParseRadius parses a uniform radius such as "12" or "12px", or four
// space-separated values in top-left, top-right, bottom-right, bottom-left
// order. An empty string is a zero radius.
func ParseRadius(s string) (Radius, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return Radius{}, nil
	case 1:
		v, err := parseLength(fields[0])
		if err != nil {
			return Radius{}, fmt.Errorf("%w: %q", ErrInvalidRadius, s)
		}
		return Uniform(v), nil
	case 4:
		var v [4]float64
		for i, f := range fields {
			n, err := parseLength(f)
			if err != nil {
				return Radius{}, fmt.Errorf("%w: %q", ErrInvalidRadius, s)
			}
			v[i] = n
		}
		return PerCorner(v[0], v[1], v[2], v[3]), nil
	}
	return Radius{}, fmt.Errorf("%w: %q", ErrInvalidRadius, s)
}

func parseLength(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(s), "px"), 64)
}

// Corners returns the top-left, top-right, bottom-right and bottom-left radii.
func (r Radius) Corners() (tl, tr, br, bl float64) {
	return r.tl, r.tr, r.br, r.bl
}

// IsUniform reports whether the radius was built with Uniform.
func (r Radius) IsUniform() bool {
	return !r.perCorner
}

// Overall returns the uniform radius, or 0 for per-corner radii.
func (r Radius) Overall() float64 {
	if r.perCorner {
		return 0
	}
	return r.tl
}

// IsZero reports whether every corner is sharp.
func (r Radius) IsZero() bool {
	return r.tl == 0 && r.tr == 0 && r.br == 0 && r.bl == 0
}

// String formats the radius the way ParseRadius reads it.
func (r Radius) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	if !r.perCorner {
		return f(r.tl)
	}
	return f(r.tl) + " " + f(r.tr) + " " + f(r.br) + " " + f(r.bl)
}

// sanitize maps negative and non-finite radii to 0.
func sanitize(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
