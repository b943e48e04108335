// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"
	"math"
	"sort"
)

// Paint is a fill or stroke paint: Solid or *Gradient.
type Paint interface {
	// ColorAt returns the paint color at (x, y) in surface coordinates.
	ColorAt(x, y float64) color.Color

	isPaint()
}

// Solid is a single-color paint.
type Solid struct {
	Color color.Color
}

// ColorAt implements Paint.
func (p Solid) ColorAt(_, _ float64) color.Color {
	if p.Color == nil {
		return color.Black
	}
	return p.Color
}

func (Solid) isPaint() {}

// ColorStop is a color at an offset in [0, 1] along a gradient.
type ColorStop struct {
	Offset float64
	Color  color.Color
}

// Gradient is a linear gradient between two points.
//
// Stops are kept sorted by offset. Outside [0, 1] the gradient is padded
// with the first and last stop colors.
type Gradient struct {
	X0, Y0 float64
	X1, Y1 float64
	Stops  []ColorStop
}

// NewLinearGradient creates a gradient along (x0, y0)-(x1, y1) with no stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return &Gradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop adds a color stop and returns g for chaining.
// Offsets are clamped to [0, 1]; NaN offsets are ignored.
func (g *Gradient) AddColorStop(offset float64, c color.Color) *Gradient {
	if math.IsNaN(offset) || c == nil {
		return g
	}
	offset = math.Max(0, math.Min(1, offset))
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	sort.SliceStable(g.Stops, func(i, j int) bool {
		return g.Stops[i].Offset < g.Stops[j].Offset
	})
	return g
}

// ColorAt implements Paint.
func (g *Gradient) ColorAt(x, y float64) color.Color {
	switch len(g.Stops) {
	case 0:
		return color.Transparent
	case 1:
		return g.Stops[0].Color
	}

	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = ((x-g.X0)*dx + (y-g.Y0)*dy) / l2
	}

	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

func (*Gradient) isPaint() {}

func lerpColor(a, b color.Color, t float64) color.Color {
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{
		R: mix(ca.R, cb.R),
		G: mix(ca.G, cb.G),
		B: mix(ca.B, cb.B),
		A: mix(ca.A, cb.A),
	}
}

// State is the drawing state saved by Save and restored by Restore.
// The clip region is saved too, but it lives in the implementation.
type State struct {
	Font      string
	Fill      Paint
	Stroke    Paint
	LineWidth float64
}

// DefaultFont is the font string of a fresh surface.
const DefaultFont = "10px sans-serif"

// DefaultState returns the state of a freshly created surface:
// black fill and stroke, 1px lines, DefaultFont.
func DefaultState() State {
	return State{
		Font:      DefaultFont,
		Fill:      Solid{Color: color.Black},
		Stroke:    Solid{Color: color.Black},
		LineWidth: 1,
	}
}

// Point is a point in surface coordinates.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the distance from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }
