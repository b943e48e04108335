// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
)

// Surface is the drawing target consumed by cardkit components.
//
// A Surface holds a current path, a drawing state (see State) and a state
// stack. Implementations are NOT safe for concurrent use; cardkit only draws
// from the goroutine that owns the surface.
//
// Example usage:
//
//	s.BeginPath()
//	s.MoveTo(10, 10)
//	s.ArcTo(110, 10, 110, 60, 8)
//	s.SetStrokeStyle(surface.Solid{Color: color.Black})
//	s.Stroke()
type Surface interface {
	// Save pushes the current drawing state (font, paints, line width, clip).
	Save()

	// Restore pops the most recently saved state.
	// Restore without a matching Save is a no-op.
	Restore()

	// SetFont sets the current font from a CSS-like font string,
	// e.g. "bold 28px Microsoft YaHei". See ParseFont.
	SetFont(font string)

	// SetFillStyle sets the paint used by Fill and FillText.
	SetFillStyle(p Paint)

	// SetStrokeStyle sets the paint used by Stroke.
	SetStrokeStyle(p Paint)

	// SetLineWidth sets the stroke width. Non-positive or NaN widths are ignored.
	SetLineWidth(w float64)

	// MeasureText returns the advance width of text in the current font.
	MeasureText(text string) float64

	// FillText draws text with its alphabetic baseline at (x, y).
	// When maxWidth > 0 and the text is wider, it is compressed horizontally
	// to fit.
	FillText(text string, x, y, maxWidth float64)

	// BeginPath discards the current path.
	BeginPath()

	// MoveTo starts a new subpath at (x, y).
	MoveTo(x, y float64)

	// LineTo adds a straight segment to (x, y).
	LineTo(x, y float64)

	// ArcTo adds a tangent arc of radius r using the control points
	// (x1, y1) and (x2, y2), preceded by a straight segment from the current
	// point to the first tangent point. See the package-level ArcTo for the
	// exact geometry.
	ArcTo(x1, y1, x2, y2, r float64)

	// ClosePath closes the current subpath.
	ClosePath()

	// Stroke strokes the current path. The path is kept.
	Stroke()

	// Fill fills the current path using the non-zero rule. The path is kept.
	Fill()

	// Clip intersects the clip region with the current path. The path is kept.
	Clip()

	// DrawImage draws img scaled to exactly w×h at (x, y).
	// The aspect ratio is not preserved.
	DrawImage(img image.Image, x, y, w, h float64)

	// CreateLinearGradient returns a gradient along (x0, y0)-(x1, y1).
	// Add stops with AddColorStop and install it with SetFillStyle.
	CreateLinearGradient(x0, y0, x1, y1 float64) *Gradient
}

// Scoped saves the drawing state of s and returns a function restoring it.
// It is meant to be deferred so that every exit path restores the state:
//
//	defer surface.Scoped(s)()
func Scoped(s Surface) func() {
	s.Save()
	return s.Restore
}
