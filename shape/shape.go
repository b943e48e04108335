package shape

import (
	"github.com/gogpu/cardkit"
	"github.com/gogpu/cardkit/surface"
)

// Style describes a box shape and its paint.
type Style struct {
	X, Y          float64
	Width, Height float64
	Radius        Radius

	// BorderWidth <= 0 disables the border: a canvas ignores a zero line
	// width, so stroking would draw the previous width in the previous
	// stroke paint. Any positive width strokes, with the current stroke
	// paint when BorderColor is empty.
	BorderWidth float64
	BorderColor string

	// FillColor is the flat fill, or the gradient start when Gradient is set.
	// An empty FillColor keeps the current fill paint.
	FillColor string

	// Gradient fills with a vertical gradient from FillColor at the top of
	// the box to GradientEndColor at the bottom.
	Gradient         bool
	GradientEndColor string
}

// RoundedPath traces a rounded rectangle on the current path, then strokes
// (when BorderWidth > 0) and fills it with the style's paints.
//
// RoundedPath neither begins nor closes the path.
func RoundedPath(s surface.Surface, st Style) {
	applyPaints(s, st)
	TracePath(s, st)
	if st.BorderWidth > 0 {
		s.Stroke()
	}
	s.Fill()
}

// TracePath adds the rounded rectangle outline to the current path without
// touching paints: a move to the end of the top-left corner followed by the
// top-right, bottom-right, bottom-left and top-left corner arcs.
func TracePath(s surface.Surface, st Style) {
	tl, tr, br, bl := st.Radius.Corners()
	x, y, w, h := st.X, st.Y, st.Width, st.Height

	s.MoveTo(x+tl, y)
	s.ArcTo(x+w, y, x+w, y+h, tr)
	s.ArcTo(x+w, y+h, x, y+h, br)
	s.ArcTo(x, y+h, x, y, bl)
	s.ArcTo(x, y, x+w, y, tl)
}

// applyPaints installs the fill paint and, when a border is requested, the
// stroke paint and line width.
func applyPaints(s surface.Surface, st Style) {
	switch {
	case st.Gradient:
		if g, ok := gradient(s, st); ok {
			s.SetFillStyle(g)
		}
	case st.FillColor != "":
		if p, ok := paint(st.FillColor); ok {
			s.SetFillStyle(p)
		}
	}

	if st.BorderWidth > 0 {
		s.SetLineWidth(st.BorderWidth)
		if st.BorderColor != "" {
			if p, ok := paint(st.BorderColor); ok {
				s.SetStrokeStyle(p)
			}
		}
	}
}

// gradient builds the vertical fill gradient. A bad end color degrades to
// the flat start color.
func gradient(s surface.Surface, st Style) (surface.Paint, bool) {
	start, err := surface.ParseColor(st.FillColor)
	if err != nil {
		cardkit.Logger().Warn("shape: invalid gradient start color",
			"color", st.FillColor, "err", err)
		return nil, false
	}
	end, err := surface.ParseColor(st.GradientEndColor)
	if err != nil {
		cardkit.Logger().Warn("shape: invalid gradient end color",
			"color", st.GradientEndColor, "err", err)
		return surface.Solid{Color: start}, true
	}

	g := s.CreateLinearGradient(0, st.Y, 0, st.Y+st.Height)
	g.AddColorStop(0, start).AddColorStop(1, end)
	return g, true
}

func paint(c string) (surface.Paint, bool) {
	p, err := surface.ParsePaint(c)
	if err != nil {
		cardkit.Logger().Warn("shape: invalid color", "color", c, "err", err)
		return nil, false
	}
	return p, true
}
