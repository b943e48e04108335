package shape

import (
	"github.com/gogpu/cardkit/surface"
)

// anchor is a bubble outline point: (x + fx*width + dx, y + fy*height + dy).
type anchor struct {
	fx, fy float64
	dx, dy float64
}

func (a anchor) at(st Style) (float64, float64) {
	return st.X + a.fx*st.Width + a.dx, st.Y + a.fy*st.Height + a.dy
}

// bubbleArcs holds the control points of the eight bubble arcs: the top-right
// and bottom-right box corners, then the tail curling out of the bottom-left
// corner and back up the left edge.
var bubbleArcs = [8][2]anchor{
	{{fx: 1}, {fx: 1, fy: 1}},
	{{fx: 1, fy: 1}, {fy: 1, dx: 20}},
	{{fy: 1, dx: 18}, {fy: 1, dx: 12, dy: -5}},
	{{fy: 1, dx: 8, dy: 2}, {fy: 1}},
	{{fy: 1, dx: 4, dy: -4}, {fy: 1, dx: 8, dy: -10}},
	{{fy: 1, dx: 5, dy: -12}, {fy: 1, dx: 5, dy: -20}},
	{{fy: 1, dx: 5, dy: -20}, {dx: 5}},
	{{dx: 5}, {fx: 1, dx: 5}},
}

// BubblePath traces a speech bubble with a tail at its bottom-left corner
// and strokes it with the style's paints.
//
// The bubble needs a uniform radius. BubblePath reports false and leaves the
// surface untouched when the radius is zero or per-corner.
func BubblePath(s surface.Surface, st Style) bool {
	if st.Radius.Overall() <= 0 {
		return false
	}
	applyPaints(s, st)
	TraceBubble(s, st)
	s.Stroke()
	return true
}

// TraceBubble adds the bubble outline to the current path without touching
// paints. It reports false, adding nothing, when BubblePath would.
func TraceBubble(s surface.Surface, st Style) bool {
	r := st.Radius.Overall()
	if r <= 0 {
		return false
	}
	s.MoveTo(st.X+r, st.Y)
	for _, arc := range bubbleArcs {
		x1, y1 := arc[0].at(st)
		x2, y2 := arc[1].at(st)
		s.ArcTo(x1, y1, x2, y2, r)
	}
	return true
}
