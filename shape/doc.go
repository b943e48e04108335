// Package shape builds the rounded-rectangle and speech-bubble paths used by
// cards, with flat or vertical-gradient fills and optional borders.
//
// Builders work on the current path of a surface.Surface and never begin or
// close it, so they compose with clipping:
//
//	s.BeginPath()
//	shape.TracePath(s, st)
//	s.ClosePath()
//	s.Clip()
//
// Corner radii are a tagged value (see Radius): either one radius for all four
// corners or four independent ones. Corners are always traced clockwise
// starting after the top-left corner: top-right, bottom-right, bottom-left,
// top-left.
//
// Malformed colors never fail a draw. They are logged through
// cardkit.Logger and the surface keeps its previous paint.
package shape
