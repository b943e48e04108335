// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
)

// arcEpsilon bounds the cross product under which three points count as
// collinear.
const arcEpsilon = 1e-9

// Arc is a circular arc produced by ArcTo.
type Arc struct {
	// Start and End are the tangent points on the first and second lines.
	Start, End Point

	Center Point
	Radius float64

	// StartAngle is the angle of Start around Center, in radians.
	StartAngle float64

	// Sweep is the signed angle from Start to End; positive is clockwise
	// in y-down surface coordinates.
	Sweep float64
}

// Cubic is a cubic Bézier segment starting at the previous end point.
type Cubic struct {
	C1, C2, End Point
}

// ArcTo computes the HTML canvas arcTo geometry for current point p0 and
// control points p1 and p2: the arc of radius r tangent to the lines p0-p1
// and p1-p2.
//
// It reports false for degenerate input (r <= 0, p0 == p1, p1 == p2 or
// collinear points). Callers then draw a straight line to p1, the behavior
// of a canvas for these cases.
func ArcTo(p0, p1, p2 Point, r float64) (Arc, bool) {
	if !(r > 0) || math.IsInf(r, 0) {
		return Arc{}, false
	}
	a := p0.Sub(p1)
	b := p2.Sub(p1)
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return Arc{}, false
	}
	cross := a.X*b.Y - a.Y*b.X
	if math.Abs(cross) <= arcEpsilon*la*lb {
		return Arc{}, false
	}

	u1 := a.Mul(1 / la)
	u2 := b.Mul(1 / lb)
	cosTheta := math.Max(-1, math.Min(1, u1.X*u2.X+u1.Y*u2.Y))
	theta := math.Acos(cosTheta)
	half := theta / 2

	d := r / math.Tan(half)
	t1 := p1.Add(u1.Mul(d))
	t2 := p1.Add(u2.Mul(d))

	bis := u1.Add(u2)
	bis = bis.Mul(1 / bis.Len())
	center := p1.Add(bis.Mul(r / math.Sin(half)))

	start := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	end := math.Atan2(t2.Y-center.Y, t2.X-center.X)
	sweep := end - start
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep <= -math.Pi {
		sweep += 2 * math.Pi
	}

	return Arc{
		Start:      t1,
		End:        t2,
		Center:     center,
		Radius:     r,
		StartAngle: start,
		Sweep:      sweep,
	}, true
}

// Cubics approximates the arc with cubic Bézier segments of at most 90°
// each, starting from a.Start.
func (a Arc) Cubics() []Cubic {
	if a.Sweep == 0 {
		return nil
	}
	n := int(math.Ceil(math.Abs(a.Sweep) / (math.Pi / 2)))
	step := a.Sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	out := make([]Cubic, 0, n)
	for i := range n {
		a1 := a.StartAngle + float64(i)*step
		a2 := a1 + step
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		cos2, sin2 := math.Cos(a2), math.Sin(a2)

		p0 := Point{a.Center.X + a.Radius*cos1, a.Center.Y + a.Radius*sin1}
		p3 := Point{a.Center.X + a.Radius*cos2, a.Center.Y + a.Radius*sin2}
		out = append(out, Cubic{
			C1:  Point{p0.X - k*a.Radius*sin1, p0.Y + k*a.Radius*cos1},
			C2:  Point{p3.X + k*a.Radius*sin2, p3.Y - k*a.Radius*cos2},
			End: p3,
		})
	}
	// Land exactly on the tangent point.
	out[len(out)-1].End = a.End
	return out
}
