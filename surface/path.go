// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/gg"
)

// verb is a path construction command.
type verb uint8

const (
	verbMoveTo  verb = iota // 1 point
	verbLineTo              // 1 point
	verbCubicTo             // 3 points
	verbClose               // 0 points
)

// path is the current path of a Canvas. Arcs are flattened into cubics when
// they are added, so the path only holds the verbs gg understands.
type path struct {
	verbs  []verb
	points []Point

	current    Point
	start      Point
	hasCurrent bool
}

func (p *path) reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.hasCurrent = false
}

func (p *path) empty() bool {
	return len(p.verbs) == 0
}

func (p *path) moveTo(pt Point) {
	p.verbs = append(p.verbs, verbMoveTo)
	p.points = append(p.points, pt)
	p.current, p.start, p.hasCurrent = pt, pt, true
}

// lineTo adds a segment; without a current point it behaves as moveTo.
func (p *path) lineTo(pt Point) {
	if !p.hasCurrent {
		p.moveTo(pt)
		return
	}
	p.verbs = append(p.verbs, verbLineTo)
	p.points = append(p.points, pt)
	p.current = pt
}

func (p *path) cubicTo(c1, c2, end Point) {
	if !p.hasCurrent {
		p.moveTo(c1)
	}
	p.verbs = append(p.verbs, verbCubicTo)
	p.points = append(p.points, c1, c2, end)
	p.current = end
}

func (p *path) close() {
	if !p.hasCurrent {
		return
	}
	p.verbs = append(p.verbs, verbClose)
	p.current = p.start
}

// arcTo appends a canvas arcTo: a line to the first tangent point followed
// by the arc, or a line to p1 for degenerate input. Without a current point
// it only moves to p1.
func (p *path) arcTo(p1, p2 Point, r float64) {
	if !p.hasCurrent {
		p.moveTo(p1)
		return
	}
	arc, ok := ArcTo(p.current, p1, p2, r)
	if !ok {
		p.lineTo(p1)
		return
	}
	p.lineTo(arc.Start)
	for _, c := range arc.Cubics() {
		p.cubicTo(c.C1, c.C2, c.End)
	}
}

// replay rebuilds the path in dc, replacing whatever path dc holds.
func (p *path) replay(dc *gg.Context) {
	dc.ClearPath()
	i := 0
	for _, v := range p.verbs {
		switch v {
		case verbMoveTo:
			dc.MoveTo(p.points[i].X, p.points[i].Y)
			i++
		case verbLineTo:
			dc.LineTo(p.points[i].X, p.points[i].Y)
			i++
		case verbCubicTo:
			c1, c2, end := p.points[i], p.points[i+1], p.points[i+2]
			dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			i += 3
		case verbClose:
			dc.ClosePath()
		}
	}
}
