// seehuhn.de/go/hpgl - render HP-GL/2 plotter output
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the outline of p as drawn by a pen of the given Width.
//
// The stroke is built as a union of simple polygons: one quadrilateral per
// segment plus the cap and join pieces.  All pieces are oriented the same
// way and filled together with the nonzero rule, so overlaps are painted
// once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]

	var pts []vec.Vec2
	closed := false
	flush := func() {
		r.strokePolyline(pts, closed)
		pts = pts[:0]
		closed = false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			pts = append(pts, p.Coords[k])
			k++
		case path.CmdLineTo:
			pts = append(pts, p.Coords[k])
			k++
		case path.CmdQuadTo:
			if len(pts) > 0 {
				r.flattenQuadratic(pts[len(pts)-1], p.Coords[k], p.Coords[k+1], func(_, b vec.Vec2) {
					pts = append(pts, b)
				})
			}
			k += 2
		case path.CmdCubeTo:
			if len(pts) > 0 {
				r.flattenCubic(pts[len(pts)-1], p.Coords[k], p.Coords[k+1], p.Coords[k+2], func(_, b vec.Vec2) {
					pts = append(pts, b)
				})
			}
			k += 3
		case path.CmdClose:
			closed = true
			flush()
		}
	}
	flush()

	r.edges = r.edges[:0]
	for i, start := range r.outlineOffsets {
		end := len(r.outline)
		if i+1 < len(r.outlineOffsets) {
			end = r.outlineOffsets[i+1]
		}
		poly := r.outline[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scan(fillNonZero, emit)
}

// strokePolyline adds the outline pieces for one subpath.
func (r *Rasterizer) strokePolyline(pts []vec.Vec2, closed bool) {
	if len(pts) == 0 {
		return
	}
	d := r.Width / 2
	if d <= 0 {
		return
	}

	// drop repeated points
	clean := pts[:1]
	for _, p := range pts[1:] {
		if p.Sub(clean[len(clean)-1]).Length() > zeroLengthThreshold {
			clean = append(clean, p)
		}
	}
	if closed && len(clean) > 2 && clean[0].Sub(clean[len(clean)-1]).Length() <= zeroLengthThreshold {
		clean = clean[:len(clean)-1]
	}

	if len(clean) == 1 {
		// a dot: only round and square caps leave a mark
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(clean[0], d)
		case graphics.LineCapSquare:
			c := clean[0]
			r.addPolygon(
				vec.Vec2{X: c.X - d, Y: c.Y - d}, vec.Vec2{X: c.X + d, Y: c.Y - d},
				vec.Vec2{X: c.X + d, Y: c.Y + d}, vec.Vec2{X: c.X - d, Y: c.Y + d})
		}
		return
	}

	n := len(clean) - 1
	if closed {
		n = len(clean)
	}
	for i := range n {
		a := clean[i]
		b := clean[(i+1)%len(clean)]
		t := b.Sub(a).Mul(1 / b.Sub(a).Length())
		if !closed && r.Cap == graphics.LineCapSquare {
			if i == 0 {
				a = a.Sub(t.Mul(d))
			}
			if i == n-1 {
				b = b.Add(t.Mul(d))
			}
		}
		nv := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)
		r.addPolygon(a.Add(nv), b.Add(nv), b.Sub(nv), a.Sub(nv))
	}

	// joins
	first, last := 1, len(clean)-1
	if closed {
		first, last = 0, len(clean)
	}
	for i := first; i < last; i++ {
		prev := clean[(i-1+len(clean))%len(clean)]
		p := clean[i%len(clean)]
		next := clean[(i+1)%len(clean)]
		r.addJoin(prev, p, next, d)
	}

	if !closed && r.Cap == graphics.LineCapRound {
		r.addDisc(clean[0], d)
		r.addDisc(clean[len(clean)-1], d)
	}
}

// addJoin fills the wedge between two segments meeting at p.
func (r *Rasterizer) addJoin(prev, p, next vec.Vec2, d float64) {
	t1 := p.Sub(prev).Mul(1 / p.Sub(prev).Length())
	t2 := next.Sub(p).Mul(1 / next.Sub(p).Length())
	cross := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(cross) < collinearityThreshold && t1.Dot(t2) > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addDisc(p, d)
		return
	}

	// the outer side is opposite to the turn direction
	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}
	if cross > 0 {
		n1, n2 = n1.Mul(-1), n2.Mul(-1)
	}
	o1 := p.Add(n1.Mul(d))
	o2 := p.Add(n2.Mul(d))

	if r.Join == graphics.LineJoinMiter {
		cosTheta := t1.Dot(t2)
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit {
			bis := n1.Add(n2)
			if l := bis.Length(); l > zeroLengthThreshold {
				tip := p.Add(bis.Mul(d / sinHalf / l))
				r.addPolygon(p, o1, tip, o2)
				return
			}
		}
	}
	r.addPolygon(p, o1, o2)
}

// addDisc adds a circle of radius d around c, approximated within Flatness.
func (r *Rasterizer) addDisc(c vec.Vec2, d float64) {
	devR := max(r.transformLinear(vec.Vec2{X: d}).Length(), r.transformLinear(vec.Vec2{Y: d}).Length())
	n := 8
	if devR > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devR)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}
	start := len(r.outline)
	for i := range n {
		phi := -2 * math.Pi * float64(i) / float64(n)
		r.outline = append(r.outline, vec.Vec2{X: c.X + d*math.Cos(phi), Y: c.Y + d*math.Sin(phi)})
	}
	r.outlineOffsets = append(r.outlineOffsets, start)
}

// addPolygon appends a polygon to the outline, reversing it if needed so
// that all pieces share clockwise orientation.
func (r *Rasterizer) addPolygon(pts ...vec.Vec2) {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if math.Abs(area) < zeroLengthThreshold {
		return
	}
	start := len(r.outline)
	if area > 0 {
		for i := len(pts) - 1; i >= 0; i-- {
			r.outline = append(r.outline, pts[i])
		}
	} else {
		r.outline = append(r.outline, pts...)
	}
	r.outlineOffsets = append(r.outlineOffsets, start)
}

// collinearityThreshold detects segment pairs which need no join.
const collinearityThreshold = 1e-6
