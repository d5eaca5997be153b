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

package hpgl

import (
	"seehuhn.de/go/geom/vec"
)

const maxPolygonVertices = 8192

type polyState int

const (
	polyInactive polyState = iota
	polyDefining
	polyComplete
)

// vertex is a polygon vertex in device coordinates.  Down tells whether
// the edge ending at this vertex was drawn with the pen down.
type vertex struct {
	p    vec.Vec2
	down bool
	sub  int
}

// polyEdge is a polygon edge in device coordinates.
type polyEdge struct {
	a, b vec.Vec2
}

// polygonBuffer collects the vertices recorded in polygon mode.
type polygonBuffer struct {
	state     polyState
	verts     []vertex
	sub       int  // id of the current sub-polygon
	first     int  // index of the first vertex of the current sub-polygon
	open      bool // the current sub-polygon accepts vertices
	truncated bool
}

func (b *polygonBuffer) clear() {
	b.state = polyInactive
	b.verts = b.verts[:0]
	b.sub = 0
	b.first = 0
	b.open = false
	b.truncated = false
}

func (b *polygonBuffer) defining() bool {
	return b.state == polyDefining
}

// begin implements PM0.  The pen position p becomes the first vertex.
func (b *polygonBuffer) begin(p vec.Vec2) {
	b.clear()
	b.state = polyDefining
	b.startSub(p)
}

func (b *polygonBuffer) push(v vertex) {
	if len(b.verts) >= maxPolygonVertices {
		b.truncated = true
		return
	}
	b.verts = append(b.verts, v)
}

func (b *polygonBuffer) startSub(p vec.Vec2) {
	b.first = len(b.verts)
	b.open = true
	b.push(vertex{p: p, sub: b.sub})
}

// add records the pen moving from one point to another.  Pen-up moves
// stay part of the current sub-polygon; only PM1 and CI close it.  A
// pen-up move before the first edge relocates the starting vertex.
func (b *polygonBuffer) add(from, to vec.Vec2, down bool) {
	if !b.open {
		b.startSub(from)
	}
	if !down && len(b.verts)-b.first <= 1 {
		if b.first < len(b.verts) {
			b.verts[b.first].p = to
		}
		return
	}
	b.push(vertex{p: to, down: down, sub: b.sub})
}

// closeSub implements PM1.  A closing vertex equal to the first vertex of
// the sub-polygon is appended if needed.
func (b *polygonBuffer) closeSub() {
	if !b.open {
		return
	}
	b.open = false
	n := len(b.verts) - b.first
	if n <= 1 {
		b.verts = b.verts[:b.first]
		return
	}
	start := b.verts[b.first].p
	if b.verts[len(b.verts)-1].p != start {
		b.push(vertex{p: start, down: true, sub: b.sub})
	}
	b.sub++
}

// end implements PM2.
func (b *polygonBuffer) end() {
	if b.state != polyDefining {
		return
	}
	b.closeSub()
	b.state = polyComplete
}

// addClosed adds a complete sub-polygon, as produced by CI.
func (b *polygonBuffer) addClosed(pts []vec.Vec2) {
	if len(pts) < 2 {
		return
	}
	b.closeSub()
	b.startSub(pts[0])
	for _, p := range pts[1:] {
		b.push(vertex{p: p, down: true, sub: b.sub})
	}
	b.closeSub()
}

// subPolygons returns the vertex lists of all sub-polygons.
func (b *polygonBuffer) subPolygons() [][]vec.Vec2 {
	var res [][]vec.Vec2
	for i := 0; i < len(b.verts); {
		j := i
		for j < len(b.verts) && b.verts[j].sub == b.verts[i].sub {
			j++
		}
		if j-i > 1 {
			pts := make([]vec.Vec2, j-i)
			for k := range pts {
				pts[k] = b.verts[i+k].p
			}
			res = append(res, pts)
		}
		i = j
	}
	return res
}

// drawnEdges returns the edges which were recorded with the pen down.
func (b *polygonBuffer) drawnEdges() []polyEdge {
	var res []polyEdge
	for i := 1; i < len(b.verts); i++ {
		v := b.verts[i]
		if v.down && b.verts[i-1].sub == v.sub {
			res = append(res, polyEdge{b.verts[i-1].p, v.p})
		}
	}
	return res
}

// fillEdges returns all edges of the given polygons, closing each one.
// The pen state recorded with the vertices is ignored.
func fillEdges(polys [][]vec.Vec2) []polyEdge {
	var res []polyEdge
	for _, pts := range polys {
		for i := 1; i < len(pts); i++ {
			if pts[i] != pts[i-1] {
				res = append(res, polyEdge{pts[i-1], pts[i]})
			}
		}
		if n := len(pts); n > 2 && pts[n-1] != pts[0] {
			res = append(res, polyEdge{pts[n-1], pts[0]})
		}
	}
	return res
}

// fillPolygon implements FP.
func (r *Renderer) fillPolygon(args []float64) {
	evenOdd := len(args) == 0 || args[0] != 1
	if r.poly.truncated {
		r.log.Debug("hpgl: polygon buffer overflow", "capacity", maxPolygonVertices)
	}
	r.fillPolygons(r.poly.subPolygons(), evenOdd)
}

// edgePolygon implements EP.
func (r *Renderer) edgePolygon() {
	for _, e := range r.poly.drawnEdges() {
		r.deviceLine(e.a, e.b)
	}
}

// polygonMode implements PM.
func (r *Renderer) polygonMode(args []float64) {
	switch int(arg(args, 0)) {
	case 0:
		r.poly.begin(r.toDevice(r.st.pen))
	case 1:
		if r.poly.defining() {
			r.poly.closeSub()
		}
	case 2:
		r.poly.end()
	}
}
