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
	"cmp"
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// defaultHatchSpacing is the hatch line distance in percent of the
// P1-P2 diagonal.
const defaultHatchSpacing = 1

// fillColor returns the color used for solid and shaded fills.
func (r *Renderer) fillColor() color.RGBA {
	c := r.penColor()
	if r.st.fillType == fillShade {
		c = r.shade(c, r.st.fillShade)
	}
	return c
}

// fillPolygons fills a set of device space polygons with the current fill
// type.  Each polygon is implicitly closed.
func (r *Renderer) fillPolygons(polys [][]vec.Vec2, evenOdd bool) {
	if r.inkless() || len(polys) == 0 {
		return
	}
	switch r.st.fillType {
	case fillHatch:
		r.hatch(polys, evenOdd, r.st.fillAngle)
		return
	case fillCrossHatch:
		r.hatch(polys, evenOdd, r.st.fillAngle)
		r.hatch(polys, evenOdd, r.st.fillAngle+90)
		return
	}

	c := r.fillColor()
	if r.filler != nil {
		p := &path.Data{}
		for _, pts := range polys {
			p = p.MoveTo(pts[0])
			for _, q := range pts[1:] {
				p = p.LineTo(q)
			}
			p = p.Close()
		}
		r.filler.FillPath(p, evenOdd, c)
		return
	}
	r.scanFill(fillEdges(polys), evenOdd, c)
}

// scanFill fills the polygon given by its edges with horizontal spans,
// sampling at pixel centres.
func (r *Renderer) scanFill(edges []polyEdge, evenOdd bool, c color.RGBA) {
	if len(edges) == 0 {
		return
	}
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, e := range edges {
		yMin = min(yMin, e.a.Y, e.b.Y)
		yMax = max(yMax, e.a.Y, e.b.Y)
	}
	y0 := int(math.Ceil(max(yMin, r.clip.LLy)))
	y1 := int(math.Floor(min(yMax, r.clip.URy)))

	var buf []crossing
	for y := y0; y <= y1; y++ {
		buf = crossings(buf[:0], edges, float64(y))
		for _, s := range spans(buf, evenOdd) {
			x0 := max(math.Ceil(s[0]), r.clip.LLx)
			x1 := min(math.Floor(s[1]), r.clip.URx)
			if x0 <= x1 {
				r.canvas.Line(int(x0), y, int(x1), y, c)
			}
		}
	}
}

// hatch fills the polygons with parallel lines, drawn with the current pen
// and line type.  The angle is in degrees, counter-clockwise on the page.
func (r *Renderer) hatch(polys [][]vec.Vec2, evenOdd bool, angle float64) {
	st := &r.st
	spacing := st.fillSpacing
	if spacing == 0 {
		spacing = defaultHatchSpacing / 100 * st.p2.Sub(st.p1).Length()
	} else if st.fillUser && st.scale.mode != scaleNone {
		spacing *= math.Abs(st.scale.kx)
	}
	spacing = max(math.Abs(spacing)*r.pixelsPerUnit(), 1)

	// device y grows downward
	phi := -angle * math.Pi / 180
	sin, cos := math.Sincos(phi)
	toHatch := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: p.X*cos + p.Y*sin, Y: -p.X*sin + p.Y*cos}
	}
	fromHatch := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
	}

	edges := fillEdges(polys)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, e := range edges {
		e.a, e.b = toHatch(e.a), toHatch(e.b)
		edges[i] = e
		yMin = min(yMin, e.a.Y, e.b.Y)
		yMax = max(yMax, e.a.Y, e.b.Y)
	}

	var buf []crossing
	for y := math.Ceil(yMin/spacing) * spacing; y <= yMax; y += spacing {
		buf = crossings(buf[:0], edges, y)
		for _, s := range spans(buf, evenOdd) {
			r.deviceLine(fromHatch(vec.Vec2{X: s[0], Y: y}), fromHatch(vec.Vec2{X: s[1], Y: y}))
		}
	}
}

type crossing struct {
	x   float64
	dir int
}

// crossings appends the intersections of the horizontal line at y with
// the edges, sorted by x.
func crossings(buf []crossing, edges []polyEdge, y float64) []crossing {
	for _, e := range edges {
		a, b := e.a, e.b
		if a.Y == b.Y {
			continue
		}
		dir := 1
		if a.Y > b.Y {
			a, b = b, a
			dir = -1
		}
		if y < a.Y || y >= b.Y {
			continue
		}
		x := a.X + (y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		buf = append(buf, crossing{x: x, dir: dir})
	}
	slices.SortFunc(buf, func(p, q crossing) int {
		return cmp.Compare(p.x, q.x)
	})
	return buf
}

// spans converts sorted crossings into inside intervals.
func spans(xs []crossing, evenOdd bool) [][2]float64 {
	var res [][2]float64
	if evenOdd {
		for i := 0; i+1 < len(xs); i += 2 {
			res = append(res, [2]float64{xs[i].x, xs[i+1].x})
		}
		return res
	}
	w := 0
	var start float64
	for _, c := range xs {
		prev := w
		w += c.dir
		if prev == 0 && w != 0 {
			start = c.x
		} else if prev != 0 && w == 0 {
			res = append(res, [2]float64{start, c.x})
		}
	}
	return res
}
