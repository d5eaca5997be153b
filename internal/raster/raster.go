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

// Package raster computes anti-aliased pixel coverage for filled polygons
// and for wide pen strokes.
//
// Coverage is the fraction of a pixel's area inside the shape, from 0 to 1.
// Results are delivered one scanline at a time through an emit callback.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of scanline y, starting at pixel xMin.
// The coverage slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer converts device-space polygons and pen strokes to coverage.
// Internal buffers are reused between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps path coordinates to device coordinates.
	CTM matrix.Matrix

	// Clip bounds the output.  Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness is the curve and arc approximation tolerance in device pixels.
	Flatness float64

	// Width is the pen width, in path units.
	Width float64

	// Cap is the shape of open stroke ends.
	Cap graphics.LineCapStyle

	// Join is the shape used where stroke segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds miter joins; longer miters are bevelled.
	MiterLimit float64

	cover     []float32
	area      []float32
	edges     []edge
	activeIdx []int

	// stroke outlines, all with clockwise orientation
	outline        []vec.Vec2
	outlineOffsets []int
}

// NewRasterizer returns a Rasterizer with an identity transformation,
// a 1 pixel round pen and the given clip rectangle.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapRound,
		Join:       graphics.LineJoinRound,
		MiterLimit: defaultMiterLimit,
	}
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.fill(p, fillNonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.fill(p, fillEvenOdd, emit)
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

func (r *Rasterizer) fill(p *path.Data, rule fillRule, emit EmitFunc) {
	r.edges = r.edges[:0]

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addEdge)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	// fills close open subpaths implicitly
	if current != start {
		r.addEdge(current, start)
	}

	r.scan(rule, emit)
}

// addEdge transforms a segment to device space and records it.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	x0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	y0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	x1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	y1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := y1 - y0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})
}

// bounds returns the pixel bounding box of the edge list, clamped to Clip.
func (r *Rasterizer) bounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	e := r.edges[0]
	fxMin, fxMax := min(e.x0, e.x1), max(e.x0, e.x1)
	fyMin, fyMax := min(e.y0, e.y1), max(e.y0, e.y1)
	for _, e := range r.edges[1:] {
		fxMin = min(fxMin, e.x0, e.x1)
		fxMax = max(fxMax, e.x0, e.x1)
		fyMin = min(fyMin, e.y0, e.y1)
		fyMax = max(fyMax, e.y0, e.y1)
	}

	xMin = max(int(math.Floor(fxMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(fxMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(fyMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(fyMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// scan converts the edge list to coverage using an active edge list.
func (r *Rasterizer) scan(rule fillRule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.bounds()
	if !ok {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			if accumulateEdge(e, y, r.cover, r.area, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		if rule == fillNonZero {
			integrateNonZero(r.cover, r.area)
		} else {
			integrateEvenOdd(r.cover, r.area)
		}
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// Each pixel collects two values: cover, the signed vertical extent of
// the edges crossing the pixel, and area, the same weighted by the part
// of the pixel to the right of the crossing.  Integrating a scanline from
// left to right turns these into the signed area inside each pixel.

// accumulateEdge adds the part of e inside scanline y to cover and area,
// which are indexed by x-bxMin.  Contributions left of the buffer are
// folded into the first pixel.  It reports whether anything was added.
func accumulateEdge(e *edge, y int, cover, area []float32, bxMin, bxMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xTop, xBot)))
	pixRight := int(math.Floor(max(xTop, xBot)))

	if pixLeft >= bxMax {
		return false
	}
	if pixRight < bxMin {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return true
	}

	add := func(pix int, y0, y1 float64) {
		c := sign * float32(y1-y0)
		switch {
		case pix < bxMin:
			cover[0] += c
			area[0] += c
		case pix < bxMax:
			xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
			frac := xMid - float64(pix)
			cover[pix-bxMin] += c
			area[pix-bxMin] += c * float32(1-frac)
		}
	}

	if pixLeft == pixRight {
		add(pixLeft, yTop, yBot)
		return true
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi > lo {
			add(pix, lo, hi)
		}
	}
	return true
}

// integrateNonZero turns cover/area into nonzero coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// integrateEvenOdd turns cover/area into even-odd coverage, in place.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		m := raw - 2*float32(int(raw/2))
		d := 1 - m
		if d < 0 {
			d = -d
		}
		cover[i] = 1 - d
	}
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// transformLinear applies the linear part of the CTM.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	e := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if e > r.Flatness {
		n = int(math.Ceil(math.Sqrt(e / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments,
// choosing the segment count by Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * t)).Add(p2.Mul(3 * s * t * t)).Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

const (
	// defaultFlatness is the curve tolerance in device pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF/PostScript.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the shortest stroke segment considered.
	zeroLengthThreshold = 1e-10
)
