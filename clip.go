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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	outLeft = 1 << iota
	outRight
	outBottom
	outTop
)

// maxClipIterations bounds the Cohen-Sutherland loop.  Each end point needs
// at most two boundary intersections.
const maxClipIterations = 4

func outcode(p vec.Vec2, c rect.Rect) int {
	code := 0
	if p.X < c.LLx {
		code |= outLeft
	} else if p.X > c.URx {
		code |= outRight
	}
	if p.Y < c.LLy {
		code |= outBottom
	} else if p.Y > c.URy {
		code |= outTop
	}
	return code
}

// clipLine clips the segment a-b to the rectangle c, boundaries included.
// If no part of the segment is inside c, ok is false.
func clipLine(a, b vec.Vec2, c rect.Rect) (vec.Vec2, vec.Vec2, bool) {
	ca, cb := outcode(a, c), outcode(b, c)
	for range maxClipIterations {
		if ca|cb == 0 {
			return a, b, true
		}
		if ca&cb != 0 {
			return a, b, false
		}

		out := ca
		if out == 0 {
			out = cb
		}
		var p vec.Vec2
		switch {
		case out&outTop != 0:
			p = vec.Vec2{X: a.X + (b.X-a.X)*(c.URy-a.Y)/(b.Y-a.Y), Y: c.URy}
		case out&outBottom != 0:
			p = vec.Vec2{X: a.X + (b.X-a.X)*(c.LLy-a.Y)/(b.Y-a.Y), Y: c.LLy}
		case out&outRight != 0:
			p = vec.Vec2{X: c.URx, Y: a.Y + (b.Y-a.Y)*(c.URx-a.X)/(b.X-a.X)}
		default:
			p = vec.Vec2{X: c.LLx, Y: a.Y + (b.Y-a.Y)*(c.LLx-a.X)/(b.X-a.X)}
		}
		if out == ca {
			a, ca = p, outcode(p, c)
		} else {
			b, cb = p, outcode(p, c)
		}
	}
	return a, b, ca|cb == 0
}

// clipSegment clips a device segment against the active clip rectangle.
func (r *Renderer) clipSegment(a, b vec.Vec2) (vec.Vec2, vec.Vec2, bool) {
	if r.clipEmpty {
		return a, b, false
	}
	return clipLine(a, b, r.clip)
}

func (r *Renderer) insideClip(x, y int) bool {
	if r.clipEmpty {
		return false
	}
	fx, fy := float64(x), float64(y)
	return fx >= r.clip.LLx && fx <= r.clip.URx && fy >= r.clip.LLy && fy <= r.clip.URy
}
