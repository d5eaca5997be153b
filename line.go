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
	"image/color"
	"math"

	"seehuhn.de/go/geom/vec"
)

// maxWuWidth is the widest pen drawn with anti-aliased single pixel lines.
const maxWuWidth = 1.5

// userLine draws a line between two points given in user units.
func (r *Renderer) userLine(a, b vec.Vec2) {
	r.deviceLine(r.toDevice(a), r.toDevice(b))
}

// deviceLine clips and draws a line in device coordinates, using the
// active pen and line pattern.
func (r *Renderer) deviceLine(a, b vec.Vec2) {
	if r.inkless() {
		return
	}
	if r.st.lineType == 0 && !r.patternPaused {
		// LT0 marks only the end point, which may lie outside the
		// clip window even if the segment crosses it.
		a = b
	}
	a, b, ok := r.clipSegment(a, b)
	if !ok {
		return
	}
	r.syncPenWidth()
	c := r.penColor()
	x0, y0 := roundPoint(a)
	x1, y1 := roundPoint(b)

	switch {
	case r.patternPaused:
		r.canvas.Line(x0, y0, x1, y1, c)
	case r.st.lineType == 0:
		r.canvas.Line(x1, y1, x1, y1, c)
	case r.pat.active():
		r.patternLine(x0, y0, x1, y1, c)
	case r.opt.Antialias && r.st.transparent && r.penWidthPixels() <= maxWuWidth:
		r.wuLine(x0, y0, x1, y1, c)
	default:
		r.canvas.Line(x0, y0, x1, y1, c)
	}
}

func roundPoint(p vec.Vec2) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// patternLine steps along a Bresenham line, consulting the line pattern
// for every pixel.  Runs of painted pixels become single Line calls.
// In opaque mode, the gaps are drawn in the background color.
func (r *Renderer) patternLine(x0, y0, x1, y1 int, c color.RGBA) {
	opaque := !r.st.transparent
	bg := r.opt.Background

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	var startX, startY, lastX, lastY int
	started, painting := false, false
	flush := func() {
		if !started {
			return
		}
		if painting {
			r.canvas.Line(startX, startY, lastX, lastY, c)
		} else if opaque {
			r.canvas.Line(startX, startY, lastX, lastY, bg)
		}
	}

	x, y := x0, y0
	for {
		paint := r.pat.step()
		if !started || paint != painting {
			flush()
			startX, startY = x, y
			painting = paint
			started = true
		}
		lastX, lastY = x, y
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
	flush()
}

// wuLine draws an anti-aliased line using Wu's algorithm, with a 16 bit
// error accumulator and 8 bit intensities.
func (r *Renderer) wuLine(x0, y0, x1, y1 int, c color.RGBA) {
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	dx := x1 - x0
	dy := y1 - y0
	xDir := 1
	if dx < 0 {
		xDir = -1
		dx = -dx
	}
	if dx == 0 || dy == 0 || dx == dy {
		r.canvas.Line(x0, y0, x1, y1, c)
		return
	}

	r.blend(x0, y0, c, 255)
	var acc uint16
	if dy > dx {
		adj := uint16((uint32(dx) << 16) / uint32(dy))
		for n := dy - 1; n > 0; n-- {
			prev := acc
			acc += adj
			if acc < prev {
				x0 += xDir
			}
			y0++
			w := uint8(acc >> 8)
			r.blend(x0, y0, c, ^w)
			r.blend(x0+xDir, y0, c, w)
		}
	} else {
		adj := uint16((uint32(dy) << 16) / uint32(dx))
		for n := dx - 1; n > 0; n-- {
			prev := acc
			acc += adj
			if acc < prev {
				y0++
			}
			x0 += xDir
			w := uint8(acc >> 8)
			r.blend(x0, y0, c, ^w)
			r.blend(x0, y0+1, c, w)
		}
	}
	r.blend(x1, y1, c, 255)
}

// blend plots c with the given coverage, using premultiplied alpha.
func (r *Renderer) blend(x, y int, c color.RGBA, alpha uint8) {
	if alpha == 0 || !r.insideClip(x, y) {
		return
	}
	a := uint32(alpha)
	r.canvas.Plot(x, y, color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: alpha,
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
