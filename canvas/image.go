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

// Package canvas provides drawing sinks for the HP-GL/2 renderer.
//
// Image draws into an in-memory RGBA bitmap, PDF writes vector output.
// Encode stores a bitmap in one of several image file formats.
package canvas

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/internal/raster"
)

// thinPen is the widest pen drawn with single pixel lines.
const thinPen = 1.5

// Image is a canvas which draws into an RGBA bitmap.
//
// Thin pens are drawn as Bresenham lines.  Wider pens and polygon fills
// are anti-aliased.
type Image struct {
	RGBA *image.RGBA

	clip  image.Rectangle
	penPx float64
	ras   *raster.Rasterizer
}

// NewImage allocates a w×h bitmap filled with bg.
func NewImage(w, h int, bg color.RGBA) *Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = bg.A
	}
	ras := raster.NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)})
	// device coordinates address pixel centres
	ras.CTM = matrix.Matrix{1, 0, 0, 1, 0.5, 0.5}
	return &Image{
		RGBA:  img,
		clip:  img.Rect,
		penPx: 1,
		ras:   ras,
	}
}

// SetClip implements the hpgl.Canvas interface.
func (c *Image) SetClip(r image.Rectangle) {
	c.clip = r.Intersect(c.RGBA.Rect)
	c.ras.Clip = rect.Rect{
		LLx: float64(c.clip.Min.X),
		LLy: float64(c.clip.Min.Y),
		URx: float64(c.clip.Max.X),
		URy: float64(c.clip.Max.Y),
	}
}

// SetPenWidth implements the hpgl.PenWidther interface.
func (c *Image) SetPenWidth(px float64) {
	c.penPx = px
}

// Plot implements the hpgl.Canvas interface.  Colors with an alpha value
// below 255 are premultiplied and composited over the existing pixel.
func (c *Image) Plot(x, y int, col color.RGBA) {
	if !image.Pt(x, y).In(c.clip) {
		return
	}
	i := c.RGBA.PixOffset(x, y)
	pix := c.RGBA.Pix[i : i+4 : i+4]
	if col.A == 255 {
		pix[0], pix[1], pix[2], pix[3] = col.R, col.G, col.B, 255
		return
	}
	k := 255 - uint32(col.A)
	pix[0] = uint8(uint32(col.R) + (uint32(pix[0])*k+127)/255)
	pix[1] = uint8(uint32(col.G) + (uint32(pix[1])*k+127)/255)
	pix[2] = uint8(uint32(col.B) + (uint32(pix[2])*k+127)/255)
	pix[3] = uint8(uint32(col.A) + (uint32(pix[3])*k+127)/255)
}

// Line implements the hpgl.Canvas interface.  Both end points are drawn.
func (c *Image) Line(x0, y0, x1, y1 int, col color.RGBA) {
	if c.penPx > thinPen {
		p := (&path.Data{}).
			MoveTo(vec.Vec2{X: float64(x0), Y: float64(y0)}).
			LineTo(vec.Vec2{X: float64(x1), Y: float64(y1)})
		c.ras.Width = c.penPx
		c.ras.Stroke(p, c.emitter(col))
		return
	}

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
	for {
		c.Plot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// FillRect implements the hpgl.Canvas interface.  Both corners are
// included.
func (c *Image) FillRect(x0, y0, x1, y1 int, col color.RGBA) {
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(c.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Plot(x, y, col)
		}
	}
}

// FillPath implements the hpgl.PathFiller interface.
func (c *Image) FillPath(p *path.Data, evenOdd bool, col color.RGBA) {
	if evenOdd {
		c.ras.FillEvenOdd(p, c.emitter(col))
	} else {
		c.ras.FillNonZero(p, c.emitter(col))
	}
}

// emitter returns a callback which paints col with the given coverage.
func (c *Image) emitter(col color.RGBA) raster.EmitFunc {
	return func(y, xMin int, coverage []float32) {
		for i, a := range coverage {
			if a <= 0 {
				continue
			}
			if a >= 1 {
				c.Plot(xMin+i, y, col)
				continue
			}
			c.Plot(xMin+i, y, premultiply(col, float64(a)))
		}
	}
}

func premultiply(col color.RGBA, a float64) color.RGBA {
	f := a * float64(col.A) / 255
	scale := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) * f))
	}
	return color.RGBA{scale(col.R), scale(col.G), scale(col.B), uint8(math.Round(255 * f))}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
