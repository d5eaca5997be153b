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

package canvas

import (
	"fmt"
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"
)

// PDF is a canvas which writes a single page PDF file.  One device pixel
// corresponds to one PDF point.  Colors are converted to gray levels.
type PDF struct {
	page *document.Page
	w, h int
	bg   color.RGBA

	clip  image.Rectangle
	penPx float64

	fill, stroke float64 // current gray levels, -1 if unset
}

// NewPDF creates the file fname and starts a w×h page painted with bg.
// Close must be called to complete the file.
func NewPDF(fname string, w, h int, bg color.RGBA) (*PDF, error) {
	paper := &pdf.Rectangle{URx: float64(w), URy: float64(h)}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, fmt.Errorf("canvas: creating %q: %w", fname, err)
	}
	c := &PDF{
		page:   page,
		w:      w,
		h:      h,
		bg:     bg,
		clip:   image.Rect(0, 0, w, h),
		penPx:  1,
		fill:   -1,
		stroke: -1,
	}

	c.setFill(bg)
	page.Rectangle(0, 0, float64(w), float64(h))
	page.Fill()

	// PDF origin is bottom-left, device coordinates grow downward
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(h)})
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	page.SetLineWidth(1)
	return c, nil
}

// Close finishes the page and writes the file.
func (c *PDF) Close() error {
	return c.page.Close()
}

// SetClip implements the hpgl.Canvas interface.
func (c *PDF) SetClip(r image.Rectangle) {
	c.clip = r.Intersect(image.Rect(0, 0, c.w, c.h))
}

// SetPenWidth implements the hpgl.PenWidther interface.
func (c *PDF) SetPenWidth(px float64) {
	c.penPx = px
	c.page.SetLineWidth(max(px, 1))
}

// Plot implements the hpgl.Canvas interface.
func (c *PDF) Plot(x, y int, col color.RGBA) {
	if !image.Pt(x, y).In(c.clip) {
		return
	}
	c.setFill(c.flatten(col))
	c.page.Rectangle(float64(x), float64(y), 1, 1)
	c.page.Fill()
}

// Line implements the hpgl.Canvas interface.
func (c *PDF) Line(x0, y0, x1, y1 int, col color.RGBA) {
	if c.clip.Empty() {
		return
	}
	c.setStroke(col)
	c.page.MoveTo(float64(x0)+0.5, float64(y0)+0.5)
	c.page.LineTo(float64(x1)+0.5, float64(y1)+0.5)
	c.page.Stroke()
}

// FillRect implements the hpgl.Canvas interface.
func (c *PDF) FillRect(x0, y0, x1, y1 int, col color.RGBA) {
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(c.clip)
	if r.Empty() {
		return
	}
	c.setFill(col)
	c.page.Rectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.page.Fill()
}

// FillPath implements the hpgl.PathFiller interface.  The polygons are
// clipped to the current clip rectangle before they are written.
func (c *PDF) FillPath(p *path.Data, evenOdd bool, col color.RGBA) {
	if c.clip.Empty() {
		return
	}
	lo := vec.Vec2{X: float64(c.clip.Min.X) - 0.5, Y: float64(c.clip.Min.Y) - 0.5}
	hi := vec.Vec2{X: float64(c.clip.Max.X) - 0.5, Y: float64(c.clip.Max.Y) - 0.5}

	var polys [][]vec.Vec2
	var cur []vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			polys = appendPoly(polys, cur)
			cur = []vec.Vec2{p.Coords[k]}
			k++
		case path.CmdLineTo:
			cur = append(cur, p.Coords[k])
			k++
		case path.CmdQuadTo:
			cur = append(cur, p.Coords[k+1])
			k += 2
		case path.CmdCubeTo:
			cur = append(cur, p.Coords[k+2])
			k += 3
		case path.CmdClose:
			polys = appendPoly(polys, cur)
			cur = nil
		}
	}
	polys = appendPoly(polys, cur)

	empty := true
	for _, poly := range polys {
		poly = clipPolygon(poly, lo, hi)
		if len(poly) < 3 {
			continue
		}
		empty = false
		c.page.MoveTo(poly[0].X+0.5, poly[0].Y+0.5)
		for _, q := range poly[1:] {
			c.page.LineTo(q.X+0.5, q.Y+0.5)
		}
		c.page.ClosePath()
	}
	if empty {
		return
	}
	c.setFill(col)
	if evenOdd {
		c.page.FillEvenOdd()
	} else {
		c.page.Fill()
	}
}

func appendPoly(polys [][]vec.Vec2, poly []vec.Vec2) [][]vec.Vec2 {
	if len(poly) < 3 {
		return polys
	}
	return append(polys, poly)
}

// clipPolygon clips a closed polygon to the axis-parallel box [lo, hi]
// using the Sutherland-Hodgman algorithm.
func clipPolygon(poly []vec.Vec2, lo, hi vec.Vec2) []vec.Vec2 {
	type side struct {
		inside func(p vec.Vec2) bool
		cross  func(a, b vec.Vec2) vec.Vec2
	}
	atX := func(x float64) func(a, b vec.Vec2) vec.Vec2 {
		return func(a, b vec.Vec2) vec.Vec2 {
			t := (x - a.X) / (b.X - a.X)
			return vec.Vec2{X: x, Y: a.Y + t*(b.Y-a.Y)}
		}
	}
	atY := func(y float64) func(a, b vec.Vec2) vec.Vec2 {
		return func(a, b vec.Vec2) vec.Vec2 {
			t := (y - a.Y) / (b.Y - a.Y)
			return vec.Vec2{X: a.X + t*(b.X-a.X), Y: y}
		}
	}
	sides := []side{
		{func(p vec.Vec2) bool { return p.X >= lo.X }, atX(lo.X)},
		{func(p vec.Vec2) bool { return p.X <= hi.X }, atX(hi.X)},
		{func(p vec.Vec2) bool { return p.Y >= lo.Y }, atY(lo.Y)},
		{func(p vec.Vec2) bool { return p.Y <= hi.Y }, atY(hi.Y)},
	}

	for _, s := range sides {
		if len(poly) == 0 {
			break
		}
		var out []vec.Vec2
		prev := poly[len(poly)-1]
		for _, p := range poly {
			switch {
			case s.inside(p):
				if !s.inside(prev) {
					out = append(out, s.cross(prev, p))
				}
				out = append(out, p)
			case s.inside(prev):
				out = append(out, s.cross(prev, p))
			}
			prev = p
		}
		poly = out
	}
	return poly
}

// flatten composites a premultiplied color over the background.
func (c *PDF) flatten(col color.RGBA) color.RGBA {
	if col.A == 255 {
		return col
	}
	k := 255 - uint32(col.A)
	mix := func(v, b uint8) uint8 {
		return uint8(min(uint32(v)+(uint32(b)*k+127)/255, 255))
	}
	return color.RGBA{mix(col.R, c.bg.R), mix(col.G, c.bg.G), mix(col.B, c.bg.B), 255}
}

func (c *PDF) setFill(col color.RGBA) {
	g := gray(col)
	if g == c.fill {
		return
	}
	c.fill = g
	c.page.SetFillColor(pdfcolor.DeviceGray(g))
}

func (c *PDF) setStroke(col color.RGBA) {
	g := gray(col)
	if g == c.stroke {
		return
	}
	c.stroke = g
	c.page.SetStrokeColor(pdfcolor.DeviceGray(g))
}

// gray returns the luminance of col as a value between 0 and 1.
func gray(col color.RGBA) float64 {
	y := 0.299*float64(col.R) + 0.587*float64(col.G) + 0.114*float64(col.B)
	return y / 255
}
