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
	"image"
	"image/color"

	"seehuhn.de/go/geom/path"
)

// Canvas is the drawing sink of a Renderer.
//
// All coordinates are device pixels, with y growing downward.  Colors are
// fully resolved by the renderer; anti-aliased plots use premultiplied
// alpha.  Line and FillRect include both end points.
type Canvas interface {
	Plot(x, y int, c color.RGBA)
	Line(x0, y0, x1, y1 int, c color.RGBA)
	FillRect(x0, y0, x1, y1 int, c color.RGBA)

	// SetClip restricts subsequent drawing to r.  An empty rectangle
	// suppresses all drawing; the renderer passes one when the input
	// window lies outside the page.
	SetClip(r image.Rectangle)
}

// PenWidther is implemented by canvases which can draw wide pens.
// The renderer calls SetPenWidth whenever the device width of the active
// pen changes.
type PenWidther interface {
	SetPenWidth(px float64)
}

// PathFiller is implemented by canvases which fill polygons themselves.
// When available, solid polygon fills are passed on as device-space paths
// instead of being broken into scanline spans.
type PathFiller interface {
	FillPath(p *path.Data, evenOdd bool, c color.RGBA)
}
