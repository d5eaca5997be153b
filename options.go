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
	"log/slog"
	"math"
)

// Options control how plotter output is mapped onto a canvas.
type Options struct {
	// Width and Height give the drawable device extent in pixels.
	// If Height is zero, it is derived from the page aspect ratio.
	Width, Height int

	// Margin is added to all device coordinates.  The canvas must be
	// Width+2*Margin by Height+2*Margin pixels.
	Margin int

	// PageWidth and PageHeight give the hard clip limits of the plotter in
	// plotter units (0.025mm).
	PageWidth, PageHeight float64

	// MountRotation is the number of counter-clockwise quarter turns
	// between the plotter frame and the device.
	MountRotation int

	FlipX, FlipY bool

	// Antialias enables Wu lines for thin solid strokes.
	Antialias bool

	// IgnoreClipWindow makes the renderer disregard IW commands.  Some
	// instruments emit input windows which cut off part of their output.
	IgnoreClipWindow bool

	// Background is used to paint pattern gaps in opaque mode.
	Background color.RGBA

	// Pens holds the colors of pens 0 to 7.  If all entries are zero,
	// DefaultPens is used.
	Pens [8]color.RGBA

	Logger *slog.Logger
}

// Default page size in plotter units (ISO A4, landscape).
const (
	DefaultPageWidth  = 10365
	DefaultPageHeight = 7962
)

const defaultDeviceWidth = 1024

// DefaultPens is the HP-GL/2 default palette.
var DefaultPens = [8]color.RGBA{
	{255, 255, 255, 255},
	{0, 0, 0, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{255, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 0, 255, 255},
	{0, 255, 255, 255},
}

func (o *Options) setDefaults() {
	if o.PageWidth <= 0 || o.PageHeight <= 0 {
		o.PageWidth, o.PageHeight = DefaultPageWidth, DefaultPageHeight
	}
	o.MountRotation = ((o.MountRotation % 4) + 4) % 4
	if o.Width <= 0 {
		o.Width = defaultDeviceWidth
	}
	if o.Height <= 0 {
		o.Height = max(1, int(math.Round(float64(o.Width)*o.PageHeight/o.PageWidth)))
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.Pens == ([8]color.RGBA{}) {
		o.Pens = DefaultPens
	}
	if o.Background == (color.RGBA{}) {
		o.Background = color.RGBA{255, 255, 255, 255}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// CanvasSize returns the extent of the canvas needed for o, including the
// margin on all sides.
func (o Options) CanvasSize() (width, height int) {
	o.setDefaults()
	return o.Width + 2*o.Margin, o.Height + 2*o.Margin
}
