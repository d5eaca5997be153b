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

const (
	etx = 0x03

	// plotter units per millimetre
	unitsPerMM = 40

	defaultPenWidth      = 0.35 // mm
	defaultPatternLength = 4    // percent of the diagonal
	defaultTick          = 0.5  // percent of P2-P1
	defaultCharWidth     = 0.75 // percent of P2-P1
	defaultCharHeight    = 1.5
	defaultChordAngle    = 1 // degrees
)

type scaleMode int

const (
	scaleNone scaleMode = iota
	scaleAnisotropic
	scaleIsotropic
	scalePointFactor
)

// scaling maps user units to plotter units as p = u*k + o.
type scaling struct {
	mode                   scaleMode
	xMin, xMax, yMin, yMax float64 // xMax and yMax are factors for scalePointFactor
	left, bottom           float64 // isotropic placement, in percent

	kx, ky, ox, oy float64
}

type sizeMode int

const (
	sizeRelative sizeMode = iota
	sizeAbsolute
	sizeUser
)

const (
	fillSolid      = 1
	fillSolidAlt   = 2
	fillHatch      = 3
	fillCrossHatch = 4
	fillShade      = 10
)

type penInfo struct {
	color color.RGBA
	width float64 // mm, or percent of the P1-P2 diagonal
}

// clipWindow is an IW rectangle in plotter units.
type clipWindow struct {
	set    bool
	ll, ur vec.Vec2
}

// plotterState holds everything reset by IN.
type plotterState struct {
	pen      vec.Vec2 // user units
	penDown  bool
	relative bool

	penIndex      int
	pens          [8]penInfo
	widthRelative bool
	colorRange    [6]float64

	p1, p2   vec.Vec2 // plotter units
	rotation int      // RO, in quarter turns
	scale    scaling
	window   clipWindow

	lineType     int
	patternLen   float64
	patternAbs   bool
	userPatterns [9][]float64

	chordDeviation bool

	fillType    int
	fillSpacing float64
	fillAngle   float64
	fillShade   float64
	fillUser    bool // fill spacing is given in user units

	transparent bool

	tickPos, tickNeg float64
	symbol           byte

	sizeMode              sizeMode
	sizeW, sizeH          float64
	extraSpace, extraLine float64
	slant                 float64 // tangent of the slant angle
	dirRun, dirRise       float64
	dirRelative           bool
	vertical              bool
	lo                    int
	term                  byte
	termPrint             bool
	transparentData       bool
	alternate             bool
	stdSet, altSet        int
}

var defaultColorRange = [6]float64{0, 255, 0, 255, 0, 255}

// penColor returns the color of the active pen.
func (r *Renderer) penColor() color.RGBA {
	return r.st.pens[r.st.penIndex].color
}

// inkless reports whether drawing operations leave no mark.
func (r *Renderer) inkless() bool {
	return r.st.penIndex == 0 || r.clipEmpty
}

func (r *Renderer) selectPen(n int) {
	if n < 0 || n >= len(r.st.pens) {
		r.log.Debug("hpgl: pen out of range", "pen", n)
		return
	}
	r.st.penIndex = n
}

// penWidthPixels returns the device width of the active pen.
func (r *Renderer) penWidthPixels() float64 {
	w := r.st.pens[r.st.penIndex].width
	if r.st.widthRelative {
		return w / 100 * r.st.p2.Sub(r.st.p1).Length() * r.pixelsPerUnit()
	}
	return w * unitsPerMM * r.pixelsPerUnit()
}

// syncPenWidth tells the canvas about a changed pen width.
func (r *Renderer) syncPenWidth() {
	if r.widther == nil {
		return
	}
	px := r.penWidthPixels()
	if px != r.penPx {
		r.penPx = px
		r.widther.SetPenWidth(px)
	}
}

// setPenColor implements PC for one pen, with components in the CR range.
func (r *Renderer) setPenColor(n int, rgb [3]float64) {
	var c [3]uint8
	for i, v := range rgb {
		lo, hi := r.st.colorRange[2*i], r.st.colorRange[2*i+1]
		f := 0.0
		if hi != lo {
			f = (v - lo) / (hi - lo)
		}
		c[i] = uint8(math.Round(255 * min(max(f, 0), 1)))
	}
	r.st.pens[n].color = color.RGBA{c[0], c[1], c[2], 255}
}

// shade mixes c with the background.  Level is in percent.
func (r *Renderer) shade(c color.RGBA, level float64) color.RGBA {
	f := min(max(level, 0), 100) / 100
	bg := r.opt.Background
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*f + float64(b)*(1-f)))
	}
	return color.RGBA{mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B), 255}
}
