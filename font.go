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
	"iter"
	"math"
	"slices"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// Glyph coordinates are given in font units.  The character body is
// fontWidth units wide and capitals are fontCapHeight units tall; the
// baseline is at y=0.
const (
	fontWidth     = 32
	fontCapHeight = 40

	gridUnit     = 8 // font units per grid step of the built-in font
	gridBaseline = 2
)

type strokeOp uint8

const (
	strokeMove strokeOp = iota
	strokeDraw
)

type stroke struct {
	op   strokeOp
	x, y int16
}

// Packed built-in strokes: bit 7 is set for draw operations, bit 6 marks
// the last stroke of a glyph, bits 3-5 hold x and bits 0-2 hold y.
const (
	packDraw = 0x80
	packLast = 0x40
)

var (
	builtinFont  [256][]byte
	builtinMarks [256][]byte
	markRaised   [256]bool
)

func init() {
	for c, src := range glyphSource {
		builtinFont[c] = packGlyph(src)
	}
	for c, l := range latin1Letters {
		src := glyphSource[l.base]
		if l.base == 'i' {
			src = dotlessI
		}
		builtinFont[c] = packGlyph(src)
		builtinMarks[c] = packGlyph(markSource[l.mark])
		markRaised[c] = l.base >= 'A' && l.base <= 'Z' && l.mark != markCedilla
	}
	box := packGlyph(boxSource)
	for c := 0x80; c < 0x100; c++ {
		if builtinFont[c] == nil && c != 0xA0 {
			builtinFont[c] = box
		}
	}
}

func packGlyph(src string) []byte {
	var res []byte
	for i, tok := range strings.Fields(src) {
		op := byte(packDraw)
		if i == 0 || tok[0] == '.' {
			op = 0
			tok = strings.TrimPrefix(tok, ".")
		}
		x, y := tok[0]-'0', tok[1]-'0'
		res = append(res, op|x<<3|y)
	}
	if len(res) > 0 {
		res[len(res)-1] |= packLast
	}
	return res
}

// builtinStrokes iterates over the strokes of a built-in glyph.
func builtinStrokes(c byte) iter.Seq[stroke] {
	return func(yield func(stroke) bool) {
		if !unpackStrokes(builtinFont[c], 0, yield) {
			return
		}
		var dy int16
		if markRaised[c] {
			dy = 2 * gridUnit
		}
		unpackStrokes(builtinMarks[c], dy, yield)
	}
}

// unpackStrokes yields the packed strokes of a glyph, shifted up by dy
// font units.  The return value is false if yield asked to stop.
func unpackStrokes(glyph []byte, dy int16, yield func(stroke) bool) bool {
	for _, b := range glyph {
		s := stroke{
			op: strokeMove,
			x:  int16(b>>3&7) * gridUnit,
			y:  (int16(b&7)-gridBaseline)*gridUnit + dy,
		}
		if b&packDraw != 0 {
			s.op = strokeDraw
		}
		if !yield(s) {
			return false
		}
		if b&packLast != 0 {
			break
		}
	}
	return true
}

// glyph returns the strokes for character c, preferring a downloaded
// glyph in the active bank.
func (r *Renderer) glyph(c byte) iter.Seq[stroke] {
	if g := r.banks[r.fontBank()][c]; g != nil && len(g.strokes) > 0 {
		return slices.Values(g.strokes)
	}
	return builtinStrokes(c)
}

func (r *Renderer) fontBank() int {
	if r.st.alternate {
		return 1
	}
	return 0
}

// charSize returns the character body size in plotter units.
func (r *Renderer) charSize() (w, h float64) {
	st := &r.st
	switch st.sizeMode {
	case sizeAbsolute:
		return st.sizeW * 10 * unitsPerMM, st.sizeH * 10 * unitsPerMM
	case sizeUser:
		if st.scale.mode == scaleNone {
			return st.sizeW, st.sizeH
		}
		return st.sizeW * math.Abs(st.scale.kx), st.sizeH * math.Abs(st.scale.ky)
	}
	return st.sizeW / 100 * (st.p2.X - st.p1.X), st.sizeH / 100 * (st.p2.Y - st.p1.Y)
}

// textAxes returns unit vectors along the text direction and towards the
// top of the characters, in plotter units.  The direction is rounded to a
// multiple of 90 degrees.
func (r *Renderer) textAxes() (dir, up vec.Vec2) {
	st := &r.st
	run, rise := st.dirRun, st.dirRise
	if st.dirRelative {
		run *= st.p2.X - st.p1.X
		rise *= st.p2.Y - st.p1.Y
	}
	q := 0
	if run != 0 || rise != 0 {
		q = int(math.Round(math.Atan2(rise, run)/(math.Pi/2))) & 3
	}
	dirs := [4]vec.Vec2{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}
	dir = dirs[q]
	up = vec.Vec2{X: -dir.Y, Y: dir.X}
	return dir, up
}

// labelSteps returns the plotter unit displacements for one character
// and for one line feed.
func (r *Renderer) labelSteps() (adv, lf vec.Vec2) {
	st := &r.st
	dir, up := r.textAxes()
	cw, ch := r.charSize()
	across := dir.Mul(1.5 * cw * (1 + st.extraSpace))
	down := up.Mul(-2 * ch * (1 + st.extraLine))
	if st.vertical {
		return down, across
	}
	return across, down
}

// drawGlyph draws a glyph with its origin at the given point in plotter
// units.  The line pattern is not applied.
func (r *Renderer) drawGlyph(strokes iter.Seq[stroke], origin vec.Vec2) {
	dir, up := r.textAxes()
	cw, ch := r.charSize()
	ux := dir.Mul(cw / fontWidth)
	uy := up.Mul(ch / fontCapHeight).Add(dir.Mul(r.st.slant * ch / fontCapHeight))

	r.patternPaused = true
	defer func() { r.patternPaused = false }()

	var last vec.Vec2
	started := false
	for s := range strokes {
		p := origin.Add(ux.Mul(float64(s.x))).Add(uy.Mul(float64(s.y)))
		d := r.plotterToDevice(p)
		if s.op == strokeDraw && started {
			r.deviceLine(last, d)
		}
		last = d
		started = true
	}
}

// drawSymbol draws the SM character centred on the pen.
func (r *Renderer) drawSymbol() {
	dir, up := r.textAxes()
	cw, ch := r.charSize()
	c := r.userToPlotter(r.st.pen)
	origin := c.Sub(dir.Mul(cw / 2)).Sub(up.Mul(ch / 2))
	r.drawGlyph(r.glyph(r.st.symbol), origin)
}
