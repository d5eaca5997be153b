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
	"math"
	"slices"
)

const (
	maxGlyphStrokes = 256

	// userCharSlot is the bank slot used by UC.  It is erased after
	// each use.
	userCharSlot = 256

	dlPenUp      = -128
	ucPenDown    = 99
	ucPenUp      = -99
	ucGridToFont = gridUnit
)

// downloadGlyph is a glyph defined by DL or UC.
type downloadGlyph struct {
	strokes   []stroke
	truncated bool
}

func (g *downloadGlyph) add(op strokeOp, x, y float64) {
	if len(g.strokes) >= maxGlyphStrokes {
		g.truncated = true
		return
	}
	clamp := func(v float64) int16 {
		return int16(min(max(math.Round(v), math.MinInt16), math.MaxInt16))
	}
	g.strokes = append(g.strokes, stroke{op: op, x: clamp(x), y: clamp(y)})
}

// fontBank holds the downloaded glyphs of one font slot.
type fontBank [userCharSlot + 1]*downloadGlyph

// downloadNum is the number hook of DL.  The first number selects the
// character, then coordinate pairs follow in font units.  The value -128
// lifts the pen for the next pair.
func downloadNum(r *Renderer, v float64) {
	gl := &r.gl
	bank := &r.banks[r.fontBank()]
	if gl.pair == 0 {
		gl.pair = 1
		c := int(v)
		if c < 0 || c > 255 {
			r.log.Debug("hpgl: DL character out of range", "char", v)
			gl.code = -1
			return
		}
		gl.code = c
		bank[c] = &downloadGlyph{}
		return
	}
	if gl.code < 0 {
		return
	}
	if v == dlPenUp && !gl.haveX {
		gl.penUp = true
		return
	}
	if !gl.haveX {
		gl.x, gl.haveX = v, true
		return
	}
	g := bank[gl.code]
	op := strokeDraw
	if gl.penUp || len(g.strokes) == 0 {
		op = strokeMove
	}
	g.add(op, gl.x, v)
	if g.truncated {
		r.log.Debug("hpgl: DL glyph truncated", "char", gl.code)
	}
	gl.haveX, gl.penUp = false, false
	gl.pair++
}

// downloadEnd completes DL.  Without arguments, the whole bank is
// cleared; with only a character code, that glyph is removed.
func downloadEnd(r *Renderer, _ []float64) {
	gl := &r.gl
	bank := &r.banks[r.fontBank()]
	switch {
	case gl.pair == 0:
		for c := range userCharSlot {
			bank[c] = nil
		}
	case gl.code >= 0 && len(bank[gl.code].strokes) == 0:
		bank[gl.code] = nil
	}
}

// userCharNum is the number hook of UC.  Pairs are relative moves in
// grid units; 99 lowers and -99 lifts the pen.
func userCharNum(r *Renderer, v float64) {
	gl := &r.gl
	bank := &r.banks[0]
	if bank[userCharSlot] == nil {
		bank[userCharSlot] = &downloadGlyph{}
		gl.cursor = [2]float64{}
		gl.penUp = true
	}
	if !gl.haveX {
		switch {
		case v >= ucPenDown:
			gl.penUp = false
			return
		case v <= ucPenUp:
			gl.penUp = true
			return
		}
		gl.x, gl.haveX = v, true
		return
	}
	gl.haveX = false
	gl.cursor[0] += gl.x * ucGridToFont
	gl.cursor[1] += v * ucGridToFont
	g := bank[userCharSlot]
	op := strokeDraw
	if gl.penUp || len(g.strokes) == 0 {
		op = strokeMove
		if len(g.strokes) == 0 && !gl.penUp {
			g.add(strokeMove, 0, 0)
			op = strokeDraw
		}
	}
	g.add(op, gl.cursor[0], gl.cursor[1])
}

// userCharEnd draws the user character at the pen, advances the pen and
// erases the glyph.
func userCharEnd(r *Renderer, _ []float64) {
	bank := &r.banks[0]
	g := bank[userCharSlot]
	bank[userCharSlot] = nil
	if g == nil {
		return
	}
	origin := r.userToPlotter(r.st.pen)
	adv, _ := r.labelSteps()
	if !r.inkless() {
		r.drawGlyph(slices.Values(g.strokes), origin)
	}
	r.st.pen = r.plotterToUser(origin.Add(adv))
}
