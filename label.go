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

	"seehuhn.de/go/geom/vec"
)

const (
	maxLabelBuffer = 1024
	maxStoredLabel = 512
)

// label control bytes
const (
	ctlBS = 0x08
	ctlHT = 0x09
	ctlLF = 0x0a
	ctlCR = 0x0d
	ctlSO = 0x0e
	ctlSI = 0x0f
)

// labelState tracks the label currently being received.
type labelState struct {
	buffering bool // collect the text before drawing it
	store     bool // BL: keep the text for PB
	text      []byte
	truncated bool

	origin vec.Vec2 // next character, plotter units
	cr     vec.Vec2 // carriage return point, plotter units
	crSet  bool

	stored []byte
}

// beginLabel starts an LB command.  Left justified labels are drawn as
// they arrive, all others are buffered until the terminator.
func (r *Renderer) beginLabel() {
	col, _, _ := labelOrigin(r.st.lo)
	r.lbl.text = r.lbl.text[:0]
	r.lbl.truncated = false
	r.lbl.store = false
	r.lbl.buffering = col != 0
	if !r.lbl.buffering {
		r.startText(r.labelOffset(nil))
	}
}

// beginStoredLabel starts a BL command.
func (r *Renderer) beginStoredLabel() {
	r.lbl.text = r.lbl.text[:0]
	r.lbl.truncated = false
	r.lbl.store = true
	r.lbl.buffering = true
}

// labelByte handles one byte of label text and reports whether the label
// is complete.
func (r *Renderer) labelByte(b byte) bool {
	if b == r.st.term {
		if r.st.termPrint && !r.lbl.buffering {
			r.drawChar(b)
		}
		r.finishLabel()
		return true
	}
	if !r.lbl.buffering {
		r.labelChar(b)
		return false
	}

	limit := maxLabelBuffer
	if r.lbl.store {
		limit = maxStoredLabel
	}
	if len(r.lbl.text) < limit {
		r.lbl.text = append(r.lbl.text, b)
	} else if !r.lbl.truncated {
		r.lbl.truncated = true
		r.log.Debug("hpgl: label truncated", "limit", limit)
	}
	return false
}

func (r *Renderer) finishLabel() {
	switch {
	case r.lbl.store:
		r.lbl.stored = append(r.lbl.stored[:0], r.lbl.text...)
	case r.lbl.buffering:
		r.printText(r.lbl.text)
	default:
		r.endText()
	}
	r.lbl.buffering = false
	r.lbl.store = false
}

// printText justifies and draws a complete label.
func (r *Renderer) printText(text []byte) {
	r.startText(r.labelOffset(text))
	for _, b := range text {
		r.labelChar(b)
	}
	r.endText()
}

// startText positions the first character at the pen, moved by off.
func (r *Renderer) startText(off vec.Vec2) {
	p := r.userToPlotter(r.st.pen).Add(off)
	r.lbl.origin = p
	r.lbl.cr = p
	r.lbl.crSet = true
}

// endText moves the pen to the position after the last character.
func (r *Renderer) endText() {
	r.st.pen = r.plotterToUser(r.lbl.origin)
}

// labelChar draws one character of a label or applies a control byte.
func (r *Renderer) labelChar(b byte) {
	adv, lf := r.labelSteps()
	if !r.st.transparentData {
		switch b {
		case ctlBS:
			r.lbl.origin = r.lbl.origin.Sub(adv)
			return
		case ctlHT:
			r.lbl.origin = r.lbl.origin.Sub(adv.Mul(0.5))
			return
		case ctlLF:
			r.lbl.origin = r.lbl.origin.Add(lf)
			r.lbl.cr = r.lbl.cr.Add(lf)
			return
		case ctlCR:
			r.lbl.origin = r.lbl.cr
			return
		case ctlSO:
			r.st.alternate = true
			return
		case ctlSI:
			r.st.alternate = false
			return
		}
		if b < ' ' {
			return
		}
	}
	r.drawChar(b)
}

// drawChar draws a glyph at the label origin and advances.
func (r *Renderer) drawChar(b byte) {
	adv, _ := r.labelSteps()
	if !r.inkless() {
		r.drawGlyph(r.glyph(b), r.lbl.origin)
	}
	r.lbl.origin = r.lbl.origin.Add(adv)
}

// labelOrigin decodes an LO value into column (0 left, 1 centre,
// 2 right), row (0 bottom, 1 centre, 2 top) and the offset flag.
func labelOrigin(lo int) (col, row int, offset bool) {
	offset = lo > 10
	pos := lo % 10
	if pos < 1 {
		pos = 1
	}
	return (pos - 1) / 3, (pos - 1) % 3, offset
}

// labelColumns returns the width of the longest line of text in
// character cells.
func labelColumns(text []byte, transparent bool) float64 {
	var longest, cur float64
	for _, b := range text {
		if !transparent {
			switch b {
			case ctlBS:
				cur = max(cur-1, 0)
				continue
			case ctlHT:
				cur = max(cur-0.5, 0)
				continue
			case ctlCR:
				cur = 0
				continue
			case ctlLF:
				continue
			}
			if b < ' ' {
				continue
			}
		}
		cur++
		longest = max(longest, cur)
	}
	return longest
}

// labelOffset returns the displacement, in plotter units, which places a
// label according to LO.
func (r *Renderer) labelOffset(text []byte) vec.Vec2 {
	col, row, offset := labelOrigin(r.st.lo)
	dir, up := r.textAxes()
	cw, ch := r.charSize()
	cw, ch = math.Abs(cw), math.Abs(ch)

	var width float64
	if n := labelColumns(text, r.st.transparentData); n > 0 {
		width = (n-1)*1.5*cw*(1+r.st.extraSpace) + cw
	}

	var dx, dy float64
	switch col {
	case 1:
		dx = -width / 2
	case 2:
		dx = -width
	}
	switch row {
	case 1:
		dy = -ch / 2
	case 2:
		dy = -ch
	}
	if offset {
		switch col {
		case 0:
			dx += cw / 2
		case 2:
			dx -= cw / 2
		}
		switch row {
		case 0:
			dy += ch / 2
		case 2:
			dy -= ch / 2
		}
	}
	if r.st.vertical {
		dir, up = up.Mul(-1), dir
	}
	return dir.Mul(dx).Add(up.Mul(dy))
}

// charPlot implements CP.  Without arguments, it performs a carriage
// return and line feed.
func (r *Renderer) charPlot(args []float64) {
	adv, lf := r.labelSteps()
	p := r.userToPlotter(r.st.pen)
	if len(args) == 0 {
		if r.lbl.crSet {
			p = r.lbl.cr
		}
		p = p.Add(lf)
		r.lbl.cr = p
		r.lbl.crSet = true
	} else {
		p = p.Add(adv.Mul(args[0])).Add(lf.Mul(-arg(args, 1)))
	}
	r.st.pen = r.plotterToUser(p)
}
