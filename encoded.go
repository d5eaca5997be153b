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

// PE flag bytes.
const (
	peSelectPen  = ':'
	pePenUp      = '<'
	peAbsolute   = '='
	peFractional = '>'
	peSevenBit   = '7'
)

const maxFractionalBits = 26

type peExpect int

const (
	peExpectX peExpect = iota
	peExpectY
	peExpectPen
	peExpectFrac
)

type peEventKind int

const (
	peNone peEventKind = iota
	pePoint
	pePen
)

// peEvent is the result of a completed PE number.
type peEvent struct {
	kind     peEventKind
	p        vec.Vec2
	penUp    bool
	absolute bool
	pen      int
}

// peDecoder decodes the variable length numbers of an encoded polyline.
//
// Numbers are little endian sequences of base 64 (or base 32 in seven bit
// mode) digits.  Continuation digits are the bytes 63 to 126; the final
// digit of a number is marked by bit 7 (base 64) or by bit 5 of the digit
// value (base 32).  The lowest bit of the decoded value is the sign.
type peDecoder struct {
	value    int64
	mult     int64
	base     int64
	fracBits int
	expect   peExpect
	x        float64

	penUp    bool
	absolute bool
}

func (d *peDecoder) reset() {
	*d = peDecoder{mult: 1, base: 64}
}

// digit classifies an input byte.
func (d *peDecoder) digit(b byte) (v int64, last, ok bool) {
	if d.base == 32 {
		if b < 63 || b > 126 {
			return 0, false, false
		}
		v = int64(b - 63)
		return v & 0x1f, v&0x20 != 0, true
	}
	switch {
	case b >= 63 && b <= 126:
		return int64(b - 63), false, true
	case b >= 191 && b <= 254:
		return int64(b - 191), true, true
	}
	return 0, false, false
}

// feed processes one byte.  If the byte completes an event, it is
// returned.
func (d *peDecoder) feed(b byte) peEvent {
	if d.mult == 0 {
		d.reset()
	}
	switch b {
	case peSelectPen:
		d.expect = peExpectPen
		return peEvent{}
	case pePenUp:
		d.penUp = true
		return peEvent{}
	case peAbsolute:
		d.absolute = true
		return peEvent{}
	case peFractional:
		d.expect = peExpectFrac
		return peEvent{}
	case peSevenBit:
		d.base = 32
		return peEvent{}
	}

	v, last, ok := d.digit(b)
	if !ok {
		return peEvent{}
	}
	if d.mult < 1<<50 {
		d.value += v * d.mult
		d.mult *= d.base
	}
	if !last {
		return peEvent{}
	}
	n := d.value >> 1
	if d.value&1 != 0 {
		n = -n
	}
	d.value, d.mult = 0, 1

	switch d.expect {
	case peExpectPen:
		d.expect = peExpectX
		return peEvent{kind: pePen, pen: int(n)}
	case peExpectFrac:
		d.fracBits = int(min(max(n, 0), maxFractionalBits))
		d.expect = peExpectX
		return peEvent{}
	case peExpectX:
		d.x = d.scaled(n)
		d.expect = peExpectY
		return peEvent{}
	default:
		ev := peEvent{
			kind:     pePoint,
			p:        vec.Vec2{X: d.x, Y: d.scaled(n)},
			penUp:    d.penUp,
			absolute: d.absolute,
		}
		d.penUp, d.absolute = false, false
		d.expect = peExpectX
		return ev
	}
}

func (d *peDecoder) scaled(n int64) float64 {
	return math.Ldexp(float64(n), -d.fracBits)
}

// encodedByte handles a byte of a PE command.
func (r *Renderer) encodedByte(b byte) {
	ev := r.pe.feed(b)
	switch ev.kind {
	case pePen:
		r.selectPen(ev.pen)
	case pePoint:
		p := ev.p
		if !ev.absolute {
			p = p.Add(r.st.pen)
		}
		r.st.penDown = !ev.penUp
		r.plotTo(p)
	}
}
