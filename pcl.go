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
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

const (
	pclUnitsPerInch   = 300
	plotterUnitsPerIn = 1016

	defaultRasterResolution = 75

	maxEscValueLen = 32
	maxRasterRow   = 64 * 1024
)

type escPhase uint8

const (
	escIdle escPhase = iota
	escIntro
	escDevice     // ESC . awaiting the function byte
	escDeviceArgs // ESC . parameters up to ':'
	escGroup      // awaiting the group byte of a parameterised sequence
	escValue
	escData // data bytes following a W parameter
)

type escResult uint8

const (
	escMore  escResult = iota // the sequence continues
	escDone                   // the sequence is complete
	escReuse                  // the sequence ended before this byte
)

// pclState holds the escape sequence parser and the raster graphics
// state.
type pclState struct {
	phase   escPhase
	intro   byte // '%', '&', '*', '(' or ')'
	group   byte
	num     []byte
	chained bool // the W parameter was lower case

	data []byte
	need int

	// PCL cursor in plotter units, measured from the top left corner of
	// the page
	cursor vec.Vec2

	resolution  float64
	compression int
	rasterOn    bool
	rasterLeft  float64
	rasterRows  int
	srcWidth    int // dots, 0 for unlimited
	srcHeight   int // rows, 0 for unlimited
	row         []byte
}

func (p *pclState) begin() {
	p.phase = escIntro
	p.num = p.num[:0]
}

// pclByte handles a byte while in PCL mode.  Text outside escape
// sequences is ignored.
func (r *Renderer) pclByte(b byte) {
	p := &r.pcl
	if p.phase == escIdle {
		if b == esc {
			p.begin()
		}
		return
	}
	if r.escByte(b) == escReuse {
		r.feed(b)
	}
}

// escByte advances the escape sequence parser.
func (r *Renderer) escByte(b byte) escResult {
	p := &r.pcl
	switch p.phase {
	case escIntro:
		switch {
		case b == '.':
			p.phase = escDevice
			return escMore
		case b == 'E':
			r.pclReset()
		case b >= '!' && b <= '/':
			p.intro = b
			p.group = 0
			p.num = p.num[:0]
			p.phase = escGroup
			return escMore
		default:
			r.log.Debug("pcl: unsupported escape", "byte", b)
		}
		p.phase = escIdle
		return escDone

	case escDevice:
		if strings.IndexByte("@HIMNT", b) >= 0 {
			p.phase = escDeviceArgs
			return escMore
		}
		p.phase = escIdle
		return escDone

	case escDeviceArgs:
		switch {
		case b == ':':
			p.phase = escIdle
			return escDone
		case b >= '0' && b <= '9' || b == ';' || b == ' ':
			return escMore
		}
		p.phase = escIdle
		return escReuse

	case escGroup:
		p.phase = escValue
		if b >= '`' && b <= '~' {
			p.group = b
			return escMore
		}
		return r.escValueByte(b)

	case escValue:
		return r.escValueByte(b)

	case escData:
		if len(p.data) < maxRasterRow {
			p.data = append(p.data, b)
		}
		p.need--
		if p.need > 0 {
			return escMore
		}
		return r.finishData()
	}
	p.phase = escIdle
	return escDone
}

func (r *Renderer) escValueByte(b byte) escResult {
	p := &r.pcl
	switch {
	case b >= '0' && b <= '9' || b == '.' || b == '+' || b == '-':
		if len(p.num) < maxEscValueLen {
			p.num = append(p.num, b)
		}
		return escMore
	case b >= '@' && b <= '^' || b >= '`' && b <= '~':
		chained := b >= '`'
		param := b &^ 0x20
		raw := string(p.num)
		p.num = p.num[:0]
		v, _ := strconv.ParseFloat(raw, 64)
		relative := raw != "" && (raw[0] == '+' || raw[0] == '-')

		if param == 'W' {
			p.chained = chained
			p.data = p.data[:0]
			p.need = max(int(v), 0)
			if p.need > 0 {
				p.phase = escData
				return escMore
			}
			return r.finishData()
		}

		r.pclExec(param, v, relative)
		if chained {
			return escMore
		}
		p.phase = escIdle
		return escDone
	}
	r.log.Debug("pcl: malformed escape sequence", "byte", b)
	p.phase = escIdle
	return escReuse
}

// finishData completes a W parameter once its data has arrived.
func (r *Renderer) finishData() escResult {
	p := &r.pcl
	if p.intro == '*' && p.group == 'b' {
		r.rasterRow(p.data)
	} else {
		r.log.Debug("pcl: skipped data", "bytes", len(p.data))
	}
	if p.chained {
		p.phase = escValue
		return escMore
	}
	p.phase = escIdle
	return escDone
}

// pclExec executes one parameter of an escape sequence.
func (r *Renderer) pclExec(param byte, v float64, relative bool) {
	p := &r.pcl
	key := string([]byte{p.intro, p.group, param})
	switch key {
	case "%\x00A":
		r.enterPCL(int(v) == 1)
	case "%\x00B":
		r.leavePCL(int(v) == 1)
	case "%\x00X":
		// universal exit language

	case "*tR":
		if v > 0 {
			p.resolution = v
		}
	case "*rA":
		r.startRaster(int(v) == 1)
	case "*rB", "*rC":
		p.rasterOn = false
	case "*rS":
		p.srcWidth = max(int(v), 0)
	case "*rT":
		p.srcHeight = max(int(v), 0)
	case "*rF":
		// presentation mode
	case "*bM":
		p.compression = int(v)
	case "*bY":
		p.cursor.Y += v * r.dotSize()
		p.rasterRows += int(v)

	case "*pX":
		x := v * plotterUnitsPerIn / pclUnitsPerInch
		if relative {
			x += p.cursor.X
		}
		p.cursor.X = x
	case "*pY":
		y := v * plotterUnitsPerIn / pclUnitsPerInch
		if relative {
			y += p.cursor.Y
		}
		p.cursor.Y = y

	default:
		r.log.Debug("pcl: unsupported parameter", "sequence", strings.Trim(key, "\x00"), "value", v)
	}
}

// pclReset implements ESC E.  The plotter state is initialised and raster
// graphics are reset; the interpreter mode is kept.
func (r *Renderer) pclReset() {
	p := &r.pcl
	p.cursor = vec.Vec2{}
	p.resolution = 0
	p.compression = 0
	p.rasterOn = false
	p.srcWidth, p.srcHeight = 0, 0
	r.initialize()
}

// enterPCL implements ESC%#A.
func (r *Renderer) enterPCL(fromPen bool) {
	if fromPen {
		g := r.plotterToPage(r.userToPlotter(r.st.pen))
		r.pcl.cursor = vec.Vec2{X: g.X, Y: r.opt.PageHeight - g.Y}
	}
	r.mode = ModePCL
}

// leavePCL implements ESC%#B.
func (r *Renderer) leavePCL(toCursor bool) {
	if toCursor {
		c := r.pcl.cursor
		g := vec.Vec2{X: c.X, Y: r.opt.PageHeight - c.Y}
		r.st.pen = r.plotterToUser(r.pageToPlotter(g))
	}
	r.mode = ModeHPGL
	r.lx.state = lexCmd1
}

// dotSize returns the size of a raster dot in plotter units.
func (r *Renderer) dotSize() float64 {
	res := r.pcl.resolution
	if res <= 0 {
		res = defaultRasterResolution
	}
	return plotterUnitsPerIn / res
}

func (r *Renderer) startRaster(atCursor bool) {
	p := &r.pcl
	p.rasterOn = true
	p.rasterRows = 0
	p.rasterLeft = 0
	if atCursor {
		p.rasterLeft = p.cursor.X
	}
}

// rasterRow decodes one row of raster data, paints its dots and moves the
// cursor down by one dot row.
func (r *Renderer) rasterRow(data []byte) {
	p := &r.pcl
	if !p.rasterOn {
		r.startRaster(true)
	}
	row, ok := decodeRasterRow(p.compression, data, p.row[:0])
	if !ok {
		r.log.Debug("pcl: unsupported raster compression", "mode", p.compression)
		return
	}
	p.row = row
	if p.srcHeight > 0 && p.rasterRows >= p.srcHeight {
		return
	}

	dot := r.dotSize()
	top := p.cursor.Y
	p.cursor.Y += dot
	p.rasterRows++
	if r.clipEmpty {
		return
	}

	c := r.penColor()
	if r.st.penIndex == 0 {
		c = r.st.pens[1].color
	}
	bits := len(row) * 8
	if p.srcWidth > 0 {
		bits = min(bits, p.srcWidth)
	}
	for i := 0; i < bits; {
		if !bitSet(row, i) {
			i++
			continue
		}
		j := i + 1
		for j < bits && bitSet(row, j) {
			j++
		}
		r.rasterRun(p.rasterLeft+float64(i)*dot, p.rasterLeft+float64(j)*dot, top, top+dot, c)
		i = j
	}
}

// rasterRun paints the page area [x0,x1)×[y0,y1), with y measured from
// the top of the page.
func (r *Renderer) rasterRun(x0, x1, y0, y1 float64, c color.RGBA) {
	h := r.opt.PageHeight
	a := r.pageToDevice(vec.Vec2{X: x0, Y: h - y0})
	b := r.pageToDevice(vec.Vec2{X: x1, Y: h - y1})

	left := math.Round(min(a.X, b.X))
	right := max(math.Round(max(a.X, b.X))-1, left)
	top := math.Round(min(a.Y, b.Y))
	bottom := max(math.Round(max(a.Y, b.Y))-1, top)

	left = max(left, r.clip.LLx)
	right = min(right, r.clip.URx)
	top = max(top, r.clip.LLy)
	bottom = min(bottom, r.clip.URy)
	if left > right || top > bottom {
		return
	}
	r.canvas.FillRect(int(left), int(top), int(right), int(bottom), c)
}

func bitSet(row []byte, i int) bool {
	return row[i/8]&(0x80>>(i%8)) != 0
}

// decodeRasterRow expands a row of raster data.  Supported compression
// modes are 0 (unencoded), 1 (run-length) and 2 (TIFF packbits).
func decodeRasterRow(mode int, data, dst []byte) ([]byte, bool) {
	switch mode {
	case 0:
		return append(dst, data...), true
	case 1:
		for i := 0; i+1 < len(data); i += 2 {
			for range int(data[i]) + 1 {
				dst = append(dst, data[i+1])
			}
			if len(dst) > maxRasterRow {
				return dst[:maxRasterRow], true
			}
		}
		return dst, true
	case 2:
		for i := 0; i < len(data); {
			n := int(int8(data[i]))
			i++
			switch {
			case n >= 0:
				k := min(n+1, len(data)-i)
				dst = append(dst, data[i:i+k]...)
				i += k
			case n == -128:
			case i < len(data):
				for range 1 - n {
					dst = append(dst, data[i])
				}
				i++
			}
			if len(dst) > maxRasterRow {
				return dst[:maxRasterRow], true
			}
		}
		return dst, true
	}
	return dst, false
}
