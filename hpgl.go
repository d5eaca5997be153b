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

// Package hpgl renders HP-GL/2 plotter command streams onto a Canvas.
//
// A Renderer is an incremental, single pass interpreter: bytes may be fed
// in arbitrary chunks, and all draw calls for a command are issued before
// the next byte is consumed.  Malformed input never stops the renderer;
// unknown or broken commands are skipped and the lexer resynchronises at
// the next command.  A PCL escape sub-mode handles embedded raster
// graphics as produced by many instruments.
package hpgl

//go:generate go run ./testcases/genref

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Mode is the top level interpreter mode.
type Mode int

const (
	ModeHPGL Mode = iota
	ModePCL
)

func (m Mode) String() string {
	if m == ModePCL {
		return "PCL"
	}
	return "HP-GL/2"
}

// Renderer interprets plotter commands and draws them onto a Canvas.
// A Renderer must not be used concurrently.
type Renderer struct {
	canvas  Canvas
	widther PenWidther
	filler  PathFiller
	opt     Options
	log     *slog.Logger

	// device geometry
	devW, devH float64
	kx, ky     float64 // pixels per plotter unit
	clip       rect.Rect
	clipEmpty  bool
	penPx      float64

	mode Mode
	lx   lexer
	gl   dispatch
	st   plotterState
	pat  patternStepper
	poly polygonBuffer
	pe   peDecoder
	lbl  labelState
	pcl  pclState

	banks [2]fontBank

	// patternPaused draws solid lines while text, symbols and ticks are drawn.
	patternPaused bool
}

// New creates a renderer drawing onto c.  If opt is nil, default options
// are used.  The renderer starts in the state established by IN.
func New(c Canvas, opt *Options) *Renderer {
	r := &Renderer{canvas: c, penPx: -1}
	if opt != nil {
		r.opt = *opt
	}
	r.opt.setDefaults()
	r.log = r.opt.Logger
	r.widther, _ = c.(PenWidther)
	r.filler, _ = c.(PathFiller)
	r.setDevice(r.opt.Width, r.opt.Height)
	r.initialize()
	return r
}

// WriteByte feeds a single byte to the interpreter.
func (r *Renderer) WriteByte(b byte) error {
	r.feed(b)
	return nil
}

// Write feeds p to the interpreter.  It never fails.
func (r *Renderer) Write(p []byte) (int, error) {
	for _, b := range p {
		r.feed(b)
	}
	return len(p), nil
}

// ReadFrom feeds all bytes from src to the interpreter.
func (r *Renderer) ReadFrom(src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := src.Read(buf)
		r.Write(buf[:n])
		total += int64(n)
		if errors.Is(err, io.EOF) {
			return total, nil
		} else if err != nil {
			return total, fmt.Errorf("hpgl: reading input: %w", err)
		}
	}
}

// Consume feeds bytes from src until io.EOF.
func (r *Renderer) Consume(src io.ByteReader) error {
	if br, ok := src.(*bufio.Reader); ok {
		_, err := r.ReadFrom(br)
		return err
	}
	for {
		b, err := src.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("hpgl: reading input: %w", err)
		}
		r.feed(b)
	}
}

// Pen returns the pen position in user units and the pen state.
func (r *Renderer) Pen() (x, y float64, down bool) {
	return r.st.pen.X, r.st.pen.Y, r.st.penDown
}

// Mode returns the current interpreter mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Reset puts the renderer into the state established by IN.
func (r *Renderer) Reset() {
	r.mode = ModeHPGL
	r.lx = lexer{}
	r.gl = dispatch{}
	r.pcl = pclState{}
	r.initialize()
}

// Resize changes the device extent.  The pen keeps its position in user
// units and the clip rectangle is recomputed.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 {
		return
	}
	if height <= 0 {
		height = max(1, int(float64(width)*r.opt.PageHeight/r.opt.PageWidth+0.5))
	}
	r.opt.Width, r.opt.Height = width, height
	r.setDevice(width, height)
	r.updateClip()
	r.selectLineType()
}

func (r *Renderer) feed(b byte) {
	if r.mode == ModePCL {
		r.pclByte(b)
		return
	}
	r.lexByte(b)
}

// initialize implements IN.
func (r *Renderer) initialize() {
	st := &r.st
	*st = plotterState{}
	st.p1, st.p2 = r.defaultP1P2()
	for i := range st.pens {
		st.pens[i] = penInfo{color: r.opt.Pens[i], width: defaultPenWidth}
	}
	st.colorRange = defaultColorRange
	st.penIndex = 1
	r.banks = [2]fontBank{}
	r.lbl = labelState{}
	r.defaults()
}

// defaults implements DF.
func (r *Renderer) defaults() {
	st := &r.st
	phys := r.userToPlotter(st.pen)

	st.relative = false
	st.scale = scaling{}
	st.window = clipWindow{}
	st.lineType = 1
	st.patternLen = defaultPatternLength
	st.patternAbs = false
	st.userPatterns = [9][]float64{}
	st.chordDeviation = false
	st.fillType = fillSolid
	st.fillSpacing = 0
	st.fillAngle = 0
	st.fillShade = 0
	st.fillUser = false
	st.transparent = true
	st.tickPos, st.tickNeg = defaultTick, defaultTick
	st.symbol = 0
	st.sizeMode = sizeRelative
	st.sizeW, st.sizeH = defaultCharWidth, defaultCharHeight
	st.extraSpace, st.extraLine = 0, 0
	st.slant = 0
	st.dirRun, st.dirRise, st.dirRelative = 1, 0, false
	st.vertical = false
	st.lo = 1
	st.term, st.termPrint = etx, false
	st.transparentData = false
	st.alternate = false

	r.poly.clear()
	r.updateScale()
	st.pen = r.plotterToUser(phys)
	r.updateClip()
	r.selectLineType()
}

func (r *Renderer) defaultP1P2() (vec.Vec2, vec.Vec2) {
	w, h := r.frame()
	return vec.Vec2{}, vec.Vec2{X: w, Y: h}
}
