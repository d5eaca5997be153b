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

// mnemonic is a two letter command name, first letter in the high byte.
type mnemonic uint16

func mnemonicOf(a, b byte) mnemonic {
	return mnemonic(toUpper(a))<<8 | mnemonic(toUpper(b))
}

func (m mnemonic) String() string {
	return string([]byte{byte(m >> 8), byte(m)})
}

// maxArgs is the number of collected arguments per command.  Further
// arguments are dropped.
const maxArgs = 32

// command describes how a mnemonic is executed.  All hooks are optional.
type command struct {
	// begin is called when the mnemonic has been read and returns the
	// lexer state for the command's parameters.
	begin func(*Renderer) lexState

	// num receives every number as it is parsed.
	num func(*Renderer, float64)

	// pair receives every complete coordinate pair.
	pair func(*Renderer, float64, float64)

	// end is called when the command is terminated.  It receives the
	// collected arguments, or for commands with a num or pair hook, an
	// unpaired trailing number.
	end func(*Renderer, []float64)
}

// dispatch is the state of the command being executed.
type dispatch struct {
	name    mnemonic
	cmd     *command
	args    [maxArgs]float64
	nargs   int
	dropped bool

	// continuation of multi-pair commands
	pair   int
	pts    [3]vec.Vec2
	x      float64
	haveX  bool
	penUp  bool
	code   int
	cursor [2]float64
}

var commands map[mnemonic]*command

func init() {
	nop := &command{}
	commands = map[mnemonic]*command{
		// vectors
		mnemonicOf('P', 'A'): {begin: beginAbsolute, pair: penPair},
		mnemonicOf('P', 'R'): {begin: beginRelative, pair: penPair},
		mnemonicOf('P', 'U'): {begin: beginPenUp, pair: penPair},
		mnemonicOf('P', 'D'): {begin: beginPenDown, pair: penPair},
		mnemonicOf('P', 'E'): {begin: beginEncoded, end: func(r *Renderer, _ []float64) { r.pe.reset() }},

		// arcs and circles
		mnemonicOf('A', 'A'): {end: func(r *Renderer, a []float64) { r.arc(a, false) }},
		mnemonicOf('A', 'R'): {end: func(r *Renderer, a []float64) { r.arc(a, true) }},
		mnemonicOf('A', 'T'): {pair: arc3Pair, end: arc3End},
		mnemonicOf('R', 'T'): {pair: arc3Pair, end: arc3End},
		mnemonicOf('C', 'I'): {end: (*Renderer).circle},
		mnemonicOf('W', 'G'): {end: (*Renderer).fillWedge},
		mnemonicOf('E', 'W'): {end: (*Renderer).edgeWedge},
		mnemonicOf('C', 'T'): {end: func(r *Renderer, a []float64) { r.st.chordDeviation = arg(a, 0) == 1 }},

		// rectangles and curves
		mnemonicOf('E', 'A'): {end: func(r *Renderer, a []float64) { r.edgeRect(a, false) }},
		mnemonicOf('E', 'R'): {end: func(r *Renderer, a []float64) { r.edgeRect(a, true) }},
		mnemonicOf('R', 'A'): {end: func(r *Renderer, a []float64) { r.fillRect(a, false) }},
		mnemonicOf('R', 'R'): {end: func(r *Renderer, a []float64) { r.fillRect(a, true) }},
		mnemonicOf('B', 'Z'): {pair: func(r *Renderer, x, y float64) { r.bezier(x, y, false) }},
		mnemonicOf('B', 'R'): {pair: func(r *Renderer, x, y float64) { r.bezier(x, y, true) }},

		// polygons
		mnemonicOf('P', 'M'): {end: (*Renderer).polygonMode},
		mnemonicOf('E', 'P'): {end: func(r *Renderer, _ []float64) { r.edgePolygon() }},
		mnemonicOf('F', 'P'): {end: (*Renderer).fillPolygon},
		mnemonicOf('F', 'T'): {end: (*Renderer).setFillType},

		// scaling and windows
		mnemonicOf('S', 'C'): {end: (*Renderer).setScale},
		mnemonicOf('I', 'P'): {end: (*Renderer).setP1P2},
		mnemonicOf('I', 'R'): {end: (*Renderer).setP1P2Relative},
		mnemonicOf('I', 'W'): {end: (*Renderer).setWindow},
		mnemonicOf('R', 'O'): {end: (*Renderer).setRotation},

		// pens
		mnemonicOf('S', 'P'): {end: func(r *Renderer, a []float64) { r.selectPen(int(arg(a, 0))) }},
		mnemonicOf('P', 'W'): {end: (*Renderer).setPenWidth},
		mnemonicOf('W', 'U'): {end: (*Renderer).setWidthUnits},
		mnemonicOf('P', 'T'): {end: (*Renderer).setPenThickness},
		mnemonicOf('P', 'C'): {end: (*Renderer).penColorCmd},
		mnemonicOf('C', 'R'): {end: (*Renderer).setColorRange},
		mnemonicOf('T', 'R'): {end: func(r *Renderer, a []float64) { r.st.transparent = len(a) == 0 || a[0] != 0 }},
		mnemonicOf('N', 'P'): nop,

		// line types
		mnemonicOf('L', 'T'): {end: (*Renderer).setLineType},
		mnemonicOf('U', 'L'): {end: (*Renderer).defineLineType},

		// characters
		mnemonicOf('L', 'B'): {begin: beginLabel},
		mnemonicOf('B', 'L'): {begin: beginStoredLabel},
		mnemonicOf('P', 'B'): {end: func(r *Renderer, _ []float64) { r.printText(r.lbl.stored) }},
		mnemonicOf('S', 'I'): {end: func(r *Renderer, a []float64) { r.setCharSize(a, sizeAbsolute) }},
		mnemonicOf('S', 'R'): {end: func(r *Renderer, a []float64) { r.setCharSize(a, sizeRelative) }},
		mnemonicOf('S', 'U'): {end: func(r *Renderer, a []float64) { r.setCharSize(a, sizeUser) }},
		mnemonicOf('D', 'I'): {end: func(r *Renderer, a []float64) { r.setDirection(a, false) }},
		mnemonicOf('D', 'R'): {end: func(r *Renderer, a []float64) { r.setDirection(a, true) }},
		mnemonicOf('D', 'V'): {end: func(r *Renderer, a []float64) { r.st.vertical = arg(a, 0) == 1 }},
		mnemonicOf('L', 'O'): {end: (*Renderer).setLabelOrigin},
		mnemonicOf('E', 'S'): {end: func(r *Renderer, a []float64) { r.st.extraSpace, r.st.extraLine = arg(a, 0), arg(a, 1) }},
		mnemonicOf('S', 'L'): {end: func(r *Renderer, a []float64) { r.st.slant = arg(a, 0) }},
		mnemonicOf('C', 'P'): {end: (*Renderer).charPlot},
		mnemonicOf('S', 'M'): {begin: func(*Renderer) lexState { return lexSymbol }},
		mnemonicOf('D', 'T'): {begin: func(*Renderer) lexState { return lexTerminator }, end: setTerminatorMode},
		mnemonicOf('T', 'D'): {end: func(r *Renderer, a []float64) { r.st.transparentData = arg(a, 0) == 1 }},
		mnemonicOf('S', 'S'): {end: func(r *Renderer, _ []float64) { r.st.alternate = false }},
		mnemonicOf('S', 'A'): {end: func(r *Renderer, _ []float64) { r.st.alternate = true }},
		mnemonicOf('C', 'S'): {end: func(r *Renderer, a []float64) { r.st.stdSet = int(arg(a, 0)) }},
		mnemonicOf('C', 'A'): {end: func(r *Renderer, a []float64) { r.st.altSet = int(arg(a, 0)) }},
		mnemonicOf('D', 'L'): {num: downloadNum, end: downloadEnd},
		mnemonicOf('U', 'C'): {num: userCharNum, end: userCharEnd},

		// ticks
		mnemonicOf('X', 'T'): {end: func(r *Renderer, _ []float64) { r.tick(true) }},
		mnemonicOf('Y', 'T'): {end: func(r *Renderer, _ []float64) { r.tick(false) }},
		mnemonicOf('T', 'L'): {end: (*Renderer).setTickLength},

		// session
		mnemonicOf('I', 'N'): {end: func(r *Renderer, _ []float64) { r.initialize() }},
		mnemonicOf('B', 'P'): {end: func(r *Renderer, _ []float64) { r.initialize() }},
		mnemonicOf('D', 'F'): {end: func(r *Renderer, _ []float64) { r.defaults() }},
		mnemonicOf('P', 'G'): {end: func(r *Renderer, _ []float64) { r.log.Debug("hpgl: page advance ignored") }},
		mnemonicOf('C', 'O'): {begin: func(*Renderer) lexState { return lexQuoted }},
	}
	for _, name := range []string{
		"VS", "OP", "OH", "OI", "OS", "OE", "OF", "OW", "OA", "OC", "OD",
		"OL", "OT", "IM", "EC", "AS", "AF", "AH", "FR", "MC", "MG",
	} {
		commands[mnemonicOf(name[0], name[1])] = nop
	}
}

// beginCommand looks up a mnemonic and returns the lexer state for its
// parameters.  Unknown commands have their parameters parsed and dropped.
func (r *Renderer) beginCommand(name mnemonic) lexState {
	r.gl = dispatch{name: name}
	cmd, ok := commands[name]
	if !ok {
		r.log.Debug("hpgl: unknown command", "mnemonic", name.String())
		return lexArgs
	}
	r.gl.cmd = cmd
	if cmd.begin != nil {
		return cmd.begin(r)
	}
	return lexArgs
}

// number passes a parsed number to the current command.
func (r *Renderer) number(v float64) {
	gl := &r.gl
	cmd := gl.cmd
	switch {
	case cmd == nil:
	case cmd.num != nil:
		cmd.num(r, v)
	case cmd.pair != nil:
		if !gl.haveX {
			gl.x, gl.haveX = v, true
			return
		}
		gl.haveX = false
		cmd.pair(r, gl.x, v)
	case gl.nargs < maxArgs:
		gl.args[gl.nargs] = v
		gl.nargs++
	case !gl.dropped:
		gl.dropped = true
		r.log.Debug("hpgl: too many arguments", "mnemonic", gl.name.String())
	}
}

// endCommand terminates the current command.
func (r *Renderer) endCommand() {
	gl := &r.gl
	cmd := gl.cmd
	gl.cmd = nil
	if cmd == nil || cmd.end == nil {
		return
	}
	args := gl.args[:gl.nargs]
	if cmd.num != nil || cmd.pair != nil {
		args = nil
		if gl.haveX {
			args = []float64{gl.x}
		}
	}
	cmd.end(r, args)
}

func beginAbsolute(r *Renderer) lexState {
	r.st.relative = false
	return lexArgs
}

func beginRelative(r *Renderer) lexState {
	r.st.relative = true
	return lexArgs
}

func beginPenUp(r *Renderer) lexState {
	r.st.penDown = false
	return lexArgs
}

func beginPenDown(r *Renderer) lexState {
	r.st.penDown = true
	return lexArgs
}

func beginEncoded(r *Renderer) lexState {
	r.pe.reset()
	return lexEncoded
}

func beginLabel(r *Renderer) lexState {
	r.beginLabel()
	return lexLabel
}

func beginStoredLabel(r *Renderer) lexState {
	r.beginStoredLabel()
	return lexLabel
}

func penPair(r *Renderer, x, y float64) {
	p := vec.Vec2{X: x, Y: y}
	if r.st.relative {
		p = p.Add(r.st.pen)
	}
	r.plotTo(p)
}

// arc3Pair collects the two points of AT and RT.  RT points are relative
// to the pen.
func arc3Pair(r *Renderer, x, y float64) {
	gl := &r.gl
	if gl.pair >= 2 {
		return
	}
	p := vec.Vec2{X: x, Y: y}
	if gl.name == mnemonicOf('R', 'T') {
		p = p.Add(r.st.pen)
	}
	gl.pts[gl.pair] = p
	gl.pair++
}

func arc3End(r *Renderer, rest []float64) {
	gl := &r.gl
	if gl.pair < 2 {
		return
	}
	r.arc3(gl.pts[0], gl.pts[1], arg(rest, 0), len(rest) > 0)
}

func setTerminatorMode(r *Renderer, a []float64) {
	r.st.termPrint = len(a) > 0 && a[0] == 0
}

func (r *Renderer) setFillType(a []float64) {
	st := &r.st
	if len(a) == 0 {
		st.fillType = fillSolid
		return
	}
	switch t := int(a[0]); t {
	case fillSolid, fillSolidAlt:
		st.fillType = t
	case fillHatch, fillCrossHatch:
		st.fillType = t
		if len(a) > 1 {
			st.fillSpacing = a[1]
			st.fillUser = st.scale.mode != scaleNone
		}
		if len(a) > 2 {
			st.fillAngle = a[2]
		}
	case fillShade:
		st.fillType = t
		st.fillShade = 100
		if len(a) > 1 {
			st.fillShade = a[1]
		}
	default:
		r.log.Debug("hpgl: unsupported fill type", "type", t)
	}
}

// setScale implements SC.
func (r *Renderer) setScale(a []float64) {
	r.keepPen(func() {
		s := &r.st.scale
		if len(a) < 4 {
			*s = scaling{}
			return
		}
		*s = scaling{xMin: a[0], xMax: a[1], yMin: a[2], yMax: a[3]}
		switch int(arg(a, 4)) {
		case 1:
			s.mode = scaleIsotropic
			s.left, s.bottom = 50, 50
			if len(a) >= 7 {
				s.left, s.bottom = a[5], a[6]
			}
		case 2:
			s.mode = scalePointFactor
		default:
			s.mode = scaleAnisotropic
		}
		r.updateScale()
	})
}

// setP1P2 implements IP.  With only P1 given, P2 follows at the same
// distance.
func (r *Renderer) setP1P2(a []float64) {
	r.keepPen(func() {
		st := &r.st
		switch {
		case len(a) >= 4:
			st.p1 = vec.Vec2{X: a[0], Y: a[1]}
			st.p2 = vec.Vec2{X: a[2], Y: a[3]}
		case len(a) >= 2:
			d := st.p2.Sub(st.p1)
			st.p1 = vec.Vec2{X: a[0], Y: a[1]}
			st.p2 = st.p1.Add(d)
		default:
			st.p1, st.p2 = r.defaultP1P2()
		}
		r.updateScale()
	})
}

// setP1P2Relative implements IR, with P1 and P2 in percent of the frame.
func (r *Renderer) setP1P2Relative(a []float64) {
	w, h := r.frame()
	abs := make([]float64, len(a))
	for i, v := range a {
		if i%2 == 0 {
			abs[i] = v / 100 * w
		} else {
			abs[i] = v / 100 * h
		}
	}
	r.setP1P2(abs)
}

// setWindow implements IW.  The corners are kept in plotter units.
func (r *Renderer) setWindow(a []float64) {
	w := &r.st.window
	if len(a) < 4 {
		*w = clipWindow{}
	} else {
		p := r.userToPlotter(vec.Vec2{X: a[0], Y: a[1]})
		q := r.userToPlotter(vec.Vec2{X: a[2], Y: a[3]})
		w.set = true
		w.ll = vec.Vec2{X: min(p.X, q.X), Y: min(p.Y, q.Y)}
		w.ur = vec.Vec2{X: max(p.X, q.X), Y: max(p.Y, q.Y)}
	}
	r.updateClip()
}

// setRotation implements RO.  P1 and P2 move to the corners of the
// rotated frame.
func (r *Renderer) setRotation(a []float64) {
	n := int(math.Round(arg(a, 0)/90)) & 3
	r.keepPen(func() {
		r.st.rotation = n
		r.st.p1, r.st.p2 = r.defaultP1P2()
		r.updateScale()
	})
	r.updateClip()
}

func (r *Renderer) defaultWidth() float64 {
	if r.st.widthRelative {
		return 0.1
	}
	return defaultPenWidth
}

// setPenWidth implements PW.
func (r *Renderer) setPenWidth(a []float64) {
	st := &r.st
	w := r.defaultWidth()
	if len(a) > 0 {
		w = a[0]
	}
	if len(a) > 1 {
		if n := int(a[1]); n >= 0 && n < len(st.pens) {
			st.pens[n].width = w
		}
		return
	}
	for i := range st.pens {
		st.pens[i].width = w
	}
}

// setWidthUnits implements WU.  All pen widths return to the default for
// the new unit.
func (r *Renderer) setWidthUnits(a []float64) {
	r.st.widthRelative = arg(a, 0) == 1
	w := r.defaultWidth()
	for i := range r.st.pens {
		r.st.pens[i].width = w
	}
}

// setPenThickness implements the HP-GL PT command.  The thickness in mm
// is applied to all pens.
func (r *Renderer) setPenThickness(a []float64) {
	t := defaultPenWidth
	if len(a) > 0 && a[0] > 0 {
		t = a[0]
	}
	r.st.widthRelative = false
	for i := range r.st.pens {
		r.st.pens[i].width = t
	}
}

// penColorCmd implements PC.
func (r *Renderer) penColorCmd(a []float64) {
	st := &r.st
	switch {
	case len(a) == 0:
		for i := range st.pens {
			st.pens[i].color = r.opt.Pens[i]
		}
	case len(a) < 4:
		if n := int(a[0]); n >= 0 && n < len(st.pens) {
			st.pens[n].color = r.opt.Pens[n]
		}
	default:
		if n := int(a[0]); n >= 0 && n < len(st.pens) {
			r.setPenColor(n, [3]float64{a[1], a[2], a[3]})
		}
	}
}

// setColorRange implements CR.
func (r *Renderer) setColorRange(a []float64) {
	if len(a) < 6 {
		r.st.colorRange = defaultColorRange
		return
	}
	copy(r.st.colorRange[:], a)
}

// setCharSize implements SI, SR and SU.
func (r *Renderer) setCharSize(a []float64, mode sizeMode) {
	st := &r.st
	if len(a) < 2 {
		st.sizeMode = sizeRelative
		st.sizeW, st.sizeH = defaultCharWidth, defaultCharHeight
		return
	}
	if a[0] == 0 || a[1] == 0 {
		r.log.Debug("hpgl: zero character size ignored")
		return
	}
	st.sizeMode = mode
	st.sizeW, st.sizeH = a[0], a[1]
}

// setDirection implements DI and DR.
func (r *Renderer) setDirection(a []float64, relative bool) {
	st := &r.st
	if len(a) < 2 {
		st.dirRun, st.dirRise, st.dirRelative = 1, 0, false
		return
	}
	if a[0] == 0 && a[1] == 0 {
		return
	}
	st.dirRun, st.dirRise, st.dirRelative = a[0], a[1], relative
}

// setLabelOrigin implements LO.
func (r *Renderer) setLabelOrigin(a []float64) {
	lo := int(arg(a, 0))
	if len(a) == 0 {
		lo = 1
	}
	if lo < 1 || lo > 19 || lo == 10 {
		r.log.Debug("hpgl: invalid label origin", "lo", lo)
		return
	}
	r.st.lo = lo
}

// setTickLength implements TL.
func (r *Renderer) setTickLength(a []float64) {
	if len(a) == 0 {
		r.st.tickPos, r.st.tickNeg = defaultTick, defaultTick
		return
	}
	r.st.tickPos, r.st.tickNeg = a[0], arg(a, 1)
}
