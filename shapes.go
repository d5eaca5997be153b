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
	bezierSegments = 24
	minChordAngle  = 0.1 // degrees
	maxChordAngle  = 180
)

// plotTo moves the pen to p, drawing if the pen is down, and plots the
// symbol marker if symbol mode is active.
func (r *Renderer) plotTo(p vec.Vec2) {
	r.traceTo(p)
	if r.st.symbol != 0 {
		r.drawSymbol()
	}
}

// traceTo moves the pen to p.  In polygon mode the segment is recorded
// instead of drawn.
func (r *Renderer) traceTo(p vec.Vec2) {
	from := r.st.pen
	r.st.pen = p
	if r.poly.defining() {
		r.poly.add(r.toDevice(from), r.toDevice(p), r.st.penDown)
		return
	}
	if r.st.penDown {
		r.userLine(from, p)
	}
}

// chordAngle returns the tessellation step in degrees for an arc of the
// given radius.  If have is false, the default step is used.
func (r *Renderer) chordAngle(radius, arg float64, have bool) float64 {
	chord := float64(defaultChordAngle)
	if have {
		if r.st.chordDeviation {
			radius = math.Abs(radius)
			d := radius - math.Abs(arg)
			if d <= 0 {
				chord = maxChordAngle
			} else {
				chord = 2 * math.Atan(math.Sqrt(radius*radius-d*d)/d) * 180 / math.Pi
			}
		} else {
			chord = math.Abs(arg)
		}
	}
	return min(max(chord, minChordAngle), maxChordAngle)
}

// arcPoints tessellates an arc around c.  Angles are in degrees.  The
// result holds the start and end points and n-1 points in between, where
// n = ceil(|sweep|/chord).
func arcPoints(c vec.Vec2, radius, start, sweep, chord float64) []vec.Vec2 {
	n := max(1, int(math.Ceil(math.Abs(sweep)/chord-1e-9)))
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		phi := (start + sweep*float64(i)/float64(n)) * math.Pi / 180
		pts[i] = vec.Vec2{X: c.X + radius*math.Cos(phi), Y: c.Y + radius*math.Sin(phi)}
	}
	return pts
}

// circle implements CI.  The circle is drawn regardless of the pen state
// and the pen stays at the centre.
func (r *Renderer) circle(args []float64) {
	if len(args) == 0 {
		return
	}
	radius := args[0]
	chord := r.chordAngle(radius, arg(args, 1), len(args) > 1)
	c := r.st.pen
	pts := arcPoints(c, radius, 0, 360, chord)

	if r.poly.defining() {
		dev := make([]vec.Vec2, len(pts))
		for i, p := range pts {
			dev[i] = r.toDevice(p)
		}
		r.poly.addClosed(dev)
		return
	}
	for i := 1; i < len(pts); i++ {
		r.userLine(pts[i-1], pts[i])
	}
}

// arc implements AA and AR.
func (r *Renderer) arc(args []float64, relative bool) {
	if len(args) < 3 {
		return
	}
	c := vec.Vec2{X: args[0], Y: args[1]}
	if relative {
		c = c.Add(r.st.pen)
	}
	sweep := args[2]
	d := r.st.pen.Sub(c)
	radius := d.Length()
	if radius == 0 {
		return
	}
	chord := r.chordAngle(radius, arg(args, 3), len(args) > 3)
	start := math.Atan2(d.Y, d.X) * 180 / math.Pi
	pts := arcPoints(c, radius, start, sweep, chord)
	for _, p := range pts[1:] {
		r.traceTo(p)
	}
	if r.st.symbol != 0 {
		r.drawSymbol()
	}
}

// circumcenter returns the centre of the circle through a, b and c.
// If the points are collinear, ok is false.
func circumcenter(a, b, c vec.Vec2) (vec.Vec2, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	scale := b.Sub(a).Length() * c.Sub(a).Length()
	if math.Abs(d) <= 1e-9*scale || scale == 0 {
		return vec.Vec2{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return vec.Vec2{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}

// arc3 implements AT and RT: an arc from the pen through mid to end.
func (r *Renderer) arc3(mid, end vec.Vec2, chordArg float64, haveChord bool) {
	start := r.st.pen
	var c vec.Vec2
	sweep := 0.0
	if end == start && mid != start {
		c = start.Add(mid).Mul(0.5)
		sweep = 360
	} else {
		var ok bool
		c, ok = circumcenter(start, mid, end)
		if !ok {
			r.traceTo(mid)
			r.traceTo(end)
			return
		}
		a0 := angleOf(start.Sub(c))
		s1 := normDegrees(angleOf(mid.Sub(c)) - a0)
		s2 := normDegrees(angleOf(end.Sub(c)) - a0)
		sweep = s2
		if s1 > s2 {
			sweep = s2 - 360
		}
	}
	d := start.Sub(c)
	radius := d.Length()
	chord := r.chordAngle(radius, chordArg, haveChord)
	pts := arcPoints(c, radius, angleOf(d), sweep, chord)
	pts[len(pts)-1] = end
	for _, p := range pts[1:] {
		r.traceTo(p)
	}
}

func angleOf(v vec.Vec2) float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// normDegrees maps an angle into [0, 360).
func normDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// wedgePoints returns the closed outline of a wedge centred at the pen:
// both spokes and the arc, without repeated points.
func (r *Renderer) wedgePoints(args []float64) []vec.Vec2 {
	if len(args) < 3 {
		return nil
	}
	radius, start, sweep := args[0], args[1], args[2]
	if radius < 0 {
		radius = -radius
		start += 180
	}
	sweep = min(max(sweep, -360), 360)
	chord := r.chordAngle(radius, arg(args, 3), len(args) > 3)
	c := r.st.pen
	arc := arcPoints(c, radius, start, sweep, chord)

	pts := []vec.Vec2{c}
	for _, p := range arc {
		if p != pts[len(pts)-1] {
			pts = append(pts, p)
		}
	}
	return append(pts, c)
}

// edgeWedge implements EW.
func (r *Renderer) edgeWedge(args []float64) {
	pts := r.wedgePoints(args)
	for i := 1; i < len(pts); i++ {
		r.userLine(pts[i-1], pts[i])
	}
}

// fillWedge implements WG.
func (r *Renderer) fillWedge(args []float64) {
	pts := r.wedgePoints(args)
	if len(pts) < 3 {
		return
	}
	dev := make([]vec.Vec2, len(pts))
	for i, p := range pts {
		dev[i] = r.toDevice(p)
	}
	r.fillPolygons([][]vec.Vec2{dev}, false)
}

// rectCorner returns the opposite corner for EA, ER, RA and RR.
func (r *Renderer) rectCorner(args []float64, relative bool) (vec.Vec2, bool) {
	if len(args) < 2 {
		return vec.Vec2{}, false
	}
	p := vec.Vec2{X: args[0], Y: args[1]}
	if relative {
		p = p.Add(r.st.pen)
	}
	return p, true
}

// edgeRect implements EA and ER.
func (r *Renderer) edgeRect(args []float64, relative bool) {
	b, ok := r.rectCorner(args, relative)
	if !ok {
		return
	}
	a := r.st.pen
	corners := []vec.Vec2{a, {X: b.X, Y: a.Y}, b, {X: a.X, Y: b.Y}, a}
	for i := 1; i < len(corners); i++ {
		r.userLine(corners[i-1], corners[i])
	}
}

// fillRect implements RA and RR.
func (r *Renderer) fillRect(args []float64, relative bool) {
	b, ok := r.rectCorner(args, relative)
	if !ok || r.inkless() {
		return
	}
	d0, d1 := r.toDevice(r.st.pen), r.toDevice(b)
	if r.st.fillType == fillHatch || r.st.fillType == fillCrossHatch {
		poly := []vec.Vec2{d0, {X: d1.X, Y: d0.Y}, d1, {X: d0.X, Y: d1.Y}}
		r.fillPolygons([][]vec.Vec2{poly}, false)
		return
	}

	x0 := max(math.Round(min(d0.X, d1.X)), r.clip.LLx)
	x1 := min(math.Round(max(d0.X, d1.X)), r.clip.URx)
	y0 := max(math.Round(min(d0.Y, d1.Y)), r.clip.LLy)
	y1 := min(math.Round(max(d0.Y, d1.Y)), r.clip.URy)
	if x0 > x1 || y0 > y1 {
		return
	}
	r.canvas.FillRect(int(x0), int(y0), int(x1), int(y1), r.fillColor())
}

// bezier implements the pair hook of BZ and BR.  Every third pair
// completes a curve starting at the pen.
func (r *Renderer) bezier(x, y float64, relative bool) {
	p := vec.Vec2{X: x, Y: y}
	if relative {
		p = p.Add(r.st.pen)
	}
	gl := &r.gl
	gl.pts[gl.pair] = p
	gl.pair++
	if gl.pair < 3 {
		return
	}
	gl.pair = 0

	p0, p1, p2, p3 := r.st.pen, gl.pts[0], gl.pts[1], gl.pts[2]
	for i := 1; i <= bezierSegments; i++ {
		t := float64(i) / bezierSegments
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		if i == bezierSegments {
			q = p3
		}
		r.traceTo(q)
	}
}

// tick draws an XT or YT mark at the pen.
func (r *Renderer) tick(vertical bool) {
	st := &r.st
	pen := r.userToPlotter(st.pen)
	var dir vec.Vec2
	if vertical {
		dir = vec.Vec2{Y: st.p2.Y - st.p1.Y}
	} else {
		dir = vec.Vec2{X: st.p2.X - st.p1.X}
	}
	a := pen.Add(dir.Mul(st.tickPos / 100))
	b := pen.Sub(dir.Mul(st.tickNeg / 100))
	r.patternPaused = true
	r.deviceLine(r.plotterToDevice(a), r.plotterToDevice(b))
	r.patternPaused = false
}

// arg returns args[i], or zero if it is missing.
func arg(args []float64, i int) float64 {
	if i < len(args) {
		return args[i]
	}
	return 0
}
