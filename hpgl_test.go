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
	"bufio"
	"bytes"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

type opKind byte

const (
	opPlot opKind = iota
	opLine
	opRect
)

type drawCall struct {
	op             opKind
	x0, y0, x1, y1 int
	c              color.RGBA
}

// recorder is a Canvas which remembers all calls.
type recorder struct {
	calls []drawCall
	clips []image.Rectangle
}

func (rc *recorder) Plot(x, y int, c color.RGBA) {
	rc.calls = append(rc.calls, drawCall{opPlot, x, y, x, y, c})
}

func (rc *recorder) Line(x0, y0, x1, y1 int, c color.RGBA) {
	rc.calls = append(rc.calls, drawCall{opLine, x0, y0, x1, y1, c})
}

func (rc *recorder) FillRect(x0, y0, x1, y1 int, c color.RGBA) {
	rc.calls = append(rc.calls, drawCall{opRect, x0, y0, x1, y1, c})
}

func (rc *recorder) SetClip(r image.Rectangle) {
	rc.clips = append(rc.clips, r)
}

func (rc *recorder) only(op opKind) []drawCall {
	var res []drawCall
	for _, c := range rc.calls {
		if c.op == op {
			res = append(res, c)
		}
	}
	return res
}

func (rc *recorder) reset() {
	rc.calls = rc.calls[:0]
}

// testOptions maps one plotter unit to one pixel.  Device x equals plotter
// x and device y equals 10000 minus plotter y.
func testOptions() *Options {
	return &Options{
		Width:      10001,
		Height:     10001,
		PageWidth:  10000,
		PageHeight: 10000,
	}
}

func newTestRenderer() (*Renderer, *recorder) {
	rc := &recorder{}
	return New(rc, testOptions()), rc
}

func feed(r *Renderer, s string) {
	r.Write([]byte(s))
}

func checkPen(t *testing.T, r *Renderer, x, y float64, down bool) {
	t.Helper()
	px, py, pd := r.Pen()
	if math.Abs(px-x) > 1e-9 || math.Abs(py-y) > 1e-9 || pd != down {
		t.Errorf("pen at (%g, %g) down=%t, want (%g, %g) down=%t", px, py, pd, x, y, down)
	}
}

func TestSingleLine(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "IN;PU0,0;PD100,100;PU;")

	want := []drawCall{{opLine, 0, 10000, 100, 9900, DefaultPens[1]}}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
	checkPen(t, r, 100, 100, false)
}

func TestDashedLine(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "SP3;LT2;PA0,0;PD;PA1000,0;")

	if r.st.penIndex != 3 {
		t.Errorf("pen %d selected, want 3", r.st.penIndex)
	}
	// pattern length 4% of the device diagonal, 50% paint
	want := []drawCall{
		{opLine, 0, 10000, 282, 10000, DefaultPens[3]},
		{opLine, 566, 10000, 848, 10000, DefaultPens[3]},
	}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
}

func TestDotLineType(t *testing.T) {
	cases := []struct {
		setup, draw string
		want        []drawCall
	}{
		{
			setup: "LT0;PA100,100;PD;",
			draw:  "PA200,100;PA200,200;",
			want: []drawCall{
				{opLine, 200, 9900, 200, 9900, DefaultPens[1]},
				{opLine, 200, 9800, 200, 9800, DefaultPens[1]},
			},
		},
		{
			// the segment crosses the window, the end point does not
			setup: "IW0,0,1000,1000;LT0;PA500,500;PD;",
			draw:  "PA5000,500;",
		},
		{
			setup: "IW0,0,1000,1000;LT0;PA5000,500;PD;",
			draw:  "PA500,500;",
			want:  []drawCall{{opLine, 500, 9500, 500, 9500, DefaultPens[1]}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.setup+tc.draw, func(t *testing.T) {
			r, rc := newTestRenderer()
			feed(r, tc.setup)
			rc.reset()
			feed(r, tc.draw)
			if !slices.Equal(rc.calls, tc.want) {
				t.Errorf("got %v, want %v", rc.calls, tc.want)
			}
		})
	}
}

// coverage sums the alpha values of the plotted pixels, keyed by column
// or by row.
func coverage(calls []drawCall, byRow bool) map[int]int {
	res := make(map[int]int)
	for _, c := range calls {
		k := c.x0
		if byRow {
			k = c.y0
		}
		res[k] += int(c.c.A)
	}
	return res
}

func TestWuLine(t *testing.T) {
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		steep          bool
	}{
		{"shallow", 0, 0, 10, 3, false},
		{"shallow backwards", 10, 0, 0, 3, false},
		{"shallow upwards", 0, 3, 10, 0, false},
		{"steep", 0, 0, 3, 10, true},
		{"steep backwards", 3, 0, 0, 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, rc := newTestRenderer()
			r.wuLine(tc.x0+100, tc.y0+100, tc.x1+100, tc.y1+100, DefaultPens[1])
			if n := len(rc.only(opLine)); n != 0 {
				t.Errorf("%d Line calls, want 0", n)
			}

			lo, hi := tc.x0, tc.x1
			if tc.steep {
				lo, hi = tc.y0, tc.y1
			}
			lo, hi = min(lo, hi)+100, max(lo, hi)+100
			cov := coverage(rc.calls, tc.steep)
			for k := lo; k <= hi; k++ {
				if cov[k] != 255 {
					t.Errorf("coverage %d at %d, want 255", cov[k], k)
				}
			}
			if len(cov) != hi-lo+1 {
				t.Errorf("pixels in %d columns or rows, want %d", len(cov), hi-lo+1)
			}

			// the coverage centre follows the ideal line
			dx, dy := float64(tc.x1-tc.x0), float64(tc.y1-tc.y0)
			sum := make(map[int]float64)
			for _, c := range rc.calls {
				if tc.steep {
					sum[c.y0] += float64(c.x0) * float64(c.c.A)
				} else {
					sum[c.x0] += float64(c.y0) * float64(c.c.A)
				}
			}
			for k, v := range sum {
				centre := v / 255
				var ideal float64
				if tc.steep {
					ideal = float64(tc.x0+100) + dx*float64(k-tc.y0-100)/dy
				} else {
					ideal = float64(tc.y0+100) + dy*float64(k-tc.x0-100)/dx
				}
				if math.Abs(centre-ideal) > 1 {
					t.Errorf("centre %.2f at %d, want %.2f", centre, k, ideal)
				}
			}
		})
	}
}

func TestWuLineLong(t *testing.T) {
	// the accumulator step is zero for lines this steep
	r, rc := newTestRenderer()
	r.wuLine(0, -60000, 1, 10000, DefaultPens[1])
	plots := rc.only(opPlot)
	// one pixel for each row inside the page
	if len(plots) < 10000 {
		t.Fatalf("%d pixels plotted, want at least 10000", len(plots))
	}
	for _, c := range plots {
		if c.x0 != 0 && c.x0 != 1 {
			t.Fatalf("pixel at x=%d, want 0 or 1", c.x0)
		}
	}
}

func TestWuLineClipped(t *testing.T) {
	rc := &recorder{}
	opt := testOptions()
	opt.Antialias = true
	r := New(rc, opt)
	feed(r, "IW0,0,1000,1000;PW0.02;PA500,500;PD;PA2000,800;")

	if n := len(rc.only(opLine)); n != 0 {
		t.Errorf("%d Line calls, want anti-aliased pixels only", n)
	}
	plots := rc.only(opPlot)
	if len(plots) == 0 {
		t.Fatal("nothing plotted")
	}
	atEdge := false
	for _, c := range plots {
		if c.x0 < 500 || c.x0 > 1000 || c.y0 < 9000 || c.y0 > 10000 {
			t.Errorf("pixel (%d, %d) outside the window", c.x0, c.y0)
		}
		if c.x0 == 1000 && c.c.A == 255 {
			atEdge = true
		}
	}
	if !atEdge {
		t.Error("line does not reach the window edge")
	}
}

func TestOpaqueGaps(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "TR0;LT2;PA0,0;PD;PA1000,0;")

	var bg int
	for _, c := range rc.only(opLine) {
		if c.c == r.opt.Background {
			bg++
		}
	}
	if bg != 2 {
		t.Errorf("%d background runs, want 2", bg)
	}
}

func TestResync(t *testing.T) {
	cases := []struct {
		in   string
		x, y float64
	}{
		{"XY1,2;PA10,10;", 10, 10},
		{"PA1.2.3,5;PA20,20;", 20, 20},
		{"PA5,5;#$%PA30,30;", 30, 30},
		{"pa7,8;", 7, 8},
		{"PA1,1PA2-3;", 2, -3},
		{"/* PA5,5; /* nested */ PD */PA30,30; // PD\nPA40,40;", 40, 40},
		{`CO"PD;PA9,9";PA50,50;`, 50, 50},
		{"PA0,0;\x1b.(\x1b.I81;;17:PA60,60;", 60, 60},
		{"PA0,0;\x1b.@PA61,62;", 61, 62},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			r, rc := newTestRenderer()
			feed(r, tc.in)
			checkPen(t, r, tc.x, tc.y, false)
			if len(rc.calls) > 0 {
				t.Errorf("unexpected drawing: %v", rc.calls)
			}
		})
	}
}

func TestPolygonFill(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PM0;PA0,0;PD;PA10,0;PA10,10;PM2;")
	if len(rc.calls) > 0 {
		t.Fatalf("drawing while defining a polygon: %v", rc.calls)
	}

	polys := r.poly.subPolygons()
	if len(polys) != 1 {
		t.Fatalf("%d sub-polygons, want 1", len(polys))
	}
	edges := fillEdges(polys)
	want := []polyEdge{
		{vec.Vec2{X: 0, Y: 10000}, vec.Vec2{X: 10, Y: 10000}},
		{vec.Vec2{X: 10, Y: 10000}, vec.Vec2{X: 10, Y: 9990}},
		{vec.Vec2{X: 10, Y: 9990}, vec.Vec2{X: 0, Y: 10000}},
	}
	if !slices.Equal(edges, want) {
		t.Errorf("edges %v, want %v", edges, want)
	}

	feed(r, "FP;")
	spans := rc.only(opLine)
	if len(spans) != 10 {
		t.Errorf("%d spans, want 10", len(spans))
	}
	for _, s := range spans {
		if s.y0 != s.y1 || s.y0 < 9990 || s.y0 > 9999 || s.x0 < 0 || s.x1 > 10 {
			t.Errorf("bad span %v", s)
		}
	}
}

func TestPolygonPenUp(t *testing.T) {
	const square = "PM0;PA0,0;PD;PA100,0;PU;PA100,100;PD;PA0,100;PM2;"

	r, rc := newTestRenderer()
	feed(r, square)
	polys := r.poly.subPolygons()
	if len(polys) != 1 {
		t.Fatalf("%d sub-polygons, want 1", len(polys))
	}
	if p := polys[0]; len(p) != 5 || p[0] != p[4] {
		t.Errorf("sub-polygon %v, want 4 corners plus closing vertex", p)
	}

	feed(r, "FP;")
	spans := rc.only(opLine)
	if len(spans) != 100 {
		t.Errorf("%d spans, want 100", len(spans))
	}
	for _, s := range spans {
		if s.y0 != s.y1 || s.x0 > 1 || s.x1 < 99 {
			t.Errorf("span %v does not cover the square", s)
		}
	}

	r, rc = newTestRenderer()
	feed(r, square+"EP;")
	if n := len(rc.only(opLine)); n != 3 {
		t.Errorf("EP drew %d edges, want 3", n)
	}

	r, _ = newTestRenderer()
	feed(r, "PM0;PA0,0;PD100,0,100,100;PU200,200;PD300,200,300,300;PM2;")
	if n := len(r.poly.subPolygons()); n != 1 {
		t.Errorf("%d sub-polygons after pen-up move, want 1", n)
	}
	if n := len(r.poly.drawnEdges()); n != 5 {
		t.Errorf("%d drawn edges, want 5", n)
	}
}

func TestFillRule(t *testing.T) {
	const nested = "PM0;PA0,0;PD;PA100,0,100,100,0,100;PM1;" +
		"PU25,25;PD75,25,75,75,25,75;PM2;"
	cases := []struct {
		fill  string
		spans int
	}{
		{"FP;", 150},
		{"FP0;", 150},
		{"FP1;", 100},
	}
	for _, tc := range cases {
		t.Run(tc.fill, func(t *testing.T) {
			r, rc := newTestRenderer()
			feed(r, nested)
			if n := len(r.poly.subPolygons()); n != 2 {
				t.Fatalf("%d sub-polygons, want 2", n)
			}
			feed(r, tc.fill)
			if n := len(rc.only(opLine)); n != tc.spans {
				t.Errorf("%d spans, want %d", n, tc.spans)
			}
		})
	}
}

func TestEdgePolygon(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA100,100;PM0;PD200,100,200,200;PM2;EP;")
	if n := len(rc.only(opLine)); n != 3 {
		t.Errorf("%d edges drawn, want 3", n)
	}
}

func TestPenRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	r, _ := newTestRenderer()
	for range 100 {
		x := math.Round(rng.Float64()*10000*100) / 100
		y := math.Round(rng.Float64()*10000*100) / 100
		feed(r, "PA"+fmtNum(x)+","+fmtNum(y)+";")
		checkPen(t, r, x, y, false)
	}

	feed(r, "PA0,0;")
	for range 1000 {
		feed(r, "PR0.1,0.3;")
	}
	px, py, _ := r.Pen()
	if math.Abs(px-100) > 1e-6 || math.Abs(py-300) > 1e-6 {
		t.Errorf("pen at (%g, %g) after relative moves", px, py)
	}
	feed(r, "PA0,0;")
	checkPen(t, r, 0, 0, false)
}

func fmtNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func rectOf(x0, y0, x1, y1 float64) rect.Rect {
	return rect.Rect{LLx: x0, LLy: y0, URx: x1, URy: y1}
}

func TestScaleRoundTrip(t *testing.T) {
	setups := []string{
		"SC0,100,0,100;",
		"SC-50,50,-20,20,1;",
		"SC0,1000,0,100,1,0,100;",
		"SC10,2,20,3,2;",
		"RO90;SC0,100,0,100;",
		"IP1000,1000,3000,2000;SC0,10,10,0;",
	}
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 12.5, Y: -7}, {X: 100, Y: 100}}
	for _, setup := range setups {
		t.Run(setup, func(t *testing.T) {
			r, _ := newTestRenderer()
			feed(r, setup)
			if r.st.scale.mode == scaleNone {
				t.Fatal("scaling not active")
			}
			for _, u := range pts {
				v := r.plotterToUser(r.userToPlotter(u))
				if v.Sub(u).Length() > 1e-9 {
					t.Errorf("%v maps back to %v", u, v)
				}
				w := r.fromDevice(r.toDevice(u))
				if w.Sub(u).Length() > 1e-6 {
					t.Errorf("%v maps back to %v via the device", u, w)
				}
			}
		})
	}
}

func TestIsotropicScale(t *testing.T) {
	r, _ := newTestRenderer()
	feed(r, "IP0,0,2000,1000;SC0,10,0,10,1;")
	s := r.st.scale
	if s.kx != 100 || s.ky != 100 {
		t.Errorf("scale factors %g, %g, want 100", s.kx, s.ky)
	}
	// centred horizontally
	if p := r.userToPlotter(vec.Vec2{}); p != (vec.Vec2{X: 500, Y: 0}) {
		t.Errorf("origin at %v", p)
	}
}

func TestKeepPen(t *testing.T) {
	for _, cmd := range []string{"SC0,100,0,100;", "IP2000,2000,4000,4000;", "RO90;", "RO180;", "IR10,10,90,90;"} {
		t.Run(cmd, func(t *testing.T) {
			r, _ := newTestRenderer()
			feed(r, "PA1000,2000;")
			before := r.toDevice(r.st.pen)
			feed(r, cmd)
			after := r.toDevice(r.st.pen)
			if after.Sub(before).Length() > 1e-6 {
				t.Errorf("pen moved from %v to %v", before, after)
			}
		})
	}
}

func TestRotation(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "RO90;PA0,0;PD100,0;")
	// the plotter x axis points up the page
	want := []drawCall{{opLine, 10000, 10000, 10000, 9900, DefaultPens[1]}}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
}

func TestClipLine(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 10000 {
		x0, x1 := rng.Float64()*200-50, rng.Float64()*200-50
		y0, y1 := rng.Float64()*200-50, rng.Float64()*200-50
		c := rectOf(min(x0, x1), min(y0, y1), max(x0, x1), max(y0, y1))

		a := vec.Vec2{X: rng.Float64()*400 - 150, Y: rng.Float64()*400 - 150}
		b := vec.Vec2{X: rng.Float64()*400 - 150, Y: rng.Float64()*400 - 150}
		p, q, ok := clipLine(a, b, c)
		if !ok {
			continue
		}
		for _, v := range []vec.Vec2{p, q} {
			if v.X < c.LLx-1e-9 || v.X > c.URx+1e-9 || v.Y < c.LLy-1e-9 || v.Y > c.URy+1e-9 {
				t.Fatalf("clip(%v, %v, %v) = %v outside", a, b, c, v)
			}
		}
	}
}

func TestClipLineTrivial(t *testing.T) {
	c := rectOf(0, 0, 100, 100)
	a, b := vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 90, Y: 80}
	p, q, ok := clipLine(a, b, c)
	if !ok || p != a || q != b {
		t.Errorf("inside segment changed to %v, %v, %t", p, q, ok)
	}
	for _, seg := range [][2]vec.Vec2{
		{{X: -10, Y: 0}, {X: -5, Y: 100}},
		{{X: 0, Y: 101}, {X: 100, Y: 200}},
		{{X: -10, Y: 90}, {X: 10, Y: 120}},
	} {
		if _, _, ok := clipLine(seg[0], seg[1], c); ok {
			t.Errorf("outside segment %v accepted", seg)
		}
	}
}

func TestPatternStepper(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for range 100 {
		runs := make([]int, 2*(1+rng.IntN(4)))
		for i := range runs {
			runs[i] = 1 + rng.IntN(20)
		}
		var s patternStepper
		s.reset(runs)

		length := rng.IntN(1000)
		painted := 0
		for range length {
			if s.step() {
				painted++
			}
			if s.pos < 0 || s.pos >= s.total {
				t.Fatalf("position %d outside [0, %d)", s.pos, s.total)
			}
		}
		if s.pos != length%s.total {
			t.Errorf("position %d after %d steps, want %d", s.pos, length, length%s.total)
		}

		want := 0
		for i := range length {
			k := i % s.total
			for j, n := range runs {
				if k < n {
					if j%2 == 0 {
						want++
					}
					break
				}
				k -= n
			}
		}
		if painted != want {
			t.Errorf("%d pixels painted, want %d", painted, want)
		}
	}
}

func TestUserLineType(t *testing.T) {
	r, _ := newTestRenderer()
	feed(r, "UL2,1,3;LT2,10,1;")
	if got := r.st.userPatterns[2]; !slices.Equal(got, []float64{25, 75}) {
		t.Errorf("user pattern %v", got)
	}
	// 10mm at 40 units per mm and one pixel per unit
	if !slices.Equal(r.pat.runs, []int{100, 300}) {
		t.Errorf("runs %v", r.pat.runs)
	}
}

func TestCircle(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA5000,4000;CI100,10;")
	if n := len(rc.only(opLine)); n != 36 {
		t.Errorf("%d segments, want 36", n)
	}
	checkPen(t, r, 5000, 4000, false)
}

func TestChordAngle(t *testing.T) {
	cases := []struct {
		deviation bool
		radius    float64
		arg       float64
		have      bool
		want      float64
	}{
		{false, 100, 0, false, defaultChordAngle},
		{false, 100, 10, true, 10},
		{false, 100, -7, true, 7},
		{false, 100, 0.01, true, minChordAngle},
		{false, 100, 400, true, maxChordAngle},
		{true, 100, 100 * (1 - math.Sqrt2/2), true, 90},
		{true, -100, 100 * (1 - math.Sqrt2/2), true, 90},
		{true, 100, 50, true, 120},
		{true, 100, 100, true, maxChordAngle},
		{true, 100, 250, true, maxChordAngle},
		{true, 100, 0, true, minChordAngle},
	}
	for _, tc := range cases {
		r, _ := newTestRenderer()
		r.st.chordDeviation = tc.deviation
		got := r.chordAngle(tc.radius, tc.arg, tc.have)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("CT%t r=%g arg=%g: %g, want %g", tc.deviation, tc.radius, tc.arg, got, tc.want)
		}
	}
}

func TestChordMode(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"CI100,90;", 4},
		{"CT1;CI100,30;", 4},
		{"CT1;CI100,100;", 2},
		{"CT1;CT0;CI100,45;", 8},
		{"CT1;IN;PA5000,5000;CI100,45;", 8},
	}
	for _, tc := range cases {
		r, rc := newTestRenderer()
		feed(r, "PA5000,5000;"+tc.in)
		if n := len(rc.only(opLine)); n != tc.want {
			t.Errorf("%q: %d segments, want %d", tc.in, n, tc.want)
		}
	}
}

func TestWedge(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA5000,4000;EW100,0,0;")
	lines := rc.only(opLine)
	if len(lines) != 2 {
		t.Fatalf("%d segments, want 2", len(lines))
	}
	if lines[0].x0 != 5000 || lines[0].x1 != 5100 || lines[1].x1 != 5000 {
		t.Errorf("spokes %v", lines)
	}

	rc.reset()
	feed(r, "EW100,0,90,10;")
	if n := len(rc.only(opLine)); n != 11 {
		t.Errorf("%d segments for a quarter wedge, want 11", n)
	}
}

func TestArcs(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA5100,4000;PD;AA5000,4000,90,10;")
	if n := len(rc.only(opLine)); n != 9 {
		t.Errorf("%d segments, want 9", n)
	}
	px, py, _ := r.Pen()
	if math.Abs(px-5000) > 1e-9 || math.Abs(py-4100) > 1e-9 {
		t.Errorf("pen at (%g, %g)", px, py)
	}

	rc.reset()
	feed(r, "PU0,0;PD;AT100,100,200,0;")
	checkPen(t, r, 200, 0, true)
	if n := len(rc.only(opLine)); n < 10 {
		t.Errorf("three point arc drawn with %d segments", n)
	}

	rc.reset()
	feed(r, "PU0,0;PD;RT100,0,200,0;")
	if n := len(rc.only(opLine)); n != 2 {
		t.Errorf("collinear arc drawn with %d segments, want 2", n)
	}
	checkPen(t, r, 200, 0, true)
}

func TestCircumcenter(t *testing.T) {
	c, ok := circumcenter(vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 0, Y: 1}, vec.Vec2{X: -1, Y: 0})
	if !ok || c.Length() > 1e-12 {
		t.Errorf("centre %v, %t", c, ok)
	}
	if _, ok := circumcenter(vec.Vec2{}, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 2, Y: 2}); ok {
		t.Error("collinear points accepted")
	}
}

func TestBezier(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA0,0;PD;BZ0,100,100,100,100,0,200,0,200,100,300,100;")
	if n := len(rc.only(opLine)); n != 2*bezierSegments {
		t.Errorf("%d segments, want %d", n, 2*bezierSegments)
	}
	checkPen(t, r, 300, 100, true)

	feed(r, "BR0,10,10,10,10,0;")
	checkPen(t, r, 310, 100, true)
}

func TestRectangles(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA100,100;RA200,300;")
	want := []drawCall{{opRect, 100, 9700, 200, 9900, DefaultPens[1]}}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}

	rc.reset()
	feed(r, "ER50,50;")
	if n := len(rc.only(opLine)); n != 4 {
		t.Errorf("%d edges, want 4", n)
	}
}

func TestShadedFill(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "SP2;FT10,50;PA0,0;RR10,10;")
	rects := rc.only(opRect)
	if len(rects) != 1 {
		t.Fatalf("%d rectangles", len(rects))
	}
	if got, want := rects[0].c, (color.RGBA{255, 128, 128, 255}); got != want {
		t.Errorf("color %v, want %v", got, want)
	}
}

func TestHatchFill(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "FT3,100,0;PA0,0;RA1000,1000;")
	lines := rc.only(opLine)
	if len(lines) != 10 && len(lines) != 11 {
		t.Errorf("%d hatch lines, want 10 or 11", len(lines))
	}
	for _, l := range lines {
		if l.y0 != l.y1 {
			t.Errorf("hatch line %v is not horizontal", l)
		}
	}
}

func TestEncodedPolyline(t *testing.T) {
	r, rc := newTestRenderer()
	in := "PE<=" + peNum(100, 64) + peNum(200, 64) + peNum(50, 64) + peNum(-30, 64) + ";"
	feed(r, in)
	want := []drawCall{{opLine, 100, 9800, 150, 9830, DefaultPens[1]}}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
	checkPen(t, r, 150, 170, true)

	feed(r, "PE:"+peNum(3, 64)+";")
	if r.st.penIndex != 3 {
		t.Errorf("pen %d, want 3", r.st.penIndex)
	}

	feed(r, "PE<>"+peNum(2, 64)+"="+peNum(10, 64)+peNum(6, 64)+";")
	checkPen(t, r, 2.5, 1.5, false)

	feed(r, "PE7<="+peNum(1000, 32)+peNum(-2000, 32)+";")
	checkPen(t, r, 1000, -2000, false)

	// the decoder state does not leak into the next PE command
	feed(r, "PE<="+peNum(7, 64)+";PE<="+peNum(1, 64)+peNum(2, 64)+";")
	checkPen(t, r, 1, 2, false)
}

// peNum encodes n as a PE number.
func peNum(n int64, base int64) string {
	v := 2 * n
	if n < 0 {
		v = -2*n + 1
	}
	var out []byte
	for {
		d := v % base
		v /= base
		if v == 0 {
			if base == 64 {
				out = append(out, byte(191+d))
			} else {
				out = append(out, byte(95+d))
			}
			return string(out)
		}
		out = append(out, byte(63+d))
	}
}

func TestLabelOffset(t *testing.T) {
	// default size: 75 by 150 plotter units
	cases := []struct {
		lo     int
		dx, dy float64
	}{
		{1, 0, 0},
		{2, 0, -75},
		{3, 0, -150},
		{4, -150, 0},
		{5, -150, -75},
		{6, -150, -150},
		{7, -300, 0},
		{9, -300, -150},
		{11, 37.5, 75},
		{13, 37.5, -225},
		{17, -337.5, 75},
		{19, -337.5, -225},
	}
	for _, tc := range cases {
		r, _ := newTestRenderer()
		feed(r, "LO"+strconv.Itoa(tc.lo)+";")
		off := r.labelOffset([]byte("ABC"))
		if math.Abs(off.X-tc.dx) > 1e-9 || math.Abs(off.Y-tc.dy) > 1e-9 {
			t.Errorf("LO%d: offset %v, want (%g, %g)", tc.lo, off, tc.dx, tc.dy)
		}
	}
}

func TestLabelColumns(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"ABC", 3},
		{"AB\r\nABCD\r\nA", 4},
		{"ABC\b\b", 3},
		{"AB\tC", 2.5},
	}
	for _, tc := range cases {
		if got := labelColumns([]byte(tc.text), false); got != tc.want {
			t.Errorf("%q: %g columns, want %g", tc.text, got, tc.want)
		}
	}
}

func TestLabels(t *testing.T) {
	cases := []struct {
		in   string
		x, y float64
	}{
		{"PA1000,1000;LBAB\x03", 1225, 1000},
		{"LO7;PA1000,1000;LBAB\x03", 1037.5, 1000},
		{"PA1000,1000;LBA\r\nB\x03", 1112.5, 700},
		{"DI0,1;PA1000,1000;LBAB\x03", 1000, 1225},
		{"DV1;PA1000,1000;LBAB\x03", 1000, 400},
		{"ES1;PA1000,1000;LBAB\x03", 1450, 1000},
		{"SI0.5,1;PA1000,1000;LBA\x03", 1300, 1000},
		{"DT#;LBAB#PA20,30;", 20, 30},
		{"BLAB\x03PA1000,1000;PB;", 1225, 1000},
		{"PA1000,1000;CP2,1;", 1450, 1300},
		{"PA1000,1000;LBA\x03CP;", 1000, 700},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			r, _ := newTestRenderer()
			feed(r, tc.in)
			checkPen(t, r, tc.x, tc.y, false)
		})
	}
}

func TestLabelDrawing(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "LT2;PA1000,1000;LBA\x03")
	// 'A' has six strokes; patterns are not applied to text
	if n := len(rc.only(opLine)); n != 6 {
		t.Errorf("%d strokes, want 6", n)
	}

	rc.reset()
	feed(r, "SP0;LBA\x03")
	if len(rc.calls) > 0 {
		t.Errorf("pen 0 drew %v", rc.calls)
	}
}

func TestTerminatorPrinted(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "DT-,0;LBA-")
	// 'A' and '-'
	if n := len(rc.only(opLine)); n != 7 {
		t.Errorf("%d strokes, want 7", n)
	}
}

func TestTransparentData(t *testing.T) {
	cases := []struct {
		in   string
		x, y float64
	}{
		{"PA1000,1000;LBA\rB\x03", 1112.5, 1000},
		{"TD1;PA1000,1000;LBA\rB\x03", 1337.5, 1000},
		{"TD1;PA1000,1000;LBA\nB\x03", 1337.5, 1000},
		{"TD1;PA1000,1000;LBA\bB\x03", 1337.5, 1000},
		{"TD1;TD0;PA1000,1000;LBA\bB\x03", 1112.5, 1000},
		{"TD1;PA1000,1000;LBA\x03PA20,30;", 20, 30},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			r, _ := newTestRenderer()
			feed(r, tc.in)
			checkPen(t, r, tc.x, tc.y, false)
		})
	}
}

func TestUpperHalfGlyphs(t *testing.T) {
	cases := []struct {
		text    string
		strokes int
	}{
		{"\xe9", 9},  // e acute
		{"\xc9", 5},  // E acute
		{"\xeb", 10}, // e diaeresis
		{"\xe7", 9},  // c cedilla
		{"\xec", 2},  // dotless i with grave
		{"\xff", 4},  // y diaeresis
		{"\xb0", 4},  // degree
		{"\x80", 4},  // box
		{"\xa0", 0},  // no-break space
	}
	for _, tc := range cases {
		r, rc := newTestRenderer()
		feed(r, "PA1000,1000;LB"+tc.text+"\x03")
		if n := len(rc.only(opLine)); n != tc.strokes {
			t.Errorf("%q: %d strokes, want %d", tc.text, n, tc.strokes)
		}
		checkPen(t, r, 1112.5, 1000, false)
	}
}

func TestMarkPlacement(t *testing.T) {
	extent := func(c byte) (lo, hi int16) {
		lo, hi = math.MaxInt16, math.MinInt16
		for s := range builtinStrokes(c) {
			lo, hi = min(lo, s.y), max(hi, s.y)
		}
		return lo, hi
	}
	if _, hi := extent(0xC9); hi <= fontCapHeight {
		t.Errorf("accent on E reaches %d, want above the cap height", hi)
	}
	if _, hi := extent(0xE9); hi > fontCapHeight {
		t.Errorf("accent on e reaches %d, want at most the cap height", hi)
	}
	if lo, _ := extent(0xC7); lo >= 0 {
		t.Errorf("cedilla on C starts at %d, want below the baseline", lo)
	}
}

func TestDownload(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "DL65,0,0,16,40;PA1000,1000;LBA\x03")
	if n := len(rc.only(opLine)); n != 1 {
		t.Errorf("%d strokes for the downloaded glyph, want 1", n)
	}

	rc.reset()
	feed(r, "DL;LBA\x03")
	if n := len(rc.only(opLine)); n != 6 {
		t.Errorf("%d strokes after clearing, want 6", n)
	}

	rc.reset()
	feed(r, "DL66,0,0,8,0,-128,0,8,8,8;LBB\x03")
	if n := len(rc.only(opLine)); n != 2 {
		t.Errorf("%d strokes with a pen lift, want 2", n)
	}
}

func TestUserChar(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA1000,1000;UC99,4,8;")
	if n := len(rc.only(opLine)); n != 1 {
		t.Errorf("%d strokes, want 1", n)
	}
	checkPen(t, r, 1112.5, 1000, false)
	if r.banks[0][userCharSlot] != nil {
		t.Error("user character not erased")
	}
}

func TestSymbolMode(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "SM*;PA100,100;PA200,200;SM;PA300,300;")
	// '*' has three strokes
	if n := len(rc.only(opLine)); n != 6 {
		t.Errorf("%d strokes, want 6", n)
	}
}

func TestTicks(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA5000,5000;XT;YT;")
	want := []drawCall{
		{opLine, 5000, 4950, 5000, 5050, DefaultPens[1]},
		{opLine, 5050, 5000, 4950, 5000, DefaultPens[1]},
	}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
}

func TestClipWindow(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "IW1000,1000,2000,2000;PA0,1500;PD;PA3000,1500;")
	want := []drawCall{{opLine, 1000, 8500, 2000, 8500, DefaultPens[1]}}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
	if got, want := rc.clips[len(rc.clips)-1], image.Rect(1000, 8000, 2001, 9001); got != want {
		t.Errorf("canvas clip %v, want %v", got, want)
	}

	rc.reset()
	feed(r, "IW20000,20000,30000,30000;PU0,0;PD5000,5000;")
	if len(rc.calls) > 0 {
		t.Errorf("drawing outside an empty window: %v", rc.calls)
	}
	if got := rc.clips[len(rc.clips)-1]; !got.Empty() {
		t.Errorf("canvas clip %v for an empty window, want an empty rectangle", got)
	}

	rc.reset()
	feed(r, "IW;PU0,0;PD5000,5000;")
	if len(rc.calls) != 1 {
		t.Errorf("%d calls after IW;", len(rc.calls))
	}
}

func TestIgnoreClipWindow(t *testing.T) {
	rc := &recorder{}
	opt := testOptions()
	opt.IgnoreClipWindow = true
	r := New(rc, opt)
	feed(r, "IW1000,1000,2000,2000;PA0,1500;PD;PA3000,1500;")
	want := []drawCall{{opLine, 0, 8500, 3000, 8500, DefaultPens[1]}}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
}

func TestSelectPen(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "SP9;")
	if r.st.penIndex != 1 {
		t.Errorf("pen %d after SP9", r.st.penIndex)
	}
	feed(r, "SP0;PD100,100;")
	if len(rc.calls) > 0 {
		t.Errorf("pen 0 drew %v", rc.calls)
	}
	feed(r, "SP2;SP;")
	if r.st.penIndex != 0 {
		t.Errorf("pen %d after SP;", r.st.penIndex)
	}
}

func TestPenColor(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "CR0,100,0,100,0,100;PC2,100,50,0;SP2;PD10,10;")
	want := color.RGBA{255, 128, 0, 255}
	if len(rc.calls) != 1 || rc.calls[0].c != want {
		t.Errorf("got %v, want color %v", rc.calls, want)
	}
	feed(r, "PC2;")
	if r.st.pens[2].color != DefaultPens[2] {
		t.Errorf("pen 2 not restored: %v", r.st.pens[2].color)
	}
}

type widthRecorder struct {
	recorder
	widths []float64
}

func (w *widthRecorder) SetPenWidth(px float64) {
	w.widths = append(w.widths, px)
}

func TestPenWidth(t *testing.T) {
	wr := &widthRecorder{}
	r := New(wr, testOptions())
	feed(r, "PD10,10;PW1;PD20,20;PD30,30;")
	want := []float64{0.35 * unitsPerMM, 1 * unitsPerMM}
	if len(wr.widths) != len(want) {
		t.Fatalf("widths %v, want %v", wr.widths, want)
	}
	for i := range want {
		if math.Abs(wr.widths[i]-want[i]) > 1e-9 {
			t.Errorf("widths %v, want %v", wr.widths, want)
		}
	}
}

func TestDefaults(t *testing.T) {
	r, _ := newTestRenderer()
	feed(r, "IP1000,1000,2000,2000;SC0,1,0,1;LT3;SI1,2;LO5;DT#;PA0.5,0.5;DF;")
	if r.st.scale.mode != scaleNone || r.st.lineType != 1 || r.st.sizeMode != sizeRelative ||
		r.st.lo != 1 || r.st.term != etx {
		t.Errorf("DF did not restore the defaults: %+v", r.st)
	}
	if r.st.p1 != (vec.Vec2{X: 1000, Y: 1000}) {
		t.Errorf("DF changed P1 to %v", r.st.p1)
	}
	// the pen keeps its position on the page
	checkPen(t, r, 1500, 1500, false)

	feed(r, "IN;")
	if r.st.p1 != (vec.Vec2{}) || r.st.p2 != (vec.Vec2{X: 10000, Y: 10000}) {
		t.Errorf("IN did not reset P1 and P2")
	}
}

func TestPCLRaster(t *testing.T) {
	r, rc := newTestRenderer()
	in := "\x1b%0A\x1b*t75R\x1b*p0x0Y\x1b*r1A\x1b*b2W\xf0\x0f\x1b*rB\x1b%0BPA10,10;"
	feed(r, in)

	want := []drawCall{
		{opRect, 0, 0, 53, 13, DefaultPens[1]},
		{opRect, 163, 0, 216, 13, DefaultPens[1]},
	}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
	if r.Mode() != ModeHPGL {
		t.Errorf("mode %v after ESC%%0B", r.Mode())
	}
	checkPen(t, r, 10, 10, false)
}

func TestPCLCursorReturn(t *testing.T) {
	r, _ := newTestRenderer()
	// 300 PCL units are one inch, 1016 plotter units
	feed(r, "\x1b%0A\x1b*p300x600Y\x1b%1B")
	checkPen(t, r, 1016, 10000-2032, false)

	feed(r, "PA500,500;\x1b%1Atext is ignored\x1b*p+300X\x1b%1B")
	checkPen(t, r, 1516, 500, false)
}

func TestPCLReset(t *testing.T) {
	r, _ := newTestRenderer()
	feed(r, "SP3;LT2;CT1;TD1;DT#;PA500,500;PD;\x1bE")
	if r.Mode() != ModeHPGL {
		t.Errorf("mode %v after ESC E", r.Mode())
	}
	st := &r.st
	if st.penIndex != 1 || st.lineType != 1 || st.chordDeviation || st.transparentData || st.term != etx {
		t.Errorf("state not initialised: pen %d, LT %d, CT %t, TD %t, DT %q",
			st.penIndex, st.lineType, st.chordDeviation, st.transparentData, st.term)
	}
	checkPen(t, r, 0, 0, false)

	feed(r, "\x1b%0A\x1b*p300x600Y\x1bE")
	if r.Mode() != ModePCL {
		t.Errorf("mode %v, want PCL to be kept", r.Mode())
	}
	if r.pcl.cursor != (vec.Vec2{}) {
		t.Errorf("PCL cursor %v after ESC E", r.pcl.cursor)
	}
}

func TestDecodeRasterRow(t *testing.T) {
	cases := []struct {
		mode int
		in   []byte
		want []byte
	}{
		{0, []byte{1, 2, 3}, []byte{1, 2, 3}},
		{1, []byte{2, 0xaa, 0, 0x55}, []byte{0xaa, 0xaa, 0xaa, 0x55}},
		{2, []byte{0x02, 1, 2, 3, 0xfe, 9, 0x80}, []byte{1, 2, 3, 9, 9, 9}},
	}
	for _, tc := range cases {
		got, ok := decodeRasterRow(tc.mode, tc.in, nil)
		if !ok || !bytes.Equal(got, tc.want) {
			t.Errorf("mode %d: %v, want %v", tc.mode, got, tc.want)
		}
	}
	if _, ok := decodeRasterRow(3, []byte{1}, nil); ok {
		t.Error("mode 3 accepted")
	}
}

func TestChunking(t *testing.T) {
	in := "IN;SP2;LT4;PA100,100;PD;CI300;PR500,0,0,500;LO5;LBHello\r\nWorld\x03" +
		"PM0;PA1000,1000;PD2000,1000,1500,2000;PM2;FP;EP;" +
		"PE<=" + peNum(100, 64) + peNum(200, 64) + peNum(50, 64) + peNum(-30, 64) + ";" +
		"\x1b%0A\x1b*r1A\x1b*b1W\xff\x1b*rB\x1b%0BSP1;PU;"

	whole := &recorder{}
	feed(New(whole, testOptions()), in)

	split := &recorder{}
	r := New(split, testOptions())
	for i := range len(in) {
		if err := r.WriteByte(in[i]); err != nil {
			t.Fatal(err)
		}
	}
	if !slices.Equal(whole.calls, split.calls) {
		t.Errorf("byte-wise feeding differs: %d vs %d calls", len(split.calls), len(whole.calls))
	}

	viaReader := &recorder{}
	if err := New(viaReader, testOptions()).Consume(bufio.NewReader(strings.NewReader(in))); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(whole.calls, viaReader.calls) {
		t.Error("Consume differs from Write")
	}
}

func TestResize(t *testing.T) {
	r, rc := newTestRenderer()
	feed(r, "PA5000,5000;")
	r.Resize(1001, 1001)
	feed(r, "PD10000,10000;")
	want := []drawCall{{opLine, 500, 500, 1000, 0, DefaultPens[1]}}
	if !slices.Equal(rc.calls, want) {
		t.Errorf("got %v, want %v", rc.calls, want)
	}
}

func TestReset(t *testing.T) {
	r, _ := newTestRenderer()
	feed(r, "SP3;PA10,20;PD;\x1b%0A")
	r.Reset()
	if r.Mode() != ModeHPGL || r.st.penIndex != 1 {
		t.Errorf("mode %v pen %d after Reset", r.Mode(), r.st.penIndex)
	}
	checkPen(t, r, 0, 0, false)
}
