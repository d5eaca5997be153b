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

package canvas

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestPDFOutput(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "out.pdf")
	c, err := NewPDF(fname, 100, 50, white)
	if err != nil {
		t.Fatal(err)
	}
	c.SetPenWidth(2)
	c.Line(0, 0, 99, 49, black)
	c.Plot(5, 5, color50)
	c.SetClip(image.Rect(10, 10, 20, 20))
	c.FillRect(0, 0, 99, 49, black)
	c.FillPath((&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 50, Y: 0}).
		LineTo(vec.Vec2{X: 50, Y: 50}).
		Close(), true, black)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("missing PDF header: %q", data[:min(len(data), 10)])
	}
}

var color50 = color.RGBA{0, 0, 0, 128}

func TestClipPolygon(t *testing.T) {
	sq := []vec.Vec2{{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10}}
	got := clipPolygon(sq, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 5, Y: 5})
	if len(got) < 3 {
		t.Fatalf("clipped polygon %v", got)
	}
	var area float64
	for i, p := range got {
		if p.X < 0 || p.X > 5 || p.Y < 0 || p.Y > 5 {
			t.Errorf("vertex %v outside the box", p)
		}
		q := got[(i+1)%len(got)]
		area += p.X*q.Y - q.X*p.Y
	}
	if math.Abs(math.Abs(area/2)-25) > 1e-9 {
		t.Errorf("area %g, want 25", math.Abs(area/2))
	}

	tri := []vec.Vec2{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 30}}
	if got := clipPolygon(tri, vec.Vec2{}, vec.Vec2{X: 5, Y: 5}); len(got) != 0 {
		t.Errorf("outside triangle clipped to %v", got)
	}
}

func TestGray(t *testing.T) {
	if g := gray(white); math.Abs(g-1) > 1e-9 {
		t.Errorf("gray(white) = %g", g)
	}
	if g := gray(black); g != 0 {
		t.Errorf("gray(black) = %g", g)
	}
}
