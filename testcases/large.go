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

package testcases

import (
	"fmt"
	"math"
	"strings"
)

// largeCases contain long command streams, used for benchmarks.
var largeCases = []TestCase{
	{
		Name:       "spiral",
		Input:      spiral(5000),
		Width:      1024,
		PageWidth:  20000,
		PageHeight: 20000,
	},
	{
		Name:       "grid",
		Input:      grid(100),
		Width:      1024,
		PageWidth:  20000,
		PageHeight: 20000,
	},
}

// spiral draws a polyline with n vertices.
func spiral(n int) string {
	b := &strings.Builder{}
	b.WriteString("IN;SP1;PA10000,10000;PD")
	for i := range n {
		phi := float64(i) * 0.05
		r := 9500 * float64(i) / float64(n)
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%.0f,%.0f", 10000+r*math.Cos(phi), 10000+r*math.Sin(phi))
	}
	b.WriteString(";PU;")
	return b.String()
}

// grid draws n×n dashed and filled cells.
func grid(n int) string {
	step := 20000 / n
	b := &strings.Builder{}
	b.WriteString("IN;")
	for i := range n {
		for j := range n {
			fmt.Fprintf(b, "SP%d;LT%d;PA%d,%d;ER%d,%d;", 1+(i+j)%7, (i*j)%9-1, i*step, j*step, step, step)
			if (i+j)%3 == 0 {
				fmt.Fprintf(b, "FT10,%d;RR%d,%d;", (10*(i+j))%100, step/2, step/2)
			}
		}
	}
	return b.String()
}
