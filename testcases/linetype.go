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
	"strings"
)

var lineTypeCases = []TestCase{
	small("fixed", lineTypeGrid(1)),
	small("adaptive", lineTypeGrid(-1)),
	small("user_defined", "IN;SP1;UL1,10,5,30,5;LT1,4,1;PA200,1500;PD3800,1500;PU;"+
		"UL1;LT1;PA200,1000;PD3800,1000;PU;"),
	small("opaque", "IN;SP2;TR0;LT2;PA200,1500;PD3800,1500;PU;TR1;LT2;PA200,1000;PD3800,1000;PU;"),
	small("dots", "IN;SP1;LT0;PA200,200;PD3800,200,3800,2800,200,2800,200,200;PU;"),
	small("pattern_polyline", "IN;SP1;LT3,8;PA300,300;PD3700,300,3700,2700,300,2700,300,300;PU;"),
}

// lineTypeGrid draws one horizontal line per line type, using the given
// sign for the line type number.
func lineTypeGrid(sign int) string {
	b := &strings.Builder{}
	b.WriteString("IN;SP1;")
	for i := range 8 {
		y := 2800 - 350*i
		fmt.Fprintf(b, "LT%d;PA200,%d;PD3800,%d;PU;", sign*(i+1), y, y)
	}
	return b.String()
}
