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

import "strings"

var encodedCases = []TestCase{
	small("square", "IN;SP1;PE<="+pe(1000, 1000)+pe(2000, 0, 0, 1000, -2000, 0, 0, -1000)+";"),
	small("pen_select", "IN;PE:"+pe(2)+"<="+pe(500, 500)+pe(3000, 2000)+":"+pe(5)+pe(0, -2000)+";"),
	small("fraction", "IN;SP1;PE>"+pe(4)+"<="+pe(16000, 8000)+pe(32000, 0, 0, 16000)+";"),
	small("base32", "IN;SP1;PE7<="+pe32(500, 2500)+pe32(3000, -2000, -1500, 1000)+";"),
}

// pe encodes integer values as PE numbers in base 64.
func pe(vals ...int) string {
	return peEncode(64, vals)
}

// pe32 encodes integer values as PE numbers in base 32.
func pe32(vals ...int) string {
	return peEncode(32, vals)
}

func peEncode(base int, vals []int) string {
	first := 191
	if base == 32 {
		first = 95
	}
	b := &strings.Builder{}
	for _, n := range vals {
		v := 2 * n
		if n < 0 {
			v = -2*n + 1
		}
		for {
			d := v % base
			v /= base
			if v == 0 {
				b.WriteByte(byte(first + d))
				break
			}
			b.WriteByte(byte(63 + d))
		}
	}
	return b.String()
}
