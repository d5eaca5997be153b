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

var pclCases = []TestCase{
	small("raster_checker", "IN;SP1;PA200,200;PD3800,200;PU;PA500,2800;"+pclRaster(checkerRows(16, 8), 0)),
	small("raster_rle", "IN;SP2;PA500,2800;"+pclRaster(rleRows(12), 1)),
	small("raster_packbits", "IN;SP5;PA2000,1500;"+pclRaster(packBitsRows(12), 2)),
	small("cursor_return", "IN;SP1;PA1000,1000;\x1b%1A\x1b*p+150X\x1b%1BPD2000,2000;PU;"),
	small("escape_noise", "IN;SP1;\x1b.(\x1b.I81;;17:\x1b.N;19:PA500,500;PD3500,2500;PU;\x1bE;SP2;PA500,2500;PD3500,500;PU;"),
}

// pclRaster wraps raster rows into a PCL sub-mode block at the pen
// position.
func pclRaster(rows [][]byte, compression int) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "\x1b%%1A\x1b*t150R\x1b*r1A\x1b*b%dM", compression)
	for _, row := range rows {
		fmt.Fprintf(b, "\x1b*b%dW", len(row))
		b.Write(row)
	}
	b.WriteString("\x1b*rB\x1b%0B")
	return b.String()
}

func checkerRows(bytesPerRow, n int) [][]byte {
	var rows [][]byte
	for i := range n * 8 {
		row := make([]byte, bytesPerRow)
		for j := range row {
			if (i/8+j)%2 == 0 {
				row[j] = 0xff
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// rleRows gives rows in compression mode 1: pairs of repeat count and
// value.
func rleRows(n int) [][]byte {
	var rows [][]byte
	for i := range n * 4 {
		k := byte(i % 16)
		rows = append(rows, []byte{k, 0xff, 15 - k, 0x00, 3, 0xaa})
	}
	return rows
}

// packBitsRows gives rows in compression mode 2.
func packBitsRows(n int) [][]byte {
	var rows [][]byte
	for i := range n * 4 {
		rows = append(rows, []byte{
			0xf9, 0x00, // 8 repeats
			0x02, 0xf0, 0x0f, byte(i), // 3 literals
			0xfb, 0xff, // 6 repeats
		})
	}
	return rows
}
