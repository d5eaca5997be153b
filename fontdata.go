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

// glyphSource describes the built-in stroke font on a grid with x in 0..4
// and y in 0..7.  The baseline is y=2, capitals reach y=7 and lower case
// letters y=5.  Each token "xy" is a grid point; a leading "." lifts the pen
// before moving there.  The first point of a glyph is always a move.
var glyphSource = map[byte]string{
	'!':  "27 24 .22 22",
	'"':  "17 16 .37 36",
	'#':  "16 12 .36 32 .05 45 .03 43",
	'$':  "36 16 05 14 34 43 32 12 .27 21",
	'%':  "02 47 .07 17 16 06 07 .33 43 42 32 33",
	'&':  "42 16 17 27 26 03 02 22 44",
	'\'': "27 26",
	'(':  "37 26 23 32",
	')':  "17 26 23 12",
	'*':  "23 27 .04 46 .06 44",
	'+':  "22 26 .04 44",
	',':  "23 22 11",
	'-':  "04 44",
	'.':  "22 22",
	'/':  "02 47",
	'0':  "12 03 06 17 37 46 43 32 12",
	'1':  "16 27 22 .12 32",
	'2':  "06 17 37 46 45 02 42",
	'3':  "06 17 37 46 45 34 14 .34 43 32 12 03",
	'4':  "32 37 04 44",
	'5':  "47 07 05 35 44 43 32 02",
	'6':  "37 17 06 03 12 32 43 44 35 05",
	'7':  "07 47 22",
	'8':  "14 05 06 17 37 46 45 34 14 03 12 32 43 34",
	'9':  "12 32 43 46 37 17 06 05 14 34 45",
	':':  "24 24 .22 22",
	';':  "24 24 .22 11",
	'<':  "46 24 42",
	'=':  "03 43 .05 45",
	'>':  "06 44 02",
	'?':  "06 17 37 46 45 24 23 .22 22",
	'@':  "33 35 15 13 43 46 37 17 06 03 12 42",
	'A':  "02 06 17 37 46 42 .04 44",
	'B':  "02 07 37 46 45 34 04 .34 43 32 02",
	'C':  "46 37 17 06 03 12 32 43",
	'D':  "02 07 27 46 43 22 02",
	'E':  "42 02 07 47 .04 34",
	'F':  "02 07 47 .04 34",
	'G':  "46 37 17 06 03 12 32 43 44 24",
	'H':  "02 07 .42 47 .04 44",
	'I':  "12 32 .22 27 .17 37",
	'J':  "03 12 22 33 37 .27 47",
	'K':  "02 07 .47 04 .15 42",
	'L':  "07 02 42",
	'M':  "02 07 24 47 42",
	'N':  "02 07 42 47",
	'O':  "12 03 06 17 37 46 43 32 12",
	'P':  "02 07 37 46 45 34 04",
	'Q':  "12 03 06 17 37 46 43 32 12 .23 41",
	'R':  "02 07 37 46 45 34 04 .24 42",
	'S':  "46 37 17 06 05 14 34 43 32 12 03",
	'T':  "07 47 .27 22",
	'U':  "07 03 12 32 43 47",
	'V':  "07 22 47",
	'W':  "07 12 24 32 47",
	'X':  "02 47 .07 42",
	'Y':  "07 24 47 .24 22",
	'Z':  "07 47 02 42",
	'[':  "37 27 22 32",
	'\\': "07 42",
	']':  "17 27 22 12",
	'^':  "05 27 45",
	'_':  "01 41",
	'`':  "17 26",
	'a':  "05 35 44 42 .43 13 03 12 42",
	'b':  "07 02 32 43 44 35 05",
	'c':  "45 15 04 03 12 42",
	'd':  "47 42 12 03 04 15 45",
	'e':  "13 43 44 35 15 04 03 12 42",
	'f':  "22 26 37 47 .14 34",
	'g':  "45 41 30 10 01 .43 32 12 03 04 15 35 44",
	'h':  "02 07 .05 35 44 42",
	'i':  "22 25 .27 27",
	'j':  "25 21 10 01 .27 27",
	'k':  "02 07 .45 03 .14 42",
	'l':  "17 27 22",
	'm':  "02 05 .04 15 24 22 .24 35 44 42",
	'n':  "02 05 .04 15 35 44 42",
	'o':  "12 03 04 15 35 44 43 32 12",
	'p':  "00 05 35 44 43 32 02",
	'q':  "40 45 15 04 03 12 42",
	'r':  "02 05 .04 15 35 44",
	's':  "45 15 04 34 43 32 02",
	't':  "27 23 32 42 .15 35",
	'u':  "05 03 12 32 43 .45 42",
	'v':  "05 22 45",
	'w':  "05 12 23 32 45",
	'x':  "02 45 .05 42",
	'y':  "05 23 .45 10",
	'z':  "05 45 02 42",
	'{':  "37 26 25 14 23 22 31",
	'|':  "27 21",
	'}':  "17 26 25 34 23 22 11",
	'~':  "05 16 35 46",

	0xB0: "16 17 27 26 16",
	0xB1: "05 45 .27 23 .02 42",
	0xB5: "00 05 .03 12 32 43 .45 42",
	0xD7: "13 35 .15 33",
	0xF7: "04 44 .26 26 .22 22",
}

// Diacritic marks, placed above lower case letters.  Marks on capitals
// are raised by two grid steps, except for the cedilla.
const (
	markGrave = iota + 1
	markAcute
	markCircumflex
	markTilde
	markDiaeresis
	markRing
	markCedilla
)

var markSource = [...]string{
	markGrave:      "17 26",
	markAcute:      "26 37",
	markCircumflex: "16 27 36",
	markTilde:      "06 17 36 47",
	markDiaeresis:  "17 17 .37 37",
	markRing:       "16 17 37 36 16",
	markCedilla:    "22 21 31 30 10",
}

// dotlessI is the base of the accented forms of i.
const dotlessI = "22 25"

// boxSource is drawn for upper half bytes without a glyph of their own.
const boxSource = "02 07 47 42 02"

type accentedLetter struct {
	base byte
	mark int
}

// latin1Letters lists the ISO 8859-1 letters built from an ASCII letter
// and a diacritic mark.
var latin1Letters = map[byte]accentedLetter{
	0xC0: {'A', markGrave},
	0xC1: {'A', markAcute},
	0xC2: {'A', markCircumflex},
	0xC3: {'A', markTilde},
	0xC4: {'A', markDiaeresis},
	0xC5: {'A', markRing},
	0xC7: {'C', markCedilla},
	0xC8: {'E', markGrave},
	0xC9: {'E', markAcute},
	0xCA: {'E', markCircumflex},
	0xCB: {'E', markDiaeresis},
	0xCC: {'I', markGrave},
	0xCD: {'I', markAcute},
	0xCE: {'I', markCircumflex},
	0xCF: {'I', markDiaeresis},
	0xD1: {'N', markTilde},
	0xD2: {'O', markGrave},
	0xD3: {'O', markAcute},
	0xD4: {'O', markCircumflex},
	0xD5: {'O', markTilde},
	0xD6: {'O', markDiaeresis},
	0xD9: {'U', markGrave},
	0xDA: {'U', markAcute},
	0xDB: {'U', markCircumflex},
	0xDC: {'U', markDiaeresis},
	0xDD: {'Y', markAcute},
	0xE0: {'a', markGrave},
	0xE1: {'a', markAcute},
	0xE2: {'a', markCircumflex},
	0xE3: {'a', markTilde},
	0xE4: {'a', markDiaeresis},
	0xE5: {'a', markRing},
	0xE7: {'c', markCedilla},
	0xE8: {'e', markGrave},
	0xE9: {'e', markAcute},
	0xEA: {'e', markCircumflex},
	0xEB: {'e', markDiaeresis},
	0xEC: {'i', markGrave},
	0xED: {'i', markAcute},
	0xEE: {'i', markCircumflex},
	0xEF: {'i', markDiaeresis},
	0xF1: {'n', markTilde},
	0xF2: {'o', markGrave},
	0xF3: {'o', markAcute},
	0xF4: {'o', markCircumflex},
	0xF5: {'o', markTilde},
	0xF6: {'o', markDiaeresis},
	0xF9: {'u', markGrave},
	0xFA: {'u', markAcute},
	0xFB: {'u', markCircumflex},
	0xFC: {'u', markDiaeresis},
	0xFD: {'y', markAcute},
	0xFF: {'y', markDiaeresis},
}
