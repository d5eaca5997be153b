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

var labelCases = []TestCase{
	small("text", "IN;SP1;PA200,2500;LBHELLO, WORLD\x03PA200,1800;LBhello, world\x03PA200,1100;LB0123456789\x03"),
	small("origins", "IN;SP1;PA2000,1500;PD;PR-100,0,200,0,-100,0,0,100,0,-200;PU;"+
		"PA2000,1500;LO1;LBone\x03PA2000,1500;LO5;LBfive\x03PA2000,1500;LO9;LBnine\x03"),
	small("directions", "IN;SP1;PA2000,1500;DI1,0;LBEAST\x03PA2000,1500;DI0,1;LBNORTH\x03"+
		"PA2000,1500;DI-1,0;LBWEST\x03PA2000,1500;DI0,-1;LBSOUTH\x03"),
	small("sizes", "IN;SP1;SI0.1,0.15;PA200,2600;LBsmall\x03SI0.4,0.6;PA200,1800;LBlarge\x03"+
		"SR2,4;PA200,600;LBrelative\x03"),
	small("slant_spacing", "IN;SP1;SL0.5;PA200,2200;LBslanted\x03SL;ES1,0;PA200,1200;LBspaced\x03"),
	small("multiline", "IN;SP1;DT#;PA300,2500;LBfirst line\r\nsecond line\r\nthird#"),
	small("vertical", "IN;SP1;DV1;PA500,2800;LBDOWN\x03DV0;PA1500,2800;LBACROSS\x03"),
	small("buffered", "IN;SP1;BLstored label\x03PA2000,1500;LO6;PB;CP0,-1;LBnext line\x03"),
	small("user_char", "IN;SP1;SI0.4,0.6;PA500,1500;UC2,4,99,8,0,0,-8,-8,0,-99,0,4,99,8,0;LBx\x03"),
	small("download", "IN;SP1;SI0.5,0.75;DL65,0,0,32,64,64,0,-128,16,32,48,32;PA500,1500;LBAAA\x03"),
	small("terminator_printed", "IN;SP1;DT-,0;PA300,1500;LBA-B-"),
	small("latin1", "IN;SP1;SI0.3,0.45;PA300,1800;LB\xc0\xc9\xce\xd1\xd6\xdc\xc7\x03"+
		"PA300,900;LB\xe0\xe9\xee\xf1\xf6\xfc\xe7 \xb0\xb1\x80\x03"),
}
