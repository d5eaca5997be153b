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

var vectorCases = []TestCase{
	small("cross", "IN;SP1;PU0,0;PD4000,3000;PU0,3000;PD4000,0;PU;"),
	small("frame", "IN;SP1;PA100,100;PD3900,100,3900,2900,100,2900,100,100;PU;"),
	small("relative", "IN;SP2;PA2000,1500;PD;PR500,0,0,500,-1000,0,0,-1000,1000,0,0,500;PU;"),
	small("pens", "IN;SP1;PA200,200;PD3800,200;PU;SP2;PA200,700;PD3800,700;PU;"+
		"SP3;PA200,1200;PD3800,1200;PU;SP5;PA200,1700;PD3800,1700;PU;"+
		"SP6;PA200,2200;PD3800,2200;PU;SP7;PA200,2700;PD3800,2700;PU;"),
	small("wide_pens", "IN;SP1;PW2;PA300,300;PD3700,2700;PU;PW0.5;PA300,2700;PD3700,300;PU;"),
	small("clip_window", "IN;SP1;IW1000,750,3000,2250;PA0,0;PD4000,3000;PU0,3000;PD4000,0;PU;"+
		"PA1000,750;EA3000,2250;"),
	small("resync", "IN;SP1;PA100,100;PD1000,1000;#garbage@PA1000,100;PD100,1000;PU;"+
		"/* comment PD4000,3000; */PA2000,2000;PD2500,2500;PU;"),
	small("ticks", "IN;SP1;TL2,2;PA200,1500;PD;"+
		"PR400,0;XT;PR400,0;XT;PR400,0;XT;PR400,0;XT;PR400,0;XT;PR400,0;XT;PR400,0;XT;PR400,0;XT;PU;"),
	small("symbols", "IN;SP2;SM*;PA500,500;PA1000,1000;PA1500,700;PA2000,1800;SM;SMo;PA3000,2000;PA3500,1000;SM;"),
	small("rotated", "IN;RO90;SP1;PA0,0;PD3000,1000;PU;PA500,500;EA2500,1500;"),
}
