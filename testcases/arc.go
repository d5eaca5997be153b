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

var arcCases = []TestCase{
	small("circles", "IN;SP1;PA2000,1500;CI200;CI500;CI1000,15;CI1400,1;"),
	small("arc_absolute", "IN;SP1;PA3000,1500;PD;AA2000,1500,180;AA2000,2200,-90,5;PU;"),
	small("arc_relative", "IN;SP2;PA500,1500;PD;AR500,0,180;AR500,0,-180;AR500,0,180;PU;"),
	small("three_point", "IN;SP1;PA500,500;PD;AT1500,2000,2500,500;RT500,500,1000,0;PU;"),
	small("wedges", "IN;SP1;PA2000,1500;EW1000,0,60;EW1000,120,60;EW1000,240,60;"+
		"SP2;FT1;WG800,60,60;WG800,180,60;WG800,300,60;"),
	small("bezier", "IN;SP1;PA200,200;PD;BZ1000,2800,3000,2800,3800,200;PU;PA200,1500;PD;BR1000,1000,2000,-1000,3600,0;PU;"),
	small("chord_tolerance", "IN;SP1;CT1;PA1200,1500;CI1000,50;CT0;PA2800,1500;CI1000,30;"),
}
