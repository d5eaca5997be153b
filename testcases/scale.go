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

var scaleCases = []TestCase{
	small("anisotropic", "IN;SP1;IP400,300,3600,2700;SC0,100,0,100;"+
		"PA0,0;PD100,0,100,100,0,100,0,0,100,100;PU;PA50,50;CI25;"),
	small("isotropic", "IN;SP1;IP400,300,3600,2700;SC0,100,0,100,1;"+
		"PA0,0;PD100,0,100,100,0,100,0,0;PU;PA50,50;CI50;"),
	small("point_factor", "IN;SP2;SC-10,20,-5,20,2;PA0,0;PD50,0;PU;PA0,0;PD0,50;PU;PA25,25;CI20;"),
	small("flipped", "IN;SP1;IP400,300,3600,2700;SC100,0,0,100;PA10,10;LBflipped\x03PA0,0;PD30,60,60,0;PU;"),
	small("input_relative", "IN;SP3;IR25,25,75,75;SC0,10,0,10;PA0,0;PD10,0,10,10,0,10,0,0;PU;"),
	small("frame_advance", "IN;SP1;PA500,500;PD3500,2500;PU;PG;SP2;PA500,2500;PD3500,500;PU;"),
	{
		Name:   "default_page",
		Input:  "IN;SP1;PA0,0;PD10365,0,10365,7962,0,7962,0,0;PU;PA5182,3981;CI3000;",
		Width:  400,
		Height: 0,
	},
}
