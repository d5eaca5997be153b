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

var polygonCases = []TestCase{
	small("triangle", "IN;SP1;PA500,500;PM0;PD3500,500,2000,2500;PM2;FP;"),
	small("even_odd", "IN;SP2;PA500,500;PM0;PD3500,500,3500,2500,500,2500;PM1;"+
		"PU1500,1000;PD2500,1000,2500,2000,1500,2000;PM2;FP;SP1;EP;"),
	small("nonzero", "IN;SP2;PA500,500;PM0;PD3500,500,3500,2500,500,2500;PM1;"+
		"PU1500,1000;PD2500,1000,2500,2000,1500,2000;PM2;FP1;SP1;EP;"),
	small("star", "IN;SP5;PA2000,2800;PM0;PD2800,300,700,1900,3300,1900,1200,300;PM2;FP;FP1;"),
	small("rectangles", "IN;SP1;PA300,300;ER1000,800;SP2;RR800,600;SP3;PA2000,1200;RA3700,2700;SP1;EA3700,2700;"),
	small("hatch", "IN;SP1;FT3,100,45;PA300,300;RA1900,2700;FT4,150,30;PA2100,300;RA3700,2700;"),
	small("shading", "IN;SP2;FT10,25;PA200,300;RR800,2400;FT10,50;PA1100,300;RR800,2400;"+
		"FT10,75;PA2000,300;RR800,2400;FT10,100;PA2900,300;RR800,2400;"),
	small("circle_polygon", "IN;SP3;PA2000,1500;PM0;CI1200;PM1;CI600;PM2;FP;SP1;EP;"),
	small("pen_up_edge", "IN;SP2;PM0;PA500,500;PD;PA3500,500;PU;PA3500,2500;PD;PA500,2500;PM2;FP;SP1;EP;"),
	small("clipped_fill", "IN;SP1;IW1000,750,3000,2250;PA0,0;RA4000,3000;"),
}
