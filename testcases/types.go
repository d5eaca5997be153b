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

// Package testcases contains HP-GL/2 plot streams for regression tests,
// benchmarks and the reference image generator.
package testcases

import "seehuhn.de/go/hpgl"

// TestCase defines a single rendering test.
type TestCase struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Input  string // the plotter commands
	Width  int    // device width in pixels
	Height int    // device height in pixels, 0 for the page aspect ratio

	// PageWidth and PageHeight give the plotter page size.  Zero values
	// select the renderer's default page.
	PageWidth, PageHeight float64
}

// Small test pages use a 4000×3000 plotter unit page (10×7.5cm) on a
// 200×150 pixel device.
const (
	smallPageW = 4000
	smallPageH = 3000
	smallW     = 201
	smallH     = 151
)

// small returns a test case on the small test page.
func small(name, input string) TestCase {
	return TestCase{
		Name:       name,
		Input:      input,
		Width:      smallW,
		Height:     smallH,
		PageWidth:  smallPageW,
		PageHeight: smallPageH,
	}
}

// Options returns the renderer options for tc.
func (tc TestCase) Options() *hpgl.Options {
	return &hpgl.Options{
		Width:      tc.Width,
		Height:     tc.Height,
		PageWidth:  tc.PageWidth,
		PageHeight: tc.PageHeight,
	}
}
