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

// Command genref generates reference images for the renderer tests.
// For every test case it writes a PNG rendering and a PDF rendering to
// testdata/reference.  Run it from the module root after checking that
// the renderer output is correct.
package main

import (
	"fmt"
	"image/color"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/hpgl"
	"seehuhn.de/go/hpgl/canvas"
	"seehuhn.de/go/hpgl/testcases"
)

const refDir = "testdata/reference"

var white = color.RGBA{255, 255, 255, 255}

func main() {
	// Create output directory
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	// Process all test cases
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		if category == "large" {
			continue
		}
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pngPath := filepath.Join(refDir, name+".png")
			pdfPath := filepath.Join(refDir, name+".pdf")

			if err := renderPNG(tc, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func renderPNG(tc testcases.TestCase, pngPath string) error {
	opt := tc.Options()
	w, h := opt.CanvasSize()
	img := canvas.NewImage(w, h, white)
	r := hpgl.New(img, opt)
	if _, err := r.Write([]byte(tc.Input)); err != nil {
		return err
	}
	return canvas.WriteFile(pngPath, img.RGBA)
}

func renderPDF(tc testcases.TestCase, pdfPath string) error {
	opt := tc.Options()
	w, h := opt.CanvasSize()
	page, err := canvas.NewPDF(pdfPath, w, h, white)
	if err != nil {
		return err
	}
	r := hpgl.New(page, opt)
	if _, err := r.Write([]byte(tc.Input)); err != nil {
		page.Close()
		return err
	}
	return page.Close()
}
