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

package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestFormatOf(t *testing.T) {
	cases := []struct {
		name string
		want Format
	}{
		{"a.png", FormatPNG},
		{"dir/B.PNG", FormatPNG},
		{"x.bmp", FormatBMP},
		{"x.tif", FormatTIFF},
		{"x.tiff", FormatTIFF},
		{"out.pdf", FormatPDF},
	}
	for _, tc := range cases {
		got, err := FormatOf(tc.name)
		if err != nil || got != tc.want {
			t.Errorf("FormatOf(%q) = %v, %v, want %v", tc.name, got, err, tc.want)
		}
	}

	if _, err := FormatOf("x.gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestEncode(t *testing.T) {
	img := NewImage(7, 5, white)
	img.FillRect(1, 1, 3, 3, black)

	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		FormatPNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		FormatBMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		FormatTIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}
	for f, decode := range decoders {
		t.Run(f.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := Encode(buf, img.RGBA, f); err != nil {
				t.Fatal(err)
			}
			got, err := decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			if got.Bounds().Dx() != 7 || got.Bounds().Dy() != 5 {
				t.Fatalf("decoded size %v", got.Bounds())
			}
			r, _, _, _ := got.At(2, 2).RGBA()
			if r != 0 {
				t.Errorf("pixel (2,2) red = %d, want 0", r)
			}
			r, _, _, _ = got.At(5, 4).RGBA()
			if r != 0xffff {
				t.Errorf("pixel (5,4) red = %d, want 0xffff", r)
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, img.RGBA, FormatPDF); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("PDF encoding: %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img := NewImage(3, 3, black)
	fname := filepath.Join(dir, "out.png")
	if err := WriteFile(fname, img.RGBA); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(fname); err != nil {
		t.Error(err)
	}
	if err := WriteFile(filepath.Join(dir, "out.jpg"), img.RGBA); err == nil {
		t.Error("missing error for unknown extension")
	}
}
