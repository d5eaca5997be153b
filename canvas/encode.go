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
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format identifies an output file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatBMP
	FormatTIFF
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatBMP:
		return "BMP"
	case FormatTIFF:
		return "TIFF"
	case FormatPDF:
		return "PDF"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ErrUnknownFormat is returned for file names with an unsupported
// extension.
var ErrUnknownFormat = errors.New("unknown output format")

// FormatOf determines the output format from the extension of fname.
func FormatOf(fname string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return FormatUnknown, fmt.Errorf("%q: %w", fname, ErrUnknownFormat)
}

// Encode writes img to w.  Only bitmap formats are supported.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("encoding %s: %w", f, ErrUnknownFormat)
}

// WriteFile stores img in the file fname, choosing the format from the
// file name extension.
func WriteFile(fname string, img image.Image) (err error) {
	f, err := FormatOf(fname)
	if err != nil {
		return err
	}
	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Encode(out, img, f); err != nil {
		return fmt.Errorf("writing %q: %w", fname, err)
	}
	return nil
}
