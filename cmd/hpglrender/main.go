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

// Command hpglrender converts HP-GL/2 plot files into images.
//
// Usage:
//
//	hpglrender [flags] input.plt...
//
// All inputs are rendered onto the same page, in the order given.  The
// output format is chosen by the extension of the -o argument: .png, .bmp,
// .tif, .tiff or .pdf.  The input name "-" reads from standard input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"seehuhn.de/go/hpgl"
	"seehuhn.de/go/hpgl/canvas"
	"seehuhn.de/go/hpgl/internal/config"
)

func main() {
	err := run(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "hpglrender:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("hpglrender", flag.ContinueOnError)
	out := flags.String("o", "out.png", "output `file` (.png, .bmp, .tif, .pdf)")
	cfgFile := flags.String("config", "", "YAML configuration `file`")
	width := flags.Int("width", 0, "device width in pixels")
	height := flags.Int("height", 0, "device height in pixels (0 keeps the page aspect)")
	aa := flags.Bool("aa", false, "anti-alias thin lines")
	rotate := flags.Int("rotate", 0, "mount rotation in degrees")
	showProgress := flags.Bool("progress", false, "show a progress bar")
	verbose := flags.Bool("v", false, "log debug messages")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: hpglrender [flags] input.plt...")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("no input files")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if *cfgFile != "" {
		var err error
		cfg, err = config.Load(*cfgFile)
		if err != nil {
			return err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "aa":
			cfg.Antialias = *aa
		case "rotate":
			cfg.Rotation = *rotate
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := canvas.FormatOf(*out)
	if err != nil {
		return err
	}

	opt := cfg.Options(logger)
	w, h := opt.CanvasSize()
	if format == canvas.FormatPDF {
		c, err := canvas.NewPDF(*out, w, h, opt.Background)
		if err != nil {
			return err
		}
		if err := renderAll(hpgl.New(c, opt), flags.Args(), *showProgress, logger); err != nil {
			c.Close()
			return err
		}
		return c.Close()
	}

	c := canvas.NewImage(w, h, opt.Background)
	if err := renderAll(hpgl.New(c, opt), flags.Args(), *showProgress, logger); err != nil {
		return err
	}
	if err := canvas.WriteFile(*out, c.RGBA); err != nil {
		return err
	}
	logger.Info("image written", "file", *out, "format", format, "width", w, "height", h)
	return nil
}

func renderAll(r *hpgl.Renderer, inputs []string, showProgress bool, logger *slog.Logger) error {
	for _, fname := range inputs {
		n, err := renderFile(r, fname, showProgress)
		if err != nil {
			return err
		}
		x, y, _ := r.Pen()
		logger.Debug("input rendered", "file", fname, "bytes", n, "mode", r.Mode(), "pen_x", x, "pen_y", y)
	}
	return nil
}

// renderFile feeds one input file to the renderer.  Renderer state carries
// over between files.
func renderFile(r *hpgl.Renderer, fname string, showProgress bool) (int64, error) {
	var src io.Reader = os.Stdin
	size := int64(-1)
	if fname != "-" {
		f, err := os.Open(fname)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		src = f
	}

	if !showProgress {
		return r.ReadFrom(src)
	}
	bar := progressbar.DefaultBytes(size, "rendering "+filepath.Base(fname))
	defer bar.Close()
	n, err := io.Copy(io.MultiWriter(r, bar), src)
	if err != nil {
		return n, fmt.Errorf("reading %s: %w", fname, err)
	}
	return n, nil
}
