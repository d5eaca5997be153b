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

// Package config reads render settings from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/hpgl"
)

// maxFileSize bounds the size of a configuration file.
const maxFileSize = 1 << 20

// Config holds the render settings.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Margin int `yaml:"margin"`

	Page Page `yaml:"page"`

	// Rotation is the mount rotation in degrees, a multiple of 90.
	Rotation int `yaml:"rotation"`

	FlipX            bool `yaml:"flip_x"`
	FlipY            bool `yaml:"flip_y"`
	Antialias        bool `yaml:"antialias"`
	IgnoreClipWindow bool `yaml:"ignore_clip_window"`

	Background Color   `yaml:"background"`
	Pens       []Color `yaml:"pens"`
}

// Page gives the plotter hard clip limits in plotter units.
type Page struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Color is an RGB color written as "#rrggbb".
type Color color.RGBA

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the built-in settings.
func Default() *Config {
	c := &Config{
		Width:      1024,
		Page:       Page{Width: hpgl.DefaultPageWidth, Height: hpgl.DefaultPageHeight},
		Background: Color{255, 255, 255, 255},
	}
	for _, p := range hpgl.DefaultPens {
		c.Pens = append(c.Pens, Color(p))
	}
	return c
}

// Load reads the configuration file fname.  Settings missing from the file
// keep their default values.
func Load(fname string) (*Config, error) {
	info, err := os.Stat(fname)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config: %q is too large (%d bytes)", fname, info.Size())
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", fname, err)
	}
	return c, nil
}

// Parse decodes a YAML document on top of the default settings and
// validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d", ErrInvalid, c.Width)
	case c.Height < 0:
		return fmt.Errorf("%w: height %d", ErrInvalid, c.Height)
	case c.Margin < 0:
		return fmt.Errorf("%w: margin %d", ErrInvalid, c.Margin)
	case c.Page.Width <= 0 || c.Page.Height <= 0:
		return fmt.Errorf("%w: page size %gx%g", ErrInvalid, c.Page.Width, c.Page.Height)
	case c.Rotation%90 != 0:
		return fmt.Errorf("%w: rotation %d is not a multiple of 90", ErrInvalid, c.Rotation)
	case len(c.Pens) > 8:
		return fmt.Errorf("%w: %d pens given, at most 8 allowed", ErrInvalid, len(c.Pens))
	}
	return nil
}

// Options converts the settings to renderer options.  Pens not listed in
// the configuration keep their default colors.
func (c *Config) Options(logger *slog.Logger) *hpgl.Options {
	opt := &hpgl.Options{
		Width:            c.Width,
		Height:           c.Height,
		Margin:           c.Margin,
		PageWidth:        c.Page.Width,
		PageHeight:       c.Page.Height,
		MountRotation:    c.Rotation / 90,
		FlipX:            c.FlipX,
		FlipY:            c.FlipY,
		Antialias:        c.Antialias,
		IgnoreClipWindow: c.IgnoreClipWindow,
		Background:       color.RGBA(c.Background),
		Pens:             hpgl.DefaultPens,
		Logger:           logger,
	}
	for i, p := range c.Pens {
		opt.Pens[i] = color.RGBA(p)
	}
	return opt
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	col, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = col
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses a color of the form "#rrggbb".
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}
