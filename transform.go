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

package hpgl

import (
	"image"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// The coordinate pipeline has four frames:
//
//   - user: the coordinates appearing in commands
//   - plotter: after SC scaling, in plotter units relative to the rotated frame
//   - page: plotter units on the physical page, after mount and RO rotation
//   - device: pixels, y growing downward, including the margin
//
// Each step has an inverse.

// quarter returns the total number of counter-clockwise quarter turns
// between the plotter frame and the page.
func (r *Renderer) quarter() int {
	return (r.opt.MountRotation + r.st.rotation) & 3
}

// frame returns the extent of the rotated plotter frame.
func (r *Renderer) frame() (w, h float64) {
	if r.quarter()%2 == 1 {
		return r.opt.PageHeight, r.opt.PageWidth
	}
	return r.opt.PageWidth, r.opt.PageHeight
}

func (r *Renderer) setDevice(width, height int) {
	r.devW, r.devH = float64(width), float64(height)
	r.kx = (r.devW - 1) / r.opt.PageWidth
	r.ky = (r.devH - 1) / r.opt.PageHeight
	r.penPx = -1
}

// pixelsPerUnit is the mean device scale, used for lengths.
func (r *Renderer) pixelsPerUnit() float64 {
	return (r.kx + r.ky) / 2
}

// updateScale derives the user to plotter mapping from SC, P1 and P2.
func (r *Renderer) updateScale() {
	s := &r.st.scale
	p1, p2 := r.st.p1, r.st.p2
	switch s.mode {
	case scaleAnisotropic, scaleIsotropic:
		if s.xMax == s.xMin || s.yMax == s.yMin {
			r.log.Debug("hpgl: degenerate scaling", "xmin", s.xMin, "xmax", s.xMax, "ymin", s.yMin, "ymax", s.yMax)
			s.mode = scaleNone
			return
		}
		s.kx = (p2.X - p1.X) / (s.xMax - s.xMin)
		s.ky = (p2.Y - p1.Y) / (s.yMax - s.yMin)
		s.ox = p1.X - s.xMin*s.kx
		s.oy = p1.Y - s.yMin*s.ky
		if s.mode == scaleIsotropic {
			k := min(math.Abs(s.kx), math.Abs(s.ky))
			kx := math.Copysign(k, s.kx)
			ky := math.Copysign(k, s.ky)
			slackX := (p2.X - p1.X) - kx*(s.xMax-s.xMin)
			slackY := (p2.Y - p1.Y) - ky*(s.yMax-s.yMin)
			s.kx, s.ky = kx, ky
			s.ox = p1.X + slackX*s.left/100 - s.xMin*kx
			s.oy = p1.Y + slackY*s.bottom/100 - s.yMin*ky
		}
	case scalePointFactor:
		if s.xMax == 0 || s.yMax == 0 {
			s.mode = scaleNone
			return
		}
		s.kx, s.ky = s.xMax, s.yMax
		s.ox = p1.X - s.xMin*s.kx
		s.oy = p1.Y - s.yMin*s.ky
	}
}

func (r *Renderer) userToPlotter(u vec.Vec2) vec.Vec2 {
	s := &r.st.scale
	if s.mode == scaleNone {
		return u
	}
	return vec.Vec2{X: u.X*s.kx + s.ox, Y: u.Y*s.ky + s.oy}
}

func (r *Renderer) plotterToUser(p vec.Vec2) vec.Vec2 {
	s := &r.st.scale
	if s.mode == scaleNone {
		return p
	}
	return vec.Vec2{X: (p.X - s.ox) / s.kx, Y: (p.Y - s.oy) / s.ky}
}

// plotterToPage applies the quarter turn as a one-axis remap against the
// page extents.
func (r *Renderer) plotterToPage(p vec.Vec2) vec.Vec2 {
	w, h := r.opt.PageWidth, r.opt.PageHeight
	switch r.quarter() {
	case 1:
		return vec.Vec2{X: w - p.Y, Y: p.X}
	case 2:
		return vec.Vec2{X: w - p.X, Y: h - p.Y}
	case 3:
		return vec.Vec2{X: p.Y, Y: h - p.X}
	}
	return p
}

func (r *Renderer) pageToPlotter(g vec.Vec2) vec.Vec2 {
	w, h := r.opt.PageWidth, r.opt.PageHeight
	switch r.quarter() {
	case 1:
		return vec.Vec2{X: g.Y, Y: w - g.X}
	case 2:
		return vec.Vec2{X: w - g.X, Y: h - g.Y}
	case 3:
		return vec.Vec2{X: h - g.Y, Y: g.X}
	}
	return g
}

func (r *Renderer) pageToDevice(g vec.Vec2) vec.Vec2 {
	x, y := g.X, g.Y
	if r.opt.FlipX {
		x = r.opt.PageWidth - x
	}
	if r.opt.FlipY {
		y = r.opt.PageHeight - y
	}
	m := float64(r.opt.Margin)
	return vec.Vec2{X: m + x*r.kx, Y: m + (r.opt.PageHeight-y)*r.ky}
}

func (r *Renderer) deviceToPage(d vec.Vec2) vec.Vec2 {
	m := float64(r.opt.Margin)
	x := (d.X - m) / r.kx
	y := r.opt.PageHeight - (d.Y-m)/r.ky
	if r.opt.FlipX {
		x = r.opt.PageWidth - x
	}
	if r.opt.FlipY {
		y = r.opt.PageHeight - y
	}
	return vec.Vec2{X: x, Y: y}
}

func (r *Renderer) plotterToDevice(p vec.Vec2) vec.Vec2 {
	return r.pageToDevice(r.plotterToPage(p))
}

// toDevice maps user coordinates to device pixels.
func (r *Renderer) toDevice(u vec.Vec2) vec.Vec2 {
	return r.pageToDevice(r.plotterToPage(r.userToPlotter(u)))
}

// fromDevice maps device pixels back to user coordinates.
func (r *Renderer) fromDevice(d vec.Vec2) vec.Vec2 {
	return r.plotterToUser(r.pageToPlotter(r.deviceToPage(d)))
}

// keepPen runs change, which may alter the coordinate pipeline, such that
// the pen stays at the same spot on the page.
func (r *Renderer) keepPen(change func()) {
	g := r.plotterToPage(r.userToPlotter(r.st.pen))
	change()
	r.st.pen = r.plotterToUser(r.pageToPlotter(g))
}

// deviceRect returns the full drawable area in device pixels.
func (r *Renderer) deviceRect() rect.Rect {
	m := float64(r.opt.Margin)
	return rect.Rect{LLx: m, LLy: m, URx: m + r.devW - 1, URy: m + r.devH - 1}
}

// updateClip derives the device clip rectangle and passes it on to the
// canvas.
func (r *Renderer) updateClip() {
	c := r.deviceRect()
	r.clipEmpty = false
	if r.st.window.set && !r.opt.IgnoreClipWindow {
		a := r.plotterToDevice(r.st.window.ll)
		b := r.plotterToDevice(r.st.window.ur)
		c.LLx = max(c.LLx, math.Ceil(min(a.X, b.X)))
		c.LLy = max(c.LLy, math.Ceil(min(a.Y, b.Y)))
		c.URx = min(c.URx, math.Floor(max(a.X, b.X)))
		c.URy = min(c.URy, math.Floor(max(a.Y, b.Y)))
		if c.LLx > c.URx || c.LLy > c.URy {
			r.clipEmpty = true
		}
	}
	r.clip = c
	if r.clipEmpty {
		r.canvas.SetClip(image.Rectangle{})
		return
	}
	r.canvas.SetClip(image.Rect(int(c.LLx), int(c.LLy), int(c.URx)+1, int(c.URy)+1))
}
