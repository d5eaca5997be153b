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
	"math"
)

// builtinPatterns gives the paint and skip runs of the fixed line types,
// in percent of the pattern length.  Line type 0 plots a dot at the end of
// each vector and line type 1 is solid.
var builtinPatterns = [9][]float64{
	2: {50, 50},
	3: {70, 30},
	4: {80, 10, 0, 10},
	5: {70, 10, 10, 10},
	6: {50, 10, 10, 10, 10, 10},
	7: {70, 10, 0, 10, 0, 10},
	8: {50, 10, 0, 10, 10, 10, 0, 10},
}

// patternStepper walks through a line pattern one pixel at a time.
// The runs alternate between paint and skip, starting with paint.
type patternStepper struct {
	runs  []int
	total int

	idx  int // current run
	left int // pixels left in the current run
	pos  int // position within the pattern, in [0, total)
}

// reset installs a new pattern and restarts it.  A nil pattern is solid.
func (s *patternStepper) reset(runs []int) {
	s.runs = runs
	s.total = 0
	for _, n := range runs {
		s.total += n
	}
	s.idx, s.pos = 0, 0
	s.left = 0
	if len(runs) > 0 {
		s.left = runs[0]
	}
}

func (s *patternStepper) active() bool {
	return len(s.runs) > 0
}

// step consumes one pixel and reports whether it is painted.
func (s *patternStepper) step() bool {
	paint := s.idx%2 == 0
	s.left--
	s.pos++
	if s.left == 0 {
		s.idx++
		if s.idx == len(s.runs) {
			s.idx = 0
		}
		s.left = s.runs[s.idx]
	}
	if s.pos == s.total {
		s.pos = 0
	}
	return paint
}

// patternRuns returns the run lengths in pixels for the active line type,
// or nil for solid lines.
func (r *Renderer) patternRuns() []int {
	st := &r.st
	n := st.lineType
	if n < 1 || n >= len(builtinPatterns) {
		return nil
	}
	pct := builtinPatterns[n]
	if st.userPatterns[n] != nil {
		pct = st.userPatterns[n]
	}
	if pct == nil {
		return nil
	}
	return r.scaleRuns(pct)
}

func (r *Renderer) scaleRuns(pct []float64) []int {
	var length float64
	if r.st.patternAbs {
		length = r.st.patternLen * unitsPerMM * r.pixelsPerUnit()
	} else {
		length = r.st.patternLen / 100 * math.Hypot(r.devW, r.devH)
	}
	runs := make([]int, len(pct))
	for i, p := range pct {
		runs[i] = max(1, int(math.Round(p/100*length)))
	}
	return runs
}

// selectLineType restarts the pattern for the current line type.
func (r *Renderer) selectLineType() {
	r.pat.reset(r.patternRuns())
}

// setLineType implements LT.
func (r *Renderer) setLineType(args []float64) {
	st := &r.st
	if len(args) == 0 {
		st.lineType = 1
		r.selectLineType()
		return
	}
	n := int(math.Abs(args[0]))
	if n >= len(builtinPatterns) {
		r.log.Debug("hpgl: unsupported line type", "type", args[0])
		return
	}
	st.lineType = n
	if len(args) > 1 && args[1] > 0 {
		st.patternLen = args[1]
	}
	if len(args) > 2 {
		st.patternAbs = args[2] == 1
	}
	r.selectLineType()
}

// defineLineType implements UL.  The gaps are normalised to percentages.
func (r *Renderer) defineLineType(args []float64) {
	st := &r.st
	if len(args) == 0 {
		st.userPatterns = [9][]float64{}
		r.selectLineType()
		return
	}
	n := int(math.Abs(args[0]))
	if n < 1 || n >= len(st.userPatterns) {
		return
	}
	gaps := args[1:]
	var sum float64
	for _, g := range gaps {
		if g < 0 {
			r.log.Debug("hpgl: negative UL gap", "index", n)
			return
		}
		sum += g
	}
	if len(gaps) == 0 || sum == 0 {
		st.userPatterns[n] = nil
	} else {
		pct := make([]float64, len(gaps))
		for i, g := range gaps {
			pct[i] = g / sum * 100
		}
		st.userPatterns[n] = pct
	}
	if n == st.lineType {
		r.selectLineType()
	}
}
