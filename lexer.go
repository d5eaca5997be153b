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
	"strconv"
)

const esc = 0x1b

// maxNumberLen limits the length of a numeric token.  Longer tokens are
// treated as garbage.
const maxNumberLen = 64

type lexState uint8

const (
	lexCmd1 lexState = iota // awaiting the first letter of a mnemonic
	lexCmd2                 // awaiting the second letter
	lexArgs
	lexLabel
	lexLineComment
	lexBlockComment
	lexQuoted // CO"..."
	lexResync
	lexTerminator // DT: the terminator byte
	lexSymbol     // SM: the symbol byte
	lexEncoded    // PE
	lexEscape     // escape sequence, handled by the PCL parser
)

type lexer struct {
	state lexState
	ret   lexState // state to resume after a comment

	first byte // first letter of the mnemonic

	num    []byte
	dot    bool
	digits bool

	slash  bool // a '/' which may open a comment
	depth  int  // block comment nesting
	prev   byte
	quoted bool // CO: inside the quotes
}

// lexByte advances the HP-GL/2 state machine by one byte.
func (r *Renderer) lexByte(b byte) {
	lx := &r.lx
	prev := lx.prev
	lx.prev = b

	switch lx.state {
	case lexLabel:
		if r.labelByte(b) {
			r.endCommand()
			lx.state = lexCmd1
		}
		return
	case lexLineComment:
		if b == '\n' || b == '\r' {
			lx.state = lx.ret
		}
		return
	case lexBlockComment:
		switch {
		case prev == '/' && b == '*':
			lx.depth++
			lx.prev = 0
		case prev == '*' && b == '/':
			lx.depth--
			lx.prev = 0
			if lx.depth <= 0 {
				lx.state = lx.ret
			}
		}
		return
	case lexQuoted:
		if lx.quoted {
			if b == '"' {
				lx.quoted = false
				lx.state = lexArgs
			}
			return
		}
		switch {
		case b == '"':
			lx.quoted = true
			return
		case isSeparator(b):
			return
		}
		lx.state = lexArgs
	}

	if b == esc {
		r.flushNumber()
		r.endCommand()
		lx.slash = false
		lx.state = lexEscape
		r.pcl.begin()
		return
	}

	if lx.slash {
		lx.slash = false
		switch b {
		case '/':
			lx.state = lexLineComment
			return
		case '*':
			lx.depth = 1
			lx.prev = 0
			lx.state = lexBlockComment
			return
		}
		r.resync('/')
	}
	if b == '/' && (lx.state == lexCmd1 || lx.state == lexArgs || lx.state == lexResync) {
		r.flushNumber()
		lx.slash = true
		lx.ret = lx.state
		return
	}

	switch lx.state {
	case lexCmd1, lexResync:
		switch {
		case isLetter(b):
			lx.first = b
			lx.state = lexCmd2
		case b == ';' || isSeparator(b):
			lx.state = lexCmd1
		case lx.state == lexCmd1:
			r.resync(b)
		}

	case lexCmd2:
		if !isLetter(b) {
			r.resync(b)
			if b == ';' {
				lx.state = lexCmd1
			}
			return
		}
		lx.num = lx.num[:0]
		lx.dot, lx.digits = false, false
		lx.state = r.beginCommand(mnemonicOf(lx.first, b))

	case lexArgs:
		r.argByte(b)

	case lexTerminator:
		if b == ';' {
			r.st.term = etx
			r.endCommand()
			lx.state = lexCmd1
			return
		}
		r.st.term = b
		lx.state = lexArgs

	case lexSymbol:
		if b == ';' {
			r.st.symbol = 0
			r.endCommand()
			lx.state = lexCmd1
			return
		}
		r.st.symbol = 0
		if b > ' ' && b < 0x7f {
			r.st.symbol = b
		}
		lx.state = lexArgs

	case lexEncoded:
		if b == ';' {
			r.endCommand()
			lx.state = lexCmd1
			return
		}
		r.encodedByte(b)

	case lexEscape:
		switch r.escByte(b) {
		case escDone:
			lx.state = lexCmd1
		case escReuse:
			lx.state = lexCmd1
			r.feed(b)
		}
	}
}

// argByte handles a byte inside the parameter list of a command.
func (r *Renderer) argByte(b byte) {
	lx := &r.lx
	switch {
	case b >= '0' && b <= '9':
		lx.num = append(lx.num, b)
		lx.digits = true
	case b == '.':
		if lx.dot {
			r.resync(b)
			return
		}
		lx.dot = true
		lx.num = append(lx.num, b)
	case b == '+' || b == '-':
		r.flushNumber()
		lx.num = append(lx.num, b)
	case isSeparator(b):
		r.flushNumber()
	case b == ';':
		r.flushNumber()
		r.endCommand()
		lx.state = lexCmd1
	case isLetter(b):
		r.flushNumber()
		r.endCommand()
		lx.first = b
		lx.state = lexCmd2
	default:
		r.resync(b)
		return
	}
	if len(lx.num) > maxNumberLen {
		r.resync(b)
	}
}

// flushNumber passes a completed numeric token to the dispatcher.
func (r *Renderer) flushNumber() {
	lx := &r.lx
	if len(lx.num) == 0 {
		return
	}
	tok, ok := lx.num, lx.digits
	lx.num = lx.num[:0]
	lx.dot, lx.digits = false, false
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		r.log.Debug("hpgl: bad number", "token", string(tok))
		return
	}
	r.number(v)
}

// resync abandons the current command and drops input up to the next
// command boundary.
func (r *Renderer) resync(b byte) {
	lx := &r.lx
	r.log.Debug("hpgl: unexpected byte, resynchronising", "byte", b)
	lx.num = lx.num[:0]
	lx.dot, lx.digits = false, false
	r.gl.cmd = nil
	lx.state = lexResync
}

func isLetter(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

func isSeparator(b byte) bool {
	return b == ',' || b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func toUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
