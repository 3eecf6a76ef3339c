// This file is part of GopherDW.
//
// GopherDW is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDW is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDW.  If not, see <https://www.gnu.org/licenses/>.

package debugwire

import (
	"fmt"
	"strings"
)

// Frame is a sequence of command bytes sent as one request. The zero value is
// an empty frame. The builder functions return the frame so that calls can be
// chained.
//
//	f := NewFrame().Context(CtxExecute).Execute(OpOut(dwdr, 16))
type Frame struct {
	b []byte
}

// NewFrame is the preferred method of initialisation for the Frame type. Any
// bytes are added to the frame as they are.
func NewFrame(b ...byte) *Frame {
	return &Frame{b: append([]byte{}, b...)}
}

// Byte adds bytes to the frame as they are.
func (f *Frame) Byte(b ...byte) *Frame {
	f.b = append(f.b, b...)
	return f
}

func (f *Frame) word(cmd byte, w uint16) *Frame {
	f.b = append(f.b, cmd, byte(w>>8), byte(w))
	return f
}

// Context adds a context byte.
func (f *Frame) Context(ctx byte) *Frame {
	f.b = append(f.b, ctx)
	return f
}

// PC sets the program counter. The value is a word address.
func (f *Frame) PC(w uint16) *Frame {
	return f.word(CmdWritePC, w)
}

// Breakpoint sets the breakpoint register. The value is a word address.
func (f *Frame) Breakpoint(w uint16) *Frame {
	return f.word(CmdWriteBreakpoint, w)
}

// Range sets the start and end of the range used by the repeat context. The
// end is exclusive.
func (f *Frame) Range(start uint16, end uint16) *Frame {
	return f.PC(start).Breakpoint(end)
}

// Instruction loads the instruction register without executing it.
func (f *Frame) Instruction(op uint16) *Frame {
	return f.word(CmdWriteInstruction, op)
}

// Execute loads the instruction register and executes it. The frame should
// already be in the CtxExecute context.
func (f *Frame) Execute(op uint16) *Frame {
	f.Instruction(op)
	f.b = append(f.b, CmdExecute)
	return f
}

// Template selects the instruction template for the repeat context.
func (f *Frame) Template(tmpl byte) *Frame {
	f.b = append(f.b, CmdTemplate, tmpl)
	return f
}

// Go starts the repeat context or continues execution, depending on context.
func (f *Frame) Go() *Frame {
	f.b = append(f.b, CmdGo)
	return f
}

// Bytes returns the frame as a byte slice.
func (f *Frame) Bytes() []byte {
	return f.b
}

// Len returns the number of bytes in the frame.
func (f *Frame) Len() int {
	return len(f.b)
}

func (f *Frame) String() string {
	s := strings.Builder{}
	for i, b := range f.b {
		if i > 0 {
			s.WriteRune(' ')
		}
		s.WriteString(fmt.Sprintf("%02X", b))
	}
	return s.String()
}
