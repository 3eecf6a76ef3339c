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

package disassembly

import (
	"fmt"
	"strings"
)

// Pointer identifies one of the pointer registers.
type Pointer int

// List of valid Pointer values.
const (
	PointerNone Pointer = iota
	PointerX
	PointerY
	PointerZ
)

// Low returns the number of the register holding the low byte of the pointer.
// Returns 0 for PointerNone.
func (p Pointer) Low() uint8 {
	switch p {
	case PointerX:
		return 26
	case PointerY:
		return 28
	case PointerZ:
		return 30
	}
	return 0
}

func (p Pointer) String() string {
	switch p {
	case PointerX:
		return "X"
	case PointerY:
		return "Y"
	case PointerZ:
		return "Z"
	}
	return ""
}

// Register is a register operand of a decoded instruction.
type Register struct {
	N uint8

	// register is a pair. N is the low register of the pair
	Pair bool

	// the value of the register should be shown in an annotation
	Show bool
}

// Entry is a decoded instruction.
type Entry struct {
	Address uint16
	Opcode  uint16

	// the second word of a two word instruction
	Next uint16

	// size of instruction in words
	Words int

	// Operator is empty if the opcode was not recognised
	Operator string
	Operand  string

	// the byte address of a branch, relative jump or absolute jump. only valid
	// if HasTarget is true
	Target    uint32
	HasTarget bool

	Dst Register
	Src Register

	DstPointer Pointer
	SrcPointer Pointer

	// the status register is relevant to the instruction
	Status bool
}

// column positions of the disassembly fields
const (
	colOpcode     = 8
	colOperator   = 14
	colOperand    = 20
	colAnnotation = 36
)

type line struct {
	strings.Builder
}

// tab pads to the column
func (l *line) tab(col int) {
	for l.Len() < col {
		l.WriteByte(' ')
	}
}

// gap pads to the column but always leaves at least one space
func (l *line) gap(col int) {
	if l.Len() >= col {
		l.WriteByte(' ')
		return
	}
	l.tab(col)
}

func (e Entry) first() *line {
	l := &line{}
	l.WriteString(fmt.Sprintf("%04X:", e.Address))
	l.tab(colOpcode)
	l.WriteString(fmt.Sprintf("%04X", e.Opcode))
	if e.Operator == "" {
		return l
	}
	l.tab(colOperator)
	l.WriteString(e.Operator)
	if e.Operand != "" {
		l.gap(colOperand)
		l.WriteString(e.Operand)
	}
	return l
}

// second returns the line showing the second word of a two word instruction.
func (e Entry) second() string {
	l := &line{}
	l.WriteString(fmt.Sprintf("%04X:", e.Address+2))
	l.tab(colOpcode)
	l.WriteString(fmt.Sprintf("%04X", e.Next))
	return l.String()
}

// String returns the first line of the disassembly.
func (e Entry) String() string {
	return e.first().String()
}

// Format returns the disassembly of the instruction. A two word instruction is
// formatted as two lines. The annotation is placed on the first line if it is
// not empty.
func (e Entry) Format(annotation string) string {
	l := e.first()
	if annotation != "" {
		l.gap(colAnnotation)
		l.WriteString("; ")
		l.WriteString(annotation)
	}
	if e.Words == 2 {
		l.WriteByte('\n')
		l.WriteString(e.second())
	}
	return l.String()
}
