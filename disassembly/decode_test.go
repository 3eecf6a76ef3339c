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

package disassembly_test

import (
	"testing"

	"github.com/jetsetilly/gopherdw/disassembly"
	"github.com/jetsetilly/gopherdw/test"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode   uint16
		next     uint16
		operator string
		operand  string
	}{
		{0x0000, 0, "nop", ""},
		{0x9598, 0, "break", ""},
		{0x9508, 0, "ret", ""},
		{0x9518, 0, "reti", ""},
		{0x9588, 0, "sleep", ""},
		{0x95a8, 0, "wdr", ""},
		{0x9409, 0, "ijmp", ""},
		{0x9478, 0, "sei", ""},
		{0x94f8, 0, "cli", ""},
		{0x95c8, 0, "lpm", ""},

		{0x925f, 0, "push", "r5"},
		{0x918f, 0, "pop", "r24"},
		{0x9503, 0, "inc", "r16"},
		{0x950a, 0, "dec", "r16"},
		{0x9410, 0, "com", "r1"},
		{0x9402, 0, "swap", "r0"},

		{0x938d, 0, "st", "X+,r24"},
		{0x920a, 0, "st", "-Y,r0"},
		{0x8270, 0, "st", "Z,r7"},
		{0x9234, 0, "xch", "Z,r3"},

		{0x0c12, 0, "add", "r1,r2"},
		{0x2f0f, 0, "mov", "r16,r31"},
		{0x1789, 0, "cp", "r24,r25"},
		{0x2411, 0, "eor", "r1,r1"},
		{0x9c23, 0, "mul", "r2,r3"},

		{0xf835, 0, "bld", "r3,5"},
		{0xfa00, 0, "bst", "r0,0"},
		{0xfd07, 0, "sbrc", "r16,7"},

		{0x818d, 0, "ldd", "r24,Y+5"},
		{0xac27, 0, "ldd", "r2,Z+63"},
		{0x8188, 0, "ld", "r24,Y"},
		{0x838d, 0, "std", "Y+5,r24"},
		{0x8201, 0, "std", "Z+1,r0"},

		{0x918d, 0, "ld", "r24,X+"},
		{0x9005, 0, "lpm", "r0,Z+"},
		{0x9016, 0, "elpm", "r1,Z"},
		{0x9052, 0, "ld", "r5,-Z"},

		{0xb78f, 0, "in", "r24,0x3F"},
		{0xbe0f, 0, "out", "0x3F,r0"},

		{0xef8f, 0, "ldi", "r24,0xFF"},
		{0x3100, 0, "cpi", "r16,0x10"},
		{0x58e0, 0, "subi", "r30,0x80"},
		{0x701f, 0, "andi", "r17,0x0F"},

		{0x9a2b, 0, "sbi", "0x05,3"},
		{0x98c0, 0, "cbi", "0x18,0"},
		{0x99b2, 0, "sbic", "0x16,2"},

		{0x9601, 0, "adiw", "r25:r24,0x01"},
		{0x97ff, 0, "sbiw", "r31:r30,0x3F"},

		{0x0312, 0, "mulsu", "r17,r18"},
		{0x030f, 0, "fmul", "r16,r23"},
		{0x03ff, 0, "fmulsu", "r23,r23"},
		{0x0101, 0, "movw", "r1:r0,r3:r2"},
		{0x01cf, 0, "movw", "r25:r24,r31:r30"},
		{0x0254, 0, "muls", "r21,r20"},

		{0x9180, 0x0100, "lds", "r24,0x0100"},
		{0x9380, 0x0100, "sts", "0x0100,r24"},
		{0x940c, 0x0034, "jmp", "0x000068"},
		{0x940e, 0x1fff, "call", "0x003FFE"},
		{0x940d, 0x0000, "jmp", "0x020000"},

		{0xffff, 0, "", ""},
	}

	for _, tt := range tests {
		e := disassembly.Decode(0x0000, tt.opcode, tt.next)
		test.ExpectEquality(t, e.Operator, tt.operator, tt.opcode)
		test.ExpectEquality(t, e.Operand, tt.operand, tt.opcode)
	}
}

func TestBranchTarget(t *testing.T) {
	tests := []struct {
		addr   uint16
		opcode uint16
		target uint32
	}{
		// breq +4
		{0x0100, 0xf021, 0x010a},
		// breq -3
		{0x0100, 0xf3e9, 0x00fc},
		// brne -1 is a loop on itself
		{0x0200, 0xf7f9, 0x0200},
		// brcs +0
		{0x0300, 0xf000, 0x0302},
		// rjmp -1
		{0x0100, 0xcfff, 0x0100},
		// rcall +16
		{0x0000, 0xd010, 0x0022},
	}

	for _, tt := range tests {
		e := disassembly.Decode(tt.addr, tt.opcode, 0)
		test.ExpectSuccess(t, e.HasTarget, tt.opcode)
		test.ExpectEquality(t, e.Target, tt.target, tt.opcode)
		test.ExpectEquality(t, e.Words, 1, tt.opcode)
	}

	e := disassembly.Decode(0x0100, 0xf021, 0)
	test.ExpectEquality(t, e.Operand, "010A")
	test.ExpectSuccess(t, e.Status)
}

func TestTwoWord(t *testing.T) {
	for _, op := range []uint16{0x9180, 0x9380, 0x940c, 0x940e, 0x95fd} {
		test.ExpectSuccess(t, disassembly.TwoWord(op), op)
		test.ExpectEquality(t, disassembly.Decode(0, op, 0).Words, 2, op)
	}
	for _, op := range []uint16{0x918f, 0x9409, 0x0000, 0x9508} {
		test.ExpectFailure(t, disassembly.TwoWord(op), op)
		test.ExpectEquality(t, disassembly.Decode(0, op, 0).Words, 1, op)
	}
}

func TestFormat(t *testing.T) {
	test.ExpectEquality(t, disassembly.Decode(0x0100, 0x0000, 0).String(), "0100:   0000  nop")
	test.ExpectEquality(t, disassembly.Decode(0x0000, 0xef8f, 0).String(), "0000:   EF8F  ldi   r24,0xFF")
	test.ExpectEquality(t, disassembly.Decode(0x0000, 0x03ff, 0).String(), "0000:   03FF  fmulsu r23,r23")
	test.ExpectEquality(t, disassembly.Decode(0x0000, 0xffff, 0).String(), "0000:   FFFF")

	e := disassembly.Decode(0x0000, 0x940c, 0x0034)
	test.ExpectEquality(t, e.Format(""), "0000:   940C  jmp   0x000068\n0002:   0034")

	e = disassembly.Decode(0x0000, 0xef8f, 0)
	test.ExpectEquality(t, e.Format("FF"), "0000:   EF8F  ldi   r24,0xFF        ; FF")
}
