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
	"errors"
	"testing"

	"github.com/jetsetilly/gopherdw/disassembly"
	"github.com/jetsetilly/gopherdw/test"
)

type flash map[uint16]uint16

func (f flash) FlashWord(addr uint16) (uint16, error) {
	return f[addr], nil
}

type target struct {
	regs  [32]uint8
	sram  map[uint16]uint8
	reads int
	err   error
}

func (t *target) ReadRegister(reg uint8) (uint8, error) {
	t.reads++
	return t.regs[reg], t.err
}

func (t *target) ReadSRAM(addr uint16) (uint8, error) {
	t.reads++
	return t.sram[addr], t.err
}

func TestListing(t *testing.T) {
	src := flash{
		0x0000: 0x940c, 0x0002: 0x0034,
		0x0004: 0x0000,
		0x0006: 0xef8f,
		0x0008: 0x9598,
	}

	w := &test.CompareWriter{}
	err := disassembly.Listing(w, src, 0x0000, 4)
	test.ExpectSuccess(t, err)

	// the second word of jmp is on a line of its own and counts as one of the
	// four words
	lines := w.Lines()
	test.DemandEquality(t, len(lines), 4)
	test.ExpectEquality(t, lines[0], "0000:   940C  jmp   0x000068")
	test.ExpectEquality(t, lines[1], "0002:   0034")
	test.ExpectEquality(t, lines[2], "0004:   0000  nop")
	test.ExpectEquality(t, lines[3], "0006:   EF8F  ldi   r24,0xFF")

	// a two word instruction in the final slot is shown in full
	w.Clear()
	err = disassembly.Listing(w, src, 0x0000, 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(w.Lines()), 2)
}

func TestAnnotate(t *testing.T) {
	tgt := &target{sram: map[uint16]uint8{0x5f: 0x82}}
	tgt.regs[0] = 0xbb
	tgt.regs[1] = 0xaa
	tgt.regs[2] = 0xdd
	tgt.regs[3] = 0xcc
	tgt.regs[24] = 0x12
	tgt.regs[26] = 0x34
	tgt.regs[27] = 0x01

	tests := []struct {
		opcode     uint16
		annotation string
	}{
		{0x918d, "12, 0134"},
		{0x938d, "0134, 12"},
		{0x0101, "AA:BB, CC:DD"},
		{0xef8f, "12"},
		{0xbe0f, "BB"},
		{0xf021, "I-----Z-"},
		{0x0000, ""},
	}

	for _, tt := range tests {
		s, err := disassembly.Annotate(disassembly.Decode(0, tt.opcode, 0), tgt)
		test.ExpectSuccess(t, err, tt.opcode)
		test.ExpectEquality(t, s, tt.annotation, tt.opcode)
	}
}

func TestLive(t *testing.T) {
	src := flash{0x0100: 0x918d}
	tgt := &target{}
	tgt.regs[24] = 0x12
	tgt.regs[26] = 0x34
	tgt.regs[27] = 0x01

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, disassembly.Live(w, src, tgt, 0x0100))
	test.ExpectEquality(t, w.String(), "0100:   918D  ld    r24,X+          ; 12, 0134\n")

	// listings never read from the target
	tgt.reads = 0
	test.ExpectSuccess(t, disassembly.Listing(w, src, 0x0100, 16))
	test.ExpectEquality(t, tgt.reads, 0)

	// a failed annotation still produces the line
	tgt.err = errors.New("no response")
	w.Clear()
	test.ExpectFailure(t, disassembly.Live(w, src, tgt, 0x0100))
	test.ExpectEquality(t, w.String(), "0100:   918D  ld    r24,X+\n")
}
