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
	"io"
	"strings"
)

// Source is the flash memory of the target.
type Source interface {
	// FlashWord returns the little-endian word at the byte address
	FlashWord(addr uint16) (uint16, error)
}

// Registers gives access to the registers and data space of the target. Only
// used for annotations.
type Registers interface {
	ReadRegister(reg uint8) (uint8, error)
	ReadSRAM(addr uint16) (uint8, error)
}

// Fetch decodes the instruction at the byte address. The word following the
// opcode is only read for a two word instruction.
func Fetch(src Source, addr uint16) (Entry, error) {
	opcode, err := src.FlashWord(addr)
	if err != nil {
		return Entry{}, err
	}

	var next uint16
	if TwoWord(opcode) {
		next, err = src.FlashWord(addr + 2)
		if err != nil {
			return Entry{}, err
		}
	}

	return Decode(addr, opcode, next), nil
}

// Listing writes the disassembly of count words of flash starting at the byte
// address. The second word of a two word instruction counts against the total.
//
// No annotations are made.
func Listing(w io.Writer, src Source, addr uint16, count int) error {
	for i := 0; i < count; i++ {
		e, err := Fetch(src, addr+uint16(i*2))
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, e.Format("")+"\n"); err != nil {
			return err
		}
		if e.Words == 2 {
			i++
		}
	}
	return nil
}

// Live writes the disassembly of the instruction at the byte address with an
// annotation showing the current values of the registers used by the
// instruction. If the annotation cannot be made the instruction is written
// without it and the error returned.
func Live(w io.Writer, src Source, regs Registers, addr uint16) error {
	e, err := Fetch(src, addr)
	if err != nil {
		return err
	}

	annotation, err := Annotate(e, regs)
	if err != nil {
		annotation = ""
	}

	if _, werr := io.WriteString(w, e.Format(annotation)+"\n"); werr != nil {
		return werr
	}
	return err
}

// address of SREG in the data space
const sregAddress = 0x5f

// Annotate returns the current value of the registers used by the
// instruction. Registers are formatted as hex and pointers as the
// four digit hex address they point to. Branch instructions are annotated with
// the flags of the status register.
func Annotate(e Entry, regs Registers) (string, error) {
	var s strings.Builder

	value := func(r Register) (string, error) {
		v, err := regs.ReadRegister(r.N)
		if err != nil {
			return "", err
		}
		if !r.Pair {
			return hex8(v), nil
		}
		h, err := regs.ReadRegister(r.N + 1)
		if err != nil {
			return "", err
		}
		return hex8(h) + ":" + hex8(v), nil
	}

	pointer := func(p Pointer) (string, error) {
		lo, err := regs.ReadRegister(p.Low())
		if err != nil {
			return "", err
		}
		hi, err := regs.ReadRegister(p.Low() + 1)
		if err != nil {
			return "", err
		}
		return hex8(hi) + hex8(lo), nil
	}

	var dst, src string
	var err error

	if e.DstPointer != PointerNone {
		dst, err = pointer(e.DstPointer)
	} else if e.Dst.Show {
		dst, err = value(e.Dst)
	}
	if err != nil {
		return "", err
	}

	if e.Src.Show {
		src, err = value(e.Src)
	} else if e.SrcPointer != PointerNone {
		src, err = pointer(e.SrcPointer)
	}
	if err != nil {
		return "", err
	}

	s.WriteString(dst)
	if dst != "" && src != "" {
		s.WriteString(", ")
	}
	s.WriteString(src)

	if e.Status {
		sreg, err := regs.ReadSRAM(sregAddress)
		if err != nil {
			return "", err
		}
		if s.Len() > 0 {
			s.WriteString("; ")
		}
		s.WriteString(Flags(sreg))
	}

	return s.String(), nil
}

// Flags returns the status register as a string of flags, with a dash for
// each flag that is clear.
func Flags(sreg uint8) string {
	const names = "ITHSVNZC"
	b := []byte(names)
	for i := range b {
		if sreg&(0x80>>i) == 0 {
			b[i] = '-'
		}
	}
	return string(b)
}

func hex8(v uint8) string {
	return fmt.Sprintf("%02X", v)
}
