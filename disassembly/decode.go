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

import "fmt"

// form describes how the operands of an instruction are encoded.
type form int

const (
	formNone form = iota
	formLds
	formSts
	formAbsolute
	formReg
	formStore
	formBranch
	formArith
	formBitReg
	formLdd
	formStd
	formLoad
	formRelative
	formIn
	formOut
	formByteImm
	formSREGBit
	formIOBit
	formWordImm
	formMul
	formMovw
	formMuls
)

type pattern struct {
	// bits of the opcode that identify the instruction
	mask  uint16
	value uint16

	operator string
	form     form

	// addressing mode of pointer forms
	ptr  Pointer
	mode string
}

// patterns are in order of precedence. the first match is used.
var patterns []pattern

func init() {
	add := func(operands uint16, f form, list ...pattern) {
		for _, p := range list {
			p.mask = ^operands
			p.form = f
			patterns = append(patterns, p)
		}
	}

	// two word instructions
	add(0x01f0, formLds, pattern{value: 0x9000, operator: "lds"})
	add(0x01f0, formSts, pattern{value: 0x9200, operator: "sts"})
	add(0x01f1, formAbsolute,
		pattern{value: 0x940c, operator: "jmp"},
		pattern{value: 0x940e, operator: "call"},
	)

	add(0x0000, formNone,
		pattern{value: 0x9598, operator: "break"},
		pattern{value: 0x9488, operator: "clc"},
		pattern{value: 0x94d8, operator: "clh"},
		pattern{value: 0x94f8, operator: "cli"},
		pattern{value: 0x94a8, operator: "cln"},
		pattern{value: 0x94c8, operator: "cls"},
		pattern{value: 0x94e8, operator: "clt"},
		pattern{value: 0x94b8, operator: "clv"},
		pattern{value: 0x9498, operator: "clz"},
		pattern{value: 0x9519, operator: "eicall"},
		pattern{value: 0x9419, operator: "eijmp"},
		pattern{value: 0x95d8, operator: "elpm"},
		pattern{value: 0x9509, operator: "icall"},
		pattern{value: 0x9409, operator: "ijmp"},
		pattern{value: 0x95c8, operator: "lpm"},
		pattern{value: 0x0000, operator: "nop"},
		pattern{value: 0x9508, operator: "ret"},
		pattern{value: 0x9518, operator: "reti"},
		pattern{value: 0x9408, operator: "sec"},
		pattern{value: 0x9458, operator: "seh"},
		pattern{value: 0x9478, operator: "sei"},
		pattern{value: 0x9428, operator: "sen"},
		pattern{value: 0x9448, operator: "ses"},
		pattern{value: 0x9468, operator: "set"},
		pattern{value: 0x9438, operator: "sev"},
		pattern{value: 0x9418, operator: "sez"},
		pattern{value: 0x9588, operator: "sleep"},
		pattern{value: 0x95e8, operator: "spm"},
		pattern{value: 0x95f8, operator: "spm"},
		pattern{value: 0x95a8, operator: "wdr"},
	)

	add(0x01f0, formReg,
		pattern{value: 0x900f, operator: "pop"},
		pattern{value: 0x920f, operator: "push"},
		pattern{value: 0x9400, operator: "com"},
		pattern{value: 0x9401, operator: "neg"},
		pattern{value: 0x9402, operator: "swap"},
		pattern{value: 0x9403, operator: "inc"},
		pattern{value: 0x9405, operator: "asr"},
		pattern{value: 0x9406, operator: "lsr"},
		pattern{value: 0x9407, operator: "ror"},
		pattern{value: 0x940a, operator: "dec"},
	)

	// the st Y and st Z forms also catch std with a zero displacement
	add(0x01f0, formStore,
		pattern{value: 0x9204, operator: "xch", ptr: PointerZ, mode: "Z"},
		pattern{value: 0x9205, operator: "las", ptr: PointerZ, mode: "Z"},
		pattern{value: 0x9206, operator: "lac", ptr: PointerZ, mode: "Z"},
		pattern{value: 0x9207, operator: "lat", ptr: PointerZ, mode: "Z"},
		pattern{value: 0x920c, operator: "st", ptr: PointerX, mode: "X"},
		pattern{value: 0x920d, operator: "st", ptr: PointerX, mode: "X+"},
		pattern{value: 0x920e, operator: "st", ptr: PointerX, mode: "-X"},
		pattern{value: 0x8208, operator: "st", ptr: PointerY, mode: "Y"},
		pattern{value: 0x9209, operator: "st", ptr: PointerY, mode: "Y+"},
		pattern{value: 0x920a, operator: "st", ptr: PointerY, mode: "-Y"},
		pattern{value: 0x8200, operator: "st", ptr: PointerZ, mode: "Z"},
		pattern{value: 0x9201, operator: "st", ptr: PointerZ, mode: "Z+"},
		pattern{value: 0x9202, operator: "st", ptr: PointerZ, mode: "-Z"},
	)

	add(0x03f8, formBranch,
		pattern{value: 0xf000, operator: "brcs"},
		pattern{value: 0xf001, operator: "breq"},
		pattern{value: 0xf002, operator: "brmi"},
		pattern{value: 0xf003, operator: "brvs"},
		pattern{value: 0xf004, operator: "brlt"},
		pattern{value: 0xf005, operator: "brhs"},
		pattern{value: 0xf006, operator: "brts"},
		pattern{value: 0xf007, operator: "brie"},
		pattern{value: 0xf400, operator: "brcc"},
		pattern{value: 0xf401, operator: "brne"},
		pattern{value: 0xf402, operator: "brpl"},
		pattern{value: 0xf403, operator: "brvc"},
		pattern{value: 0xf404, operator: "brge"},
		pattern{value: 0xf405, operator: "brhc"},
		pattern{value: 0xf406, operator: "brtc"},
		pattern{value: 0xf407, operator: "brid"},
	)

	add(0x03ff, formArith,
		pattern{value: 0x1c00, operator: "adc"},
		pattern{value: 0x0c00, operator: "add"},
		pattern{value: 0x2000, operator: "and"},
		pattern{value: 0x1400, operator: "cp"},
		pattern{value: 0x0400, operator: "cpc"},
		pattern{value: 0x1000, operator: "cpse"},
		pattern{value: 0x2400, operator: "eor"},
		pattern{value: 0x2c00, operator: "mov"},
		pattern{value: 0x9c00, operator: "mul"},
		pattern{value: 0x2800, operator: "or"},
		pattern{value: 0x0800, operator: "sbc"},
		pattern{value: 0x1800, operator: "sub"},
	)

	add(0x01f7, formBitReg,
		pattern{value: 0xf800, operator: "bld"},
		pattern{value: 0xfa00, operator: "bst"},
		pattern{value: 0xfc00, operator: "sbrc"},
		pattern{value: 0xfe00, operator: "sbrs"},
	)

	// ldd with a zero displacement is shown as ld
	add(0x2df7, formLdd,
		pattern{value: 0x8008, operator: "ldd", ptr: PointerY, mode: "Y"},
		pattern{value: 0x8000, operator: "ldd", ptr: PointerZ, mode: "Z"},
	)
	add(0x2df7, formStd,
		pattern{value: 0x8208, operator: "std", ptr: PointerY, mode: "Y"},
		pattern{value: 0x8200, operator: "std", ptr: PointerZ, mode: "Z"},
	)

	add(0x01f0, formLoad,
		pattern{value: 0x9004, operator: "lpm", ptr: PointerZ, mode: "Z"},
		pattern{value: 0x9005, operator: "lpm", ptr: PointerZ, mode: "Z+"},
		pattern{value: 0x9006, operator: "elpm", ptr: PointerZ, mode: "Z"},
		pattern{value: 0x9007, operator: "elpm", ptr: PointerZ, mode: "Z+"},
		pattern{value: 0x900c, operator: "ld", ptr: PointerX, mode: "X"},
		pattern{value: 0x900d, operator: "ld", ptr: PointerX, mode: "X+"},
		pattern{value: 0x900e, operator: "ld", ptr: PointerX, mode: "-X"},
		pattern{value: 0x9009, operator: "ld", ptr: PointerY, mode: "Y+"},
		pattern{value: 0x900a, operator: "ld", ptr: PointerY, mode: "-Y"},
		pattern{value: 0x9001, operator: "ld", ptr: PointerZ, mode: "Z+"},
		pattern{value: 0x9002, operator: "ld", ptr: PointerZ, mode: "-Z"},
	)

	add(0x0fff, formRelative,
		pattern{value: 0xd000, operator: "rcall"},
		pattern{value: 0xc000, operator: "rjmp"},
	)

	add(0x07ff, formIn, pattern{value: 0xb000, operator: "in"})
	add(0x07ff, formOut, pattern{value: 0xb800, operator: "out"})

	add(0x0fff, formByteImm,
		pattern{value: 0x3000, operator: "cpi"},
		pattern{value: 0x4000, operator: "sbci"},
		pattern{value: 0x5000, operator: "subi"},
		pattern{value: 0x6000, operator: "ori"},
		pattern{value: 0x7000, operator: "andi"},
		pattern{value: 0xe000, operator: "ldi"},
	)

	// every combination of bclr and bset also has a named form, so in
	// practice these are never reached
	add(0x0070, formSREGBit,
		pattern{value: 0x9488, operator: "bclr"},
		pattern{value: 0x9408, operator: "bset"},
	)

	add(0x00ff, formIOBit,
		pattern{value: 0x9800, operator: "cbi"},
		pattern{value: 0x9a00, operator: "sbi"},
		pattern{value: 0x9900, operator: "sbic"},
		pattern{value: 0x9b00, operator: "sbis"},
	)

	add(0x00ff, formWordImm,
		pattern{value: 0x9600, operator: "adiw"},
		pattern{value: 0x9700, operator: "sbiw"},
	)

	add(0x0077, formMul,
		pattern{value: 0x0300, operator: "mulsu"},
		pattern{value: 0x0308, operator: "fmul"},
		pattern{value: 0x0380, operator: "fmuls"},
		pattern{value: 0x0388, operator: "fmulsu"},
	)

	add(0x00ff, formMovw, pattern{value: 0x0100, operator: "movw"})
	add(0x00ff, formMuls, pattern{value: 0x0200, operator: "muls"})
}

// TwoWord returns true if the opcode is the first word of a two word
// instruction.
func TwoWord(opcode uint16) bool {
	return opcode&^0x01f0 == 0x9000 || opcode&^0x01f0 == 0x9200 || opcode&0xfe0c == 0x940c
}

func reg(n uint16) string {
	return fmt.Sprintf("r%d", n)
}

func pair(n uint16) string {
	return fmt.Sprintf("r%d:r%d", n+1, n)
}

// displacement of the ldd and std instructions
func displacement(opcode uint16) uint16 {
	return (opcode&0x2000)>>8 | (opcode&0x0c00)>>7 | opcode&0x0007
}

// address of the in and out instructions
func ioAddress(opcode uint16) uint16 {
	return (opcode&0x0600)>>5 | opcode&0x000f
}

// Decode the opcode at the byte address. The next argument is the word that
// follows the opcode in flash and is only used by two word instructions.
func Decode(addr uint16, opcode uint16, next uint16) Entry {
	e := Entry{
		Address: addr,
		Opcode:  opcode,
		Words:   1,
	}

	var p *pattern
	for i := range patterns {
		if opcode&patterns[i].mask == patterns[i].value {
			p = &patterns[i]
			break
		}
	}
	if p == nil {
		return e
	}

	e.Operator = p.operator

	d := (opcode & 0x01f0) >> 4

	switch p.form {
	case formNone:

	case formLds:
		e.Words = 2
		e.Next = next
		e.Dst = Register{N: uint8(d), Show: true}
		e.Operand = fmt.Sprintf("%s,0x%04X", reg(d), next)

	case formSts:
		e.Words = 2
		e.Next = next
		e.Src = Register{N: uint8(d), Show: true}
		e.Operand = fmt.Sprintf("0x%04X,%s", next, reg(d))

	case formAbsolute:
		e.Words = 2
		e.Next = next
		w := uint32(opcode&0x01f0)<<13 | uint32(opcode&0x0001)<<16 | uint32(next)
		e.Target = w * 2
		e.HasTarget = true
		e.Operand = fmt.Sprintf("0x%06X", e.Target)

	case formReg:
		e.Dst = Register{N: uint8(d), Show: true}
		e.Operand = reg(d)

	case formStore:
		e.DstPointer = p.ptr
		e.Src = Register{N: uint8(d), Show: true}
		e.Operand = fmt.Sprintf("%s,%s", p.mode, reg(d))

	case formBranch:
		k := int(int16(opcode<<6) >> 9)
		e.Target = uint32(uint16(int(addr) + (k+1)*2))
		e.HasTarget = true
		e.Status = true
		e.Operand = fmt.Sprintf("%04X", e.Target)

	case formArith:
		s := (opcode&0x0200)>>5 | opcode&0x000f
		e.Dst = Register{N: uint8(d), Show: true}
		e.Src = Register{N: uint8(s), Show: true}
		e.Operand = fmt.Sprintf("%s,%s", reg(d), reg(s))

	case formBitReg:
		e.Dst = Register{N: uint8(d), Show: true}
		e.Operand = fmt.Sprintf("%s,%d", reg(d), opcode&0x0007)

	case formLdd:
		q := displacement(opcode)
		e.Dst = Register{N: uint8(d), Show: true}
		e.SrcPointer = p.ptr
		if q == 0 {
			e.Operator = "ld"
			e.Operand = fmt.Sprintf("%s,%s", reg(d), p.mode)
		} else {
			e.Operand = fmt.Sprintf("%s,%s+%d", reg(d), p.mode, q)
		}

	case formStd:
		// the register of std is shown as the first annotation and the
		// pointer as the second
		q := displacement(opcode)
		e.Dst = Register{N: uint8(d), Show: true}
		e.SrcPointer = p.ptr
		e.Operand = fmt.Sprintf("%s+%d,%s", p.mode, q, reg(d))

	case formLoad:
		e.Dst = Register{N: uint8(d), Show: true}
		e.SrcPointer = p.ptr
		e.Operand = fmt.Sprintf("%s,%s", reg(d), p.mode)

	case formRelative:
		k := int(int16(opcode<<4) >> 4)
		e.Target = uint32(uint16(int(addr) + (k+1)*2))
		e.HasTarget = true
		e.Operand = fmt.Sprintf("%04X", e.Target)

	case formIn:
		e.Dst = Register{N: uint8(d), Show: true}
		e.Operand = fmt.Sprintf("%s,0x%02X", reg(d), ioAddress(opcode))

	case formOut:
		e.Src = Register{N: uint8(d), Show: true}
		e.Operand = fmt.Sprintf("0x%02X,%s", ioAddress(opcode), reg(d))

	case formByteImm:
		r := 16 + (opcode&0x00f0)>>4
		k := (opcode&0x0f00)>>4 | opcode&0x000f
		e.Dst = Register{N: uint8(r), Show: true}
		e.Operand = fmt.Sprintf("%s,0x%02X", reg(r), k)

	case formSREGBit:
		e.Operand = fmt.Sprintf("%d", (opcode&0x0070)>>4)

	case formIOBit:
		e.Operand = fmt.Sprintf("0x%02X,%d", (opcode&0x00f8)>>3, opcode&0x0007)

	case formWordImm:
		r := 24 + (opcode&0x0030)>>3
		k := (opcode&0x00c0)>>2 | opcode&0x000f
		e.Dst = Register{N: uint8(r), Pair: true, Show: true}
		e.Operand = fmt.Sprintf("%s,0x%02X", pair(r), k)

	case formMul:
		r := 16 + (opcode&0x0070)>>4
		s := 16 + opcode&0x0007
		e.Dst = Register{N: uint8(r), Show: true}
		e.Src = Register{N: uint8(s), Show: true}
		e.Operand = fmt.Sprintf("%s,%s", reg(r), reg(s))

	case formMovw:
		r := (opcode & 0x00f0) >> 3
		s := (opcode & 0x000f) << 1
		e.Dst = Register{N: uint8(r), Pair: true, Show: true}
		e.Src = Register{N: uint8(s), Pair: true, Show: true}
		e.Operand = fmt.Sprintf("%s,%s", pair(r), pair(s))

	case formMuls:
		r := 16 + (opcode&0x00f0)>>4
		s := 16 + opcode&0x000f
		e.Dst = Register{N: uint8(r), Show: true}
		e.Src = Register{N: uint8(s), Show: true}
		e.Operand = fmt.Sprintf("%s,%s", reg(r), reg(s))
	}

	return e
}
