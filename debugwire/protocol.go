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

// Command bytes.
const (
	CmdDisable         = 0x06
	CmdReset           = 0x07
	CmdGo              = 0x20
	CmdGoSingle        = 0x21
	CmdExecute         = 0x23
	CmdContinue        = 0x30
	CmdStep            = 0x31
	CmdExecuteContinue = 0x32
)

// Context bytes select how the next go, execute or continue command behaves.
const (
	// run freely until a break
	CtxRun = 0x60

	// run until the program counter reaches the breakpoint register
	CtxBreakpoint = 0x61

	// run until return
	CtxReturn = 0x63

	// execute the instruction in the instruction register
	CtxExecute = 0x64

	// repeat the selected template. the PC and breakpoint registers hold the
	// start and end of the range and are clobbered
	CtxRepeat = 0x66

	// further contexts accepted by the target. unused by the debugger
	Ctx79 = 0x79
	Ctx7A = 0x7A
)

// Control register access. Read commands are answered with a big-endian
// word. Write commands are followed by a big-endian word.
const (
	CmdReadPC          = 0xF0
	CmdReadBreakpoint  = 0xF1
	CmdReadInstruction = 0xF2
	CmdReadSignature   = 0xF3

	CmdWritePC          = 0xD0
	CmdWriteBreakpoint  = 0xD1
	CmdWriteInstruction = 0xD2

	// select the template for the repeat context. followed by one of the
	// Tmpl values
	CmdTemplate = 0xC2
)

// Templates for the repeat context.
const (
	// "ld r?,Z+" then "out DWDR,r?". one byte for every two steps of the range
	TmplReadSRAM = 0x00

	// "out DWDR,rN" for N in the range
	TmplReadRegisters = 0x01

	// "lpm r?,Z+" then "out DWDR,r?". one byte for every two steps of the range
	TmplReadFlash = 0x02

	// "in r?,DWDR" then "st Z+,r?". one byte for every two steps of the range
	TmplWriteSRAM = 0x04

	// "in rN,DWDR" for N in the range
	TmplWriteRegisters = 0x05
)

// Ack is the byte sent by the target in answer to a break, and after a
// breakpoint has been reached.
const Ack = 0x55

// BreakInstruction is the opcode of the AVR "break" instruction. The target
// stops when it executes one and it must be stepped over before continuing.
const BreakInstruction = 0x9598
