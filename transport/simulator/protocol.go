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

package simulator

import (
	"github.com/jetsetilly/gopherdw/debugwire"
	"github.com/jetsetilly/gopherdw/logger"
)

// process interprets the input queue. a command whose payload has not yet
// arrived is left in the queue until the next write.
func (t *Target) process() {
	for len(t.in) > 0 {
		n := t.command(t.in)
		if n == 0 {
			return
		}
		t.in = t.in[n:]
	}
}

// command interprets the command at the head of in and returns the number of
// bytes consumed. zero means the command is incomplete.
func (t *Target) command(in []byte) int {
	switch cmd := in[0]; cmd {
	case debugwire.CmdDisable:
		t.dwDisabled = true
		t.running = false
		return 1

	case debugwire.CmdReset:
		t.reset()
		t.emit(0x00, debugwire.Ack)
		return 1

	case debugwire.CmdGo, debugwire.CmdGoSingle:
		if t.context == debugwire.CtxRepeat {
			n := t.repeat(in[1:])
			if n < 0 {
				return 0
			}
			return n + 1
		}
		t.run()
		return 1

	case debugwire.CmdExecute, debugwire.CmdExecuteContinue:
		n := t.execute(in[1:])
		if n < 0 {
			return 0
		}
		return n + 1

	case debugwire.CmdContinue:
		t.run()
		return 1

	case debugwire.CmdStep:
		t.step()
		t.emit(0x00, debugwire.Ack)
		return 1

	case debugwire.CtxRun, debugwire.CtxBreakpoint, debugwire.CtxReturn,
		debugwire.CtxExecute, debugwire.CtxRepeat, debugwire.Ctx79, debugwire.Ctx7A:
		t.context = cmd
		return 1

	case debugwire.CmdReadPC:
		t.emitWord(t.pc + 1)
		return 1

	case debugwire.CmdReadBreakpoint:
		t.emitWord(t.bp + 1)
		return 1

	case debugwire.CmdReadInstruction:
		t.emitWord(t.instr)
		return 1

	case debugwire.CmdReadSignature:
		t.emit(t.profile.Signature[0], t.profile.Signature[1])
		return 1

	case debugwire.CmdWritePC, debugwire.CmdWriteBreakpoint, debugwire.CmdWriteInstruction:
		if len(in) < 3 {
			return 0
		}
		w := uint16(in[1])<<8 | uint16(in[2])
		switch cmd {
		case debugwire.CmdWritePC:
			t.pc = w
		case debugwire.CmdWriteBreakpoint:
			t.bp = w
		case debugwire.CmdWriteInstruction:
			t.instr = w
		}
		return 3

	case debugwire.CmdTemplate:
		if len(in) < 2 {
			return 0
		}
		t.template = in[1]
		return 2
	}

	logger.Logf(logger.Allow, "simulator", "unknown command byte %02X", in[0])
	return 1
}

func (t *Target) emitWord(w uint16) {
	t.emit(uint8(w>>8), uint8(w))
}

// repeat runs the selected template over the range held in the PC and
// breakpoint registers. the result is the number of payload bytes consumed or
// -1 if the payload is incomplete.
func (t *Target) repeat(payload []byte) int {
	start := int(t.pc)
	end := int(t.bp)
	if end < start {
		end = start
	}

	consumed := 0

	switch t.template {
	case debugwire.TmplReadRegisters:
		for r := start; r < end && r < 32; r++ {
			t.emit(t.data[r])
		}

	case debugwire.TmplWriteRegisters:
		n := end - start
		if len(payload) < n {
			return -1
		}
		for i := 0; i < n; i++ {
			if start+i < 32 {
				t.data[start+i] = payload[i]
			}
		}
		consumed = n

	case debugwire.TmplReadSRAM, debugwire.TmplReadFlash:
		z := t.z()
		var v uint8
		for i := 0; i < (end-start)/2; i++ {
			if t.template == debugwire.TmplReadSRAM {
				v = t.load(z)
			} else {
				v = t.flash[int(z)%len(t.flash)]
			}
			t.emit(v)
			z++
		}
		t.setZ(z)

		// the loop uses the Y register as scratch
		t.data[28] = v
		t.data[29] = 0

	case debugwire.TmplWriteSRAM:
		n := (end - start) / 2
		if len(payload) < n {
			return -1
		}
		z := t.z()
		for i := 0; i < n; i++ {
			t.store(z, payload[i])
			z++
		}
		t.setZ(z)
		consumed = n

	default:
		logger.Logf(logger.Allow, "simulator", "unknown template %02X", t.template)
	}

	t.pc = t.bp

	return consumed
}

// execute runs the instruction register. the result is the number of payload
// bytes consumed or -1 if the payload is incomplete.
func (t *Target) execute(payload []byte) int {
	op := t.instr

	// transfers through the debugWIRE data register
	if op&0xF000 == 0xB000 {
		io := ioAddress(op)
		reg := (op >> 4) & 0x1F
		if io == t.profile.DWDR {
			if op&0x0800 == 0 {
				// in reg,DWDR
				if len(payload) < 1 {
					return -1
				}
				t.data[reg] = payload[0]
				return 1
			}
			// out DWDR,reg
			t.emit(t.data[reg])
			return 0
		}
	}

	t.exec(op, 0)

	return 0
}

// run continues execution at the program counter.
func (t *Target) run() {
	t.running = true
	useBP := t.context == debugwire.CtxBreakpoint

	for i := 0; i < maxRun; i++ {
		if useBP && i > 0 && t.pc == t.bp {
			t.halt()
			return
		}
		if t.word(t.pc) == debugwire.BreakInstruction {
			t.halt()
			return
		}
		t.stepCore()
	}
}

func (t *Target) halt() {
	t.running = false
	t.emit(0x00, debugwire.Ack)
}

// step executes the instruction at the program counter.
func (t *Target) step() {
	if t.word(t.pc) == debugwire.BreakInstruction {
		t.pc++
		return
	}
	t.stepCore()
}

func (t *Target) reset() {
	t.pc = 0
	t.running = false
	t.eempe = false
	for i := 0x20; i < int(t.profile.SRAMBase) && i < len(t.data); i++ {
		t.data[i] = 0
	}
}
