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

package debugger

import (
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/debugger/terminal/commandline"
	"github.com/jetsetilly/gopherdw/debugwire"
	"github.com/jetsetilly/gopherdw/logger"
	"github.com/jetsetilly/gopherdw/transport"
)

func okErr(err error) string {
	if err != nil {
		return "Err"
	}
	return "Ok"
}

// stopped is called when the target stops after a break, a breakpoint or a
// step. the program counter is read and the instruction at that address is
// shown.
func (dbg *Debugger) stopped() {
	dbg.running = false
	dbg.repeat = cmdStep

	pc, err := dbg.ch.ReadPC()
	if err != nil {
		dbg.printError(err)
		return
	}
	dbg.pc = pc
	dbg.disasm(dbg.pc)
}

func (dbg *Debugger) doBreak(cmd commandline.Command) {
	// an idle target is left alone. the program counter set by the operator
	// must survive
	if !dbg.running {
		dbg.printLine(terminal.StyleFeedback, "%sNot running", echo(cmd.Input))
		return
	}

	// discard anything sent by the target while it was running. a target that
	// has already stopped will answer the break again
	if n := transport.Drain(dbg.link); n > 0 {
		logger.Logf(dbg.ch, "debugger", "discarded %d bytes before break", n)
	}

	err := dbg.ch.Break()
	dbg.printLine(terminal.StyleFeedback, "%s%s", echo(cmd.Input), okErr(err))
	if err != nil {
		dbg.running = false
		logger.Logf(logger.Allow, "debugger", "break: %v", err)
		return
	}

	dbg.stopped()

	if err := dbg.ch.WriteBreakpoint(0); err != nil {
		dbg.printError(err)
	}
}

// pollBreak checks a running target for a breakpoint or break instruction.
func (dbg *Debugger) pollBreak() {
	if !dbg.running || !dbg.ch.Poll() {
		return
	}
	dbg.printLine(terminal.StyleBreak, "BREAKPOINT")
	dbg.stopped()
}

func (dbg *Debugger) step(cmd commandline.Command) {
	dbg.repeat = cmdStep

	op, err := dbg.mem.FlashWord(dbg.pc)
	if err != nil {
		dbg.printLine(terminal.StyleFeedback, echo(cmd.Input))
		dbg.printError(err)
		return
	}

	// a break instruction would stop the target immediately
	if op == debugwire.BreakInstruction {
		dbg.printLine(terminal.StyleFeedback, "%sSkipping break", echo(cmd.Input))
		dbg.pc += 2
		dbg.disasm(dbg.pc)
		return
	}

	err = dbg.ch.Step(dbg.pc)
	dbg.printLine(terminal.StyleFeedback, "%s%s", echo(cmd.Input), okErr(err))
	if err != nil {
		logger.Logf(logger.Allow, "debugger", "step: %v", err)
		return
	}

	dbg.stopped()
}

func (dbg *Debugger) run(cmd commandline.Command) {
	var err error

	switch cmd.Name {
	case cmdRun:
		op, ferr := dbg.mem.FlashWord(dbg.pc)
		if ferr != nil {
			dbg.printError(ferr)
			return
		}
		if op == debugwire.BreakInstruction {
			dbg.pc += 2
		}
		dbg.printLine(terminal.StyleFeedback, "%sRunning", echo(cmd.Input))
		err = dbg.ch.Run(dbg.pc)

	case cmdRunAt:
		dbg.pc = cmd.Uint16(0) &^ 1
		dbg.printLine(terminal.StyleFeedback, "%sPC:%04X Running", echoSet("RUN"), dbg.pc)
		err = dbg.ch.Run(dbg.pc)

	case cmdRunTo:
		dbg.pc = cmd.Uint16(0) &^ 1
		bp := cmd.Uint16(1) &^ 1
		dbg.printLine(terminal.StyleFeedback, "%sPC:%04X BP:%04X", echoSet("RUN"), dbg.pc, bp)
		err = dbg.ch.RunTo(dbg.pc, bp)

	case cmdRunUntil:
		bp := cmd.Uint16(0) &^ 1
		dbg.printLine(terminal.StyleFeedback, "%sPC:%04X BP:%04X", echoSet("RUN"), dbg.pc, bp)
		err = dbg.ch.RunTo(dbg.pc, bp)
	}

	if err != nil {
		dbg.printError(err)
		return
	}

	// flash is unchanged by running but the flash window is of no use until
	// the target stops somewhere else
	dbg.mem.Invalidate()
	dbg.running = true
}

func (dbg *Debugger) reset(cmd commandline.Command) {
	err := dbg.ch.Reset()
	dbg.printLine(terminal.StyleFeedback, "%s%s", echo(cmd.Input), okErr(err))
	if err != nil {
		logger.Logf(logger.Allow, "debugger", "reset: %v", err)
		return
	}

	dbg.pc = 0
	if err := dbg.ch.WritePC(dbg.pc); err != nil {
		dbg.printError(err)
		return
	}

	// preset every register with its own number
	vals := make([]uint8, numRegisters)
	for i := range vals {
		vals[i] = uint8(i)
	}
	if err := dbg.mem.WriteRegisters(0, vals...); err != nil {
		dbg.printError(err)
		return
	}

	dbg.disasm(dbg.pc)
}

func (dbg *Debugger) exit(cmd commandline.Command) {
	if err := dbg.ch.Disable(); err != nil {
		dbg.printError(err)
	}
	dbg.connected = false
	dbg.running = false
	dbg.pc = 0
	dbg.setProfile(nil)
	dbg.mem.Invalidate()
	dbg.printLine(terminal.StyleFeedback, "%sdebugWire temporarily Disabled", echo(cmd.Input))
}
