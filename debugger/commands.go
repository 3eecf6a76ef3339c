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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/debugger/terminal/commandline"
	"github.com/jetsetilly/gopherdw/debugwire"
	"github.com/jetsetilly/gopherdw/disassembly"
	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/logger"
)

// parseInput processes a line of input from the operator. It returns true if
// the session should end.
func (dbg *Debugger) parseInput(input string) bool {
	if !dbg.connected {
		return dbg.parseMenu(input)
	}

	// an empty line repeats the previous command if it has a successor. the
	// successor is forgotten whatever the input
	input = strings.TrimSpace(input)
	if input == "" {
		input = dbg.repeat
	}
	dbg.repeat = ""
	if input == "" {
		return false
	}

	cmd, err := dbg.cmds.Parse(input)

	// BREAK is the only command accepted while the target is running
	if dbg.running {
		if err == nil && cmd.Name == cmdBreak {
			dbg.doBreak(cmd)
		}
		return false
	}

	if err != nil {
		dbg.printLine(terminal.StyleFeedback, "%s ?", cmd.Input)
		return false
	}

	return dbg.processCommand(cmd)
}

func (dbg *Debugger) processCommand(cmd commandline.Command) bool {
	switch cmd.Name {
	case cmdHelp:
		dbg.printLine(terminal.StyleHelp, helpHeading)
		dbg.printLine(terminal.StyleHelp, dbg.cmds.HelpOverview())

	case cmdQuit:
		return true

	case cmdLog:
		logger.Write(dbg.printStyle(terminal.StyleLog))

	case cmdLogTail:
		logger.Tail(dbg.printStyle(terminal.StyleLog), cmd.Int(0))

	case cmdBreak:
		dbg.doBreak(cmd)

	case cmdStep:
		dbg.step(cmd)

	case cmdRun, cmdRunAt, cmdRunTo, cmdRunUntil:
		dbg.run(cmd)

	case cmdReset:
		dbg.reset(cmd)

	case cmdExit:
		dbg.exit(cmd)

	case cmdPC:
		dbg.printLine(terminal.StyleFeedback, "%s%04X", echo(cmd.Input), dbg.pc)
		dbg.disasm(dbg.pc)

	case cmdPCSet:
		dbg.pc = cmd.Uint16(0) &^ 1
		if err := dbg.ch.WritePC(dbg.pc); err != nil {
			dbg.printError(err)
			return false
		}
		dbg.printLine(terminal.StyleFeedback, "%s%04X", echoSet(cmd.Input), dbg.pc)
		dbg.disasm(dbg.pc)

	case cmdSig:
		sig, err := dbg.ch.ReadSignature()
		if err != nil {
			dbg.printLine(terminal.StyleFeedback, echo(cmd.Input))
			dbg.printError(err)
			return false
		}
		dbg.printLine(terminal.StyleFeedback, "%s%s", echo(cmd.Input), dbg.identifySignature(sig))

	case cmdRegs:
		dbg.registers()

	case cmdRegister:
		dbg.register(cmd)

	case cmdRegisterSet:
		dbg.setRegister(cmd)

	case cmdRegsSet:
		dbg.setRegisters(cmd)

	case cmdIO:
		dbg.io(cmd)

	case cmdIOSet:
		dbg.setIO(cmd)

	case cmdIOBit:
		dbg.setIOBit(cmd)

	case cmdSRAM:
		dbg.sram(cmd)

	case cmdSB, cmdSBSet, cmdSW, cmdSWSet:
		dbg.sramValue(cmd)

	case cmdEB, cmdEBSet, cmdEW, cmdEWSet:
		dbg.eepromValue(cmd)

	case cmdFB:
		dbg.flashBytes(cmd)

	case cmdFW:
		dbg.flashWords(cmd)

	case cmdList, cmdL:
		dbg.list(cmd)

	case cmdRAMSet:
		dbg.ramSet(cmd)

	case cmdBP:
		bp, err := dbg.ch.ReadBreakpoint()
		if err != nil {
			dbg.printError(err)
			return false
		}
		dbg.printLine(terminal.StyleFeedback, "%s%04X", echo(cmd.Input), bp)

	case cmdBPSet:
		bp := cmd.Uint16(0)
		if err := dbg.ch.WriteBreakpoint(bp); err != nil {
			dbg.printError(err)
			return false
		}
		dbg.printLine(terminal.StyleFeedback, "%s%04X", echoSet(cmd.Input), bp)

	case cmdCmd:
		b := cmd.Bytes(0)
		dbg.printLine(terminal.StyleFeedback, "%s%s", echoSet(cmd.Input), hexBytes(b))
		rsp, err := dbg.ch.Raw(b)
		if err != nil {
			dbg.printError(err)
		}
		dbg.printLine(terminal.StyleFeedback, "%s%s", pad("RSP:"), hexBytes(rsp))

	case cmdExec:
		op := cmd.Uint16(0)
		if err := dbg.ch.Exec(op); err != nil {
			dbg.printError(err)
			return false
		}

		// the address column of the decoded instruction is the same width as
		// the echoed command
		e := disassembly.Decode(0, op, 0)
		dbg.printLine(terminal.StyleFeedback, "%s%s", echoSet(cmd.Input), e.String()[resultColumn:])

	case cmdDecode, cmdDecode2:
		dbg.printLine(terminal.StyleFeedback, cmd.Input)
		dbg.printLine(terminal.StyleInstruction, disassembly.Decode(0, cmd.Uint16(0), cmd.Uint16(1)).Format(""))
	}

	return false
}

// hexBytes formats the bytes as two digit hex values separated by spaces.
func hexBytes(b []byte) string {
	s := make([]string, len(b))
	for i := range b {
		s[i] = fmt.Sprintf("%02X", b[i])
	}
	return strings.Join(s, " ")
}

// identifySignature looks up the part and changes the profile of the
// session. it returns the signature bytes and the name of the part.
func (dbg *Debugger) identifySignature(sig device.Signature) string {
	p, ok := device.Lookup(sig)
	if !ok {
		logger.Logf(logger.Allow, "debugger", "unknown part: %s", sig)
		dbg.setProfile(nil)
		return fmt.Sprintf("%s = unknown part", hexBytes(sig[:]))
	}
	dbg.setProfile(&p)
	return fmt.Sprintf("%s = %s", hexBytes(sig[:]), p.Name)
}

// printError reports an error to the operator. communication errors are
// prefixed so that they are distinguishable from errors reported by the
// debugger itself.
func (dbg *Debugger) printError(err error) {
	if curated.Has(err, debugwire.Timeout) || curated.Has(err, debugwire.AckMismatch) {
		dbg.printLine(terminal.StyleError, "debugWire Communication Error: %v", err)
		return
	}
	dbg.printLine(terminal.StyleError, "%v", err)
}

// disasm prints the instruction at the byte address with the current values
// of the registers it uses.
func (dbg *Debugger) disasm(addr uint16) {
	err := disassembly.Live(dbg.printStyle(terminal.StyleInstruction), dbg.mem, dbg.mem, addr)
	if err != nil {
		dbg.printError(err)
	}
}
