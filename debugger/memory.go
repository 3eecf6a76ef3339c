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

	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/debugger/terminal/commandline"
	"github.com/jetsetilly/gopherdw/disassembly"
	"github.com/jetsetilly/gopherdw/logger"
)

// the number of registers in the register file
const numRegisters = 32

// the lowest data space address that can be read or written as SRAM.
// addresses below this are the register file
const minSRAM = 0x20

// I/O locations are accessed through the data space at this offset
const ioOffset = 0x20

// the number of lines and bytes per line of the memory displays
const (
	sramLines      = 2
	flashLines     = 4
	bytesPerLine   = 16
	flashRepeat    = 128
	listWords      = 16
	listRepeatSize = listWords * 2
)

// label for a line of memory. the memory area is identified by the prefix
func label(prefix byte, addr uint16, assign bool) string {
	if assign {
		return pad(fmt.Sprintf("%c%04X:=", prefix, addr))
	}
	return pad(fmt.Sprintf("%c%04X:", prefix, addr))
}

// set the repeat command to the keyword and address
func (dbg *Debugger) setRepeat(keyword string, addr uint16) {
	dbg.repeat = fmt.Sprintf("%s%04X", keyword, addr)
}

func (dbg *Debugger) registers() {
	regs, err := dbg.mem.ReadRegisters()
	if err != nil || len(regs) < numRegisters {
		dbg.printLine(terminal.StyleError, "debugWire Communication Error")
		logger.Logf(logger.Allow, "debugger", "registers: %v", err)
		return
	}

	s := strings.Builder{}
	for i := 0; i < numRegisters; i++ {
		if i < 10 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("r%d:%02X", i, regs[i]))
		if i&7 == 7 {
			dbg.printLine(terminal.StyleFeedback, s.String())
			s.Reset()
		} else {
			s.WriteString(", ")
		}
	}
}

func (dbg *Debugger) register(cmd commandline.Command) {
	reg := cmd.Int(0)
	if reg >= numRegisters {
		dbg.printLine(terminal.StyleFeedback, "%sInvalid register", echo(cmd.Input))
		return
	}

	v, err := dbg.mem.ReadRegister(uint8(reg))
	if err != nil {
		dbg.printLine(terminal.StyleFeedback, echo(cmd.Input))
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%02X", echo(cmd.Input), v)

	if reg < numRegisters-1 {
		dbg.repeat = fmt.Sprintf("R%d", reg+1)
	}
}

func (dbg *Debugger) setRegister(cmd commandline.Command) {
	reg := cmd.Int(0)
	if reg >= numRegisters {
		dbg.printLine(terminal.StyleFeedback, "%sInvalid register", echoSet(cmd.Input))
		return
	}

	v := cmd.Uint8(1)
	if err := dbg.mem.WriteRegister(uint8(reg), v); err != nil {
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%02X", echoSet(cmd.Input), v)
}

func (dbg *Debugger) setRegisters(cmd commandline.Command) {
	v := cmd.Uint8(0)
	vals := make([]uint8, numRegisters)
	for i := range vals {
		vals[i] = v
	}
	if err := dbg.mem.WriteRegisters(0, vals...); err != nil {
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%02X", echoSet(cmd.Input), v)
}

const (
	invalidIO    = "Invalid I/O Address, Range is 0x00 - 0x3F"
	invalidIOBit = "Invalid I/O Address, Range is 0x00 - 0x1F"
)

func (dbg *Debugger) io(cmd commandline.Command) {
	// reading an I/O location repeats the same command so that the location
	// can be watched
	dbg.repeat = cmd.Input

	addr := cmd.Uint16(0)
	if addr >= 0x40 {
		dbg.printLine(terminal.StyleFeedback, "%s%s", echo(cmd.Input), invalidIO)
		return
	}

	v, err := dbg.mem.ReadSRAM(addr + ioOffset)
	if err != nil {
		dbg.printLine(terminal.StyleFeedback, echo(cmd.Input))
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%02X", echo(cmd.Input), v)
}

func (dbg *Debugger) setIO(cmd commandline.Command) {
	addr := cmd.Uint16(0)
	if addr >= 0x40 {
		dbg.printLine(terminal.StyleFeedback, "%s%s", echoSet(cmd.Input), invalidIO)
		return
	}

	v := cmd.Uint8(1)
	if err := dbg.mem.WriteSRAM(addr+ioOffset, v); err != nil {
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%02X", echoSet(cmd.Input), v)
}

func (dbg *Debugger) setIOBit(cmd commandline.Command) {
	addr := cmd.Uint8(0)
	if addr >= 0x20 {
		dbg.printLine(terminal.StyleFeedback, "%s%s", echoSet(cmd.Input), invalidIOBit)
		return
	}

	// the template only admits an octal digit for the bit and a binary digit
	// for the value
	bit := cmd.Uint8(1)
	v := cmd.Uint8(2)

	if err := dbg.mem.SetIOBit(addr, bit, v == 1); err != nil {
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%d", echoSet(cmd.Input), v)
}

const invalidSRAM = "Invalid Address, Must be >= 0x20"

func (dbg *Debugger) sram(cmd commandline.Command) {
	addr := cmd.Uint16(0)
	dbg.setRepeat(cmdSRAM, addr+sramLines*bytesPerLine)

	if addr < minSRAM {
		dbg.printLine(terminal.StyleFeedback, "%s%s", label('S', addr, false), invalidSRAM)
		return
	}

	data, err := dbg.mem.ReadSRAMBlock(addr, sramLines*bytesPerLine)
	if err != nil {
		dbg.printLine(terminal.StyleError, "Read Err")
		logger.Logf(logger.Allow, "debugger", "sram: %v", err)
		return
	}

	for i := 0; i+bytesPerLine <= len(data); i += bytesPerLine {
		a := addr + uint16(i)
		dbg.printLine(terminal.StyleFeedback, "%s%s", label('S', a, false), hexBytes(data[i:i+bytesPerLine]))
	}
}

// SB, SB=, SW and SW=
func (dbg *Debugger) sramValue(cmd commandline.Command) {
	addr := cmd.Uint16(0)
	assign := cmd.Name == cmdSBSet || cmd.Name == cmdSWSet
	word := cmd.Name == cmdSW || cmd.Name == cmdSWSet

	if !assign {
		if word {
			dbg.setRepeat(cmdSW, addr+2)
		} else {
			dbg.setRepeat(cmdSB, addr+1)
		}
	}

	if addr < minSRAM {
		dbg.printLine(terminal.StyleFeedback, "%s%s", label('S', addr, assign), invalidSRAM)
		return
	}

	var err error
	var result string

	switch cmd.Name {
	case cmdSB:
		var v uint8
		v, err = dbg.mem.ReadSRAM(addr)
		result = fmt.Sprintf("%02X", v)
	case cmdSBSet:
		v := cmd.Uint8(1)
		err = dbg.mem.WriteSRAM(addr, v)
		result = fmt.Sprintf("%02X", v)
	case cmdSW:
		var w uint16
		w, err = dbg.mem.ReadSRAMWord(addr)
		result = fmt.Sprintf("%04X", w)
	case cmdSWSet:
		w := cmd.Uint16(1)
		err = dbg.mem.WriteSRAMWord(addr, w)
		result = fmt.Sprintf("%04X", w)
	}

	if err != nil {
		dbg.printLine(terminal.StyleFeedback, label('S', addr, assign))
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%s", label('S', addr, assign), result)
}

const invalidEEPROM = "Invalid EEPROM Address"

// EB, EB=, EW and EW=
func (dbg *Debugger) eepromValue(cmd commandline.Command) {
	addr := cmd.Uint16(0)
	assign := cmd.Name == cmdEBSet || cmd.Name == cmdEWSet
	word := cmd.Name == cmdEW || cmd.Name == cmdEWSet

	size := 1
	if word {
		size = 2
	}

	if !assign {
		dbg.setRepeat(strings.TrimSuffix(cmd.Name, "="), addr+uint16(size))
	}

	// the range of the EEPROM is only known if the part has been identified.
	// if it hasn't then the memory accessor will refuse the operation
	if dbg.profile != nil && int(addr)+size > dbg.profile.EEPROMSize {
		dbg.printLine(terminal.StyleFeedback, "%s%s", label('E', addr, assign), invalidEEPROM)
		return
	}

	var err error
	var result string

	switch cmd.Name {
	case cmdEB:
		var v uint8
		v, err = dbg.mem.ReadEEPROM(addr)
		result = fmt.Sprintf("%02X", v)
	case cmdEBSet:
		v := cmd.Uint8(1)
		err = dbg.mem.WriteEEPROM(addr, v)
		result = fmt.Sprintf("%02X", v)
	case cmdEW:
		var w uint16
		w, err = dbg.mem.ReadEEPROMWord(addr)
		result = fmt.Sprintf("%04X", w)
	case cmdEWSet:
		w := cmd.Uint16(1)
		err = dbg.mem.WriteEEPROMWord(addr, w)
		result = fmt.Sprintf("%04X", w)
	}

	if err != nil {
		dbg.printLine(terminal.StyleFeedback, label('E', addr, assign))
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%s", label('E', addr, assign), result)
}

// read the flash for the FB and FW commands. the number of bytes is the same
// for both commands
func (dbg *Debugger) readFlash(addr uint16) ([]byte, bool) {
	const n = flashLines * bytesPerLine
	data, err := dbg.mem.ReadFlash(addr, n)
	if err != nil {
		dbg.printLine(terminal.StyleError, "debugWire Communication Error: read %d expected %d", len(data), n)
		logger.Logf(logger.Allow, "debugger", "flash: %v", err)
		return nil, false
	}
	return data, true
}

func (dbg *Debugger) flashBytes(cmd commandline.Command) {
	addr := cmd.Uint16(0)
	data, ok := dbg.readFlash(addr)
	if !ok {
		return
	}

	for i := 0; i+bytesPerLine <= len(data); i += bytesPerLine {
		b := data[i : i+bytesPerLine]

		// printable characters
		ascii := make([]byte, len(b))
		for j, c := range b {
			if c >= 0x20 && c <= 0x7f {
				ascii[j] = c
			} else {
				ascii[j] = '.'
			}
		}

		dbg.printLine(terminal.StyleFeedback, "%s%s    %s", label('F', addr+uint16(i), false), hexBytes(b), ascii)
	}

	dbg.setRepeat(cmdFB, addr+flashRepeat)
}

func (dbg *Debugger) flashWords(cmd commandline.Command) {
	addr := cmd.Uint16(0)
	data, ok := dbg.readFlash(addr)
	if !ok {
		return
	}

	for i := 0; i+bytesPerLine <= len(data); i += bytesPerLine {
		words := make([]string, 0, bytesPerLine/2)
		for j := i; j < i+bytesPerLine; j += 2 {
			words = append(words, fmt.Sprintf("%02X%02X", data[j+1], data[j]))
		}
		dbg.printLine(terminal.StyleFeedback, "%s%s", label('F', addr+uint16(i), false), strings.Join(words, " "))
	}

	dbg.setRepeat(cmdFW, addr+flashRepeat)
}

func (dbg *Debugger) list(cmd commandline.Command) {
	addr := cmd.Uint16(0)
	err := disassembly.Listing(dbg.printStyle(terminal.StyleInstruction), dbg.mem, addr, listWords)
	if err != nil {
		dbg.printError(err)
	}
	dbg.setRepeat(cmdL, addr+listRepeatSize)
}

func (dbg *Debugger) ramSet(cmd commandline.Command) {
	if dbg.profile == nil {
		dbg.printLine(terminal.StyleError, "%sunknown part", echo(cmd.Input))
		return
	}

	vals := make([]uint8, 32)
	for i := range vals {
		vals[i] = uint8(i)
	}
	if err := dbg.mem.WriteSRAM(dbg.profile.SRAMBase, vals...); err != nil {
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%s", echo(cmd.Input), strings.Repeat(".", len(vals)))
}
