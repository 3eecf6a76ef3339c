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
	"github.com/jetsetilly/gopherdw/debugger/terminal/commandline"
)

// debugger keywords
const (
	cmdHelp    = "HELP"
	cmdQuit    = "QUIT"
	cmdLog     = "LOG"
	cmdLogTail = "LOG#"

	cmdBreak = "BREAK"
	cmdStep  = "STEP"
	cmdRun   = "RUN"
	cmdReset = "RESET"
	cmdExit  = "EXIT"
	cmdPC    = "PC"
	cmdPCSet = "PC="
	cmdSig   = "SIG"

	cmdRegs        = "REGS"
	cmdRegister    = "R"
	cmdRegisterSet = "R="
	cmdIO          = "IO"
	cmdIOSet       = "IO="
	cmdIOBit       = "IO.="
	cmdSRAM        = "SRAM"
	cmdSB          = "SB"
	cmdSBSet       = "SB="
	cmdSW          = "SW"
	cmdSWSet       = "SW="
	cmdEB          = "EB"
	cmdEBSet       = "EB="
	cmdEW          = "EW"
	cmdEWSet       = "EW="
	cmdFB          = "FB"
	cmdFW          = "FW"
	cmdList        = "LIST"
	cmdL           = "L"

	// the variations of RUN are distinguished by name so that the help
	// listing can show each one
	cmdRunAt    = "RUN#"
	cmdRunTo    = "RUN#BP"
	cmdRunUntil = "RUN BP"

	// developer commands
	cmdCmd     = "CMD="
	cmdBP      = "BP"
	cmdBPSet   = "BP="
	cmdExec    = "EXEC="
	cmdRegsSet = "REGS="
	cmdRAMSet  = "RAMSET"
	cmdDecode  = "D"
	cmdDecode2 = "D2"
)

// the order of the definitions is the order of the help listing. it also
// matters for matching because the first definition to match is used.
var commandTemplate = []commandline.Definition{
	{Name: cmdRegs, Template: "REGS"},
	{Name: cmdRegister, Template: "R%2D", Usage: "Rdd"},
	{Name: cmdRegisterSet, Template: "R%2D=%2X", Usage: "Rdd=xx"},
	{Name: cmdIO, Template: "IO%2X", Usage: "IOxx"},
	{Name: cmdIOSet, Template: "IO%2X=%2X", Usage: "IOxx=yy"},
	{Name: cmdIOBit, Template: "IO%2X.%O=%B", Usage: "IOxx.d=b"},
	{Name: cmdSRAM, Template: "SRAM%4X", Usage: "SRAMxxxx"},
	{Name: cmdSB, Template: "SB%4X", Usage: "SBxxxx"},
	{Name: cmdSBSet, Template: "SB%4X=%2X", Usage: "SBxxxx=yy"},
	{Name: cmdSW, Template: "SW%4X", Usage: "SWxxxx"},
	{Name: cmdSWSet, Template: "SW%4X=%4X", Usage: "SWxxxx=yyyy"},
	{Name: cmdEB, Template: "EB%4X", Usage: "EBxxxx"},
	{Name: cmdEBSet, Template: "EB%4X=%2X", Usage: "EBxxxx=yy"},
	{Name: cmdEW, Template: "EW%4X", Usage: "EWxxxx"},
	{Name: cmdEWSet, Template: "EW%4X=%4X", Usage: "EWxxxx=yyyy"},
	{Name: cmdFW, Template: "FW%4X", Usage: "FWxxxx"},
	{Name: cmdFB, Template: "FB%4X", Usage: "FBxxxx"},
	{Name: cmdList, Template: "LIST%4X", Usage: "LISTxxxx"},
	{Name: cmdL, Template: "L%4X", Usage: "Lxxxx"},
	{Name: cmdRun, Template: "RUN"},
	{Name: cmdRunAt, Template: "RUN%4X", Usage: "RUNxxxx"},
	{Name: cmdRunTo, Template: "RUN%4X %4X", Usage: "RUNxxxx yyyy"},
	{Name: cmdRunUntil, Template: "RUN %4X", Usage: "RUN xxxx"},
	{Name: cmdBreak, Template: "BREAK"},
	{Name: cmdStep, Template: "STEP"},
	{Name: cmdReset, Template: "RESET"},
	{Name: cmdExit, Template: "EXIT"},
	{Name: cmdPC, Template: "PC"},
	{Name: cmdPCSet, Template: "PC=%4X", Usage: "PC=xxxx"},
	{Name: cmdSig, Template: "SIG"},
	{Name: cmdLog, Template: "LOG"},
	{Name: cmdLogTail, Template: "LOG %3D", Usage: "LOG n"},
	{Name: cmdQuit, Template: "QUIT"},

	{Name: cmdCmd, Template: "CMD=%*X", Usage: "CMD=xxxx"},
	{Name: cmdBP, Template: "BP"},
	{Name: cmdBPSet, Template: "BP=%4X", Usage: "BP=xxxx"},
	{Name: cmdExec, Template: "EXEC=%4X", Usage: "EXEC=xxxx"},
	{Name: cmdRegsSet, Template: "REGS=%2X", Usage: "REGS=xx"},
	{Name: cmdRAMSet, Template: "RAMSET"},
	{Name: cmdDecode, Template: "D%4X", Usage: "Dxxxx"},
	{Name: cmdDecode2, Template: "D%4X %4X", Usage: "Dxxxx yyyy"},
}

// ISP menu keys. the menu is used while the debugger is not connected to the
// target
const (
	keyIdentify     = "F"
	keyEnableDWEN   = "+"
	keyDisableDWEN  = "-"
	keyEnableCKDIV8 = "8"
	keyDisableDiv8  = "1"
	keyConnect      = "B"
)

var menuTemplate = []commandline.Definition{
	{Name: keyIdentify, Template: "F"},
	{Name: keyEnableDWEN, Template: "+"},
	{Name: keyDisableDWEN, Template: "-"},
	{Name: keyEnableCKDIV8, Template: "8"},
	{Name: keyDisableDiv8, Template: "1"},
	{Name: keyConnect, Template: "B"},
	{Name: cmdHelp, Template: "HELP"},
	{Name: cmdLog, Template: "LOG"},
	{Name: cmdQuit, Template: "QUIT"},
}
