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

var help = map[string]string{
	cmdHelp:        "Print this menu",
	cmdRegs:        "Print All Registers 0-31",
	cmdRegister:    "Print Value of Reg dd (dd is a decimal value from 0 - 31)",
	cmdRegisterSet: "Set Reg dd to New Value xx (dd is a decimal value from 0 - 31)",
	cmdIO:          "Print Value of I/O space location xx",
	cmdIOSet:       "Set I/O space location xx to new value yy",
	cmdIOBit:       "Change bit d (0-7) in I/O location xx to value b (1 or 0)",
	cmdSRAM:        "Read and Print 32 bytes from SRAM address xxxx",
	cmdSB:          "Print Byte Value of SRAM location xxxx",
	cmdSBSet:       "Set SRAM location xxxx to new byte value yy",
	cmdSW:          "Print Word Value of SRAM location xxxx",
	cmdSWSet:       "Set SRAM location xxxx to new word value yyyy",
	cmdEB:          "Print Byte Value of EEPROM location xxxx",
	cmdEBSet:       "Set EEPROM location xxxx to new byte value yy",
	cmdEW:          "Print Word Value of EEPROM location xxxx",
	cmdEWSet:       "Set EEPROM location xxxx to new word value yyyy",
	cmdFW:          "Print 32 Word Values (64 bytes) from Flash addr xxxx",
	cmdFB:          "Print 64 Byte Values from Flash addr xxxx and decode ASCII",
	cmdList:        "Disassemble 16 words (32 bytes) from Flash addr xxxx",
	cmdRun:         "Start Execution at Current Value of PC (use BREAK to stop)",
	cmdRunAt:       "Start Execution at xxxx (use BREAK to stop)",
	cmdRunTo:       "Start Execution at xxxx with a Breakpoint set at yyyy",
	cmdRunUntil:    "Start Execution at Current Value of PC with breakpoint at xxxx",
	cmdBreak:       "Send Async BREAK to Target (stops execution)",
	cmdStep:        "Single Step One Instruction at Current PC",
	cmdReset:       "Reset Target",
	cmdExit:        "Exit from debugWire mode back to In-System",
	cmdPC:          "Read and Print Program Counter",
	cmdPCSet:       "Set Program Counter to xxxx",
	cmdSig:         "Read and Print Device Signature",
	cmdLog:         "Print the log",
	cmdLogTail:     "Print the last n entries of the log",
	cmdQuit:        "Leave the debugger",

	cmdCmd:     "Send Sequence of Bytes xxxx... and show response",
	cmdBP:      "Read and Print Breakpoint Register",
	cmdBPSet:   "Set Breakpoint Register to xxxx",
	cmdExec:    "Execute Instruction opcode xxxx",
	cmdRegsSet: "Set All Registers to xx",
	cmdRAMSet:  "Init first 32 bytes of SRAM",
	cmdDecode:  "Disassemble single word instruction opcode xxxx",
	cmdDecode2: "Disassemble two word instruction opcode xxxx + yyyy",
}

const helpHeading = "Debugging Commands:"

// the ISP menu is printed in full whenever a key is not recognised
var menu = []string{
	"Commands:",
	" F - Identify Device & Print Fuses",
	" + - Enable debugWire DWEN Fuse",
	" - - Disable debugWire DWEN Fuse",
	" 8 - Enable CKDIV8 (divide clock by 8)",
	" 1 - Disable CKDIV8",
	" B - Engage Debugger",
}
