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

// Package debugger is the interactive session with a part. The session starts
// at the ISP menu where the part can be identified, its fuses changed and
// debugWIRE engaged. Once engaged the debugging commands are available until
// the EXIT command returns the session to the menu.
//
// The session communicates with the operator through the terminal.Terminal
// interface. The commands are parsed by the terminal/commandline package and
// sent to the part through the debugwire and debugwire/memory packages.
//
// Output follows a fixed layout. The command is echoed and padded to column
// eight, followed by the result. For example:
//
//	PC:     0100
//	S0060:  3F
//	E0010:= AB
//
// Many commands set a successor command that is performed if the operator
// enters an empty line. For example, after SB0060 an empty line performs
// SB0061.
//
// While the target is running only the BREAK command is accepted. The input
// loop checks the link for the acknowledgement sent by the target when it
// stops at a breakpoint.
package debugger
