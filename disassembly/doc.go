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

// Package disassembly decodes the AVR instructions found in the flash memory
// of a debugWIRE target.
//
// Decoding is by an ordered list of bit patterns. The first pattern to match
// an opcode decides the instruction. Opcodes that match no pattern are left
// undecoded and are displayed as the address and opcode only.
//
// The Listing() function decodes a run of instructions without any further
// traffic to the target. The Live() function decodes a single instruction and
// annotates it with the current value of the registers it uses.
//
// Not every instruction of every variant of the AVR core is recognised. In
// particular, the 16-bit lds and sts instructions of the reduced core are
// never decoded because they share encodings with ldd and std.
package disassembly
