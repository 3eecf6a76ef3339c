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

// Package memory reads and writes the memories of a debugWIRE target.
//
// The debugWIRE interface can execute only one instruction at a time, or
// repeat one of a small number of fixed instruction templates over a range.
// Every access to the target's registers, I/O space, SRAM, EEPROM and flash
// is synthesized from those two primitives.
//
// Registers r0 to r31 are moved through the debugWIRE data register (DWDR)
// with single "in" and "out" instructions. Because the address of DWDR
// differs from part to part, the Accessor must be given a device profile
// before it can do anything other than the bulk register read.
//
// SRAM, EEPROM and flash accesses use r28 to r31 as an address pointer and
// parameter block. The values of those registers are saved before the access
// and restored afterwards, whether or not the access succeeded.
//
// Flash words used for disassembly are served from a small window of flash
// that is reloaded whenever a requested address falls outside of it.
package memory
