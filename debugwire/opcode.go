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

// the in and out instructions differ only in bit 11.
const (
	opIn  = 0xB000
	opOut = 0xB800
	opCBI = 0x9800
	opSBI = 0x9A00
)

func ioOpcode(base uint16, io uint8, reg uint8) uint16 {
	return base | uint16(io&0x30)<<5 | uint16(reg&0x1F)<<4 | uint16(io&0x0F)
}

// OpOut returns the opcode for "out io,reg".
func OpOut(io uint8, reg uint8) uint16 {
	return ioOpcode(opOut, io, reg)
}

// OpIn returns the opcode for "in reg,io".
func OpIn(reg uint8, io uint8) uint16 {
	return ioOpcode(opIn, io, reg)
}

// OpSBI returns the opcode for "sbi io,bit". Only the lower 32 I/O addresses
// can be used.
func OpSBI(io uint8, bit uint8) uint16 {
	return opSBI | uint16(io&0x1F)<<3 | uint16(bit&0x07)
}

// OpCBI returns the opcode for "cbi io,bit". Only the lower 32 I/O addresses
// can be used.
func OpCBI(io uint8, bit uint8) uint16 {
	return opCBI | uint16(io&0x1F)<<3 | uint16(bit&0x07)
}
