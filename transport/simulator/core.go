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

// I/O address of the status register.
const sreg = 0x3F

// bits of EECR
const (
	eere  = 0x01
	eepe  = 0x02
	eempe = 0x04
)

func ioAddress(op uint16) uint8 {
	return uint8((op&0x0600)>>5 | op&0x000F)
}

// word returns the flash word at the word address.
func (t *Target) word(w uint16) uint16 {
	a := (int(w) * 2) % len(t.flash)
	return uint16(t.flash[a]) | uint16(t.flash[a+1])<<8
}

func (t *Target) z() uint16 {
	return uint16(t.data[30]) | uint16(t.data[31])<<8
}

func (t *Target) setZ(z uint16) {
	t.data[30] = uint8(z)
	t.data[31] = uint8(z >> 8)
}

func (t *Target) load(addr uint16) uint8 {
	if int(addr) >= len(t.data) {
		return 0xFF
	}
	return t.data[addr]
}

func (t *Target) store(addr uint16, v uint8) {
	if addr >= 0x20 && addr < 0x60 {
		t.writeIO(uint8(addr-0x20), v)
		return
	}
	if int(addr) < len(t.data) {
		t.data[addr] = v
	}
}

// writeIO writes to the I/O space with the side effects of the EEPROM control
// register.
func (t *Target) writeIO(io uint8, v uint8) {
	t.data[int(io)+0x20] = v
	if io != t.profile.EECR {
		return
	}

	addr := int(t.data[int(t.profile.EEARH)+0x20])<<8 | int(t.data[int(t.profile.EEARL)+0x20])
	addr %= len(t.eeprom)

	if v&eempe == eempe {
		t.eempe = true
	}
	if v&eepe == eepe && t.eempe {
		t.eeprom[addr] = t.data[int(t.profile.EEDR)+0x20]
		t.eempe = false
	}
	if v&eere == eere {
		t.data[int(t.profile.EEDR)+0x20] = t.eeprom[addr]
	}

	// EERE and EEPE are cleared by hardware once the operation is complete
	t.data[int(io)+0x20] &^= eere | eepe
}

// twoWord returns true if the opcode is followed by a second word.
func twoWord(op uint16) bool {
	return op&0xFE0F == 0x9000 || op&0xFE0F == 0x9200 || op&0xFE0C == 0x940C
}

// stepCore executes the instruction at the program counter.
func (t *Target) stepCore() {
	op := t.word(t.pc)
	var next uint16
	if twoWord(op) {
		next = t.word(t.pc + 1)
	}
	t.exec(op, next)
}

// exec executes a subset of the instruction set and advances the program
// counter. next is the second word of a two word instruction.
func (t *Target) exec(op uint16, next uint16) {
	size := uint16(1)
	if twoWord(op) {
		size = 2
	}

	d := (op >> 4) & 0x1F

	switch {
	case op&0xF000 == 0xE000:
		// ldi
		t.data[16+(op>>4)&0x0F] = uint8((op>>4)&0xF0 | op&0x0F)

	case op&0xFC00 == 0x2C00:
		// mov
		t.data[d] = t.data[(op&0x0200)>>5|op&0x000F]

	case op&0xFE0F == 0x9403:
		// inc
		t.data[d]++
		t.flags(t.data[d])

	case op&0xFE0F == 0x940A:
		// dec
		t.data[d]--
		t.flags(t.data[d])

	case op&0xF800 == 0xB800:
		// out
		t.writeIO(ioAddress(op), t.data[d])

	case op&0xF800 == 0xB000:
		// in
		t.data[d] = t.data[int(ioAddress(op))+0x20]

	case op&0xFF00 == 0x9A00:
		// sbi
		io := uint8((op >> 3) & 0x1F)
		t.writeIO(io, t.data[int(io)+0x20]|1<<(op&7))

	case op&0xFF00 == 0x9800:
		// cbi
		io := uint8((op >> 3) & 0x1F)
		t.writeIO(io, t.data[int(io)+0x20]&^(1<<(op&7)))

	case op&0xFE0F == 0x9000:
		// lds
		t.data[d] = t.load(next)

	case op&0xFE0F == 0x9200:
		// sts
		t.store(next, t.data[d])

	case op&0xF000 == 0xC000:
		// rjmp
		k := int16(op<<4) >> 4
		t.pc = uint16(int16(t.pc) + k + 1)
		return

	case op&0xFE0E == 0x940C:
		// jmp. the high bits of the address are beyond the flash of any
		// part in the catalog
		t.pc = next
		return
	}

	t.pc += size
}

// flags sets the Z and N bits of SREG for the result.
func (t *Target) flags(v uint8) {
	s := t.data[sreg+0x20] &^ 0x06
	if v == 0 {
		s |= 0x02
	}
	if v&0x80 != 0 {
		s |= 0x04
	}
	t.data[sreg+0x20] = s
}
