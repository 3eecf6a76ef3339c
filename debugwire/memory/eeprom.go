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

package memory

import (
	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugwire"
)

// values loaded into r28 and r29 and then written to EECR
const (
	eepromRead       = 0x01
	eepromMaster     = 0x04
	eepromProgEnable = 0x02
)

func (mem *Accessor) checkEEPROM(addr uint16, n int) error {
	if mem.profile == nil {
		return curated.Errorf(UnknownDevice, "eeprom")
	}
	if int(addr)+n > mem.profile.EEPROMSize {
		return curated.Errorf(InvalidAddress, "eeprom", addr)
	}
	return nil
}

// params returns a frame that loads r28 to r31 with the two mode bytes and
// the address.
func params(a, b uint8, addr uint16) *debugwire.Frame {
	return debugwire.NewFrame().Context(debugwire.CtxRepeat).
		Range(scratch, 32).Template(debugwire.TmplWriteRegisters).Go().
		Byte(a, b, uint8(addr), uint8(addr>>8))
}

func (mem *Accessor) readEEPROM(addr uint16) (uint8, error) {
	p := mem.profile

	if err := mem.ch.Send(params(eepromRead, eepromRead, addr)); err != nil {
		return 0, err
	}

	f := debugwire.NewFrame().Context(debugwire.CtxExecute).
		Execute(debugwire.OpOut(p.EEARH, 31)).
		Execute(debugwire.OpOut(p.EEARL, 30)).
		Execute(debugwire.OpOut(p.EECR, 28)).
		Execute(debugwire.OpIn(29, p.EEDR)).
		Execute(debugwire.OpOut(p.DWDR, 29))
	rsp, err := mem.ch.Request(f, 1)
	if err != nil {
		return 0, curated.Errorf(ReadFailed, "read eeprom", err)
	}
	return rsp[0], nil
}

func (mem *Accessor) writeEEPROM(addr uint16, v uint8) error {
	p := mem.profile

	if err := mem.ch.Send(params(eepromMaster, eepromProgEnable, addr)); err != nil {
		return err
	}

	f := debugwire.NewFrame().Context(debugwire.CtxExecute).
		Execute(debugwire.OpOut(p.EEARH, 31)).
		Execute(debugwire.OpOut(p.EEARL, 30)).
		Execute(debugwire.OpIn(30, p.DWDR)).Byte(v).
		Execute(debugwire.OpOut(p.EEDR, 30)).
		Execute(debugwire.OpOut(p.EECR, 28)).
		Execute(debugwire.OpOut(p.EECR, 29))
	return mem.ch.Send(f)
}

// ReadEEPROM returns the byte at the EEPROM address.
func (mem *Accessor) ReadEEPROM(addr uint16) (v uint8, err error) {
	if err := mem.checkEEPROM(addr, 1); err != nil {
		return 0, err
	}

	restore, err := mem.preserve()
	if err != nil {
		return 0, err
	}
	defer func() {
		if rerr := restore(); err == nil {
			err = rerr
		}
	}()

	return mem.readEEPROM(addr)
}

// WriteEEPROM writes a byte to the EEPROM address.
func (mem *Accessor) WriteEEPROM(addr uint16, v uint8) (err error) {
	if err := mem.checkEEPROM(addr, 1); err != nil {
		return err
	}

	restore, err := mem.preserve()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); err == nil {
			err = rerr
		}
	}()

	return mem.writeEEPROM(addr, v)
}

// ReadEEPROMWord returns the little-endian word at the EEPROM address.
func (mem *Accessor) ReadEEPROMWord(addr uint16) (w uint16, err error) {
	if err := mem.checkEEPROM(addr, 2); err != nil {
		return 0, err
	}

	restore, err := mem.preserve()
	if err != nil {
		return 0, err
	}
	defer func() {
		if rerr := restore(); err == nil {
			err = rerr
		}
	}()

	lo, err := mem.readEEPROM(addr)
	if err != nil {
		return 0, err
	}
	hi, err := mem.readEEPROM(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// WriteEEPROMWord writes a word to the EEPROM address, least significant byte
// first.
func (mem *Accessor) WriteEEPROMWord(addr uint16, w uint16) (err error) {
	if err := mem.checkEEPROM(addr, 2); err != nil {
		return err
	}

	restore, err := mem.preserve()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); err == nil {
			err = rerr
		}
	}()

	if err := mem.writeEEPROM(addr, uint8(w)); err != nil {
		return err
	}
	return mem.writeEEPROM(addr+1, uint8(w>>8))
}
