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

// Package device contains the catalog of AVR parts that can be debugged over
// debugWIRE. A part is identified by the two signature bytes read from the
// device, either through the debugWIRE signature register or through the ISP
// signature instruction.
package device

import (
	"fmt"
	"strings"
)

// Signature is the pair of bytes identifying a part. The first byte of the
// three byte ISP signature (0x1E, the Atmel manufacturer code) is not
// included.
type Signature [2]uint8

func (sig Signature) String() string {
	return fmt.Sprintf("%02X%02X", sig[0], sig[1])
}

// ParseSignature converts a four digit hex string to a Signature. The string
// may optionally be prefixed by 0x.
func ParseSignature(s string) (Signature, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	var v uint16
	if len(s) != 4 {
		return Signature{}, fmt.Errorf("device: signature must be four hex digits: %q", s)
	}
	if _, err := fmt.Sscanf(s, "%04x", &v); err != nil {
		return Signature{}, fmt.Errorf("device: signature: %w", err)
	}
	return Signature{uint8(v >> 8), uint8(v)}, nil
}

// Profile describes the memory layout and fuse bits of a part. Profiles are
// never modified once created.
type Profile struct {
	Signature Signature
	Name      string

	// size of memory areas in bytes
	Flash      int
	SRAMBase   uint16
	SRAMSize   int
	EEPROMSize int

	// I/O address of the debugWIRE data register (DWDR)
	DWDR uint8

	// masks of the DWEN bit in the high fuse and of the CKDIV8 bit in the
	// low fuse. a bit value of zero means the fuse is programmed
	DWEN   uint8
	CKDIV8 uint8

	// I/O addresses of the EEPROM registers
	EECR  uint8
	EEDR  uint8
	EEARL uint8
	EEARH uint8

	Tiny bool
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Signature)
}

// the default location of the DWEN and CKDIV8 bits. parts that differ say so
// explicitly in the catalog
const (
	defaultDWEN   = 0x40
	defaultCKDIV8 = 0x80
)

// the EEPROM register block is at one of two locations, depending on whether
// the part is a Tiny or a Mega
const (
	tinyEECR = 0x1C
	megaEECR = 0x1F
)

// entry is the compact form of a Profile used to build the catalog.
type entry struct {
	sig        Signature
	name       string
	flash      int
	sramBase   uint16
	sramSize   int
	eepromSize int
	dwdr       uint8
	dwen       uint8
	ckdiv8     uint8
	tiny       bool
}

var entries = []entry{
	{sig: Signature{0x90, 0x07}, name: "Tiny13", flash: 1024, sramBase: 0x60, sramSize: 64, eepromSize: 64, dwdr: 0x2E, dwen: 0x08, ckdiv8: 0x10, tiny: true},
	{sig: Signature{0x91, 0x0A}, name: "Tiny2313", flash: 2048, sramBase: 0x60, sramSize: 128, eepromSize: 128, dwdr: 0x1F, dwen: 0x80, tiny: true},
	{sig: Signature{0x91, 0x0B}, name: "Tiny24", flash: 2048, sramBase: 0x60, sramSize: 128, eepromSize: 128, dwdr: 0x27, tiny: true},
	{sig: Signature{0x91, 0x08}, name: "Tiny25", flash: 2048, sramBase: 0x60, sramSize: 128, eepromSize: 128, dwdr: 0x22, tiny: true},
	{sig: Signature{0x92, 0x05}, name: "Mega48A", flash: 4096, sramBase: 0x100, sramSize: 512, eepromSize: 256, dwdr: 0x31},
	{sig: Signature{0x92, 0x07}, name: "Tiny44", flash: 4096, sramBase: 0x60, sramSize: 256, eepromSize: 256, dwdr: 0x27, tiny: true},
	{sig: Signature{0x92, 0x06}, name: "Tiny45", flash: 4096, sramBase: 0x60, sramSize: 256, eepromSize: 256, dwdr: 0x22, tiny: true},
	{sig: Signature{0x92, 0x0A}, name: "Mega48PA", flash: 4096, sramBase: 0x100, sramSize: 512, eepromSize: 256, dwdr: 0x31},
	{sig: Signature{0x92, 0x15}, name: "Tiny441", flash: 4096, sramBase: 0x100, sramSize: 256, eepromSize: 256, dwdr: 0x27, tiny: true},
	{sig: Signature{0x93, 0x0A}, name: "Mega88A", flash: 8192, sramBase: 0x100, sramSize: 1024, eepromSize: 512, dwdr: 0x31},
	{sig: Signature{0x93, 0x0C}, name: "Tiny84", flash: 8192, sramBase: 0x60, sramSize: 512, eepromSize: 512, dwdr: 0x27, tiny: true},
	{sig: Signature{0x93, 0x0B}, name: "Tiny85", flash: 8192, sramBase: 0x60, sramSize: 512, eepromSize: 512, dwdr: 0x22, tiny: true},
	{sig: Signature{0x93, 0x0F}, name: "Mega88PA", flash: 8192, sramBase: 0x100, sramSize: 1024, eepromSize: 512, dwdr: 0x31},
	{sig: Signature{0x93, 0x15}, name: "Tiny841", flash: 8192, sramBase: 0x100, sramSize: 512, eepromSize: 512, dwdr: 0x27, tiny: true},
	{sig: Signature{0x93, 0x89}, name: "Mega8u2", flash: 8192, sramBase: 0x100, sramSize: 512, eepromSize: 512, dwdr: 0x31},
	{sig: Signature{0x94, 0x06}, name: "Mega168A", flash: 16384, sramBase: 0x100, sramSize: 1024, eepromSize: 512, dwdr: 0x31},
	{sig: Signature{0x94, 0x0B}, name: "Mega168PA", flash: 16384, sramBase: 0x100, sramSize: 1024, eepromSize: 512, dwdr: 0x31},
	{sig: Signature{0x94, 0x89}, name: "Mega16U2", flash: 16384, sramBase: 0x100, sramSize: 512, eepromSize: 512, dwdr: 0x31, dwen: 0x80},
	{sig: Signature{0x95, 0x0F}, name: "Mega328P", flash: 32768, sramBase: 0x100, sramSize: 2048, eepromSize: 1024, dwdr: 0x31},
	{sig: Signature{0x95, 0x14}, name: "Mega328", flash: 32768, sramBase: 0x100, sramSize: 2048, eepromSize: 1024, dwdr: 0x31},
	{sig: Signature{0x95, 0x8A}, name: "Mega32U2", flash: 32768, sramBase: 0x100, sramSize: 1024, eepromSize: 1024, dwdr: 0x31, dwen: 0x80},
}

// catalog is built from entries once, in init().
var catalog []Profile

func init() {
	catalog = make([]Profile, 0, len(entries))
	for _, e := range entries {
		p := Profile{
			Signature:  e.sig,
			Name:       e.name,
			Flash:      e.flash,
			SRAMBase:   e.sramBase,
			SRAMSize:   e.sramSize,
			EEPROMSize: e.eepromSize,
			DWDR:       e.dwdr,
			DWEN:       defaultDWEN,
			CKDIV8:     defaultCKDIV8,
			Tiny:       e.tiny,
		}
		if e.dwen != 0 {
			p.DWEN = e.dwen
		}
		if e.ckdiv8 != 0 {
			p.CKDIV8 = e.ckdiv8
		}

		eecr := uint8(megaEECR)
		if e.tiny {
			eecr = tinyEECR
		}
		p.EECR = eecr
		p.EEDR = eecr + 1
		p.EEARL = eecr + 2
		p.EEARH = eecr + 3

		catalog = append(catalog, p)
	}
}

// Lookup returns the Profile for the signature. The boolean result is false
// if the signature is not in the catalog, in which case the Profile should not
// be used.
func Lookup(sig Signature) (Profile, bool) {
	for _, p := range catalog {
		if p.Signature == sig {
			return p, true
		}
	}
	return Profile{}, false
}

// Parts returns a copy of every profile in the catalog.
func Parts() []Profile {
	c := make([]Profile, len(catalog))
	copy(c, catalog)
	return c
}
