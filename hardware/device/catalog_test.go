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

package device_test

import (
	"testing"

	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/test"
)

func TestTiny85(t *testing.T) {
	p, ok := device.Lookup(device.Signature{0x93, 0x0B})
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Name, "Tiny85")
	test.ExpectEquality(t, p.Flash, 8192)
	test.ExpectEquality(t, p.SRAMBase, 0x60)
	test.ExpectEquality(t, p.SRAMSize, 512)
	test.ExpectEquality(t, p.EEPROMSize, 512)
	test.ExpectEquality(t, p.DWDR, 0x22)
	test.ExpectEquality(t, p.DWEN, 0x40)
	test.ExpectEquality(t, p.CKDIV8, 0x80)
	test.ExpectEquality(t, p.EECR, 0x1C)
	test.ExpectEquality(t, p.EEARH, 0x1F)
}

func TestTiny13(t *testing.T) {
	p, ok := device.Lookup(device.Signature{0x90, 0x07})
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Flash, 1024)
	test.ExpectEquality(t, p.SRAMBase, 0x60)
	test.ExpectEquality(t, p.SRAMSize, 64)
	test.ExpectEquality(t, p.EEPROMSize, 64)
	test.ExpectEquality(t, p.DWDR, 0x2E)
	test.ExpectEquality(t, p.DWEN, 0x08)
	test.ExpectEquality(t, p.CKDIV8, 0x10)
}

func TestMegaEEPROMRegisters(t *testing.T) {
	p, ok := device.Lookup(device.Signature{0x95, 0x0F})
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Name, "Mega328P")
	test.ExpectEquality(t, p.EECR, 0x1F)
	test.ExpectEquality(t, p.EEDR, 0x20)
	test.ExpectEquality(t, p.EEARL, 0x21)
	test.ExpectEquality(t, p.EEARH, 0x22)
	test.ExpectSuccess(t, !p.Tiny)
}

func TestUnknown(t *testing.T) {
	_, ok := device.Lookup(device.Signature{0x1E, 0x1E})
	test.ExpectFailure(t, ok)
}

func TestCatalogUnique(t *testing.T) {
	seen := make(map[device.Signature]bool)
	for _, p := range device.Parts() {
		test.ExpectFailure(t, seen[p.Signature], p.Name)
		seen[p.Signature] = true
	}
	test.ExpectEquality(t, len(seen), 21)
}

func TestParseSignature(t *testing.T) {
	sig, err := device.ParseSignature("0x930b")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sig, device.Signature{0x93, 0x0B})
	test.ExpectEquality(t, sig.String(), "930B")

	_, err = device.ParseSignature("93")
	test.ExpectFailure(t, err)
}
