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

import (
	"fmt"
)

// SPI is the in-system programming interface of the simulated target. It
// answers the four byte serial programming instructions.
type SPI struct {
	t *Target

	enabled     bool
	progEnabled bool

	frame [4]uint8
	n     int
}

// Enable implements the isp.SPI interface.
func (s *SPI) Enable() error {
	s.t.crit.Lock()
	defer s.t.crit.Unlock()
	s.enabled = true
	s.n = 0
	return nil
}

// Disable implements the isp.SPI interface.
func (s *SPI) Disable() error {
	s.t.crit.Lock()
	defer s.t.crit.Unlock()
	s.enabled = false
	s.progEnabled = false
	s.n = 0
	return nil
}

// Transfer implements the isp.SPI interface.
func (s *SPI) Transfer(b uint8) (uint8, error) {
	s.t.crit.Lock()
	defer s.t.crit.Unlock()

	if !s.enabled {
		return 0, fmt.Errorf("simulator: spi pins not enabled")
	}
	if !s.t.powered {
		return 0x00, nil
	}

	s.frame[s.n] = b
	s.n++

	if s.n < 4 {
		// the second byte of programming enable is echoed in the third
		if s.n == 3 && s.frame[0] == 0xAC && s.frame[1] == 0x53 && s.allowed() {
			return 0x53, nil
		}
		return 0x00, nil
	}

	s.n = 0
	return s.instruction(), nil
}

// allowed returns true if the reset pin is free for programming.
func (s *SPI) allowed() bool {
	return !s.t.dwActive()
}

// instruction completes a four byte frame and returns the response to the
// final byte.
func (s *SPI) instruction() uint8 {
	t := s.t
	f := s.frame

	if f[0] == 0xAC && f[1] == 0x53 {
		s.progEnabled = s.allowed()
		return 0x00
	}

	if !s.progEnabled {
		return 0xFF
	}

	switch {
	case f[0] == 0x30:
		switch f[2] & 0x03 {
		case 0:
			return 0x1E
		case 1:
			return t.profile.Signature[0]
		case 2:
			return t.profile.Signature[1]
		}
		return 0xFF

	case f[0] == 0x50 && f[1] == 0x00:
		return t.low
	case f[0] == 0x58 && f[1] == 0x08:
		return t.high
	case f[0] == 0x50 && f[1] == 0x08:
		return t.ext

	case f[0] == 0xAC && f[1] == 0xA0:
		t.low = f[3]
	case f[0] == 0xAC && f[1] == 0xA8:
		t.high = f[3]
	case f[0] == 0xAC && f[1] == 0xA4:
		t.ext = f[3]

	case f[0] == 0xAC && f[1] == 0x80:
		for i := range t.flash {
			t.flash[i] = 0xFF
		}
		for i := range t.eeprom {
			t.eeprom[i] = 0xFF
		}

	case f[0] == 0xF0:
		// never busy
		return 0x00
	}

	return 0x00
}
