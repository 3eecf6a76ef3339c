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

//go:build !linux

package spidev

import (
	"github.com/jetsetilly/gopherdw/curated"
)

// Sentinal error patterns.
const (
	DeviceError = "spidev: %s: %v"
	NotEnabled  = "spidev: %s: not enabled"
)

// DefaultSpeed is slow enough for a part running from the 128kHz oscillator.
const DefaultSpeed = 25000

// Device is not available on this platform. Every operation fails.
type Device struct {
	path string
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice(path string, _ uint32) *Device {
	return &Device{path: path}
}

func (dev *Device) String() string {
	return dev.path
}

// Enable implements the isp.SPI interface.
func (dev *Device) Enable() error {
	return curated.Errorf(DeviceError, dev.path, "spidev is only available on linux")
}

// Disable implements the isp.SPI interface.
func (dev *Device) Disable() error {
	return nil
}

// Transfer implements the isp.SPI interface.
func (dev *Device) Transfer(_ uint8) (uint8, error) {
	return 0, curated.Errorf(NotEnabled, dev.path)
}
