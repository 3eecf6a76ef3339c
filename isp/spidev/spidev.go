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

//go:build linux

// Package spidev implements the isp.SPI interface for the Linux spidev
// driver. The reset pin of the part is expected to be wired to the chip
// select line of the SPI device, so that the part is held in reset for as
// long as the device is enabled.
package spidev

import (
	"runtime"
	"unsafe"

	"github.com/jetsetilly/gopherdw/curated"
	"golang.org/x/sys/unix"
)

// Sentinal error patterns.
const (
	DeviceError = "spidev: %s: %v"
	NotEnabled  = "spidev: %s: not enabled"
)

// DefaultSpeed is slow enough for a part running from the 128kHz oscillator.
// The SPI clock must be less than a quarter of the part's clock.
const DefaultSpeed = 25000

// ioctl request numbers are built in the same way as the _IOW() macro of the
// kernel headers.
const (
	iocWrite     = 1
	iocNRBits    = 8
	iocTypeBits  = 8
	iocSizeBits  = 14
	iocTypeShift = iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	spiMagic = 'k'
)

func iow(nr uintptr, size uintptr) uintptr {
	return iocWrite<<iocDirShift | spiMagic<<iocTypeShift | nr | size<<iocSizeShift
}

// transfer matches struct spi_ioc_transfer in linux/spi/spidev.h.
type transfer struct {
	txBuf       uint64
	rxBuf       uint64
	length      uint32
	speedHz     uint32
	delayUsecs  uint16
	bitsPerWord uint8
	csChange    uint8
	txNBits     uint8
	rxNBits     uint8
	wordDelay   uint8
	pad         uint8
}

var (
	ioctlMode        = iow(1, 1)
	ioctlBitsPerWord = iow(3, 1)
	ioctlMaxSpeed    = iow(4, 4)
)

// ioctlMessage returns the request number for a message of n transfers.
func ioctlMessage(n uintptr) uintptr {
	return iow(0, n*unsafe.Sizeof(transfer{}))
}

// Device is an SPI device opened through the spidev driver.
type Device struct {
	path  string
	speed uint32
	fd    int
}

// NewDevice is the preferred method of initialisation for the Device type.
// The device is not opened until Enable() is called.
func NewDevice(path string, speed uint32) *Device {
	if speed == 0 {
		speed = DefaultSpeed
	}
	return &Device{
		path:  path,
		speed: speed,
		fd:    -1,
	}
}

func (dev *Device) String() string {
	return dev.path
}

func (dev *Device) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(dev.fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Enable implements the isp.SPI interface. The device is opened and
// configured for SPI mode 0.
func (dev *Device) Enable() error {
	if dev.fd != -1 {
		return nil
	}

	fd, err := unix.Open(dev.path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return curated.Errorf(DeviceError, dev.path, err)
	}
	dev.fd = fd

	mode := uint8(0)
	bits := uint8(8)
	speed := dev.speed

	for _, c := range []struct {
		req uintptr
		arg unsafe.Pointer
	}{
		{req: ioctlMode, arg: unsafe.Pointer(&mode)},
		{req: ioctlBitsPerWord, arg: unsafe.Pointer(&bits)},
		{req: ioctlMaxSpeed, arg: unsafe.Pointer(&speed)},
	} {
		if err := dev.ioctl(c.req, c.arg); err != nil {
			_ = dev.Disable()
			return curated.Errorf(DeviceError, dev.path, err)
		}
	}

	return nil
}

// Disable implements the isp.SPI interface. Closing the device releases the
// chip select line.
func (dev *Device) Disable() error {
	if dev.fd == -1 {
		return nil
	}
	err := unix.Close(dev.fd)
	dev.fd = -1
	if err != nil {
		return curated.Errorf(DeviceError, dev.path, err)
	}
	return nil
}

// Transfer implements the isp.SPI interface. Chip select stays active between
// transfers.
func (dev *Device) Transfer(b uint8) (uint8, error) {
	if dev.fd == -1 {
		return 0, curated.Errorf(NotEnabled, dev.path)
	}

	// the kernel is given the addresses of the buffers so they must not be on
	// the stack
	buf := make([]uint8, 2)
	buf[0] = b

	tr := transfer{
		txBuf:       uint64(uintptr(unsafe.Pointer(&buf[0]))),
		rxBuf:       uint64(uintptr(unsafe.Pointer(&buf[1]))),
		length:      1,
		speedHz:     dev.speed,
		bitsPerWord: 8,
	}

	err := dev.ioctl(ioctlMessage(1), unsafe.Pointer(&tr))
	runtime.KeepAlive(buf)
	if err != nil {
		return 0, curated.Errorf(DeviceError, dev.path, err)
	}

	return buf[1], nil
}
