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
	"time"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugwire"
	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/logger"
	"github.com/jetsetilly/gopherdw/transport"
)

// the number of attempts made by a block read before giving up
const retries = 4

// the pause between attempts of a block read
const retryDelay = 5 * time.Millisecond

// first of the registers used as a pointer and parameter block (r28 to r31)
const scratch = 28

// the largest block that can be read in one request
const MaxBlock = 255

// Accessor synthesizes instruction sequences to access the registers and
// memories of the target.
type Accessor struct {
	ch      *debugwire.Channel
	profile *device.Profile
	flash   window
}

// NewAccessor is the preferred method of initialisation for the Accessor type.
func NewAccessor(ch *debugwire.Channel) *Accessor {
	return &Accessor{
		ch: ch,
	}
}

// SetProfile sets the device profile. A nil profile means the device is
// unknown. The flash window is invalidated.
func (mem *Accessor) SetProfile(profile *device.Profile) {
	mem.profile = profile
	mem.flash.invalidate()
}

// Profile returns the current device profile. Returns nil if the device is
// unknown.
func (mem *Accessor) Profile() *device.Profile {
	return mem.profile
}

// Invalidate forces the next flash word to be read from the target.
func (mem *Accessor) Invalidate() {
	mem.flash.invalidate()
}

func (mem *Accessor) dwdr(op string) (uint8, error) {
	if mem.profile == nil {
		return 0, curated.Errorf(UnknownDevice, op)
	}
	return mem.profile.DWDR, nil
}

// setZ returns a frame that loads the Z register (r31:r30) with the address.
// the frame is in the repeat context.
func setZ(addr uint16) *debugwire.Frame {
	return debugwire.NewFrame().Context(debugwire.CtxRepeat).
		Range(30, 32).Template(debugwire.TmplWriteRegisters).Go().
		Byte(uint8(addr), uint8(addr>>8))
}

// ReadRegister returns the value of a single general purpose register.
func (mem *Accessor) ReadRegister(reg uint8) (uint8, error) {
	if reg > 31 {
		return 0, curated.Errorf(InvalidRegister, reg)
	}
	dwdr, err := mem.dwdr("read register")
	if err != nil {
		return 0, err
	}

	f := debugwire.NewFrame().Context(debugwire.CtxExecute).Execute(debugwire.OpOut(dwdr, reg))
	rsp, err := mem.ch.Request(f, 1)
	if err != nil {
		return 0, curated.Errorf(ReadFailed, "read register", err)
	}
	return rsp[0], nil
}

// WriteRegister sets the value of a single general purpose register.
func (mem *Accessor) WriteRegister(reg uint8, v uint8) error {
	if reg > 31 {
		return curated.Errorf(InvalidRegister, reg)
	}
	dwdr, err := mem.dwdr("write register")
	if err != nil {
		return err
	}

	f := debugwire.NewFrame().Context(debugwire.CtxExecute).Execute(debugwire.OpIn(reg, dwdr)).Byte(v)
	return mem.ch.Send(f)
}

// ReadRegisters returns the value of all 32 general purpose registers. This
// does not require a device profile.
func (mem *Accessor) ReadRegisters() ([]uint8, error) {
	f := debugwire.NewFrame().Context(debugwire.CtxRepeat).
		Range(0, 32).Template(debugwire.TmplReadRegisters).Go()
	rsp, err := mem.ch.Request(f, 32)
	if err != nil {
		return rsp, curated.Errorf(ReadFailed, "read registers", err)
	}
	return rsp, nil
}

// WriteRegisters sets consecutive registers starting at the first register.
// This does not require a device profile.
func (mem *Accessor) WriteRegisters(first uint8, v ...uint8) error {
	if int(first)+len(v) > 32 {
		return curated.Errorf(InvalidRegister, int(first)+len(v)-1)
	}
	if len(v) == 0 {
		return nil
	}
	f := debugwire.NewFrame().Context(debugwire.CtxRepeat).
		Range(uint16(first), uint16(first)+uint16(len(v))).
		Template(debugwire.TmplWriteRegisters).Go().Byte(v...)
	return mem.ch.Send(f)
}

// SetIOBit sets or clears a single bit in the lower I/O space (0x00 to 0x1F).
func (mem *Accessor) SetIOBit(io uint8, bit uint8, set bool) error {
	if io > 0x1f || bit > 7 {
		return curated.Errorf(InvalidIOBit, io, bit)
	}

	op := debugwire.OpCBI(io, bit)
	if set {
		op = debugwire.OpSBI(io, bit)
	}
	return mem.ch.Send(debugwire.NewFrame().Context(debugwire.CtxExecute).Execute(op))
}

// preserve saves r28 to r31 and returns the function that restores them.
func (mem *Accessor) preserve() (func() error, error) {
	var saved [4]uint8
	for i := range saved {
		v, err := mem.ReadRegister(scratch + uint8(i))
		if err != nil {
			return nil, err
		}
		saved[i] = v
	}

	return func() error {
		for i, v := range saved {
			if err := mem.WriteRegister(scratch+uint8(i), v); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

// request a block from the target, retrying if the response is short. the
// partial response of the final attempt is returned with the error.
func (mem *Accessor) block(f *debugwire.Frame, n int) ([]byte, error) {
	prev := mem.ch.ReportTimeouts(false)
	defer mem.ch.ReportTimeouts(prev)

	var rsp []byte
	var err error
	for i := 0; i < retries; i++ {
		rsp, err = mem.ch.Request(f, n)
		if err == nil {
			return rsp, nil
		}
		time.Sleep(retryDelay)

		// late bytes from the failed attempt must not be mistaken for the
		// start of the next response
		transport.Drain(mem.ch.Link())
	}

	logger.Logf(logger.Allow, "memory", "block read of %d bytes failed after %d attempts", n, retries)
	return rsp, err
}

// ReadSRAM returns the byte at the address in the data space.
func (mem *Accessor) ReadSRAM(addr uint16) (v uint8, err error) {
	restore, err := mem.preserve()
	if err != nil {
		return 0, err
	}
	defer func() {
		if rerr := restore(); err == nil {
			err = rerr
		}
	}()

	f := setZ(addr).Range(0, 2).Template(debugwire.TmplReadSRAM).Go()
	rsp, err := mem.ch.Request(f, 1)
	if err != nil {
		return 0, curated.Errorf(ReadFailed, "read sram", err)
	}
	return rsp[0], nil
}

// ReadSRAMBlock returns n bytes of the data space starting at the address.
// On failure the bytes that were received are returned with the error.
func (mem *Accessor) ReadSRAMBlock(addr uint16, n int) (data []byte, err error) {
	if n <= 0 {
		return []byte{}, nil
	}
	if n > MaxBlock {
		n = MaxBlock
	}

	restore, err := mem.preserve()
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := restore(); err == nil {
			err = rerr
		}
	}()

	f := setZ(addr).Range(0, uint16(n*2)).Template(debugwire.TmplReadSRAM).Go()
	data, err = mem.block(f, n)
	if err != nil {
		return data, curated.Errorf(ReadFailed, "read sram", err)
	}
	return data, nil
}

// WriteSRAM writes bytes to the data space starting at the address.
func (mem *Accessor) WriteSRAM(addr uint16, v ...uint8) (err error) {
	if len(v) == 0 {
		return nil
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

	f := setZ(addr).Range(1, 1+uint16(len(v)*2)).Template(debugwire.TmplWriteSRAM).Go().Byte(v...)
	return mem.ch.Send(f)
}

// ReadSRAMWord returns the little-endian word at the address in the data
// space.
func (mem *Accessor) ReadSRAMWord(addr uint16) (uint16, error) {
	b, err := mem.ReadSRAMBlock(addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// WriteSRAMWord writes a word to the data space, least significant byte
// first.
func (mem *Accessor) WriteSRAMWord(addr uint16, w uint16) error {
	return mem.WriteSRAM(addr, uint8(w), uint8(w>>8))
}
