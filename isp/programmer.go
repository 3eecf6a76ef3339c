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

package isp

import (
	"time"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/transport"
)

// SPI is the serial peripheral interface connected to the part.
type SPI interface {
	// Enable takes control of the SPI pins
	Enable() error

	// Disable releases the SPI pins so they can be used by the part
	Disable() error

	// Transfer sends one byte and returns the byte received at the same time
	Transfer(b uint8) (uint8, error)
}

// the manufacturer byte returned as the first byte of every signature
const atmel = 0x1E

// the number of times programming enable is attempted before giving up
const enableAttempts = 5

// the number of times the busy flag is polled before giving up
const busyPolls = 100

// Fuses are the three fuse bytes of a part. A bit value of zero means the fuse
// is programmed.
type Fuses struct {
	Low  uint8
	High uint8
	Ext  uint8
}

// Programmer sends serial programming instructions to the part.
type Programmer struct {
	spi   SPI
	power transport.Power

	progMode bool

	// period to wait after changing the power or reset state of the part
	Settle time.Duration

	// period to wait between polls of the busy flag
	Poll time.Duration
}

// NewProgrammer is the preferred method of initialisation for the Programmer
// type. The power argument can be nil if the supply of the part can not be
// switched, in which case the part must be power cycled by hand.
func NewProgrammer(spi SPI, power transport.Power) *Programmer {
	return &Programmer{
		spi:    spi,
		power:  power,
		Settle: 50 * time.Millisecond,
		Poll:   10 * time.Millisecond,
	}
}

// ProgramMode returns true if programming has been enabled.
func (p *Programmer) ProgramMode() bool {
	return p.progMode
}

// Send transfers a four byte instruction and returns the byte received during
// the transfer of the last byte.
func (p *Programmer) Send(a, b, c, d uint8) (uint8, error) {
	var r uint8
	for _, v := range []uint8{a, b, c, d} {
		var err error
		r, err = p.spi.Transfer(v)
		if err != nil {
			return 0, curated.Errorf(SPIError, err)
		}
	}
	return r, nil
}

func (p *Programmer) settle() {
	if p.Settle > 0 {
		time.Sleep(p.Settle)
	}
}

func (p *Programmer) powerOn() error {
	if err := p.spi.Enable(); err != nil {
		return curated.Errorf(SPIError, err)
	}
	if p.power != nil {
		if err := p.power.SetPower(true); err != nil {
			return curated.Errorf(SPIError, err)
		}
	}
	p.settle()
	return nil
}

func (p *Programmer) powerOff() error {
	p.progMode = false
	if err := p.spi.Disable(); err != nil {
		return curated.Errorf(SPIError, err)
	}
	if p.power != nil {
		if err := p.power.SetPower(false); err != nil {
			return curated.Errorf(SPIError, err)
		}
	}
	p.settle()
	return nil
}

// EnterProgramMode powers the part and sends the programming enable
// instruction until the part answers with the Atmel manufacturer code. A part
// with DWEN programmed will never answer.
func (p *Programmer) EnterProgramMode() error {
	if p.progMode {
		return nil
	}

	for i := 0; i < enableAttempts; i++ {
		if i > 0 {
			if err := p.powerOff(); err != nil {
				return err
			}
		}
		if err := p.powerOn(); err != nil {
			return err
		}
		if _, err := p.Send(0xAC, 0x53, 0x00, 0x00); err != nil {
			return err
		}
		r, err := p.Send(0x30, 0x00, 0x00, 0x00)
		if err != nil {
			return err
		}
		if r == atmel {
			p.progMode = true
			return nil
		}
	}

	return curated.Errorf(ProgramMode)
}

// Signature reads the two signature bytes that follow the manufacturer code.
func (p *Programmer) Signature() (device.Signature, error) {
	var sig device.Signature
	if err := p.EnterProgramMode(); err != nil {
		return sig, err
	}
	for i := range sig {
		v, err := p.Send(0x30, 0x00, uint8(i+1), 0x00)
		if err != nil {
			return sig, err
		}
		sig[i] = v
	}
	return sig, nil
}

// Identify reads the signature and looks it up in the device catalog. The
// signature is returned even if the part is unknown.
func (p *Programmer) Identify() (device.Profile, device.Signature, error) {
	sig, err := p.Signature()
	if err != nil {
		return device.Profile{}, sig, err
	}
	profile, ok := device.Lookup(sig)
	if !ok {
		return device.Profile{}, sig, curated.Errorf(UnknownDevice, sig)
	}
	return profile, sig, nil
}

// Fuses reads the low, high and extended fuse bytes.
func (p *Programmer) Fuses() (Fuses, error) {
	var f Fuses
	var err error

	if err = p.EnterProgramMode(); err != nil {
		return f, err
	}
	if f.Low, err = p.Send(0x50, 0x00, 0x00, 0x00); err != nil {
		return f, err
	}
	if f.High, err = p.Send(0x58, 0x08, 0x00, 0x00); err != nil {
		return f, err
	}
	if f.Ext, err = p.Send(0x50, 0x08, 0x00, 0x00); err != nil {
		return f, err
	}
	return f, nil
}

func state(enable bool) string {
	if enable {
		return "Enabled"
	}
	return "Disabled"
}

// change a fuse bit. programming a fuse means clearing the bit.
func (p *Programmer) change(name string, read [2]uint8, write uint8, mask uint8, enable bool) error {
	if err := p.EnterProgramMode(); err != nil {
		return err
	}

	v, err := p.Send(read[0], read[1], 0x00, 0x00)
	if err != nil {
		return err
	}

	nv := v | mask
	if enable {
		nv = v &^ mask
	}
	if nv == v {
		return curated.Errorf(Unchanged, name, state(enable))
	}

	if _, err := p.Send(0xAC, write, 0x00, nv); err != nil {
		return err
	}
	return p.BusyWait()
}

// SetDWEN programs (enable is true) or unprograms the DWEN fuse of the part.
// The change takes effect when the part is next powered. An error matching
// the Unchanged pattern is returned if the fuse is already in the requested
// state.
func (p *Programmer) SetDWEN(profile device.Profile, enable bool) error {
	if profile.DWEN == 0 {
		return curated.Errorf(UnknownDevice, profile.Signature)
	}
	return p.change("DWEN", [2]uint8{0x58, 0x08}, 0xA8, profile.DWEN, enable)
}

// SetCKDIV8 programs (enable is true) or unprograms the CKDIV8 fuse of the
// part. An error matching the Unchanged pattern is returned if the fuse is
// already in the requested state.
func (p *Programmer) SetCKDIV8(profile device.Profile, enable bool) error {
	if profile.CKDIV8 == 0 {
		return curated.Errorf(UnknownDevice, profile.Signature)
	}
	return p.change("CKDIV8", [2]uint8{0x50, 0x00}, 0xA0, profile.CKDIV8, enable)
}

// BusyWait polls the part until it is ready for the next instruction.
func (p *Programmer) BusyWait() error {
	for i := 0; i < busyPolls; i++ {
		r, err := p.Send(0xF0, 0x00, 0x00, 0x00)
		if err != nil {
			return err
		}
		if r&0x01 == 0 {
			return nil
		}
		time.Sleep(p.Poll)
	}
	return curated.Errorf(Busy)
}

// Leave releases the SPI pins and removes power from the part.
func (p *Programmer) Leave() error {
	return p.powerOff()
}

// Release releases the SPI pins without changing the power of the part. The
// part keeps running and the reset pin is free for debugWIRE.
func (p *Programmer) Release() error {
	p.progMode = false
	if err := p.spi.Disable(); err != nil {
		return curated.Errorf(SPIError, err)
	}
	return nil
}
