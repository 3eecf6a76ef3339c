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

// Package simulator implements a debugWIRE target in software. The Target type
// satisfies the transport.Link, transport.PulseTimer and transport.Power
// interfaces and can be used anywhere a serial link to real hardware would be
// used. The SPI() function returns the ISP interface of the same target.
//
// The target models the parts of an AVR that the debugger can observe: the
// register file, the I/O and SRAM data space, EEPROM, flash, the fuses and
// the program counter. Only a small subset of the instruction set is executed
// when stepping or running. Other instructions advance the program counter
// and do nothing else.
//
// Responses are queued as soon as a command is complete, so the debugger never
// has to wait for the simulated target.
package simulator

import (
	"fmt"
	"sync"
	"time"

	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/logger"
)

// the clock of the simulated part before any division by CKDIV8.
const clock = 8000000

// the maximum number of instructions executed by a continue command before
// the target is considered to be running indefinitely.
const maxRun = 100000

// default fuse values. the DWEN and CKDIV8 bits are cleared (programmed) by
// NewTarget() according to the profile.
const (
	defaultLow  = 0xFF
	defaultHigh = 0xDF
	defaultExt  = 0xFF
)

// Target is a simulated debugWIRE target.
type Target struct {
	crit sync.Mutex

	profile device.Profile

	// link state
	baud    int
	enabled bool
	powered bool
	rate    int

	// all bytes written to the link while it was enabled
	received []byte

	// unprocessed input and unread output
	in  []byte
	out []byte

	// fuses
	low  uint8
	high uint8
	ext  uint8

	// debugWIRE is disabled by the disable command until the next power cycle
	dwDisabled bool

	flash  []byte
	eeprom []byte
	data   []byte

	// word addresses
	pc uint16
	bp uint16

	instr    uint16
	context  uint8
	template uint8
	running  bool

	// EEMPE bit of EECR has been set
	eempe bool

	spi *SPI
}

// NewTarget is the preferred method of initialisation for the Target type.
// The target starts powered, with the DWEN and CKDIV8 fuses programmed. Flash
// and EEPROM are erased.
func NewTarget(profile device.Profile) *Target {
	t := &Target{
		profile: profile,
		low:     defaultLow &^ profile.CKDIV8,
		high:    defaultHigh &^ profile.DWEN,
		ext:     defaultExt,
		flash:   make([]byte, profile.Flash),
		eeprom:  make([]byte, profile.EEPROMSize),
		data:    make([]byte, int(profile.SRAMBase)+profile.SRAMSize),
	}
	for i := range t.flash {
		t.flash[i] = 0xFF
	}
	for i := range t.eeprom {
		t.eeprom[i] = 0xFF
	}
	t.spi = &SPI{t: t}
	t.powerUp()
	return t
}

func (t *Target) String() string {
	return fmt.Sprintf("simulated %s", t.profile.Name)
}

// powerUp latches the fuses and clears the data space. flash and EEPROM are
// non-volatile.
func (t *Target) powerUp() {
	t.powered = true
	t.dwDisabled = false
	t.running = false
	t.eempe = false
	t.pc = 0
	t.bp = 0
	t.context = 0
	t.in = t.in[:0]
	t.out = t.out[:0]
	for i := range t.data {
		t.data[i] = 0
	}
	t.rate = clock / 128
	if t.low&t.profile.CKDIV8 == 0 {
		t.rate /= 8
	}
}

// dwActive returns true if the reset pin is operating as the debugWIRE pin.
func (t *Target) dwActive() bool {
	return t.powered && t.high&t.profile.DWEN == 0 && !t.dwDisabled
}

// baudOK returns true if the link rate is within 5% of the target rate.
func (t *Target) baudOK() bool {
	d := t.baud - t.rate
	if d < 0 {
		d = -d
	}
	return d*20 <= t.rate
}

func (t *Target) linkOK() bool {
	return t.enabled && t.dwActive() && t.baudOK()
}

// emit queues bytes for the host. bytes are lost if the link is not in a state
// to carry them.
func (t *Target) emit(b ...byte) {
	if t.linkOK() {
		t.out = append(t.out, b...)
	}
}

// Configure implements the transport.Link interface.
func (t *Target) Configure(baud int) error {
	t.crit.Lock()
	defer t.crit.Unlock()
	t.baud = baud
	return nil
}

// Enable implements the transport.Link interface.
func (t *Target) Enable(on bool) error {
	t.crit.Lock()
	defer t.crit.Unlock()
	t.enabled = on
	if !on {
		t.out = t.out[:0]
	}
	return nil
}

// Write implements the transport.Link interface.
func (t *Target) Write(p []byte) (int, error) {
	t.crit.Lock()
	defer t.crit.Unlock()

	if !t.enabled {
		return len(p), nil
	}
	t.received = append(t.received, p...)

	if !t.linkOK() {
		return len(p), nil
	}

	t.in = append(t.in, p...)
	t.process()

	return len(p), nil
}

// Read implements the transport.Link interface.
func (t *Target) Read() (byte, bool) {
	t.crit.Lock()
	defer t.crit.Unlock()
	if len(t.out) == 0 {
		return 0, false
	}
	b := t.out[0]
	t.out = t.out[1:]
	return b, true
}

// Available implements the transport.Link interface.
func (t *Target) Available() int {
	t.crit.Lock()
	defer t.crit.Unlock()
	return len(t.out)
}

// SendBreak implements the transport.Link interface.
func (t *Target) SendBreak() error {
	t.crit.Lock()
	defer t.crit.Unlock()
	if !t.dwActive() {
		return nil
	}
	t.running = false
	t.in = t.in[:0]
	t.emit(0x55)
	return nil
}

// MeasurePulses implements the transport.PulseTimer interface.
func (t *Target) MeasurePulses(high bool, count int) (time.Duration, error) {
	t.crit.Lock()
	defer t.crit.Unlock()
	if !t.dwActive() {
		return 0, fmt.Errorf("simulator: no answer to break")
	}
	t.running = false
	t.in = t.in[:0]
	return time.Duration(count) * time.Second / time.Duration(t.rate), nil
}

// SetPower implements the transport.Power interface.
func (t *Target) SetPower(on bool) error {
	t.crit.Lock()
	defer t.crit.Unlock()
	if on == t.powered {
		return nil
	}
	if on {
		t.powerUp()
		logger.Logf(logger.Allow, "simulator", "power on (%d bps)", t.rate)
		return nil
	}
	t.powered = false
	t.running = false
	t.spi.progEnabled = false
	t.in = t.in[:0]
	t.out = t.out[:0]
	return nil
}

// SPI returns the ISP interface of the target.
func (t *Target) SPI() *SPI {
	return t.spi
}

// Profile returns the device profile the target was created with.
func (t *Target) Profile() device.Profile {
	return t.profile
}

// Rate returns the debugWIRE communication rate of the target.
func (t *Target) Rate() int {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.rate
}

// Received returns a copy of every byte written to the link while it was
// enabled.
func (t *Target) Received() []byte {
	t.crit.Lock()
	defer t.crit.Unlock()
	return append([]byte{}, t.received...)
}

// ClearReceived forgets the bytes returned by Received().
func (t *Target) ClearReceived() {
	t.crit.Lock()
	defer t.crit.Unlock()
	t.received = t.received[:0]
}

// Register returns the value of a register.
func (t *Target) Register(n int) uint8 {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.data[n&0x1F]
}

// SetRegister sets the value of a register.
func (t *Target) SetRegister(n int, v uint8) {
	t.crit.Lock()
	defer t.crit.Unlock()
	t.data[n&0x1F] = v
}

// Data returns the value at an address in the data space. Registers occupy
// the first 32 addresses, followed by the I/O space.
func (t *Target) Data(addr uint16) uint8 {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.load(addr)
}

// SetData sets the value at an address in the data space. Side effects of
// writing to I/O registers do not happen.
func (t *Target) SetData(addr uint16, v uint8) {
	t.crit.Lock()
	defer t.crit.Unlock()
	if int(addr) < len(t.data) {
		t.data[addr] = v
	}
}

// EEPROM returns the value at an EEPROM address.
func (t *Target) EEPROM(addr uint16) uint8 {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.eeprom[int(addr)%len(t.eeprom)]
}

// SetEEPROM sets the value at an EEPROM address.
func (t *Target) SetEEPROM(addr uint16, v uint8) {
	t.crit.Lock()
	defer t.crit.Unlock()
	t.eeprom[int(addr)%len(t.eeprom)] = v
}

// LoadFlash writes words to flash starting at the byte address. Words are
// stored little-endian.
func (t *Target) LoadFlash(addr uint16, words ...uint16) {
	t.crit.Lock()
	defer t.crit.Unlock()
	for i, w := range words {
		a := (int(addr) + i*2) % len(t.flash)
		t.flash[a] = uint8(w)
		t.flash[a+1] = uint8(w >> 8)
	}
}

// PC returns the program counter as a byte address.
func (t *Target) PC() uint16 {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.pc * 2
}

// Breakpoint returns the breakpoint register as a byte address.
func (t *Target) Breakpoint() uint16 {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.bp * 2
}

// Running returns true if the target is executing code.
func (t *Target) Running() bool {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.running
}

// Fuses returns the low, high and extended fuse bytes.
func (t *Target) Fuses() (uint8, uint8, uint8) {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.low, t.high, t.ext
}

// SetFuses sets the fuse bytes. The effect on the communication rate is seen
// after the next power cycle.
func (t *Target) SetFuses(low uint8, high uint8, ext uint8) {
	t.crit.Lock()
	defer t.crit.Unlock()
	t.low = low
	t.high = high
	t.ext = ext
}
