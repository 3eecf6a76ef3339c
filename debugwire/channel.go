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

package debugwire

import (
	"bytes"
	"time"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/logger"
	"github.com/jetsetilly/gopherdw/transport"
)

// DefaultRate is the communication rate of a target running from the 8MHz
// internal oscillator divided by eight. debugWIRE runs at the target clock
// divided by 128.
const DefaultRate = 1000000 / 128

// DefaultTimeout is the number of idle bit times after which a response is
// abandoned.
const DefaultTimeout = 800

// the number of polls in an idle period
const pollsPerIdle = 50

// the largest response collected in one call to Response()
const maxResponse = 256

// Channel sends frames over a transport.Link and collects responses.
type Channel struct {
	link transport.Link

	rate    int
	timeout int
	idle    time.Duration
	poll    time.Duration

	reportTimeouts bool
}

// NewChannel is the preferred method of initialisation for the Channel type.
func NewChannel(link transport.Link) *Channel {
	ch := &Channel{
		link:           link,
		timeout:        DefaultTimeout,
		reportTimeouts: true,
	}
	ch.SetRate(DefaultRate)
	return ch
}

// Link returns the underlying transport.
func (ch *Channel) Link() transport.Link {
	return ch.link
}

// SetRate sets the communication rate used to calculate the idle period. It
// does not reconfigure the link.
func (ch *Channel) SetRate(baud int) {
	if baud <= 0 {
		baud = DefaultRate
	}
	ch.rate = baud
	ch.calcIdle()
}

// Rate returns the communication rate set by SetRate().
func (ch *Channel) Rate() int {
	return ch.rate
}

// SetTimeout sets the number of idle bit times after which a response is
// abandoned.
func (ch *Channel) SetTimeout(bits int) {
	if bits <= 0 {
		bits = DefaultTimeout
	}
	ch.timeout = bits
	ch.calcIdle()
}

func (ch *Channel) calcIdle() {
	ch.idle = time.Duration(ch.timeout) * time.Second / time.Duration(ch.rate)
	ch.poll = max(ch.idle/pollsPerIdle, time.Microsecond)
}

// Idle returns the period after which a response is abandoned.
func (ch *Channel) Idle() time.Duration {
	return ch.idle
}

// ReportTimeouts sets whether timeouts are written to the log. The previous
// setting is returned. Operations that retry turn reporting off while they do
// so.
func (ch *Channel) ReportTimeouts(report bool) bool {
	prev := ch.reportTimeouts
	ch.reportTimeouts = report
	return prev
}

// AllowLogging implements the logger.Permission interface.
func (ch *Channel) AllowLogging() bool {
	return ch.reportTimeouts
}

// Send writes the frame to the link.
func (ch *Channel) Send(f *Frame) error {
	return ch.SendBytes(f.Bytes()...)
}

// SendBytes writes the bytes to the link.
func (ch *Channel) SendBytes(b ...byte) error {
	if _, err := ch.link.Write(b); err != nil {
		return curated.Errorf("debugwire: %v", err)
	}
	return nil
}

// Response collects bytes from the link until expected bytes have arrived or
// until the link has been idle for the idle period. If expected is zero then
// bytes are collected until the link is idle and no error is returned.
//
// When fewer than expected bytes arrive, the bytes that did arrive are
// returned together with an error matching the Timeout pattern.
func (ch *Channel) Response(expected int) ([]byte, error) {
	buf := make([]byte, 0, max(expected, 1))

	deadline := time.Now().Add(ch.idle)
	for len(buf) < maxResponse {
		if b, ok := ch.link.Read(); ok {
			buf = append(buf, b)
			if expected > 0 && len(buf) == expected {
				return buf, nil
			}
			deadline = time.Now().Add(ch.idle)
			continue
		}
		if time.Now().After(deadline) {
			break
		}
		time.Sleep(ch.poll)
	}

	if expected <= 0 {
		return buf, nil
	}

	err := curated.Errorf(Timeout, len(buf), expected)
	logger.Log(ch, "debugwire", err)
	return buf, err
}

// Request sends the frame and collects the response.
func (ch *Channel) Request(f *Frame, expected int) ([]byte, error) {
	if err := ch.Send(f); err != nil {
		return nil, err
	}
	return ch.Response(expected)
}

func (ch *Channel) expect(ack []byte) error {
	rsp, err := ch.Response(len(ack))
	if err != nil {
		return err
	}
	if !bytes.Equal(rsp, ack) {
		return curated.Errorf(AckMismatch, ackString(ack), rsp)
	}
	return nil
}

func ackString(ack []byte) string {
	if len(ack) == 1 {
		return "55"
	}
	return "00 55"
}

// Ack waits for the single byte acknowledgement sent in answer to a break.
func (ch *Channel) Ack() error {
	return ch.expect([]byte{Ack})
}

// Ack2 waits for the two byte acknowledgement sent after a reset or a single
// step.
func (ch *Channel) Ack2() error {
	return ch.expect([]byte{0x00, Ack})
}

func (ch *Channel) readWord(cmd byte) (uint16, error) {
	rsp, err := ch.Request(NewFrame(cmd), 2)
	if err != nil {
		return 0, err
	}
	return uint16(rsp[0])<<8 | uint16(rsp[1]), nil
}

// ReadPC returns the program counter as a byte address. The target reports
// the address of the instruction after the one it is stopped at.
func (ch *Channel) ReadPC() (uint16, error) {
	w, err := ch.readWord(CmdReadPC)
	if err != nil {
		return 0, err
	}
	return (w - 1) * 2, nil
}

// WritePC sets the program counter from a byte address.
func (ch *Channel) WritePC(addr uint16) error {
	return ch.Send(NewFrame().PC(addr / 2))
}

// ReadBreakpoint returns the breakpoint register as a byte address.
func (ch *Channel) ReadBreakpoint() (uint16, error) {
	w, err := ch.readWord(CmdReadBreakpoint)
	if err != nil {
		return 0, err
	}
	return (w - 1) * 2, nil
}

// WriteBreakpoint sets the breakpoint register from a byte address.
func (ch *Channel) WriteBreakpoint(addr uint16) error {
	return ch.Send(NewFrame().Breakpoint(addr / 2))
}

// ReadInstruction returns the contents of the instruction register.
func (ch *Channel) ReadInstruction() (uint16, error) {
	return ch.readWord(CmdReadInstruction)
}

// ReadSignature returns the device signature.
func (ch *Channel) ReadSignature() (device.Signature, error) {
	rsp, err := ch.Request(NewFrame(CmdReadSignature), 2)
	if err != nil {
		return device.Signature{}, err
	}
	return device.Signature{rsp[0], rsp[1]}, nil
}

// Reset resets the target. The program counter will be zero.
func (ch *Channel) Reset() error {
	if err := ch.SendBytes(CmdReset); err != nil {
		return err
	}
	return ch.Ack2()
}

// Break stops the target.
func (ch *Channel) Break() error {
	if err := ch.link.SendBreak(); err != nil {
		return curated.Errorf("debugwire: %v", err)
	}
	return ch.Ack()
}

// Disable turns off debugWIRE until the next power cycle. The reset pin
// returns to normal operation, allowing ISP.
func (ch *Channel) Disable() error {
	return ch.SendBytes(CmdDisable)
}

// Step executes the instruction at the byte address and waits for the
// acknowledgement.
func (ch *Channel) Step(pc uint16) error {
	if err := ch.Send(NewFrame().PC(pc / 2).Byte(CmdStep)); err != nil {
		return err
	}
	return ch.Ack2()
}

// Run starts execution at the byte address. The target runs until a break is
// sent or until it executes a break instruction.
func (ch *Channel) Run(pc uint16) error {
	return ch.Send(NewFrame().Context(CtxRun).PC(pc / 2).Byte(CmdContinue))
}

// RunTo starts execution at pc and stops when the target reaches bp. Both
// values are byte addresses.
func (ch *Channel) RunTo(pc uint16, bp uint16) error {
	return ch.Send(NewFrame().Context(CtxBreakpoint).Breakpoint(bp / 2).PC(pc / 2).Byte(CmdContinue))
}

// Exec executes a single opcode. Opcodes that transfer data through the
// debugWIRE data register will leave the link waiting for that data.
func (ch *Channel) Exec(op uint16) error {
	return ch.Send(NewFrame().Instruction(op).Context(CtxExecute).Byte(CmdExecute))
}

// Raw sends the bytes and returns whatever arrives before the link is idle.
func (ch *Channel) Raw(b []byte) ([]byte, error) {
	if err := ch.SendBytes(b...); err != nil {
		return nil, err
	}
	return ch.Response(0)
}

// Poll checks the link for the acknowledgement sent by a running target when
// it stops at a breakpoint or a break instruction. Other bytes are discarded.
func (ch *Channel) Poll() bool {
	for ch.link.Available() > 0 {
		if b, ok := ch.link.Read(); ok && b == Ack {
			return true
		}
	}
	return false
}

// MeasureRate times the acknowledgement to a break and returns the
// communication rate of the target. The 0x55 byte is a run of alternating
// bits, four of each level after the start bit.
func (ch *Channel) MeasureRate() (int, error) {
	pt, ok := ch.link.(transport.PulseTimer)
	if !ok {
		return 0, curated.Errorf(Unsupported, "pulse timing")
	}

	high, err := pt.MeasurePulses(true, 4)
	if err != nil {
		return 0, curated.Errorf("debugwire: measure rate: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	low, err := pt.MeasurePulses(false, 4)
	if err != nil {
		return 0, curated.Errorf("debugwire: measure rate: %v", err)
	}

	total := high + low
	if total <= 0 {
		return 0, curated.Errorf("debugwire: measure rate: no pulses")
	}

	return int(8 * time.Second / total), nil
}
