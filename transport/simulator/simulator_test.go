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

package simulator_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gopherdw/debugwire"
	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/test"
	"github.com/jetsetilly/gopherdw/transport"
	"github.com/jetsetilly/gopherdw/transport/simulator"
)

func tiny85(t *testing.T) *simulator.Target {
	t.Helper()
	p, ok := device.Lookup(device.Signature{0x93, 0x0B})
	test.DemandSuccess(t, ok)
	tgt := simulator.NewTarget(p)
	test.DemandSuccess(t, tgt.Configure(tgt.Rate()))
	test.DemandSuccess(t, tgt.Enable(true))
	return tgt
}

func readAll(l transport.Link) []byte {
	var b []byte
	for {
		v, ok := l.Read()
		if !ok {
			return b
		}
		b = append(b, v)
	}
}

func TestInterfaces(t *testing.T) {
	var tgt any = &simulator.Target{}
	_, ok := tgt.(transport.Link)
	test.ExpectSuccess(t, ok)
	_, ok = tgt.(transport.PulseTimer)
	test.ExpectSuccess(t, ok)
	_, ok = tgt.(transport.Power)
	test.ExpectSuccess(t, ok)
}

func TestRate(t *testing.T) {
	tgt := tiny85(t)

	// CKDIV8 is programmed so the clock is 1MHz
	test.ExpectEquality(t, tgt.Rate(), 7812)

	d, err := tgt.MeasurePulses(true, 4)
	test.DemandSuccess(t, err)
	test.ExpectApproximate(t, int(d/time.Microsecond), 512, 0.01)
}

func TestWrongRate(t *testing.T) {
	tgt := tiny85(t)
	test.DemandSuccess(t, tgt.Configure(9600))
	tgt.Write([]byte{debugwire.CmdReadSignature})
	test.ExpectEquality(t, tgt.Available(), 0)
}

func TestSignatureAndBreak(t *testing.T) {
	tgt := tiny85(t)

	tgt.Write([]byte{debugwire.CmdReadSignature})
	test.ExpectEquality(t, string(readAll(tgt)), string([]byte{0x93, 0x0B}))

	test.DemandSuccess(t, tgt.SendBreak())
	test.ExpectEquality(t, string(readAll(tgt)), string([]byte{0x55}))
}

func TestProgramCounter(t *testing.T) {
	tgt := tiny85(t)

	tgt.Write(debugwire.NewFrame().PC(0x0080).Byte(debugwire.CmdReadPC).Bytes())
	test.ExpectEquality(t, string(readAll(tgt)), string([]byte{0x00, 0x81}))
	test.ExpectEquality(t, tgt.PC(), 0x0100)
}

func TestIncompleteCommand(t *testing.T) {
	tgt := tiny85(t)

	// "in r13,DWDR" is split over several writes
	op := debugwire.OpIn(13, tgt.Profile().DWDR)
	tgt.Write([]byte{debugwire.CtxExecute, debugwire.CmdWriteInstruction, uint8(op >> 8)})
	tgt.Write([]byte{uint8(op), debugwire.CmdExecute})
	test.ExpectEquality(t, tgt.Register(13), 0)
	tgt.Write([]byte{0xA5})
	test.ExpectEquality(t, tgt.Register(13), 0xA5)
}

func TestRegisterTransfer(t *testing.T) {
	tgt := tiny85(t)
	dwdr := tgt.Profile().DWDR

	tgt.Write(debugwire.NewFrame().Context(debugwire.CtxExecute).Execute(debugwire.OpIn(20, dwdr)).Byte(0x3C).Bytes())
	test.ExpectEquality(t, tgt.Register(20), 0x3C)

	tgt.Write(debugwire.NewFrame().Context(debugwire.CtxExecute).Execute(debugwire.OpOut(dwdr, 20)).Bytes())
	test.ExpectEquality(t, string(readAll(tgt)), string([]byte{0x3C}))
}

func TestRepeatTemplates(t *testing.T) {
	tgt := tiny85(t)
	tgt.SetData(0x60, 0x11)
	tgt.SetData(0x61, 0x22)

	f := debugwire.NewFrame().Context(debugwire.CtxRepeat).
		Range(30, 32).Template(debugwire.TmplWriteRegisters).Go().Byte(0x60, 0x00).
		Range(0, 4).Template(debugwire.TmplReadSRAM).Go()
	tgt.Write(f.Bytes())
	test.ExpectEquality(t, string(readAll(tgt)), string([]byte{0x11, 0x22}))

	// Z has been advanced past the bytes read
	test.ExpectEquality(t, tgt.Register(30), 0x62)
}

func TestStepAndRun(t *testing.T) {
	tgt := tiny85(t)

	// ldi r16,0x42; inc r16; rjmp .-2
	tgt.LoadFlash(0x0000, 0xE402, 0x9503, 0xCFFE)

	tgt.Write(debugwire.NewFrame().PC(0).Byte(debugwire.CmdStep).Bytes())
	test.ExpectEquality(t, string(readAll(tgt)), string([]byte{0x00, 0x55}))
	test.ExpectEquality(t, tgt.Register(16), 0x42)
	test.ExpectEquality(t, tgt.PC(), 0x0002)

	// run to breakpoint at the rjmp
	tgt.Write(debugwire.NewFrame().Context(debugwire.CtxBreakpoint).Breakpoint(2).PC(1).Byte(debugwire.CmdContinue).Bytes())
	test.ExpectEquality(t, string(readAll(tgt)), string([]byte{0x00, 0x55}))
	test.ExpectEquality(t, tgt.PC(), 0x0004)
	test.ExpectEquality(t, tgt.Register(16), 0x43)

	// free run never stops
	tgt.Write(debugwire.NewFrame().Context(debugwire.CtxRun).PC(0).Byte(debugwire.CmdContinue).Bytes())
	test.ExpectEquality(t, tgt.Available(), 0)
	test.ExpectSuccess(t, tgt.Running())
	test.DemandSuccess(t, tgt.SendBreak())
	test.ExpectSuccess(t, !tgt.Running())
}

func TestEEPROMSideEffects(t *testing.T) {
	tgt := tiny85(t)
	p := tgt.Profile()
	tgt.SetEEPROM(0x0010, 0x99)

	tgt.SetRegister(16, 0x10)
	tgt.SetRegister(17, 0x01)
	f := debugwire.NewFrame().Context(debugwire.CtxExecute).
		Execute(debugwire.OpOut(p.EEARL, 16)).
		Execute(debugwire.OpOut(p.EECR, 17)).
		Execute(debugwire.OpIn(18, p.EEDR))
	tgt.Write(f.Bytes())
	test.ExpectEquality(t, tgt.Register(18), 0x99)
}

func TestISP(t *testing.T) {
	tgt := tiny85(t)
	spi := tgt.SPI()
	test.DemandSuccess(t, spi.Enable())

	send := func(a, b, c, d uint8) uint8 {
		for _, v := range []uint8{a, b, c} {
			_, err := spi.Transfer(v)
			test.DemandSuccess(t, err)
		}
		v, err := spi.Transfer(d)
		test.DemandSuccess(t, err)
		return v
	}

	// DWEN is programmed so programming mode is refused
	send(0xAC, 0x53, 0x00, 0x00)
	test.ExpectInequality(t, send(0x30, 0x00, 0x00, 0x00), 0x1E)

	// disabling debugWIRE frees the reset pin until the next power cycle
	tgt.Write([]byte{debugwire.CmdDisable})
	send(0xAC, 0x53, 0x00, 0x00)
	test.ExpectEquality(t, send(0x30, 0x00, 0x00, 0x00), 0x1E)
	test.ExpectEquality(t, send(0x30, 0x00, 0x01, 0x00), 0x93)
	test.ExpectEquality(t, send(0x30, 0x00, 0x02, 0x00), 0x0B)

	high := send(0x58, 0x08, 0x00, 0x00)
	test.ExpectEquality(t, high&0x40, 0)
	send(0xAC, 0xA8, 0x00, high|0x40)
	_, h, _ := tgt.Fuses()
	test.ExpectEquality(t, h&0x40, 0x40)
}
