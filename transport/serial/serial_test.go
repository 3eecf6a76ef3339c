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

package serial

import (
	"testing"
	"time"

	"github.com/jetsetilly/gopherdw/debugwire"
	"github.com/jetsetilly/gopherdw/test"
	"github.com/jetsetilly/gopherdw/transport"
)

// fakePort is a serial port with a target attached. the target answers a
// break with the sync byte if the port is at the answer rate
type fakePort struct {
	speed  int
	answer int
	echo   bool
	dtr    bool

	written []byte
	rx      []byte
	breaks  int
}

func (p *fakePort) Read(b []byte) (int, error) {
	n := copy(b, p.rx)
	p.rx = p.rx[n:]
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.written = append(p.written, b...)
	if p.echo {
		p.rx = append(p.rx, b...)
	}
	return len(b), nil
}

func (p *fakePort) Close() error {
	return nil
}

func (p *fakePort) SetSpeed(baud int) error {
	p.speed = baud
	return nil
}

func (p *fakePort) SendBreak() error {
	p.breaks++
	if p.speed == p.answer {
		p.rx = append(p.rx, 0x00, 0x55)
	} else {
		p.rx = append(p.rx, 0xf0)
	}
	return nil
}

func (p *fakePort) SetDTR(v bool) error {
	p.dtr = v
	return nil
}

func (p *fakePort) Available() (int, error) {
	return len(p.rx), nil
}

func (p *fakePort) Flush() error {
	p.rx = p.rx[:0]
	return nil
}

func fakeLink(t *testing.T, echo bool) (*Link, *fakePort) {
	t.Helper()
	prefs, err := NewPreferences("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, prefs.Echo.Set(echo))

	p := &fakePort{answer: 19200, echo: echo}
	l := newLink(p, prefs)
	l.probeWait = func(int) time.Duration { return 0 }
	return l, p
}

func TestInterfaces(t *testing.T) {
	var l any = &Link{}
	_, ok := l.(transport.Link)
	test.ExpectSuccess(t, ok)
	_, ok = l.(transport.PulseTimer)
	test.ExpectSuccess(t, ok)
	_, ok = l.(transport.Power)
	test.ExpectSuccess(t, ok)
}

func TestSnap(t *testing.T) {
	for _, c := range []struct {
		baud int
		snap int
	}{
		{baud: 100, snap: 1200},
		{baud: 7812, snap: 9600},
		{baud: 9600, snap: 9600},
		{baud: 15625, snap: 19200},
		{baud: 62500, snap: 57600},
		{baud: 125000, snap: 115200},
		{baud: 5000000, snap: 1000000},
	} {
		test.ExpectEquality(t, Snap(c.baud), c.snap, c.baud)
	}
}

func TestConfigure(t *testing.T) {
	l, p := fakeLink(t, false)
	test.ExpectSuccess(t, l.Configure(62500))
	test.ExpectEquality(t, p.speed, 57600)
	test.ExpectFailure(t, l.Configure(0))
}

func TestDisabled(t *testing.T) {
	l, p := fakeLink(t, false)

	n, err := l.Write([]byte{0x01, 0x02})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 2)
	test.ExpectEquality(t, len(p.written), 0)

	p.rx = append(p.rx, 0x55)
	test.ExpectEquality(t, l.Available(), 0)
	_, ok := l.Read()
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, l.SendBreak())
	test.ExpectEquality(t, p.breaks, 0)
}

func TestEcho(t *testing.T) {
	l, p := fakeLink(t, true)
	test.DemandSuccess(t, l.Enable(true))

	_, err := l.Write([]byte{0xf3, 0xf0})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(p.written), string([]byte{0xf3, 0xf0}))

	// the echo has been discarded
	test.ExpectEquality(t, l.Available(), 0)

	p.rx = append(p.rx, 0x93)
	b, ok := l.Read()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, b, uint8(0x93))
}

func TestNoEcho(t *testing.T) {
	l, p := fakeLink(t, false)
	test.DemandSuccess(t, l.Enable(true))

	_, err := l.Write([]byte{0xf3})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(p.written), 1)
	test.ExpectEquality(t, l.Available(), 0)
}

func TestMeasurePulses(t *testing.T) {
	l, p := fakeLink(t, false)
	test.DemandSuccess(t, l.Configure(9600))

	ch := debugwire.NewChannel(l)
	rate, err := ch.MeasureRate()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rate, 19200)

	// the low pulses reused the rate found for the high pulses
	test.ExpectEquality(t, p.breaks, 6)

	// the configured rate is restored after probing
	test.ExpectEquality(t, p.speed, 9600)
}

func TestNoAnswer(t *testing.T) {
	l, p := fakeLink(t, false)
	p.answer = 0
	_, err := l.MeasurePulses(true, 4)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, p.breaks, len(standardRates))
}

func TestPower(t *testing.T) {
	l, p := fakeLink(t, false)
	test.ExpectSuccess(t, l.SetPower(true))
	test.ExpectSuccess(t, p.dtr)
	test.ExpectSuccess(t, l.SetPower(false))
	test.ExpectFailure(t, p.dtr)
}
