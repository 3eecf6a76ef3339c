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
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopherdw/logger"
	"github.com/pkg/term"
)

// the standard rates supported by the host serial driver
var standardRates = []int{
	1200, 1800, 2400, 4800, 9600, 19200, 38400, 57600,
	115200, 230400, 460800, 500000, 576000, 921600, 1000000,
}

// the receiver of the target tolerates this much difference between its
// rate and the rate of the link
const tolerance = 0.05

// how long to wait for a written byte to be echoed
const echoTimeout = 50 * time.Millisecond

// the answer to a break
const syncByte = 0x55

// port is the part of term.Term used by the link
type port interface {
	io.ReadWriteCloser
	SetSpeed(baud int) error
	SendBreak() error
	SetDTR(v bool) error
	Available() (int, error)
	Flush() error
}

// Link is a transport.Link over a host serial port. It also implements the
// transport.PulseTimer and transport.Power interfaces.
type Link struct {
	port  port
	prefs *Preferences
	name  string

	enabled bool
	baud    int

	// the rate found by the most recent probe. the rate is reused by the
	// next measurement of the low pulses
	probed int

	// wait for an answer to a break at the rate
	probeWait func(rate int) time.Duration
}

// Open the serial port named in the preferences. The link is disabled until
// Enable(true) is called.
func Open(prefs *Preferences) (*Link, error) {
	name := prefs.Port.Get().(string)

	t, err := term.Open(name, term.Speed(standardRates[4]), term.RawMode, term.ReadTimeout(echoTimeout))
	if err != nil {
		return nil, fmt.Errorf("serial: %w", err)
	}

	l := newLink(t, prefs)
	l.name = name
	l.baud = standardRates[4]
	return l, nil
}

func newLink(p port, prefs *Preferences) *Link {
	return &Link{
		port:  p,
		prefs: prefs,
		name:  "serial",
		probeWait: func(rate int) time.Duration {
			// time for the break, the zero byte and the answer
			return 30*time.Second/time.Duration(rate) + 2*time.Millisecond
		},
	}
}

func (l *Link) String() string {
	return l.name
}

// Close the serial port.
func (l *Link) Close() error {
	return l.port.Close()
}

// Snap returns the standard rate nearest to the requested rate.
func Snap(baud int) int {
	best := standardRates[0]
	for _, r := range standardRates[1:] {
		if abs(r-baud) < abs(best-baud) {
			best = r
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Configure implements the transport.Link interface.
func (l *Link) Configure(baud int) error {
	if baud <= 0 {
		return fmt.Errorf("serial: invalid rate %d", baud)
	}

	s := Snap(baud)
	if s != baud {
		logger.Logf(logger.Allow, "serial", "%d bps snapped to %d bps", baud, s)
		if float64(abs(s-baud))/float64(baud) > tolerance {
			logger.Logf(logger.Allow, "serial", "%d bps is outside the tolerance of the target", s)
		}
	}

	if err := l.port.SetSpeed(s); err != nil {
		return fmt.Errorf("serial: %w", err)
	}
	l.baud = s
	return nil
}

// Enable implements the transport.Link interface.
func (l *Link) Enable(on bool) error {
	l.enabled = on
	if on {
		if err := l.port.Flush(); err != nil {
			return fmt.Errorf("serial: %w", err)
		}
	}
	return nil
}

// Write implements the transport.Link interface.
func (l *Link) Write(p []byte) (int, error) {
	if !l.enabled {
		return len(p), nil
	}

	n, err := l.port.Write(p)
	if err != nil {
		return n, fmt.Errorf("serial: %w", err)
	}

	if l.prefs.Echo.Get().(bool) {
		l.discardEcho(p[:n])
	}

	return n, nil
}

// discardEcho reads back the bytes that have just been written. a missing or
// different echo is logged but is not an error. the response to the command
// will be wrong and that will be reported by the caller
func (l *Link) discardEcho(p []byte) {
	echo := make([]byte, 0, len(p))
	deadline := time.Now().Add(echoTimeout)

	b := make([]byte, len(p))
	for len(echo) < len(p) && time.Now().Before(deadline) {
		n, err := l.port.Read(b[:len(p)-len(echo)])
		if err != nil {
			break
		}
		echo = append(echo, b[:n]...)
	}

	if len(echo) != len(p) {
		logger.Logf(logger.Allow, "serial", "echo: received %d of %d bytes", len(echo), len(p))
		return
	}
	for i := range p {
		if echo[i] != p[i] {
			logger.Logf(logger.Allow, "serial", "echo: sent %02x received %02x", p[i], echo[i])
			return
		}
	}
}

// Read implements the transport.Link interface.
func (l *Link) Read() (byte, bool) {
	if l.Available() == 0 {
		return 0, false
	}
	var b [1]byte
	n, err := l.port.Read(b[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return b[0], true
}

// Available implements the transport.Link interface.
func (l *Link) Available() int {
	if !l.enabled {
		return 0
	}
	n, err := l.port.Available()
	if err != nil {
		return 0
	}
	return n
}

// SendBreak implements the transport.Link interface.
func (l *Link) SendBreak() error {
	if !l.enabled {
		return nil
	}
	if err := l.port.SendBreak(); err != nil {
		return fmt.Errorf("serial: %w", err)
	}
	return nil
}

// MeasurePulses implements the transport.PulseTimer interface.
//
// The serial port can not time the pulses directly. Instead a break is sent at
// every standard rate and the first rate at which the answer reads correctly
// is taken to be the rate of the target. The duration returned is for that
// rate.
func (l *Link) MeasurePulses(high bool, count int) (time.Duration, error) {
	rate := l.probed
	if high || rate == 0 {
		var err error
		rate, err = l.probe()
		if err != nil {
			return 0, err
		}
	}

	// the probed rate is used for one measurement of each level
	if high {
		l.probed = rate
	} else {
		l.probed = 0
	}

	return time.Duration(count) * time.Second / time.Duration(rate), nil
}

func (l *Link) probe() (int, error) {
	// restore the configured rate when probing is finished
	defer func() {
		if l.baud > 0 {
			_ = l.port.SetSpeed(l.baud)
		}
	}()

	for _, r := range standardRates {
		if err := l.port.SetSpeed(r); err != nil {
			return 0, fmt.Errorf("serial: %w", err)
		}
		if err := l.port.Flush(); err != nil {
			return 0, fmt.Errorf("serial: %w", err)
		}
		if err := l.port.SendBreak(); err != nil {
			return 0, fmt.Errorf("serial: %w", err)
		}

		time.Sleep(l.probeWait(r))

		if l.answered() {
			logger.Logf(logger.Allow, "serial", "break answered at %d bps", r)
			return r, nil
		}
	}

	return 0, fmt.Errorf("serial: no answer to break")
}

// answered reads everything waiting on the port and returns true if the
// answer to a break is among it
func (l *Link) answered() bool {
	var b [1]byte
	for {
		n, err := l.port.Available()
		if err != nil || n == 0 {
			return false
		}
		n, err = l.port.Read(b[:])
		if err != nil || n == 0 {
			return false
		}
		if b[0] == syncByte {
			return true
		}
	}
}

// SetPower implements the transport.Power interface. The supply of the target
// is switched by the DTR line.
func (l *Link) SetPower(on bool) error {
	if err := l.port.SetDTR(on); err != nil {
		return fmt.Errorf("serial: %w", err)
	}
	return nil
}
