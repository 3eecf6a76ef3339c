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

// Package transport defines the byte level connection to a debugWIRE target.
//
// The debugWIRE protocol runs over the reset pin of the target as a single
// wire, half duplex, asynchronous serial line. The Link interface hides how
// that line is driven. The serial package drives it through a host serial
// port and the simulator package provides a target in software.
//
// Links are not safe for concurrent use. The debugger makes at most one
// request at a time and consumes the whole response before the next request.
package transport

import (
	"time"
)

// Link is the duplex byte channel to the target.
type Link interface {
	// Configure sets the communication rate in bits per second.
	Configure(baud int) error

	// Enable turns the link on or off. A disabled link discards writes and
	// never has bytes available for reading.
	Enable(on bool) error

	// Write sends the bytes to the target in order.
	Write(p []byte) (int, error)

	// Read returns the next byte received from the target. The boolean
	// result is false if no byte is waiting. Read never blocks.
	Read() (byte, bool)

	// Available returns the number of bytes waiting to be read.
	Available() int

	// SendBreak holds the line low for longer than a character time. A
	// target with debugWIRE enabled stops and answers with 0x55.
	SendBreak() error
}

// PulseTimer is implemented by links that can time the 0x55 answer to a
// break. The result is the total duration of count pulses of the given level.
// Sync pulses of the 0x55 byte are one bit wide, so the communication rate
// is count/duration.
type PulseTimer interface {
	MeasurePulses(high bool, count int) (time.Duration, error)
}

// Power is implemented by links that can switch the power supply of the
// target. Cycling power is required after the DWEN fuse has been programmed.
type Power interface {
	SetPower(on bool) error
}

// Drain discards any bytes waiting on the link and returns how many were
// discarded.
func Drain(l Link) int {
	var n int
	for {
		if _, ok := l.Read(); !ok {
			return n
		}
		n++
	}
}
