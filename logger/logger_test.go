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

package logger_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopherdw/logger"
	"github.com/jetsetilly/gopherdw/test"
)

type deny struct{}

func (deny) AllowLogging() bool {
	return false
}

func TestLogger(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare(""))

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\n"))

	// clear the test.Writer buffer before continuing, makes comparisons easier
	// to manage
	tw.Clear()

	logger.Log(logger.Allow, "test2", errors.New("this is another test"))
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.ExpectSuccess(t, tw.Compare("test2: this is another test\n"))

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.ExpectSuccess(t, tw.Compare(""))
}

func TestRepeatAndPermission(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Logf(logger.Allow, "debugwire", "timeout: received %d of %d bytes", 0, 2)
	logger.Logf(logger.Allow, "debugwire", "timeout: received %d of %d bytes", 0, 2)
	logger.Log(deny{}, "debugwire", "should not appear")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "debugwire: timeout: received 0 of 2 bytes (repeat x2)\n")

	var n int
	logger.BorrowLog(func(e []logger.Entry) {
		n = len(e)
	})
	test.ExpectEquality(t, n, 1)
}

func TestEcho(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}
	logger.SetEcho(tw)
	defer logger.SetEcho(nil)

	logger.Log(logger.Allow, "serial", "opened /dev/ttyUSB0")
	test.ExpectEquality(t, tw.String(), "serial: opened /dev/ttyUSB0\n")
}

func TestEchoCapped(t *testing.T) {
	logger.Clear()
	first := "serial: opened /dev/ttyUSB0\n"
	cw, err := test.NewCappedWriter(len(first))
	test.DemandSuccess(t, err)
	logger.SetEcho(cw)
	defer logger.SetEcho(nil)

	logger.Log(logger.Allow, "serial", "opened /dev/ttyUSB0")
	logger.Log(logger.Allow, "serial", "rate snapped to 19200")
	test.ExpectEquality(t, cw.String(), first)

	// the log itself is not capped
	tw := &test.CompareWriter{}
	logger.Write(tw)
	test.ExpectEquality(t, len(tw.Lines()), 2)
}
