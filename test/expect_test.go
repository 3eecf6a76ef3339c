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

package test_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopherdw/test"
)

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 5+5)
	test.ExpectEquality(t, uint16(0x0100), 0x80*2)
	test.ExpectInequality(t, 11, 5+5)
}

func TestExpectApproximate(t *testing.T) {
	test.ExpectApproximate(t, 62500, 62000, 0.01)
}

func TestCappedWriter(t *testing.T) {
	cw, err := test.NewCappedWriter(4)
	test.DemandSuccess(t, err)
	n, _ := cw.Write([]byte("abcdef"))
	test.ExpectEquality(t, n, 4)
	test.ExpectEquality(t, cw.String(), "abcd")
	n, _ = cw.Write([]byte("gh"))
	test.ExpectEquality(t, n, 0)
}

func TestCompareWriter(t *testing.T) {
	tw := &test.CompareWriter{}
	tw.Write([]byte("PC:     0100\n0100:   0000  nop\n"))
	test.ExpectSuccess(t, tw.Contains("0100"))
	test.DemandEquality(t, len(tw.Lines()), 2)
	test.ExpectEquality(t, tw.Lines()[1], "0100:   0000  nop")
	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}
