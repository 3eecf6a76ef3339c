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

package plainterm_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopherdw/test"
)

func TestPlainTerminal(t *testing.T) {
	out := &test.CompareWriter{}
	pt := plainterm.NewPlainTerminal(strings.NewReader("pc\r\nsb0060\nstep"), out)
	test.DemandSuccess(t, pt.Initialise())
	defer pt.CleanUp()

	test.ExpectEquality(t, pt.IsInteractive(), false)

	for _, expected := range []string{"pc", "sb0060", "step"} {
		s, err := pt.TermRead(terminal.Prompt{})
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, s, expected)
	}

	_, err := pt.TermRead(terminal.Prompt{})
	test.ExpectSuccess(t, curated.Is(err, terminal.UserAbort))

	// input is echoed because the input is not a real terminal
	pt.TermPrintLine(terminal.StyleInput, "PC")
	pt.TermPrintLine(terminal.StyleFeedback, "PC:     0100")
	pt.TermPrintLine(terminal.StyleError, "debugWire Communication Error")
	test.ExpectEquality(t, out.String(), "PC\nPC:     0100\n* debugWire Communication Error\n")

	out.Clear()
	pt.Silence(true)
	pt.TermPrintLine(terminal.StyleFeedback, "PC:     0100")
	pt.TermPrintLine(terminal.StyleError, "error")
	test.ExpectEquality(t, out.String(), "* error\n")
}
