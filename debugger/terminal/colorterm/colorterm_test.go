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

package colorterm_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/debugger/terminal/colorterm"
	"github.com/jetsetilly/gopherdw/test"
)

func TestColorTerminal(t *testing.T) {
	// output is not a terminal so no color codes are produced
	out := &test.CompareWriter{}
	ct := colorterm.NewColorTerminal(strings.NewReader("F\nregs\n"), out)
	test.DemandSuccess(t, ct.Initialise())
	defer ct.CleanUp()

	test.ExpectEquality(t, ct.IsInteractive(), false)

	// a key prompt reads a whole line when the input is not a terminal
	s, err := ct.TermRead(terminal.Prompt{Content: "ISP", Key: true})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "F")

	s, err = ct.TermRead(terminal.Prompt{Content: "Tiny85"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "regs")

	_, err = ct.TermRead(terminal.Prompt{})
	test.ExpectSuccess(t, curated.Is(err, terminal.UserAbort))

	// no prompt is written for non-interactive input
	test.ExpectEquality(t, out.String(), "")

	ct.TermPrintLine(terminal.StyleInstruction, "0000:   0000  nop")
	ct.TermPrintLine(terminal.StyleBreak, "BREAKPOINT")
	test.ExpectEquality(t, out.String(), "0000:   0000  nop\nBREAKPOINT\n")

	out.Clear()
	ct.Silence(true)
	ct.TermPrintLine(terminal.StyleHelp, "help")
	ct.TermPrintLine(terminal.StyleError, "error")
	test.ExpectEquality(t, out.String(), "error\n")
}
