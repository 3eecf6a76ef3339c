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

package debugger

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/logger"
)

// the column at which the result of a command is printed. the echoed command
// is padded with spaces to this column
const resultColumn = 8

// pad the label with spaces to the result column. labels that are already
// wider are returned unchanged.
func pad(label string) string {
	if len(label) >= resultColumn {
		return label
	}
	return label + strings.Repeat(" ", resultColumn-len(label))
}

// echo the command as entered by the operator. the result of the command
// follows on the same line.
func echo(input string) string {
	return pad(input + ":")
}

// echoSet is like echo but for commands that assign a value. the input is
// echoed up to the equals sign.
func echoSet(input string) string {
	if i := strings.IndexByte(input, '='); i >= 0 {
		input = input[:i]
	}
	return pad(input + ":=")
}

// printLine prints a single entry to the terminal. The string will be
// formatted with the arguments if any are given. Output containing newlines
// is split and printed one line at a time.
func (dbg *Debugger) printLine(sty terminal.Style, s string, a ...any) {
	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}

	// remove all trailing newlines, and return if the resulting string is empty
	s = strings.TrimRight(s, "\n")
	if len(s) == 0 {
		return
	}

	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimRight(l, "\r")
		dbg.term.TermPrintLine(sty, l)

		// echoed input is already in the recording
		if sty != terminal.StyleInput {
			if err := dbg.scribe.WriteOutput(l); err != nil {
				logger.Log(logger.Allow, "debugger", err)
			}
		}
	}
}

// styleWriter implements the io.Writer interface. it is useful for when an
// io.Writer is required and you want to direct the output to the terminal.
// allows the application of a single style.
type styleWriter struct {
	dbg   *Debugger
	style terminal.Style
}

func (dbg *Debugger) printStyle(sty terminal.Style) *styleWriter {
	return &styleWriter{
		dbg:   dbg,
		style: sty,
	}
}

func (wrt styleWriter) Write(p []byte) (n int, err error) {
	wrt.dbg.printLine(wrt.style, string(p))
	return len(p), nil
}
