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

// Package plainterm implements the Terminal interface for the GopherDW
// debugger. It's a simple as simple can be and offers no special features.
package plainterm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"golang.org/x/term"
)

// PlainTerminal is the default, most basic terminal interface. It keeps the
// terminal in whatever mode it started, probably cooked mode. As such, it
// offers only rudimentary editing facility and little control over output.
type PlainTerminal struct {
	input      io.Reader
	output     io.Writer
	reader     *bufio.Reader
	realInput  bool
	realOutput bool
	silenced   bool
}

// NewPlainTerminal creates a PlainTerminal using the supplied input and
// output. If either is nil then the standard input or output is used.
func NewPlainTerminal(input io.Reader, output io.Writer) *PlainTerminal {
	return &PlainTerminal{
		input:  input,
		output: output,
	}
}

func isTerminal(f any) bool {
	if f, ok := f.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Initialise perfoms any setting up required for the terminal.
func (pt *PlainTerminal) Initialise() error {
	if pt.input == nil {
		pt.input = os.Stdin
	}
	if pt.output == nil {
		pt.output = os.Stdout
	}
	pt.realInput = isTerminal(pt.input)
	pt.realOutput = isTerminal(pt.output)
	pt.reader = bufio.NewReader(pt.input)
	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (pt *PlainTerminal) CleanUp() {
}

// Silence implements the terminal.Terminal interface.
func (pt *PlainTerminal) Silence(silenced bool) {
	pt.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if pt.silenced && style != terminal.StyleError {
		return
	}

	// the operator can already see their input if we're connected to a real
	// terminal
	if style == terminal.StyleInput && pt.realInput {
		return
	}

	switch style {
	case terminal.StyleError:
		s = fmt.Sprintf("* %s", s)
	}

	pt.output.Write([]byte(s))
	pt.output.Write([]byte("\n"))
}

// TermRead implements the terminal.Input interface.
func (pt *PlainTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	// insert prompt into output stream
	if pt.realInput && pt.realOutput && !pt.silenced {
		pt.output.Write([]byte(prompt.String()))
	}

	s, err := pt.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", curated.Errorf("plainterm: %v", err)
		}
		if s == "" {
			return "", curated.Errorf(terminal.UserAbort)
		}
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// IsInteractive implements the terminal.Input interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return pt.realInput
}
