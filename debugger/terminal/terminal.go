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

package terminal

import (
	"strings"
)

// Style is used to identify the category of text being sent to the
// Terminal.TermPrintLine() function. The terminal implementation can choose
// to interpret the style however it sees fit.
type Style int

// List of terminal styles.
const (
	// input from the operator being echoed back to the terminal. terminals
	// that echo input themselves will ignore this style
	StyleInput Style = iota

	// the result of a command
	StyleFeedback

	// a disassembled instruction
	StyleInstruction

	// the target has stopped at a breakpoint
	StyleBreak

	// help text and menus
	StyleHelp

	// entries from the log
	StyleLog

	// an error. an error is printed even when the terminal is silenced
	StyleError
)

func (s Style) String() string {
	switch s {
	case StyleInput:
		return "input"
	case StyleFeedback:
		return "feedback"
	case StyleInstruction:
		return "instruction"
	case StyleBreak:
		return "break"
	case StyleHelp:
		return "help"
	case StyleLog:
		return "log"
	case StyleError:
		return "error"
	}
	return "unknown"
}

// Prompt specifies the prompt text and the type of input expected.
type Prompt struct {
	// the content
	Content string

	// the target is running. input will be ignored except for the BREAK
	// command
	Running bool

	// a single key press is expected rather than a line of text. not all
	// terminal implementations can honour this, in which case a line of text
	// is read as normal
	Key bool
}

// String returns the prompt with "standard" decoration. Good for terminals
// with no graphical capabilities at all.
func (p Prompt) String() string {
	s := strings.Builder{}
	s.WriteString("[ ")
	s.WriteString(strings.TrimSpace(p.Content))
	if p.Running {
		s.WriteString(" (running)")
	}
	s.WriteString(" ]")
	if p.Key {
		s.WriteString(" > ")
	} else {
		s.WriteString(" >> ")
	}
	return s.String()
}

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead blocks until a line of input (or a single key if the prompt
	// asks for one) is available. The returned string does not include the
	// line terminator.
	//
	// The UserInterrupt and UserAbort errors are returned if the operator
	// interrupts the terminal or if the input is closed.
	TermRead(prompt Prompt) (string, error)

	// IsInteractive() should return true for implementations that require user
	// interaction. Instances that don't expect user intervention should return
	// false.
	IsInteractive() bool
}

// Sentinal errors. Returned by TermRead() if caught whilst waiting for input.
const (
	UserInterrupt = "user interrupt"
	UserAbort     = "user abort"
)

// Output defines the operations required by an interface that allows output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal defines the operations required by the debugger's command line
// interface.
type Terminal interface {
	// Terminal implementation also implement the Input and Output interfaces.
	Input
	Output

	// Initialise the terminal. not all terminal implementations will need to
	// do anything.
	Initialise() error

	// Restore the terminal to it's original state, if possible. for example,
	// we could use this to make sure the terminal is returned to canonical
	// mode. not all terminal implementations will need to do anything.
	CleanUp()

	// Silence all input and output except error messages. In other words,
	// TermPrintLine() should display error messages even if silenced is true.
	Silence(silenced bool)
}
