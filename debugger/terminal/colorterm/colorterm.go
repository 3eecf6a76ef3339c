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

// Package colorterm implements the Terminal interface for the GopherDW
// debugger. It supports color output and reads single key presses for the
// ISP menu.
package colorterm

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"golang.org/x/term"
)

// ANSI Color reference
// 0	Black
// 1	Red
// 2	Green
// 3	Yellow
// 4	Blue
// 5	Magenta
// 6	Cyan
// 7	White
// 8	Bright Black (Gray)
type styles struct {
	input       lipgloss.Style
	feedback    lipgloss.Style
	instruction lipgloss.Style
	breakpoint  lipgloss.Style
	help        lipgloss.Style
	log         lipgloss.Style
	err         lipgloss.Style
	prompt      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		input:       r.NewStyle().Faint(true),
		feedback:    r.NewStyle(),
		instruction: r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		breakpoint:  r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)),
		help:        r.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		log:         r.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		err:         r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		prompt:      r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
	}
}

func (st styles) style(s terminal.Style) lipgloss.Style {
	switch s {
	case terminal.StyleInput:
		return st.input
	case terminal.StyleInstruction:
		return st.instruction
	case terminal.StyleBreak:
		return st.breakpoint
	case terminal.StyleHelp:
		return st.help
	case terminal.StyleLog:
		return st.log
	case terminal.StyleError:
		return st.err
	}
	return st.feedback
}

// ColorTerminal implements the terminal.Terminal interface.
type ColorTerminal struct {
	input  io.Reader
	output io.Writer
	reader *bufio.Reader

	// file descriptor of the input if it is a real terminal. -1 otherwise
	fd int

	styles   styles
	silenced bool
}

// NewColorTerminal creates a ColorTerminal using the supplied input and
// output. If either is nil then the standard input or output is used.
func NewColorTerminal(input io.Reader, output io.Writer) *ColorTerminal {
	return &ColorTerminal{
		input:  input,
		output: output,
		fd:     -1,
	}
}

// Initialise perfoms any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	if ct.input == nil {
		ct.input = os.Stdin
	}
	if ct.output == nil {
		ct.output = os.Stdout
	}

	ct.fd = -1
	if f, ok := ct.input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		ct.fd = int(f.Fd())
	}

	ct.reader = bufio.NewReader(ct.input)
	ct.styles = newStyles(lipgloss.NewRenderer(ct.output))

	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
}

// IsInteractive implements the terminal.Input interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return ct.fd != -1
}

// Silence implements the terminal.Terminal interface.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// a real terminal has already echoed the input
	if style == terminal.StyleInput && ct.IsInteractive() {
		return
	}

	ct.output.Write([]byte(ct.styles.style(style).Render(s)))
	ct.output.Write([]byte("\n"))
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	if ct.IsInteractive() && !ct.silenced {
		ct.output.Write([]byte(ct.styles.prompt.Render(prompt.String())))
	}

	if prompt.Key && ct.IsInteractive() {
		return ct.readKey()
	}

	s, err := ct.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", curated.Errorf("colorterm: %v", err)
		}
		if s == "" {
			return "", curated.Errorf(terminal.UserAbort)
		}
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// the keys that interrupt or abort the terminal when it is in raw mode
const (
	keyInterrupt = 0x03
	keyEOF       = 0x04
)

// readKey puts the terminal into raw mode and waits for a single key press.
func (ct *ColorTerminal) readKey() (string, error) {
	state, err := term.MakeRaw(ct.fd)
	if err != nil {
		return "", curated.Errorf("colorterm: %v", err)
	}

	b, err := ct.reader.ReadByte()

	// restore terminal before anything else
	_ = term.Restore(ct.fd, state)

	// raw mode means the key has not been echoed
	ct.output.Write([]byte("\n"))

	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", curated.Errorf(terminal.UserAbort)
		}
		return "", curated.Errorf("colorterm: %v", err)
	}

	switch b {
	case keyInterrupt:
		return "", curated.Errorf(terminal.UserInterrupt)
	case keyEOF:
		return "", curated.Errorf(terminal.UserAbort)
	case '\r', '\n':
		return "", nil
	}

	return string(b), nil
}
