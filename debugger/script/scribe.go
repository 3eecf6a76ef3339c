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

package script

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jetsetilly/gopherdw/curated"
)

// Scribe records the commands entered by the operator and the output of the
// debugger.
type Scribe struct {
	file       *os.File
	scriptfile string
}

// IsActive returns true if a script is currently being captured.
func (scr *Scribe) IsActive() bool {
	return scr.file != nil
}

// StartSession begins a new script. An existing file will not be
// overwritten.
func (scr *Scribe) StartSession(scriptfile string) error {
	if scr.IsActive() {
		return curated.Errorf(ScribeError, "already active")
	}

	f, err := os.OpenFile(scriptfile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return curated.Errorf(ScribeError, err)
	}

	scr.file = f
	scr.scriptfile = scriptfile

	return scr.write(fmt.Sprintf("%s scribed %s\n", commentLine, time.Now().Format(time.RFC1123)))
}

// EndSession closes the current script. Does nothing if there is no
// session.
func (scr *Scribe) EndSession() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.file = nil
		scr.scriptfile = ""
	}()

	if err := scr.file.Close(); err != nil {
		return curated.Errorf(ScribeError, err)
	}
	return nil
}

// WriteInput writes a command entered by the operator.
func (scr *Scribe) WriteInput(command string) error {
	if !scr.IsActive() || command == "" {
		return nil
	}
	return scr.write(command + "\n")
}

// WriteOutput writes a line of output from the debugger as a comment.
func (scr *Scribe) WriteOutput(output string) error {
	if !scr.IsActive() {
		return nil
	}
	return scr.write(fmt.Sprintf("%s %s\n", commentLine, output))
}

func (scr *Scribe) write(s string) error {
	n, err := io.WriteString(scr.file, s)
	if err != nil {
		return curated.Errorf(ScribeError, err)
	}
	if n != len(s) {
		return curated.Errorf(ScribeError, "output truncated")
	}
	return nil
}

func (scr *Scribe) String() string {
	return scr.scriptfile
}
