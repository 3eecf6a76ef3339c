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
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/gopherdw/curated"
)

// the start of a comment line
const commentLine = "#"

// Line is a single command.
type Line struct {
	Entry string

	// the command came from a script file rather than the operator
	Batch bool
}

// Queue normalises input into commands and dishes out those commands one at
// a time.
type Queue struct {
	lines []Line
}

// More returns true if there are more commands in the queue
func (q *Queue) More() bool {
	return len(q.lines) > 0
}

// Next command in the queue
func (q *Queue) Next() (Line, bool) {
	if len(q.lines) > 0 {
		ln := q.lines[0]
		q.lines = q.lines[1:]
		return ln, true
	}
	return Line{}, false
}

// Push input into the queue. The input can contain more than one command.
func (q *Queue) Push(input string) {
	q.push(input, false)
}

func (q *Queue) push(input string, batch bool) {
	// replace windows and mac line endings with unix line endings
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	// commands can be separated by semi-colons as well as newlines
	input = strings.ReplaceAll(input, ";", "\n")

	for _, s := range strings.Split(input, "\n") {
		s = strings.TrimSpace(s)
		if len(s) > 0 && !strings.HasPrefix(s, commentLine) {
			q.lines = append(q.lines, Line{Entry: s, Batch: batch})
		}
	}
}

// Load script into queue. The commands of the script are added after any
// commands already in the queue.
func (q *Queue) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return curated.Errorf(NoScript, filename)
		}
		return curated.Errorf(ScriptError, err)
	}
	defer f.Close()

	s, err := io.ReadAll(f)
	if err != nil {
		return curated.Errorf(ScriptError, err)
	}

	q.push(string(s), true)

	return nil
}
