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

package script_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/script"
	"github.com/jetsetilly/gopherdw/test"
)

func TestQueue(t *testing.T) {
	var q script.Queue
	test.ExpectFailure(t, q.More())

	q.Push("REGS; PC\r\n# comment\r\n\n  SB0060  ")
	for _, e := range []string{"REGS", "PC", "SB0060"} {
		ln, ok := q.Next()
		test.DemandSuccess(t, ok)
		test.ExpectEquality(t, ln.Entry, e)
		test.ExpectFailure(t, ln.Batch)
	}

	_, ok := q.Next()
	test.ExpectFailure(t, ok)
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "script")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("# init\nB\nREGS\n"), 0600))

	var q script.Queue
	q.Push("F")
	test.DemandSuccess(t, q.Load(fn))

	ln, _ := q.Next()
	test.ExpectEquality(t, ln, script.Line{Entry: "F"})
	ln, _ = q.Next()
	test.ExpectEquality(t, ln, script.Line{Entry: "B", Batch: true})
	ln, _ = q.Next()
	test.ExpectEquality(t, ln, script.Line{Entry: "REGS", Batch: true})
	test.ExpectFailure(t, q.More())

	err := q.Load(filepath.Join(t.TempDir(), "missing"))
	test.ExpectSuccess(t, curated.Is(err, script.NoScript))
}

func TestScribe(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "session")

	var scr script.Scribe
	test.ExpectFailure(t, scr.IsActive())
	test.ExpectSuccess(t, scr.WriteInput("ignored"))

	test.DemandSuccess(t, scr.StartSession(fn))
	test.ExpectSuccess(t, scr.IsActive())
	test.ExpectFailure(t, scr.StartSession(fn))

	test.ExpectSuccess(t, scr.WriteInput("PC"))
	test.ExpectSuccess(t, scr.WriteOutput("PC:     0000"))
	test.ExpectSuccess(t, scr.EndSession())
	test.ExpectFailure(t, scr.IsActive())

	b, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	l := strings.Split(strings.TrimSpace(string(b)), "\n")
	test.DemandEquality(t, len(l), 3)
	test.ExpectSuccess(t, strings.HasPrefix(l[0], "# scribed "))
	test.ExpectEquality(t, l[1], "PC")
	test.ExpectEquality(t, l[2], "# PC:     0000")

	// a scribed script replays the input only
	var q script.Queue
	test.DemandSuccess(t, q.Load(fn))
	ln, _ := q.Next()
	test.ExpectEquality(t, ln.Entry, "PC")
	test.ExpectFailure(t, q.More())

	// existing files are not overwritten
	test.ExpectFailure(t, scr.StartSession(fn))
}
