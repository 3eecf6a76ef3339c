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

package terminal_test

import (
	"testing"

	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/test"
)

func TestPrompt(t *testing.T) {
	p := terminal.Prompt{Content: " Tiny85 0100 "}
	test.ExpectEquality(t, p.String(), "[ Tiny85 0100 ] >> ")

	p.Running = true
	test.ExpectEquality(t, p.String(), "[ Tiny85 0100 (running) ] >> ")

	p = terminal.Prompt{Content: "ISP", Key: true}
	test.ExpectEquality(t, p.String(), "[ ISP ] > ")
}
