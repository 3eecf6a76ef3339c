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

package commandline_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/terminal/commandline"
	"github.com/jetsetilly/gopherdw/test"
)

var defs = []commandline.Definition{
	{Name: "PC", Template: "PC"},
	{Name: "PC=", Template: "PC=%4X", Usage: "PC=xxxx"},
	{Name: "REGS", Template: "REGS"},
	{Name: "R", Template: "R%2D", Usage: "Rdd"},
	{Name: "R=", Template: "R%2D=%2X", Usage: "Rdd=xx"},
	{Name: "IO.", Template: "IO%2X.%O=%B", Usage: "IOxx.d=b"},
	{Name: "SB", Template: "SB%4X", Usage: "SBxxxx"},
	{Name: "SB=", Template: "SB%4X=%2X", Usage: "SBxxxx=yy"},
	{Name: "RUN", Template: "RUN"},
	{Name: "RUN_BP", Template: "RUN %4X", Usage: "RUN xxxx"},
	{Name: "RUN_AT_BP", Template: "RUN%4X %4X", Usage: "RUNxxxx yyyy"},
	{Name: "RUN_AT", Template: "RUN%4X", Usage: "RUNxxxx"},
	{Name: "CMD=", Template: "CMD=%*X", Usage: "CMD=xx..."},
}

func TestParseTemplate(t *testing.T) {
	cmds, err := commandline.ParseCommandTemplate(defs)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cmds.Len(), len(defs))

	lines := strings.Split(cmds.String(), "\n")
	test.ExpectEquality(t, lines[5], "IO%2X.%O=%B")
	test.ExpectEquality(t, lines[12], "CMD=%*X")

	bad := []string{
		"",
		"SB%",
		"SB%4",
		"SB%4Q",
		"SB%Z",
		"SB%*D",
		"SB%4X%2X",
		"SB%2D%O",
	}
	for _, b := range bad {
		_, err := commandline.ParseCommandTemplate([]commandline.Definition{{Template: b}})
		if test.ExpectFailure(t, err, b) {
			test.ExpectSuccess(t, curated.Is(err, commandline.InvalidTemplate), b)
		}
	}

	// single digit placeholders may follow each other
	_, err = commandline.ParseCommandTemplate([]commandline.Definition{{Template: "X%O%B%1X"}})
	test.ExpectSuccess(t, err)

	// two templates that are the same after normalisation
	_, err = commandline.ParseCommandTemplate([]commandline.Definition{
		{Name: "A", Template: "sb%4x"},
		{Name: "B", Template: "SB%4X"},
	})
	test.ExpectSuccess(t, curated.Is(err, commandline.Duplicate))
}

func TestParse(t *testing.T) {
	cmds, err := commandline.ParseCommandTemplate(defs)
	test.DemandSuccess(t, err)

	type tc struct {
		input string
		name  string
		args  []uint64
	}

	cases := []tc{
		{input: "PC", name: "PC"},
		{input: "pc", name: "PC"},
		{input: "  pc  ", name: "PC"},
		{input: "PC=0100", name: "PC=", args: []uint64{0x100}},
		{input: "PC=1", name: "PC=", args: []uint64{1}},
		{input: "regs", name: "REGS"},
		{input: "R5", name: "R", args: []uint64{5}},
		{input: "R31", name: "R", args: []uint64{31}},
		{input: "R99", name: "R", args: []uint64{99}},
		{input: "r16=a5", name: "R=", args: []uint64{16, 0xA5}},
		{input: "IO1C.3=1", name: "IO.", args: []uint64{0x1C, 3, 1}},
		{input: "SB60", name: "SB", args: []uint64{0x60}},
		{input: "SB001f", name: "SB", args: []uint64{0x1F}},
		{input: "SB0060=FF", name: "SB=", args: []uint64{0x60, 0xFF}},
		{input: "RUN", name: "RUN"},
		{input: "RUN 0100", name: "RUN_BP", args: []uint64{0x100}},
		{input: "RUN0000 0100", name: "RUN_AT_BP", args: []uint64{0, 0x100}},
		{input: "run10", name: "RUN_AT", args: []uint64{0x10}},
	}

	for _, c := range cases {
		cmd, err := cmds.Parse(c.input)
		if !test.ExpectSuccess(t, err, c.input) {
			continue
		}
		test.ExpectEquality(t, cmd.Name, c.name, c.input)
		if test.ExpectEquality(t, len(cmd.Args), len(c.args), c.input) {
			for i := range c.args {
				test.ExpectEquality(t, cmd.Args[i].Value, c.args[i], c.input)
			}
		}
	}

	cmd, err := cmds.Parse("sb0060=ff")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cmd.Input, "SB0060=FF")
	test.ExpectEquality(t, cmd.Uint16(0), uint16(0x0060))
	test.ExpectEquality(t, cmd.Uint8(1), uint8(0xFF))
	test.ExpectEquality(t, cmd.Args[0].Digits, "0060")

	// out of range argument index
	test.ExpectEquality(t, cmd.Uint16(5), uint16(0))
}

func TestNoMatch(t *testing.T) {
	cmds, err := commandline.ParseCommandTemplate(defs)
	test.DemandSuccess(t, err)

	for _, input := range []string{
		"",
		"P",
		"PCX",
		"PC=",
		"PC=12345",
		"PC=01G0",
		"R123",
		"R5=",
		"IO1C.8=1",
		"IO1C.3=2",
		"IO1C.3=10",
		"SB0060=",
		"SB0060=123",
		"RUN  0100",
		"RUN0000 01000",
		"CMD=",
		"XYZZY",
	} {
		cmd, err := cmds.Parse(input)
		if test.ExpectFailure(t, err, input) {
			test.ExpectSuccess(t, curated.Is(err, commandline.NoMatch), input)
			test.ExpectEquality(t, cmd.Name, "", input)
		}
	}
}

func TestBytes(t *testing.T) {
	cmds, err := commandline.ParseCommandTemplate(defs)
	test.DemandSuccess(t, err)

	cmd, err := cmds.Parse("CMD=F3f0")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cmd.Name, "CMD=")
	b := cmd.Bytes(0)
	if test.ExpectEquality(t, len(b), 2) {
		test.ExpectEquality(t, b[0], uint8(0xF3))
		test.ExpectEquality(t, b[1], uint8(0xF0))
	}

	// unbounded runs have no numeric value
	test.ExpectEquality(t, cmd.Args[0].Value, uint64(0))

	cmd, err = cmds.Parse("CMD=F3F")
	test.DemandSuccess(t, err)
	b = cmd.Bytes(0)
	if test.ExpectEquality(t, len(b), 2) {
		test.ExpectEquality(t, b[0], uint8(0xF3))
		test.ExpectEquality(t, b[1], uint8(0x0F))
	}
}

func TestHelp(t *testing.T) {
	cmds, err := commandline.ParseCommandTemplate(defs)
	test.DemandSuccess(t, err)

	helps := map[string]string{
		"HELP": "Print this menu",
		"PC":   "Read and Print Program Counter",
		"SB=":  "Set SRAM location xxxx to new byte value yy",
	}
	test.DemandSuccess(t, cmds.AddHelp("help", helps))

	// help can't be added twice
	test.ExpectFailure(t, cmds.AddHelp("HELP", helps))

	cmd, err := cmds.Parse("help")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cmd.Name, "HELP")

	// the widest usage is "RUNxxxx yyyy"
	overview := strings.Split(cmds.HelpOverview(), "\n")
	if test.ExpectEquality(t, len(overview), 3) {
		test.ExpectEquality(t, overview[0], "  HELP          Print this menu")
		test.ExpectEquality(t, overview[1], "  PC            Read and Print Program Counter")
		test.ExpectEquality(t, overview[2], "  SBxxxx=yy     Set SRAM location xxxx to new byte value yy")
	}

	test.ExpectEquality(t, cmds.Help("sb="), "Set SRAM location xxxx to new byte value yy\n\n  Usage: SBxxxx=yy")
	test.ExpectEquality(t, cmds.Help("R"), "no help for R")
}
