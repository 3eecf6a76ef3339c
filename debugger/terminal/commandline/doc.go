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

// Package commandline matches operator input against a list of command
// templates. Each template is a keyword made of literal characters and
// numeric placeholders. For example:
//
//	defs := []commandline.Definition{
//		{Name: "SB", Template: "SB%4X", Usage: "SBxxxx"},
//		{Name: "SB=", Template: "SB%4X=%2X", Usage: "SBxxxx=yy"},
//		{Name: "IO.", Template: "IO%2X.%O=%B", Usage: "IOxx.d=b"},
//	}
//
// Placeholders are introduced with the percent sign:
//
//	%nX	a run of between one and n hexadecimal digits
//	%nD	a run of between one and n decimal digits
//	%*X	a run of any number of hexadecimal digits (at least one)
//	%O	a single octal digit
//	%B	a single binary digit
//	%%	a literal percent sign
//
// A run is greedy. It consumes as many digits as are present up to its
// maximum width and the following part of the template must then match the
// remaining input. There is no backtracking, so a run of more than one digit
// must be followed by a literal character or by the end of the template.
//
// Matching is case-insensitive and the whole of the input must be consumed
// for a template to match. The first matching template in the list wins.
// Parse() returns a Command with the values of every placeholder already
// converted, so the caller never needs to rescan the input text.
//
//	cmds, _ := commandline.ParseCommandTemplate(defs)
//	cmd, err := cmds.Parse("sb0060=ff")
//	if err != nil {
//		// input did not match any template
//	}
//	addr := cmd.Uint16(0)
//	val := cmd.Uint8(1)
package commandline
