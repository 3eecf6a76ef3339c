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

package commandline

import (
	"strconv"
	"strings"
)

// Arg is the value of one placeholder in a matched template.
type Arg struct {
	// the digits as they appeared in the input, in upper case
	Digits string

	// the numeric value of the digits. zero for unbounded runs, which are
	// accessed with Command.Bytes()
	Value uint64
}

// Command is the result of a successful Parse().
type Command struct {
	// the Name field of the matching Definition
	Name string

	// the input after normalisation (trimmed and converted to upper case)
	Input string

	// one entry for every placeholder in the template, in order
	Args []Arg
}

func (cmd Command) arg(i int) Arg {
	if i < 0 || i >= len(cmd.Args) {
		return Arg{}
	}
	return cmd.Args[i]
}

// Uint16 returns the value of placeholder i truncated to 16 bits.
func (cmd Command) Uint16(i int) uint16 {
	return uint16(cmd.arg(i).Value)
}

// Uint8 returns the value of placeholder i truncated to 8 bits.
func (cmd Command) Uint8(i int) uint8 {
	return uint8(cmd.arg(i).Value)
}

// Int returns the value of placeholder i.
func (cmd Command) Int(i int) int {
	return int(cmd.arg(i).Value)
}

// Bytes converts the digits of placeholder i to a sequence of bytes, two
// digits per byte. An odd final digit forms a byte on its own.
func (cmd Command) Bytes(i int) []byte {
	d := cmd.arg(i).Digits
	b := make([]byte, 0, (len(d)+1)/2)
	for len(d) > 0 {
		n := min(2, len(d))
		v, _ := strconv.ParseUint(d[:n], 16, 8)
		b = append(b, uint8(v))
		d = d[n:]
	}
	return b
}

// normalise prepares input for matching.
func normalise(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// match input against the elements of a template. input must already be
// normalised.
func match(els []element, input string) ([]Arg, bool) {
	var args []Arg

	i := 0
	for _, el := range els {
		if el.kind == literal {
			if i >= len(input) || input[i] != el.lit {
				return nil, false
			}
			i++
			continue
		}

		s := i
		for i < len(input) && el.digit(input[i]) && (el.width == 0 || i-s < el.width) {
			i++
		}
		if i == s {
			return nil, false
		}

		a := Arg{Digits: input[s:i]}
		if el.width > 0 {
			// cannot fail because every digit has been checked and the
			// widest run is nine digits
			a.Value, _ = strconv.ParseUint(a.Digits, el.base(), 64)
		}
		args = append(args, a)
	}

	if i != len(input) {
		return nil, false
	}

	return args, true
}
