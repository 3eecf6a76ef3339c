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
	"fmt"
	"strings"
)

// the kind of an element in a parsed template.
type kind int

const (
	literal kind = iota
	hexRun
	decRun
	octal
	binary
)

func (k kind) String() string {
	switch k {
	case literal:
		return "literal"
	case hexRun:
		return "hex"
	case decRun:
		return "decimal"
	case octal:
		return "octal"
	case binary:
		return "binary"
	}
	return "unknown"
}

// element is one part of a template. a width of zero for a run means the run
// is unbounded.
type element struct {
	kind  kind
	lit   byte
	width int
}

func (el element) placeholder() bool {
	return el.kind != literal
}

// digit returns true if the byte is acceptable to the element. it should not
// be called for literal elements.
func (el element) digit(c byte) bool {
	switch el.kind {
	case hexRun:
		return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
	case decRun:
		return c >= '0' && c <= '9'
	case octal:
		return c >= '0' && c <= '7'
	case binary:
		return c == '0' || c == '1'
	}
	return false
}

func (el element) base() int {
	switch el.kind {
	case hexRun:
		return 16
	case decRun:
		return 10
	case octal:
		return 8
	case binary:
		return 2
	}
	return 0
}

func (el element) String() string {
	switch el.kind {
	case literal:
		if el.lit == '%' {
			return "%%"
		}
		return string(el.lit)
	case hexRun:
		if el.width == 0 {
			return "%*X"
		}
		return fmt.Sprintf("%%%dX", el.width)
	case decRun:
		return fmt.Sprintf("%%%dD", el.width)
	case octal:
		return "%O"
	case binary:
		return "%B"
	}
	return "?"
}

// parseTemplate converts the template string into a list of elements. the
// position of the first faulty character is returned with any error.
func parseTemplate(template string) ([]element, int, error) {
	if template == "" {
		return nil, 0, fmt.Errorf("empty template")
	}

	template = strings.ToUpper(template)

	var els []element
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			els = append(els, element{kind: literal, lit: c})
			continue
		}

		i++
		if i >= len(template) {
			return nil, i, fmt.Errorf("unterminated placeholder")
		}

		switch c := template[i]; {
		case c == '%':
			els = append(els, element{kind: literal, lit: '%'})
		case c == 'O':
			els = append(els, element{kind: octal, width: 1})
		case c == 'B':
			els = append(els, element{kind: binary, width: 1})
		case c == '*':
			i++
			if i >= len(template) || template[i] != 'X' {
				return nil, i, fmt.Errorf("unbounded placeholder must be hexadecimal")
			}
			els = append(els, element{kind: hexRun})
		case c >= '1' && c <= '9':
			w := int(c - '0')
			i++
			if i >= len(template) {
				return nil, i, fmt.Errorf("unterminated placeholder")
			}
			switch template[i] {
			case 'X':
				els = append(els, element{kind: hexRun, width: w})
			case 'D':
				els = append(els, element{kind: decRun, width: w})
			default:
				return nil, i, fmt.Errorf("unknown placeholder (%c)", template[i])
			}
		default:
			return nil, i, fmt.Errorf("unknown placeholder (%c)", c)
		}

		// a run of more than one digit must be followed by a literal
		if n := len(els); n > 1 {
			if prev := els[n-2]; prev.placeholder() && prev.width != 1 {
				return nil, i, fmt.Errorf("placeholder must follow a literal")
			}
		}
	}

	return els, 0, nil
}
