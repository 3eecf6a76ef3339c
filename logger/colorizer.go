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

package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var colorizerDetail = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("1"))

// Colorizer applies basic coloring rules to logging output. The first line
// of every write is left as it is and any following lines are dimmed.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	l := strings.Split(strings.TrimSpace(string(p)), "\n")

	_, err := io.WriteString(c.out, l[0]+"\n")
	if err != nil {
		return 0, err
	}

	for _, s := range l[1:] {
		_, err := io.WriteString(c.out, colorizerDetail.Render(s)+"\n")
		if err != nil {
			return 0, err
		}
	}

	return len(p), nil
}
