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

	"github.com/jetsetilly/gopherdw/curated"
)

// Sentinal error patterns.
const (
	NoMatch         = "commandline: no match: %s"
	InvalidTemplate = "commandline: %s: %v (char %d)"
	Duplicate       = "commandline: %s: already defined"
)

// Definition describes one command.
type Definition struct {
	// Name identifies the command. It is copied to Command.Name when the
	// template matches and is used as the key for help text. More than one
	// definition can share a name if they should share a help entry.
	Name string

	// Template is the pattern the input must match. See the package
	// documentation for the syntax.
	Template string

	// Usage is the form of the command shown to the operator in help text.
	// If it is empty the template is shown instead.
	Usage string
}

type definition struct {
	Definition
	els []element
}

func (defn definition) String() string {
	s := strings.Builder{}
	for _, el := range defn.els {
		s.WriteString(el.String())
	}
	return s.String()
}

func (defn definition) usage() string {
	if defn.Usage != "" {
		return defn.Usage
	}
	return defn.Template
}

// Commands is the list of parsed definitions.
type Commands struct {
	// Index of the first definition with a given name
	Index map[string]*definition

	cmds []*definition

	helpCommand string
	helpWidth   int
	helps       map[string]string
}

// ParseCommandTemplate parses every Definition. Definitions are tried in the
// order they are given.
func ParseCommandTemplate(defs []Definition) (*Commands, error) {
	cmds := &Commands{
		Index: make(map[string]*definition),
		cmds:  make([]*definition, 0, len(defs)),
	}

	for _, d := range defs {
		if err := cmds.add(d); err != nil {
			return nil, err
		}
	}

	return cmds, nil
}

func (cmds *Commands) add(d Definition) error {
	els, pos, err := parseTemplate(d.Template)
	if err != nil {
		return curated.Errorf(InvalidTemplate, d.Template, err, pos)
	}

	d.Name = strings.ToUpper(d.Name)
	if d.Name == "" {
		d.Name = strings.ToUpper(d.Template)
	}

	defn := &definition{Definition: d, els: els}
	for _, c := range cmds.cmds {
		if c.String() == defn.String() {
			return curated.Errorf(Duplicate, d.Template)
		}
	}

	cmds.cmds = append(cmds.cmds, defn)
	if _, ok := cmds.Index[d.Name]; !ok {
		cmds.Index[d.Name] = defn
	}

	return nil
}

// Len returns the number of definitions.
func (cmds Commands) Len() int {
	return len(cmds.cmds)
}

// String returns the normalised template of every definition, one per line.
// Use this only for testing/validation purposes. HelpOverview() is more
// useful to the end user.
func (cmds Commands) String() string {
	s := strings.Builder{}
	for _, c := range cmds.cmds {
		s.WriteString(c.String())
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// Parse matches the input against every definition and returns the first
// match. Input that matches nothing returns an error matching the NoMatch
// pattern.
func (cmds Commands) Parse(input string) (Command, error) {
	input = normalise(input)
	for _, c := range cmds.cmds {
		if args, ok := match(c.els, input); ok {
			return Command{Name: c.Name, Input: input, Args: args}, nil
		}
	}
	return Command{Input: input}, curated.Errorf(NoMatch, input)
}

// AddHelp adds a help command to an already prepared Commands type. The help
// text for each command is taken from the helps map, keyed by command name.
func (cmds *Commands) AddHelp(helpCommand string, helps map[string]string) error {
	helpCommand = strings.ToUpper(helpCommand)

	// if help command exists then there is nothing to do
	if _, ok := cmds.Index[helpCommand]; ok {
		return curated.Errorf(Duplicate, helpCommand)
	}

	err := cmds.add(Definition{Name: helpCommand, Template: helpCommand})
	if err != nil {
		return err
	}

	// keep reference to helps
	cmds.helps = helps
	cmds.helpCommand = helpCommand

	// the widest usage string decides the width of the first column
	cmds.helpWidth = 0
	for _, c := range cmds.cmds {
		cmds.helpWidth = max(cmds.helpWidth, len(c.usage()))
	}
	cmds.helpWidth += 2

	return nil
}

// HelpOverview returns the usage and help text of every command with an
// entry in the helps map. The help command is listed first.
func (cmds Commands) HelpOverview() string {
	s := strings.Builder{}

	line := func(c *definition) {
		s.WriteString(fmt.Sprintf("  %-*s%s\n", cmds.helpWidth, c.usage(), cmds.helps[c.Name]))
	}

	if c, ok := cmds.Index[cmds.helpCommand]; ok {
		if _, ok := cmds.helps[c.Name]; ok {
			line(c)
		}
	}

	for _, c := range cmds.cmds {
		if c.Name == cmds.helpCommand {
			continue
		}
		if _, ok := cmds.helps[c.Name]; !ok {
			continue
		}
		line(c)
	}

	return strings.TrimRight(s.String(), "\n")
}

// Help returns the help (and usage for the command).
func (cmds Commands) Help(keyword string) string {
	keyword = strings.ToUpper(keyword)

	s := strings.Builder{}

	if helpTxt, ok := cmds.helps[keyword]; !ok {
		s.WriteString(fmt.Sprintf("no help for %s", keyword))
	} else {
		s.WriteString(helpTxt)
		if cmd, ok := cmds.Index[keyword]; ok {
			s.WriteString("\n\n  Usage: ")
			s.WriteString(cmd.usage())
		}
	}

	return s.String()
}
