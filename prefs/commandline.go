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

package prefs

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// an override is a preference value given with the -prefs flag. it is used
// instead of the value in the preferences file whenever a Disk is loaded
type override struct {
	value string
	used  bool
}

// the overrides for a session. only the most recent group is consulted
var overrides struct {
	crit   sync.Mutex
	groups []map[string]*override
}

// separates the key and value of an override
const overrideSeparator = "::"

// PushOverrides parses the argument of the -prefs flag and makes it the
// current group of overrides. Overrides are separated by semicolons. For
// example:
//
//	serial.port::/dev/ttyUSB0; debugwire.rate::62500
//
// Malformed overrides are ignored.
func PushOverrides(s string) {
	grp := make(map[string]*override)
	for _, o := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(o, overrideSeparator)
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		grp[k] = &override{value: strings.TrimSpace(v)}
	}

	overrides.crit.Lock()
	defer overrides.crit.Unlock()
	overrides.groups = append(overrides.groups, grp)
}

// PopOverrides forgets the current group of overrides. The overrides in the
// group that were never used are returned in the format accepted by
// PushOverrides(), sorted by key. A misspelt key on the command line will
// show up here.
func PopOverrides() string {
	overrides.crit.Lock()
	defer overrides.crit.Unlock()

	if len(overrides.groups) == 0 {
		return ""
	}

	grp := overrides.groups[len(overrides.groups)-1]
	overrides.groups = overrides.groups[:len(overrides.groups)-1]

	var unused []string
	for _, k := range slices.Sorted(maps.Keys(grp)) {
		if !grp[k].used {
			unused = append(unused, fmt.Sprintf("%s%s%s", k, overrideSeparator, grp[k].value))
		}
	}
	return strings.Join(unused, "; ")
}

// Overrides returns the number of groups of overrides.
func Overrides() int {
	overrides.crit.Lock()
	defer overrides.crit.Unlock()
	return len(overrides.groups)
}

// Override returns the value for the key in the current group. The override
// stays in force, so reloading a preferences file does not undo it.
func Override(key string) (Value, bool) {
	overrides.crit.Lock()
	defer overrides.crit.Unlock()

	if len(overrides.groups) == 0 {
		return nil, false
	}

	o, ok := overrides.groups[len(overrides.groups)-1][key]
	if !ok {
		return nil, false
	}
	o.used = true
	return o.value, true
}
