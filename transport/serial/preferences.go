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

package serial

import (
	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/prefs"
)

// DefaultPort is the serial port used if none is specified.
const DefaultPort = "/dev/ttyUSB0"

// Preferences for the serial link.
type Preferences struct {
	dsk *prefs.Disk

	// the name of the serial device
	Port prefs.String

	// the adapter sees its own transmissions
	Echo prefs.Bool
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If filename is empty the preferences are not bound to a
// file and have their default values.
func NewPreferences(filename string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if filename == "" {
		return p, nil
	}

	var err error
	p.dsk, err = prefs.NewDisk(filename)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("serial.port", &p.Port)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("serial.echo", &p.Echo)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Port.Set(DefaultPort)
	p.Echo.Set(true)
}

// Save preferences to disk. Does nothing if the preferences are not bound to
// a file.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
