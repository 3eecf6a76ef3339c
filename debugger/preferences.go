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

package debugger

import (
	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugwire"
	"github.com/jetsetilly/gopherdw/prefs"
)

// Preferences defines and collates all the preference values used by the debugger
type Preferences struct {
	dsk *prefs.Disk

	// the communication rate used when the rate of the target can not be
	// measured
	Rate prefs.Int

	// the number of idle bit times after which a response is abandoned
	Timeout prefs.Int
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
	err = p.dsk.Add("debugwire.rate", &p.Rate)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("debugwire.timeout", &p.Timeout)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Rate.Set(debugwire.DefaultRate)
	p.Timeout.Set(debugwire.DefaultTimeout)
}

// Save preferences to disk. Does nothing if the preferences are not bound to
// a file.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

// Disk returns the underlying prefs.Disk. It is nil if the preferences are
// not bound to a file.
func (p *Preferences) Disk() *prefs.Disk {
	return p.dsk
}

// bind the preferences to the command channel. changes to the preferences
// take effect immediately, including changes made by reloading the file.
func (p *Preferences) bind(ch *debugwire.Channel) {
	p.Timeout.SetHookPost(func(v prefs.Value) error {
		ch.SetTimeout(v.(int))
		return nil
	})
	ch.SetTimeout(p.Timeout.Get().(int))
}
