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
	"fmt"
	"time"

	"github.com/jetsetilly/gopherdw/debugger/script"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/debugger/terminal/commandline"
	"github.com/jetsetilly/gopherdw/debugwire"
	"github.com/jetsetilly/gopherdw/debugwire/memory"
	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/isp"
	"github.com/jetsetilly/gopherdw/transport"
)

// Debugger is the interactive session with a part. Until debugWIRE is engaged
// the operator is presented with the ISP menu. Once engaged the debugging
// commands are available.
type Debugger struct {
	term terminal.Terminal

	// preferences for the debugger
	Prefs *Preferences

	link  transport.Link
	power transport.Power
	ch    *debugwire.Channel
	mem   *memory.Accessor

	// the programmer is optional. without it the fuses can not be changed
	// and the part can not be identified before debugWIRE is engaged
	prog *isp.Programmer

	// the grammar of the debugging commands and of the ISP menu
	cmds *commandline.Commands
	menu *commandline.Commands

	// debugWIRE has been engaged
	connected bool

	// the target is executing. only the BREAK command is accepted
	running bool

	// the program counter as last read from or written to the target. the
	// target program counter is overwritten by most debugWIRE operations so
	// the value is written back before every step or run
	pc uint16

	// the command to use if the operator enters an empty line
	repeat string

	// the part as identified by ISP or by the debugWIRE signature. nil if
	// the part has not been identified or if it is not in the catalog
	profile *device.Profile

	// period to wait after power is applied to the part
	settle time.Duration

	// how often a running target is checked for a breakpoint
	pollInterval time.Duration

	// commands waiting to be processed and the optional record of the
	// session
	script script.Queue
	scribe script.Scribe

	// signalled when the preferences file changes. the file is reloaded by
	// the input loop so that preference hooks run between commands
	prefsChanged chan struct{}
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type. The programmer can be nil. Power to the target is switched if the
// link implements the transport.Power interface.
//
// The link is disabled until the operator engages debugWIRE.
func NewDebugger(term terminal.Terminal, link transport.Link, prog *isp.Programmer, prefs *Preferences) (*Debugger, error) {
	dbg := &Debugger{
		term:         term,
		Prefs:        prefs,
		link:         link,
		prog:         prog,
		settle:       100 * time.Millisecond,
		pollInterval: 10 * time.Millisecond,
		prefsChanged: make(chan struct{}, 1),
	}

	if dbg.Prefs == nil {
		var err error
		dbg.Prefs, err = NewPreferences("")
		if err != nil {
			return nil, fmt.Errorf("debugger: %w", err)
		}
	}

	if p, ok := link.(transport.Power); ok {
		dbg.power = p
	}

	dbg.ch = debugwire.NewChannel(link)
	dbg.ch.SetRate(dbg.Prefs.Rate.Get().(int))
	dbg.Prefs.bind(dbg.ch)
	dbg.mem = memory.NewAccessor(dbg.ch)

	var err error

	dbg.cmds, err = commandline.ParseCommandTemplate(commandTemplate)
	if err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}
	err = dbg.cmds.AddHelp(cmdHelp, help)
	if err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}

	dbg.menu, err = commandline.ParseCommandTemplate(menuTemplate)
	if err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}

	if err := link.Enable(false); err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}

	return dbg, nil
}

// Connected returns true if debugWIRE has been engaged.
func (dbg *Debugger) Connected() bool {
	return dbg.connected
}

// Running returns true if the target is executing.
func (dbg *Debugger) Running() bool {
	return dbg.running
}

// PC returns the program counter as last read from or written to the target.
func (dbg *Debugger) PC() uint16 {
	return dbg.pc
}

// Profile returns the profile of the identified part. The result is nil if
// the part has not been identified.
func (dbg *Debugger) Profile() *device.Profile {
	return dbg.profile
}

// setProfile changes the identified part. the profile is shared with the
// memory accessor.
func (dbg *Debugger) setProfile(p *device.Profile) {
	dbg.profile = p
	dbg.mem.SetProfile(p)
}

// the prompt reflects the state of the session
func (dbg *Debugger) prompt() terminal.Prompt {
	if !dbg.connected {
		return terminal.Prompt{Content: "ISP", Key: true}
	}

	name := "unknown"
	if dbg.profile != nil {
		name = dbg.profile.Name
	}

	return terminal.Prompt{
		Content: fmt.Sprintf("%s %04X", name, dbg.pc),
		Running: dbg.running,
	}
}

// LoadScript adds the commands in the script file to the queue of commands
// waiting to be processed. Queued commands are processed before the operator
// is prompted and are held while the target is running.
func (dbg *Debugger) LoadScript(filename string) error {
	return dbg.script.Load(filename)
}

// Record the session to the named file. The commands entered by the operator
// are written along with the output of the debugger as comments. The
// recording ends with the session.
func (dbg *Debugger) Record(filename string) error {
	return dbg.scribe.StartSession(filename)
}
