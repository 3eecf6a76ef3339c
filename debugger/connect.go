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

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/hardware/device"
	"github.com/jetsetilly/gopherdw/isp"
	"github.com/jetsetilly/gopherdw/logger"
)

// parseMenu processes a key from the ISP menu. It returns true if the session
// should end.
func (dbg *Debugger) parseMenu(input string) bool {
	cmd, err := dbg.menu.Parse(input)
	if err != nil {
		dbg.printMenu()
		return false
	}

	switch cmd.Name {
	case keyIdentify:
		dbg.printFuses()
	case keyEnableDWEN, keyDisableDWEN:
		dbg.changeFuse("DWEN", cmd.Name == keyEnableDWEN)
	case keyEnableCKDIV8, keyDisableDiv8:
		dbg.changeFuse("CKDIV8", cmd.Name == keyEnableCKDIV8)
	case keyConnect:
		dbg.connect()
	case cmdHelp:
		dbg.printMenu()
	case cmdLog:
		logger.Write(dbg.printStyle(terminal.StyleLog))
	case cmdQuit:
		return true
	}

	return false
}

func (dbg *Debugger) printMenu() {
	for _, l := range menu {
		dbg.printLine(terminal.StyleHelp, l)
	}
}

// ispIdentify identifies the part using the programmer. the part is only
// identified once. returns false if the part could not be identified.
func (dbg *Debugger) ispIdentify() bool {
	if dbg.prog == nil {
		dbg.printLine(terminal.StyleError, "ISP programmer not available")
		return false
	}

	if dbg.profile != nil && dbg.prog.ProgramMode() {
		return true
	}

	profile, sig, err := dbg.prog.Identify()
	if err != nil {
		if curated.Is(err, isp.UnknownDevice) {
			dbg.printLine(terminal.StyleFeedback, "%s%s = unknown part", pad("SIG:"), hexBytes(sig[:]))
			dbg.setProfile(nil)
			return false
		}
		dbg.printError(err)
		return false
	}

	dbg.printLine(terminal.StyleFeedback, "%s%s = %s", pad("SIG:"), hexBytes(sig[:]), profile.Name)
	dbg.setProfile(&profile)
	return true
}

func enabled(programmed bool) string {
	if programmed {
		return "Enabled"
	}
	return "Disabled"
}

// printFuses identifies the part and prints the fuse bytes
func (dbg *Debugger) printFuses() {
	if !dbg.ispIdentify() {
		return
	}

	f, err := dbg.prog.Fuses()
	if err != nil {
		dbg.printError(err)
		return
	}

	// a programmed fuse bit is zero
	dbg.printLine(terminal.StyleFeedback, "Low: %02X, High: %02X, Extd: %02X - CKDIV8 %s, DWEN %s",
		f.Low, f.High, f.Ext,
		enabled(f.Low&dbg.profile.CKDIV8 == 0),
		enabled(f.High&dbg.profile.DWEN == 0))
}

// changeFuse programs or unprograms the DWEN or CKDIV8 fuse
func (dbg *Debugger) changeFuse(fuse string, enable bool) {
	if !dbg.ispIdentify() {
		dbg.printLine(terminal.StyleFeedback, "Unable to change %s fuse", fuse)
		return
	}

	var err error
	switch fuse {
	case "DWEN":
		err = dbg.prog.SetDWEN(*dbg.profile, enable)
	case "CKDIV8":
		err = dbg.prog.SetCKDIV8(*dbg.profile, enable)
	}

	switch {
	case err == nil:
		dbg.printLine(terminal.StyleFeedback, "%s Fuse %s", fuse, enabled(enable))
	case curated.Is(err, isp.Unchanged):
		dbg.printLine(terminal.StyleFeedback, "%s Fuse Already %s", fuse, enabled(enable))
	default:
		logger.Logf(logger.Allow, "debugger", "%s: %v", fuse, err)
		dbg.printLine(terminal.StyleFeedback, "Unable to change %s fuse", fuse)
	}
}

// connect power cycles the part, measures the communication rate and
// engages debugWIRE. the part must have the DWEN fuse programmed.
func (dbg *Debugger) connect() {
	dbg.printLine(terminal.StyleFeedback, "Cycling Vcc")
	if err := dbg.cycleVcc(); err != nil {
		dbg.printError(err)
		return
	}

	if err := dbg.link.Enable(false); err != nil {
		dbg.printError(err)
		return
	}

	rate, err := dbg.ch.MeasureRate()
	if err != nil {
		rate = dbg.Prefs.Rate.Get().(int)
		logger.Logf(logger.Allow, "debugger", "%v: using %d bps", err, rate)
	}
	dbg.printLine(terminal.StyleFeedback, "%s%d bps", pad("Speed:"), rate)

	if err := dbg.link.Enable(true); err != nil {
		dbg.printError(err)
		return
	}
	if err := dbg.link.Configure(rate); err != nil {
		dbg.printError(err)
		return
	}
	dbg.ch.SetRate(rate)

	err = dbg.ch.Break()
	dbg.printLine(terminal.StyleFeedback, "Sending BREAK: %s", okErr(err))
	if err != nil {
		logger.Logf(logger.Allow, "debugger", "connect: %v", err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "debugWire Enabled")

	dbg.connected = true
	dbg.running = false
	dbg.repeat = ""
	dbg.pc = 0
	dbg.mem.Invalidate()

	// the reset pin is now the debugWIRE pin. the programmer must not drive
	// the SPI pins
	if dbg.prog != nil {
		if err := dbg.prog.Release(); err != nil {
			logger.Logf(logger.Allow, "debugger", "release: %v", err)
		}
	}

	sig, err := dbg.ch.ReadSignature()
	if err != nil {
		dbg.printError(err)
		return
	}
	dbg.printLine(terminal.StyleFeedback, "%s%s", pad("SIG:"), dbg.identifySignature(sig))

	if dbg.profile != nil {
		dbg.printProfile(*dbg.profile)
	}
}

func (dbg *Debugger) printProfile(p device.Profile) {
	dbg.printLine(terminal.StyleFeedback, "%s%d bytes", pad("Flash:"), p.Flash)
	dbg.printLine(terminal.StyleFeedback, "%s%d bytes", pad("SRAM:"), p.SRAMSize)
	dbg.printLine(terminal.StyleFeedback, "%s0x%04X", pad("SRBase:"), p.SRAMBase)
	dbg.printLine(terminal.StyleFeedback, "%s%d bytes", pad("EEPROM:"), p.EEPROMSize)
	dbg.printLine(terminal.StyleFeedback, "%s0x%02X", pad("DWDR:"), p.DWDR)
	dbg.printLine(terminal.StyleFeedback, "%s0x%02X", pad("DWEN:"), p.DWEN)
	dbg.printLine(terminal.StyleFeedback, "%s0x%02X", pad("CKDIV8:"), p.CKDIV8)
}

// cycleVcc removes and restores power to the part. a part with the DWEN fuse
// programmed starts with debugWIRE active.
func (dbg *Debugger) cycleVcc() error {
	if dbg.prog != nil {
		if err := dbg.prog.Leave(); err != nil {
			return err
		}
	} else if dbg.power != nil {
		if err := dbg.power.SetPower(false); err != nil {
			return fmt.Errorf("debugger: power: %w", err)
		}
	} else {
		logger.Log(logger.Allow, "debugger", "power can not be switched. cycle power by hand")
		return nil
	}

	if dbg.power != nil {
		if err := dbg.power.SetPower(true); err != nil {
			return fmt.Errorf("debugger: power: %w", err)
		}
	}

	if dbg.settle > 0 {
		time.Sleep(dbg.settle)
	}

	return nil
}
