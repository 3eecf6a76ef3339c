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
	"context"
	"time"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugger/terminal"
	"github.com/jetsetilly/gopherdw/logger"
	"github.com/jetsetilly/gopherdw/prefs"
	"golang.org/x/sync/errgroup"
)

// a line of input, or the error that prevented it from being read
type inputEvent struct {
	input string
	err   error
}

// Start the debugging session. The ISP menu is printed and input is read
// from the terminal until the QUIT command is entered, the terminal is closed
// or the context is cancelled.
//
// Input is read on its own goroutine so that a running target can be
// checked for breakpoints while waiting for input.
func (dbg *Debugger) Start(ctx context.Context) error {
	if err := dbg.term.Initialise(); err != nil {
		return err
	}
	defer dbg.term.CleanUp()

	defer func() {
		if err := dbg.scribe.EndSession(); err != nil {
			logger.Log(logger.Allow, "debugger", err)
		}
	}()

	dbg.printMenu()

	g, ctx := errgroup.WithContext(ctx)

	requests := make(chan terminal.Prompt, 1)
	input := make(chan inputEvent)

	g.Go(func() error {
		return dbg.reader(ctx, requests, input)
	})

	g.Go(func() error {
		return dbg.inputLoop(ctx, requests, input)
	})

	if dsk := dbg.Prefs.Disk(); dsk != nil {
		g.Go(func() error {
			// failure to watch the file is not fatal to the session
			if err := dsk.Notify(ctx, dbg.prefsChanged); err != nil {
				logger.Log(logger.Allow, "prefs", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !curated.Is(err, sessionEnd) {
		return err
	}
	return nil
}

// returned by the input loop to cancel the errgroup context when the session
// ends normally. it is not returned by Start()
const sessionEnd = "debugger: session ended"

var errSessionEnd = curated.Errorf(sessionEnd)

// reader reads a line from the terminal for every prompt received from the
// input loop.
func (dbg *Debugger) reader(ctx context.Context, requests <-chan terminal.Prompt, input chan<- inputEvent) error {
	for {
		var prompt terminal.Prompt
		select {
		case <-ctx.Done():
			return nil
		case prompt = <-requests:
		}

		// TermRead() can not be interrupted. the read happens on a goroutine
		// of its own so that the reader can return when the context is
		// cancelled. the read goroutine ends when the terminal next delivers
		// input or is closed
		done := make(chan inputEvent, 1)
		go func() {
			s, err := dbg.term.TermRead(prompt)
			done <- inputEvent{input: s, err: err}
		}()

		var ev inputEvent
		select {
		case <-ctx.Done():
			return nil
		case ev = <-done:
		}

		select {
		case <-ctx.Done():
			return nil
		case input <- ev:
		}
	}
}

// inputLoop processes input from the reader and checks a running target for
// breakpoints.
func (dbg *Debugger) inputLoop(ctx context.Context, requests chan<- terminal.Prompt, input <-chan inputEvent) error {
	poll := time.NewTicker(dbg.pollInterval)
	defer poll.Stop()

	pending := false

	for {
		// queued commands are echoed as though the operator had entered them
		if !dbg.running && dbg.script.More() {
			ln, _ := dbg.script.Next()
			dbg.printLine(terminal.StyleInput, ln.Entry)
			if dbg.parseInput(ln.Entry) {
				return errSessionEnd
			}
			continue
		}

		if !pending {
			requests <- dbg.prompt()
			pending = true
		}

		select {
		case <-ctx.Done():
			return nil

		case ev := <-input:
			pending = false

			if ev.err != nil {
				if curated.Is(ev.err, terminal.UserAbort) || curated.Is(ev.err, terminal.UserInterrupt) {
					return errSessionEnd
				}
				return ev.err
			}

			if err := dbg.scribe.WriteInput(ev.input); err != nil {
				logger.Log(logger.Allow, "debugger", err)
			}

			if dbg.parseInput(ev.input) {
				return errSessionEnd
			}

		case <-poll.C:
			dbg.pollBreak()

		case <-dbg.prefsChanged:
			dbg.reloadPrefs()
		}
	}
}

// reloadPrefs loads the preferences file after it has changed on disk.
func (dbg *Debugger) reloadPrefs() {
	dsk := dbg.Prefs.Disk()
	if dsk == nil {
		return
	}
	if err := dsk.Load(); err != nil {
		if !curated.Is(err, prefs.NoPrefsFile) {
			logger.Log(logger.Allow, "prefs", err)
		}
		return
	}
	logger.Log(logger.Allow, "prefs", "preferences reloaded")
}
