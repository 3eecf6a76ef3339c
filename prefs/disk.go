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
	"bufio"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/logger"
	"github.com/jetsetilly/gopherdw/version"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file while gopherdw is running ***"

// the key of the line recording the version of the application that wrote
// the file
const versionKey = "version"

// separates key and value on every line of the file
const separator = " :: "

// Sentinal error patterns.
const (
	NoPrefsFile  = "prefs: no prefs file (%s)"
	DiskError    = "prefs: %v"
	DuplicateKey = "prefs: %s: already added"
)

// Disk binds preference values to keys in a preferences file. More than one
// Disk can use the same file. Saving a Disk preserves the values in the file
// that belong to other keys.
type Disk struct {
	path string

	crit    sync.Mutex
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf(DiskError, "no path for prefs file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to the Disk using the key.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	s := strings.Builder{}
	for _, k := range slices.Sorted(maps.Keys(dsk.entries)) {
		s.WriteString(k)
		s.WriteString(separator)
		s.WriteString(dsk.entries[k].String())
		s.WriteString("\n")
	}
	return s.String()
}

// Reset all preference values in the Disk to their zero value.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf(DiskError, err)
		}
	}
	return nil
}

// read the file into a map of key/value strings. the version line is returned
// separately and is empty if the file does not have one.
func (dsk *Disk) read() (map[string]string, string, error) {
	values := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, "", curated.Errorf(NoPrefsFile, dsk.path)
		}
		return values, "", curated.Errorf(DiskError, err)
	}
	defer f.Close()

	var ver string

	scanner := bufio.NewScanner(f)

	// the boilerplate line is not checked. it is there for the benefit of
	// the reader
	scanner.Scan()

	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), "::")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == versionKey {
			ver = v
			continue
		}
		values[k] = v
	}
	if err := scanner.Err(); err != nil {
		return values, ver, curated.Errorf(DiskError, err)
	}

	return values, ver, nil
}

// Save the current preference values to disk. Values in the file for keys
// not in this Disk are kept.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	values, _, err := dsk.read()
	if err != nil && !curated.Is(err, NoPrefsFile) {
		return err
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf(DiskError, err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", WarningBoilerPlate)
	fmt.Fprintf(w, "%s%s%s\n", versionKey, separator, version.Number())
	for _, k := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(w, "%s%s%s\n", k, separator, values[k])
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return curated.Errorf(DiskError, err)
	}
	if err := f.Close(); err != nil {
		return curated.Errorf(DiskError, err)
	}

	return nil
}

// Load preference values from disk. Values on the command line preference
// stack take priority over the values in the file and are applied even when
// the file does not exist, in which case an error matching the NoPrefsFile
// pattern is still returned.
func (dsk *Disk) Load() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	values, ver, err := dsk.read()
	if err != nil && !curated.Is(err, NoPrefsFile) {
		return err
	}

	if ver != "" {
		newer, verr := version.Newer(ver)
		if verr != nil {
			logger.Logf(logger.Allow, "prefs", "%s: unrecognised version (%s)", dsk.path, ver)
		} else if newer {
			logger.Logf(logger.Allow, "prefs", "%s: written by a newer version (%s)", dsk.path, ver)
		}
	}

	for k, p := range dsk.entries {
		if v, ok := values[k]; ok {
			if serr := p.Set(v); serr != nil {
				return curated.Errorf(DiskError, serr)
			}
		}
		if v, ok := Override(k); ok {
			if serr := p.Set(v); serr != nil {
				return curated.Errorf(DiskError, serr)
			}
		}
	}

	return err
}

// Watch reloads the preference values whenever the file is changed on disk.
// The reloaded function is called after every reload with the result of the
// reload. It can be nil. Watch returns when the context is cancelled.
//
// The values are reloaded, and their hooks run, on the goroutine that called
// Watch. Use Notify if the values must be reloaded on another goroutine.
func (dsk *Disk) Watch(ctx context.Context, reloaded func(error)) error {
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- dsk.Notify(ctx, changed)
	}()

	for {
		select {
		case err := <-done:
			return err
		case <-changed:
			err := dsk.Load()
			if reloaded != nil {
				reloaded(err)
			}
		}
	}
}

// Notify sends to the changed channel whenever the file is changed on disk.
// The values are not reloaded. The send does not block so a change is not
// signalled again while an earlier signal is pending. Notify returns when the
// context is cancelled.
func (dsk *Disk) Notify(ctx context.Context, changed chan<- struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return curated.Errorf(DiskError, err)
	}
	defer w.Close()

	// the directory is watched rather than the file because the file may not
	// exist yet and because some editors replace the file when saving
	if err := w.Add(filepath.Dir(dsk.path)); err != nil {
		return curated.Errorf(DiskError, err)
	}

	target := filepath.Clean(dsk.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				select {
				case changed <- struct{}{}:
				default:
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Log(logger.Allow, "prefs", err)
		}
	}
}
