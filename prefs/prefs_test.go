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

package prefs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/prefs"
	"github.com/jetsetilly/gopherdw/test"
	"github.com/jetsetilly/gopherdw/version"
)

func getTmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "gopherdw_prefs_test")
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Errorf("error reading tmp file: %v", err)
		return
	}

	expected = fmt.Sprintf("%s\nversion :: %s\n%s", prefs.WarningBoilerPlate, version.Number(), expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")

	test.ExpectFailure(t, v.Set(1))
}

func TestString(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "foo :: bar\n")
}

func TestInt(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))

	// test string conversion to int
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	// while we have a prefs.Int instance set up we'll test some
	// failure conditions
	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
	test.ExpectEquality(t, v.Get().(int), 10)
}

func TestDuplicateKey(t *testing.T) {
	dsk, err := prefs.NewDisk(getTmpPrefFile(t))
	test.DemandSuccess(t, err)

	var v, w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	err = dsk.Add("number", &w)
	test.ExpectSuccess(t, curated.Is(err, prefs.DuplicateKey))
}

// write bool and then a string from a different prefs.Disk instance. tests
// that the second writing doesn't clobber the results of the first write.
func TestBoolAndString(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	// start a new disk instance using the same file
	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	// the file should contain contents set by both disk instances
	cmpTmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestLoad(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var port prefs.String
	var rate prefs.Int
	test.ExpectSuccess(t, dsk.Add("serial.port", &port))
	test.ExpectSuccess(t, dsk.Add("debugwire.rate", &rate))

	// no file yet
	err = dsk.Load()
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))

	test.ExpectSuccess(t, port.Set("/dev/ttyUSB0"))
	test.ExpectSuccess(t, rate.Set(62500))
	test.DemandSuccess(t, dsk.Save())

	test.ExpectSuccess(t, port.Reset())
	test.ExpectSuccess(t, rate.Reset())
	test.ExpectEquality(t, port.String(), "")

	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, port.String(), "/dev/ttyUSB0")
	test.ExpectEquality(t, rate.Get().(int), 62500)

	// the command line takes priority over the file, including on reload
	prefs.PushOverrides("debugwire.rate::7812; debugwire.ratee::9600")
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, rate.Get().(int), 7812)
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, rate.Get().(int), 7812)
	test.ExpectEquality(t, prefs.PopOverrides(), "debugwire.ratee::9600")
}

func TestNewerVersion(t *testing.T) {
	fn := getTmpPrefFile(t)
	err := os.WriteFile(fn, []byte(fmt.Sprintf("%s\nversion :: 99.0.0\nfoo :: bar\n", prefs.WarningBoilerPlate)), 0600)
	test.DemandSuccess(t, err)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))

	// a newer file is still loaded
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, s.String(), "bar")
}

func TestHooks(t *testing.T) {
	var v prefs.Int

	var post int
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(int)
		return nil
	})
	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int) < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})

	test.ExpectSuccess(t, v.Set(800))
	test.ExpectEquality(t, post, 800)

	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 800)
	test.ExpectEquality(t, post, 800)
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))
	test.ExpectEquality(t, s.String(), "123456789")

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	// unsetting a maximum length (using value zero) will not result in
	// cropped string infomration reappearing
	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	// set string after setting a maximum length will result in the set string
	// being cropped
	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}

func TestWatch(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var timeout prefs.Int
	test.ExpectSuccess(t, dsk.Add("debugwire.timeout", &timeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 10)
	done := make(chan error, 1)
	go func() {
		done <- dsk.Watch(ctx, func(err error) {
			reloaded <- err
		})
	}()

	// give the watcher time to start
	time.Sleep(100 * time.Millisecond)

	// a second disk instance writes the file
	other, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.Int
	test.ExpectSuccess(t, other.Add("debugwire.timeout", &v))
	test.ExpectSuccess(t, v.Set(1600))
	test.DemandSuccess(t, other.Save())

	deadline := time.After(5 * time.Second)
	for timeout.Get().(int) != 1600 {
		select {
		case <-reloaded:
		case <-deadline:
			t.Fatalf("preferences not reloaded")
		}
	}

	cancel()
	test.ExpectSuccess(t, <-done)
}

func TestNotify(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var timeout prefs.Int
	test.ExpectSuccess(t, dsk.Add("debugwire.timeout", &timeout))
	test.ExpectSuccess(t, timeout.Set(800))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- dsk.Notify(ctx, changed)
	}()

	// give the watcher time to start
	time.Sleep(100 * time.Millisecond)

	other, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.Int
	test.ExpectSuccess(t, other.Add("debugwire.timeout", &v))
	test.ExpectSuccess(t, v.Set(1600))
	test.DemandSuccess(t, other.Save())

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatalf("change not signalled")
	}

	// values are only changed by an explicit load
	test.ExpectEquality(t, timeout.Get().(int), 800)
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, timeout.Get().(int), 1600)

	cancel()
	test.ExpectSuccess(t, <-done)
}
