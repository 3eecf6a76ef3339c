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

// Package prefs facilitates the storage of preferential values in the Go
// program. Values are stored in types that implement the pref interface
// (Bool, String and Int) and are bound to a key in a Disk.
//
//	var rate prefs.Int
//	dsk, _ := prefs.NewDisk("preferences")
//	_ = dsk.Add("debugwire.rate", &rate)
//	_ = dsk.Load()
//
// The preferences file starts with a warning line and the version of the
// application that wrote it, followed by one "key :: value" line per
// preference:
//
//	*** do not edit this file while gopherdw is running ***
//	version :: 0.1.0
//	debugwire.rate :: 62500
//	serial.port :: /dev/ttyUSB0
//
// Overrides given on the command line (see PushOverrides()) take priority
// over the values in the file every time the Disk is loaded. A Disk
// can be watched for changes made to the file by another program with the
// Watch() function.
package prefs
