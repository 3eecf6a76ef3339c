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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes and
// allows different flags for each mode.
//
// Arguments are given with NewArgs() and then parsed with Parse(), which
// takes no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("DEBUG", "ISP", "DISASM", "VERSION")
//	_, _ = md.Parse()
//
// Flags are added before Parse() is called. The flag functions return a
// pointer to a variable of the specified type, as with the flag package:
//
//	port := md.AddString("port", "/dev/ttyUSB0", "serial port")
//
// A mode is a special command line argument that puts the program into a
// different mode of operation. The first sub-mode given to AddSubModes() is
// the default mode and is selected if the first argument after the flags is
// not a mode. Sub-mode comparisons are case insensitive.
//
//	switch md.Mode() {
//	case "DISASM":
//		md.NewMode()
//		sig := md.AddString("sim", "930B", "simulated part")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		disasm(*sig, md.RemainingArgs())
//	}
//
// Each call to NewMode() starts a new set of flags and sub-modes. Modes can be
// nested as deeply as required and Path() returns every mode found so far.
//
// The -help flag is handled by Parse(), which prints the available flags and
// sub-modes to the Output field and returns ParseHelp.
package modalflag
