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

// Package test bundles the helper functions used by the package tests of
// GopherDW.
//
// The Expect functions report a failure with t.Errorf() and return false so
// that the test can decide whether to continue. The Demand functions call
// t.Fatalf() instead and should be used when later parts of a test depend on
// the value being correct. A slice length checked before iterating over two
// slices together is the typical case.
//
// Success and failure are judged by type:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// A nil value counts as a success because of how errors are returned in Go.
//
// The optional tags arguments are printed at the start of any failure
// message. They are useful in table driven tests to identify the row that
// failed.
//
// CompareWriter and CappedWriter implement io.Writer and are used to capture
// terminal output.
package test
