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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. The first argument
// is a pattern rather than a format. The pattern is kept alongside the values
// so that the Is() and Has() functions can identify the error later:
//
//	e := curated.Errorf("debugwire: timeout: received %d of %d bytes", 1, 2)
//
//	if curated.Is(e, "debugwire: timeout: received %d of %d bytes") {
//		fmt.Println("short response")
//	}
//
// Packages export their patterns as constants so that callers never have to
// repeat the text. Has() searches the wrapped values for a pattern:
//
//	f := curated.Errorf("memory: %v", e)
//	curated.Has(f, debugwire.Timeout) // true
//	curated.Is(f, debugwire.Timeout)  // false
//
// The Error() function normalises the chain. Adjacent duplicate parts are
// removed so "memory: memory: read failed" is reported as "memory: read
// failed". Parts are separated by ": ".
//
// Curated errors also satisfy Unwrap() so the errors package from the
// standard library can see the first wrapped error.
package curated
