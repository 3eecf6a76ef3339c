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

package isp

// Sentinal error patterns.
const (
	ProgramMode   = "Timeout: Chip may have DWEN bit enabled"
	UnknownDevice = "isp: %s: unknown device"
	Busy          = "isp: busy timeout"
	Unchanged     = "isp: %s fuse already %s"
	SPIError      = "isp: %v"
)
