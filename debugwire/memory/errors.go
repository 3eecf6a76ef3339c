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

package memory

// Sentinal error patterns.
const (
	UnknownDevice   = "memory: %s: unknown device"
	InvalidRegister = "memory: invalid register: r%d"
	InvalidAddress  = "memory: invalid %s address: %04X"
	InvalidIOBit    = "memory: invalid I/O bit: %02X.%d"
	ReadFailed      = "memory: %s: %v"
)
