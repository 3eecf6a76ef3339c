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

package debugwire

// Sentinal error patterns.
const (
	// fewer bytes than expected arrived before the link became idle
	Timeout = "debugwire: timeout: received %d of %d bytes"

	// the response arrived but was not the expected acknowledgement
	AckMismatch = "debugwire: acknowledgement: expected %s, received % 02X"

	// the link does not support the operation
	Unsupported = "debugwire: %s not supported by link"
)
