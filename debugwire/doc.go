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

// Package debugwire implements the command and response discipline of the
// debugWIRE protocol.
//
// The target is controlled by writing command bytes to the transport.Link.
// Some commands are answered with data, some with an acknowledgement and some
// with nothing at all. A Frame is used to build a command sequence and a
// Channel sends it and collects the response.
//
// The target can execute a single instruction loaded into its instruction
// register (see Frame.Execute()) or it can repeat one of a small number of
// built in instruction pairs over a range of register or memory addresses (see
// Frame.Template()). The memory package builds register and memory access on
// top of these two primitives.
//
// Responses are collected by polling the link. The poll gives up when no byte
// has arrived for the idle period, which is a number of bit times at the
// current communication rate. A short response is never an exception. It is
// reported with an error matching the Timeout pattern and the bytes that did
// arrive are returned along with the error.
//
//	data, err := ch.Response(2)
//	if curated.Is(err, debugwire.Timeout) {
//		// len(data) < 2
//	}
//
// There is never more than one request in flight. Each operation consumes its
// entire response before returning.
package debugwire
