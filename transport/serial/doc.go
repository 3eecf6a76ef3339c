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

// Package serial implements the transport.Link interface over a host serial
// port. The reset pin of the target is connected to both the transmit and
// receive lines of the serial adapter, usually through a diode or a resistor.
//
// Only the standard communication rates of the host are available. The rate
// requested by Configure() is snapped to the nearest standard rate and the
// difference is logged. A target running at a rate too far from a standard
// rate can not be debugged with this link.
//
// Adapters that see their own transmissions can have each written byte read
// back and discarded. This is the Echo preference.
//
// The DTR line is used to switch power to the target if it is wired that way.
package serial
