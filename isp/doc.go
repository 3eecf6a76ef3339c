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

// Package isp implements the in-system programming instructions required to
// prepare an AVR part for debugWIRE. The part is identified by its signature
// and the DWEN and CKDIV8 fuse bits are read and changed.
//
// Communication is through the SPI interface. The spidev sub-package
// implements the interface for Linux SPI devices. The simulator package in
// the transport directory implements the interface for a simulated part.
//
// The Programmer type is not safe for concurrent use.
package isp
