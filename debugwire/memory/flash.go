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

import (
	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/debugwire"
)

// WindowSize is the number of bytes of flash held by the flash window.
const WindowSize = 64

// window is a cached region of flash. the window is replaced rather than
// updated.
type window struct {
	base  uint16
	data  []byte
	valid bool
}

func (w *window) invalidate() {
	w.valid = false
}

// contains returns true if the word at the address is in the window.
func (w *window) contains(addr uint16) bool {
	return w.valid && addr >= w.base && int(addr)+2 <= int(w.base)+len(w.data)
}

// ReadFlash returns n bytes of flash starting at the byte address. On failure
// the bytes that were received are returned with the error. A short read must
// not be treated as a partial success.
func (mem *Accessor) ReadFlash(addr uint16, n int) (data []byte, err error) {
	if n <= 0 {
		return []byte{}, nil
	}
	if n > MaxBlock {
		n = MaxBlock
	}

	restore, err := mem.preserve()
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := restore(); err == nil {
			err = rerr
		}
	}()

	f := setZ(addr).Range(0, uint16(n*2)).Template(debugwire.TmplReadFlash).Go()
	data, err = mem.block(f, n)
	if err != nil {
		return data, curated.Errorf(ReadFailed, "read flash", err)
	}
	return data, nil
}

// FlashWord returns the little-endian word of flash at the byte address. The
// word comes from the flash window, which is reloaded from the address if
// necessary.
func (mem *Accessor) FlashWord(addr uint16) (uint16, error) {
	if !mem.flash.contains(addr) {
		mem.flash.invalidate()
		data, err := mem.ReadFlash(addr, WindowSize)
		if err != nil {
			return 0, err
		}
		mem.flash.base = addr
		mem.flash.data = data
		mem.flash.valid = true
	}

	idx := addr - mem.flash.base
	return uint16(mem.flash.data[idx]) | uint16(mem.flash.data[idx+1])<<8, nil
}
