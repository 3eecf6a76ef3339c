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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopherdw/curated"
	"github.com/jetsetilly/gopherdw/test"
)

const timeout = "timeout: received %d of %d bytes"
const wrapper = "memory: %v"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("memory: %v", curated.Errorf("memory: read failed"))
	test.ExpectEquality(t, e.Error(), "memory: read failed")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(timeout, 1, 2)
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, timeout))
	test.ExpectEquality(t, e.Error(), "timeout: received 1 of 2 bytes")

	f := curated.Errorf(wrapper, e)
	test.ExpectFailure(t, curated.Is(f, timeout))
	test.ExpectSuccess(t, curated.Has(f, timeout))
	test.ExpectSuccess(t, curated.Has(f, wrapper))
	test.ExpectSuccess(t, errors.Is(f, e))

	test.ExpectFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectFailure(t, curated.IsAny(nil))
}
