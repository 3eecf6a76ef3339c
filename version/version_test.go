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

package version_test

import (
	"testing"

	"github.com/jetsetilly/gopherdw/test"
	"github.com/jetsetilly/gopherdw/version"
)

func TestNumber(t *testing.T) {
	test.ExpectEquality(t, version.Number().String(), version.Semantic)
}

func TestNewer(t *testing.T) {
	newer, err := version.Newer("99.0.0")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, newer)

	newer, err = version.Newer("0.0.1")
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, newer)

	newer, err = version.Newer(version.Semantic)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, newer)

	_, err = version.Newer("not a version")
	test.ExpectFailure(t, err)
}
