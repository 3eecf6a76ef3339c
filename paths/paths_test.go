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

package paths_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jetsetilly/gopherdw/paths"
	"github.com/jetsetilly/gopherdw/test"
)

func TestResourcePath(t *testing.T) {
	// a base directory in the current directory takes precedence over the
	// config directory
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
	test.DemandSuccess(t, os.Mkdir(".gopherdw", 0700))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopherdw", "foo", "bar", "baz"))

	// directories leading to the resource are created
	st, err := os.Stat(filepath.Join(".gopherdw", "foo", "bar"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, st.IsDir())

	// but not the resource itself
	_, err = os.Stat(pth)
	test.ExpectFailure(t, err)

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopherdw", "baz"))

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopherdw")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("log", "Tiny85")
	test.ExpectSuccess(t, regexp.MustCompile(`^log_Tiny85_\d{8}_\d{6}$`).MatchString(fn))

	fn = paths.UniqueFilename("log", " ")
	test.ExpectSuccess(t, regexp.MustCompile(`^log_\d{8}_\d{6}$`).MatchString(fn))
}
