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

package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// the base path for all resources. note that we don't use this value directly
// except in the getBasePath() function. that function should be used instead.
const baseResourcePath = ".gopherdw"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. Empty parts of
// the resource are ignored.
func ResourcePath(resource ...string) (string, error) {
	b, err := getBasePath()
	if err != nil {
		return "", err
	}

	p := make([]string, 0, len(resource)+1)
	p = append(p, b)
	p = append(p, resource...)
	pth := filepath.Join(p...)

	if _, err := os.Stat(pth); err == nil {
		return pth, nil
	}

	// create the directories leading to the resource
	if err := os.MkdirAll(filepath.Dir(pth), 0700); err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	return pth, nil
}

// getBasePath() returns baseResourcePath with the user's config directory
// prepended if the unadorned baseResourcePath cannot be found in the current
// directory.
func getBasePath() (string, error) {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath, nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}
	return filepath.Join(cfg, baseResourcePath[1:]), nil
}
