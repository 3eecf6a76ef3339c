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

// Package version reports the version of the application. The version number
// is a semantic version and is used to stamp files written by the
// application, such as the preferences file.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
)

// The name to use when referring to the application
const ApplicationName = "GopherDW"

// Semantic is the version of the application when it has not been built with
// a release number.
const Semantic = "0.1.0"

// if number is empty then the project was probably not built using the makefile
var number string

// Revision contains the vcs revision. If the source has been modified but
// has not been committed then the Revision string will be suffixed with
// "+dirty"
var revision string

// Version contains a the current version number of the project
//
// If the version string is "unreleased" then it means that the project has
// been manually built (ie. not with the makefile)
//
// If the version string is "local" then it means that there is no no version
// number and no vcs information. This can happen when compiling/running with
// "go run ."
var version string

// Version returns the version string, the revision string and whether this is a
// numbered "release" version. if release is true then the revision information
// should be used sparingly
func Version() (string, string, bool) {
	return version, revision, version == number
}

// Number returns the semantic version of the application. A release number
// is used if the application was built with one and if it is a valid
// semantic version.
func Number() *semver.Version {
	if number != "" {
		if v, err := semver.NewVersion(number); err == nil {
			return v
		}
	}
	return semver.MustParse(Semantic)
}

// Newer returns true if the version string describes a version more recent
// than this application. An error is returned if the string is not a
// semantic version.
func Newer(v string) (bool, error) {
	o, err := semver.NewVersion(v)
	if err != nil {
		return false, fmt.Errorf("version: %w", err)
	}
	return o.GreaterThan(Number()), nil
}

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsRevision == "" {
		revision = "no revision information"
	} else {
		revision = vcsRevision
		if vcsModified {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	if number == "" {
		if vcs {
			version = "unreleased"
		} else {
			version = "local"
		}
	} else {
		version = number
	}
}
