// This file is part of Hearth.
//
// Hearth is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Hearth is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Hearth.  If not, see <https://www.gnu.org/licenses/>.

package version

import (
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Hearth"

// number is set by the makefile on release builds. if it is empty then the
// project was built by hand.
var number string

// Version returns the version string and the vcs revision. If the source has
// been modified but not committed then the revision string is suffixed with
// "+dirty".
func Version() (string, string) {
	version := number
	if version == "" {
		version = "unreleased"
	}

	var revision string

	info, ok := debug.ReadBuildInfo()
	if ok {
		var vcsRevision string
		var vcsModified bool
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
		revision = vcsRevision
		if vcsModified {
			revision += "+dirty"
		}
	}

	if revision == "" {
		revision = "no vcs information"
	}

	return version, revision
}
