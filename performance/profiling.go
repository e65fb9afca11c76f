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

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/hearth-emu/hearth/curated"
)

// Profile is the state of the profiler.
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = iota
	ProfileCPU
	ProfileMem
	ProfileBoth
)

// ParseProfile converts a string to a Profile value. Returns false if the
// string is not recognised.
func ParseProfile(s string) (Profile, bool) {
	switch strings.ToUpper(s) {
	case "NONE":
		return ProfileNone, true
	case "CPU":
		return ProfileCPU, true
	case "MEM":
		return ProfileMem, true
	case "BOTH", "ALL":
		return ProfileBoth, true
	}
	return ProfileNone, false
}

// RunProfiler runs the supplied function, optionally capturing a CPU profile
// while it runs and a heap profile once it has finished. Profile files are
// named after the tag.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile == ProfileCPU || profile == ProfileBoth {
		f, err := os.Create(tag + "_cpu.profile")
		if err != nil {
			return curated.Errorf(MeasurementError, err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return curated.Errorf(MeasurementError, err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		return err
	}

	if profile == ProfileMem || profile == ProfileBoth {
		f, err := os.Create(tag + "_mem.profile")
		if err != nil {
			return curated.Errorf(MeasurementError, err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return curated.Errorf(MeasurementError, err)
		}
	}

	return nil
}
